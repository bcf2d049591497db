// Package cli: browsing commands (ls, tree, cd, pwd).
package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fileforge/fileforge/internal/hierarchy"
	"github.com/fileforge/fileforge/internal/models"
	"github.com/fileforge/fileforge/internal/snapshot"
)

// newLsCmd creates the 'ls' command.
func newLsCmd() *cobra.Command {
	var tab string

	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List items in the current folder",
		Long: `List files and folders.

The --tab flag selects the active tab. "all" and "recent" show the
current folder's children; "starred" and "shared" scan the whole tree.
Without --tab, the persisted tab preference applies.

Example:
  fileforge ls
  fileforge ls --tab recent
  fileforge ls --tab starred`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			activeTab := resolveTab(app, tab)
			items := app.Store.DisplayItems(activeTab)
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "(empty)")
				return nil
			}

			printItems(cmd, items)
			return nil
		},
	}

	cmd.Flags().StringVarP(&tab, "tab", "t", "", "Tab to display: all, recent, starred, shared")

	return cmd
}

// resolveTab picks the explicit flag value when given, otherwise the
// persisted preference. Unknown names fall back to "all" with a warning.
func resolveTab(app *App, flag string) models.Tab {
	if flag == "" {
		vs, err := snapshot.LoadViewState(app.KV)
		if err != nil {
			return models.TabAll
		}
		return vs.ActiveTab
	}

	tab, ok := models.ParseTab(flag)
	if !ok {
		GetLogger().Warn().Str("tab", flag).Msg("unknown tab, showing all")
	}
	return tab
}

func printItems(cmd *cobra.Command, items []hierarchy.Item) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tSIZE\tMODIFIED\tFLAGS")
	for _, it := range items {
		kind := string(it.Type)
		size := fmt.Sprintf("%d", it.Size)
		modified := ""
		if it.IsFolder {
			kind = "folder"
			size = "-"
		}
		if it.HasModified {
			modified = it.ModifiedAt.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", it.ID, it.Name, kind, size, modified, flagString(it))
	}
	w.Flush()
}

func flagString(it hierarchy.Item) string {
	var flags []string
	if it.Starred {
		flags = append(flags, "starred")
	}
	if it.Shared {
		flags = append(flags, "shared")
	}
	return strings.Join(flags, ",")
}

// newTreeCmd creates the 'tree' command.
func newTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Print the whole folder tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			fmt.Fprintln(cmd.OutOrStdout(), models.RootBreadcrumb.Name)
			printSubtree(cmd, app.Store, nil, "")
			return nil
		},
	}
}

func printSubtree(cmd *cobra.Command, store *hierarchy.Store, parent *string, indent string) {
	for _, folder := range store.FoldersInFolder(parent) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s├── %s/\n", indent, folder.Name)
		id := folder.ID
		printSubtree(cmd, store, &id, indent+"│   ")
	}
	for _, file := range store.FilesInFolder(parent) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s├── %s\n", indent, file.Name)
	}
}

// newCdCmd creates the 'cd' command.
func newCdCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cd [folder-id]",
		Short: "Change the current folder",
		Long: `Change the current folder. Without an argument, returns to the root.

The target is not validated: navigating into a deleted or unknown folder
shows an empty listing until you navigate away.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			if len(args) == 0 {
				app.Store.NavigateToFolder(nil)
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", models.RootBreadcrumb.Name)
				return nil
			}

			id := args[0]
			app.Store.NavigateToFolder(&id)
			if _, ok := app.Store.Folder(id); !ok {
				GetLogger().Warn().Str("id", id).Msg("folder does not exist, listing will be empty")
			}
			return printBreadcrumbs(cmd, app.Store)
		},
	}
}

// newPwdCmd creates the 'pwd' command.
func newPwdCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pwd",
		Short: "Print the breadcrumb path of the current folder",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			return printBreadcrumbs(cmd, app.Store)
		},
	}
}

func printBreadcrumbs(cmd *cobra.Command, store *hierarchy.Store) error {
	crumbs, err := store.Breadcrumbs()
	if err != nil {
		return err
	}

	names := make([]string, 0, len(crumbs))
	for _, c := range crumbs {
		names = append(names, c.Name)
	}
	fmt.Fprintln(cmd.OutOrStdout(), strings.Join(names, " / "))
	return nil
}
