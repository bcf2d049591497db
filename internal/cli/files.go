// Package cli: file and folder mutation commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fileforge/fileforge/internal/models"
)

// newMkdirCmd creates the 'mkdir' command.
func newMkdirCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mkdir <name>",
		Short: "Create a folder under the current folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			folder, err := app.Store.CreateFolder(args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Folder created\n  Name: %s\n  ID: %s\n", folder.Name, folder.ID)
			return nil
		},
	}
}

// newCreateCmd creates the 'create' command.
func newCreateCmd() *cobra.Command {
	var content string
	var fromFile string
	var fileType string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a text file under the current folder",
		Long: `Create a file with inline content. The file type is inferred from
the extension unless --type is given; size is the content byte length.

Example:
  fileforge create notes.txt --content "remember the milk"
  fileforge create report.md --from-file ./draft.md`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if content != "" && fromFile != "" {
				return fmt.Errorf("--content and --from-file are mutually exclusive")
			}
			if fromFile != "" {
				data, err := os.ReadFile(fromFile)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", fromFile, err)
				}
				content = string(data)
			}

			app, err := openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			file, err := app.Store.CreateFile(args[0], models.FileType(fileType), content)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ File created\n  Name: %s\n  ID: %s\n  Type: %s\n  Size: %d\n",
				file.Name, file.ID, file.Type, file.Size)
			return nil
		},
	}

	cmd.Flags().StringVar(&content, "content", "", "Inline file content")
	cmd.Flags().StringVar(&fromFile, "from-file", "", "Read content from a local file")
	cmd.Flags().StringVar(&fileType, "type", "", "File type (document, image, pdf, audio, video, spreadsheet, text, other)")

	return cmd
}

// newCatCmd creates the 'cat' command.
func newCatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cat <file-id>",
		Short: "Print a file's content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			file, ok := app.Store.File(args[0])
			if !ok {
				return fmt.Errorf("file not found: %s", args[0])
			}

			if file.Content == "" && file.URL != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "(remote file, no local content)\n%s\n", file.URL)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), file.Content)
			if file.Content != "" && file.Content[len(file.Content)-1] != '\n' {
				fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	}
}

// newUpdateCmd creates the 'update' command.
func newUpdateCmd() *cobra.Command {
	var name string
	var content string

	cmd := &cobra.Command{
		Use:   "update <file-id>",
		Short: "Update a file's name or content",
		Long: `Update fields of an existing file. Only the given flags change;
content updates recompute the size and refresh the modification time.
Updating an id that does not exist is a no-op.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" && !cmd.Flags().Changed("content") {
				return fmt.Errorf("nothing to update: pass --name and/or --content")
			}

			app, err := openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			update := models.FileUpdate{}
			if name != "" {
				update.Name = &name
			}
			if cmd.Flags().Changed("content") {
				update.Content = &content
			}

			app.Store.UpdateFile(args[0], update)

			if file, ok := app.Store.File(args[0]); ok {
				fmt.Fprintf(cmd.OutOrStdout(), "✓ File updated\n  Name: %s\n  Size: %d\n", file.Name, file.Size)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "No file with id %s; nothing changed.\n", args[0])
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New file name")
	cmd.Flags().StringVar(&content, "content", "", "New file content")

	return cmd
}

// newRenameCmd creates the 'rename' command for folders.
func newRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <folder-id> <new-name>",
		Short: "Rename a folder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.Store.RenameFolder(args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Folder renamed to %s\n", args[1])
			return nil
		},
	}
}

// newRmCmd creates the 'rm' command.
func newRmCmd() *cobra.Command {
	var isFolder bool

	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a file, or a folder and its whole subtree",
		Long: `Delete an item. For folders the entire subtree goes with it:
nested folders, their files, everything. There is no undo and no trash.

Deleting an id that does not exist is a no-op.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			app.Store.DeleteItem(args[0], isFolder)
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&isFolder, "folder", false, "Treat the id as a folder (cascades to the subtree)")

	return cmd
}

// newStarCmd creates the 'star' command.
func newStarCmd() *cobra.Command {
	var isFolder bool
	var unset bool

	cmd := &cobra.Command{
		Use:   "star <id>",
		Short: "Star or unstar an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			app.Store.SetStarred(args[0], isFolder, !unset)
			if unset {
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Unstarred %s\n", args[0])
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Starred %s\n", args[0])
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&isFolder, "folder", false, "Treat the id as a folder")
	cmd.Flags().BoolVar(&unset, "unset", false, "Remove the star")

	return cmd
}

// newShareCmd creates the 'share' command.
func newShareCmd() *cobra.Command {
	var isFolder bool
	var unset bool

	cmd := &cobra.Command{
		Use:   "share <id>",
		Short: "Mark or unmark an item as shared",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			app.Store.SetShared(args[0], isFolder, !unset)
			if unset {
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Unshared %s\n", args[0])
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Shared %s\n", args[0])
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&isFolder, "folder", false, "Treat the id as a folder")
	cmd.Flags().BoolVar(&unset, "unset", false, "Remove the shared mark")

	return cmd
}
