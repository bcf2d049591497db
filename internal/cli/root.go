// Package cli provides the command-line interface for fileforge.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/fileforge/fileforge/internal/logging"
	"github.com/fileforge/fileforge/internal/version"
)

var (
	// Global flags
	cfgFile string
	dataDir string
	verbose bool

	// Global logger
	logger *logging.Logger

	// Global context for signal handling
	rootContext context.Context
	cancelFunc  context.CancelFunc
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fileforge",
		Short: "fileforge - hierarchical file manager with object-storage uploads",
		Long: `fileforge ` + version.Version + ` - Built: ` + version.BuildTime + `
Manage a folder tree of files locally and push uploads to S3 or
Azure Blob Storage.

The hierarchy lives in ~/.fileforge as a JSON snapshot; every
command loads it, applies its changes and writes it back.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logging.NewDefaultLogger()
			if verbose {
				logging.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Data directory (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output (shows debug messages)")

	rootCmd.Version = version.Version + " (" + version.BuildTime + ")"

	return rootCmd
}

// AddCommands attaches all subcommands to the root.
func AddCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(newLsCmd())
	rootCmd.AddCommand(newTreeCmd())
	rootCmd.AddCommand(newMkdirCmd())
	rootCmd.AddCommand(newCreateCmd())
	rootCmd.AddCommand(newRmCmd())
	rootCmd.AddCommand(newCdCmd())
	rootCmd.AddCommand(newPwdCmd())
	rootCmd.AddCommand(newCatCmd())
	rootCmd.AddCommand(newUpdateCmd())
	rootCmd.AddCommand(newRenameCmd())
	rootCmd.AddCommand(newStarCmd())
	rootCmd.AddCommand(newShareCmd())
	rootCmd.AddCommand(newUploadCmd())
	rootCmd.AddCommand(newViewCmd())
	rootCmd.AddCommand(newConfigCmd())
}

// Execute runs the CLI with signal-driven cancellation.
func Execute() error {
	rootContext, cancelFunc = context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		for sig := range sigChan {
			if sig != nil {
				fmt.Fprintf(os.Stderr, "\nReceived signal %v, cancelling...\n", sig)
				cancelFunc()
			}
		}
	}()

	rootCmd := NewRootCmd()
	AddCommands(rootCmd)
	err := rootCmd.Execute()

	signal.Stop(sigChan)
	close(sigChan)

	return err
}

// GetContext returns the global CLI context with signal handling.
func GetContext() context.Context {
	if rootContext == nil {
		return context.Background()
	}
	return rootContext
}

// GetLogger returns the global CLI logger.
func GetLogger() *logging.Logger {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	return logger
}
