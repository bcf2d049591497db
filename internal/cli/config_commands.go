// Package cli: configuration commands.
package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fileforge/fileforge/internal/config"
)

// newConfigCmd creates the 'config' command group.
func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change fileforge configuration",
	}

	configCmd.AddCommand(newConfigShowCmd())
	configCmd.AddCommand(newConfigSetCmd())
	configCmd.AddCommand(newConfigPathCmd())

	return configCmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "data_dir:      %s\n", orDefault(cfg.DataDir))
			fmt.Fprintf(out, "provider:      %s\n", cfg.Storage.Provider)
			fmt.Fprintf(out, "bucket:        %s\n", cfg.Storage.Bucket)
			fmt.Fprintf(out, "region:        %s\n", cfg.Storage.Region)
			fmt.Fprintf(out, "endpoint:      %s\n", cfg.Storage.Endpoint)
			fmt.Fprintf(out, "container:     %s\n", cfg.Storage.Container)
			fmt.Fprintf(out, "account_name:  %s\n", cfg.Storage.AccountName)
			fmt.Fprintf(out, "service_url:   %s\n", cfg.Storage.ServiceURL)
			fmt.Fprintf(out, "session_url:   %s\n", cfg.Auth.SessionURL)
			fmt.Fprintf(out, "token:         %s\n", mask(cfg.Auth.Token))
			fmt.Fprintf(out, "notifications: %t\n", cfg.Notifications.Enabled)

			if err := cfg.Validate(); err != nil {
				fmt.Fprintf(out, "\nwarning: %v\n", err)
			}
			return nil
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value and save the file",
		Long: `Set one configuration key. Keys: data_dir, provider, bucket, region,
endpoint, access_key, secret_key, container, account_name, sas_token,
service_url, session_url, token, notifications.

Example:
  fileforge config set provider s3
  fileforge config set bucket fileforge-data
  fileforge config set region us-east-1`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}

			key, value := args[0], args[1]
			switch key {
			case "data_dir":
				cfg.DataDir = value
			case "provider":
				cfg.Storage.Provider = value
			case "bucket":
				cfg.Storage.Bucket = value
			case "region":
				cfg.Storage.Region = value
			case "endpoint":
				cfg.Storage.Endpoint = value
			case "access_key":
				cfg.Storage.AccessKey = value
			case "secret_key":
				cfg.Storage.SecretKey = value
			case "container":
				cfg.Storage.Container = value
			case "account_name":
				cfg.Storage.AccountName = value
			case "sas_token":
				cfg.Storage.SASToken = value
			case "service_url":
				cfg.Storage.ServiceURL = value
			case "session_url":
				cfg.Auth.SessionURL = value
			case "token":
				cfg.Auth.Token = value
			case "notifications":
				enabled, err := strconv.ParseBool(value)
				if err != nil {
					return fmt.Errorf("notifications must be true or false, got %q", value)
				}
				cfg.Notifications.Enabled = enabled
			default:
				return fmt.Errorf("unknown configuration key %q", key)
			}

			if err := cfg.Validate(); err != nil {
				GetLogger().Warn().Err(err).Msg("configuration saved but incomplete")
			}
			if err := config.Save(cfg, cfgFile); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s updated\n", key)
			return nil
		},
	}
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := cfgFile
			if path == "" {
				var err error
				path, err = config.DefaultConfigPath()
				if err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func orDefault(s string) string {
	if s == "" {
		return "(default)"
	}
	return s
}

// mask hides all but the first and last characters of a secret.
func mask(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 4 {
		return "****"
	}
	return s[:2] + "****" + s[len(s)-2:]
}
