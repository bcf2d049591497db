// Package config provides configuration management for fileforge.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/fileforge/fileforge/internal/constants"
)

// Provider names accepted in [storage].
const (
	ProviderNone  = "none"
	ProviderS3    = "s3"
	ProviderAzure = "azure"
)

// Config is the sole configuration source for the CLI.
//
// Config file location:
//   - ~/.fileforge/config.ini
//
// INI format:
//
//	[fileforge]
//	data_dir = /home/user/.fileforge
//
//	[storage]
//	provider = s3
//	bucket = fileforge-data
//	region = us-east-1
//	endpoint =
//	container =
//	account_name =
//	sas_token =
//	access_key =
//	secret_key =
//
//	[auth]
//	session_url =
//	token =
//
//	[notifications]
//	enabled = true
type Config struct {
	// DataDir holds the snapshot key-value store and this config file
	DataDir string `ini:"data_dir"`

	Storage       StorageConfig
	Auth          AuthConfig
	Notifications NotificationConfig
}

// StorageConfig selects and parameterizes the object store backend.
type StorageConfig struct {
	// Provider is one of "none", "s3", "azure". With "none", uploads are
	// refused and everything else works offline.
	Provider string `ini:"provider"`

	// S3 settings
	Bucket    string `ini:"bucket"`
	Region    string `ini:"region"`
	Endpoint  string `ini:"endpoint"` // optional, for S3-compatible stores
	AccessKey string `ini:"access_key"`
	SecretKey string `ini:"secret_key"`

	// Azure settings
	Container   string `ini:"container"`
	AccountName string `ini:"account_name"`
	SASToken    string `ini:"sas_token"`
	ServiceURL  string `ini:"service_url"` // optional, e.g. for Azurite
}

// AuthConfig parameterizes the session check performed before uploads.
// With an empty SessionURL the check degrades to token presence.
type AuthConfig struct {
	SessionURL string `ini:"session_url"`
	Token      string `ini:"token"`
}

// NotificationConfig controls user-visible notifications.
type NotificationConfig struct {
	Enabled bool `ini:"enabled"`
}

// Validation errors
var (
	ErrInvalidProvider  = errors.New("storage provider must be one of: none, s3, azure")
	ErrMissingBucket    = errors.New("bucket is required when provider is s3")
	ErrMissingRegion    = errors.New("region is required when provider is s3 and no endpoint is set")
	ErrMissingContainer = errors.New("container is required when provider is azure")
	ErrMissingAccount   = errors.New("account_name or service_url is required when provider is azure")
)

// DefaultDataDir returns ~/.fileforge.
func DefaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, constants.DataDirName), nil
}

// DefaultConfigPath returns the default path for the config file.
func DefaultConfigPath() (string, error) {
	dir, err := DefaultDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.ConfigFileName), nil
}

// New creates a Config with default values.
func New() *Config {
	return &Config{
		Storage: StorageConfig{
			Provider: ProviderNone,
		},
		Notifications: NotificationConfig{
			Enabled: true,
		},
	}
}

// Load loads configuration from an INI file, then applies environment
// overrides. If the file doesn't exist, returns defaults and no error.
// If the file exists but is invalid, returns an error.
func Load(path string) (*Config, error) {
	cfg := New()

	if path == "" {
		var err error
		path, err = DefaultConfigPath()
		if err != nil {
			cfg.applyEnv()
			return cfg, nil // Defaults if we can't determine the path
		}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg.applyEnv()
		return cfg, nil
	}

	iniFile, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	appSection := iniFile.Section("fileforge")
	cfg.DataDir = appSection.Key("data_dir").String()

	storageSection := iniFile.Section("storage")
	cfg.Storage.Provider = storageSection.Key("provider").MustString(ProviderNone)
	cfg.Storage.Bucket = storageSection.Key("bucket").String()
	cfg.Storage.Region = storageSection.Key("region").String()
	cfg.Storage.Endpoint = storageSection.Key("endpoint").String()
	cfg.Storage.AccessKey = storageSection.Key("access_key").String()
	cfg.Storage.SecretKey = storageSection.Key("secret_key").String()
	cfg.Storage.Container = storageSection.Key("container").String()
	cfg.Storage.AccountName = storageSection.Key("account_name").String()
	cfg.Storage.SASToken = storageSection.Key("sas_token").String()
	cfg.Storage.ServiceURL = storageSection.Key("service_url").String()

	authSection := iniFile.Section("auth")
	cfg.Auth.SessionURL = authSection.Key("session_url").String()
	cfg.Auth.Token = authSection.Key("token").String()

	notifySection := iniFile.Section("notifications")
	cfg.Notifications.Enabled = notifySection.Key("enabled").MustBool(true)

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overlays FILEFORGE_* environment variables on the loaded
// values. Environment always wins over the file.
func (cfg *Config) applyEnv() {
	if v := os.Getenv("FILEFORGE_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("FILEFORGE_STORAGE_PROVIDER"); v != "" {
		cfg.Storage.Provider = v
	}
	if v := os.Getenv("FILEFORGE_BUCKET"); v != "" {
		cfg.Storage.Bucket = v
	}
	if v := os.Getenv("FILEFORGE_REGION"); v != "" {
		cfg.Storage.Region = v
	}
	if v := os.Getenv("FILEFORGE_ENDPOINT"); v != "" {
		cfg.Storage.Endpoint = v
	}
	if v := os.Getenv("FILEFORGE_SESSION_URL"); v != "" {
		cfg.Auth.SessionURL = v
	}
	if v := os.Getenv("FILEFORGE_TOKEN"); v != "" {
		cfg.Auth.Token = v
	}
}

// Save writes configuration to an INI file. Creates parent directories
// if they don't exist. Credentials are stored in the file, so it is
// written with user-only permissions via temp file + rename.
func Save(cfg *Config, path string) error {
	if path == "" {
		var err error
		path, err = DefaultConfigPath()
		if err != nil {
			return fmt.Errorf("failed to determine config path: %w", err)
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	iniFile := ini.Empty()

	appSection, err := iniFile.NewSection("fileforge")
	if err != nil {
		return fmt.Errorf("failed to create fileforge section: %w", err)
	}
	appSection.Key("data_dir").SetValue(cfg.DataDir)

	storageSection, err := iniFile.NewSection("storage")
	if err != nil {
		return fmt.Errorf("failed to create storage section: %w", err)
	}
	storageSection.Key("provider").SetValue(cfg.Storage.Provider)
	storageSection.Key("bucket").SetValue(cfg.Storage.Bucket)
	storageSection.Key("region").SetValue(cfg.Storage.Region)
	storageSection.Key("endpoint").SetValue(cfg.Storage.Endpoint)
	storageSection.Key("access_key").SetValue(cfg.Storage.AccessKey)
	storageSection.Key("secret_key").SetValue(cfg.Storage.SecretKey)
	storageSection.Key("container").SetValue(cfg.Storage.Container)
	storageSection.Key("account_name").SetValue(cfg.Storage.AccountName)
	storageSection.Key("sas_token").SetValue(cfg.Storage.SASToken)
	storageSection.Key("service_url").SetValue(cfg.Storage.ServiceURL)

	authSection, err := iniFile.NewSection("auth")
	if err != nil {
		return fmt.Errorf("failed to create auth section: %w", err)
	}
	authSection.Key("session_url").SetValue(cfg.Auth.SessionURL)
	authSection.Key("token").SetValue(cfg.Auth.Token)

	notifySection, err := iniFile.NewSection("notifications")
	if err != nil {
		return fmt.Errorf("failed to create notifications section: %w", err)
	}
	notifySection.Key("enabled").SetValue(fmt.Sprintf("%t", cfg.Notifications.Enabled))

	tmpPath := path + ".tmp"
	if err := iniFile.SaveTo(tmpPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	if err := os.Chmod(tmpPath, 0600); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set config permissions: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save config: %w", err)
	}

	return nil
}

// Validate checks the storage settings. Returns nil if valid.
func (cfg *Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(cfg.Storage.Provider)) {
	case ProviderNone, "":
		return nil
	case ProviderS3:
		if strings.TrimSpace(cfg.Storage.Bucket) == "" {
			return ErrMissingBucket
		}
		if strings.TrimSpace(cfg.Storage.Region) == "" && strings.TrimSpace(cfg.Storage.Endpoint) == "" {
			return ErrMissingRegion
		}
		return nil
	case ProviderAzure:
		if strings.TrimSpace(cfg.Storage.Container) == "" {
			return ErrMissingContainer
		}
		if strings.TrimSpace(cfg.Storage.AccountName) == "" && strings.TrimSpace(cfg.Storage.ServiceURL) == "" {
			return ErrMissingAccount
		}
		return nil
	default:
		return ErrInvalidProvider
	}
}

// ResolveDataDir returns the configured data directory, falling back to
// the default when unset.
func (cfg *Config) ResolveDataDir() (string, error) {
	if cfg.DataDir != "" {
		return cfg.DataDir, nil
	}
	return DefaultDataDir()
}
