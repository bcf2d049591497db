package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.ini"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Storage.Provider != ProviderNone {
		t.Errorf("default provider = %q, want none", cfg.Storage.Provider)
	}
	if !cfg.Notifications.Enabled {
		t.Error("notifications should default to enabled")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.ini")

	cfg := New()
	cfg.DataDir = "/var/lib/fileforge"
	cfg.Storage.Provider = ProviderS3
	cfg.Storage.Bucket = "fileforge-data"
	cfg.Storage.Region = "eu-west-1"
	cfg.Auth.SessionURL = "https://auth.example.com/session"
	cfg.Auth.Token = "tok"
	cfg.Notifications.Enabled = false

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.DataDir != cfg.DataDir {
		t.Errorf("DataDir = %q, want %q", loaded.DataDir, cfg.DataDir)
	}
	if loaded.Storage.Provider != ProviderS3 || loaded.Storage.Bucket != "fileforge-data" || loaded.Storage.Region != "eu-west-1" {
		t.Errorf("storage section did not round trip: %+v", loaded.Storage)
	}
	if loaded.Auth.SessionURL != cfg.Auth.SessionURL || loaded.Auth.Token != cfg.Auth.Token {
		t.Errorf("auth section did not round trip: %+v", loaded.Auth)
	}
	if loaded.Notifications.Enabled {
		t.Error("notifications enabled flag did not round trip")
	}
}

func TestSavePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.ini")
	if err := Save(New(), path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("config file permissions = %o, want 0600", perm)
	}
}

func TestEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.ini")
	cfg := New()
	cfg.Storage.Provider = ProviderNone
	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("FILEFORGE_STORAGE_PROVIDER", "s3")
	t.Setenv("FILEFORGE_BUCKET", "env-bucket")
	t.Setenv("FILEFORGE_REGION", "us-west-2")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Storage.Provider != "s3" || loaded.Storage.Bucket != "env-bucket" || loaded.Storage.Region != "us-west-2" {
		t.Errorf("environment did not override file values: %+v", loaded.Storage)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"none provider", func(c *Config) {}, nil},
		{"empty provider", func(c *Config) { c.Storage.Provider = "" }, nil},
		{"unknown provider", func(c *Config) { c.Storage.Provider = "gcs" }, ErrInvalidProvider},
		{"s3 without bucket", func(c *Config) { c.Storage.Provider = ProviderS3 }, ErrMissingBucket},
		{"s3 without region or endpoint", func(c *Config) {
			c.Storage.Provider = ProviderS3
			c.Storage.Bucket = "b"
		}, ErrMissingRegion},
		{"s3 with endpoint only", func(c *Config) {
			c.Storage.Provider = ProviderS3
			c.Storage.Bucket = "b"
			c.Storage.Endpoint = "http://localhost:9000"
		}, nil},
		{"azure without container", func(c *Config) { c.Storage.Provider = ProviderAzure }, ErrMissingContainer},
		{"azure without account", func(c *Config) {
			c.Storage.Provider = ProviderAzure
			c.Storage.Container = "files"
		}, ErrMissingAccount},
		{"azure valid", func(c *Config) {
			c.Storage.Provider = ProviderAzure
			c.Storage.Container = "files"
			c.Storage.AccountName = "acct"
		}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
