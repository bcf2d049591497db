package cli

import (
	"fmt"

	"github.com/fileforge/fileforge/internal/cloud/providers/azure"
	"github.com/fileforge/fileforge/internal/cloud/providers/s3"
	"github.com/fileforge/fileforge/internal/cloud/storage"
	"github.com/fileforge/fileforge/internal/config"
	"github.com/fileforge/fileforge/internal/events"
	"github.com/fileforge/fileforge/internal/hierarchy"
	"github.com/fileforge/fileforge/internal/notify"
	"github.com/fileforge/fileforge/internal/session"
	"github.com/fileforge/fileforge/internal/snapshot"
)

// App bundles everything a command needs: config, the local store, the
// hierarchy and the ambient plumbing. Commands receive it explicitly
// instead of reaching for globals.
type App struct {
	Config   *config.Config
	KV       snapshot.KV
	Store    *hierarchy.Store
	Bus      *events.EventBus
	Notifier *notify.Notifier
}

// openApp loads configuration, opens the local key-value store under the
// data directory and initializes the hierarchy from the persisted
// snapshot.
func openApp() (*App, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}

	dir, err := cfg.ResolveDataDir()
	if err != nil {
		return nil, err
	}

	kv, err := snapshot.NewFileKV(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}

	bus := events.NewEventBus(0)
	notifier := notify.NewNotifier(bus, GetLogger())
	notifier.SetEnabled(cfg.Notifications.Enabled)

	store := hierarchy.NewStore(kv, bus, notifier, GetLogger())
	if err := store.Load(); err != nil {
		return nil, fmt.Errorf("failed to load hierarchy: %w", err)
	}

	return &App{
		Config:   cfg,
		KV:       kv,
		Store:    store,
		Bus:      bus,
		Notifier: notifier,
	}, nil
}

// Close flushes the snapshot and shuts the event bus down.
func (a *App) Close() {
	if err := a.Store.Close(); err != nil {
		GetLogger().Error().Err(err).Msg("failed to persist snapshot on close")
	}
	a.Bus.Close()
}

// ObjectStore builds the configured storage backend. Fails when the
// provider is "none" or the settings are incomplete.
func (a *App) ObjectStore() (storage.ObjectStore, error) {
	if err := a.Config.Validate(); err != nil {
		return nil, err
	}

	switch a.Config.Storage.Provider {
	case config.ProviderS3:
		return s3.NewClient(GetContext(), s3.Options{
			Bucket:    a.Config.Storage.Bucket,
			Region:    a.Config.Storage.Region,
			Endpoint:  a.Config.Storage.Endpoint,
			AccessKey: a.Config.Storage.AccessKey,
			SecretKey: a.Config.Storage.SecretKey,
		})
	case config.ProviderAzure:
		return azure.NewClient(azure.Options{
			AccountName: a.Config.Storage.AccountName,
			Container:   a.Config.Storage.Container,
			SASToken:    a.Config.Storage.SASToken,
			ServiceURL:  a.Config.Storage.ServiceURL,
		})
	default:
		return nil, storage.ErrNotConfigured
	}
}

// SessionChecker builds the configured session precondition. Without a
// session URL the check degrades to token presence.
func (a *App) SessionChecker() session.Checker {
	if a.Config.Auth.SessionURL != "" {
		return session.NewHTTPChecker(a.Config.Auth.SessionURL, a.Config.Auth.Token)
	}
	return session.StaticChecker{SignedIn: a.Config.Auth.Token != ""}
}
