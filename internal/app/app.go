// Package app assembles the services shared by the TUI and the CLI
// commands from the loaded settings.
package app

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/studiowebux/voidrunner/internal/config"
	"github.com/studiowebux/voidrunner/internal/executor"
	"github.com/studiowebux/voidrunner/internal/history"
	"github.com/studiowebux/voidrunner/internal/languages"
	"github.com/studiowebux/voidrunner/internal/logging"
	"github.com/studiowebux/voidrunner/internal/session"
	"github.com/studiowebux/voidrunner/internal/storage"
)

// App owns the storage handles. Close releases them.
type App struct {
	Settings config.Settings
	Logger   *slog.Logger
	Catalog  *languages.Catalog
	Store    storage.Store
	Session  *session.Manager
	History  *history.Manager // nil when history is disabled
	Runner   executor.Runner
}

// Option customizes Open
type Option func(*App)

// WithRunner replaces the HTTP client, used by tests
func WithRunner(r executor.Runner) Option {
	return func(a *App) { a.Runner = r }
}

// WithStore replaces the configured storage backend
func WithStore(s storage.Store) Option {
	return func(a *App) { a.Store = s }
}

// Open builds every service and hydrates the session
func Open(settings config.Settings, logger *slog.Logger, opts ...Option) (*App, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	a := &App{
		Settings: settings,
		Logger:   logger,
		Catalog:  languages.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.Store == nil {
		store, err := storage.Open(settings.StorageOptions())
		if err != nil {
			return nil, fmt.Errorf("failed to open %s storage: %w", settings.Storage.Backend, err)
		}
		a.Store = store
	}

	if settings.History.Enabled {
		h, err := history.NewManager(config.DatabasePath)
		if err != nil {
			a.Store.Close()
			return nil, err
		}
		a.History = h
	}

	if a.Runner == nil {
		a.Runner = executor.NewClient(settings.Execution.Endpoint,
			executor.WithTimeout(settings.Execution.Timeout))
	}

	a.Session = session.NewManager(a.Store, a.Catalog,
		session.WithKey(settings.Storage.Key),
		session.WithLogger(logger.With("component", "session")),
	)
	a.Session.Hydrate()

	return a, nil
}

// NewDispatcher creates a dispatcher recording into history when enabled
func (a *App) NewDispatcher(opts ...executor.Option) *executor.Dispatcher {
	base := []executor.Option{
		executor.WithLogger(a.Logger.With("component", "dispatcher")),
	}
	if a.History != nil {
		base = append(base, executor.WithRecorder(a.History))
	}
	return executor.NewDispatcher(a.Runner, append(base, opts...)...)
}

// Close releases storage and history
func (a *App) Close() error {
	var errs []error
	if a.History != nil {
		errs = append(errs, a.History.Close())
	}
	if a.Store != nil {
		errs = append(errs, a.Store.Close())
	}
	return errors.Join(errs...)
}
