// Package app wires configuration, storage, the todo store and the theme
// into one State that the CLI and TUI receive explicitly.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tada/internal/config"
	"github.com/idilsaglam/tada/internal/logging"
	"github.com/idilsaglam/tada/internal/store"
	"github.com/idilsaglam/tada/internal/theme"
	"github.com/idilsaglam/tada/internal/todo"
)

// State is created once at start-up and closed on exit.
type State struct {
	Todos  *todo.Store
	Logger *log.Logger

	adapter store.Adapter

	mu     sync.Mutex
	scheme theme.Scheme
}

// New opens the configured backend and builds the todo store on top of it.
// The list is not loaded yet; call Load.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*State, error) {
	o := appConfig{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logging.Discard()
	}

	scheme, err := theme.Parse(cfg.Theme)
	if err != nil {
		o.logger.Warn("falling back to light theme", "err", err)
	}

	adapter := o.adapter
	if adapter == nil {
		adapter, err = store.Open(ctx, cfg.Storage.Backend, cfg.Storage.Dir)
		if err != nil {
			return nil, fmt.Errorf("open storage: %w", err)
		}
	}

	todoOpts := []todo.Option{
		todo.WithLogger(o.logger),
		todo.WithQueueSize(cfg.QueueSize),
	}
	if o.onSaveError != nil {
		todoOpts = append(todoOpts, todo.OnSaveError(o.onSaveError))
	}

	return &State{
		Todos:   todo.New(adapter, todoOpts...),
		Logger:  o.logger,
		adapter: adapter,
		scheme:  scheme,
	}, nil
}

// Load reads the persisted list. Read failures are already logged by the
// store and the defaults are in place, so they are not returned.
func (s *State) Load(ctx context.Context) {
	if err := s.Todos.Load(ctx); err != nil && !errors.Is(err, todo.ErrPersistenceRead) {
		s.Logger.Warn("load skipped", "err", err)
	}
}

func (s *State) Scheme() theme.Scheme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scheme
}

// ToggleTheme switches between light and dark and returns the new scheme.
func (s *State) ToggleTheme() theme.Scheme {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scheme = s.scheme.Toggle()
	return s.scheme
}

// Close flushes pending writes and releases the storage backend. When the
// writer has not drained by the time ctx ends, the backend is left open so
// the writes still in flight can finish.
func (s *State) Close(ctx context.Context) error {
	if err := s.Todos.Close(ctx); err != nil {
		s.Logger.Warn("pending writes not drained; storage left open", "err", err)
		return err
	}
	return store.Close(s.adapter)
}
