package app

import (
	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tada/internal/store"
)

// Option is a functional option for configuring State initialization
type Option func(*appConfig)

type appConfig struct {
	logger      *log.Logger
	adapter     store.Adapter
	onSaveError func(error)
}

// WithLogger sets the logger for the application
func WithLogger(logger *log.Logger) Option {
	return func(cfg *appConfig) {
		cfg.logger = logger
	}
}

// WithAdapter bypasses the configured backend.
func WithAdapter(a store.Adapter) Option {
	return func(cfg *appConfig) {
		cfg.adapter = a
	}
}

// WithSaveErrorHandler is passed through to the todo store.
func WithSaveErrorHandler(fn func(error)) Option {
	return func(cfg *appConfig) {
		cfg.onSaveError = fn
	}
}
