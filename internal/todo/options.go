package todo

import (
	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tada/internal/model"
)

// Option is a functional option for configuring a Store
type Option func(*storeConfig)

type storeConfig struct {
	logger      *log.Logger
	queueSize   int
	defaults    func() []model.Item
	onSaveError func(error)
}

// WithLogger sets the operator log persistence failures are reported to.
func WithLogger(logger *log.Logger) Option {
	return func(cfg *storeConfig) {
		cfg.logger = logger
	}
}

// WithQueueSize bounds how many snapshots may wait for the writer before a
// mutation blocks.
func WithQueueSize(n int) Option {
	return func(cfg *storeConfig) {
		if n > 0 {
			cfg.queueSize = n
		}
	}
}

// WithDefaults replaces the bundled dataset installed when storage is empty.
func WithDefaults(fn func() []model.Item) Option {
	return func(cfg *storeConfig) {
		cfg.defaults = fn
	}
}

// OnSaveError registers a callback run on the writer goroutine after a
// failed write, in addition to logging it. The callback must not call back
// into the Store.
func OnSaveError(fn func(error)) Option {
	return func(cfg *storeConfig) {
		cfg.onSaveError = fn
	}
}
