// Package store defines the key/value persistence port used by the todo
// store and picks a concrete backend for it.
package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/idilsaglam/tada/internal/store/jsonstore"
	"github.com/idilsaglam/tada/internal/store/memstore"
	"github.com/idilsaglam/tada/internal/store/sqlitestore"
)

// Key is the single key the todo list is stored under.
const Key = "TodoApp"

// Backend names accepted by Open.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// ErrUnknownBackend is returned by Open for an unrecognised backend name.
var ErrUnknownBackend = errors.New("unknown storage backend")

// Adapter is an opaque string key/value store. Get reports ok=false when the
// key has never been written. Set overwrites unconditionally.
type Adapter interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Closer is implemented by backends holding OS resources.
type Closer interface {
	Close() error
}

// Open returns the backend named by backend, rooted at dir.
func Open(ctx context.Context, backend, dir string) (Adapter, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case BackendJSON, "":
		return jsonstore.New(dir)
	case BackendSQLite:
		return sqlitestore.Open(ctx, filepath.Join(dir, "tada.db"))
	case BackendMemory:
		return memstore.New(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
}

// Close releases backend resources if the adapter holds any.
func Close(a Adapter) error {
	if c, ok := a.(Closer); ok {
		return c.Close()
	}
	return nil
}
