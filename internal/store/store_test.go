package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/tada/internal/store/jsonstore"
	"github.com/idilsaglam/tada/internal/store/memstore"
	"github.com/idilsaglam/tada/internal/store/sqlitestore"
)

func TestOpenBackends(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		backend string
		check   func(t *testing.T, a Adapter)
	}{
		{"", func(t *testing.T, a Adapter) { assert.IsType(t, &jsonstore.Store{}, a) }},
		{"json", func(t *testing.T, a Adapter) { assert.IsType(t, &jsonstore.Store{}, a) }},
		{"SQLite", func(t *testing.T, a Adapter) { assert.IsType(t, &sqlitestore.Store{}, a) }},
		{"memory", func(t *testing.T, a Adapter) { assert.IsType(t, &memstore.Store{}, a) }},
	}
	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			a, err := Open(ctx, tt.backend, t.TempDir())
			require.NoError(t, err)
			defer Close(a)
			tt.check(t, a)

			require.NoError(t, a.Set(ctx, Key, "[]"))
			v, ok, err := a.Get(ctx, Key)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "[]", v)
		})
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open(context.Background(), "redis", t.TempDir())
	assert.ErrorIs(t, err, ErrUnknownBackend)
}
