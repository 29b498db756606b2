package jsonstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMissingFile(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	_, ok, err := s.Get(context.Background(), "TodoApp")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSetThenGet(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)

	blob := `[{"id":1,"title":"A","completed":false}]`
	require.NoError(t, s.Set(ctx, "TodoApp", blob))
	require.NoError(t, s.Set(ctx, "TodoApp", "[]"))

	v, ok, err := s.Get(ctx, "TodoApp")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)

	// a second store over the same directory sees the value
	s2, err := New(dir)
	require.NoError(t, err)
	v, ok, err = s2.Get(ctx, "TodoApp")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)
}

func TestSetLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)
	require.NoError(t, s.Set(context.Background(), "TodoApp", "[]"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "TodoApp.json", entries[0].Name())
}

func TestGetCorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "TodoApp.json"), []byte("{not json"), 0o644))
	s, err := New(dir)
	require.NoError(t, err)

	_, _, err = s.Get(context.Background(), "TodoApp")
	assert.Error(t, err)
}

func TestInvalidKey(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)
	assert.Error(t, s.Set(context.Background(), "../escape", "x"))
}

func TestCancelledContext(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.Set(ctx, "TodoApp", "[]"), context.Canceled)
	_, _, err = s.Get(ctx, "TodoApp")
	assert.ErrorIs(t, err, context.Canceled)
}
