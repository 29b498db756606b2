package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	dir        string
	configPath string
}

func setupTestEnv(t *testing.T, backend string) testEnv {
	t.Helper()
	t.Setenv("TADA_STORE", "")
	t.Setenv("TADA_THEME", "")
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := "storage:\n  backend: " + backend + "\n  dir: " + filepath.Join(dir, "data") + "\n"
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))
	return testEnv{dir: dir, configPath: configPath}
}

func (e testEnv) run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var out, errw bytes.Buffer
	code := Run(args, Options{ConfigPath: e.configPath, Stdout: &out, Stderr: &errw})
	return code, out.String(), errw.String()
}

func TestHelp(t *testing.T) {
	var out bytes.Buffer
	assert.Equal(t, 0, Run([]string{"help"}, Options{Stdout: &out, Stderr: &out}))
	assert.Contains(t, out.String(), "Subcommands:")

	out.Reset()
	assert.Equal(t, 2, Run(nil, Options{Stdout: &out, Stderr: &out}))
}

func TestUsageErrors(t *testing.T) {
	env := setupTestEnv(t, "json")
	tests := [][]string{
		{"add"},
		{"done"},
		{"done", "x"},
		{"rm", "1", "2"},
		{"frobnicate"},
	}
	for _, args := range tests {
		code, _, _ := env.run(t, args...)
		assert.Equal(t, 2, code, "args %v", args)
	}
}

func TestPrintShowsDefaultsOnFirstRun(t *testing.T) {
	env := setupTestEnv(t, "json")

	code, out, _ := env.run(t, "print")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Clean the house")
	// the default list is persisted by the first run
	_, err := os.Stat(filepath.Join(env.dir, "data", "TodoApp.json"))
	assert.NoError(t, err)
}

func TestAddToggleRemoveAcrossRuns(t *testing.T) {
	for _, backend := range []string{"json", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			env := setupTestEnv(t, backend)

			code, out, _ := env.run(t, "add", "Buy", "milk")
			require.Equal(t, 0, code)
			assert.Contains(t, out, "added #11")

			code, out, _ = env.run(t, "done", "11")
			require.Equal(t, 0, code)
			assert.Contains(t, out, "#11 done")

			var buf, errw bytes.Buffer
			code = Run([]string{"print"}, Options{ConfigPath: env.configPath, Group: true, Stdout: &buf, Stderr: &errw})
			require.Equal(t, 0, code)
			text := buf.String()
			assert.Greater(t, strings.Index(text, "Buy milk"), strings.Index(text, "Done"))

			code, out, _ = env.run(t, "rm", "11")
			require.Equal(t, 0, code)
			assert.Contains(t, out, "removed #11")

			code, out, _ = env.run(t, "print")
			require.Equal(t, 0, code)
			assert.NotContains(t, out, "Buy milk")
		})
	}
}

func TestMissingIDIsUsageError(t *testing.T) {
	env := setupTestEnv(t, "json")

	code, _, errOut := env.run(t, "done", "999")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "no item with id 999")

	code, _, _ = env.run(t, "rm", "999")
	assert.Equal(t, 2, code)
}

func TestBlankAddIsRejected(t *testing.T) {
	env := setupTestEnv(t, "json")
	code, _, errOut := env.run(t, "add", "   ")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "empty title")
}

func TestCorruptStorageFallsBackToDefaults(t *testing.T) {
	env := setupTestEnv(t, "json")
	dataDir := filepath.Join(env.dir, "data")
	require.NoError(t, os.MkdirAll(dataDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "TodoApp.json"),
		[]byte(`{"key":"TodoApp","value":"not a list"}`), 0o644))

	code, out, errOut := env.run(t, "print")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Clean the house")
	assert.Contains(t, errOut, "persistence read failed")
}

func TestUnknownBackend(t *testing.T) {
	env := setupTestEnv(t, "redis")
	code, _, errOut := env.run(t, "print")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "unknown storage backend")
}

func TestPrintGroupFlagAfterSubcommand(t *testing.T) {
	env := setupTestEnv(t, "json")

	code, out, _ := env.run(t, "print", "-group")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Pending")
	assert.Contains(t, out, "Done")

	code, out, _ = env.run(t, "print")
	require.Equal(t, 0, code)
	assert.NotContains(t, out, "Pending")
}

func TestPrintRejectsExtraArguments(t *testing.T) {
	env := setupTestEnv(t, "json")

	code, _, errOut := env.run(t, "print", "extra")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "usage: todo print")

	code, _, _ = env.run(t, "print", "-bogus")
	assert.Equal(t, 2, code)
}

func TestConfigWritesDefaultsOnce(t *testing.T) {
	t.Setenv("TADA_STORE", "")
	t.Setenv("TADA_THEME", "")
	path := filepath.Join(t.TempDir(), "tada", "config.yaml")
	run := func(args ...string) (int, string) {
		var out, errw bytes.Buffer
		code := Run(args, Options{ConfigPath: path, Stdout: &out, Stderr: &errw})
		return code, out.String()
	}

	code, out := run("config")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "wrote "+path)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "backend: json")
	assert.Contains(t, string(b), "theme: light")

	require.NoError(t, os.WriteFile(path, []byte("theme: dark\n"), 0o644))
	code, out = run("config")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "already exists")
	b, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "theme: dark\n", string(b))

	code, _ = run("config", "extra")
	assert.Equal(t, 2, code)
}
