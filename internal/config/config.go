package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Storage   Storage `yaml:"storage"`
	Theme     string  `yaml:"theme"`
	Log       Log     `yaml:"log"`
	QueueSize int     `yaml:"queue_size"`
}

// Storage selects the persistence backend and where it keeps its data.
type Storage struct {
	Backend string `yaml:"backend"`
	Dir     string `yaml:"dir"`
}

type Log struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

const (
	DefaultBackend   = "json"
	DefaultTheme     = "light"
	DefaultLogLevel  = "info"
	DefaultQueueSize = 64
)

// Default returns the configuration used when no file exists.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Path returns explicit when set, otherwise the per-user config location.
func Path(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	return getConfigPath()
}

// Load reads the config at path, or at the user's config directory when path
// is empty. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	path, err := Path(path)
	if err != nil {
		c := Default()
		c.applyEnv()
		return c, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		c := Default()
		c.applyEnv()
		return c, nil
	}
	if err != nil {
		return nil, err
	}

	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	c.applyEnv()
	c.applyDefaults()
	return &c, nil
}

// Save writes the config to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// LogPath is where the TUI writes its log when none is configured.
func (c *Config) LogPath() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(c.Storage.Dir, "logs", "tada.log")
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "tada", "config.yaml"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "tada", "config.yaml"), nil
}

// applyEnv lets TADA_STORE and TADA_THEME override the file.
func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv("TADA_STORE")); v != "" {
		c.Storage.Backend = v
	}
	if v := strings.TrimSpace(os.Getenv("TADA_THEME")); v != "" {
		c.Theme = v
	}
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.Storage.Backend == "" {
		c.Storage.Backend = DefaultBackend
	}
	if c.Storage.Dir == "" {
		c.Storage.Dir = defaultDataDir()
	}
	if c.Theme == "" {
		c.Theme = DefaultTheme
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.QueueSize <= 0 {
		c.QueueSize = DefaultQueueSize
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tada"
	}
	return filepath.Join(home, ".tada")
}
