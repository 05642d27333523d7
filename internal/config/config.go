// Package config handles XDG configuration directory and file paths.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"lumina/internal/service"
)

const (
	// AppName is the application directory name.
	AppName = "lumina"

	// TokenFile is the stored bearer credential filename.
	TokenFile = "token.json"

	// MirrorFile is the advisory local mirror of the task list. The
	// store is authoritative; a fresh load always re-fetches.
	MirrorFile = "tasks.json"

	// DefaultServerURL is the task store address used when neither the
	// --server flag nor LUMINA_SERVER is set.
	DefaultServerURL = "http://localhost:8000"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// ServerURL is the base URL of the task store.
	ServerURL string

	// Quiet suppresses informational output.
	Quiet bool

	// Debug enables debug logging.
	Debug bool
}

// New creates a new Config with the default or specified config
// directory and server URL.
func New(configDir, serverURL string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	if serverURL == "" {
		serverURL = os.Getenv("LUMINA_SERVER")
	}
	if serverURL == "" {
		serverURL = DefaultServerURL
	}
	return &Config{Dir: dir, ServerURL: serverURL}, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// TokenPath returns the path to the stored credential file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// MirrorPath returns the path to the local task mirror file.
func (c *Config) MirrorPath() string {
	return filepath.Join(c.Dir, MirrorFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasToken checks if a stored credential exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// ReadToken returns the stored bearer credential.
func (c *Config) ReadToken() (string, error) {
	data, err := os.ReadFile(c.TokenPath())
	if err != nil {
		return "", err
	}
	var stored struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(data, &stored); err != nil {
		return "", err
	}
	return stored.AccessToken, nil
}

// WriteToken saves the bearer credential with mode 0600.
func (c *Config) WriteToken(token string) error {
	if err := c.EnsureDir(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(struct {
		AccessToken string `json:"access_token"`
	}{token}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.TokenPath(), data, 0600)
}

// RemoveToken deletes the stored credential.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}

// Clear discards the stored credential. It implements the coordinator's
// credentials sink for the session-expired path; a missing file is not
// an error.
func (c *Config) Clear() error {
	err := c.RemoveToken()
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// WriteTasks saves the advisory local mirror of the task list. It
// implements the coordinator's mirror sink.
func (c *Config) WriteTasks(tasks []service.Task) error {
	if err := c.EnsureDir(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.MirrorPath(), data, 0600)
}

// ReadTasks returns the mirrored task list, or nil if no mirror exists.
func (c *Config) ReadTasks() ([]service.Task, error) {
	data, err := os.ReadFile(c.MirrorPath())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var tasks []service.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}
