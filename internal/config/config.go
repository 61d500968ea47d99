package config

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/andyrewlee/conscroll/internal/scrollback"
)

// KeyMapConfig holds user overrides for keybindings.
type KeyMapConfig struct {
	Bindings map[string][]string `json:"bindings,omitempty"`
}

// BindingFor returns the configured keys for an action, if present.
func (k KeyMapConfig) BindingFor(action string) ([]string, bool) {
	if len(k.Bindings) == 0 {
		return nil, false
	}
	if keys, ok := k.Bindings[action]; ok {
		return keys, true
	}
	if keys, ok := k.Bindings[strings.ToLower(action)]; ok {
		return keys, true
	}
	return nil, false
}

// Config holds the application configuration
type Config struct {
	Paths *Paths

	// Columns and Rows are the initial shape of new surfaces.
	Columns int
	Rows    int

	// Command is the shell command fed into each surface.
	Command string

	LogLevel string
	KeyMap   KeyMapConfig
}

// DefaultConfig returns the default configuration
func DefaultConfig() (*Config, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return nil, err
	}

	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "sh"
	}

	return &Config{
		Paths:    paths,
		Columns:  scrollback.DefaultWidth,
		Rows:     scrollback.DefaultHeight,
		Command:  shell,
		LogLevel: "info",
	}, nil
}

// Load reads the config file and applies any overrides it contains on
// top of the defaults. A missing or unparseable file yields defaults.
func Load() (*Config, error) {
	cfg, err := DefaultConfig()
	if err != nil {
		return nil, err
	}
	cfg.applyFile(cfg.Paths.ConfigPath)
	return cfg, nil
}

// applyFile merges overrides from one JSON file. Fields that are
// absent keep their current values; a broken file is ignored.
func (c *Config) applyFile(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	var raw struct {
		Surface struct {
			Columns *int `json:"columns"`
			Rows    *int `json:"rows"`
		} `json:"surface"`
		Command  *string      `json:"command"`
		LogLevel *string      `json:"log_level"`
		KeyMap   KeyMapConfig `json:"keymap"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return
	}

	if raw.Surface.Columns != nil && *raw.Surface.Columns > 0 {
		c.Columns = *raw.Surface.Columns
	}
	if raw.Surface.Rows != nil && *raw.Surface.Rows > 0 {
		c.Rows = *raw.Surface.Rows
	}
	if raw.Command != nil && *raw.Command != "" {
		c.Command = *raw.Command
	}
	if raw.LogLevel != nil && *raw.LogLevel != "" {
		c.LogLevel = *raw.LogLevel
	}
	if len(raw.KeyMap.Bindings) > 0 {
		c.KeyMap = raw.KeyMap
	}
}

// Reload re-reads the config file, returning a fresh config. Used by
// the watcher when the file changes on disk.
func (c *Config) Reload() (*Config, error) {
	cfg, err := DefaultConfig()
	if err != nil {
		return nil, err
	}
	cfg.Paths = c.Paths
	cfg.applyFile(c.Paths.ConfigPath)
	return cfg, nil
}
