// Package config reads the optional .bolt.yaml file which sets the defaults
// of the bolt command.
//
//	mode: collect
//	log:
//	  level: debug
//	  sections: [check.unify]
//	color: false
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is looked up in the working directory and its parents
const FileName = ".bolt.yaml"

type Config struct {
	// Mode is fail-fast or collect
	Mode string `yaml:"mode,omitempty"`
	Log  Log    `yaml:"log,omitempty"`
	// Color forces colored diagnostics on or off. Unset means only when
	// writing to a terminal.
	Color *bool `yaml:"color,omitempty"`
}

type Log struct {
	// Level is one of debug, info, warn or error
	Level string `yaml:"level,omitempty"`
	// Sections lists the prefixes of the sections whose debug records are printed
	Sections []string `yaml:"sections,omitempty"`
}

func Default() *Config {
	return &Config{Mode: "fail-fast", Log: Log{Level: "warn"}}
}

// Load reads the config at path
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse reads a config from data. Missing settings keep their default.
func Parse(data []byte, path string) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Find searches for FileName in dir and then in its parents.
// It returns an empty path and no error when there is none.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// LoadFrom finds the config of dir and loads it, or returns Default
func LoadFrom(dir string) (*Config, error) {
	path, err := Find(dir)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Level parses Log.Level
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelWarn, fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	return level, nil
}

func (c *Config) validate(path string) error {
	switch c.Mode {
	case "fail-fast", "collect":
	default:
		return fmt.Errorf("%s: mode must be fail-fast or collect, not %q", path, c.Mode)
	}
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
