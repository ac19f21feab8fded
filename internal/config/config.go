// Package config loads the optional yaml configuration for the fourth CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the REPL settings a user may override.
type Config struct {
	Prompt  string `yaml:"prompt"`
	History string `yaml:"history"`
	Locale  string `yaml:"locale"`
	Trace   bool   `yaml:"trace"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	history := ".fourth_history"
	if home, err := os.UserHomeDir(); err == nil {
		history = filepath.Join(home, ".fourth_history")
	}
	return &Config{
		Prompt:  "ok> ",
		History: history,
		Locale:  "en_US",
	}
}

// Load reads configuration from explicit (when non-empty), else the first
// of $FOURTH_CONFIG, ./fourth.yaml, ~/.config/fourth/fourth.yaml. A missing
// file is not an error unless it was named explicitly.
func Load(explicit string) (*Config, error) {
	cfg := Default()

	path := explicit
	if path == "" {
		path = findPath()
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

func findPath() string {
	if path := os.Getenv("FOURTH_CONFIG"); path != "" {
		return path
	}
	if _, err := os.Stat("fourth.yaml"); err == nil {
		return "fourth.yaml"
	}
	if home, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(home, ".config", "fourth", "fourth.yaml")
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
