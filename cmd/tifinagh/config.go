package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Conversion modes.
const (
	ModeLatin    = "latin"    // Latin → Tifinagh
	ModeTalatint = "talatint" // Tifinagh → Talatint
	ModeArabic   = "arabic"   // Arabic → Tifinagh
	ModeAuto     = "auto"     // mixed Latin/Arabic → Tifinagh
	ModeKeys     = "keys"     // keystroke replay through the input method
)

var modes = []string{ModeLatin, ModeTalatint, ModeArabic, ModeAuto, ModeKeys}

// Config holds the settings of the command, read from a TOML or YAML file
// and overridden by flags.
type Config struct {
	Mode       string `toml:"mode" yaml:"mode"`
	Layout     string `toml:"layout" yaml:"layout"`
	TraceLevel string `toml:"trace_level" yaml:"trace_level"`
	Flush      bool   `toml:"flush" yaml:"flush"`
	Watch      bool   `toml:"watch" yaml:"watch"` // reload the layout file on change
}

// DefaultConfig returns the settings used without a config file.
func DefaultConfig() *Config {
	return &Config{
		Mode:       ModeLatin,
		TraceLevel: "Error",
		Flush:      true,
	}
}

// Validate checks the settings for consistency.
func (c *Config) Validate() error {
	if c.Watch && c.Layout == "" {
		return errors.New("watch requires a layout file")
	}
	for _, m := range modes {
		if c.Mode == m {
			return nil
		}
	}
	return fmt.Errorf("unknown mode %q (one of %s)", c.Mode, strings.Join(modes, ", "))
}

// loadConfig reads a config file based on its extension. An empty path
// yields the defaults.
func loadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	switch filepath.Ext(path) {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("decode TOML: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("decode YAML: %w", err)
		}
	default:
		if err := autoDetectAndParse(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	if cfg.Layout != "" && !filepath.IsAbs(cfg.Layout) {
		cfg.Layout = filepath.Join(filepath.Dir(path), cfg.Layout)
	}
	return cfg, nil
}

// autoDetectAndParse tries TOML first, then YAML.
func autoDetectAndParse(data []byte, cfg *Config) error {
	if _, err := toml.Decode(string(data), cfg); err == nil {
		return nil
	}
	if err := yaml.Unmarshal(data, cfg); err == nil {
		return nil
	}
	return errors.New("unable to parse config file (tried TOML, YAML)")
}
