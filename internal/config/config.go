package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Makepad-fr/mxr/internal/model"
)

// DefaultLoaderDelay matches the simulated latency of the demo API.
const DefaultLoaderDelay = 500 * time.Millisecond

// Config mirrors the YAML config file.
type Config struct {
	Theme  string       `yaml:"theme"`
	Color  string       `yaml:"color"`
	Log    LogConfig    `yaml:"log"`
	Loader LoaderConfig `yaml:"loader"`
	Todo   TodoConfig   `yaml:"todo"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type LoaderConfig struct {
	// Delay is a Go duration string ("500ms", "1s").
	Delay string `yaml:"delay"`
	// Source is an optional JSON or YAML seed file. Empty means the built-in seed.
	Source string `yaml:"source"`
}

type TodoConfig struct {
	DefaultName string `yaml:"default_name"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Theme:  "classic",
		Color:  "auto",
		Log:    LogConfig{Level: "info"},
		Loader: LoaderConfig{Delay: DefaultLoaderDelay.String()},
		Todo:   TodoConfig{DefaultName: model.DefaultName},
	}
}

// Load reads the YAML file at path on top of Default. An empty path
// returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("config %s: %w", path, err)
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch strings.ToLower(c.Theme) {
	case "", "classic", "neon", "mono":
	default:
		return fmt.Errorf("unknown theme %q", c.Theme)
	}
	switch strings.ToLower(c.Color) {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("unknown color mode %q (want auto, always or never)", c.Color)
	}
	if _, err := c.LoaderDelay(); err != nil {
		return err
	}
	return nil
}

// LoaderDelay parses Loader.Delay; empty means DefaultLoaderDelay.
func (c Config) LoaderDelay() (time.Duration, error) {
	if strings.TrimSpace(c.Loader.Delay) == "" {
		return DefaultLoaderDelay, nil
	}
	d, err := time.ParseDuration(c.Loader.Delay)
	if err != nil {
		return 0, fmt.Errorf("loader delay: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("loader delay: negative duration %s", d)
	}
	return d, nil
}
