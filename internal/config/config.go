// Package config handles TOML-based configuration loading and validation.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"

	"reelscout/internal/media"
)

// Section is an extra home-page row backed by a listing path on the site.
type Section struct {
	Name string `toml:"name"`
	Path string `toml:"path"`
}

// Config holds all application configuration.
type Config struct {
	BaseURL        string    `toml:"base_url"`
	Name           string    `toml:"name"`
	Language       string    `toml:"language"`
	Concurrency    int       `toml:"concurrency"`
	TimeoutSeconds int       `toml:"timeout_seconds"`
	UserAgent      string    `toml:"user_agent"`
	SubsLanguage   string    `toml:"subs_language"`
	Debug          bool      `toml:"debug"`
	LogLevel       string    `toml:"log_level"`
	LogFile        string    `toml:"log_file"`
	Listen         string    `toml:"listen"`
	Sections       []Section `toml:"sections"`
}

// Concurrency bounds for detail-page probing and candidate fetches.
const (
	MinConcurrency = 1
	MaxConcurrency = 16
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		BaseURL:        "https://tv2.egydead.live",
		Name:           "EgyDead",
		Language:       "ar",
		Concurrency:    8,
		TimeoutSeconds: 30,
		SubsLanguage:   "arabic",
		Debug:          false,
		LogLevel:       "info",
		Listen:         "127.0.0.1:8088",
		Sections:       []Section{{Name: "Latest", Path: "/"}},
	}
}

// configDir returns the XDG-compliant config directory.
func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "reelscout"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "reelscout"), nil
}

// ConfigPath returns the path to the config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file and merges with defaults.
// If the config file doesn't exist, defaults are returned.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err != nil {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks config values are within acceptable bounds.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("base_url %q must be an absolute http(s) URL", c.BaseURL)
	}

	if c.Concurrency < MinConcurrency || c.Concurrency > MaxConcurrency {
		return fmt.Errorf("concurrency %d out of range (valid: %d-%d)", c.Concurrency, MinConcurrency, MaxConcurrency)
	}

	if c.TimeoutSeconds < 1 || c.TimeoutSeconds > 300 {
		return fmt.Errorf("timeout_seconds %d out of range (valid: 1-300)", c.TimeoutSeconds)
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("unsupported log_level %q", c.LogLevel)
	}

	for i, s := range c.Sections {
		if strings.TrimSpace(s.Name) == "" {
			return fmt.Errorf("section #%d has no name", i+1)
		}
		if !strings.HasPrefix(s.Path, "/") {
			return fmt.Errorf("section %q path %q must start with /", s.Name, s.Path)
		}
	}

	return nil
}

// Timeout returns the per-request HTTP timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Site is the read-only origin configuration shared by the provider and
// the resolver. It is fixed at construction.
type Site struct {
	MainURL  string // No trailing slash
	Name     string
	Lang     string
	Kinds    []media.Kind
	Sections []Section
}

// Site derives the site origin configuration.
func (c *Config) Site() Site {
	sections := c.Sections
	if len(sections) == 0 {
		sections = Default().Sections
	}
	return Site{
		MainURL:  strings.TrimRight(c.BaseURL, "/"),
		Name:     c.Name,
		Lang:     c.Language,
		Kinds:    []media.Kind{media.Movie, media.Series},
		Sections: append([]Section(nil), sections...),
	}
}
