// Package config loads the modelcards YAML configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/germanamz/modelcards/pkg/gateway"
	"github.com/germanamz/modelcards/pkg/view"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// DefaultPath is looked up in the working directory when no path is given.
const DefaultPath = "modelcards.yaml"

// Config is the top-level configuration.
type Config struct {
	Gateway GatewayConfig `yaml:"gateway"`
	View    ViewConfig    `yaml:"view"`
	Log     LogConfig     `yaml:"log"`
}

// GatewayConfig describes the catalog endpoint.
type GatewayConfig struct {
	BaseURL     string            `yaml:"base_url"`
	CatalogPath string            `yaml:"catalog_path"`
	APIKey      string            `yaml:"api_key"` //nolint:gosec // configuration field, usually a ${VAR} reference
	Headers     map[string]string `yaml:"headers"`
	Timeout     string            `yaml:"timeout"` // Duration string; empty or "0" means no timeout.
}

// ViewConfig holds the initial query and the collation locale.
type ViewConfig struct {
	Capability string `yaml:"capability"`
	Sort       string `yaml:"sort"`
	Locale     string `yaml:"locale"`
}

// LogConfig controls the slog output. The TUI owns the terminal, so logs
// only go to a file.
type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Gateway: GatewayConfig{
			BaseURL:     gateway.DefaultBaseURL,
			CatalogPath: gateway.DefaultCatalogPath,
		},
		View: ViewConfig{
			Capability: string(view.CapabilityAll),
			Sort:       string(view.SortNameAsc),
			Locale:     "en",
		},
		Log: LogConfig{Level: "info"},
	}
}

// LoadConfig reads a YAML file on top of Default. Environment variables
// referenced as ${VAR} or $VAR are expanded before parsing, so the key can
// live in the environment or a .env file instead of the config.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is caller-provided configuration, not user input
	if err != nil {
		return Config{}, fmt.Errorf("config: load: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}

	return cfg, nil
}

// Resolve picks the config to use: the explicit path, else DefaultPath in
// the working directory when it exists, else Default.
func Resolve(path string) (Config, error) {
	if path != "" {
		return LoadConfig(path)
	}

	if _, err := os.Stat(DefaultPath); err == nil {
		return LoadConfig(DefaultPath)
	} else if !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("config: stat %s: %w", DefaultPath, err)
	}

	return Default(), nil
}

// Validate checks that the configuration is internally consistent.
func (c Config) Validate() error {
	u, err := url.Parse(c.Gateway.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("config: gateway: invalid base_url %q", c.Gateway.BaseURL)
	}
	if !strings.HasPrefix(c.Gateway.CatalogPath, "/") {
		return fmt.Errorf("config: gateway: catalog_path %q must start with /", c.Gateway.CatalogPath)
	}
	if _, err := c.Gateway.TimeoutDuration(); err != nil {
		return err
	}
	if _, err := c.View.Query(); err != nil {
		return err
	}
	if _, err := c.View.Tag(); err != nil {
		return err
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}

	return nil
}

// TimeoutDuration parses Timeout; empty means no timeout.
func (g GatewayConfig) TimeoutDuration() (time.Duration, error) {
	if g.Timeout == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(g.Timeout)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("config: gateway: invalid timeout %q", g.Timeout)
	}

	return d, nil
}

// Client builds a gateway client for this configuration. The key comes from
// the session, not from the config.
func (g GatewayConfig) Client(key string, log *slog.Logger) (*gateway.Client, error) {
	timeout, err := g.TimeoutDuration()
	if err != nil {
		return nil, err
	}

	c := gateway.New(strings.TrimRight(g.BaseURL, "/"), key, nil)
	c.CatalogPath = g.CatalogPath
	c.Headers = g.Headers
	c.Timeout = timeout
	c.Logger = log

	return c, nil
}

// Query returns the initial view query.
func (v ViewConfig) Query() (view.Query, error) {
	c, err := view.ParseCapability(v.Capability)
	if err != nil {
		return view.Query{}, fmt.Errorf("config: %w", err)
	}

	s, err := view.ParseSort(v.Sort)
	if err != nil {
		return view.Query{}, fmt.Errorf("config: %w", err)
	}

	return view.Query{Capability: c, Sort: s}, nil
}

// Tag parses Locale as a BCP 47 language tag.
func (v ViewConfig) Tag() (language.Tag, error) {
	if v.Locale == "" {
		return language.English, nil
	}

	tag, err := language.Parse(v.Locale)
	if err != nil {
		return language.Und, fmt.Errorf("config: view: invalid locale %q: %w", v.Locale, err)
	}

	return tag, nil
}

// SlogLevel maps Level to a slog.Level; empty means info.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	if l.Level == "" {
		return slog.LevelInfo, nil
	}

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("config: log: invalid level %q", l.Level)
	}

	return lvl, nil
}
