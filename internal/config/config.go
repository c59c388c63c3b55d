// Package config loads the docnav YAML configuration.
//
// Load reads .env files next to the config, expands ${VAR} references, decodes
// the YAML, applies defaults and validates. The theme section holds the root
// locale; entries under theme.locales override it for routes below their prefix.
package config

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docnav/internal/author"
	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/navbar"
	"git.home.luguber.info/inful/docnav/internal/outline"
	"git.home.luguber.info/inful/docnav/internal/sidebar"
)

// Config is the root configuration document.
type Config struct {
	Site     SiteConfig     `yaml:"site"`
	Theme    ThemeConfig    `yaml:"theme"`
	Markdown MarkdownConfig `yaml:"markdown"`
	Server   ServerConfig   `yaml:"server"`
	Logging  LoggingConfig  `yaml:"logging"`

	revision string
}

// SiteConfig describes the content being served.
type SiteConfig struct {
	Title string `yaml:"title"`
	// Base is the URL path the site is mounted under; links outside it are external.
	Base string `yaml:"base"`
	// ContentDir is resolved relative to the config file.
	ContentDir string `yaml:"content_dir"`
}

// LocaleConfig holds the navigation settings of one locale. Nil fields inherit
// from the root locale.
type LocaleConfig struct {
	Lang         string          `yaml:"lang,omitempty"`
	HeadingDepth *int            `yaml:"heading_depth,omitempty"`
	Sidebar      *sidebar.Config `yaml:"sidebar,omitempty"`
	Navbar       []navbar.Item   `yaml:"navbar,omitempty"`
	Author       *author.Spec    `yaml:"author,omitempty"`
}

// ThemeConfig is the root locale plus per-prefix locale overrides.
type ThemeConfig struct {
	LocaleConfig `yaml:",inline"`
	Locales      map[string]LocaleConfig `yaml:"locales,omitempty"`
}

// MarkdownConfig selects the heading levels collected into page outlines.
type MarkdownConfig struct {
	HeaderMinLevel int `yaml:"header_min_level"`
	HeaderMaxLevel int `yaml:"header_max_level"`
}

// OutlineOptions converts the heading level range for the outline package.
func (m MarkdownConfig) OutlineOptions() outline.Options {
	return outline.Options{MinLevel: m.HeaderMinLevel, MaxLevel: m.HeaderMaxLevel}
}

// ServerConfig configures the preview server.
type ServerConfig struct {
	Addr        string `yaml:"addr"`
	Watch       bool   `yaml:"watch"`
	Debounce    string `yaml:"debounce"`
	Metrics     bool   `yaml:"metrics"`
	MetricsPath string `yaml:"metrics_path"`
}

// LoggingConfig selects the log level and handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// Revision identifies the loaded file content after env expansion. It is
// empty for configs not produced by Load.
func (c *Config) Revision() string { return c.revision }

// Load loads, defaults and validates the configuration at configPath.
func Load(configPath string) (*Config, error) {
	dir := filepath.Dir(configPath)
	if err := loadEnvFiles(dir); err != nil {
		return nil, err
	}

	// #nosec G304 -- config path is supplied by the operator.
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigError("configuration file not found").
				WithCause(err).
				WithContext("path", configPath).
				Build()
		}
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read config file").
			WithContext("path", configPath).
			Fatal().
			Build()
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "invalid configuration").
			WithContext("path", configPath).
			Fatal().
			Build()
	}
	if cfg.Site.ContentDir != "" && !filepath.IsAbs(cfg.Site.ContentDir) {
		cfg.Site.ContentDir = filepath.Join(dir, cfg.Site.ContentDir)
	}
	return cfg, nil
}

// Parse decodes YAML content (expanding ${VAR} references), applies defaults
// and validates the result.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}

	sum := sha256.Sum256([]byte(expanded))
	cfg.revision = hex.EncodeToString(sum[:8])
	return &cfg, nil
}
