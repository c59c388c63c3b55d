package config

import "git.home.luguber.info/inful/docnav/internal/sidebar"

const (
	DefaultTitle       = "Documentation"
	DefaultBase        = "/"
	DefaultContentDir  = "docs"
	DefaultAddr        = "127.0.0.1:8080"
	DefaultDebounce    = "300ms"
	DefaultMetricsPath = "/metrics"
)

func applyDefaults(cfg *Config) {
	if cfg.Site.Title == "" {
		cfg.Site.Title = DefaultTitle
	}
	if cfg.Site.Base == "" {
		cfg.Site.Base = DefaultBase
	}
	if cfg.Site.ContentDir == "" {
		cfg.Site.ContentDir = DefaultContentDir
	}

	if cfg.Theme.HeadingDepth == nil {
		depth := sidebar.DefaultHeadingDepth
		cfg.Theme.HeadingDepth = &depth
	}

	if cfg.Markdown.HeaderMinLevel == 0 {
		cfg.Markdown.HeaderMinLevel = 1
	}
	if cfg.Markdown.HeaderMaxLevel == 0 {
		cfg.Markdown.HeaderMaxLevel = 6
	}

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = DefaultAddr
	}
	if cfg.Server.Debounce == "" {
		cfg.Server.Debounce = DefaultDebounce
	}
	if cfg.Server.MetricsPath == "" {
		cfg.Server.MetricsPath = DefaultMetricsPath
	}
}
