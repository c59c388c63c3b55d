package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// validate checks cross-field constraints and canonicalises enum-like values in place.
func validate(cfg *Config) error {
	if !strings.HasPrefix(cfg.Site.Base, "/") || !strings.HasSuffix(cfg.Site.Base, "/") {
		return fmt.Errorf("site.base must start and end with '/', got %q", cfg.Site.Base)
	}

	if err := validateLocale("theme", &cfg.Theme.LocaleConfig); err != nil {
		return err
	}
	for prefix, loc := range cfg.Theme.Locales {
		if !strings.HasPrefix(prefix, "/") || !strings.HasSuffix(prefix, "/") {
			return fmt.Errorf("theme.locales key %q must start and end with '/'", prefix)
		}
		if err := validateLocale("theme.locales."+prefix, &loc); err != nil {
			return err
		}
		cfg.Theme.Locales[prefix] = loc
	}

	m := cfg.Markdown
	if m.HeaderMinLevel < 1 || m.HeaderMaxLevel > 6 || m.HeaderMinLevel > m.HeaderMaxLevel {
		return fmt.Errorf("markdown header levels must satisfy 1 <= min <= max <= 6, got %d..%d", m.HeaderMinLevel, m.HeaderMaxLevel)
	}

	if d, err := time.ParseDuration(cfg.Server.Debounce); err != nil {
		return fmt.Errorf("server.debounce: %w", err)
	} else if d <= 0 {
		return errors.New("server.debounce must be positive")
	}
	if !strings.HasPrefix(cfg.Server.MetricsPath, "/") {
		return fmt.Errorf("server.metrics_path must start with '/', got %q", cfg.Server.MetricsPath)
	}

	level, err := logLevels.Parse(string(cfg.Logging.Level))
	if err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	format, err := logFormats.Parse(string(cfg.Logging.Format))
	if err != nil {
		return fmt.Errorf("logging.format: %w", err)
	}
	cfg.Logging.Level, cfg.Logging.Format = level, format
	return nil
}

func validateLocale(field string, loc *LocaleConfig) error {
	if loc.HeadingDepth != nil && *loc.HeadingDepth < 0 {
		return fmt.Errorf("%s.heading_depth must not be negative, got %d", field, *loc.HeadingDepth)
	}
	if loc.Lang != "" {
		tag, err := language.Parse(loc.Lang)
		if err != nil {
			return fmt.Errorf("%s.lang: %w", field, err)
		}
		loc.Lang = tag.String()
	}
	return nil
}

// DebounceDuration returns the parsed reload debounce interval.
func (s ServerConfig) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(s.Debounce)
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(DefaultDebounce)
	}
	return d
}
