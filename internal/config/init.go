package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docnav/internal/author"
	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/navbar"
	"git.home.luguber.info/inful/docnav/internal/sidebar"
)

// Example returns the configuration written by Init.
func Example() *Config {
	depth := 2
	zhDepth := 1
	guide := navbar.GroupItem("Guide", "/guide/", navbar.PathItem("README.md"), navbar.PathItem("getting-started.md"))
	guide.Icon = "book"
	repo := navbar.LinkItem("GitHub", "https://github.com/your-org/your-docs")
	repo.Target = "_blank"

	rootSidebar := sidebar.Multi(
		sidebar.MultiEntry{Prefix: "/guide/", Items: []sidebar.Item{
			sidebar.PathItem("README.md"),
			sidebar.PathItem("getting-started.md"),
			sidebar.GroupItem("Advanced", "advanced/", sidebar.PathItem("configuration.md")),
		}},
		sidebar.MultiEntry{Prefix: "/", Items: []sidebar.Item{sidebar.PathItem("README.md")}},
	)
	zhSidebar := sidebar.Auto()

	return &Config{
		Site: SiteConfig{Title: "Project Docs", Base: DefaultBase, ContentDir: DefaultContentDir},
		Theme: ThemeConfig{
			LocaleConfig: LocaleConfig{
				Lang:         "en-US",
				HeadingDepth: &depth,
				Sidebar:      &rootSidebar,
				Navbar:       []navbar.Item{navbar.PathItem("/"), guide, repo},
				Author:       author.Names("${DOCS_AUTHOR}"),
			},
			Locales: map[string]LocaleConfig{
				"/zh/": {Lang: "zh-CN", HeadingDepth: &zhDepth, Sidebar: &zhSidebar, Navbar: []navbar.Item{navbar.PathItem("/zh/")}},
			},
		},
		Markdown: MarkdownConfig{HeaderMinLevel: 2, HeaderMaxLevel: 4},
		Server: ServerConfig{
			Addr:        DefaultAddr,
			Watch:       true,
			Debounce:    DefaultDebounce,
			Metrics:     true,
			MetricsPath: DefaultMetricsPath,
		},
		Logging: LoggingConfig{Level: LogLevelInfo, Format: LogFormatText},
	}
}

// Init writes the example configuration to configPath. An existing file is
// only replaced when force is set.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.ValidationError("configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).
			Build()
	}

	data, err := yaml.Marshal(Example())
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal example config").Build()
	}

	if dir := filepath.Dir(configPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to create config directory").
				WithContext("path", dir).
				Build()
		}
	}
	// #nosec G306 -- config is meant to be readable by the user's tools.
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write config file").
			WithContext("path", configPath).
			Build()
	}
	return nil
}
