package config

import (
	"slices"
	"strings"
)

// Locale is the effective navigation settings for a route.
type Locale struct {
	// Prefix is the matched locale key, "/" for the root locale.
	Prefix string
	LocaleConfig
}

// LocaleFor picks the longest locale prefix that route starts with and merges
// it over the root locale.
func (c *Config) LocaleFor(route string) Locale {
	out := Locale{Prefix: "/", LocaleConfig: c.Theme.LocaleConfig}

	prefixes := make([]string, 0, len(c.Theme.Locales))
	for p := range c.Theme.Locales {
		prefixes = append(prefixes, p)
	}
	slices.SortFunc(prefixes, func(a, b string) int {
		if len(a) != len(b) {
			return len(b) - len(a)
		}
		return strings.Compare(a, b)
	})

	for _, p := range prefixes {
		if !strings.HasPrefix(route, p) {
			continue
		}
		loc := c.Theme.Locales[p]
		out.Prefix = p
		if loc.Lang != "" {
			out.Lang = loc.Lang
		}
		if loc.HeadingDepth != nil {
			out.HeadingDepth = loc.HeadingDepth
		}
		if loc.Sidebar != nil {
			out.Sidebar = loc.Sidebar
		}
		if loc.Navbar != nil {
			out.Navbar = loc.Navbar
		}
		if loc.Author != nil {
			out.Author = loc.Author
		}
		break
	}
	return out
}
