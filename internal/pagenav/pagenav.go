// Package pagenav composes the navigation of a single page: sidebar, navbar
// and authors, resolved against the theme locale that covers the route.
package pagenav

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"path"
	"strings"
	"time"

	"git.home.luguber.info/inful/docnav/internal/author"
	"git.home.luguber.info/inful/docnav/internal/config"
	"git.home.luguber.info/inful/docnav/internal/docmodel"
	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/navbar"
	"git.home.luguber.info/inful/docnav/internal/navlink"
	"git.home.luguber.info/inful/docnav/internal/sidebar"
	"git.home.luguber.info/inful/docnav/internal/site"
)

// PageNav is the resolved navigation for one page.
type PageNav struct {
	Route        string                 `json:"route" yaml:"route"`
	Source       string                 `json:"source" yaml:"source"`
	Title        string                 `json:"title" yaml:"title"`
	Locale       string                 `json:"locale" yaml:"locale"`
	Lang         string                 `json:"lang,omitempty" yaml:"lang,omitempty"`
	SidebarMode  string                 `json:"sidebarMode" yaml:"sidebarMode"`
	HeadingDepth int                    `json:"headingDepth" yaml:"headingDepth"`
	Sidebar      []sidebar.ResolvedItem `json:"sidebar" yaml:"sidebar"`
	Navbar       []navbar.ResolvedItem  `json:"navbar" yaml:"navbar"`
	Authors      []author.Info          `json:"authors" yaml:"authors"`
	// Revision changes whenever the page, any other page or the config changes.
	Revision string `json:"revision" yaml:"revision"`
}

// Builder resolves PageNav values from one config and site snapshot. It is
// immutable and safe for concurrent use.
type Builder struct {
	cfg      *config.Config
	site     *site.Site
	sidebar  *sidebar.Resolver
	navbar   *navbar.Resolver
	logger   *slog.Logger
	recorder metrics.Recorder
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger passed down to the resolvers.
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithRecorder sets the metrics recorder passed down to the resolvers.
func WithRecorder(rec metrics.Recorder) Option {
	return func(b *Builder) {
		if rec != nil {
			b.recorder = rec
		}
	}
}

// NewBuilder wires resolvers for cfg and s.
func NewBuilder(cfg *config.Config, s *site.Site, opts ...Option) *Builder {
	b := &Builder{cfg: cfg, site: s, logger: slog.Default(), recorder: metrics.NoopRecorder{}}
	for _, opt := range opts {
		opt(b)
	}
	links := navlink.NewAutoLinker(s, cfg.Site.Base)
	b.sidebar = sidebar.NewResolver(links, sidebar.WithLogger(b.logger), sidebar.WithRecorder(b.recorder))
	b.navbar = navbar.NewResolver(links, navbar.WithBase(cfg.Site.Base), navbar.WithRecorder(b.recorder))
	return b
}

// Site returns the snapshot the builder resolves against.
func (b *Builder) Site() *site.Site { return b.site }

// Build resolves the navigation of the page at route.
func (b *Builder) Build(route string) (*PageNav, error) {
	start := time.Now()
	defer func() { b.recorder.ObserveResolveDuration(metrics.KindPage, time.Since(start)) }()

	page, ok := b.site.Page(route)
	if !ok {
		return nil, errors.NotFoundError("no page for route").
			WithContext("route", route).
			Build()
	}

	loc := b.cfg.LocaleFor(page.Route)
	fm := page.Frontmatter
	cfg, depth := sidebar.Select(sidebar.Sources{
		Home:              fm.Home,
		PageSidebar:       fm.Sidebar,
		ThemeSidebar:      loc.Sidebar,
		PageHeadingDepth:  fm.HeadingDepth,
		ThemeHeadingDepth: loc.HeadingDepth,
	})

	b.logger.Debug("Resolving page navigation",
		logfields.Route(page.Route),
		logfields.Locale(loc.Prefix),
		logfields.Mode(cfg.Mode.String()),
		logfields.Depth(depth))

	return &PageNav{
		Route:        page.Route,
		Source:       page.SourcePath,
		Title:        page.Title,
		Locale:       loc.Prefix,
		Lang:         loc.Lang,
		SidebarMode:  cfg.Mode.String(),
		HeadingDepth: depth,
		Sidebar:      b.sidebar.Resolve(cfg, depth, sidebar.Context{Route: page.Route, Page: page.SidebarPage()}),
		Navbar:       b.navbar.ResolveAll(loc.Navbar),
		Authors:      author.Resolve(fm.Author, b.sectionAuthor(page), loc.Author),
		Revision:     revision(page.Fingerprint, b.site.Hash(), b.cfg.Revision()),
	}, nil
}

// sectionAuthor returns the author declared by the nearest enclosing section
// index page (README.md or index.md of a parent directory), or nil.
func (b *Builder) sectionAuthor(page *docmodel.Page) *author.Spec {
	dir := page.Route
	if !strings.HasSuffix(dir, "/") {
		dir = path.Dir(dir)
	} else if dir != "/" {
		dir = path.Dir(strings.TrimSuffix(dir, "/"))
	} else {
		return nil
	}
	for {
		route := dir
		if route != "/" {
			route += "/"
		}
		if p, ok := b.site.Page(route); ok && p.Route == route && p.Frontmatter.Author.IsSet() {
			return p.Frontmatter.Author
		}
		if dir == "/" {
			return nil
		}
		dir = path.Dir(dir)
	}
}

func revision(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil)[:12])
}
