package sidebar

import (
	"log/slog"
	"slices"
	"strings"
	"time"

	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/navlink"
)

// Resolver resolves sidebar configurations. It is safe for concurrent use.
type Resolver struct {
	links    navlink.Resolver
	logger   *slog.Logger
	recorder metrics.Recorder
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for the no-match diagnostic.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(rec metrics.Recorder) Option {
	return func(r *Resolver) {
		if rec != nil {
			r.recorder = rec
		}
	}
}

// NewResolver creates a Resolver that resolves bare paths through links.
func NewResolver(links navlink.Resolver, opts ...Option) *Resolver {
	r := &Resolver{
		links:    links,
		logger:   slog.Default(),
		recorder: metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve produces the sidebar tree for cfg on the route in ctx. Header
// children are unfolded at most depth levels.
func (r *Resolver) Resolve(cfg Config, depth int, ctx Context) []ResolvedItem {
	start := time.Now()
	defer func() {
		r.recorder.IncSidebarResolution(cfg.Mode.String())
		r.recorder.ObserveResolveDuration(metrics.KindSidebar, time.Since(start))
	}()

	switch cfg.Mode {
	case ModeDisabled:
		return []ResolvedItem{}
	case ModeAuto:
		return r.resolveAuto(depth, ctx)
	case ModeArray:
		return r.resolveArray(cfg.Items, depth, "", ctx)
	case ModeMulti:
		return r.resolveMulti(cfg.Multi, depth, ctx)
	default:
		return []ResolvedItem{}
	}
}

func (r *Resolver) resolveAuto(depth int, ctx Context) []ResolvedItem {
	return []ResolvedItem{{
		Type:     TypeGroup,
		Text:     ctx.Page.Title,
		Icon:     ctx.Page.Icon,
		Children: ProjectHeaders(ctx.Page.Headers, depth, ctx.Page.Path),
	}}
}

func (r *Resolver) resolveArray(items []Item, depth int, prefix string, ctx Context) []ResolvedItem {
	out := make([]ResolvedItem, 0, len(items))
	for _, it := range items {
		out = append(out, r.resolveItem(it, prefix, depth, ctx))
	}
	return out
}

func (r *Resolver) resolveMulti(entries []MultiEntry, depth int, ctx Context) []ResolvedItem {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b MultiEntry) int {
		return len(b.Prefix) - len(a.Prefix)
	})
	for _, e := range sorted {
		if strings.HasPrefix(ctx.Route, e.Prefix) {
			return r.resolveArray(e.Items, depth, e.Prefix, ctx)
		}
	}

	r.logger.Warn("No sidebar config matches route", logfields.Route(ctx.Route))
	r.recorder.IncSidebarNoMatch()
	return []ResolvedItem{}
}

func (r *Resolver) resolveItem(it Item, prefix string, depth int, ctx Context) ResolvedItem {
	var res ResolvedItem
	switch it.Kind {
	case KindPath:
		link := r.links.AutoLink(navlink.ResolvePrefix(prefix, it.Path))
		res = ResolvedItem{Type: TypePage, Text: link.Text, Icon: link.Icon, Link: link.Link}
	default:
		res = ResolvedItem{Text: it.Text, Icon: it.Icon, Link: it.Link}
		if it.Link != "" {
			res.Link = navlink.ResolvePrefix(prefix, it.Link)
		}
	}

	if it.Kind == KindGroup {
		res.Type = TypeGroup
		res.Prefix = it.Prefix
		res.Collapsible = it.Collapsible
		childPrefix := navlink.ResolvePrefix(prefix, it.Prefix)
		res.Children = make([]ResolvedItem, 0, len(it.Children))
		for _, child := range it.Children {
			res.Children = append(res.Children, r.resolveItem(child, childPrefix, depth, ctx))
		}
		return res
	}

	res.Type = TypePage
	if res.Link != "" && res.Link == ctx.Route {
		res.Children = ProjectHeaders(pageHeaders(ctx.Page.Headers), depth, ctx.Page.Path)
	} else {
		res.Children = []ResolvedItem{}
	}
	return res
}
