package navbar

import (
	"strings"
	"time"

	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/navlink"
)

// Resolver resolves navbar entries. It is safe for concurrent use.
type Resolver struct {
	links    navlink.Resolver
	base     string
	recorder metrics.Recorder
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithBase sets the site base used to tell internal links from external ones.
func WithBase(base string) Option {
	return func(r *Resolver) {
		if base != "" {
			r.base = base
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

// NewResolver creates a Resolver backed by links.
func NewResolver(links navlink.Resolver, opts ...Option) *Resolver {
	r := &Resolver{links: links, base: "/", recorder: metrics.NoopRecorder{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ResolveAll resolves every top-level entry with an empty prefix.
func (r *Resolver) ResolveAll(items []Item) []ResolvedItem {
	start := time.Now()
	defer func() { r.recorder.ObserveResolveDuration(metrics.KindNavbar, time.Since(start)) }()

	out := make([]ResolvedItem, 0, len(items))
	for _, it := range items {
		out = append(out, r.Resolve(it, ""))
	}
	return out
}

// Resolve resolves a single entry under prefix.
func (r *Resolver) Resolve(it Item, prefix string) ResolvedItem {
	switch it.Kind {
	case KindPath:
		link := r.links.AutoLink(joinPrefix(prefix, it.Path))
		return ResolvedItem{Type: TypeLink, Text: link.Text, Icon: link.Icon, Link: link.Link}
	case KindGroup:
		return r.resolveGroup(it, prefix)
	default:
		res := r.passThrough(it, TypeLink)
		if it.Link != "" && !navlink.IsLinkExternal(it.Link, r.base) {
			res.Link = r.links.AutoLink(joinPrefix(prefix, it.Link)).Link
		}
		return res
	}
}

func (r *Resolver) resolveGroup(it Item, prefix string) ResolvedItem {
	res := r.passThrough(it, TypeGroup)
	if it.Link != "" && !navlink.IsLinkExternal(it.Link, r.base) {
		link := r.links.AutoLink(joinPrefix(prefix, it.Link))
		if link.Text != "" {
			res.Text = link.Text
		}
		if link.Icon != "" {
			res.Icon = link.Icon
		}
		if link.Link != "" {
			res.Link = link.Link
		}
	}

	childPrefix := joinPrefix(prefix, it.Prefix)
	res.Children = make([]ResolvedItem, 0, len(it.Children))
	for _, child := range it.Children {
		res.Children = append(res.Children, r.Resolve(child, childPrefix))
	}
	return res
}

// joinPrefix appends p to prefix. Unlike sidebar prefixes, an absolute p
// extends the outer prefix instead of replacing it; the slash shared at the
// seam is kept once. Links with a scheme are returned unchanged.
func joinPrefix(prefix, p string) string {
	if prefix == "" || navlink.IsLinkWithProtocol(p) {
		return p
	}
	if strings.HasSuffix(prefix, "/") && strings.HasPrefix(p, "/") {
		return prefix + p[1:]
	}
	return prefix + p
}

func (r *Resolver) passThrough(it Item, typ ItemType) ResolvedItem {
	return ResolvedItem{
		Type:        typ,
		Text:        it.Text,
		Icon:        it.Icon,
		Link:        it.Link,
		Prefix:      it.Prefix,
		ActiveMatch: it.ActiveMatch,
		Target:      it.Target,
		Rel:         it.Rel,
	}
}
