package navlink

// AutoLinkOptions is a resolved link: display text, optional icon and target.
type AutoLinkOptions struct {
	Text string `json:"text" yaml:"text"`
	Icon string `json:"icon,omitempty" yaml:"icon,omitempty"`
	Link string `json:"link" yaml:"link"`
}

// PageMeta is the subset of page data the AutoLink resolver needs.
type PageMeta struct {
	Title      string
	ShortTitle string
	Icon       string
}

// PageLookup finds page metadata by route path (no hash or query).
type PageLookup interface {
	Lookup(route string) (PageMeta, bool)
}

// Resolver turns a path into a navigation item.
type Resolver interface {
	AutoLink(link string) AutoLinkOptions
}

// AutoLinker resolves links against a page index.
type AutoLinker struct {
	pages PageLookup
	base  string
}

// NewAutoLinker creates an AutoLinker. pages may be nil, in which case every
// internal link falls back to its own path as text.
func NewAutoLinker(pages PageLookup, base string) *AutoLinker {
	if base == "" {
		base = "/"
	}
	return &AutoLinker{pages: pages, base: base}
}

// AutoLink resolves link. External links pass through with the link as text.
func (a *AutoLinker) AutoLink(link string) AutoLinkOptions {
	if IsLinkExternal(link, a.base) {
		return AutoLinkOptions{Text: link, Link: link}
	}

	route := NormalizeRoute(link)
	opts := AutoLinkOptions{Text: link, Link: route}
	if a.pages == nil {
		return opts
	}
	meta, ok := a.pages.Lookup(StripFragment(route))
	if !ok {
		return opts
	}
	switch {
	case meta.ShortTitle != "":
		opts.Text = meta.ShortTitle
	case meta.Title != "":
		opts.Text = meta.Title
	}
	opts.Icon = meta.Icon
	return opts
}

// MapLookup is a PageLookup backed by a plain map, handy for tests and static setups.
type MapLookup map[string]PageMeta

// Lookup implements PageLookup.
func (m MapLookup) Lookup(route string) (PageMeta, bool) {
	meta, ok := m[route]
	return meta, ok
}
