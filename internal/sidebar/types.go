package sidebar

import "git.home.luguber.info/inful/docnav/internal/outline"

// Mode tags the shape of a sidebar configuration.
type Mode int

const (
	ModeDisabled Mode = iota
	ModeAuto
	ModeArray
	ModeMulti
)

func (m Mode) String() string {
	switch m {
	case ModeDisabled:
		return "disabled"
	case ModeAuto:
		return "auto"
	case ModeArray:
		return "array"
	case ModeMulti:
		return "multi"
	default:
		return "unknown"
	}
}

// Config is a sidebar configuration. Items is set for ModeArray, Multi for ModeMulti.
type Config struct {
	Mode  Mode
	Items []Item
	Multi []MultiEntry
}

// MultiEntry is one prefix -> items entry of a ModeMulti config, in source order.
type MultiEntry struct {
	Prefix string
	Items  []Item
}

// Disabled returns a config that turns the sidebar off.
func Disabled() Config { return Config{Mode: ModeDisabled} }

// Auto returns a config that builds the sidebar from the current page headings.
func Auto() Config { return Config{Mode: ModeAuto} }

// Array returns an ordered item list config.
func Array(items ...Item) Config { return Config{Mode: ModeArray, Items: items} }

// Multi returns a prefix-keyed config. Entries keep the given order.
func Multi(entries ...MultiEntry) Config { return Config{Mode: ModeMulti, Multi: entries} }

// ItemKind tags a configured sidebar item.
type ItemKind int

const (
	// KindPath is a bare path string resolved through AutoLink.
	KindPath ItemKind = iota
	// KindPage is a structured item without children.
	KindPage
	// KindGroup is a structured item with children (possibly none).
	KindGroup
)

// Item is a configured sidebar entry.
type Item struct {
	Kind ItemKind

	// Path is the bare path of a KindPath item.
	Path string

	Text        string
	Icon        string
	Link        string
	Prefix      string
	Collapsible bool
	Children    []Item
}

// PathItem returns a bare path item.
func PathItem(p string) Item { return Item{Kind: KindPath, Path: p} }

// PageItem returns a structured page item.
func PageItem(text, link string) Item { return Item{Kind: KindPage, Text: text, Link: link} }

// GroupItem returns a group with the given children. A nil children slice still makes a group.
func GroupItem(text, prefix string, children ...Item) Item {
	if children == nil {
		children = []Item{}
	}
	return Item{Kind: KindGroup, Text: text, Prefix: prefix, Children: children}
}

// ItemType tags a resolved sidebar node.
type ItemType string

const (
	TypeHeading ItemType = "heading"
	TypePage    ItemType = "page"
	TypeGroup   ItemType = "group"
)

// ResolvedItem is a renderable sidebar node. Children is never nil.
type ResolvedItem struct {
	Type        ItemType       `json:"type" yaml:"type"`
	Text        string         `json:"text" yaml:"text"`
	Icon        string         `json:"icon,omitempty" yaml:"icon,omitempty"`
	Link        string         `json:"link,omitempty" yaml:"link,omitempty"`
	Prefix      string         `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Collapsible bool           `json:"collapsible,omitempty" yaml:"collapsible,omitempty"`
	Children    []ResolvedItem `json:"children" yaml:"children"`
}

// Page is the current page as seen by the resolver.
type Page struct {
	Path    string
	Title   string
	Icon    string
	Headers []outline.Header
}

// Context carries the current route and page into a resolution.
type Context struct {
	Route string
	Page  Page
}
