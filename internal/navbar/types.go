package navbar

// ItemKind tags a configured navbar entry.
type ItemKind int

const (
	KindPath ItemKind = iota
	KindLink
	KindGroup
)

// Item is a configured navbar entry.
type Item struct {
	Kind ItemKind

	// Path is the bare path of a KindPath entry.
	Path string

	Text        string
	Icon        string
	Link        string
	Prefix      string
	ActiveMatch string
	Target      string
	Rel         string
	Children    []Item
}

// PathItem returns a bare path entry.
func PathItem(p string) Item { return Item{Kind: KindPath, Path: p} }

// LinkItem returns a link entry.
func LinkItem(text, link string) Item { return Item{Kind: KindLink, Text: text, Link: link} }

// GroupItem returns a group entry. A nil children slice still makes a group.
func GroupItem(text, prefix string, children ...Item) Item {
	if children == nil {
		children = []Item{}
	}
	return Item{Kind: KindGroup, Text: text, Prefix: prefix, Children: children}
}

// ItemType tags a resolved navbar node.
type ItemType string

const (
	TypeLink  ItemType = "link"
	TypeGroup ItemType = "group"
)

// ResolvedItem is a renderable navbar node. Children is nil for links and
// never nil for groups.
type ResolvedItem struct {
	Type        ItemType       `json:"type" yaml:"type"`
	Text        string         `json:"text" yaml:"text"`
	Icon        string         `json:"icon,omitempty" yaml:"icon,omitempty"`
	Link        string         `json:"link,omitempty" yaml:"link,omitempty"`
	Prefix      string         `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	ActiveMatch string         `json:"activeMatch,omitempty" yaml:"activeMatch,omitempty"`
	Target      string         `json:"target,omitempty" yaml:"target,omitempty"`
	Rel         string         `json:"rel,omitempty" yaml:"rel,omitempty"`
	Children    []ResolvedItem `json:"children,omitempty" yaml:"children,omitempty"`
}
