package navbar

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

type itemFields struct {
	Text        string  `yaml:"text,omitempty"`
	Icon        string  `yaml:"icon,omitempty"`
	Link        string  `yaml:"link,omitempty"`
	Prefix      string  `yaml:"prefix,omitempty"`
	ActiveMatch string  `yaml:"activeMatch,omitempty"`
	Target      string  `yaml:"target,omitempty"`
	Rel         string  `yaml:"rel,omitempty"`
	Children    *[]Item `yaml:"children,omitempty"`
}

// UnmarshalYAML decodes a bare path, a link item or a group (any mapping
// with a "children" key).
func (it *Item) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.AliasNode {
		value = value.Alias
	}
	switch value.Kind {
	case yaml.ScalarNode:
		*it = PathItem(value.Value)
		return nil
	case yaml.MappingNode:
		var f itemFields
		if err := value.Decode(&f); err != nil {
			return err
		}
		*it = Item{
			Kind:        KindLink,
			Text:        f.Text,
			Icon:        f.Icon,
			Link:        f.Link,
			Prefix:      f.Prefix,
			ActiveMatch: f.ActiveMatch,
			Target:      f.Target,
			Rel:         f.Rel,
		}
		if f.Children != nil {
			it.Kind = KindGroup
			it.Children = *f.Children
			if it.Children == nil {
				it.Children = []Item{}
			}
		}
		return nil
	}
	return fmt.Errorf("line %d: navbar item must be a path or a mapping", value.Line)
}

// MarshalYAML writes a bare path as a string and other entries as mappings.
func (it Item) MarshalYAML() (any, error) {
	if it.Kind == KindPath {
		return it.Path, nil
	}
	f := itemFields{
		Text:        it.Text,
		Icon:        it.Icon,
		Link:        it.Link,
		Prefix:      it.Prefix,
		ActiveMatch: it.ActiveMatch,
		Target:      it.Target,
		Rel:         it.Rel,
	}
	if it.Kind == KindGroup {
		children := it.Children
		if children == nil {
			children = []Item{}
		}
		f.Children = &children
	}
	return f, nil
}
