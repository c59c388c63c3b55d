package sidebar

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML decides the config shape: false, "auto", a list or a prefix map.
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.AliasNode {
		value = value.Alias
	}
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!bool" {
			var b bool
			if err := value.Decode(&b); err != nil {
				return err
			}
			if !b {
				*c = Disabled()
				return nil
			}
		} else if value.Value == "auto" {
			*c = Auto()
			return nil
		}
	case yaml.SequenceNode:
		var items []Item
		if err := value.Decode(&items); err != nil {
			return err
		}
		*c = Array(items...)
		return nil
	case yaml.MappingNode:
		entries := make([]MultiEntry, 0, len(value.Content)/2)
		for i := 0; i+1 < len(value.Content); i += 2 {
			key, val := value.Content[i], value.Content[i+1]
			if key.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: sidebar prefix must be a string", key.Line)
			}
			var items []Item
			if err := val.Decode(&items); err != nil {
				return fmt.Errorf("sidebar prefix %q: %w", key.Value, err)
			}
			entries = append(entries, MultiEntry{Prefix: key.Value, Items: items})
		}
		*c = Multi(entries...)
		return nil
	}
	return fmt.Errorf("line %d: sidebar must be false, \"auto\", a list of items or a map of prefix to items", value.Line)
}

// MarshalYAML writes the config back in the shape it was decoded from.
func (c Config) MarshalYAML() (any, error) {
	switch c.Mode {
	case ModeDisabled:
		return false, nil
	case ModeAuto:
		return "auto", nil
	case ModeArray:
		if c.Items == nil {
			return []Item{}, nil
		}
		return c.Items, nil
	case ModeMulti:
		n := &yaml.Node{Kind: yaml.MappingNode}
		for _, e := range c.Multi {
			var val yaml.Node
			items := e.Items
			if items == nil {
				items = []Item{}
			}
			if err := val.Encode(items); err != nil {
				return nil, err
			}
			n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Prefix}, &val)
		}
		return n, nil
	}
	return nil, fmt.Errorf("unknown sidebar mode %d", c.Mode)
}

type itemFields struct {
	Text        string  `yaml:"text,omitempty"`
	Icon        string  `yaml:"icon,omitempty"`
	Link        string  `yaml:"link,omitempty"`
	Prefix      string  `yaml:"prefix,omitempty"`
	Collapsible bool    `yaml:"collapsible,omitempty"`
	Children    *[]Item `yaml:"children,omitempty"`
}

// UnmarshalYAML decodes a bare path or a structured item. A "children" key
// (even an empty list) makes the item a group.
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
			Kind:        KindPage,
			Text:        f.Text,
			Icon:        f.Icon,
			Link:        f.Link,
			Prefix:      f.Prefix,
			Collapsible: f.Collapsible,
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
	return fmt.Errorf("line %d: sidebar item must be a path or a mapping", value.Line)
}

// MarshalYAML writes a bare path as a string and other items as mappings.
func (it Item) MarshalYAML() (any, error) {
	if it.Kind == KindPath {
		return it.Path, nil
	}
	f := itemFields{
		Text:        it.Text,
		Icon:        it.Icon,
		Link:        it.Link,
		Prefix:      it.Prefix,
		Collapsible: it.Collapsible,
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
