// Package author resolves the author list shown for a page.
package author

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Info describes one author.
type Info struct {
	Name  string `json:"name" yaml:"name"`
	URL   string `json:"url,omitempty" yaml:"url,omitempty"`
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

// Spec is a configured author value: false, a name, an author mapping or a
// list of names and mappings. The zero value means "not set".
type Spec struct {
	Disabled bool
	Authors  []Info
}

// Names returns a Spec listing the given author names.
func Names(names ...string) *Spec {
	s := &Spec{Authors: make([]Info, 0, len(names))}
	for _, n := range names {
		s.Authors = append(s.Authors, Info{Name: n})
	}
	return s
}

// Off returns a Spec that hides authors.
func Off() *Spec { return &Spec{Disabled: true} }

// IsSet reports whether s carries a decision, either authors or an explicit false.
func (s *Spec) IsSet() bool {
	return s != nil && (s.Disabled || len(s.Authors) > 0)
}

// UnmarshalYAML decodes the author shapes. An empty name string counts as unset.
func (s *Spec) UnmarshalYAML(value *yaml.Node) error {
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
			if b {
				return fmt.Errorf("line %d: author may be false but not true", value.Line)
			}
			*s = Spec{Disabled: true}
			return nil
		}
		if value.Tag == "!!null" || value.Value == "" {
			*s = Spec{}
			return nil
		}
		*s = Spec{Authors: []Info{{Name: value.Value}}}
		return nil
	case yaml.MappingNode:
		info, err := decodeInfo(value)
		if err != nil {
			return err
		}
		*s = Spec{Authors: []Info{info}}
		return nil
	case yaml.SequenceNode:
		authors := make([]Info, 0, len(value.Content))
		for _, n := range value.Content {
			if n.Kind == yaml.AliasNode {
				n = n.Alias
			}
			switch n.Kind {
			case yaml.ScalarNode:
				authors = append(authors, Info{Name: n.Value})
			case yaml.MappingNode:
				info, err := decodeInfo(n)
				if err != nil {
					return err
				}
				authors = append(authors, info)
			default:
				return fmt.Errorf("line %d: author entry must be a name or a mapping", n.Line)
			}
		}
		*s = Spec{Authors: authors}
		return nil
	}
	return fmt.Errorf("line %d: author must be false, a name, a mapping or a list", value.Line)
}

func decodeInfo(n *yaml.Node) (Info, error) {
	var info Info
	if err := n.Decode(&info); err != nil {
		return Info{}, err
	}
	if info.Name == "" {
		return Info{}, fmt.Errorf("line %d: author mapping needs a name", n.Line)
	}
	return info, nil
}

// MarshalYAML writes false, a single name, or the author list.
func (s Spec) MarshalYAML() (any, error) {
	switch {
	case s.Disabled:
		return false, nil
	case len(s.Authors) == 1 && s.Authors[0].URL == "" && s.Authors[0].Email == "":
		return s.Authors[0].Name, nil
	case len(s.Authors) == 0:
		return nil, nil
	default:
		return s.Authors, nil
	}
}

// Resolve picks the authors for a page. The page's own value wins, and an
// explicit false there hides authors. Otherwise the fallback (the enclosing
// section's author) is used, then the theme default. The result is never nil.
func Resolve(page, fallback, theme *Spec) []Info {
	switch {
	case page.IsSet():
		if page.Disabled {
			return []Info{}
		}
		return clone(page.Authors)
	case fallback.IsSet():
		return enabled(fallback)
	case theme != nil:
		return enabled(theme)
	default:
		return []Info{}
	}
}

// enabled lists the authors of a fallback or theme value; false yields none.
func enabled(s *Spec) []Info {
	if s.Disabled {
		return []Info{}
	}
	return clone(s.Authors)
}

func clone(in []Info) []Info {
	out := make([]Info, len(in))
	copy(out, in)
	return out
}
