package frontmatter

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docnav/internal/author"
	"git.home.luguber.info/inful/docnav/internal/sidebar"
)

// Page holds the frontmatter fields navigation resolution reads. Pointer
// fields are nil when the page does not set them.
type Page struct {
	Title        string          `yaml:"title,omitempty"`
	ShortTitle   string          `yaml:"shortTitle,omitempty"`
	Icon         string          `yaml:"icon,omitempty"`
	Home         bool            `yaml:"home,omitempty"`
	Sidebar      *sidebar.Config `yaml:"sidebar,omitempty"`
	HeadingDepth *int            `yaml:"headingDepth,omitempty"`
	Author       *author.Spec    `yaml:"author,omitempty"`
}

// Decode parses raw frontmatter (without delimiters). Unknown keys are ignored.
func Decode(fm []byte) (Page, error) {
	var p Page
	if len(bytes.TrimSpace(fm)) == 0 {
		return p, nil
	}
	if err := yaml.Unmarshal(fm, &p); err != nil {
		return Page{}, fmt.Errorf("decode frontmatter: %w", err)
	}
	if p.HeadingDepth != nil && *p.HeadingDepth < 0 {
		return Page{}, fmt.Errorf("decode frontmatter: headingDepth must not be negative, got %d", *p.HeadingDepth)
	}
	return p, nil
}

// Parse splits content and decodes its frontmatter.
func Parse(content []byte) (Page, []byte, error) {
	fm, body, _, err := Split(content)
	if err != nil {
		return Page{}, nil, err
	}
	p, err := Decode(fm)
	if err != nil {
		return Page{}, nil, err
	}
	return p, body, nil
}

// Render writes p as a `---` delimited block followed by body. Empty
// frontmatter yields body unchanged.
func Render(p Page, body []byte) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		_ = enc.Close()
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	fm := buf.Bytes()
	if bytes.Equal(bytes.TrimSpace(fm), []byte("{}")) {
		return body, nil
	}

	out := make([]byte, 0, len(fm)+len(body)+8)
	out = append(out, "---\n"...)
	out = append(out, fm...)
	out = append(out, "---\n"...)
	out = append(out, body...)
	return out, nil
}
