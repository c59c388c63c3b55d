// Package outline extracts the heading outline of a Markdown page.
package outline

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"golang.org/x/net/html"
)

// Header is a heading of a page with its nested sub-headings.
type Header struct {
	Level    int      `json:"level" yaml:"level"`
	Title    string   `json:"title" yaml:"title"`
	Slug     string   `json:"slug" yaml:"slug"`
	Children []Header `json:"children" yaml:"children"`
}

// Options selects which heading levels make it into the outline.
type Options struct {
	MinLevel int
	MaxLevel int
}

// DefaultOptions keeps every heading level.
func DefaultOptions() Options {
	return Options{MinLevel: 1, MaxLevel: 6}
}

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
		parser.WithAttribute(),
	),
)

// Extract parses a Markdown body (frontmatter already removed) and returns its
// heading tree. A heading nests under the closest preceding heading of a
// lower level.
func Extract(body []byte, opts Options) []Header {
	opts = opts.normalized()
	root := md.Parser().Parse(text.NewReader(body))

	var flat []Header
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		h, ok := n.(*gmast.Heading)
		if !ok {
			return gmast.WalkContinue, nil
		}
		if opts.includes(h.Level) {
			flat = append(flat, Header{
				Level: h.Level,
				Title: headingTitle(h, body),
				Slug:  headingID(h),
			})
		}
		return gmast.WalkSkipChildren, nil
	})

	return nest(flat)
}

// Filter drops headings outside the levels of opts from an extracted tree.
// Descendants of a dropped heading are re-nested under the closest kept one.
func Filter(headers []Header, opts Options) []Header {
	opts = opts.normalized()
	var flat []Header
	var walk func([]Header)
	walk = func(hs []Header) {
		for _, h := range hs {
			if opts.includes(h.Level) {
				flat = append(flat, Header{Level: h.Level, Title: h.Title, Slug: h.Slug})
			}
			walk(h.Children)
		}
	}
	walk(headers)
	return nest(flat)
}

func (o Options) normalized() Options {
	if o.MinLevel <= 0 {
		o.MinLevel = 1
	}
	if o.MaxLevel <= 0 || o.MaxLevel > 6 {
		o.MaxLevel = 6
	}
	return o
}

func (o Options) includes(level int) bool {
	return level >= o.MinLevel && level <= o.MaxLevel
}

// nest turns a flat, document-ordered heading list into a tree.
func nest(flat []Header) []Header {
	type node struct {
		h        Header
		children []*node
	}
	var roots []*node
	var stack []*node
	for _, h := range flat {
		n := &node{h: h}
		for len(stack) > 0 && stack[len(stack)-1].h.Level >= h.Level {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			roots = append(roots, n)
		} else {
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, n)
		}
		stack = append(stack, n)
	}

	var build func([]*node) []Header
	build = func(nodes []*node) []Header {
		out := make([]Header, 0, len(nodes))
		for _, n := range nodes {
			h := n.h
			h.Children = build(n.children)
			out = append(out, h)
		}
		return out
	}
	return build(roots)
}

func headingID(h *gmast.Heading) string {
	v, ok := h.AttributeString("id")
	if !ok {
		return ""
	}
	switch id := v.(type) {
	case []byte:
		return string(id)
	case string:
		return id
	}
	return ""
}

// headingTitle renders the inline content of a heading as plain text.
// Inline HTML (badges, spans) is dropped and entities are decoded.
func headingTitle(h *gmast.Heading, source []byte) string {
	var buf bytes.Buffer
	var collect func(n gmast.Node)
	collect = func(n gmast.Node) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch v := c.(type) {
			case *gmast.Text:
				buf.Write(v.Segment.Value(source))
				if v.SoftLineBreak() || v.HardLineBreak() {
					buf.WriteByte(' ')
				}
			case *gmast.String:
				buf.Write(v.Value)
			case *gmast.CodeSpan:
				var code bytes.Buffer
				for cc := v.FirstChild(); cc != nil; cc = cc.NextSibling() {
					if t, ok := cc.(*gmast.Text); ok {
						code.Write(t.Segment.Value(source))
					}
				}
				buf.WriteString(html.EscapeString(code.String()))
			case *gmast.RawHTML:
				for i := 0; i < v.Segments.Len(); i++ {
					seg := v.Segments.At(i)
					buf.Write(seg.Value(source))
				}
			case *gmast.AutoLink:
				buf.WriteString(html.EscapeString(string(v.Label(source))))
			default:
				collect(c)
			}
		}
	}
	collect(h)
	return PlainText(buf.String())
}

// PlainText strips HTML tags from fragment and decodes entities.
func PlainText(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return strings.TrimSpace(fragment)
	}
	z := html.NewTokenizer(strings.NewReader(fragment))
	var b strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.TextToken:
			b.Write(z.Text())
		}
	}
}

// FirstTitle returns the title of the first level-1 heading, if any.
func FirstTitle(headers []Header) (string, bool) {
	for _, h := range headers {
		if h.Level == 1 {
			return h.Title, true
		}
	}
	return "", false
}
