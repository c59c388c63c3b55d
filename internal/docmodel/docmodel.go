// Package docmodel turns a Markdown source file into the page record used for
// navigation: route, titles, icon, frontmatter, heading outline and a content
// fingerprint.
package docmodel

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/inful/mdfp"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/frontmatter"
	"git.home.luguber.info/inful/docnav/internal/navlink"
	"git.home.luguber.info/inful/docnav/internal/outline"
	"git.home.luguber.info/inful/docnav/internal/sidebar"
)

// Options controls page parsing.
type Options struct {
	Outline outline.Options
}

// Page is a parsed content page.
type Page struct {
	// SourcePath is the slash-separated path relative to the content root.
	SourcePath string
	Route      string
	Title      string
	ShortTitle string
	Icon       string

	Frontmatter frontmatter.Page
	Headers     []outline.Header

	// Fingerprint is the mdfp hash of frontmatter and body.
	Fingerprint string
}

// Parse builds a Page from raw content. sourcePath is relative to the content root.
func Parse(sourcePath string, content []byte, opts Options) (*Page, error) {
	sourcePath = filepath.ToSlash(sourcePath)

	fmRaw, body, _, err := frontmatter.Split(content)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryDocs, "failed to split frontmatter").
			WithContext("path", sourcePath).
			Build()
	}
	fm, err := frontmatter.Decode(fmRaw)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryDocs, "invalid frontmatter").
			WithContext("path", sourcePath).
			Build()
	}

	all := outline.Extract(body, outline.DefaultOptions())
	p := &Page{
		SourcePath:  sourcePath,
		Route:       navlink.NormalizeRoute(sourcePath),
		ShortTitle:  fm.ShortTitle,
		Icon:        fm.Icon,
		Frontmatter: fm,
		Headers:     outline.Filter(all, opts.Outline),
		Fingerprint: mdfp.CalculateFingerprintFromParts(strings.TrimSuffix(string(fmRaw), "\n"), string(body)),
	}

	switch title, ok := outline.FirstTitle(all); {
	case fm.Title != "":
		p.Title = fm.Title
	case ok && title != "":
		p.Title = title
	default:
		p.Title = titleFromPath(sourcePath)
	}
	return p, nil
}

// ParseFile reads root/sourcePath and parses it.
func ParseFile(root, sourcePath string, opts Options) (*Page, error) {
	// #nosec G304 -- path comes from walking the configured content dir.
	content, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(sourcePath)))
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read page").
			WithContext("path", sourcePath).
			Build()
	}
	return Parse(sourcePath, content, opts)
}

// Meta returns the fields the AutoLink resolver shows for this page.
func (p *Page) Meta() navlink.PageMeta {
	return navlink.PageMeta{Title: p.Title, ShortTitle: p.ShortTitle, Icon: p.Icon}
}

// SidebarPage returns the page as seen by the sidebar resolver.
func (p *Page) SidebarPage() sidebar.Page {
	return sidebar.Page{Path: p.Route, Title: p.Title, Icon: p.Icon, Headers: p.Headers}
}

// titleFromPath derives a title from the file name; index pages use their
// directory name and the content root becomes "Home".
func titleFromPath(sourcePath string) string {
	dir, file := path.Split(sourcePath)
	name := strings.TrimSuffix(file, path.Ext(file))
	switch strings.ToLower(name) {
	case "readme", "index":
		name = path.Base(strings.TrimSuffix(dir, "/"))
		if dir == "" || name == "." || name == "/" {
			return "Home"
		}
	}
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	return cases.Title(language.Und).String(strings.Join(strings.Fields(name), " "))
}
