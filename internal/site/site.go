// Package site scans a content directory into a route-indexed set of pages.
package site

import (
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"git.home.luguber.info/inful/docnav/internal/docmodel"
	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/navlink"
)

// Site is an immutable snapshot of the content tree.
type Site struct {
	root   string
	pages  map[string]*docmodel.Page
	routes []string
	hash   string
}

// ScanOptions controls a content scan.
type ScanOptions struct {
	Page   docmodel.Options
	Logger *slog.Logger
}

// Scan walks contentDir and parses every Markdown file. Hidden entries and
// node_modules are skipped. When two files map to the same route the first in
// walk order wins and the other is reported.
func Scan(contentDir string, opts ScanOptions) (*Site, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	info, err := os.Stat(contentDir)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "content directory not readable").
			WithContext("path", contentDir).
			Build()
	}
	if !info.IsDir() {
		return nil, errors.FileSystemError("content path is not a directory").
			WithContext("path", contentDir).
			Build()
	}

	s := &Site{root: contentDir, pages: map[string]*docmodel.Page{}}
	err = filepath.WalkDir(contentDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != contentDir && (strings.HasPrefix(name, ".") || name == "node_modules") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") || !strings.EqualFold(filepath.Ext(name), ".md") {
			return nil
		}

		rel, err := filepath.Rel(contentDir, path)
		if err != nil {
			return err
		}
		page, err := docmodel.ParseFile(contentDir, filepath.ToSlash(rel), opts.Page)
		if err != nil {
			return err
		}
		if prev, ok := s.pages[page.Route]; ok {
			logger.Warn("Duplicate route, keeping first page",
				logfields.Route(page.Route),
				logfields.File(page.SourcePath),
				slog.String("kept", prev.SourcePath))
			return nil
		}
		s.pages[page.Route] = page
		s.routes = append(s.routes, page.Route)
		logger.Debug("Discovered page", logfields.File(page.SourcePath), logfields.Route(page.Route))
		return nil
	})
	if err != nil {
		if _, ok := errors.AsClassified(err); ok {
			return nil, err
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to walk content directory").
			WithContext("path", contentDir).
			Build()
	}

	slices.Sort(s.routes)
	s.hash = s.computeHash()
	logger.Info("Content scanned", logfields.Path(contentDir), logfields.Pages(len(s.routes)))
	return s, nil
}

// New builds a Site from already parsed pages. Later duplicates are dropped.
func New(pages ...*docmodel.Page) *Site {
	s := &Site{pages: make(map[string]*docmodel.Page, len(pages))}
	for _, p := range pages {
		if _, ok := s.pages[p.Route]; ok {
			continue
		}
		s.pages[p.Route] = p
		s.routes = append(s.routes, p.Route)
	}
	slices.Sort(s.routes)
	s.hash = s.computeHash()
	return s
}

// computeHash is a digest over every route and page fingerprint.
func (s *Site) computeHash() string {
	h := sha256.New()
	for _, r := range s.routes {
		h.Write([]byte(r))
		h.Write([]byte{0})
		h.Write([]byte(s.pages[r].Fingerprint))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Root returns the scanned content directory.
func (s *Site) Root() string { return s.root }

// Hash identifies the snapshot content.
func (s *Site) Hash() string { return s.hash }

// Len returns the number of pages.
func (s *Site) Len() int { return len(s.routes) }

// Routes returns all routes in sorted order.
func (s *Site) Routes() []string { return slices.Clone(s.routes) }

// Pages returns all pages in route order.
func (s *Site) Pages() []*docmodel.Page {
	out := make([]*docmodel.Page, 0, len(s.routes))
	for _, r := range s.routes {
		out = append(out, s.pages[r])
	}
	return out
}

// Page finds the page for route. Besides exact matches it accepts source
// paths ("guide/intro.md") and extension-less routes ("/guide/intro",
// "/guide").
func (s *Site) Page(route string) (*docmodel.Page, bool) {
	route = navlink.StripFragment(route)
	for _, candidate := range routeCandidates(route) {
		if p, ok := s.pages[candidate]; ok {
			return p, true
		}
	}
	return nil, false
}

func routeCandidates(route string) []string {
	if route == "" {
		return []string{"/"}
	}
	normalized := navlink.NormalizeRoute(route)
	out := []string{normalized}
	if strings.HasSuffix(normalized, "/") || strings.HasSuffix(normalized, ".html") {
		return out
	}
	return append(out, normalized+".html", normalized+"/")
}

// Lookup implements navlink.PageLookup.
func (s *Site) Lookup(route string) (navlink.PageMeta, bool) {
	p, ok := s.pages[route]
	if !ok {
		return navlink.PageMeta{}, false
	}
	return p.Meta(), true
}
