package docmodel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/frontmatter"
	"git.home.luguber.info/inful/docnav/internal/outline"
)

func TestParse_FrontmatterTitleWins(t *testing.T) {
	content := []byte("---\ntitle: Install Guide\nshortTitle: Install\nicon: download\n---\n# Installing\n\n## Linux\n")

	p, err := Parse("guide/install.md", content, Options{})
	require.NoError(t, err)
	require.Equal(t, "guide/install.md", p.SourcePath)
	require.Equal(t, "/guide/install.html", p.Route)
	require.Equal(t, "Install Guide", p.Title)
	require.Equal(t, "Install", p.ShortTitle)
	require.Equal(t, "download", p.Icon)
	require.Len(t, p.Headers, 1)
	require.Equal(t, "Installing", p.Headers[0].Title)
	require.Equal(t, "linux", p.Headers[0].Children[0].Slug)
	require.NotEmpty(t, p.Fingerprint)
}

func TestParse_TitleFallbacks(t *testing.T) {
	tests := []struct {
		path    string
		content string
		want    string
	}{
		{"guide/intro.md", "# First *Heading*\n", "First Heading"},
		{"guide/getting-started.md", "Text only.\n", "Getting Started"},
		{"reference/README.md", "## Sub only\n", "Reference"},
		{"README.md", "", "Home"},
		{"api_keys.md", "", "Api Keys"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			p, err := Parse(tt.path, []byte(tt.content), Options{})
			require.NoError(t, err)
			require.Equal(t, tt.want, p.Title)
		})
	}
}

func TestParse_Routes(t *testing.T) {
	for path, want := range map[string]string{
		"README.md":         "/",
		"guide/README.md":   "/guide/",
		"guide/index.md":    "/guide/",
		"guide/advanced.md": "/guide/advanced.html",
	} {
		p, err := Parse(filepath.FromSlash(path), nil, Options{})
		require.NoError(t, err)
		require.Equal(t, want, p.Route, path)
	}
}

func TestParse_OutlineOptions(t *testing.T) {
	p, err := Parse("a.md", []byte("# A\n## B\n### C\n"), Options{Outline: outline.Options{MinLevel: 2, MaxLevel: 2}})
	require.NoError(t, err)
	require.Len(t, p.Headers, 1)
	require.Equal(t, "B", p.Headers[0].Title)
	require.Empty(t, p.Headers[0].Children)
}

func TestParse_FingerprintTracksContent(t *testing.T) {
	a, err := Parse("a.md", []byte("---\ntitle: A\n---\nbody\n"), Options{})
	require.NoError(t, err)
	same, err := Parse("other/a.md", []byte("---\ntitle: A\n---\nbody\n"), Options{})
	require.NoError(t, err)
	changed, err := Parse("a.md", []byte("---\ntitle: A\n---\nbody changed\n"), Options{})
	require.NoError(t, err)

	require.Equal(t, a.Fingerprint, same.Fingerprint)
	require.NotEqual(t, a.Fingerprint, changed.Fingerprint)
}

func TestParse_MissingClosingDelimiter_ReturnsDocsError(t *testing.T) {
	_, err := Parse("broken.md", []byte("---\nkey: value\n# body\n"), Options{})
	require.Error(t, err)
	require.ErrorIs(t, err, frontmatter.ErrMissingClosingDelimiter)
	require.True(t, errors.HasCategory(err, errors.CategoryDocs))
}

func TestParse_InvalidFrontmatter_ReturnsDocsError(t *testing.T) {
	_, err := Parse("broken.md", []byte("---\nsidebar: sometimes\n---\n"), Options{})
	require.Error(t, err)
	ce, ok := errors.AsClassified(err)
	require.True(t, ok)
	require.Equal(t, errors.CategoryDocs, ce.Category())
	require.Equal(t, "broken.md", ce.Context()["path"])
}

func TestParseFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "guide"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(root, "guide", "intro.md"), []byte("# Intro\n"), 0o600))

	p, err := ParseFile(root, "guide/intro.md", Options{})
	require.NoError(t, err)
	require.Equal(t, "Intro", p.Title)
	require.Equal(t, "Intro", p.Meta().Title)
	require.Equal(t, "/guide/intro.html", p.SidebarPage().Path)

	_, err = ParseFile(root, "missing.md", Options{})
	require.True(t, errors.HasCategory(err, errors.CategoryFileSystem))
}
