package sidebar

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/navlink"
	"git.home.luguber.info/inful/docnav/internal/outline"
)

type noMatchRecorder struct {
	metrics.NoopRecorder
	noMatch int
	modes   []string
}

func (r *noMatchRecorder) IncSidebarNoMatch()               { r.noMatch++ }
func (r *noMatchRecorder) IncSidebarResolution(mode string) { r.modes = append(r.modes, mode) }

func testLinks() navlink.Resolver {
	return navlink.NewAutoLinker(navlink.MapLookup{
		"/guide/intro.html":   {Title: "Introduction", ShortTitle: "Intro"},
		"/guide/install.html": {Title: "Installation", Icon: "download"},
		"/bar/foo/child.html": {Title: "Child"},
		"/a/b/page.html":      {Title: "Deep"},
		"/a/page.html":        {Title: "Shallow"},
	}, "/")
}

func introPage() Page {
	return Page{
		Path:  "/guide/intro.html",
		Title: "Introduction",
		Headers: []outline.Header{
			{Level: 1, Title: "Introduction", Slug: "introduction", Children: []outline.Header{
				{Level: 2, Title: "Setup", Slug: "setup", Children: []outline.Header{
					{Level: 3, Title: "Linux", Slug: "linux", Children: []outline.Header{}},
				}},
				{Level: 2, Title: "Usage", Slug: "usage", Children: []outline.Header{}},
			}},
		},
	}
}

func TestResolveDisabled(t *testing.T) {
	r := NewResolver(testLinks())
	got := r.Resolve(Disabled(), 2, Context{Route: "/guide/intro.html", Page: introPage()})
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestResolveAuto(t *testing.T) {
	r := NewResolver(testLinks())
	got := r.Resolve(Auto(), 1, Context{Route: "/guide/intro.html", Page: introPage()})

	want := []ResolvedItem{{
		Type: TypeGroup,
		Text: "Introduction",
		Children: []ResolvedItem{
			{Type: TypeHeading, Text: "Introduction", Link: "/guide/intro.html#introduction", Children: []ResolvedItem{}},
		},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("auto sidebar mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveAutoKeepsWholeOutline(t *testing.T) {
	r := NewResolver(testLinks())
	got := r.Resolve(Auto(), 3, Context{Route: "/guide/intro.html", Page: introPage()})

	require.Len(t, got, 1)
	require.Len(t, got[0].Children, 1)
	top := got[0].Children[0]
	assert.Equal(t, "/guide/intro.html#introduction", top.Link)
	require.Len(t, top.Children, 2)
	assert.Equal(t, "Setup", top.Children[0].Text)
	require.Len(t, top.Children[0].Children, 1)
	assert.Equal(t, "/guide/intro.html#linux", top.Children[0].Children[0].Link)
}

func TestResolveArrayActivePage(t *testing.T) {
	r := NewResolver(testLinks())
	cfg := Array(PageItem("Intro", "/guide/intro.html"), PathItem("/guide/install.md"))

	active := r.Resolve(cfg, 2, Context{Route: "/guide/intro.html", Page: introPage()})
	require.Len(t, active, 2)
	assert.Equal(t, TypePage, active[0].Type)
	require.Len(t, active[0].Children, 2)
	assert.Equal(t, "/guide/intro.html#setup", active[0].Children[0].Link)
	require.Len(t, active[0].Children[0].Children, 1)
	assert.Equal(t, "/guide/intro.html#linux", active[0].Children[0].Children[0].Link)

	assert.Equal(t, "Installation", active[1].Text)
	assert.Equal(t, "download", active[1].Icon)
	assert.Equal(t, "/guide/install.html", active[1].Link)
	assert.Empty(t, active[1].Children)

	inactive := r.Resolve(cfg, 2, Context{Route: "/guide/other.html", Page: introPage()})
	require.Len(t, inactive, 2)
	require.NotNil(t, inactive[0].Children)
	assert.Empty(t, inactive[0].Children)
}

func TestResolveArrayBarePathUsesAutoLink(t *testing.T) {
	r := NewResolver(testLinks())
	got := r.Resolve(Array(PathItem("/guide/intro.md"), PathItem("https://example.com/docs")), 2, Context{Route: "/"})

	require.Len(t, got, 2)
	assert.Equal(t, ResolvedItem{Type: TypePage, Text: "Intro", Link: "/guide/intro.html", Children: []ResolvedItem{}}, got[0])
	assert.Equal(t, "https://example.com/docs", got[1].Link)
	assert.Equal(t, "https://example.com/docs", got[1].Text)
}

func TestResolveMultiLongestPrefix(t *testing.T) {
	r := NewResolver(testLinks())
	cfg := Multi(
		MultiEntry{Prefix: "/a/", Items: []Item{PathItem("page.md")}},
		MultiEntry{Prefix: "/a/b/", Items: []Item{PathItem("page.md")}},
	)

	got := r.Resolve(cfg, 2, Context{Route: "/a/b/c"})
	require.Len(t, got, 1)
	assert.Equal(t, "/a/b/page.html", got[0].Link)
	assert.Equal(t, "Deep", got[0].Text)

	got = r.Resolve(cfg, 2, Context{Route: "/a/x"})
	require.Len(t, got, 1)
	assert.Equal(t, "Shallow", got[0].Text)
}

func TestResolveMultiNoMatch(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	rec := &noMatchRecorder{}
	r := NewResolver(testLinks(), WithLogger(logger), WithRecorder(rec))

	cfg := Multi(MultiEntry{Prefix: "/guide/", Items: []Item{PathItem("intro.md")}})
	got := r.Resolve(cfg, 2, Context{Route: "/api/index.html"})

	require.NotNil(t, got)
	assert.Empty(t, got)
	assert.Equal(t, 1, strings.Count(buf.String(), "No sidebar config matches route"))
	assert.Contains(t, buf.String(), "route=/api/index.html")
	assert.Equal(t, 1, rec.noMatch)
	assert.Equal(t, []string{"multi"}, rec.modes)
}

func TestResolveGroupPrefixComposition(t *testing.T) {
	r := NewResolver(testLinks())
	cfg := Multi(MultiEntry{Prefix: "/bar/", Items: []Item{
		GroupItem("Foo", "foo/", PathItem("child.md"), PageItem("Abs", "/root.html")),
	}})

	got := r.Resolve(cfg, 2, Context{Route: "/bar/"})
	require.Len(t, got, 1)
	group := got[0]
	assert.Equal(t, TypeGroup, group.Type)
	assert.Equal(t, "foo/", group.Prefix)
	require.Len(t, group.Children, 2)
	assert.Equal(t, "/bar/foo/child.html", group.Children[0].Link)
	assert.Equal(t, "Child", group.Children[0].Text)
	assert.Equal(t, "/root.html", group.Children[1].Link)
}

func TestResolveNestedGroups(t *testing.T) {
	r := NewResolver(testLinks())
	inner := GroupItem("Inner", "foo/", PathItem("child.md"))
	outer := GroupItem("Outer", "bar/", inner)
	got := r.Resolve(Array(outer), 2, Context{Route: "/"})

	require.Len(t, got, 1)
	require.Len(t, got[0].Children, 1)
	require.Len(t, got[0].Children[0].Children, 1)
	assert.Equal(t, "bar/foo/child.html", strings.TrimPrefix(got[0].Children[0].Children[0].Link, "/"))
}

func TestResolveEmptyGroupKeepsChildren(t *testing.T) {
	r := NewResolver(testLinks())
	got := r.Resolve(Array(GroupItem("Empty", "")), 2, Context{Route: "/"})
	require.Len(t, got, 1)
	assert.Equal(t, TypeGroup, got[0].Type)
	require.NotNil(t, got[0].Children)
	assert.Empty(t, got[0].Children)
}

func TestResolveRecordsDuration(t *testing.T) {
	rec := &durationRecorder{}
	r := NewResolver(testLinks(), WithRecorder(rec))
	r.Resolve(Auto(), 2, Context{Route: "/", Page: introPage()})
	assert.Equal(t, []metrics.Kind{metrics.KindSidebar}, rec.kinds)
}

type durationRecorder struct {
	metrics.NoopRecorder
	kinds []metrics.Kind
}

func (r *durationRecorder) ObserveResolveDuration(k metrics.Kind, _ time.Duration) {
	r.kinds = append(r.kinds, k)
}
