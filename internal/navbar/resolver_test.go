package navbar

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docnav/internal/navlink"
)

func newTestResolver() *Resolver {
	return NewResolver(navlink.NewAutoLinker(navlink.MapLookup{
		"/guide/":                {Title: "Guide", Icon: "book"},
		"/guide/intro.html":      {Title: "Introduction", ShortTitle: "Intro"},
		"/reference/":            {Title: "Reference"},
		"/reference/config.html": {Title: "Configuration", Icon: "gear"},
	}, "/"))
}

func TestResolveBarePath(t *testing.T) {
	got := newTestResolver().Resolve(PathItem("/guide/intro.md"), "")
	assert.Equal(t, ResolvedItem{Type: TypeLink, Text: "Intro", Link: "/guide/intro.html"}, got)
}

func TestResolveLinkItemKeepsFields(t *testing.T) {
	it := LinkItem("Start here", "guide/intro.md")
	it.Icon = "rocket"

	got := newTestResolver().Resolve(it, "/")
	assert.Equal(t, "Start here", got.Text)
	assert.Equal(t, "rocket", got.Icon)
	assert.Equal(t, "/guide/intro.html", got.Link)
	assert.Nil(t, got.Children)
}

func TestResolveExternalLinkUnchanged(t *testing.T) {
	for _, link := range []string{
		"https://github.com/inful/docnav?tab=readme#Usage",
		"mailto:docs@example.com",
		"//cdn.example.com/Path.md",
	} {
		got := newTestResolver().Resolve(LinkItem("Out", link), "/guide/")
		assert.Equal(t, link, got.Link)
		assert.Equal(t, "Out", got.Text)
	}
}

func TestResolveGroupInternalLinkRewritten(t *testing.T) {
	g := GroupItem("Docs", "/guide/", PathItem("intro.md"))
	g.Link = "/guide/README.md"

	got := newTestResolver().Resolve(g, "")
	assert.Equal(t, TypeGroup, got.Type)
	assert.Equal(t, "/guide/", got.Link)
	assert.Equal(t, "Guide", got.Text)
	assert.Equal(t, "book", got.Icon)
	require.Len(t, got.Children, 1)
	assert.Equal(t, "/guide/intro.html", got.Children[0].Link)
}

func TestResolveGroupExternalLinkUnchanged(t *testing.T) {
	g := GroupItem("Project", "", LinkItem("Issues", "https://example.com/issues"))
	g.Link = "https://example.com/Project.md"

	got := newTestResolver().Resolve(g, "")
	assert.Equal(t, "https://example.com/Project.md", got.Link)
	assert.Equal(t, "Project", got.Text)
	require.Len(t, got.Children, 1)
	assert.Equal(t, "https://example.com/issues", got.Children[0].Link)
}

func TestResolveGroupPrefixComposes(t *testing.T) {
	inner := GroupItem("Config", "config/", LinkItem("Options", "options.md"))
	outer := GroupItem("Reference", "reference/", inner, PathItem("config.md"))

	got := newTestResolver().Resolve(outer, "/")
	require.Len(t, got.Children, 2)
	assert.Equal(t, "/reference/config/options.html", got.Children[0].Children[0].Link)
	assert.Equal(t, "Configuration", got.Children[1].Text)
	assert.Equal(t, "gear", got.Children[1].Icon)
}

func TestResolveEmptyGroupHasChildren(t *testing.T) {
	got := newTestResolver().Resolve(GroupItem("Nothing", ""), "")
	require.NotNil(t, got.Children)
	assert.Empty(t, got.Children)
}

func TestResolveAllFromYAML(t *testing.T) {
	var items []Item
	require.NoError(t, yaml.Unmarshal([]byte(`
- /guide/intro.md
- text: Reference
  link: /reference/
  activeMatch: ^/reference/
- text: More
  prefix: /reference/
  children:
    - config.md
    - text: GitHub
      link: https://github.com/inful/docnav
      target: _blank
`), &items))

	got := newTestResolver().ResolveAll(items)
	want := []ResolvedItem{
		{Type: TypeLink, Text: "Intro", Link: "/guide/intro.html"},
		{Type: TypeLink, Text: "Reference", Link: "/reference/", ActiveMatch: "^/reference/"},
		{Type: TypeGroup, Text: "More", Prefix: "/reference/", Children: []ResolvedItem{
			{Type: TypeLink, Text: "Configuration", Icon: "gear", Link: "/reference/config.html"},
			{Type: TypeLink, Text: "GitHub", Link: "https://github.com/inful/docnav", Target: "_blank"},
		}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("navbar mismatch (-want +got):\n%s", diff)
	}
}

func TestItemMarshalYAML(t *testing.T) {
	out, err := yaml.Marshal([]Item{PathItem("/a.md"), GroupItem("G", "", LinkItem("B", "/b.md"))})
	require.NoError(t, err)

	var back []Item
	require.NoError(t, yaml.Unmarshal(out, &back))
	require.Len(t, back, 2)
	assert.Equal(t, KindPath, back[0].Kind)
	assert.Equal(t, KindGroup, back[1].Kind)
	assert.Equal(t, LinkItem("B", "/b.md"), back[1].Children[0])
}

func TestResolveAbsoluteGroupPrefixExtendsOuter(t *testing.T) {
	g := GroupItem("G", "/b/", PathItem("x.md"), PathItem("/y.md"), LinkItem("Z", "z.md"))

	got := newTestResolver().Resolve(g, "/a/")
	require.Len(t, got.Children, 3)
	assert.Equal(t, "/a/b/x.html", got.Children[0].Link)
	assert.Equal(t, "/a/b/y.html", got.Children[1].Link)
	assert.Equal(t, "/a/b/z.html", got.Children[2].Link)
}

func TestJoinPrefix(t *testing.T) {
	cases := []struct{ prefix, p, want string }{
		{"", "/guide/", "/guide/"},
		{"/a/", "b/", "/a/b/"},
		{"/a/", "/b/", "/a/b/"},
		{"/a", "b.md", "/ab.md"},
		{"/a/", "", "/a/"},
		{"/a/", "https://example.com/x.md", "https://example.com/x.md"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, joinPrefix(tc.prefix, tc.p), "%q + %q", tc.prefix, tc.p)
	}
}
