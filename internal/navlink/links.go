package navlink

import (
	"path"
	"regexp"
	"strings"
)

var protocolRe = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*:`)

// ResolvePrefix joins prefix and p when p is relative. External and
// path-absolute links are returned unchanged.
func ResolvePrefix(prefix, p string) string {
	if IsLinkWithProtocol(p) || strings.HasPrefix(p, "/") {
		return p
	}
	return prefix + p
}

// IsLinkWithProtocol reports whether link starts with a URL scheme or is protocol-relative.
func IsLinkWithProtocol(link string) bool {
	return protocolRe.MatchString(link) || strings.HasPrefix(link, "//")
}

// IsLinkExternal reports whether link leaves the site served under base.
// Absolute links outside base count as external unless they point at a Markdown file.
func IsLinkExternal(link, base string) bool {
	if IsLinkWithProtocol(link) {
		return true
	}
	if base == "" {
		base = "/"
	}
	if strings.HasPrefix(link, "/") && !strings.HasPrefix(link, base) && !isMarkdownLink(link) {
		return true
	}
	return false
}

func isMarkdownLink(link string) bool {
	p, _ := splitFragment(link)
	return strings.HasSuffix(strings.ToLower(p), ".md")
}

// NormalizeRoute converts a content link into a route path.
//
//	guide/README.md   -> /guide/
//	guide/intro.md    -> /guide/intro.html
//	guide/intro.md#x  -> /guide/intro.html#x
//
// External links are returned unchanged.
func NormalizeRoute(link string) string {
	if link == "" || IsLinkWithProtocol(link) {
		return link
	}
	p, rest := splitFragment(link)
	if p == "" {
		return link
	}
	if strings.HasSuffix(strings.ToLower(p), ".md") {
		dir, file := path.Split(p)
		switch strings.ToLower(file) {
		case "readme.md", "index.md":
			p = dir
		default:
			p = p[:len(p)-len(".md")] + ".html"
		}
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p + rest
}

// StripFragment drops any #hash or ?query suffix from link.
func StripFragment(link string) string {
	p, _ := splitFragment(link)
	return p
}

func splitFragment(link string) (string, string) {
	if i := strings.IndexAny(link, "?#"); i >= 0 {
		return link[:i], link[i:]
	}
	return link, ""
}
