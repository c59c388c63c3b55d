package sidebar

import "git.home.luguber.info/inful/docnav/internal/outline"

// ProjectHeaders converts a heading outline into heading items linking to
// pagePath#slug, unfolding at most remainingDepth levels.
func ProjectHeaders(headers []outline.Header, remainingDepth int, pagePath string) []ResolvedItem {
	if remainingDepth <= 0 {
		return []ResolvedItem{}
	}
	items := make([]ResolvedItem, 0, len(headers))
	for _, h := range headers {
		items = append(items, ResolvedItem{
			Type:     TypeHeading,
			Text:     h.Title,
			Link:     pagePath + "#" + h.Slug,
			Children: ProjectHeaders(h.Children, remainingDepth-1, pagePath),
		})
	}
	return items
}

// pageHeaders returns the outline used for the active page entry in a list
// sidebar. A leading level-1 heading repeats the entry text, so its children
// take its place.
func pageHeaders(headers []outline.Header) []outline.Header {
	if len(headers) > 0 && headers[0].Level == 1 {
		return headers[0].Children
	}
	return headers
}
