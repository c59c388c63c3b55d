package sidebar

// DefaultHeadingDepth is the header unfolding depth when neither the page
// nor the theme sets one.
const DefaultHeadingDepth = 2

// Sources holds the places a sidebar config and depth can come from.
// Nil means "not set".
type Sources struct {
	Home              bool
	PageSidebar       *Config
	ThemeSidebar      *Config
	PageHeadingDepth  *int
	ThemeHeadingDepth *int
}

// Select picks the effective config and depth: home pages have no sidebar,
// otherwise page frontmatter wins over the theme locale, falling back to auto.
func Select(src Sources) (Config, int) {
	depth := DefaultHeadingDepth
	switch {
	case src.PageHeadingDepth != nil:
		depth = *src.PageHeadingDepth
	case src.ThemeHeadingDepth != nil:
		depth = *src.ThemeHeadingDepth
	}

	switch {
	case src.Home:
		return Disabled(), depth
	case src.PageSidebar != nil:
		return *src.PageSidebar, depth
	case src.ThemeSidebar != nil:
		return *src.ThemeSidebar, depth
	default:
		return Auto(), depth
	}
}
