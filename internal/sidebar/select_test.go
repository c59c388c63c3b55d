package sidebar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(i int) *int { return &i }

func TestSelect(t *testing.T) {
	page := Array(PathItem("a.md"))
	theme := Multi(MultiEntry{Prefix: "/", Items: []Item{PathItem("b.md")}})

	tests := []struct {
		name      string
		src       Sources
		wantMode  Mode
		wantDepth int
	}{
		{"defaults", Sources{}, ModeAuto, DefaultHeadingDepth},
		{"home disables", Sources{Home: true, PageSidebar: &page}, ModeDisabled, DefaultHeadingDepth},
		{"page wins", Sources{PageSidebar: &page, ThemeSidebar: &theme}, ModeArray, DefaultHeadingDepth},
		{"theme fallback", Sources{ThemeSidebar: &theme, ThemeHeadingDepth: intPtr(3)}, ModeMulti, 3},
		{"page depth wins", Sources{PageHeadingDepth: intPtr(0), ThemeHeadingDepth: intPtr(4)}, ModeAuto, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, depth := Select(tt.src)
			assert.Equal(t, tt.wantMode, cfg.Mode)
			assert.Equal(t, tt.wantDepth, depth)
		})
	}
}
