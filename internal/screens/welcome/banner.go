package welcome

import (
	"strings"
	"sync"

	"charm.land/lipgloss/v2"
	"github.com/common-nighthawk/go-figure"

	"github.com/abhisek/guruai/internal/ui/theme"
)

const bannerCompact = "G U R U · A I"

var (
	bannerOnce sync.Once
	bannerArt  string
	bannerW    int
)

func figureBanner() (string, int) {
	bannerOnce.Do(func() {
		bannerArt = strings.TrimRight(figure.NewFigure("GuruAI", "", true).String(), "\n")
		bannerW = lipgloss.Width(bannerArt)
	})
	return bannerArt, bannerW
}

// RenderBanner returns the GuruAI banner styled in the brand color,
// falling back to spaced letters when the figure does not fit.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.PrimaryLt).
		Bold(true)

	art, w := figureBanner()
	if width < w+2 {
		return style.Render(bannerCompact)
	}
	return style.Render(art)
}
