package components

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/guruai/internal/ui/theme"
)

// ProgressBar is a labelled horizontal bar. Labels are padded to
// LabelWidth so a stack of bars lines up.
type ProgressBar struct {
	Label      string
	LabelWidth int
	Fraction   float64 // 0.0-1.0
	Suffix     string  // e.g. "120/150"
	Width      int     // total width including label and suffix
	Color      color.Color
}

// View renders the bar.
func (p ProgressBar) View() string {
	var out strings.Builder

	if p.Label != "" {
		lw := max(p.LabelWidth, lipgloss.Width(p.Label))
		out.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Width(lw + 2).Render(p.Label))
	}

	suffix := ""
	if p.Suffix != "" {
		suffix = "  " + p.Suffix
	}

	barWidth := max(p.Width-lipgloss.Width(out.String())-lipgloss.Width(suffix), 4)
	filled := min(max(int(float64(barWidth)*p.Fraction+0.5), 0), barWidth)

	fg := p.Color
	if fg == nil {
		fg = theme.Secondary
	}
	out.WriteString(lipgloss.NewStyle().Foreground(fg).Render(strings.Repeat("█", filled)))
	out.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", barWidth-filled)))
	out.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(suffix))

	return out.String()
}
