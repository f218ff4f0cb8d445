package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/guruai/internal/ui/theme"
)

// Bar is one column of a BarChart.
type Bar struct {
	Label string
	Value int
}

// BarChart renders vertical bars scaled to Max over Height rows.
type BarChart struct {
	Bars     []Bar
	Max      int
	Height   int
	BarWidth int
}

var eighths = []string{" ", "▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"}

// View renders the chart with values on top and labels below.
func (c BarChart) View() string {
	if len(c.Bars) == 0 || c.Height <= 0 {
		return ""
	}
	maxV := c.Max
	if maxV <= 0 {
		for _, b := range c.Bars {
			maxV = max(maxV, b.Value)
		}
	}
	if maxV <= 0 {
		maxV = 1
	}
	bw := max(c.BarWidth, 3)
	cell := lipgloss.NewStyle().Width(bw + 1)
	bar := lipgloss.NewStyle().Foreground(theme.PrimaryLt)

	var rows []string

	var top strings.Builder
	for _, b := range c.Bars {
		top.WriteString(cell.Foreground(theme.TextDim).Render(fmt.Sprint(b.Value)))
	}
	rows = append(rows, top.String())

	// Heights in eighths of a row.
	levels := make([]int, len(c.Bars))
	for i, b := range c.Bars {
		levels[i] = min(b.Value, maxV) * c.Height * 8 / maxV
	}
	for row := c.Height - 1; row >= 0; row-- {
		var line strings.Builder
		for _, lvl := range levels {
			fill := min(max(lvl-row*8, 0), 8)
			line.WriteString(cell.Render(bar.Render(strings.Repeat(eighths[fill], bw))))
		}
		rows = append(rows, line.String())
	}

	var labels strings.Builder
	for _, b := range c.Bars {
		labels.WriteString(cell.Foreground(theme.Text).Render(b.Label))
	}
	rows = append(rows, labels.String())

	return strings.Join(rows, "\n")
}
