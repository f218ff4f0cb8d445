package progress

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/guruai/internal/profile"
	pg "github.com/abhisek/guruai/internal/progress"
	"github.com/abhisek/guruai/internal/screen"
	"github.com/abhisek/guruai/internal/ui/components"
	"github.com/abhisek/guruai/internal/ui/layout"
	"github.com/abhisek/guruai/internal/ui/theme"
)

// ProgressScreen shows the student's streak, weekly scores and subject
// mastery.
type ProgressScreen struct {
	profile profile.Profile
	summary pg.Summary
}

var _ screen.Screen = (*ProgressScreen)(nil)
var _ screen.KeyHintProvider = (*ProgressScreen)(nil)

// New creates a progress screen for p showing summary.
func New(p profile.Profile, summary pg.Summary) *ProgressScreen {
	return &ProgressScreen{profile: p, summary: summary}
}

func (s *ProgressScreen) Init() tea.Cmd { return nil }

func (s *ProgressScreen) Title() string { return "My Progress" }

func (s *ProgressScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }

func (s *ProgressScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}

func (s *ProgressScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	sections := []string{
		s.renderStats(cw),
		s.renderWeekly(cw),
		s.renderMastery(cw),
	}
	return components.Panel(lipgloss.JoinVertical(lipgloss.Left, sections...), width, height)
}

func (s *ProgressScreen) renderStats(cw int) string {
	stats := []struct {
		icon, value, label string
	}{
		{"🔥", fmt.Sprintf("%d days", s.summary.StreakDays), "Streak"},
		{"📝", fmt.Sprint(s.summary.QuestionsAnswered), "Questions"},
		{"🎯", fmt.Sprintf("%d%%", s.summary.AccuracyPercent), "Accuracy"},
	}

	tileWidth := max((cw-2)/len(stats)-2, 10)
	tiles := make([]string, len(stats))
	for i, st := range stats {
		content := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(st.icon+" "+st.value) +
			"\n" + theme.Hint.Render(st.label)
		tiles[i] = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Width(tileWidth).
			Align(lipgloss.Center).
			Render(content)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tiles...)
}

func (s *ProgressScreen) renderWeekly(cw int) string {
	bars := make([]components.Bar, len(s.summary.Weekly))
	for i, d := range s.summary.Weekly {
		bars[i] = components.Bar{Label: d.Day, Value: d.Score}
	}
	chart := components.BarChart{Bars: bars, Max: 100, Height: 5, BarWidth: 4}

	best := s.summary.Best()
	var b strings.Builder
	b.WriteString(components.Heading("This Week"))
	b.WriteString("\n\n")
	b.WriteString(chart.View())
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render(fmt.Sprintf("Average %d · Best %s (%d)",
		s.summary.WeeklyAverage(), best.Day, best.Score)))
	return components.Card(b.String(), cw)
}

func (s *ProgressScreen) renderMastery(cw int) string {
	labelWidth := 0
	for _, m := range s.summary.Mastery {
		labelWidth = max(labelWidth, lipgloss.Width(string(m.Subject)))
	}

	var b strings.Builder
	b.WriteString(components.Heading("Subject Mastery"))
	b.WriteString("\n\n")
	for _, m := range s.summary.Mastery {
		bar := components.ProgressBar{
			Label:      string(m.Subject),
			LabelWidth: labelWidth,
			Fraction:   float64(m.Score) / pg.MasteryScale,
			Suffix:     fmt.Sprintf("%d/%d", m.Score, pg.MasteryScale),
			Width:      cw - 4,
		}
		b.WriteString(bar.View())
		b.WriteString("\n")
	}
	if top, ok := s.summary.Strongest(); ok {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render(fmt.Sprintf("Strongest: %s %s", top.Subject.Icon(), top.Subject)))
	}
	return components.Card(b.String(), cw)
}
