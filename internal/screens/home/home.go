package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/guruai/internal/profile"
	"github.com/abhisek/guruai/internal/progress"
	"github.com/abhisek/guruai/internal/router"
	"github.com/abhisek/guruai/internal/screen"
	"github.com/abhisek/guruai/internal/ui/components"
	"github.com/abhisek/guruai/internal/ui/layout"
	"github.com/abhisek/guruai/internal/ui/theme"
)

// LogoutMsg asks the app to forget the profile and return to login.
type LogoutMsg struct{}

// Screens builds the screens reachable from the dashboard.
type Screens struct {
	Chat     func(subject profile.Subject) screen.Screen
	Quiz     func() screen.Screen
	Progress func() screen.Screen
}

// HomeScreen is the dashboard shown after login.
type HomeScreen struct {
	profile  profile.Profile
	screens  Screens
	subjects []profile.Subject
	subject  int
	syllabus int
	menu     components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates the dashboard for p.
func New(p profile.Profile, screens Screens) *HomeScreen {
	h := &HomeScreen{
		profile:  p,
		screens:  screens,
		subjects: profile.Subjects(),
		syllabus: progress.Sample().SyllabusPercent,
	}

	h.menu = components.NewMenu([]components.MenuItem{
		{Label: "Ask GuruAI", Detail: "chat with your tutor", Action: h.openChat, Disabled: screens.Chat == nil},
		{Label: "Take a Quiz", Detail: "5 quick questions", Action: h.push(screens.Quiz), Disabled: screens.Quiz == nil},
		{Label: "My Progress", Detail: "scores and streaks", Action: h.push(screens.Progress), Disabled: screens.Progress == nil},
		{Label: "Logout", Action: func() tea.Cmd {
			return func() tea.Msg { return LogoutMsg{} }
		}},
	})
	return h
}

func (h *HomeScreen) push(build func() screen.Screen) func() tea.Cmd {
	return func() tea.Cmd {
		if build == nil {
			return nil
		}
		return router.Push(build())
	}
}

func (h *HomeScreen) openChat() tea.Cmd {
	if h.screens.Chat == nil {
		return nil
	}
	return router.Push(h.screens.Chat(h.subjects[h.subject]))
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Dashboard"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "←→", Description: "Subject"},
		{Key: "Enter", Description: "Select"},
	}
}

// Subject returns the highlighted subject.
func (h *HomeScreen) Subject() profile.Subject {
	return h.subjects[h.subject]
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "left", "h":
			h.subject = (h.subject - 1 + len(h.subjects)) % len(h.subjects)
			return h, nil
		case "right", "l":
			h.subject = (h.subject + 1) % len(h.subjects)
			return h, nil
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	compact := layout.IsCompactHeight(height + layout.HeaderHeight + layout.FooterHeight)

	var sections []string

	greeting := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
		Render(fmt.Sprintf("Namaste, %s!", h.profile.FirstName()))
	sub := theme.Hint.Render(fmt.Sprintf("Class %s · %s", h.profile.Grade, h.profile.Board))
	sections = append(sections, greeting+"\n"+sub)

	bar := components.ProgressBar{
		Label:    "Syllabus",
		Fraction: float64(h.syllabus) / 100,
		Suffix:   fmt.Sprintf("%d%% complete", h.syllabus),
		Width:    cw - 4,
		Color:    theme.PrimaryLt,
	}
	sections = append(sections, components.Card(bar.View(), cw))

	sections = append(sections, h.renderSubjects(cw, compact))
	sections = append(sections, components.Card(components.Heading("Quick actions")+"\n"+h.menu.View(), cw))

	content := lipgloss.NewStyle().Width(cw).Render(strings.Join(sections, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) renderSubjects(cw int, compact bool) string {
	var rows []string
	rows = append(rows, components.Heading("Subjects"))

	tiles := make([]string, len(h.subjects))
	for i, s := range h.subjects {
		label := s.Icon() + " " + string(s)
		if compact {
			label = s.Icon()
		}
		style := lipgloss.NewStyle().Foreground(theme.TextDim).Padding(0, 1)
		if i == h.subject {
			style = lipgloss.NewStyle().Foreground(theme.Text).Background(theme.Primary).Bold(true).Padding(0, 1)
		}
		tiles[i] = style.Render(label)
	}
	rows = append(rows, lipgloss.NewStyle().Width(cw-4).Render(strings.Join(tiles, "")))

	current := h.subjects[h.subject]
	rows = append(rows, theme.Hint.Render(fmt.Sprintf("%s · %d chapters", current, current.Chapters())))

	return components.Card(strings.Join(rows, "\n"), cw)
}
