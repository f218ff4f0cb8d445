// Package login is the profile gate: the student enters a name and picks
// a grade and board before anything else is reachable.
package login

import (
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/guruai/internal/profile"
	"github.com/abhisek/guruai/internal/screen"
	"github.com/abhisek/guruai/internal/ui/components"
	"github.com/abhisek/guruai/internal/ui/layout"
	"github.com/abhisek/guruai/internal/ui/theme"
)

// DoneMsg carries the validated profile to the app.
type DoneMsg struct {
	Profile profile.Profile
}

type field int

const (
	fieldName field = iota
	fieldGrade
	fieldBoard
	fieldSubmit
	fieldCount
)

// LoginScreen collects the student profile.
type LoginScreen struct {
	name   components.TextInput
	grades []profile.Grade
	boards []profile.Board
	grade  int
	board  int
	focus  field
	errMsg string
}

var _ screen.Screen = (*LoginScreen)(nil)
var _ screen.KeyHintProvider = (*LoginScreen)(nil)

// New creates a LoginScreen. prefill, if non-zero, seeds the fields.
func New(prefill profile.Profile) *LoginScreen {
	l := &LoginScreen{
		name:   components.NewTextInput("Your name", 40, 30),
		grades: profile.Grades(),
		boards: profile.Boards(),
		grade:  1,
	}
	if prefill.Name != "" {
		l.name.SetValue(prefill.Name)
	}
	for i, g := range l.grades {
		if g == prefill.Grade {
			l.grade = i
		}
	}
	for i, b := range l.boards {
		if b == prefill.Board {
			l.board = i
		}
	}
	return l
}

func (l *LoginScreen) Init() tea.Cmd {
	return l.name.Init()
}

func (l *LoginScreen) Title() string {
	return "Welcome"
}

func (l *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab/↑↓", Description: "Move"},
		{Key: "←→", Description: "Change"},
		{Key: "Enter", Description: "Start learning"},
	}
}

func (l *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if l.focus == fieldName {
			var cmd tea.Cmd
			l.name, cmd = l.name.Update(msg)
			return l, cmd
		}
		return l, nil
	}

	switch kmsg.String() {
	case "tab", "down":
		return l, l.moveFocus(1)
	case "shift+tab", "up":
		return l, l.moveFocus(-1)
	case "enter":
		if l.focus == fieldName && l.name.Trimmed() != "" {
			return l, l.moveFocus(1)
		}
		return l, l.submit()
	case "left":
		l.cycle(-1)
		if l.focus != fieldName {
			return l, nil
		}
	case "right":
		l.cycle(1)
		if l.focus != fieldName {
			return l, nil
		}
	}

	if l.focus == fieldName {
		l.errMsg = ""
		var cmd tea.Cmd
		l.name, cmd = l.name.Update(msg)
		return l, cmd
	}
	return l, nil
}

func (l *LoginScreen) moveFocus(delta int) tea.Cmd {
	l.focus = field((int(l.focus) + delta + int(fieldCount)) % int(fieldCount))
	if l.focus == fieldName {
		return l.name.Focus()
	}
	l.name.Blur()
	return nil
}

func (l *LoginScreen) cycle(delta int) {
	switch l.focus {
	case fieldGrade:
		l.grade = (l.grade + delta + len(l.grades)) % len(l.grades)
	case fieldBoard:
		l.board = (l.board + delta + len(l.boards)) % len(l.boards)
	}
}

func (l *LoginScreen) submit() tea.Cmd {
	p, err := profile.New(l.name.Value(), l.grades[l.grade], l.boards[l.board])
	if err != nil {
		l.errMsg = "Please enter your name to continue."
		if !errors.Is(err, profile.ErrInvalidProfile) {
			l.errMsg = err.Error()
		}
		l.focus = fieldName
		return l.name.Focus()
	}
	l.errMsg = ""
	return func() tea.Msg { return DoneMsg{Profile: p} }
}

func (l *LoginScreen) View(width, height int) string {
	cw := min(components.ContentWidth(width), 56)

	label := func(f field, s string) string {
		if l.focus == f {
			return theme.Selected.Render("▸ " + s)
		}
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render("  " + s)
	}

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw - 4).Render("Namaste! Let's set you up"))
	b.WriteString("\n\n")

	b.WriteString(label(fieldName, "Name"))
	b.WriteString("\n    ")
	b.WriteString(l.name.View())
	b.WriteString("\n\n")

	b.WriteString(label(fieldGrade, "Class"))
	b.WriteString("\n    ")
	b.WriteString(choiceRow(gradeLabels(l.grades), l.grade, l.focus == fieldGrade))
	b.WriteString("\n\n")

	b.WriteString(label(fieldBoard, "Board"))
	b.WriteString("\n    ")
	b.WriteString(choiceRow(boardLabels(l.boards), l.board, l.focus == fieldBoard))
	b.WriteString("\n\n")

	btn := theme.ButtonInactive
	if l.focus == fieldSubmit {
		btn = theme.ButtonActive
	}
	b.WriteString(lipgloss.NewStyle().Width(cw - 4).Align(lipgloss.Center).Render(btn.Render("Start Learning")))

	if l.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.ErrorText.Render(l.errMsg))
	}

	card := components.Card(b.String(), cw)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func choiceRow(labels []string, selected int, focused bool) string {
	parts := make([]string, len(labels))
	for i, s := range labels {
		switch {
		case i == selected && focused:
			parts[i] = theme.ButtonActive.Render(s)
		case i == selected:
			parts[i] = lipgloss.NewStyle().Foreground(theme.PrimaryLt).Bold(true).Padding(0, 2).Render(s)
		default:
			parts[i] = lipgloss.NewStyle().Foreground(theme.TextDim).Padding(0, 2).Render(s)
		}
	}
	return strings.Join(parts, " ")
}

func gradeLabels(gs []profile.Grade) []string {
	out := make([]string, len(gs))
	for i, g := range gs {
		out[i] = string(g)
	}
	return out
}

func boardLabels(bs []profile.Board) []string {
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = string(b)
	}
	return out
}
