package chat

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/guruai/internal/llm"
	"github.com/abhisek/guruai/internal/tutor"
	"github.com/abhisek/guruai/internal/ui/theme"
)

func (c *ChatScreen) View(width, height int) string {
	header := c.renderHeader(width)
	footer := c.renderInput(width)

	bodyHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 1)

	var body string
	switch {
	case c.mode != modeText:
		body = c.renderCamera(width, bodyHeight)
	case c.conv.Len() == 0:
		body = c.renderSuggestions(width, bodyHeight)
	default:
		body = c.renderTranscript(width, bodyHeight)
	}

	return header + "\n" + lipgloss.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight).Render(body) + "\n" + footer
}

func (c *ChatScreen) renderHeader(width int) string {
	subject := c.conv.Subject()
	left := lipgloss.NewStyle().Foreground(theme.PrimaryLt).Bold(true).
		Render(fmt.Sprintf(" %s GuruAI (%s)", subject.Icon(), subject))
	right := theme.Hint.Render(fmt.Sprintf("Helping with %s syllabus ", c.profile.Grade))
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right + "\n" +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width, 0)))
}

func (c *ChatScreen) renderInput(width int) string {
	var b strings.Builder
	if c.notice != "" {
		b.WriteString(theme.Notice.Render(" ⚠ " + c.notice))
		b.WriteString("\n")
	}
	if c.conv.Busy() {
		b.WriteString(" " + c.spin.View() + theme.Hint.Render("GuruAI is thinking..."))
		b.WriteString("\n")
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Width(max(width-2, 10)).
		Render(c.input.View())
	b.WriteString(box)
	return b.String()
}

func (c *ChatScreen) renderSuggestions(width, height int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
		Render(fmt.Sprintf("Namaste %s! What shall we learn today?", c.profile.FirstName())))
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render("Try one of these, or type your own question:"))
	b.WriteString("\n\n")
	for i, s := range Suggestions {
		if i == c.suggestion {
			b.WriteString(theme.Selected.Render("▸ " + s))
		} else {
			b.WriteString(theme.Unselected.Render("  " + s))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("Ctrl+O to photograph a problem from your book."))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

func (c *ChatScreen) renderCamera(width, height int) string {
	var status string
	switch c.mode {
	case modeCameraStarting:
		status = "Starting camera..."
	case modeCameraReady:
		status = "Camera ready. Hold the problem steady and press Enter."
	case modeCapturing:
		status = c.spin.View() + "Capturing..."
	}
	frame := lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(theme.Accent).
		Width(min(width-4, 50)).
		Height(min(height-4, 10)).
		Align(lipgloss.Center, lipgloss.Center).
		Render("📷\n\n" + status)

	hint := ""
	if q := c.input.Trimmed(); q != "" {
		hint = "\n" + theme.Hint.Render("Note for GuruAI: "+q)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, frame+hint)
}

// renderTranscript renders every message and shows the window of lines
// ending c.scroll lines above the bottom.
func (c *ChatScreen) renderTranscript(width, height int) string {
	bubbleWidth := max(width*3/4, 20)

	var lines []string
	for _, m := range c.conv.Messages() {
		lines = append(lines, strings.Split(renderMessage(m, width, bubbleWidth), "\n")...)
		lines = append(lines, "")
	}

	maxScroll := max(len(lines)-height, 0)
	if c.scroll > maxScroll {
		c.scroll = maxScroll
	}
	end := len(lines) - c.scroll
	start := max(end-height, 0)
	return strings.Join(lines[start:end], "\n")
}

func renderMessage(m tutor.Message, width, bubbleWidth int) string {
	content := m.Content
	if m.HasImage {
		content = "📷 " + content
	}

	if m.Role == llm.RoleUser {
		bubble := theme.UserBubble.Width(min(lipgloss.Width(content)+2, bubbleWidth)).Render(content)
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, bubble)
	}

	style := theme.TutorBubble
	if m.Content == tutor.FallbackReply {
		style = style.BorderForeground(theme.Error)
	}
	label := lipgloss.NewStyle().Foreground(theme.PrimaryLt).Bold(true).Render("GuruAI")
	return label + "\n" + style.Width(bubbleWidth).Render(content)
}
