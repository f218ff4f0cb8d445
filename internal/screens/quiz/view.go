package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/guruai/internal/ui/components"
	"github.com/abhisek/guruai/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var body string
	switch s.stage() {
	case stageTopic:
		body = s.viewTopic(cw)
	case stageLoading:
		body = s.viewLoading(cw)
	case stageQuestion, stageExplaining:
		body = s.viewQuestion(cw)
	case stageFinished:
		body = s.viewFinished(cw)
	case stageError:
		body = s.viewError(cw)
	}
	return components.Panel(body, width, height)
}

func (s *QuizScreen) viewTopic(cw int) string {
	var b strings.Builder
	b.WriteString(components.Heading("Quiz Yourself"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("Five questions pitched at Class %s.", s.profile.Grade)))
	b.WriteString("\n\n")

	b.WriteString(theme.Body.Render("Subject"))
	b.WriteString("\n")
	for i, sub := range s.subjects {
		label := sub.Icon() + " " + string(sub)
		if i == s.subject {
			b.WriteString(theme.ButtonActive.Render(label))
		} else {
			b.WriteString(theme.ButtonInactive.Render(label))
		}
		b.WriteString(" ")
	}
	b.WriteString("\n\n")

	b.WriteString(theme.Body.Render("Topic"))
	b.WriteString("\n")
	b.WriteString(s.topic.View())
	if s.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Notice.Render("⚠ " + s.notice))
	}
	return components.Card(b.String(), cw)
}

func (s *QuizScreen) viewLoading(cw int) string {
	topic := s.ctrl.Last().Topic
	text := fmt.Sprintf("%s Preparing your quiz on %q...", s.spin.View(), topic)
	return components.Card(theme.Body.Render(text), cw)
}

func (s *QuizScreen) viewQuestion(cw int) string {
	sess := s.ctrl.Session()
	q, _ := sess.Current()

	var b strings.Builder
	b.WriteString(theme.Hint.Render(fmt.Sprintf("Question %d of %d · Score %d",
		sess.Index()+1, sess.Len(), sess.Score())))
	b.WriteString("\n\n")
	b.WriteString(s.mc.View(cw - 4))

	if s.stage() == stageExplaining {
		b.WriteString("\n\n")
		if s.lastOK {
			b.WriteString(theme.Correct.Render("✓ Correct!"))
		} else {
			b.WriteString(theme.Incorrect.Render(fmt.Sprintf("✗ Not quite. The answer is %s.",
				q.Options[q.CorrectAnswer])))
		}
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(cw - 4).Foreground(theme.TextDim).Render(q.Explanation))
		b.WriteString("\n\n")
		next := "Next question"
		if sess.Index() == sess.Len()-1 {
			next = "See results"
		}
		b.WriteString(theme.Hint.Render("Enter · " + next))
	}
	return components.Card(b.String(), cw)
}

func (s *QuizScreen) viewFinished(cw int) string {
	sess := s.ctrl.Session()
	var b strings.Builder
	b.WriteString(components.Heading("Quiz Complete"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render(s.ctrl.Last().Topic))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
		Render(fmt.Sprintf("You scored %d/%d", sess.Score(), sess.Len())))
	b.WriteString("\n")
	b.WriteString(theme.Body.Render(verdict(sess.Percent())))
	b.WriteString("\n\n")
	b.WriteString(s.actions.View())
	return components.Card(b.String(), cw)
}

func (s *QuizScreen) viewError(cw int) string {
	var b strings.Builder
	b.WriteString(theme.ErrorText.Render("⚠ " + describeError(s.ctrl.Err())))
	b.WriteString("\n\n")
	b.WriteString(s.actions.View())
	return components.Card(b.String(), cw)
}

func verdict(percent int) string {
	switch {
	case percent == 100:
		return "Perfect score! Shabash!"
	case percent >= 80:
		return "Excellent work."
	case percent >= 60:
		return "Good effort. Review the ones you missed."
	}
	return "Keep practising. Try the quiz again."
}
