// Package quiz is the quiz screen: pick a topic and subject, answer five
// generated questions one at a time, then retake or choose another topic.
package quiz

import (
	"context"
	"errors"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/guruai/internal/llm"
	"github.com/abhisek/guruai/internal/profile"
	qz "github.com/abhisek/guruai/internal/quiz"
	"github.com/abhisek/guruai/internal/screen"
	"github.com/abhisek/guruai/internal/ui/components"
	"github.com/abhisek/guruai/internal/ui/layout"
	"github.com/abhisek/guruai/internal/ui/theme"
)

type stage int

const (
	stageTopic stage = iota
	stageLoading
	stageQuestion
	stageExplaining
	stageFinished
	stageError
)

// quizReadyMsg delivers a generation result.
type quizReadyMsg struct {
	attempt *qz.Attempt
	result  qz.Result
}

// QuizScreen drives one quiz.Controller.
type QuizScreen struct {
	ctx    context.Context
	cancel context.CancelFunc

	ctrl     *qz.Controller
	profile  profile.Profile
	subjects []profile.Subject
	subject  int

	topic   components.TextInput
	spin    spinner.Model
	mc      components.MultiChoice
	actions components.ButtonRow
	lastOK  bool
	notice  string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.Closer = (*QuizScreen)(nil)

// New creates a quiz screen for p.
func New(parent context.Context, ctrl *qz.Controller, p profile.Profile) *QuizScreen {
	ctx, cancel := context.WithCancel(parent)
	return &QuizScreen{
		ctx:      ctx,
		cancel:   cancel,
		ctrl:     ctrl,
		profile:  p,
		subjects: profile.QuizSubjects(),
		topic:    components.NewTextInput("e.g. Photosynthesis, Linear Equations", 80, 40),
		spin: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(theme.Selected),
		),
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	return s.topic.Init()
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

// Close cancels any pending generation.
func (s *QuizScreen) Close() {
	s.cancel()
	s.ctrl.Cancel()
}

func (s *QuizScreen) stage() stage {
	switch {
	case s.ctrl.Loading():
		return stageLoading
	case s.ctrl.Session() != nil:
		sess := s.ctrl.Session()
		if sess.Finished() {
			return stageFinished
		}
		if sess.Phase() == qz.PhaseExplaining {
			return stageExplaining
		}
		return stageQuestion
	case s.ctrl.Err() != nil:
		return stageError
	}
	return stageTopic
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch s.stage() {
	case stageTopic:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Generate"},
			{Key: "Tab", Description: "Subject"},
			{Key: "Esc", Description: "Back"},
		}
	case stageQuestion:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Move"},
			{Key: "Enter/A-D", Description: "Answer"},
			{Key: "Esc", Description: "Quit quiz"},
		}
	case stageExplaining:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
		}
	case stageFinished, stageError:
		return []layout.KeyHint{
			{Key: "←→", Description: "Choose"},
			{Key: "Enter", Description: "Select"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{{Key: "Esc", Description: "Cancel"}}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizReadyMsg:
		return s.handleReady(msg)
	case components.ChoiceMsg:
		return s.handleChoice(msg)
	case spinner.TickMsg:
		if !s.ctrl.Loading() {
			return s, nil
		}
		var cmd tea.Cmd
		s.spin, cmd = s.spin.Update(msg)
		return s, cmd
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.stage() == stageTopic {
		var cmd tea.Cmd
		s.topic, cmd = s.topic.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	switch s.stage() {
	case stageTopic:
		switch msg.String() {
		case "enter":
			return s, s.generate()
		case "tab":
			s.subject = (s.subject + 1) % len(s.subjects)
			return s, nil
		case "shift+tab":
			s.subject = (s.subject - 1 + len(s.subjects)) % len(s.subjects)
			return s, nil
		}
		s.notice = ""
		s.topic, cmd = s.topic.Update(msg)

	case stageQuestion:
		s.mc, cmd = s.mc.Update(msg)

	case stageExplaining:
		if msg.String() == "enter" || msg.String() == "space" {
			sess := s.ctrl.Session()
			sess.Continue()
			if sess.Finished() {
				s.actions = s.finishedActions()
			} else {
				s.loadQuestion()
			}
		}

	case stageFinished, stageError:
		s.actions, cmd = s.actions.Update(msg)
	}
	return s, cmd
}

// generate begins a generation for the typed topic.
func (s *QuizScreen) generate() tea.Cmd {
	a, err := s.ctrl.Begin(qz.Input{
		Topic:   s.topic.Value(),
		Grade:   s.profile.Grade,
		Subject: s.subjects[s.subject],
	})
	if err != nil {
		if errors.Is(err, qz.ErrEmptyTopic) {
			s.notice = "Type a topic first."
		}
		return nil
	}
	s.notice = ""
	s.topic.Blur()
	return tea.Batch(s.resolve(a), s.spin.Tick)
}

func (s *QuizScreen) retake() tea.Cmd {
	a, err := s.ctrl.Retake()
	if err != nil {
		return nil
	}
	return tea.Batch(s.resolve(a), s.spin.Tick)
}

func (s *QuizScreen) anotherTopic() tea.Cmd {
	s.ctrl.Reset()
	s.notice = ""
	s.topic.Reset()
	return s.topic.Focus()
}

func (s *QuizScreen) resolve(a *qz.Attempt) tea.Cmd {
	ctx, ctrl := s.ctx, s.ctrl
	return func() tea.Msg {
		return quizReadyMsg{attempt: a, result: ctrl.Resolve(ctx, a)}
	}
}

func (s *QuizScreen) handleReady(msg quizReadyMsg) (screen.Screen, tea.Cmd) {
	sess, err := s.ctrl.Finish(msg.attempt, msg.result)
	switch {
	case err != nil:
		s.actions = components.NewButtonRow(
			components.Button{Label: "Try Again", OnPress: s.retake},
			components.Button{Label: "Change Topic", OnPress: s.anotherTopic},
		)
	case sess != nil:
		s.loadQuestion()
	}
	return s, nil
}

func (s *QuizScreen) loadQuestion() {
	q, ok := s.ctrl.Session().Current()
	if !ok {
		return
	}
	s.mc = components.NewMultiChoice(q.Question, q.Options)
}

func (s *QuizScreen) handleChoice(msg components.ChoiceMsg) (screen.Screen, tea.Cmd) {
	sess := s.ctrl.Session()
	if sess == nil {
		return s, nil
	}
	q, ok := sess.Current()
	if !ok {
		return s, nil
	}
	accepted, correct := sess.Select(msg.Index)
	if !accepted {
		return s, nil
	}
	s.lastOK = correct
	s.mc.Reveal(msg.Index, q.CorrectAnswer)
	return s, nil
}

func (s *QuizScreen) finishedActions() components.ButtonRow {
	return components.NewButtonRow(
		components.Button{Label: "Retake", OnPress: s.retake},
		components.Button{Label: "Try Another Topic", OnPress: s.anotherTopic},
	)
}

func describeError(err error) string {
	var (
		malformed *qz.MalformedQuizError
		auth      *llm.ErrAuthentication
		rate      *llm.ErrRateLimit
	)
	switch {
	case errors.As(err, &malformed):
		return "GuruAI sent back a quiz that could not be read. Please try again."
	case errors.As(err, &auth):
		return "GuruAI is not configured. Set GEMINI_API_KEY and restart."
	case errors.As(err, &rate):
		return "GuruAI is busy right now. Wait a moment and try again."
	case errors.Is(err, context.Canceled):
		return "Quiz generation was cancelled."
	}
	return "Could not reach GuruAI. Check your connection and try again."
}
