package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/guruai/internal/llm"
	"github.com/abhisek/guruai/internal/profile"
	qz "github.com/abhisek/guruai/internal/quiz"
	"github.com/abhisek/guruai/internal/ui/components"
)

var student = profile.Profile{Name: "Ananya Iyer", Grade: profile.Grade9, Board: profile.BoardCBSE}

func quizJSON(t *testing.T) string {
	t.Helper()
	qs := make([]qz.Question, qz.QuestionCount)
	for i := range qs {
		qs[i] = qz.Question{
			Question:      fmt.Sprintf("Question %d about chlorophyll?", i+1),
			Options:       []string{"Light", "Water", "Oxygen", "Glucose"},
			CorrectAnswer: i % qz.OptionCount,
			Explanation:   fmt.Sprintf("Explanation %d", i+1),
		}
	}
	b, err := json.Marshal(qs)
	require.NoError(t, err)
	return string(b)
}

func newTestQuiz(t *testing.T, mock *llm.MockProvider) *QuizScreen {
	t.Helper()
	ctrl := qz.NewController(qz.New(mock, qz.DefaultConfig()), nil)
	s := New(context.Background(), ctrl, student)
	t.Cleanup(s.Close)
	return s
}

// drain runs cmd and feeds quiz results and choices back into Update.
func drain(t *testing.T, s *QuizScreen, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(200 * time.Millisecond):
		return
	}

	switch msg := msg.(type) {
	case tea.BatchMsg:
		for _, sub := range msg {
			drain(t, s, sub)
		}
	case quizReadyMsg, components.ChoiceMsg:
		_, next := s.Update(msg)
		drain(t, s, next)
	}
}

func typeText(s *QuizScreen, text string) {
	for _, r := range text {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func press(t *testing.T, s *QuizScreen, code rune) {
	t.Helper()
	_, cmd := s.Update(tea.KeyPressMsg{Code: code, Text: string(code)})
	drain(t, s, cmd)
}

func pressKey(t *testing.T, s *QuizScreen, code rune) {
	t.Helper()
	_, cmd := s.Update(tea.KeyPressMsg{Code: code})
	drain(t, s, cmd)
}

func TestQuiz_GenerateForSubject(t *testing.T) {
	mock := llm.NewMockProvider().Text(quizJSON(t))
	s := newTestQuiz(t, mock)
	assert.Equal(t, stageTopic, s.stage())

	typeText(s, "Photosynthesis")
	pressKey(t, s, tea.KeyTab)
	pressKey(t, s, tea.KeyEnter)

	require.Equal(t, stageQuestion, s.stage())
	call, ok := mock.LastCall()
	require.True(t, ok)
	require.Len(t, call.Messages, 1)
	assert.Contains(t, call.Messages[0].Content, `"Photosynthesis" in Science`)
	assert.Contains(t, call.Messages[0].Content, "9th")
}

func TestQuiz_FullRun(t *testing.T) {
	mock := llm.NewMockProvider().Text(quizJSON(t))
	s := newTestQuiz(t, mock)
	typeText(s, "Photosynthesis")
	pressKey(t, s, tea.KeyEnter)

	// Correct on the first, third and fifth questions.
	answers := []rune{'a', 'a', 'c', 'a', 'a'}
	for i, key := range answers {
		require.Equal(t, stageQuestion, s.stage(), "question %d", i+1)
		press(t, s, key)
		require.Equal(t, stageExplaining, s.stage())
		assert.Contains(t, s.View(100, 40), fmt.Sprintf("Explanation %d", i+1))
		pressKey(t, s, tea.KeyEnter)
	}

	require.Equal(t, stageFinished, s.stage())
	sess := s.ctrl.Session()
	assert.Equal(t, 3, sess.Score())
	assert.Equal(t, 60, sess.Percent())

	view := s.View(100, 40)
	assert.Contains(t, view, "You scored 3/5")
	assert.Contains(t, view, "Retake")
	assert.Contains(t, view, "Try Another Topic")
}

func TestQuiz_AnswerIsLockedOnceChosen(t *testing.T) {
	mock := llm.NewMockProvider().Text(quizJSON(t))
	s := newTestQuiz(t, mock)
	typeText(s, "Photosynthesis")
	pressKey(t, s, tea.KeyEnter)

	press(t, s, 'b')
	require.Equal(t, stageExplaining, s.stage())
	assert.False(t, s.lastOK)

	_, _ = s.Update(components.ChoiceMsg{Index: 0})
	assert.Equal(t, 0, s.ctrl.Session().Score())
}

func TestQuiz_RetakeRegenerates(t *testing.T) {
	mock := llm.NewMockProvider().Text(quizJSON(t)).Text(quizJSON(t))
	s := newTestQuiz(t, mock)
	typeText(s, "Photosynthesis")
	pressKey(t, s, tea.KeyEnter)
	for range qz.QuestionCount {
		press(t, s, 'a')
		pressKey(t, s, tea.KeyEnter)
	}
	require.Equal(t, stageFinished, s.stage())

	pressKey(t, s, tea.KeyEnter)

	assert.Equal(t, 2, mock.CallCount())
	assert.Equal(t, stageQuestion, s.stage())
	assert.Equal(t, 0, s.ctrl.Session().Index())
	assert.Equal(t, "Photosynthesis", s.ctrl.Last().Topic)
}

func TestQuiz_TryAnotherTopic(t *testing.T) {
	mock := llm.NewMockProvider().Text(quizJSON(t))
	s := newTestQuiz(t, mock)
	typeText(s, "Photosynthesis")
	pressKey(t, s, tea.KeyEnter)
	for range qz.QuestionCount {
		press(t, s, 'a')
		pressKey(t, s, tea.KeyEnter)
	}

	pressKey(t, s, tea.KeyRight)
	pressKey(t, s, tea.KeyEnter)

	assert.Equal(t, stageTopic, s.stage())
	assert.Empty(t, s.topic.Value())
	assert.Equal(t, 1, mock.CallCount())
}

func TestQuiz_EmptyTopic(t *testing.T) {
	mock := llm.NewMockProvider()
	s := newTestQuiz(t, mock)

	typeText(s, "   ")
	pressKey(t, s, tea.KeyEnter)

	assert.Equal(t, stageTopic, s.stage())
	assert.Equal(t, 0, mock.CallCount())
	assert.Contains(t, s.View(100, 40), "Type a topic first.")
}

func TestQuiz_MalformedQuizThenRetry(t *testing.T) {
	mock := llm.NewMockProvider().Text("not a quiz").Text(quizJSON(t))
	s := newTestQuiz(t, mock)
	typeText(s, "Photosynthesis")
	pressKey(t, s, tea.KeyEnter)

	require.Equal(t, stageError, s.stage())
	assert.Contains(t, s.View(100, 40), "could not be read")

	pressKey(t, s, tea.KeyEnter)
	assert.Equal(t, stageQuestion, s.stage())
	assert.Equal(t, 2, mock.CallCount())
}

func TestQuiz_ErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"malformed", &qz.MalformedQuizError{Reason: "parse"}, "could not be read"},
		{"auth", &llm.ErrAuthentication{Provider: "gemini", Err: errors.New("no key")}, "not configured"},
		{"rate limit", &llm.ErrRateLimit{Err: errors.New("slow down")}, "busy"},
		{"cancelled", fmt.Errorf("generate quiz: %w", context.Canceled), "cancelled"},
		{"other", errors.New("boom"), "Could not reach GuruAI"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, describeError(tt.err), tt.want)
		})
	}
}

func TestQuiz_CloseDropsPendingResult(t *testing.T) {
	mock := llm.NewMockProvider().Text(quizJSON(t))
	s := newTestQuiz(t, mock)
	typeText(s, "Photosynthesis")
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.Equal(t, stageLoading, s.stage())

	s.Close()
	drain(t, s, cmd)

	assert.Nil(t, s.ctrl.Session())
	assert.False(t, s.ctrl.Loading())
}

func TestQuiz_SubjectPickerWraps(t *testing.T) {
	s := newTestQuiz(t, llm.NewMockProvider())
	for range len(profile.QuizSubjects()) {
		pressKey(t, s, tea.KeyTab)
	}
	assert.Equal(t, 0, s.subject)

	_, _ = s.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	assert.Equal(t, profile.SocialScience, s.subjects[s.subject])
}
