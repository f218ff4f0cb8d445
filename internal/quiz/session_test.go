package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// answer picks the right option when correct is true, otherwise the next
// option along.
func answer(t *testing.T, s *Session, correct bool) {
	t.Helper()
	q, ok := s.Current()
	require.True(t, ok)
	pick := q.CorrectAnswer
	if !correct {
		pick = (pick + 1) % OptionCount
	}
	accepted, got := s.Select(pick)
	require.True(t, accepted)
	require.Equal(t, correct, got)
	require.True(t, s.Continue())
}

func TestSession_PhotosynthesisThreeOfFive(t *testing.T) {
	s := NewSession(sampleQuestions())

	for i, correct := range []bool{true, false, true, false, true} {
		assert.Equal(t, i, s.Index())
		answer(t, s, correct)
	}

	assert.Equal(t, StatusFinished, s.Status())
	assert.True(t, s.Finished())
	assert.Equal(t, 3, s.Score())
	assert.Equal(t, 60, s.Percent())
	_, ok := s.Current()
	assert.False(t, ok)
}

func TestSession_PhaseTransitions(t *testing.T) {
	s := NewSession(sampleQuestions())
	assert.Equal(t, PhaseAwaitingAnswer, s.Phase())
	_, picked := s.Selected()
	assert.False(t, picked)

	assert.False(t, s.Continue(), "continue before answering")

	accepted, correct := s.Select(0)
	assert.True(t, accepted)
	assert.True(t, correct)
	assert.Equal(t, PhaseExplaining, s.Phase())
	sel, picked := s.Selected()
	assert.True(t, picked)
	assert.Equal(t, 0, sel)

	require.True(t, s.Continue())
	assert.Equal(t, PhaseAwaitingAnswer, s.Phase())
	assert.Equal(t, 1, s.Index())
}

func TestSession_ReselectIsNoop(t *testing.T) {
	s := NewSession(sampleQuestions())

	accepted, correct := s.Select(1)
	require.True(t, accepted)
	require.False(t, correct)

	accepted, correct = s.Select(0)
	assert.False(t, accepted)
	assert.False(t, correct)
	assert.Equal(t, 0, s.Score())
	sel, _ := s.Selected()
	assert.Equal(t, 1, sel)
}

func TestSession_OutOfRangeSelect(t *testing.T) {
	s := NewSession(sampleQuestions())
	for _, opt := range []int{-1, OptionCount} {
		accepted, _ := s.Select(opt)
		assert.False(t, accepted)
	}
	assert.Equal(t, PhaseAwaitingAnswer, s.Phase())
}

func TestSession_FinishedIgnoresInput(t *testing.T) {
	s := NewSession(sampleQuestions())
	for range QuestionCount {
		answer(t, s, true)
	}
	require.True(t, s.Finished())

	accepted, _ := s.Select(0)
	assert.False(t, accepted)
	assert.False(t, s.Continue())
	assert.Equal(t, QuestionCount, s.Score())
}

func TestSession_RestartIdempotent(t *testing.T) {
	s := NewSession(sampleQuestions())
	answer(t, s, true)
	answer(t, s, true)

	s.Restart()
	s.Restart()

	assert.Equal(t, 0, s.Index())
	assert.Equal(t, 0, s.Score())
	assert.Equal(t, PhaseAwaitingAnswer, s.Phase())
	assert.Equal(t, StatusInProgress, s.Status())
	assert.Len(t, s.Questions(), QuestionCount)
}

func TestSession_Empty(t *testing.T) {
	s := NewSession(nil)
	assert.True(t, s.Finished())
	assert.Equal(t, 0, s.Percent())
	accepted, _ := s.Select(0)
	assert.False(t, accepted)
}

func TestPhaseAndStatusString(t *testing.T) {
	assert.Equal(t, "awaiting-answer", PhaseAwaitingAnswer.String())
	assert.Equal(t, "explaining", PhaseExplaining.String())
	assert.Equal(t, "in-progress", StatusInProgress.String())
	assert.Equal(t, "finished", StatusFinished.String())
}
