package quiz

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/guruai/internal/llm"
)

func TestQuizSchema_AcceptsFiveQuestions(t *testing.T) {
	raw := json.RawMessage(quizJSON(t, sampleQuestions()))
	assert.NoError(t, llm.ValidateJSON(QuizSchema, raw))
}

func TestQuizSchema_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func([]Question) []Question
	}{
		{"four questions", func(qs []Question) []Question { return qs[:4] }},
		{"six questions", func(qs []Question) []Question { return append(qs, qs[0]) }},
		{"three options", func(qs []Question) []Question {
			qs[2].Options = qs[2].Options[:3]
			return qs
		}},
		{"answer above range", func(qs []Question) []Question {
			qs[0].CorrectAnswer = OptionCount
			return qs
		}},
		{"negative answer", func(qs []Question) []Question {
			qs[4].CorrectAnswer = -1
			return qs
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := json.RawMessage(quizJSON(t, tt.mutate(sampleQuestions())))
			err := llm.ValidateJSON(QuizSchema, raw)

			var invalid *llm.ErrInvalidResponse
			require.ErrorAs(t, err, &invalid)
		})
	}
}

func TestQuizSchema_RejectsMissingFieldAndExtras(t *testing.T) {
	missing := `[{"question":"q","options":["a","b","c","d"],"correctAnswer":1}]`
	assert.Error(t, llm.ValidateJSON(QuizSchema, json.RawMessage(missing)))

	qs := sampleQuestions()
	var items []map[string]any
	require.NoError(t, json.Unmarshal([]byte(quizJSON(t, qs)), &items))
	items[1]["difficulty"] = "hard"
	extra, err := json.Marshal(items)
	require.NoError(t, err)
	assert.Error(t, llm.ValidateJSON(QuizSchema, extra))
}

func TestQuizSchema_RejectsEmptyAndObjectBodies(t *testing.T) {
	var invalid *llm.ErrInvalidResponse
	assert.ErrorAs(t, llm.ValidateJSON(QuizSchema, nil), &invalid)
	assert.ErrorAs(t, llm.ValidateJSON(QuizSchema, json.RawMessage(`{"questions":[]}`)), &invalid)
}
