package quiz

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/abhisek/guruai/internal/profile"
)

var photosynthesis = Input{Topic: "Photosynthesis", Grade: profile.Grade9, Subject: profile.Science}

// sampleQuestions returns a valid five-question quiz. Question i has
// correct answer i%4.
func sampleQuestions() []Question {
	qs := make([]Question, QuestionCount)
	for i := range qs {
		qs[i] = Question{
			Question:      fmt.Sprintf("Question %d about chlorophyll?", i+1),
			Options:       []string{"A", "B", "C", "D"},
			CorrectAnswer: i % OptionCount,
			Explanation:   fmt.Sprintf("Explanation %d", i+1),
		}
	}
	return qs
}

func quizJSON(t *testing.T, qs []Question) string {
	t.Helper()
	b, err := json.Marshal(qs)
	require.NoError(t, err)
	return string(b)
}
