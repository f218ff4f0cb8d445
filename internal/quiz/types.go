package quiz

import (
	"github.com/abhisek/guruai/internal/profile"
)

// QuestionCount is the number of questions in every quiz.
const QuestionCount = 5

// OptionCount is the number of options per question.
const OptionCount = 4

// Question is one multiple-choice question. Immutable once fetched.
type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// IsCorrect reports whether option is the right answer.
func (q Question) IsCorrect(option int) bool {
	return option == q.CorrectAnswer
}

// Input describes the quiz to generate.
type Input struct {
	Topic   string
	Grade   profile.Grade
	Subject profile.Subject
}
