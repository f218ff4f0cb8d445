package quiz

import "github.com/abhisek/guruai/internal/llm"

// QuizSchema constrains generation to exactly five four-option questions.
var QuizSchema = &llm.Schema{
	Name:        "mcq-quiz",
	Description: "A five-question multiple-choice quiz",
	Definition: map[string]any{
		"type":     "array",
		"minItems": QuestionCount,
		"maxItems": QuestionCount,
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question": map[string]any{
					"type":        "string",
					"description": "The question text shown to the student",
				},
				"options": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string"},
					"minItems":    OptionCount,
					"maxItems":    OptionCount,
					"description": "Array of exactly 4 options",
				},
				"correctAnswer": map[string]any{
					"type":        "integer",
					"minimum":     0,
					"maximum":     OptionCount - 1,
					"description": "Index of the correct answer (0-3)",
				},
				"explanation": map[string]any{
					"type":        "string",
					"description": "Why the correct answer is right, in simple language",
				},
			},
			"required":             []any{"question", "options", "correctAnswer", "explanation"},
			"additionalProperties": false,
		},
	},
}
