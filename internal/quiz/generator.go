package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/guruai/internal/llm"
)

// ErrEmptyTopic is returned when the quiz topic is blank.
var ErrEmptyTopic = errors.New("quiz topic is empty")

// MalformedQuizError reports generated content that is not a usable quiz.
type MalformedQuizError struct {
	Reason string
	Err    error
}

func (e *MalformedQuizError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed quiz: %s: %v", e.Reason, e.Err)
	}
	return "malformed quiz: " + e.Reason
}

func (e *MalformedQuizError) Unwrap() error { return e.Err }

// Generator produces the questions for a quiz.
type Generator interface {
	Generate(ctx context.Context, in Input) ([]Question, error)
}

// LLMGenerator generates quizzes with an LLM.
type LLMGenerator struct {
	provider llm.Provider
	cfg      Config
}

// New creates a new LLM-backed quiz generator.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, cfg: cfg}
}

// Generate asks the model for exactly five questions on in.Topic and
// checks the result before returning it.
func (g *LLMGenerator) Generate(ctx context.Context, in Input) ([]Question, error) {
	in.Topic = strings.TrimSpace(in.Topic)
	if in.Topic == "" {
		return nil, ErrEmptyTopic
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeQuiz)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(in)},
		},
		Schema:      QuizSchema,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		var invalid *llm.ErrInvalidResponse
		if errors.As(err, &invalid) {
			return nil, &MalformedQuizError{Reason: "schema violation", Err: err}
		}
		return nil, fmt.Errorf("generate quiz: %w", err)
	}

	return Parse(resp.Content)
}

// Parse decodes and checks a quiz payload.
func Parse(raw json.RawMessage) ([]Question, error) {
	if err := llm.ValidateJSON(QuizSchema, raw); err != nil {
		return nil, &MalformedQuizError{Reason: "schema violation", Err: err}
	}

	var qs []Question
	if err := json.Unmarshal(raw, &qs); err != nil {
		return nil, &MalformedQuizError{Reason: "parse", Err: err}
	}
	if err := checkQuestions(qs); err != nil {
		return nil, err
	}
	return qs, nil
}

func checkQuestions(qs []Question) error {
	if len(qs) != QuestionCount {
		return &MalformedQuizError{Reason: fmt.Sprintf("got %d questions, want %d", len(qs), QuestionCount)}
	}
	for i, q := range qs {
		if strings.TrimSpace(q.Question) == "" {
			return &MalformedQuizError{Reason: fmt.Sprintf("question %d has no text", i+1)}
		}
		if len(q.Options) != OptionCount {
			return &MalformedQuizError{Reason: fmt.Sprintf("question %d has %d options", i+1, len(q.Options))}
		}
		for _, opt := range q.Options {
			if strings.TrimSpace(opt) == "" {
				return &MalformedQuizError{Reason: fmt.Sprintf("question %d has an empty option", i+1)}
			}
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= OptionCount {
			return &MalformedQuizError{Reason: fmt.Sprintf("question %d answer index %d out of range", i+1, q.CorrectAnswer)}
		}
	}
	return nil
}
