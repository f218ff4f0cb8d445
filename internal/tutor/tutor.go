// Package tutor turns chat and photo turns into LLM requests and keeps
// the conversation transcript.
package tutor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/guruai/internal/llm"
	"github.com/abhisek/guruai/internal/profile"
)

var (
	// ErrEmptyMessage is returned for blank user input. Nothing is sent.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrBusy is returned when a turn is already in flight.
	ErrBusy = errors.New("a reply is already pending")
)

// Message is one transcript entry.
type Message struct {
	Role      llm.Role
	Content   string
	Timestamp time.Time

	// HasImage marks a user turn that carried a photo.
	HasImage bool
}

// Tutor sends chat turns to the provider.
type Tutor struct {
	provider llm.Provider
	cfg      Config
}

// New creates a Tutor.
func New(provider llm.Provider, cfg Config) *Tutor {
	return &Tutor{provider: provider, cfg: cfg}
}

// SendTurn sends the prior transcript plus userText and returns the
// assistant's reply. The transcript is not modified.
func (t *Tutor) SendTurn(ctx context.Context, transcript []Message, userText string, p profile.Profile, subject profile.Subject) (string, error) {
	if strings.TrimSpace(userText) == "" {
		return "", ErrEmptyMessage
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeTutor)

	msgs := make([]llm.Message, 0, len(transcript)+1)
	for _, m := range transcript {
		msgs = append(msgs, llm.Message{Role: m.Role, Content: m.Content})
	}
	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: userText})

	resp, err := t.provider.Generate(ctx, llm.Request{
		System:      SystemInstruction(p, subject),
		Messages:    msgs,
		MaxTokens:   t.cfg.MaxTokens,
		Temperature: t.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("tutor reply: %w", err)
	}

	reply := resp.Text()
	if reply == "" {
		return "", &llm.ErrInvalidResponse{Err: errors.New("empty reply")}
	}
	return reply, nil
}

// logFailure records a failed turn without the student's text.
func logFailure(logger *zap.Logger, kind string, err error) {
	logger.Warn("tutor turn failed",
		zap.String("kind", kind),
		zap.Error(err),
	)
}
