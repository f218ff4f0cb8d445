package tutor

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/guruai/internal/llm"
	"github.com/abhisek/guruai/internal/profile"
)

// Turn is an accepted user submission awaiting its reply. It carries a
// snapshot of everything Resolve needs, so Resolve may run off the UI
// loop while the Conversation stays untouched.
type Turn struct {
	history []Message
	text    string
	image   []byte
	profile profile.Profile
	subject profile.Subject
	convID  string
}

// Conversation owns one transcript. At most one turn is in flight; each
// accepted turn grows the transcript by exactly two messages.
type Conversation struct {
	mu       sync.Mutex
	id       string
	tutor    *Tutor
	solver   *Solver
	profile  profile.Profile
	subject  profile.Subject
	messages []Message
	pending  *Turn
	logger   *zap.Logger
	now      func() time.Time
}

// NewConversation starts an empty transcript for p, tutoring subject.
// solver may be nil, in which case photo turns are answered with the
// fallback reply.
func NewConversation(t *Tutor, solver *Solver, p profile.Profile, subject profile.Subject, logger *zap.Logger) *Conversation {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Conversation{
		id:      uuid.NewString(),
		tutor:   t,
		solver:  solver,
		profile: p,
		subject: subject,
		logger:  logger,
		now:     time.Now,
	}
}

// ID identifies the conversation in logs and the request log.
func (c *Conversation) ID() string {
	return c.id
}

// Messages returns a copy of the transcript.
func (c *Conversation) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the transcript length.
func (c *Conversation) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.messages)
}

// Busy reports whether a reply is pending.
func (c *Conversation) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending != nil
}

// Subject returns the subject the tutor currently teaches.
func (c *Conversation) Subject() profile.Subject {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.subject
}

// SetSubject switches subject for subsequent turns.
func (c *Conversation) SetSubject(s profile.Subject) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subject = s
}

// Begin accepts a text turn: the user message is appended immediately.
func (c *Conversation) Begin(text string) (*Turn, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}
	return c.begin(text, nil)
}

// BeginImage accepts a photo turn. The hint, if any, follows the fixed
// image prompt in the user message.
func (c *Conversation) BeginImage(image []byte, hint string) (*Turn, error) {
	if len(image) == 0 {
		return nil, ErrEmptyImage
	}
	text := ImageTurnText
	if h := strings.TrimSpace(hint); h != "" {
		text += " " + h
	}
	return c.begin(text, image)
}

func (c *Conversation) begin(text string, image []byte) (*Turn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending != nil {
		return nil, ErrBusy
	}

	turn := &Turn{
		history: append([]Message(nil), c.messages...),
		text:    text,
		image:   image,
		profile: c.profile,
		subject: c.subject,
		convID:  c.id,
	}
	c.messages = append(c.messages, Message{
		Role:      llm.RoleUser,
		Content:   text,
		Timestamp: c.now(),
		HasImage:  image != nil,
	})
	c.pending = turn
	return turn, nil
}

// Resolve asks the provider for the turn's reply. It always returns one
// assistant message: the reply, or FallbackReply if anything failed.
func (c *Conversation) Resolve(ctx context.Context, turn *Turn) Message {
	ctx = llm.WithRequestID(ctx, turn.convID)

	var (
		reply string
		err   error
		kind  = "text"
	)
	if turn.image != nil {
		kind = "image"
		if c.solver == nil {
			err = ErrUnsupportedImage
		} else {
			reply, err = c.solver.SolveFromImage(ctx, turn.image, turn.text, turn.profile.Grade)
		}
	} else {
		reply, err = c.tutor.SendTurn(ctx, turn.history, turn.text, turn.profile, turn.subject)
	}

	if err != nil {
		logFailure(c.logger.With(zap.String("conversation", turn.convID)), kind, err)
		reply = FallbackReply
	}
	return Message{Role: llm.RoleAssistant, Content: reply, Timestamp: c.now()}
}

// Finish appends the reply to turn and clears the pending flag. A reply
// for a turn that is no longer pending (after Clear) is dropped.
func (c *Conversation) Finish(turn *Turn, msg Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if turn == nil || c.pending != turn {
		return
	}
	c.messages = append(c.messages, msg)
	c.pending = nil
}

// Send runs a full text turn synchronously.
func (c *Conversation) Send(ctx context.Context, text string) (Message, error) {
	turn, err := c.Begin(text)
	if err != nil {
		return Message{}, err
	}
	msg := c.Resolve(ctx, turn)
	c.Finish(turn, msg)
	return msg, nil
}

// SendImage runs a full photo turn synchronously.
func (c *Conversation) SendImage(ctx context.Context, image []byte, hint string) (Message, error) {
	turn, err := c.BeginImage(image, hint)
	if err != nil {
		return Message{}, err
	}
	msg := c.Resolve(ctx, turn)
	c.Finish(turn, msg)
	return msg, nil
}

// Clear drops the transcript and any pending turn.
func (c *Conversation) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = nil
	c.pending = nil
}
