package quiz

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/guruai/internal/llm"
)

// ErrBusy is returned when a generation is already in flight.
var ErrBusy = errors.New("quiz generation already in progress")

// ErrNoTopic is returned by Retake before any quiz was requested.
var ErrNoTopic = errors.New("no previous quiz to retake")

// Attempt is an accepted generation request.
type Attempt struct {
	ID    string
	Input Input
}

// Result is the outcome of an Attempt.
type Result struct {
	Questions []Question
	Err       error
}

// Controller owns the loading flag and the active quiz session for one
// screen. At most one generation runs at a time.
type Controller struct {
	mu      sync.Mutex
	gen     Generator
	logger  *zap.Logger
	last    Input
	pending *Attempt
	session *Session
	err     error
}

// NewController creates a controller. A nil logger discards output.
func NewController(gen Generator, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{gen: gen, logger: logger}
}

// Begin accepts a generation request and sets the loading flag. The
// previous session and error are cleared.
func (c *Controller) Begin(in Input) (*Attempt, error) {
	in.Topic = strings.TrimSpace(in.Topic)
	if in.Topic == "" {
		return nil, ErrEmptyTopic
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending != nil {
		return nil, ErrBusy
	}
	a := &Attempt{ID: uuid.NewString(), Input: in}
	c.pending = a
	c.last = in
	c.session = nil
	c.err = nil
	return a, nil
}

// Retake begins a fresh generation for the last topic.
func (c *Controller) Retake() (*Attempt, error) {
	c.mu.Lock()
	last := c.last
	c.mu.Unlock()
	if last.Topic == "" {
		return nil, ErrNoTopic
	}
	return c.Begin(last)
}

// Resolve runs the generation. It does not touch controller state and
// may run off the UI loop.
func (c *Controller) Resolve(ctx context.Context, a *Attempt) Result {
	ctx = llm.WithRequestID(ctx, a.ID)
	qs, err := c.gen.Generate(ctx, a.Input)
	if err != nil {
		c.logger.Warn("quiz generation failed",
			zap.String("attempt", a.ID),
			zap.String("topic", a.Input.Topic),
			zap.Error(err),
		)
	}
	return Result{Questions: qs, Err: err}
}

// Finish clears the loading flag and installs the new session on
// success. Results for an attempt that is no longer pending are dropped.
func (c *Controller) Finish(a *Attempt, r Result) (*Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if a == nil || c.pending != a {
		return nil, nil
	}
	c.pending = nil
	if r.Err != nil {
		c.err = r.Err
		return nil, r.Err
	}
	c.session = NewSession(r.Questions)
	return c.session, nil
}

// Start runs a full generation synchronously.
func (c *Controller) Start(ctx context.Context, in Input) (*Session, error) {
	a, err := c.Begin(in)
	if err != nil {
		return nil, err
	}
	return c.Finish(a, c.Resolve(ctx, a))
}

// Cancel drops any pending attempt so its result is ignored.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = nil
}

// Reset returns to the topic prompt, forgetting the session.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = nil
	c.session = nil
	c.err = nil
}

// Loading reports whether a generation is in flight.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending != nil
}

// Session returns the active quiz, or nil.
func (c *Controller) Session() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// Err returns the last generation error.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Last returns the most recent accepted input.
func (c *Controller) Last() Input {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}
