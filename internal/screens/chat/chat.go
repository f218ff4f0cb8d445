// Package chat is the tutor conversation screen: a transcript, a text
// box, a subject switcher and a camera overlay for photographing a
// problem.
package chat

import (
	"context"
	"errors"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/guruai/internal/camera"
	"github.com/abhisek/guruai/internal/profile"
	"github.com/abhisek/guruai/internal/screen"
	"github.com/abhisek/guruai/internal/tutor"
	"github.com/abhisek/guruai/internal/ui/components"
	"github.com/abhisek/guruai/internal/ui/layout"
	"github.com/abhisek/guruai/internal/ui/theme"
)

// Suggestions are offered while the transcript is empty.
var Suggestions = []string{
	"Explain Pythagoras Theorem",
	"Newton's Third Law",
	"The French Revolution summary",
}

type mode int

const (
	modeText mode = iota
	modeCameraStarting
	modeCameraReady
	modeCapturing
)

// ChatScreen hosts one tutor conversation. Work started by the screen
// is cancelled and the camera released when it is closed.
type ChatScreen struct {
	ctx    context.Context
	cancel context.CancelFunc

	conv    *tutor.Conversation
	cam     *camera.Session
	profile profile.Profile
	logger  *zap.Logger

	input      components.TextInput
	spin       spinner.Model
	mode       mode
	notice     string
	suggestion int
	scroll     int // lines scrolled up from the bottom
}

var _ screen.Screen = (*ChatScreen)(nil)
var _ screen.KeyHintProvider = (*ChatScreen)(nil)
var _ screen.Closer = (*ChatScreen)(nil)
var _ screen.BackInterceptor = (*ChatScreen)(nil)

// Deps are the services the chat screen talks to.
type Deps struct {
	Tutor  *tutor.Tutor
	Solver *tutor.Solver
	Camera camera.Device // nil disables photos
	Logger *zap.Logger
}

// New creates a chat screen for p starting on subject.
func New(parent context.Context, deps Deps, p profile.Profile, subject profile.Subject) *ChatScreen {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(parent)
	conv := tutor.NewConversation(deps.Tutor, deps.Solver, p, subject, logger)

	return &ChatScreen{
		ctx:     ctx,
		cancel:  cancel,
		conv:    conv,
		cam:     camera.NewSession(deps.Camera),
		profile: p,
		logger:  logger.With(zap.String("conversation", conv.ID())),
		input:   components.NewTextInput("Ask GuruAI anything...", 2000, 0),
		spin: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(theme.Selected),
		),
	}
}

// Conversation exposes the transcript owner.
func (c *ChatScreen) Conversation() *tutor.Conversation {
	return c.conv
}

func (c *ChatScreen) Init() tea.Cmd {
	return c.input.Init()
}

func (c *ChatScreen) Title() string {
	return "GuruAI (" + string(c.conv.Subject()) + ")"
}

// Close cancels in-flight requests, releases the camera and drops the
// transcript.
func (c *ChatScreen) Close() {
	c.cancel()
	if err := c.cam.Stop(); err != nil {
		c.logger.Warn("camera release failed", zap.Error(err))
	}
	c.conv.Clear()
}

// InterceptsBack keeps Esc inside the screen while the camera is open.
func (c *ChatScreen) InterceptsBack() bool {
	return c.mode != modeText
}

func (c *ChatScreen) KeyHints() []layout.KeyHint {
	if c.mode != modeText {
		return []layout.KeyHint{
			{Key: "Enter/Space", Description: "Capture"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Tab", Description: "Subject"},
		{Key: "Ctrl+O", Description: "Photo"},
		{Key: "PgUp/PgDn", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
	if c.conv.Len() == 0 {
		hints = append([]layout.KeyHint{{Key: "↑↓", Description: "Suggestion"}}, hints...)
	}
	return hints
}

func (c *ChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case replyMsg:
		return c.handleReply(msg)
	case cameraStartedMsg:
		return c.handleCameraStarted(msg)
	case frameMsg:
		return c.handleFrame(msg)
	case spinner.TickMsg:
		if !c.conv.Busy() && c.mode != modeCapturing {
			return c, nil
		}
		var cmd tea.Cmd
		c.spin, cmd = c.spin.Update(msg)
		return c, cmd
	case tea.KeyMsg:
		if c.mode != modeText {
			return c.handleCameraKey(msg)
		}
		return c.handleKey(msg)
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

func (c *ChatScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return c, c.send()
	case "tab":
		c.conv.SetSubject(c.conv.Subject().Next())
		return c, nil
	case "ctrl+o":
		return c, c.openCamera()
	case "ctrl+l":
		if !c.conv.Busy() {
			c.conv.Clear()
			c.notice = ""
			c.scroll = 0
		}
		return c, nil
	case "pgup":
		c.scroll += 5
		return c, nil
	case "pgdown":
		c.scroll = max(c.scroll-5, 0)
		return c, nil
	case "up":
		if c.showSuggestions() {
			c.suggestion = (c.suggestion - 1 + len(Suggestions)) % len(Suggestions)
			return c, nil
		}
	case "down":
		if c.showSuggestions() {
			c.suggestion = (c.suggestion + 1) % len(Suggestions)
			return c, nil
		}
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

// showSuggestions is true while nothing has been said or typed.
func (c *ChatScreen) showSuggestions() bool {
	return c.conv.Len() == 0 && c.input.Trimmed() == ""
}

// send begins a text turn from the input, or from the highlighted
// suggestion when the input is empty on a fresh transcript.
func (c *ChatScreen) send() tea.Cmd {
	if c.conv.Busy() {
		return nil
	}
	text := c.input.Trimmed()
	if text == "" && c.showSuggestions() {
		text = Suggestions[c.suggestion]
	}

	turn, err := c.conv.Begin(text)
	if err != nil {
		if !errors.Is(err, tutor.ErrEmptyMessage) {
			c.notice = err.Error()
		}
		return nil
	}
	c.input.Reset()
	c.notice = ""
	c.scroll = 0
	return tea.Batch(c.resolve(turn), c.spin.Tick)
}

func (c *ChatScreen) resolve(turn *tutor.Turn) tea.Cmd {
	ctx, conv := c.ctx, c.conv
	return func() tea.Msg {
		return replyMsg{turn: turn, msg: conv.Resolve(ctx, turn)}
	}
}

func (c *ChatScreen) handleReply(msg replyMsg) (screen.Screen, tea.Cmd) {
	c.conv.Finish(msg.turn, msg.msg)
	if msg.msg.Content == tutor.FallbackReply {
		c.notice = "GuruAI could not answer. Check your connection or API key and try again."
	}
	c.scroll = 0
	return c, nil
}

func (c *ChatScreen) openCamera() tea.Cmd {
	if c.conv.Busy() {
		c.notice = "Wait for GuruAI to finish answering."
		return nil
	}
	c.mode = modeCameraStarting
	c.notice = ""
	ctx, cam := c.ctx, c.cam
	return func() tea.Msg {
		return cameraStartedMsg{err: cam.Start(ctx)}
	}
}

func (c *ChatScreen) handleCameraStarted(msg cameraStartedMsg) (screen.Screen, tea.Cmd) {
	if c.mode != modeCameraStarting {
		// Cancelled while starting.
		_ = c.cam.Stop()
		return c, nil
	}
	if msg.err != nil && !errors.Is(msg.err, camera.ErrAlreadyActive) {
		c.logger.Info("camera unavailable", zap.Error(msg.err))
		c.mode = modeText
		c.notice = "Camera unavailable. Type your question instead."
		return c, c.input.Focus()
	}
	c.mode = modeCameraReady
	c.input.Blur()
	return c, nil
}

func (c *ChatScreen) handleCameraKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		return c, c.closeCamera()
	case "enter", "space", " ":
		if c.mode != modeCameraReady {
			return c, nil
		}
		c.mode = modeCapturing
		ctx, cam := c.ctx, c.cam
		return c, tea.Batch(func() tea.Msg {
			img, err := cam.Capture(ctx)
			return frameMsg{image: img, err: err}
		}, c.spin.Tick)
	}
	return c, nil
}

func (c *ChatScreen) closeCamera() tea.Cmd {
	if err := c.cam.Stop(); err != nil {
		c.logger.Warn("camera release failed", zap.Error(err))
	}
	c.mode = modeText
	return c.input.Focus()
}

func (c *ChatScreen) handleFrame(msg frameMsg) (screen.Screen, tea.Cmd) {
	if c.mode != modeCapturing {
		return c, nil
	}
	c.mode = modeText
	focus := c.input.Focus()

	if msg.err != nil {
		c.logger.Info("camera capture failed", zap.Error(msg.err))
		c.notice = "Could not take the photo. Type your question instead."
		return c, focus
	}

	turn, err := c.conv.BeginImage(msg.image, c.input.Trimmed())
	if err != nil {
		c.notice = err.Error()
		return c, focus
	}
	c.input.Reset()
	c.notice = ""
	c.scroll = 0
	return c, tea.Batch(focus, c.resolve(turn), c.spin.Tick)
}
