package chat

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/guruai/internal/camera"
	"github.com/abhisek/guruai/internal/llm"
	"github.com/abhisek/guruai/internal/profile"
	"github.com/abhisek/guruai/internal/tutor"
)

var student = profile.Profile{Name: "Rohan Das", Grade: profile.Grade10, Board: profile.BoardCBSE}

func newTestChat(t *testing.T, mock *llm.MockProvider, dev camera.Device) *ChatScreen {
	t.Helper()
	c := New(context.Background(), Deps{
		Tutor:  tutor.New(mock, tutor.DefaultConfig()),
		Solver: tutor.NewSolver(mock, tutor.DefaultConfig()),
		Camera: dev,
	}, student, profile.Mathematics)
	t.Cleanup(c.Close)
	return c
}

// drain runs cmd and feeds the screen's own messages back into Update.
// Commands that do not finish quickly (cursor blink, spinner frames) are
// abandoned.
func drain(t *testing.T, c *ChatScreen, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(200 * time.Millisecond):
		return
	}

	switch msg := msg.(type) {
	case tea.BatchMsg:
		for _, sub := range msg {
			drain(t, c, sub)
		}
	case replyMsg, cameraStartedMsg, frameMsg:
		_, next := c.Update(msg)
		drain(t, c, next)
	}
}

func typeText(c *ChatScreen, s string) {
	for _, r := range s {
		c.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func press(t *testing.T, c *ChatScreen, code rune) {
	t.Helper()
	_, cmd := c.Update(tea.KeyPressMsg{Code: code})
	drain(t, c, cmd)
}

func pressCtrl(t *testing.T, c *ChatScreen, code rune) {
	t.Helper()
	_, cmd := c.Update(tea.KeyPressMsg{Code: code, Mod: tea.ModCtrl})
	drain(t, c, cmd)
}

func pngFile(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	path := filepath.Join(t.TempDir(), "page.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestChat_SendTypedQuestion(t *testing.T) {
	mock := llm.NewMockProvider().Text("Force pairs act on different bodies.")
	c := newTestChat(t, mock, nil)

	typeText(c, "Newton's Third Law?")
	press(t, c, tea.KeyEnter)

	msgs := c.Conversation().Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "Newton's Third Law?", msgs[0].Content)
	assert.Equal(t, "Force pairs act on different bodies.", msgs[1].Content)
	assert.Empty(t, c.input.Value())
	assert.False(t, c.Conversation().Busy())
}

func TestChat_SuggestionSentOnEmptyInput(t *testing.T) {
	mock := llm.NewMockProvider().Text("Summary...")
	c := newTestChat(t, mock, nil)

	press(t, c, tea.KeyDown)
	press(t, c, tea.KeyDown)
	press(t, c, tea.KeyEnter)

	msgs := c.Conversation().Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "The French Revolution summary", msgs[0].Content)
}

func TestChat_EmptyInputAfterTranscriptIsIgnored(t *testing.T) {
	mock := llm.NewMockProvider().Text("hi")
	c := newTestChat(t, mock, nil)
	typeText(c, "hello")
	press(t, c, tea.KeyEnter)
	require.Equal(t, 2, c.Conversation().Len())

	press(t, c, tea.KeyEnter)
	assert.Equal(t, 2, c.Conversation().Len())
	assert.Equal(t, 1, mock.CallCount())
}

func TestChat_FailureShowsFallbackAndNotice(t *testing.T) {
	mock := llm.NewMockProvider().Fail(&llm.ErrProviderUnavailable{Err: errors.New("offline")})
	c := newTestChat(t, mock, nil)

	typeText(c, "What is a prime?")
	press(t, c, tea.KeyEnter)

	msgs := c.Conversation().Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, tutor.FallbackReply, msgs[1].Content)
	assert.NotEmpty(t, c.notice)
}

func TestChat_BusyBlocksSecondSend(t *testing.T) {
	mock := llm.NewMockProvider().Text("one")
	c := newTestChat(t, mock, nil)

	typeText(c, "first")
	_, cmd := c.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	require.True(t, c.Conversation().Busy())

	typeText(c, "second")
	_, again := c.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, again)
	assert.Equal(t, 1, c.Conversation().Len())

	drain(t, c, cmd)
	assert.Equal(t, 2, c.Conversation().Len())
}

func TestChat_TabCyclesSubject(t *testing.T) {
	c := newTestChat(t, llm.NewMockProvider(), nil)
	press(t, c, tea.KeyTab)
	assert.Equal(t, profile.Science, c.Conversation().Subject())
	assert.Equal(t, "GuruAI (Science)", c.Title())
}

func TestChat_CameraUnavailableFallsBack(t *testing.T) {
	c := newTestChat(t, llm.NewMockProvider(), camera.Disabled{})

	pressCtrl(t, c, 'o')

	assert.Equal(t, modeText, c.mode)
	assert.Contains(t, c.notice, "Camera unavailable")
	assert.False(t, c.InterceptsBack())
}

func TestChat_CameraNoDeviceFallsBack(t *testing.T) {
	c := newTestChat(t, llm.NewMockProvider(), nil)
	pressCtrl(t, c, 'o')
	assert.Equal(t, modeText, c.mode)
	assert.NotEmpty(t, c.notice)
}

func TestChat_PhotoTurn(t *testing.T) {
	mock := llm.NewMockProvider().Text("Step 1: factorise.")
	c := newTestChat(t, mock, camera.FileDevice{Path: pngFile(t)})

	typeText(c, "question 4")
	pressCtrl(t, c, 'o')
	require.Equal(t, modeCameraReady, c.mode)
	assert.True(t, c.InterceptsBack())

	press(t, c, tea.KeyEnter)

	assert.Equal(t, modeText, c.mode)
	assert.False(t, c.cam.Active())
	msgs := c.Conversation().Messages()
	require.Len(t, msgs, 2)
	assert.True(t, msgs[0].HasImage)
	assert.Equal(t, tutor.ImageTurnText+" question 4", msgs[0].Content)
	assert.Equal(t, "Step 1: factorise.", msgs[1].Content)

	call, ok := mock.LastCall()
	require.True(t, ok)
	require.Len(t, call.Messages, 1)
	require.Len(t, call.Messages[0].Images, 1)
	assert.Equal(t, "image/jpeg", call.Messages[0].Images[0].MIMEType)
}

func TestChat_CameraCancelReleases(t *testing.T) {
	c := newTestChat(t, llm.NewMockProvider(), camera.FileDevice{Path: pngFile(t)})

	pressCtrl(t, c, 'o')
	require.True(t, c.cam.Active())

	press(t, c, tea.KeyEscape)
	assert.Equal(t, modeText, c.mode)
	assert.False(t, c.cam.Active())
	assert.Equal(t, 0, c.Conversation().Len())
}

func TestChat_CloseReleasesAndClears(t *testing.T) {
	mock := llm.NewMockProvider().Text("hi")
	c := newTestChat(t, mock, camera.FileDevice{Path: pngFile(t)})
	typeText(c, "hello")
	press(t, c, tea.KeyEnter)
	pressCtrl(t, c, 'o')
	require.True(t, c.cam.Active())

	c.Close()

	assert.False(t, c.cam.Active())
	assert.Equal(t, 0, c.Conversation().Len())
	assert.Error(t, c.ctx.Err())
}

func TestChat_CloseBeforeCameraStartsKeepsItReleased(t *testing.T) {
	c := newTestChat(t, llm.NewMockProvider(), camera.FileDevice{Path: pngFile(t)})

	_, cmd := c.Update(tea.KeyPressMsg{Code: 'o', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	c.Close()

	msg := cmd()
	started, ok := msg.(cameraStartedMsg)
	require.True(t, ok, "expected cameraStartedMsg, got %T", msg)
	assert.ErrorIs(t, started.err, context.Canceled)
	assert.False(t, c.cam.Active())
}

func TestChat_ReplyAfterCloseDropped(t *testing.T) {
	mock := llm.NewMockProvider().Text("late")
	c := newTestChat(t, mock, nil)

	typeText(c, "hello")
	_, cmd := c.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	c.Close()
	drain(t, c, cmd)

	assert.Equal(t, 0, c.Conversation().Len())
}

func TestChat_ViewShowsHeaderAndSuggestions(t *testing.T) {
	c := newTestChat(t, llm.NewMockProvider(), nil)
	view := c.View(100, 30)
	assert.Contains(t, view, "GuruAI (Mathematics)")
	assert.Contains(t, view, "Helping with 10th syllabus")
	assert.Contains(t, view, "Explain Pythagoras Theorem")
}
