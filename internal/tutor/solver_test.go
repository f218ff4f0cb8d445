package tutor

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/guruai/internal/llm"
	"github.com/abhisek/guruai/internal/profile"
)

func jpegBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewGray(image.Rect(0, 0, 2, 2)), nil))
	return buf.Bytes()
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 2, 2))))
	return buf.Bytes()
}

func TestDetectImage(t *testing.T) {
	mime, err := DetectImage(jpegBytes(t))
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", mime)

	mime, err = DetectImage(pngBytes(t))
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)

	_, err = DetectImage(nil)
	assert.ErrorIs(t, err, ErrEmptyImage)

	_, err = DetectImage([]byte("%PDF-1.7 not a photo"))
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}

func TestSolveFromImage(t *testing.T) {
	mock := llm.NewMockProvider().Text("Step 1: the triangle is right-angled.")
	s := NewSolver(mock, DefaultConfig())
	img := jpegBytes(t)

	reply, err := s.SolveFromImage(context.Background(), img, "", profile.Grade9)
	require.NoError(t, err)
	assert.Equal(t, "Step 1: the triangle is right-angled.", reply)

	req, ok := mock.LastCall()
	require.True(t, ok)
	assert.Equal(t, "You are a visual aid teacher. Focus on clarity and explaining diagrams if present.", req.System)
	require.Len(t, req.Messages, 1)
	msg := req.Messages[0]
	assert.Equal(t, "A 9th student needs help with this. Explain step-by-step: What is in this image?", msg.Content)
	require.Len(t, msg.Images, 1)
	assert.Equal(t, "image/jpeg", msg.Images[0].MIMEType)
	assert.Equal(t, img, msg.Images[0].Data)
}

func TestSolveFromImage_RejectsBeforeSending(t *testing.T) {
	mock := llm.NewMockProvider()
	s := NewSolver(mock, DefaultConfig())

	_, err := s.SolveFromImage(context.Background(), []byte("GIF89a...."), "hint", profile.Grade8)
	assert.ErrorIs(t, err, ErrUnsupportedImage)
	assert.Equal(t, 0, mock.CallCount())
}

func TestSolveFromImage_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider().Fail(&llm.ErrProviderUnavailable{Err: errBoom})
	s := NewSolver(mock, DefaultConfig())

	_, err := s.SolveFromImage(context.Background(), pngBytes(t), "", profile.Grade10)
	var unavail *llm.ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavail)
}
