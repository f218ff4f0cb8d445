package camera

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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDevice struct {
	frame   []byte
	openErr error
	grabErr error
	onOpen  func()
	opened  int
	closed  int
}

func (d *fakeDevice) Open(context.Context) (Stream, error) {
	if d.openErr != nil {
		return nil, d.openErr
	}
	if d.onOpen != nil {
		d.onOpen()
	}
	d.opened++
	return &fakeStream{dev: d}, nil
}

type fakeStream struct {
	dev *fakeDevice
}

func (s *fakeStream) Grab(context.Context) ([]byte, error) {
	if s.dev.grabErr != nil {
		return nil, s.dev.grabErr
	}
	return s.dev.frame, nil
}

func (s *fakeStream) Close() error {
	s.dev.closed++
	return nil
}

func pngFrame(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func isJPEG(b []byte) bool {
	return len(b) > 2 && b[0] == 0xFF && b[1] == 0xD8
}

func TestSession_CaptureReencodesAndReleases(t *testing.T) {
	dev := &fakeDevice{frame: pngFrame(t)}
	s := NewSession(dev)

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.Active())

	out, err := s.Capture(context.Background())
	require.NoError(t, err)
	assert.True(t, isJPEG(out), "expected JPEG output")
	assert.False(t, s.Active())
	assert.Equal(t, 1, dev.closed)
}

func TestSession_StartTwiceIsRejected(t *testing.T) {
	dev := &fakeDevice{frame: pngFrame(t)}
	s := NewSession(dev)

	require.NoError(t, s.Start(context.Background()))
	err := s.Start(context.Background())
	assert.ErrorIs(t, err, ErrAlreadyActive)
	assert.Equal(t, 1, dev.opened)
}

func TestSession_StartWithCancelledContext(t *testing.T) {
	dev := &fakeDevice{frame: pngFrame(t)}
	s := NewSession(dev)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.Start(ctx), context.Canceled)
	assert.Equal(t, 0, dev.opened)
	assert.False(t, s.Active())
}

func TestSession_CancelDuringOpenReleases(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	dev := &fakeDevice{frame: pngFrame(t), onOpen: cancel}
	s := NewSession(dev)

	assert.ErrorIs(t, s.Start(ctx), context.Canceled)
	assert.Equal(t, 1, dev.opened)
	assert.Equal(t, 1, dev.closed)
	assert.False(t, s.Active())
}

func TestSession_PermissionDenied(t *testing.T) {
	dev := &fakeDevice{openErr: os.ErrPermission}
	s := NewSession(dev)

	err := s.Start(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, os.ErrPermission)
	assert.False(t, s.Active())
}

func TestSession_NilDevice(t *testing.T) {
	s := NewSession(nil)
	assert.ErrorIs(t, s.Start(context.Background()), ErrUnavailable)
}

func TestSession_CaptureWithoutStart(t *testing.T) {
	s := NewSession(&fakeDevice{})
	_, err := s.Capture(context.Background())
	assert.ErrorIs(t, err, ErrNotActive)
}

func TestSession_GrabErrorStillReleases(t *testing.T) {
	dev := &fakeDevice{grabErr: errors.New("boom")}
	s := NewSession(dev)

	require.NoError(t, s.Start(context.Background()))
	_, err := s.Capture(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 1, dev.closed)
	assert.False(t, s.Active())

	// The device can be acquired again after a failed capture.
	require.NoError(t, s.Start(context.Background()))
}

func TestSession_StopIsIdempotent(t *testing.T) {
	dev := &fakeDevice{frame: pngFrame(t)}
	s := NewSession(dev)

	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Stop())
	require.NoError(t, s.Stop())
	assert.Equal(t, 1, dev.closed)
}

func TestSession_UndecodableFrame(t *testing.T) {
	dev := &fakeDevice{frame: []byte("not an image")}
	s := NewSession(dev)

	require.NoError(t, s.Start(context.Background()))
	_, err := s.Capture(context.Background())
	assert.Error(t, err)
}

func TestFileDevice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	require.NoError(t, os.WriteFile(path, pngFrame(t), 0o644))

	dev, err := NewDevice(Config{Driver: "file", File: path})
	require.NoError(t, err)

	s := NewSession(dev)
	require.NoError(t, s.Start(context.Background()))
	out, err := s.Capture(context.Background())
	require.NoError(t, err)
	assert.True(t, isJPEG(out))
}

func TestFileDevice_Missing(t *testing.T) {
	s := NewSession(FileDevice{Path: filepath.Join(t.TempDir(), "missing.jpg")})
	assert.ErrorIs(t, s.Start(context.Background()), ErrUnavailable)
}

func TestDisabledDevice(t *testing.T) {
	dev, err := NewDevice(Config{Driver: "none"})
	require.NoError(t, err)
	assert.ErrorIs(t, NewSession(dev).Start(context.Background()), ErrUnavailable)
}

func TestFFmpegDevice_MissingBinary(t *testing.T) {
	dev := &FFmpegDevice{Path: filepath.Join(t.TempDir(), "no-ffmpeg"), Input: "/dev/video0"}
	assert.ErrorIs(t, NewSession(dev).Start(context.Background()), ErrUnavailable)
}

func TestNewDevice_Unknown(t *testing.T) {
	_, err := NewDevice(Config{Driver: "webcam9000"})
	assert.Error(t, err)
}

func TestClassifyFFmpegError(t *testing.T) {
	err := classifyFFmpegError(errors.New("exit status 1"), "/dev/video0: Permission denied")
	assert.ErrorIs(t, err, ErrUnavailable)

	err = classifyFFmpegError(errors.New("exit status 1"), "Invalid data found")
	assert.NotErrorIs(t, err, ErrUnavailable)
}
