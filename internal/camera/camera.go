// Package camera captures single still frames from a local capture device.
//
// A Session is the exclusive handle on a Device: it must be started
// before capturing, and the device is released on capture, cancel,
// error and Stop.
package camera

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"sync"

	// Decoders for frames returned by devices.
	_ "image/png"
)

var (
	// ErrUnavailable means the device could not be acquired: no device,
	// permission denied, or capture disabled.
	ErrUnavailable = errors.New("camera unavailable")

	// ErrAlreadyActive is returned by Start while a session is open.
	ErrAlreadyActive = errors.New("camera session already active")

	// ErrNotActive is returned by Capture without a started session.
	ErrNotActive = errors.New("camera session not active")
)

// JPEGQuality is used when re-encoding captured frames.
const JPEGQuality = 85

// Device acquires a capture stream.
type Device interface {
	// Open acquires the device. Failures to acquire wrap ErrUnavailable.
	Open(ctx context.Context) (Stream, error)
}

// Stream is an acquired device.
type Stream interface {
	// Grab returns one encoded still frame (JPEG or PNG).
	Grab(ctx context.Context) ([]byte, error)
	// Close releases the device.
	Close() error
}

// Session guards one Device so at most one stream is open at a time.
type Session struct {
	mu     sync.Mutex
	dev    Device
	stream Stream
}

// NewSession creates a session for dev. A nil dev yields a session whose
// Start always fails with ErrUnavailable.
func NewSession(dev Device) *Session {
	return &Session{dev: dev}
}

// Start acquires the device. A cancelled ctx, before or during Open,
// leaves the device released.
func (s *Session) Start(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stream != nil {
		return ErrAlreadyActive
	}
	if s.dev == nil {
		return ErrUnavailable
	}

	stream, err := s.dev.Open(ctx)
	if err != nil {
		if !errors.Is(err, ErrUnavailable) {
			err = fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		return err
	}
	if err := ctx.Err(); err != nil {
		_ = stream.Close()
		return err
	}
	s.stream = stream
	return nil
}

// Active reports whether the device is currently held.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stream != nil
}

// Capture grabs one frame, re-encodes it as JPEG and releases the device,
// whatever the outcome.
func (s *Session) Capture(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	stream := s.stream
	s.stream = nil
	s.mu.Unlock()

	if stream == nil {
		return nil, ErrNotActive
	}
	defer stream.Close()

	raw, err := stream.Grab(ctx)
	if err != nil {
		return nil, fmt.Errorf("grab frame: %w", err)
	}
	return toJPEG(raw)
}

// Stop releases the device if held. It is safe to call repeatedly.
func (s *Session) Stop() error {
	s.mu.Lock()
	stream := s.stream
	s.stream = nil
	s.mu.Unlock()

	if stream == nil {
		return nil
	}
	return stream.Close()
}

func toJPEG(raw []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode frame: %w", err)
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
