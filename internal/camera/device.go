package camera

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"
)

// Config selects and configures the capture device.
type Config struct {
	Driver      string // ffmpeg, file or none
	Device      string // ffmpeg input, e.g. /dev/video0
	InputFormat string // ffmpeg -f value, e.g. v4l2
	FFmpegPath  string
	File        string // still image served by the file driver
}

// DefaultConfig captures through ffmpeg from the platform's default
// camera input.
func DefaultConfig() Config {
	cfg := Config{Driver: "ffmpeg", FFmpegPath: "ffmpeg"}
	switch runtime.GOOS {
	case "darwin":
		cfg.InputFormat, cfg.Device = "avfoundation", "0"
	case "windows":
		cfg.InputFormat, cfg.Device = "dshow", "video=Integrated Camera"
	default:
		cfg.InputFormat, cfg.Device = "v4l2", "/dev/video0"
	}
	return cfg
}

// NewDevice builds the device named by cfg.Driver.
func NewDevice(cfg Config) (Device, error) {
	switch cfg.Driver {
	case "ffmpeg", "":
		return &FFmpegDevice{Path: cfg.FFmpegPath, Format: cfg.InputFormat, Input: cfg.Device}, nil
	case "file":
		if cfg.File == "" {
			return nil, fmt.Errorf("camera file driver needs a file")
		}
		return FileDevice{Path: cfg.File}, nil
	case "none":
		return Disabled{}, nil
	}
	return nil, fmt.Errorf("unknown camera driver: %q", cfg.Driver)
}

// Disabled is a Device that is never available.
type Disabled struct{}

func (Disabled) Open(context.Context) (Stream, error) {
	return nil, fmt.Errorf("%w: capture disabled", ErrUnavailable)
}

// FileDevice serves a still image from disk as the captured frame.
type FileDevice struct {
	Path string
}

func (d FileDevice) Open(context.Context) (Stream, error) {
	if _, err := os.Stat(d.Path); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return fileStream{path: d.Path}, nil
}

type fileStream struct {
	path string
}

func (s fileStream) Grab(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(s.path)
}

func (fileStream) Close() error { return nil }

// FFmpegDevice grabs frames from a camera through the ffmpeg binary.
type FFmpegDevice struct {
	Path   string
	Format string
	Input  string
}

func (d *FFmpegDevice) Open(ctx context.Context) (Stream, error) {
	bin, err := exec.LookPath(d.binary())
	if err != nil {
		return nil, fmt.Errorf("%w: ffmpeg not found: %w", ErrUnavailable, err)
	}
	if strings.HasPrefix(d.Input, "/dev/") {
		f, err := os.Open(d.Input)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		f.Close()
	}
	return &ffmpegStream{bin: bin, format: d.Format, input: d.Input}, nil
}

func (d *FFmpegDevice) binary() string {
	if d.Path == "" {
		return "ffmpeg"
	}
	return d.Path
}

type ffmpegStream struct {
	mu     sync.Mutex
	bin    string
	format string
	input  string
	closed bool
}

func (s *ffmpegStream) Grab(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return nil, ErrNotActive
	}

	args := []string{"-hide_banner", "-loglevel", "error"}
	if s.format != "" {
		args = append(args, "-f", s.format)
	}
	args = append(args, "-i", s.input, "-frames:v", "1", "-f", "image2", "-c:v", "mjpeg", "pipe:1")

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, s.bin, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, classifyFFmpegError(err, stderr.String())
	}
	if stdout.Len() == 0 {
		return nil, errors.New("ffmpeg produced no frame")
	}
	return stdout.Bytes(), nil
}

func (s *ffmpegStream) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}

func classifyFFmpegError(err error, stderr string) error {
	msg := strings.TrimSpace(stderr)
	lower := strings.ToLower(msg)
	if strings.Contains(lower, "permission denied") ||
		strings.Contains(lower, "no such file") ||
		strings.Contains(lower, "device or resource busy") {
		return fmt.Errorf("%w: %s", ErrUnavailable, msg)
	}
	if msg == "" {
		return fmt.Errorf("ffmpeg: %w", err)
	}
	return fmt.Errorf("ffmpeg: %w: %s", err, msg)
}
