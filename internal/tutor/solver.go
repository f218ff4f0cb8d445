package tutor

import (
	"context"
	"errors"
	"fmt"

	"github.com/gabriel-vasile/mimetype"

	"github.com/abhisek/guruai/internal/llm"
	"github.com/abhisek/guruai/internal/profile"
)

var (
	// ErrEmptyImage is returned when no image bytes were supplied.
	ErrEmptyImage = errors.New("image is empty")

	// ErrUnsupportedImage is returned for anything but JPEG or PNG.
	ErrUnsupportedImage = errors.New("unsupported image type")
)

// Solver explains a photographed problem.
type Solver struct {
	provider llm.Provider
	cfg      Config
}

// NewSolver creates a Solver.
func NewSolver(provider llm.Provider, cfg Config) *Solver {
	return &Solver{provider: provider, cfg: cfg}
}

// DetectImage returns the MIME type of image if it is JPEG or PNG.
func DetectImage(image []byte) (string, error) {
	if len(image) == 0 {
		return "", ErrEmptyImage
	}
	mt := mimetype.Detect(image)
	switch {
	case mt.Is("image/jpeg"):
		return "image/jpeg", nil
	case mt.Is("image/png"):
		return "image/png", nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedImage, mt.String())
}

// SolveFromImage sends image inline with a step-by-step instruction for
// the grade and returns the explanation. An empty hint asks what the
// image shows.
func (s *Solver) SolveFromImage(ctx context.Context, image []byte, hint string, grade profile.Grade) (string, error) {
	mime, err := DetectImage(image)
	if err != nil {
		return "", err
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeSolve)

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: visionSystemPrompt,
		Messages: []llm.Message{{
			Role:    llm.RoleUser,
			Content: visionPrompt(grade, hint),
			Images:  []llm.Image{{MIMEType: mime, Data: image}},
		}},
		MaxTokens: s.cfg.SolveMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("solve from image: %w", err)
	}

	reply := resp.Text()
	if reply == "" {
		return "", &llm.ErrInvalidResponse{Err: errors.New("empty explanation")}
	}
	return reply, nil
}
