package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/abhisek/guruai/internal/llm"
	"github.com/abhisek/guruai/internal/profile"
	"github.com/abhisek/guruai/internal/progress"
	"github.com/abhisek/guruai/internal/quiz"
	"github.com/abhisek/guruai/internal/tutor"
)

type profileDTO struct {
	Name  string `json:"name"`
	Grade string `json:"grade"`
	Board string `json:"board"`
}

func (p profileDTO) toProfile() (profile.Profile, error) {
	grade, err := profile.ParseGrade(p.Grade)
	if err != nil {
		return profile.Profile{}, err
	}
	board, err := profile.ParseBoard(p.Board)
	if err != nil {
		return profile.Profile{}, err
	}
	return profile.New(p.Name, grade, board)
}

type messageDTO struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Profile profileDTO   `json:"profile"`
	Subject string       `json:"subject"`
	History []messageDTO `json:"history"`
	Message string       `json:"message"`
}

type chatResponse struct {
	RequestID string `json:"requestId"`
	Reply     string `json:"reply"`
}

type quizRequest struct {
	Topic   string `json:"topic"`
	Grade   string `json:"grade"`
	Subject string `json:"subject"`
}

type quizResponse struct {
	RequestID string          `json:"requestId"`
	Topic     string          `json:"topic"`
	Questions []quiz.Question `json:"questions"`
}

type solveResponse struct {
	RequestID   string `json:"requestId"`
	MIMEType    string `json:"mimeType"`
	Explanation string `json:"explanation"`
}

// errBadRequest marks a body that could not be decoded.
var errBadRequest = errors.New("bad request")

func badRequest(err error) error {
	return fmt.Errorf("%w: %v", errBadRequest, err)
}

// parseSubject defaults to Mathematics.
func parseSubject(s string) (profile.Subject, error) {
	if strings.TrimSpace(s) == "" {
		return profile.Mathematics, nil
	}
	return profile.ParseSubject(s)
}

func parseRole(s string) (llm.Role, error) {
	switch strings.ToLower(s) {
	case "user":
		return llm.RoleUser, nil
	case "assistant", "model":
		return llm.RoleAssistant, nil
	}
	return "", fmt.Errorf("%w: unknown role %q", errBadRequest, s)
}

func requestID(c *gin.Context) string {
	if id := llm.RequestIDFrom(c.Request.Context()); id != "" {
		return id
	}
	return uuid.NewString()
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"tutor":  s.deps.Tutor != nil,
		"quiz":   s.deps.Quiz != nil,
		"solver": s.deps.Solver != nil,
	})
}

func (s *Server) handleChat(c *gin.Context) {
	if s.deps.Tutor == nil {
		unavailable(c, "tutor")
		return
	}

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, badRequest(err))
		return
	}
	p, err := req.Profile.toProfile()
	if err != nil {
		fail(c, err)
		return
	}
	subject, err := parseSubject(req.Subject)
	if err != nil {
		fail(c, err)
		return
	}

	transcript := make([]tutor.Message, 0, len(req.History))
	for _, m := range req.History {
		role, err := parseRole(m.Role)
		if err != nil {
			fail(c, err)
			return
		}
		transcript = append(transcript, tutor.Message{Role: role, Content: m.Content})
	}

	reply, err := s.deps.Tutor.SendTurn(c.Request.Context(), transcript, req.Message, p, subject)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, chatResponse{RequestID: requestID(c), Reply: reply})
}

func (s *Server) handleQuiz(c *gin.Context) {
	if s.deps.Quiz == nil {
		unavailable(c, "quiz")
		return
	}

	var req quizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, badRequest(err))
		return
	}
	grade, err := profile.ParseGrade(req.Grade)
	if err != nil {
		fail(c, err)
		return
	}
	subject, err := parseSubject(req.Subject)
	if err != nil {
		fail(c, err)
		return
	}

	in := quiz.Input{Topic: strings.TrimSpace(req.Topic), Grade: grade, Subject: subject}
	questions, err := s.deps.Quiz.Generate(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, quizResponse{
		RequestID: requestID(c),
		Topic:     in.Topic,
		Questions: questions,
	})
}

// handleSolve accepts a multipart form with an "image" file, a "grade" and an
// optional "hint".
func (s *Server) handleSolve(c *gin.Context) {
	if s.deps.Solver == nil {
		unavailable(c, "solver")
		return
	}
	if s.cfg.MaxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.MaxUploadBytes)
	}

	fh, err := c.FormFile("image")
	if err != nil {
		fail(c, uploadError(err))
		return
	}
	grade, err := profile.ParseGrade(c.PostForm("grade"))
	if err != nil {
		fail(c, err)
		return
	}
	f, err := fh.Open()
	if err != nil {
		fail(c, err)
		return
	}
	defer f.Close()

	image, err := io.ReadAll(f)
	if err != nil {
		fail(c, err)
		return
	}
	mime, err := tutor.DetectImage(image)
	if err != nil {
		fail(c, err)
		return
	}

	explanation, err := s.deps.Solver.SolveFromImage(c.Request.Context(), image, c.PostForm("hint"), grade)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, solveResponse{
		RequestID:   requestID(c),
		MIMEType:    mime,
		Explanation: explanation,
	})
}

// uploadError keeps an oversized body distinguishable from a missing file.
func uploadError(err error) error {
	var tooBig *http.MaxBytesError
	if errors.As(err, &tooBig) {
		return err
	}
	return fmt.Errorf("%w: image: %v", tutor.ErrEmptyImage, err)
}

func (s *Server) handleProgress(c *gin.Context) {
	c.JSON(http.StatusOK, progress.Sample())
}
