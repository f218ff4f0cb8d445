package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/guruai/internal/store"
)

// recordingRepo keeps appended events in memory.
type recordingRepo struct {
	store.EventRepo
	events []store.LLMRequestEventData
}

func (r *recordingRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.events = append(r.events, data)
	return nil
}

func tutorRequest() Request {
	return Request{
		System: "You are GuruAI... The student's name is Priya.",
		Messages: []Message{
			{Role: RoleUser, Content: "Explain Pythagoras Theorem"},
			{Role: RoleAssistant, Content: "In a right triangle..."},
			{Role: RoleUser, Content: "Please explain this problem from the image:",
				Images: []Image{{MIMEType: "image/jpeg", Data: make([]byte, 42)}}},
		},
	}
}

func TestLoggingProvider_RedactsStudentText(t *testing.T) {
	for _, purpose := range []string{PurposeTutor, PurposeSolve} {
		t.Run(purpose, func(t *testing.T) {
			repo := &recordingRepo{}
			p := WithLogging(NewMockProvider().Text("Good question, Priya!"), "mock", repo, nil)

			ctx := WithRequestID(WithPurpose(context.Background(), purpose), "conv-7")
			if _, err := p.Generate(ctx, tutorRequest()); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(repo.events) != 1 {
				t.Fatalf("got %d events, want 1", len(repo.events))
			}
			ev := repo.events[0]

			for _, leaked := range []string{"Priya", "Pythagoras", "right triangle", "from the image"} {
				if strings.Contains(ev.RequestBody, leaked) {
					t.Errorf("request body contains %q:\n%s", leaked, ev.RequestBody)
				}
			}
			if strings.Contains(ev.ResponseBody, "Priya") {
				t.Errorf("response body not redacted: %q", ev.ResponseBody)
			}
			if !strings.Contains(ev.RequestBody, "[assistant]") || !strings.Contains(ev.RequestBody, "<image image/jpeg, 42 bytes>") {
				t.Errorf("expected roles and image summary to survive:\n%s", ev.RequestBody)
			}
			if ev.Purpose != purpose || ev.RequestID != "conv-7" || !ev.Success {
				t.Errorf("unexpected event metadata: %+v", ev)
			}
		})
	}
}

func TestLoggingProvider_QuizBodyIsKept(t *testing.T) {
	repo := &recordingRepo{}
	p := WithLogging(NewMockProvider().Text(validMCQ), "mock", repo, nil)

	req := Request{
		Messages: []Message{{Role: RoleUser, Content: `Generate a 5-question MCQ quiz for a 9th student on the topic: "Photosynthesis" in Science.`}},
		Schema:   mcqSchema(),
	}
	if _, err := p.Generate(WithPurpose(context.Background(), PurposeQuiz), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ev := repo.events[0]
	if !strings.Contains(ev.RequestBody, "Photosynthesis") {
		t.Errorf("expected quiz prompt in request body:\n%s", ev.RequestBody)
	}
	if !strings.Contains(ev.RequestBody, "[schema: test-mcq]") {
		t.Errorf("expected schema in request body:\n%s", ev.RequestBody)
	}
	if !strings.Contains(ev.ResponseBody, "Which gas do plants absorb?") {
		t.Errorf("expected quiz response body, got %q", ev.ResponseBody)
	}
}

func TestLoggingProvider_RecordsFailure(t *testing.T) {
	repo := &recordingRepo{}
	p := WithLogging(NewMockProvider().Fail(&ErrRateLimit{Err: errors.New("slow down")}), "mock", repo, nil)

	_, err := p.Generate(WithPurpose(context.Background(), PurposeTutor), tutorRequest())
	var rate *ErrRateLimit
	if !errors.As(err, &rate) {
		t.Fatalf("expected ErrRateLimit, got %v", err)
	}

	ev := repo.events[0]
	if ev.Success {
		t.Error("expected failed event")
	}
	if ev.ErrorMessage == "" {
		t.Error("expected error message")
	}
	if ev.ResponseBody != "" {
		t.Errorf("expected empty response body, got %q", ev.ResponseBody)
	}
}
