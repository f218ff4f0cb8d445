package llm

import (
	"strings"
	"testing"

	"github.com/tmc/langchaingo/llms"
)

func TestBuildOllamaMessages(t *testing.T) {
	msgs, err := buildOllamaMessages(Request{
		System: "You are a visual aid teacher.",
		Messages: []Message{{
			Role:    RoleUser,
			Content: "Explain step-by-step",
			Images:  []Image{{MIMEType: "image/jpeg", Data: []byte{1, 2, 3}}},
		}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected system and user messages, got %d", len(msgs))
	}
	if msgs[0].Role != llms.ChatMessageTypeSystem {
		t.Fatalf("expected system role first, got %s", msgs[0].Role)
	}
	user := msgs[1]
	if len(user.Parts) != 2 {
		t.Fatalf("expected image and text parts, got %d", len(user.Parts))
	}
	if _, ok := user.Parts[0].(llms.BinaryContent); !ok {
		t.Fatalf("expected binary part first, got %T", user.Parts[0])
	}
	if text, ok := user.Parts[1].(llms.TextContent); !ok || text.Text != "Explain step-by-step" {
		t.Fatalf("unexpected text part %#v", user.Parts[1])
	}
}

func TestBuildOllamaMessages_SchemaInSystem(t *testing.T) {
	msgs, err := buildOllamaMessages(Request{
		System: "quiz",
		Schema: &Schema{Name: "ollama-test", Definition: map[string]any{"type": "array"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text, ok := msgs[0].Parts[0].(llms.TextContent)
	if !ok {
		t.Fatalf("expected text part, got %T", msgs[0].Parts[0])
	}
	if !strings.Contains(text.Text, `{"type":"array"}`) {
		t.Fatalf("expected schema in system text, got %q", text.Text)
	}
}

func TestGenerationInt(t *testing.T) {
	info := map[string]any{"PromptTokens": 12, "CompletionTokens": float64(30)}
	if got := generationInt(info, "PromptTokens"); got != 12 {
		t.Fatalf("PromptTokens = %d, want 12", got)
	}
	if got := generationInt(info, "CompletionTokens"); got != 30 {
		t.Fatalf("CompletionTokens = %d, want 30", got)
	}
	if got := generationInt(info, "Missing"); got != 0 {
		t.Fatalf("Missing = %d, want 0", got)
	}
}
