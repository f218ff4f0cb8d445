package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// openRouterServer serves one canned chat completion and hands the decoded
// request body to inspect.
func openRouterServer(t *testing.T, content string, inspect func(path string, body map[string]any)) *OpenRouterProvider {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if inspect != nil {
			inspect(r.URL.Path, body)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":      "gen-test",
			"object":  "chat.completion",
			"created": 1234567890,
			"model":   "google/gemini-2.5-flash",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": "stop",
			}},
			"usage": map[string]any{"prompt_tokens": 120, "completion_tokens": 80, "total_tokens": 200},
		})
	}))
	t.Cleanup(server.Close)

	p, err := NewOpenRouterProvider(OpenRouterConfig{
		APIKey:  "sk-or-test",
		Model:   "google/gemini-2.5-flash",
		BaseURL: server.URL + "/api/v1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return p
}

func TestNewOpenRouterProvider(t *testing.T) {
	t.Run("model IDs pass through", func(t *testing.T) {
		p, err := NewOpenRouterProvider(OpenRouterConfig{
			APIKey: "sk-or-test",
			Model:  "meta-llama/llama-3.2-11b-vision-instruct",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ModelID() != "meta-llama/llama-3.2-11b-vision-instruct" {
			t.Errorf("model = %q", p.ModelID())
		}
		if p.name != "openrouter" {
			t.Errorf("name = %q, want openrouter", p.name)
		}
	})

	t.Run("empty API key", func(t *testing.T) {
		_, err := NewOpenRouterProvider(OpenRouterConfig{Model: "google/gemini-2.5-flash"})
		if err == nil {
			t.Fatal("expected error for empty API key")
		}
	})
}

func TestOpenRouterProvider_ArrayRootSchemaIsWrapped(t *testing.T) {
	var path string
	var format map[string]any
	p := openRouterServer(t, `{"items":`+validMCQ+`}`, func(reqPath string, body map[string]any) {
		path = reqPath
		format, _ = body["response_format"].(map[string]any)
	})

	resp, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: `Generate a quiz on "Photosynthesis" in Science.`}},
		Schema:   mcqSchema(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if path != "/api/v1/chat/completions" {
		t.Errorf("path = %q, want the configured base URL", path)
	}
	js, _ := format["json_schema"].(map[string]any)
	sent, _ := js["schema"].(map[string]any)
	if sent["type"] != "object" {
		t.Fatalf("sent schema root = %v, want object", sent["type"])
	}
	props, _ := sent["properties"].(map[string]any)
	if _, ok := props[wrappedRootKey]; !ok {
		t.Errorf("expected the quiz array under %q", wrappedRootKey)
	}

	var questions []map[string]any
	if err := json.Unmarshal(resp.Content, &questions); err != nil {
		t.Fatalf("content is not the unwrapped array: %v", err)
	}
	if len(questions) != 2 {
		t.Errorf("got %d questions, want 2", len(questions))
	}
	if resp.Usage.TotalTokens != 200 {
		t.Errorf("total tokens = %d, want 200", resp.Usage.TotalTokens)
	}
}

func TestOpenRouterProvider_WrappedResponseMissingItems(t *testing.T) {
	p := openRouterServer(t, `{"questions":`+validMCQ+`}`, nil)

	_, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "quiz"}},
		Schema:   mcqSchema(),
	})
	assertInvalidResponse(t, err)
}

func TestOpenRouterProvider_InlineImage(t *testing.T) {
	var parts []any
	p := openRouterServer(t, "Step 1: isolate x.", func(_ string, body map[string]any) {
		msgs, _ := body["messages"].([]any)
		if len(msgs) != 2 {
			t.Errorf("got %d messages, want system + user", len(msgs))
			return
		}
		user, _ := msgs[1].(map[string]any)
		parts, _ = user["content"].([]any)
	})

	resp, err := p.Generate(context.Background(), Request{
		System: "You are a visual aid teacher.",
		Messages: []Message{{
			Role:    RoleUser,
			Content: "Explain step-by-step: What is in this image?",
			Images:  []Image{{MIMEType: "image/jpeg", Data: []byte{0xFF, 0xD8, 0xFF}}},
		}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text() != "Step 1: isolate x." {
		t.Errorf("text = %q", resp.Text())
	}

	if len(parts) != 2 {
		t.Fatalf("got %d content parts, want image + text", len(parts))
	}
	img, _ := parts[0].(map[string]any)
	imgURL, _ := img["image_url"].(map[string]any)
	url, _ := imgURL["url"].(string)
	if !strings.HasPrefix(url, "data:image/jpeg;base64,") {
		t.Errorf("image url = %q, want a JPEG data URL", url)
	}
	text, _ := parts[1].(map[string]any)
	if text["type"] != "text" || text["text"] != "Explain step-by-step: What is in this image?" {
		t.Errorf("text part = %v", text)
	}
}
