package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// OllamaProvider implements Provider against a local Ollama server through
// langchaingo. Ollama has JSON mode but no schema enforcement, so the
// schema is spelled out in the system instruction and validated afterwards.
type OllamaProvider struct {
	model llms.Model
	name  string
}

// NewOllamaProvider creates a provider for the configured Ollama server.
func NewOllamaProvider(cfg OllamaConfig) (*OllamaProvider, error) {
	m, err := ollama.New(
		ollama.WithServerURL(cfg.ServerURL),
		ollama.WithModel(cfg.Model),
		ollama.WithHTTPClient(&http.Client{Timeout: 120 * time.Second}),
	)
	if err != nil {
		return nil, fmt.Errorf("create ollama client: %w", err)
	}
	return &OllamaProvider{model: m, name: cfg.Model}, nil
}

func (p *OllamaProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	opts := []llms.CallOption{llms.WithTemperature(req.Temperature)}
	if req.MaxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(req.MaxTokens))
	}
	if req.Schema != nil {
		opts = append(opts, llms.WithJSONMode())
	}

	msgs, err := buildOllamaMessages(req)
	if err != nil {
		return nil, err
	}

	resp, err := p.model.GenerateContent(ctx, msgs, opts...)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &ErrProviderUnavailable{Err: err}
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Content) == "" {
		return nil, &ErrInvalidResponse{Err: fmt.Errorf("empty ollama response")}
	}

	choice := resp.Choices[0]
	content := json.RawMessage(choice.Content)
	if req.Schema != nil {
		if err := validateResponse(req.Schema, content); err != nil {
			return nil, err
		}
	}

	in := generationInt(choice.GenerationInfo, "PromptTokens")
	out := generationInt(choice.GenerationInfo, "CompletionTokens")
	return &Response{
		Content:    content,
		Usage:      Usage{InputTokens: in, OutputTokens: out, TotalTokens: in + out},
		Model:      p.name,
		StopReason: "end",
	}, nil
}

func (p *OllamaProvider) ModelID() string {
	return p.name
}

func buildOllamaMessages(req Request) ([]llms.MessageContent, error) {
	system := req.System
	if req.Schema != nil {
		def, err := json.Marshal(req.Schema.Definition)
		if err != nil {
			return nil, fmt.Errorf("marshal schema: %w", err)
		}
		system = strings.TrimSpace(system + "\n\nRespond only with JSON matching this schema:\n" + string(def))
	}

	out := make([]llms.MessageContent, 0, len(req.Messages)+1)
	if system != "" {
		out = append(out, llms.TextParts(llms.ChatMessageTypeSystem, system))
	}
	for _, m := range req.Messages {
		role := llms.ChatMessageTypeHuman
		if m.Role == RoleAssistant {
			role = llms.ChatMessageTypeAI
		}
		parts := make([]llms.ContentPart, 0, len(m.Images)+1)
		for _, img := range m.Images {
			parts = append(parts, llms.BinaryPart(img.MIMEType, img.Data))
		}
		parts = append(parts, llms.TextPart(m.Content))
		out = append(out, llms.MessageContent{Role: role, Parts: parts})
	}
	return out, nil
}

func generationInt(info map[string]any, key string) int {
	switch v := info[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}
