package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/guruai/internal/store"
)

// LoggingProvider is a decorator that records every LLM request in the
// diagnostics store and in the structured log.
type LoggingProvider struct {
	inner     Provider
	provider  string
	eventRepo store.EventRepo
	logger    *zap.Logger
}

// WithLogging wraps a Provider with event logging. repo may be nil when
// no store is open; logger may be nil to discard log lines.
func WithLogging(p Provider, provider string, repo store.EventRepo, logger *zap.Logger) Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoggingProvider{inner: p, provider: provider, eventRepo: repo, logger: logger}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)

	latency := time.Since(start)

	data := store.LLMRequestEventData{
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     purpose,
		RequestID:   RequestIDFrom(ctx),
		LatencyMs:   latency.Milliseconds(),
		Success:     err == nil,
		RequestBody: serializeRequest(req, redacted(purpose)),
	}

	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.Model = resp.Model
		data.ResponseBody = string(resp.Content)
		if redacted(purpose) {
			data.ResponseBody = redactedText(data.ResponseBody)
		}
	}

	logFields := []zap.Field{
		zap.String("provider", l.provider),
		zap.String("model", data.Model),
		zap.String("purpose", purpose),
		zap.Duration("latency", latency),
	}
	if data.RequestID != "" {
		logFields = append(logFields, zap.String("request_id", data.RequestID))
	}

	if err != nil {
		data.ErrorMessage = err.Error()
		l.logger.Warn("llm request failed", append(logFields, zap.Error(err))...)
	} else {
		l.logger.Debug("llm request",
			append(logFields,
				zap.Int("input_tokens", data.InputTokens),
				zap.Int("output_tokens", data.OutputTokens),
			)...)
	}

	if l.eventRepo != nil {
		// Recording must not fail the request. Use a detached context so a
		// cancelled request still leaves a trace.
		if logErr := l.eventRepo.AppendLLMRequest(context.WithoutCancel(ctx), data); logErr != nil {
			l.logger.Warn("failed to record llm request event", zap.Error(logErr))
		}
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// redacted reports whether bodies for purpose carry student text: the
// chat transcript, the student's name in the tutor instruction, or a
// photographed page and its explanation.
func redacted(purpose string) bool {
	return purpose == PurposeTutor || purpose == PurposeSolve
}

func redactedText(s string) string {
	return fmt.Sprintf("<redacted, %d chars>", len(s))
}

// serializeRequest builds a readable representation of the LLM request.
// Image payloads are summarized rather than dumped. With redact set, only
// roles and sizes are kept.
func serializeRequest(req Request, redact bool) string {
	var b strings.Builder

	text := func(s string) string {
		if redact {
			return redactedText(s)
		}
		return s
	}

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(text(req.System))
		b.WriteString("\n\n")
	}

	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n", m.Role)
		b.WriteString(text(m.Content))
		b.WriteString("\n")
		for _, img := range m.Images {
			fmt.Fprintf(&b, "<image %s, %d bytes>\n", img.MIMEType, len(img.Data))
		}
		b.WriteString("\n")
	}

	if req.Schema != nil {
		schemaDef, err := json.Marshal(req.Schema.Definition)
		if err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n", req.Schema.Name)
			b.Write(schemaDef)
			b.WriteString("\n")
		}
	}

	return b.String()
}
