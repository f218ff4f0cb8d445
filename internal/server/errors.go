package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/guruai/internal/llm"
	"github.com/abhisek/guruai/internal/profile"
	"github.com/abhisek/guruai/internal/quiz"
	"github.com/abhisek/guruai/internal/tutor"
)

// errorResponse is the body of every non-2xx reply.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	codeInvalidInput     = "invalid_input"
	codeUnsupportedImage = "unsupported_image"
	codeTooLarge         = "too_large"
	codeMalformed        = "malformed_response"
	codeNotConfigured    = "provider_not_configured"
	codeRateLimited      = "rate_limited"
	codeProviderError    = "provider_error"
	codeTimeout          = "timeout"
	codeUnavailable      = "unavailable"
	codeInternal         = "internal"
)

// classify maps an orchestrator error to a status and code.
func classify(err error) (int, string) {
	var (
		malformed *quiz.MalformedQuizError
		invalid   *llm.ErrInvalidResponse
		auth      *llm.ErrAuthentication
		rate      *llm.ErrRateLimit
		down      *llm.ErrProviderUnavailable
		maxTok    *llm.ErrMaxTokensExceeded
		tooBig    *http.MaxBytesError
	)
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, tutor.ErrEmptyMessage),
		errors.Is(err, quiz.ErrEmptyTopic),
		errors.Is(err, profile.ErrInvalidProfile),
		errors.Is(err, tutor.ErrEmptyImage):
		return http.StatusBadRequest, codeInvalidInput
	case errors.Is(err, tutor.ErrUnsupportedImage):
		return http.StatusUnsupportedMediaType, codeUnsupportedImage
	case errors.As(err, &tooBig):
		return http.StatusRequestEntityTooLarge, codeTooLarge
	case errors.As(err, &malformed), errors.As(err, &invalid):
		return http.StatusBadGateway, codeMalformed
	case errors.As(err, &auth):
		return http.StatusServiceUnavailable, codeNotConfigured
	case errors.As(err, &rate):
		return http.StatusTooManyRequests, codeRateLimited
	case errors.As(err, &down), errors.As(err, &maxTok):
		return http.StatusBadGateway, codeProviderError
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, codeTimeout
	}
	return http.StatusInternalServerError, codeInternal
}

// fail writes err as a JSON error and records it on the context for the
// request log. Provider details stay in the log.
func fail(c *gin.Context, err error) {
	status, code := classify(err)
	_ = c.Error(err)

	msg := err.Error()
	if status >= 500 {
		msg = http.StatusText(status)
	}
	c.AbortWithStatusJSON(status, errorResponse{Code: code, Message: msg})
}

func unavailable(c *gin.Context, what string) {
	c.AbortWithStatusJSON(http.StatusServiceUnavailable, errorResponse{
		Code:    codeUnavailable,
		Message: what + " is not configured",
	})
}
