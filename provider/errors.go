package provider

import (
	"context"
	"errors"
	"fmt"
	"net"

	ollamaapi "github.com/ollama/ollama/api"
	"github.com/openai/openai-go/v3"
)

// ProviderError wraps any failure talking to a backend, classified so
// callers can decide whether retrying makes sense. Timeouts, rate limits
// and server errors are retryable; bad credentials are not.
type ProviderError struct {
	Kind       Kind
	Op         string
	StatusCode int // 0 when the failure never reached HTTP
	Retryable  bool
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s failed (status %d): %v", e.Kind, e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %s failed: %v", e.Kind, e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// IsRetryable reports whether err is a retryable *ProviderError.
func IsRetryable(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Retryable
}

// classify builds a ProviderError from whatever an SDK surfaced.
func classify(kind Kind, op string, err error) *ProviderError {
	pe := &ProviderError{Kind: kind, Op: op, Err: err}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		pe.StatusCode = apiErr.StatusCode
		pe.Retryable = retryableStatus(apiErr.StatusCode)
		return pe
	}

	var statusErr ollamaapi.StatusError
	if errors.As(err, &statusErr) {
		pe.StatusCode = statusErr.StatusCode
		pe.Retryable = retryableStatus(statusErr.StatusCode)
		return pe
	}

	if errors.Is(err, context.DeadlineExceeded) {
		pe.Retryable = true
		return pe
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		// Timeouts and transport-level failures (refused connections,
		// DNS hiccups) are worth retrying once the network settles.
		pe.Retryable = true
		return pe
	}

	return pe
}

func retryableStatus(code int) bool {
	switch {
	case code == 408 || code == 429:
		return true
	case code >= 500:
		return true
	default:
		return false
	}
}
