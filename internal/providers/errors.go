package providers

import (
	"context"
	"errors"
	"strings"
)

type ErrorType string

const (
	ErrorQuota     ErrorType = "quota"
	ErrorRate      ErrorType = "rate"
	ErrorTransient ErrorType = "transient"
	ErrorPermanent ErrorType = "permanent"
	ErrorContext   ErrorType = "context"
	// ErrorRequest is a 4xx rejection of one particular request; the provider
	// itself is healthy.
	ErrorRequest ErrorType = "request"
)

// Checked in order; the first class with a matching marker wins.
var errorMarkers = []struct {
	typ     ErrorType
	markers []string
}{
	{ErrorQuota, []string{"quota", "credit", "billing"}},
	{ErrorRate, []string{"rate limit", "rate_limit", "too many requests", " 429"}},
	{ErrorContext, []string{"context_length", "context length", "maximum context", "too long"}},
	{ErrorRequest, []string{"error 400", "error 404", "error 413", "error 422", "json_validate_failed", "bad request"}},
	{ErrorTransient, []string{"timeout", "temporarily", "unavailable", "connection refused", "error 500", "error 502", "error 503"}},
}

// ClassifyError buckets a provider error so callers can decide whether to
// cool a provider down, fail over, or give up.
func ClassifyError(err error) ErrorType {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorTransient
	}
	msg := strings.ToLower(err.Error())
	for _, m := range errorMarkers {
		for _, marker := range m.markers {
			if strings.Contains(msg, marker) {
				return m.typ
			}
		}
	}
	return ErrorPermanent
}

// Retryable is true for errors another provider may not hit.
func (t ErrorType) Retryable() bool {
	return t != ErrorContext
}
