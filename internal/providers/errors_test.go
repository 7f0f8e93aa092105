package providers

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyError(t *testing.T) {
	cases := map[string]ErrorType{
		"insufficient_quota":                            ErrorQuota,
		"groq generate error 429: rate limit hit":       ErrorRate,
		"context_length_exceeded":                       ErrorContext,
		"prompt too long":                               ErrorContext,
		"timeout":                                       ErrorTransient,
		"openai generate error 503: overloaded":         ErrorTransient,
		"groq generate error 400: json_validate_failed": ErrorRequest,
		"openai generate error 401: invalid api key":    ErrorPermanent,
	}
	for msg, want := range cases {
		require.Equal(t, want, ClassifyError(errors.New(msg)), msg)
	}
}

func TestClassifyErrorDeadline(t *testing.T) {
	err := fmt.Errorf("groq generate request failed: %w", context.DeadlineExceeded)
	require.Equal(t, ErrorTransient, ClassifyError(err))
	require.Equal(t, ErrorType(""), ClassifyError(nil))
}

func TestRetryable(t *testing.T) {
	require.False(t, ErrorContext.Retryable())
	require.True(t, ErrorRate.Retryable())
	require.True(t, ErrorPermanent.Retryable())
	require.True(t, ErrorRequest.Retryable())
}
