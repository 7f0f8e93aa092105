package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeKVsRedactsSecrets(t *testing.T) {
	out := sanitizeKVs([]interface{}{"api_key", "gsk_123", "subject", "math", "max_tokens", 4000, "dangling"})
	require.Equal(t, []interface{}{"api_key", "[REDACTED]", "subject", "math", "max_tokens", 4000, "dangling"}, out)
}

func TestNopLoggerAcceptsCalls(t *testing.T) {
	l := Nop().With("component", "test")
	l.Info("hello", "k", "v")
	l.Sync()
}
