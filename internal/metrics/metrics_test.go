package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestObserveLLMCall(t *testing.T) {
	m := New()
	m.ObserveLLMCall("groq", "ok", 2*time.Second)
	m.ObserveLLMCall("groq", "ok", time.Second)
	m.ObserveLLMCall("groq", "failed", time.Second)

	require.Equal(t, 2.0, testutil.ToFloat64(m.LLMCalls.WithLabelValues("groq", "ok")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.LLMCalls.WithLabelValues("groq", "failed")))
	require.Equal(t, 1, testutil.CollectAndCount(m.LLMLatency))
}

func TestObserveWorksheetSkipsEmptyDocuments(t *testing.T) {
	m := New()
	m.ObserveWorksheet("math", "generation_failed", 0)
	m.ObserveWorksheet("math", "ok", 12000)

	require.Equal(t, 1.0, testutil.ToFloat64(m.Worksheets.WithLabelValues("math", "ok")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Worksheets.WithLabelValues("math", "generation_failed")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	require.NotPanics(t, func() {
		m.ObserveLLMCall("mock", "ok", time.Millisecond)
		m.ObserveStage("compose", time.Millisecond)
		m.ObserveWorksheet("math", "ok", 10)
		m.ObserveContext("math", "grounded")
	})
}

func TestHandlerExposesRegistry(t *testing.T) {
	m := New()
	m.ObserveContext("science", "fallback")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), `meshmind_curriculum_context_total{kind="fallback",subject="science"} 1`)
}
