package worksheet

import (
	"context"

	"meshmind/internal/generation"
	"meshmind/internal/logger"
	"meshmind/internal/models"
)

// Recorder persists the audit trail. Failures are logged and never fail a run.
type Recorder interface {
	RecordRun(ctx context.Context, run models.GenerationRun) error
	RecordLLMCall(ctx context.Context, call models.LLMCall) error
}

type NopRecorder struct{}

func (NopRecorder) RecordRun(context.Context, models.GenerationRun) error { return nil }

func (NopRecorder) RecordLLMCall(context.Context, models.LLMCall) error { return nil }

type runIDKey struct{}

func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey{}, runID)
}

func RunIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(runIDKey{}).(string)
	return v
}

// AuditCalls forwards every provider attempt to rec, tagged with the run id
// carried by ctx.
func AuditCalls(rec Recorder, log *logger.Logger) generation.CallObserver {
	return func(ctx context.Context, call generation.Call) {
		err := rec.RecordLLMCall(ctx, LLMCallFrom(RunIDFromContext(ctx), call))
		if err != nil && log != nil {
			log.Warn("record llm call failed", "provider", call.Provider, "error", err)
		}
	}
}

func LLMCallFrom(runID string, call generation.Call) models.LLMCall {
	return models.LLMCall{
		RunID:     runID,
		Operation: generation.Operation,
		Provider:  call.Provider,
		Model:     call.Model,
		Key:       call.Key,
		Status:    call.Status,
		ErrorType: call.ErrorType,
		LatencyMS: call.Latency.Milliseconds(),
	}
}
