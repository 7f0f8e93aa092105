package activities

import (
	"context"
	"fmt"
	"time"

	"meshmind/internal/generation"
	"meshmind/internal/metrics"
	"meshmind/internal/providers"
	"meshmind/internal/util"
	"meshmind/internal/worksheet"

	"go.temporal.io/sdk/temporal"
)

// ErrTypeCompose marks composition failures as non-retryable application errors.
const ErrTypeCompose = "ComposeFailed"

type Activities struct {
	svc       *worksheet.Service
	providers *providers.Manager
	settings  generation.Settings
	recorder  worksheet.Recorder
	metrics   *metrics.Metrics
}

func New(svc *worksheet.Service, pm *providers.Manager, settings generation.Settings, rec worksheet.Recorder, m *metrics.Metrics) *Activities {
	if rec == nil {
		rec = worksheet.NopRecorder{}
	}
	return &Activities{svc: svc, providers: pm, settings: settings, recorder: rec, metrics: m}
}

func (a *Activities) AssembleContextActivity(ctx context.Context, in AssembleContextInput) (AssembleContextOutput, error) {
	_ = ctx
	text, err := a.svc.AssembleContext(in.Prompt, in.Subject, in.Grade)
	if err != nil {
		return AssembleContextOutput{}, err
	}
	return AssembleContextOutput{Context: text}, nil
}

// LLMGenerateActivity makes one attempt against one provider. Failover across
// providers is the workflow's job.
func (a *Activities) LLMGenerateActivity(ctx context.Context, in LLMGenerateInput) (LLMGenerateOutput, error) {
	provider, ref := a.providers.LLMProviderByIndex(in.ProviderIndex)
	start := time.Now()
	resp, info, err := provider.Generate(ctx, generation.BuildRequest(in.Input, a.settings))
	latency := time.Since(start)
	if err != nil {
		a.metrics.ObserveLLMCall(ref.Name, "failed", latency)
		return LLMGenerateOutput{}, fmt.Errorf("llm generate via %s failed: %w", ref.Raw, err)
	}
	c, err := generation.Decode(resp.Text, in.Input.Subject)
	if err != nil {
		a.metrics.ObserveLLMCall(ref.Name, "invalid_output", latency)
		return LLMGenerateOutput{}, fmt.Errorf("llm output via %s unusable: %w", ref.Raw, err)
	}
	a.metrics.ObserveLLMCall(ref.Name, "ok", latency)
	return LLMGenerateOutput{
		Content:      c,
		ProviderName: info.Name,
		Model:        info.Model,
		Key:          info.Key,
		LatencyMS:    latency.Milliseconds(),
	}, nil
}

func (a *Activities) ComposeAndSaveActivity(ctx context.Context, in ComposeAndSaveInput) (ComposeAndSaveOutput, error) {
	_ = ctx
	ws, err := a.svc.ComposeAndSave(in.Request, in.Content, in.CreatedAt)
	if err != nil {
		return ComposeAndSaveOutput{}, temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeCompose, err)
	}
	return ComposeAndSaveOutput{Artifact: ws.Artifact, Path: ws.Path, ContentSHA256: util.SHA256Hex(ws.PDF)}, nil
}

func (a *Activities) RecordRunActivity(ctx context.Context, in RecordRunInput) error {
	return a.recorder.RecordRun(ctx, in.Run)
}

func (a *Activities) LogLLMCallActivity(ctx context.Context, in LogLLMCallInput) error {
	return a.recorder.RecordLLMCall(ctx, in.Call)
}
