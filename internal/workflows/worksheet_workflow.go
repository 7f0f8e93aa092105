package workflows

import (
	"fmt"
	"time"

	"meshmind/internal/activities"
	"meshmind/internal/generation"
	"meshmind/internal/models"
	"meshmind/internal/providers"
	"meshmind/internal/worksheet"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

const (
	QueryGetProgress = "GetProgress"

	// ErrTypeGenerationFailed is the application error type returned when no
	// provider produced usable content.
	ErrTypeGenerationFailed = "GenerationFailed"
)

type providerState struct {
	disabledUntil map[int]time.Time
	retries       map[int]int
}

func newProviderState() providerState {
	return providerState{disabledUntil: map[int]time.Time{}, retries: map[int]int{}}
}

// WorksheetWorkflow runs the worksheet pipeline as activities. The request must
// already be normalized and validated.
func WorksheetWorkflow(ctx workflow.Context, input WorksheetInput) (WorksheetResult, error) {
	progress := WorksheetProgress{RunID: input.RunID, CurrentStep: "start"}
	if err := workflow.SetQueryHandler(ctx, QueryGetProgress, func() (WorksheetProgress, error) {
		return progress, nil
	}); err != nil {
		return WorksheetResult{}, err
	}

	ao := workflow.ActivityOptions{
		StartToCloseTimeout: 3 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2,
			MaximumInterval:    20 * time.Second,
			MaximumAttempts:    3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)
	// LLM attempts are retried by the failover loop, not by the activity policy.
	llmCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 3 * time.Minute,
		RetryPolicy:         &temporal.RetryPolicy{MaximumAttempts: 1},
	})

	req := input.Request
	run := models.GenerationRun{
		RunID:          input.RunID,
		Prompt:         req.Prompt,
		Subject:        req.Subject,
		Grade:          req.Grade,
		Language:       req.Language,
		IncludeAnswers: req.IncludeAnswers,
		Status:         worksheet.StatusRunning,
		CreatedAt:      workflow.Now(ctx),
	}
	recordRun(ctx, run)

	progress.CurrentStep = "assemble_context"
	var ctxOut activities.AssembleContextOutput
	if err := workflow.ExecuteActivity(ctx, "AssembleContextActivity", activities.AssembleContextInput{
		Prompt: req.Prompt, Subject: req.Subject, Grade: req.Grade,
	}).Get(ctx, &ctxOut); err != nil {
		return WorksheetResult{}, failRun(ctx, run, err)
	}
	run.ContextChars = len(ctxOut.Context)

	progress.CurrentStep = "generate_content"
	state := newProviderState()
	llmIn := activities.LLMGenerateInput{
		RunID: input.RunID,
		Input: generation.Input{
			Prompt:    req.Prompt,
			Subject:   req.Subject,
			Grade:     req.Grade,
			Language:  req.Language,
			Grounding: ctxOut.Context,
		},
	}
	cooldown := durationOrDefault(input.CooldownSeconds, 300)
	genOut, err := callLLMWithFailover(llmCtx, &state, providerOrder(input), cooldown, llmIn, &progress)
	if err != nil {
		appErr := temporal.NewNonRetryableApplicationError(fmt.Sprintf("content generation failed: %v", err), ErrTypeGenerationFailed, err)
		return WorksheetResult{}, failRun(ctx, run, appErr)
	}

	progress.CurrentStep = "compose"
	var saved activities.ComposeAndSaveOutput
	if err := workflow.ExecuteActivity(ctx, "ComposeAndSaveActivity", activities.ComposeAndSaveInput{
		Request:   req,
		Content:   genOut.Content,
		CreatedAt: run.CreatedAt,
	}).Get(ctx, &saved); err != nil {
		return WorksheetResult{}, failRun(ctx, run, err)
	}

	run.Status = worksheet.StatusCompleted
	run.ArtifactID = saved.Artifact.ID
	run.Filename = saved.Artifact.Filename
	run.ContentSHA256 = saved.ContentSHA256
	recordRun(ctx, run)
	progress.CurrentStep = "completed"

	return WorksheetResult{
		RunID:    input.RunID,
		Artifact: saved.Artifact,
		Path:     saved.Path,
		Context:  ctxOut.Context,
		Provider: genOut.ProviderName,
	}, nil
}

func callLLMWithFailover(ctx workflow.Context, state *providerState, order []int, cooldown time.Duration, input activities.LLMGenerateInput, progress *WorksheetProgress) (activities.LLMGenerateOutput, error) {
	var lastErr error
	for attempt := 0; attempt < len(order)*3; attempt++ {
		idx := order[attempt%len(order)]
		if isProviderDisabled(ctx, state, idx) {
			continue
		}
		progress.Attempts++
		input.ProviderIndex = idx
		var out activities.LLMGenerateOutput
		err := workflow.ExecuteActivity(ctx, "LLMGenerateActivity", input).Get(ctx, &out)
		if err == nil {
			progress.Provider = out.ProviderName
			logLLMCall(ctx, models.LLMCall{RunID: input.RunID, Operation: generation.Operation, Provider: out.ProviderName, Model: out.Model, Key: out.Key, Status: "ok", LatencyMS: out.LatencyMS})
			return out, nil
		}
		lastErr = err
		progress.LastError = err.Error()
		errType := providers.ClassifyError(err)
		logLLMCall(ctx, models.LLMCall{RunID: input.RunID, Operation: generation.Operation, Provider: fmt.Sprintf("provider-%d", idx), Status: "failed", ErrorType: string(errType)})
		state.retries[idx]++
		if !errType.Retryable() {
			return activities.LLMGenerateOutput{}, err
		}
		switch errType {
		case providers.ErrorQuota:
			disableProviderUntil(ctx, state, idx, cooldown)
		case providers.ErrorRate:
			if state.retries[idx] <= 2 {
				_ = workflow.Sleep(ctx, time.Duration(state.retries[idx]*2)*time.Second)
			} else {
				disableProviderUntil(ctx, state, idx, 2*time.Minute)
			}
		case providers.ErrorTransient:
			if state.retries[idx] > 2 {
				disableProviderUntil(ctx, state, idx, time.Minute)
			} else {
				_ = workflow.Sleep(ctx, time.Duration(state.retries[idx])*time.Second)
			}
		case providers.ErrorRequest:
			// Rejected request; the provider stays available.
		default:
			disableProviderUntil(ctx, state, idx, cooldown)
		}
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("all llm providers exhausted")
	}
	return activities.LLMGenerateOutput{}, lastErr
}

func providerOrder(input WorksheetInput) []int {
	if len(input.ProviderOrder) > 0 {
		return input.ProviderOrder
	}
	n := input.LLMProviders
	if n <= 0 {
		n = 1
	}
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func isProviderDisabled(ctx workflow.Context, state *providerState, idx int) bool {
	until, ok := state.disabledUntil[idx]
	if !ok {
		return false
	}
	return workflow.Now(ctx).Before(until)
}

func disableProviderUntil(ctx workflow.Context, state *providerState, idx int, d time.Duration) {
	state.disabledUntil[idx] = workflow.Now(ctx).Add(d)
}

func durationOrDefault(seconds, fallback int) time.Duration {
	if seconds <= 0 {
		seconds = fallback
	}
	return time.Duration(seconds) * time.Second
}

// Audit writes are best effort; a failed write never fails the run.
func recordRun(ctx workflow.Context, run models.GenerationRun) {
	_ = workflow.ExecuteActivity(ctx, "RecordRunActivity", activities.RecordRunInput{Run: run}).Get(ctx, nil)
}

func logLLMCall(ctx workflow.Context, call models.LLMCall) {
	_ = workflow.ExecuteActivity(ctx, "LogLLMCallActivity", activities.LogLLMCallInput{Call: call}).Get(ctx, nil)
}

func failRun(ctx workflow.Context, run models.GenerationRun, err error) error {
	run.Status = worksheet.StatusFailed
	run.FailReason = err.Error()
	recordRun(ctx, run)
	return err
}
