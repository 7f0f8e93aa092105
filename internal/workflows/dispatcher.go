package workflows

import (
	"context"
	"errors"
	"fmt"

	"meshmind/internal/activities"
	"meshmind/internal/models"
	"meshmind/internal/providers"
	"meshmind/internal/worksheet"

	"github.com/google/uuid"
	enumspb "go.temporal.io/api/enums/v1"
	tclient "go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"
)

// Dispatcher runs worksheet generation on a Temporal worker and waits for the
// result. It has the same contract as worksheet.Service.Generate.
type Dispatcher struct {
	client          tclient.Client
	taskQueue       string
	svc             *worksheet.Service
	providers       *providers.Manager
	cooldownSeconds int
}

func NewDispatcher(c tclient.Client, taskQueue string, svc *worksheet.Service, pm *providers.Manager, cooldownSeconds int) *Dispatcher {
	return &Dispatcher{client: c, taskQueue: taskQueue, svc: svc, providers: pm, cooldownSeconds: cooldownSeconds}
}

func (d *Dispatcher) Generate(ctx context.Context, req models.GenerationRequest) (models.Worksheet, error) {
	req, err := d.svc.Prepare(req)
	if err != nil {
		return models.Worksheet{}, err
	}
	runID := uuid.NewString()
	we, err := d.client.ExecuteWorkflow(ctx, tclient.StartWorkflowOptions{
		ID:                    "worksheet-" + runID,
		TaskQueue:             d.taskQueue,
		WorkflowIDReusePolicy: enumspb.WORKFLOW_ID_REUSE_POLICY_REJECT_DUPLICATE,
	}, WorksheetWorkflow, WorksheetInput{
		RunID:           runID,
		Request:         req,
		LLMProviders:    d.providers.LLMCount(),
		ProviderOrder:   d.providers.PreferredLLMOrder(),
		CooldownSeconds: d.cooldownSeconds,
	})
	if err != nil {
		return models.Worksheet{}, fmt.Errorf("start worksheet workflow: %w", err)
	}
	var out WorksheetResult
	if err := we.Get(ctx, &out); err != nil {
		return models.Worksheet{}, mapWorkflowError(err)
	}
	rec, pdf, err := d.svc.Artifacts().Read(out.Artifact.ID)
	if err != nil {
		return models.Worksheet{}, fmt.Errorf("read generated worksheet: %w", err)
	}
	artifact := out.Artifact
	artifact.SizeBytes = rec.SizeBytes
	return models.Worksheet{Artifact: artifact, Path: out.Path, PDF: pdf, Context: out.Context}, nil
}

func mapWorkflowError(err error) error {
	var appErr *temporal.ApplicationError
	if errors.As(err, &appErr) {
		switch appErr.Type() {
		case ErrTypeGenerationFailed:
			return fmt.Errorf("%w: %s", worksheet.ErrGenerationFailed, appErr.Error())
		case activities.ErrTypeCompose:
			return fmt.Errorf("%w: %s", worksheet.ErrCompose, appErr.Error())
		}
	}
	return fmt.Errorf("worksheet workflow: %w", err)
}
