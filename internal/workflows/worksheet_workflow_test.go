package workflows

import (
	"context"
	"errors"
	"testing"

	"meshmind/internal/activities"
	"meshmind/internal/content"
	"meshmind/internal/models"
	"meshmind/internal/worksheet"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"
)

func registerActivityName[T any](env *testsuite.TestWorkflowEnvironment, name string, fn T) {
	env.RegisterActivityWithOptions(fn, activity.RegisterOptions{Name: name})
}

func newEnv(t *testing.T) *testsuite.TestWorkflowEnvironment {
	t.Helper()
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(WorksheetWorkflow)
	registerActivityName(env, "AssembleContextActivity", func(context.Context, activities.AssembleContextInput) (activities.AssembleContextOutput, error) {
		return activities.AssembleContextOutput{}, nil
	})
	registerActivityName(env, "LLMGenerateActivity", func(context.Context, activities.LLMGenerateInput) (activities.LLMGenerateOutput, error) {
		return activities.LLMGenerateOutput{}, nil
	})
	registerActivityName(env, "ComposeAndSaveActivity", func(context.Context, activities.ComposeAndSaveInput) (activities.ComposeAndSaveOutput, error) {
		return activities.ComposeAndSaveOutput{}, nil
	})
	registerActivityName(env, "RecordRunActivity", func(context.Context, activities.RecordRunInput) error { return nil })
	registerActivityName(env, "LogLLMCallActivity", func(context.Context, activities.LogLLMCallInput) error { return nil })

	env.OnActivity("AssembleContextActivity", mock.Anything, activities.AssembleContextInput{Prompt: "fractions", Subject: "math", Grade: "4"}).
		Return(activities.AssembleContextOutput{Context: "GRADE 4 OVERVIEW:\nFractions."}, nil)
	env.OnActivity("LogLLMCallActivity", mock.Anything, mock.Anything).Return(nil)
	return env
}

func onProvider(idx int) any {
	return mock.MatchedBy(func(in activities.LLMGenerateInput) bool { return in.ProviderIndex == idx })
}

var request = models.GenerationRequest{Prompt: "fractions", Subject: "math", Grade: "4", IncludeAnswers: true, Language: "English"}

func TestWorksheetWorkflowFailsOverToNextProvider(t *testing.T) {
	env := newEnv(t)
	var statuses []string
	env.OnActivity("RecordRunActivity", mock.Anything, mock.Anything).Return(func(_ context.Context, in activities.RecordRunInput) error {
		statuses = append(statuses, in.Run.Status)
		return nil
	})
	env.OnActivity("LLMGenerateActivity", mock.Anything, onProvider(1)).Return(activities.LLMGenerateOutput{}, errors.New("insufficient_quota")).Once()
	env.OnActivity("LLMGenerateActivity", mock.Anything, onProvider(0)).Return(activities.LLMGenerateOutput{
		Content:      content.Content{Title: "Fractions"},
		ProviderName: "mock",
	}, nil).Once()
	env.OnActivity("ComposeAndSaveActivity", mock.Anything, mock.MatchedBy(func(in activities.ComposeAndSaveInput) bool {
		return in.Content.Title == "Fractions" && in.Request.IncludeAnswers
	})).Return(activities.ComposeAndSaveOutput{
		Artifact:      models.ArtifactRecord{ID: "ab12cd34", Filename: "Fractions_ab12cd34.pdf", Title: "Fractions"},
		Path:          "/tmp/Fractions_ab12cd34.pdf",
		ContentSHA256: "deadbeef",
	}, nil)

	env.ExecuteWorkflow(WorksheetWorkflow, WorksheetInput{RunID: "run-1", Request: request, LLMProviders: 2, ProviderOrder: []int{1, 0}, CooldownSeconds: 60})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var out WorksheetResult
	require.NoError(t, env.GetWorkflowResult(&out))
	require.Equal(t, "ab12cd34", out.Artifact.ID)
	require.Equal(t, "mock", out.Provider)
	require.Equal(t, "GRADE 4 OVERVIEW:\nFractions.", out.Context)
	require.Equal(t, []string{worksheet.StatusRunning, worksheet.StatusCompleted}, statuses)
	env.AssertExpectations(t)
}

func TestWorksheetWorkflowGenerationFailedNeverComposes(t *testing.T) {
	env := newEnv(t)
	env.OnActivity("RecordRunActivity", mock.Anything, mock.Anything).Return(nil)
	env.OnActivity("LLMGenerateActivity", mock.Anything, mock.Anything).Return(activities.LLMGenerateOutput{}, errors.New("groq generate error 400: bad request"))

	env.ExecuteWorkflow(WorksheetWorkflow, WorksheetInput{RunID: "run-2", Request: request, LLMProviders: 1, CooldownSeconds: 60})
	require.True(t, env.IsWorkflowCompleted())
	err := env.GetWorkflowError()
	require.Error(t, err)

	var appErr *temporal.ApplicationError
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, ErrTypeGenerationFailed, appErr.Type())
	// A rejected request leaves the provider available for the remaining attempts.
	env.AssertNumberOfCalls(t, "LLMGenerateActivity", 3)
	env.AssertNotCalled(t, "ComposeAndSaveActivity", mock.Anything, mock.Anything)
}

func TestWorksheetWorkflowContextLengthStopsFailover(t *testing.T) {
	env := newEnv(t)
	env.OnActivity("RecordRunActivity", mock.Anything, mock.Anything).Return(nil)
	env.OnActivity("LLMGenerateActivity", mock.Anything, onProvider(0)).Return(activities.LLMGenerateOutput{}, errors.New("context_length_exceeded")).Once()

	env.ExecuteWorkflow(WorksheetWorkflow, WorksheetInput{RunID: "run-3", Request: request, LLMProviders: 2, CooldownSeconds: 60})
	require.True(t, env.IsWorkflowCompleted())
	require.Error(t, env.GetWorkflowError())
	env.AssertNumberOfCalls(t, "LLMGenerateActivity", 1)
}

func TestProviderOrderDefaults(t *testing.T) {
	require.Equal(t, []int{0}, providerOrder(WorksheetInput{}))
	require.Equal(t, []int{0, 1, 2}, providerOrder(WorksheetInput{LLMProviders: 3}))
	require.Equal(t, []int{2, 0}, providerOrder(WorksheetInput{LLMProviders: 3, ProviderOrder: []int{2, 0}}))
}
