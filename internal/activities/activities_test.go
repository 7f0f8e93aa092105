package activities

import (
	"testing"
	"time"

	"meshmind/internal/artifacts"
	"meshmind/internal/content"
	"meshmind/internal/curriculum"
	"meshmind/internal/generation"
	"meshmind/internal/logger"
	"meshmind/internal/models"
	"meshmind/internal/providers"
	"meshmind/internal/worksheet"

	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/testsuite"
)

func newActivities(t *testing.T, list string) *Activities {
	t.Helper()
	store, err := artifacts.New(t.TempDir())
	require.NoError(t, err)
	pm, err := providers.NewManager(list)
	require.NoError(t, err)
	svc := worksheet.NewService(worksheet.Deps{
		Curriculum: curriculum.NewStore(curriculum.Source(""), curriculum.DefaultSubjects...),
		Artifacts:  store,
		Log:        logger.Nop(),
	})
	return New(svc, pm, generation.Settings{Temperature: 0.7, MaxTokens: 4000}, nil, nil)
}

func TestAssembleContextActivity(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestActivityEnvironment()
	a := newActivities(t, "mock")
	env.RegisterActivity(a.AssembleContextActivity)

	val, err := env.ExecuteActivity(a.AssembleContextActivity, AssembleContextInput{Prompt: "fractions", Subject: "math", Grade: "Grade 4"})
	require.NoError(t, err)
	var out AssembleContextOutput
	require.NoError(t, val.Get(&out))
	require.Contains(t, out.Context, "GRADE 4 OVERVIEW:")
}

func TestLLMGenerateActivityDecodesContent(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestActivityEnvironment()
	a := newActivities(t, "mock")
	env.RegisterActivity(a.LLMGenerateActivity)

	val, err := env.ExecuteActivity(a.LLMGenerateActivity, LLMGenerateInput{
		Input: generation.Input{Prompt: "volume", Subject: "math", Grade: "5"},
	})
	require.NoError(t, err)
	var out LLMGenerateOutput
	require.NoError(t, val.Get(&out))
	require.Equal(t, "mock", out.ProviderName)
	require.Equal(t, "Practice: volume", out.Content.Title)
	require.Len(t, out.Content.AnswerKey, 3)
}

func TestLLMGenerateActivityMissingKeyFails(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestActivityEnvironment()
	a := newActivities(t, "groq")
	env.RegisterActivity(a.LLMGenerateActivity)

	_, err := env.ExecuteActivity(a.LLMGenerateActivity, LLMGenerateInput{Input: generation.Input{Prompt: "x", Subject: "math", Grade: "1"}})
	require.Error(t, err)
	require.Contains(t, err.Error(), "groq key missing")
}

func TestComposeAndSaveActivity(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestActivityEnvironment()
	a := newActivities(t, "mock")
	env.RegisterActivity(a.ComposeAndSaveActivity)

	at := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)
	val, err := env.ExecuteActivity(a.ComposeAndSaveActivity, ComposeAndSaveInput{
		Request:   models.GenerationRequest{Prompt: "cells", Subject: "science", Grade: "6", IncludeAnswers: true, Language: "English"},
		Content:   content.Content{Title: "Cells", Explanation: "Cells are the units of life.", AnswerKey: content.Answers{"nucleus"}},
		CreatedAt: at,
	})
	require.NoError(t, err)
	var out ComposeAndSaveOutput
	require.NoError(t, val.Get(&out))
	require.Equal(t, "Cells_"+out.Artifact.ID+".pdf", out.Artifact.Filename)
	require.Equal(t, 2, out.Artifact.Pages)
	require.Len(t, out.ContentSHA256, 64)
	require.FileExists(t, out.Path)
}
