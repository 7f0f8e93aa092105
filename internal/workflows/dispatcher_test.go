package workflows

import (
	"errors"
	"testing"

	"meshmind/internal/activities"
	"meshmind/internal/worksheet"

	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/temporal"
)

func TestMapWorkflowError(t *testing.T) {
	gen := temporal.NewNonRetryableApplicationError("content generation failed: quota", ErrTypeGenerationFailed, nil)
	require.ErrorIs(t, mapWorkflowError(gen), worksheet.ErrGenerationFailed)

	comp := temporal.NewNonRetryableApplicationError("render pdf: boom", activities.ErrTypeCompose, nil)
	require.ErrorIs(t, mapWorkflowError(comp), worksheet.ErrCompose)

	other := mapWorkflowError(errors.New("deadline"))
	require.False(t, errors.Is(other, worksheet.ErrGenerationFailed))
	require.Contains(t, other.Error(), "worksheet workflow")
}
