package activities

import (
	"time"

	"meshmind/internal/content"
	"meshmind/internal/generation"
	"meshmind/internal/models"
)

type AssembleContextInput struct {
	Prompt  string `json:"prompt"`
	Subject string `json:"subject"`
	Grade   string `json:"grade"`
}

type AssembleContextOutput struct {
	Context string `json:"context"`
}

type LLMGenerateInput struct {
	RunID         string           `json:"run_id"`
	Input         generation.Input `json:"input"`
	ProviderIndex int              `json:"provider_index"`
}

// LLMGenerateOutput carries decoded content; unusable model output is an
// activity error so the workflow can fail over.
type LLMGenerateOutput struct {
	Content      content.Content `json:"content"`
	ProviderName string          `json:"provider_name"`
	Model        string          `json:"model"`
	Key          string          `json:"key"`
	LatencyMS    int64           `json:"latency_ms"`
}

type ComposeAndSaveInput struct {
	Request   models.GenerationRequest `json:"request"`
	Content   content.Content          `json:"content"`
	CreatedAt time.Time                `json:"created_at"`
}

type ComposeAndSaveOutput struct {
	Artifact      models.ArtifactRecord `json:"artifact"`
	Path          string                `json:"path"`
	ContentSHA256 string                `json:"content_sha256"`
}

type RecordRunInput struct {
	Run models.GenerationRun `json:"run"`
}

type LogLLMCallInput struct {
	Call models.LLMCall `json:"call"`
}
