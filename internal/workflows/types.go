package workflows

import "meshmind/internal/models"

type WorksheetInput struct {
	RunID           string                   `json:"run_id"`
	Request         models.GenerationRequest `json:"request"`
	LLMProviders    int                      `json:"llm_providers"`
	ProviderOrder   []int                    `json:"provider_order,omitempty"`
	CooldownSeconds int                      `json:"cooldown_seconds"`
}

type WorksheetResult struct {
	RunID    string                `json:"run_id"`
	Artifact models.ArtifactRecord `json:"artifact"`
	Path     string                `json:"path"`
	Context  string                `json:"context"`
	Provider string                `json:"provider"`
}

type WorksheetProgress struct {
	RunID       string `json:"run_id"`
	CurrentStep string `json:"current_step"`
	Attempts    int    `json:"attempts"`
	Provider    string `json:"provider,omitempty"`
	LastError   string `json:"last_error,omitempty"`
}
