package models

import "time"

// GenerationRequest is the public request for one worksheet.
type GenerationRequest struct {
	Prompt         string `json:"prompt"`
	Subject        string `json:"subject"`
	Grade          string `json:"grade"`
	IncludeAnswers bool   `json:"include_answers"`
	Language       string `json:"language,omitempty"`
}

// ArtifactRecord describes a stored worksheet PDF. Title and ID are recovered from
// the filename; there is no separate index.
type ArtifactRecord struct {
	ID        string    `json:"pdf_id"`
	Filename  string    `json:"filename"`
	Title     string    `json:"title"`
	Subject   string    `json:"subject,omitempty"`
	Grade     string    `json:"grade,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	SizeBytes int64     `json:"file_size_bytes"`
	Pages     int       `json:"pages,omitempty"`
}

// Worksheet is the outcome of a successful pipeline run.
type Worksheet struct {
	Artifact ArtifactRecord `json:"artifact"`
	Path     string         `json:"path"`
	PDF      []byte         `json:"-"`
	Context  string         `json:"context,omitempty"`
}

// GenerationRun is one audited pipeline run.
type GenerationRun struct {
	RunID          string    `json:"run_id"`
	Prompt         string    `json:"prompt"`
	Subject        string    `json:"subject"`
	Grade          string    `json:"grade"`
	Language       string    `json:"language"`
	IncludeAnswers bool      `json:"include_answers"`
	Status         string    `json:"status"`
	FailReason     string    `json:"fail_reason,omitempty"`
	ArtifactID     string    `json:"artifact_id,omitempty"`
	Filename       string    `json:"filename,omitempty"`
	ContentSHA256  string    `json:"content_sha256,omitempty"`
	ContextChars   int       `json:"context_chars"`
	CreatedAt      time.Time `json:"created_at"`
}

// LLMCall is one audited provider attempt.
type LLMCall struct {
	RunID     string `json:"run_id"`
	Operation string `json:"operation"`
	Provider  string `json:"provider"`
	Model     string `json:"model"`
	Key       string `json:"key"`
	Status    string `json:"status"`
	ErrorType string `json:"error_type,omitempty"`
	LatencyMS int64  `json:"latency_ms"`
}
