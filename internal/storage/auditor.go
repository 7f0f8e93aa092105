package storage

import (
	"context"

	"meshmind/internal/models"
)

// Auditor records pipeline runs and provider calls in postgres.
type Auditor struct {
	runs  *GenerationRepo
	calls *LLMAuditRepo
}

func NewAuditor(db *DB) *Auditor {
	return &Auditor{runs: NewGenerationRepo(db), calls: NewLLMAuditRepo(db)}
}

func (a *Auditor) RecordRun(ctx context.Context, run models.GenerationRun) error {
	return a.runs.Upsert(ctx, run)
}

func (a *Auditor) RecordLLMCall(ctx context.Context, call models.LLMCall) error {
	return a.calls.Insert(ctx, call)
}
