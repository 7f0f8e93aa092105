package storage

import (
	"context"
	"fmt"

	"meshmind/internal/models"
)

type LLMAuditRepo struct {
	db *DB
}

func NewLLMAuditRepo(db *DB) *LLMAuditRepo {
	return &LLMAuditRepo{db: db}
}

func (r *LLMAuditRepo) Insert(ctx context.Context, rec models.LLMCall) error {
	_, err := r.db.Pool.Exec(ctx, `
INSERT INTO llm_calls(run_id, operation, provider, model, key_alias, status, error_type, latency_ms)
VALUES (NULLIF($1,'')::uuid, $2, $3, $4, $5, $6, NULLIF($7,''), $8)`,
		rec.RunID, rec.Operation, rec.Provider, rec.Model, rec.Key, rec.Status, rec.ErrorType, rec.LatencyMS)
	if err != nil {
		return fmt.Errorf("insert llm call: %w", err)
	}
	return nil
}
