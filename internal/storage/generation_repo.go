package storage

import (
	"context"
	"fmt"

	"meshmind/internal/models"
	"meshmind/internal/util"
)

type GenerationRepo struct {
	db *DB
}

func NewGenerationRepo(db *DB) *GenerationRepo {
	return &GenerationRepo{db: db}
}

// Upsert records a run; repeated calls with the same run id overwrite the outcome
// so retried workflow activities stay idempotent.
func (r *GenerationRepo) Upsert(ctx context.Context, run models.GenerationRun) error {
	_, err := r.db.Pool.Exec(ctx, `
INSERT INTO generation_runs (run_id, prompt, subject, grade, language, include_answers, status, fail_reason, artifact_id, filename, content_sha256, context_chars, created_at)
VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, NULLIF($8,''), NULLIF($9,''), NULLIF($10,''), NULLIF($11,''), $12, $13)
ON CONFLICT (run_id) DO UPDATE SET
    status = EXCLUDED.status,
    fail_reason = EXCLUDED.fail_reason,
    artifact_id = EXCLUDED.artifact_id,
    filename = EXCLUDED.filename,
    content_sha256 = EXCLUDED.content_sha256,
    context_chars = EXCLUDED.context_chars`,
		run.RunID, util.SanitizeText(run.Prompt), run.Subject, run.Grade, run.Language, run.IncludeAnswers,
		run.Status, util.SanitizeText(run.FailReason), run.ArtifactID, run.Filename, run.ContentSHA256, run.ContextChars, run.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert generation run: %w", err)
	}
	return nil
}

// FindByArtifact returns the run that produced an artifact.
func (r *GenerationRepo) FindByArtifact(ctx context.Context, artifactID string) (models.GenerationRun, error) {
	var run models.GenerationRun
	err := r.db.Pool.QueryRow(ctx, `
SELECT run_id::text, prompt, subject, grade, language, include_answers, status, COALESCE(fail_reason,''),
       COALESCE(artifact_id,''), COALESCE(filename,''), COALESCE(content_sha256,''), context_chars, created_at
FROM generation_runs WHERE artifact_id=$1 ORDER BY created_at DESC LIMIT 1`, artifactID).Scan(
		&run.RunID, &run.Prompt, &run.Subject, &run.Grade, &run.Language, &run.IncludeAnswers, &run.Status, &run.FailReason,
		&run.ArtifactID, &run.Filename, &run.ContentSHA256, &run.ContextChars, &run.CreatedAt)
	if err != nil {
		return models.GenerationRun{}, fmt.Errorf("get generation run: %w", err)
	}
	return run, nil
}
