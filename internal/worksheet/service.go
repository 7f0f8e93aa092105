package worksheet

import (
	"context"
	"fmt"
	"time"

	"meshmind/internal/artifacts"
	"meshmind/internal/compose"
	"meshmind/internal/content"
	"meshmind/internal/curriculum"
	"meshmind/internal/generation"
	"meshmind/internal/logger"
	"meshmind/internal/metrics"
	"meshmind/internal/models"
	"meshmind/internal/util"

	"github.com/google/uuid"
)

const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// ContentGenerator is satisfied by *generation.Generator.
type ContentGenerator interface {
	Generate(ctx context.Context, in generation.Input) content.Result
}

type Deps struct {
	Curriculum      *curriculum.Store
	Generator       ContentGenerator
	Artifacts       *artifacts.Store
	Recorder        Recorder
	Metrics         *metrics.Metrics
	Log             *logger.Logger
	DefaultLanguage string
	Now             func() time.Time
}

// Service runs the worksheet pipeline in-process:
// assemble context, generate content, compose, save, audit.
type Service struct {
	curriculum      *curriculum.Store
	generator       ContentGenerator
	artifacts       *artifacts.Store
	recorder        Recorder
	metrics         *metrics.Metrics
	log             *logger.Logger
	defaultLanguage string
	now             func() time.Time
}

func NewService(d Deps) *Service {
	s := &Service{
		curriculum:      d.Curriculum,
		generator:       d.Generator,
		artifacts:       d.Artifacts,
		recorder:        d.Recorder,
		metrics:         d.Metrics,
		log:             d.Log,
		defaultLanguage: d.DefaultLanguage,
		now:             d.Now,
	}
	if s.recorder == nil {
		s.recorder = NopRecorder{}
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

func (s *Service) Artifacts() *artifacts.Store {
	return s.artifacts
}

// Prepare normalizes and validates a request.
func (s *Service) Prepare(req models.GenerationRequest) (models.GenerationRequest, error) {
	req = Normalize(req, s.defaultLanguage)
	return req, Validate(req)
}

func (s *Service) Generate(ctx context.Context, req models.GenerationRequest) (models.Worksheet, error) {
	req, err := s.Prepare(req)
	if err != nil {
		return models.Worksheet{}, err
	}
	run := NewRun(req, s.now())
	ctx = WithRunID(ctx, run.RunID)
	log := s.log.With("run_id", run.RunID, "subject", req.Subject, "grade", req.Grade)
	s.Record(ctx, run)

	grounding, err := s.AssembleContext(req.Prompt, req.Subject, req.Grade)
	if err != nil {
		return models.Worksheet{}, s.fail(ctx, run, "curriculum_error", err)
	}
	run.ContextChars = len(grounding)

	start := s.now()
	res := s.generator.Generate(ctx, generation.Input{
		Prompt:    req.Prompt,
		Subject:   req.Subject,
		Grade:     req.Grade,
		Language:  req.Language,
		Grounding: grounding,
	})
	s.metrics.ObserveStage("generate", s.now().Sub(start))
	c, err := res.Unwrap()
	if err != nil {
		return models.Worksheet{}, s.fail(ctx, run, "generation_failed", fmt.Errorf("%w: %s", ErrGenerationFailed, res.Reason()))
	}

	ws, err := s.ComposeAndSave(req, c, run.CreatedAt)
	if err != nil {
		return models.Worksheet{}, s.fail(ctx, run, "compose_failed", err)
	}
	ws.Context = grounding

	run.Status = StatusCompleted
	run.ArtifactID = ws.Artifact.ID
	run.Filename = ws.Artifact.Filename
	run.ContentSHA256 = util.SHA256Hex(ws.PDF)
	s.Record(ctx, run)
	s.metrics.ObserveWorksheet(req.Subject, "ok", len(ws.PDF))
	log.Info("worksheet generated", "pdf_id", ws.Artifact.ID, "pages", ws.Artifact.Pages, "bytes", len(ws.PDF))
	return ws, nil
}

// AssembleContext builds the grounding text and records which kind it was.
func (s *Service) AssembleContext(prompt, subject, grade string) (string, error) {
	start := s.now()
	snap, err := s.curriculum.Snapshot()
	if err != nil {
		return "", fmt.Errorf("load curriculum: %w", err)
	}
	text := snap.Assemble(prompt, subject, grade)
	s.metrics.ObserveStage("context", s.now().Sub(start))
	s.metrics.ObserveContext(subject, contextKind(snap, subject, grade))
	return text, nil
}

// ComposeAndSave renders content and stores the PDF. Nothing is written when
// composition fails.
func (s *Service) ComposeAndSave(req models.GenerationRequest, c content.Content, at time.Time) (models.Worksheet, error) {
	start := s.now()
	pdf, err := compose.Compose(c, compose.Options{
		Subject:        req.Subject,
		Grade:          req.Grade,
		IncludeAnswers: req.IncludeAnswers,
		Language:       req.Language,
		GeneratedAt:    at,
	})
	s.metrics.ObserveStage("compose", s.now().Sub(start))
	if err != nil {
		return models.Worksheet{}, fmt.Errorf("%w: %v", ErrCompose, err)
	}

	id := artifacts.NewID()
	title := c.TitleOr(generation.DefaultTitle(req.Subject))
	filename := artifacts.Filename(title, id)
	path, err := s.artifacts.Save(pdf, filename)
	if err != nil {
		return models.Worksheet{}, err
	}
	pages, err := artifacts.PageCount(pdf)
	if err != nil {
		s.log.Warn("read back page count failed", "pdf_id", id, "error", err)
	}
	return models.Worksheet{
		Artifact: models.ArtifactRecord{
			ID:        id,
			Filename:  filename,
			Title:     title,
			Subject:   req.Subject,
			Grade:     req.Grade,
			CreatedAt: at,
			SizeBytes: int64(len(pdf)),
			Pages:     pages,
		},
		Path: path,
		PDF:  pdf,
	}, nil
}

func NewRun(req models.GenerationRequest, at time.Time) models.GenerationRun {
	return models.GenerationRun{
		RunID:          uuid.NewString(),
		Prompt:         req.Prompt,
		Subject:        req.Subject,
		Grade:          req.Grade,
		Language:       req.Language,
		IncludeAnswers: req.IncludeAnswers,
		Status:         StatusRunning,
		CreatedAt:      at,
	}
}

func (s *Service) Record(ctx context.Context, run models.GenerationRun) {
	if err := s.recorder.RecordRun(ctx, run); err != nil {
		s.log.Warn("record generation run failed", "run_id", run.RunID, "error", err)
	}
}

func (s *Service) fail(ctx context.Context, run models.GenerationRun, outcome string, err error) error {
	run.Status = StatusFailed
	run.FailReason = err.Error()
	s.Record(ctx, run)
	s.metrics.ObserveWorksheet(run.Subject, outcome, 0)
	s.log.Error("worksheet generation failed", "run_id", run.RunID, "outcome", outcome, "error", err)
	return err
}

func contextKind(snap *curriculum.Snapshot, subject, grade string) string {
	if _, ok := snap.Lookup(subject, curriculum.NormalizeGrade(grade)); ok {
		return "grounded"
	}
	if snap.HasSubject(subject) {
		return "fallback"
	}
	return "empty"
}
