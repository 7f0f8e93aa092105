package app

import (
	"context"
	"fmt"
	"time"

	"meshmind/internal/artifacts"
	"meshmind/internal/config"
	"meshmind/internal/curriculum"
	"meshmind/internal/generation"
	"meshmind/internal/logger"
	"meshmind/internal/metrics"
	"meshmind/internal/providers"
	"meshmind/internal/storage"
	"meshmind/internal/worksheet"
)

// App holds the collaborators shared by the api server, the Temporal worker
// and the CLI.
type App struct {
	Cfg        config.Config
	Log        *logger.Logger
	Curriculum *curriculum.Store
	Artifacts  *artifacts.Store
	Providers  *providers.Manager
	Metrics    *metrics.Metrics
	Recorder   worksheet.Recorder
	Generator  *generation.Generator
	Service    *worksheet.Service

	db *storage.DB
}

func New(ctx context.Context, cfg config.Config, log *logger.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if log == nil {
		log = logger.Nop()
	}

	store, err := artifacts.New(cfg.PDFStorageDir)
	if err != nil {
		return nil, err
	}
	pm, err := providers.NewManager(cfg.LLMProviders)
	if err != nil {
		return nil, fmt.Errorf("init providers: %w", err)
	}
	if !pm.HasRealProvider() {
		log.Warn("no real llm provider configured; using mock content")
	}

	a := &App{
		Cfg:        cfg,
		Log:        log,
		Curriculum: curriculum.NewStore(curriculum.Source(cfg.CurriculumDir), curriculum.DefaultSubjects...),
		Artifacts:  store,
		Providers:  pm,
		Metrics:    metrics.New(),
		Recorder:   worksheet.NopRecorder{},
	}

	if cfg.AuditEnabled() {
		dbCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		db, err := storage.NewDB(dbCtx, cfg.PostgresURL)
		if err != nil {
			return nil, err
		}
		if err := db.EnsureSchema(dbCtx); err != nil {
			db.Close()
			return nil, err
		}
		a.db = db
		a.Recorder = storage.NewAuditor(db)
		log.Info("generation audit enabled")
	}

	a.Generator = generation.New(pm, a.Settings(), log,
		generation.WithMetrics(a.Metrics),
		generation.WithCallObserver(worksheet.AuditCalls(a.Recorder, log)),
	)
	a.Service = worksheet.NewService(worksheet.Deps{
		Curriculum:      a.Curriculum,
		Generator:       a.Generator,
		Artifacts:       store,
		Recorder:        a.Recorder,
		Metrics:         a.Metrics,
		Log:             log,
		DefaultLanguage: cfg.DefaultLanguage,
	})
	return a, nil
}

func (a *App) Settings() generation.Settings {
	return generation.Settings{
		Temperature: a.Cfg.Temperature,
		MaxTokens:   a.Cfg.MaxTokens,
		Cooldown:    time.Duration(a.Cfg.ProviderCooldownSecs) * time.Second,
	}
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.db != nil {
		a.db.Close()
		a.db = nil
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
