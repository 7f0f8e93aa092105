package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"meshmind/internal/api"
	"meshmind/internal/app"
	"meshmind/internal/config"
	"meshmind/internal/logger"
	"meshmind/internal/workflows"

	"github.com/joho/godotenv"
	tclient "go.temporal.io/sdk/client"
)

func main() {
	_ = godotenv.Load(".env")
	cfg := config.Load()
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("init app", "error", err)
	}
	defer a.Close()

	var gen api.Generator = a.Service
	if cfg.Execution == config.ExecutionTemporal {
		c, err := tclient.Dial(tclient.Options{HostPort: cfg.TemporalAddress})
		if err != nil {
			log.Fatal("dial temporal", "address", cfg.TemporalAddress, "error", err)
		}
		defer c.Close()
		gen = workflows.NewDispatcher(c, cfg.TemporalTaskQueue, a.Service, a.Providers, cfg.ProviderCooldownSecs)
	}

	srv := &http.Server{
		Addr: cfg.APIAddr,
		Handler: api.NewServer(api.Deps{
			Generator:  gen,
			Artifacts:  a.Artifacts,
			Curriculum: a.Curriculum,
			Providers:  a.Providers,
			Metrics:    a.Metrics,
			Log:        log,
			Execution:  cfg.Execution,
		}).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("meshmind api listening",
		"addr", cfg.APIAddr,
		"execution", cfg.Execution,
		"llm_providers", cfg.LLMProviders,
		"pdf_storage_dir", cfg.PDFStorageDir,
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("api server stopped", "error", err)
	}
}
