package main

import (
	"context"
	"fmt"
	"os"

	"meshmind/internal/activities"
	"meshmind/internal/app"
	"meshmind/internal/config"
	"meshmind/internal/logger"
	"meshmind/internal/workflows"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
)

func main() {
	_ = godotenv.Load(".env")
	cfg := config.Load()
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}

	a, err := app.New(context.Background(), cfg, log)
	if err != nil {
		log.Fatal("init app", "error", err)
	}
	defer a.Close()

	c, err := client.Dial(client.Options{HostPort: cfg.TemporalAddress})
	if err != nil {
		log.Fatal("dial temporal", "address", cfg.TemporalAddress, "error", err)
	}
	defer c.Close()

	w := worker.New(c, cfg.TemporalTaskQueue, worker.Options{})
	workflows.Register(w)
	activities.Register(w, activities.New(a.Service, a.Providers, a.Settings(), a.Recorder, a.Metrics))

	log.Info("meshmind worker listening",
		"address", cfg.TemporalAddress,
		"queue", cfg.TemporalTaskQueue,
		"llm_providers", cfg.LLMProviders,
	)
	if err := w.Run(worker.InterruptCh()); err != nil {
		log.Fatal("worker stopped", "error", err)
	}
}
