// Package main is the meshmind command line. It runs the worksheet pipeline
// without the HTTP server, against the same configuration.
package main

import (
	"context"
	"fmt"
	"os"

	"meshmind/internal/app"
	"meshmind/internal/config"
	"meshmind/internal/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "meshmind",
	Short: "Generate curriculum-grounded worksheet PDFs",
	Long: `meshmind builds printable math and science worksheets. The curriculum
context, language model call and PDF composition that back the HTTP API are
available here as subcommands.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envFile, _ := cmd.Flags().GetString("env-file")
		if envFile != "" {
			_ = godotenv.Load(envFile)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("env-file", ".env", "dotenv file loaded before reading configuration")
	rootCmd.PersistentFlags().String("storage-dir", "", "override MESHMIND_PDF_STORAGE_DIR")
}

// loadApp reads configuration after flags are parsed and wires the pipeline.
func loadApp(cmd *cobra.Command) (*app.App, error) {
	cfg := config.Load()
	if dir, _ := cmd.Flags().GetString("storage-dir"); dir != "" {
		cfg.PDFStorageDir = dir
	}
	// The CLI always runs the pipeline in-process.
	cfg.Execution = config.ExecutionInline
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return app.New(cmd.Context(), cfg, log)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
