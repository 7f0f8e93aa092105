package config

import (
	"os"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	ExecutionInline   = "inline"
	ExecutionTemporal = "temporal"
)

type Config struct {
	APIAddr              string
	LogMode              string
	Execution            string
	TemporalAddress      string
	TemporalTaskQueue    string
	PostgresURL          string
	PDFStorageDir        string
	CurriculumDir        string
	LLMProviders         string
	ProviderCooldownSecs int
	MaxTokens            int
	Temperature          float64
	DefaultLanguage      string
}

func Load() Config {
	return Config{
		APIAddr:              getenv("MESHMIND_API_ADDR", ":8000"),
		LogMode:              getenv("MESHMIND_LOG_MODE", "dev"),
		Execution:            strings.ToLower(getenv("MESHMIND_EXECUTION", ExecutionInline)),
		TemporalAddress:      getenv("MESHMIND_TEMPORAL_ADDRESS", "localhost:7233"),
		TemporalTaskQueue:    getenv("MESHMIND_TEMPORAL_TASK_QUEUE", "meshmind"),
		PostgresURL:          getenv("MESHMIND_POSTGRES_URL", ""),
		PDFStorageDir:        getenv("MESHMIND_PDF_STORAGE_DIR", "./generated_pdfs"),
		CurriculumDir:        getenv("MESHMIND_CURRICULUM_DIR", ""),
		LLMProviders:         getenv("MESHMIND_LLM_PROVIDERS", "mock"),
		ProviderCooldownSecs: getenvInt("MESHMIND_PROVIDER_COOLDOWN_SECONDS", 300),
		MaxTokens:            getenvInt("MESHMIND_MAX_TOKENS", 4000),
		Temperature:          getenvFloat("MESHMIND_TEMPERATURE", 0.7),
		DefaultLanguage:      getenv("MESHMIND_DEFAULT_LANGUAGE", "English"),
	}
}

// Validate reports configuration that would make the binaries misbehave at runtime.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.APIAddr, validation.Required),
		validation.Field(&c.LogMode, validation.In("dev", "development", "prod", "production")),
		validation.Field(&c.Execution, validation.Required, validation.In(ExecutionInline, ExecutionTemporal)),
		validation.Field(&c.TemporalTaskQueue, validation.When(c.Execution == ExecutionTemporal, validation.Required)),
		validation.Field(&c.PDFStorageDir, validation.Required),
		validation.Field(&c.MaxTokens, validation.Required, validation.Min(1)),
		validation.Field(&c.Temperature, validation.Min(0.0), validation.Max(2.0)),
	)
}

// AuditEnabled is true when a postgres DSN is configured.
func (c Config) AuditEnabled() bool {
	return strings.TrimSpace(c.PostgresURL) != ""
}

func getenv(k, fallback string) string {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	return v
}

func getenvInt(k string, fallback int) int {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getenvFloat(k string, fallback float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
