package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MESHMIND_EXECUTION", "")
	t.Setenv("MESHMIND_MAX_TOKENS", "")
	cfg := Load()
	if cfg.Execution != ExecutionInline {
		t.Fatalf("expected inline execution, got %q", cfg.Execution)
	}
	if cfg.MaxTokens != 4000 {
		t.Fatalf("expected 4000 max tokens, got %d", cfg.MaxTokens)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if cfg.AuditEnabled() {
		t.Fatalf("audit should be disabled without a postgres url")
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("MESHMIND_EXECUTION", "TEMPORAL")
	t.Setenv("MESHMIND_TEMPERATURE", "0.2")
	t.Setenv("MESHMIND_MAX_TOKENS", "not-a-number")
	cfg := Load()
	if cfg.Execution != ExecutionTemporal {
		t.Fatalf("expected temporal execution, got %q", cfg.Execution)
	}
	if cfg.Temperature != 0.2 {
		t.Fatalf("expected temperature 0.2, got %v", cfg.Temperature)
	}
	if cfg.MaxTokens != 4000 {
		t.Fatalf("bad int should fall back to default, got %d", cfg.MaxTokens)
	}
}

func TestValidateRejectsUnknownExecution(t *testing.T) {
	cfg := Load()
	cfg.Execution = "batch"
	if err := cfg.Validate(); err == nil {
		t.Fatal("unknown execution mode should fail validation")
	}
}
