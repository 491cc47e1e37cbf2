package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDoesNotInjectWeakAuthDefaults(t *testing.T) {
	t.Setenv("AUTH_SECRET", "")
	t.Setenv("MANAGER_PIN", "")

	cfg := Load()
	if cfg.AuthSecret != "" {
		t.Fatalf("expected empty AUTH_SECRET when unset, got %q", cfg.AuthSecret)
	}
	if cfg.ManagerPIN != "" {
		t.Fatalf("expected empty MANAGER_PIN when unset, got %q", cfg.ManagerPIN)
	}
}

func TestLoadFallsBackOnInvalidNumbers(t *testing.T) {
	t.Setenv("GENIE_CACHE_TTL_SECONDS", "soon")
	t.Setenv("ACCESS_TOKEN_TTL_MINUTES", "-5")
	t.Setenv("GEMINI_MODEL", "")
	t.Setenv("LOG_PRETTY", "1")

	cfg := Load()
	if cfg.GenieCacheTTLSeconds != 600 {
		t.Fatalf("expected default genie ttl, got %d", cfg.GenieCacheTTLSeconds)
	}
	if cfg.AccessTokenTTLMinutes != 480 {
		t.Fatalf("expected default token ttl, got %d", cfg.AccessTokenTTLMinutes)
	}
	if cfg.GeminiModel != "gemini-2.0-flash" {
		t.Fatalf("expected default model, got %q", cfg.GeminiModel)
	}
	if !cfg.LogPretty {
		t.Fatalf("expected pretty logging to be enabled")
	}
}

func TestLoadPromptConfig(t *testing.T) {
	cfg, err := LoadPromptConfig("")
	if err != nil || cfg != (PromptConfig{}) {
		t.Fatalf("expected zero config for empty path, got %+v / %v", cfg, err)
	}

	path := filepath.Join(t.TempDir(), "genie.yaml")
	content := "system_instruction: Be brief.\nlanguage: Filipino\ntemperature: 0.3\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write prompt config: %v", err)
	}
	cfg, err = LoadPromptConfig(path)
	if err != nil {
		t.Fatalf("load prompt config: %v", err)
	}
	if cfg.SystemInstruction != "Be brief." || cfg.Language != "Filipino" || cfg.Temperature != 0.3 {
		t.Fatalf("unexpected prompt config: %+v", cfg)
	}

	if _, err := LoadPromptConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
