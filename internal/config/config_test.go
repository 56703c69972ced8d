package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	// Clear the key probes so CI environments with keys set stay deterministic.
	for _, key := range []string{"OPENAI_API_KEY", "OPENAI_APIKEY", "OPENAI"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.AllowedOrigins != "*" {
		t.Errorf("AllowedOrigins = %q", cfg.Server.AllowedOrigins)
	}
	if cfg.Backend.APIKey != "" {
		t.Errorf("APIKey = %q, want empty", cfg.Backend.APIKey)
	}
	if len(cfg.Backend.FallbackModels) != 3 || cfg.Backend.FallbackModels[0] != "llama3.2:3b" {
		t.Errorf("FallbackModels = %v", cfg.Backend.FallbackModels)
	}
	if cfg.Tools.RequestTimeout != 10*time.Second {
		t.Errorf("RequestTimeout = %s", cfg.Tools.RequestTimeout)
	}
	if cfg.Export.OutputDir != "output" {
		t.Errorf("OutputDir = %q", cfg.Export.OutputDir)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("OPENAI_APIKEY", "alt-key")
	t.Setenv("OPENAI", "")
	t.Setenv("FALLBACK_MODELS", "mistral:7b, , phi3:mini")
	t.Setenv("TOOL_TIMEOUT_SECONDS", "30")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d", cfg.Server.Port)
	}
	// OPENAI_API_KEY is empty, so the next probe key wins.
	if cfg.Backend.APIKey != "alt-key" {
		t.Errorf("APIKey = %q", cfg.Backend.APIKey)
	}
	if len(cfg.Backend.FallbackModels) != 2 || cfg.Backend.FallbackModels[1] != "phi3:mini" {
		t.Errorf("FallbackModels = %v", cfg.Backend.FallbackModels)
	}
	if cfg.Tools.RequestTimeout != 30*time.Second {
		t.Errorf("RequestTimeout = %s", cfg.Tools.RequestTimeout)
	}
}

func TestLoadInvalidIntFallsBack(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d, want default on bad value", cfg.Server.Port)
	}
}
