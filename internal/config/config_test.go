package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaultsAndEnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://mindwell:secret@db:5432/mindwell?sslmode=disable")
	t.Setenv("GENERATION_API_KEY", "env-key")
	t.Setenv("INTENSITY_SCORING", "true")

	path := writeConfig(t, `
port: "8090"
storageBackend: "postgres"
sessionBackend: "redis"
redisAddr: "localhost:6379"
provider: "openai-compat"
generationAPIKey: "file-key"
generationModel: "llama-3.1-8b-instant"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.DatabaseURL != "postgres://mindwell:secret@db:5432/mindwell?sslmode=disable" {
		t.Errorf("databaseURL = %q, env override lost", cfg.DatabaseURL)
	}
	if cfg.GenerationAPIKey != "env-key" {
		t.Errorf("generationAPIKey = %q, want env override", cfg.GenerationAPIKey)
	}
	if !cfg.IntensityScoring {
		t.Error("intensityScoring = false, want env override true")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("logLevel = %q, want default info", cfg.LogLevel)
	}
	if cfg.ReplyWindow != 20 || cfg.ClassifyTurns != 6 {
		t.Errorf("windows = %d/%d, want defaults 20/6", cfg.ReplyWindow, cfg.ClassifyTurns)
	}
	if cfg.SessionTTLMinutes != 60*24 {
		t.Errorf("sessionTTLMinutes = %d, want default", cfg.SessionTTLMinutes)
	}
}

func TestLoadMemoryBackendNeedsNoDatabase(t *testing.T) {
	path := writeConfig(t, `
port: "8090"
jwtSecret: "0123456789abcdef0123456789abcdef"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StorageBackend != "memory" {
		t.Errorf("storageBackend = %q, want default memory", cfg.StorageBackend)
	}
	if cfg.SessionBackend != "jwt" {
		t.Errorf("sessionBackend = %q, want default jwt", cfg.SessionBackend)
	}
}

func TestValidateConfigRejections(t *testing.T) {
	base := FileConfig{
		Port:           "8090",
		LogLevel:       "info",
		StorageBackend: "memory",
		SessionBackend: "jwt",
		JWTSecret:      strings.Repeat("x", 32),
	}
	tests := []struct {
		name   string
		mutate func(*FileConfig)
	}{
		{"missing port", func(c *FileConfig) { c.Port = "" }},
		{"bad log level", func(c *FileConfig) { c.LogLevel = "verbose" }},
		{"unknown storage backend", func(c *FileConfig) { c.StorageBackend = "sqlite" }},
		{"file backend without dataDir", func(c *FileConfig) { c.StorageBackend = "file" }},
		{"postgres without databaseURL", func(c *FileConfig) { c.StorageBackend = "postgres" }},
		{"redis sessions without addr", func(c *FileConfig) { c.SessionBackend = "redis" }},
		{"short jwt secret", func(c *FileConfig) { c.JWTSecret = "short" }},
		{"unknown provider", func(c *FileConfig) { c.Provider = "bard" }},
		{"provider without api key", func(c *FileConfig) { c.Provider = "openai-compat"; c.GenerationModel = "m" }},
		{"provider without model", func(c *FileConfig) { c.Provider = "ollama" }},
		{"negative rate limit", func(c *FileConfig) { c.ChatRateLimitPerMinute = -1 }},
		{"rate limit without redis", func(c *FileConfig) { c.ChatRateLimitPerMinute = 10 }},
		{"minio endpoint without credentials", func(c *FileConfig) { c.MinioEndpoint = "minio:9000" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			if err := validateConfig(cfg); err == nil {
				t.Fatal("validateConfig() expected error")
			}
		})
	}
}
