package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GLM4_API_KEY", "GEMINI_API_KEY", "LLM_MODEL", "SPEECHKIT_API_KEY", "SPEECHKIT_BUCKET",
		"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_DB", "POSTGRES_USER", "POSTGRES_PASSWORD",
		"SUMMARIES_DIR", "RECORDINGS_DIR", "TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func validConfig() Config {
	return Config{
		Database: DatabaseConfig{Host: "localhost", Name: "n8n", User: "n8n"},
		Paths:    PathsConfig{Summaries: "exports/summaries"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid config", func(c *Config) {}, false},
		{"empty config", func(c *Config) { *c = Config{} }, false},
		{"bad port", func(c *Config) { c.Database.Port = 70000 }, true},
		{"gemini provider", func(c *Config) { c.LLM.Provider = "Gemini" }, false},
		{"unknown provider", func(c *Config) { c.LLM.Provider = "ollama" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}

	if cfg.LLM.Provider != "glm" {
		t.Errorf("Provider = %q, want glm", cfg.LLM.Provider)
	}
	if cfg.LLM.Model != "glm-4.7-flash" {
		t.Errorf("Model = %q, want glm-4.7-flash", cfg.LLM.Model)
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("Port = %d, want 5432", cfg.Database.Port)
	}
	if cfg.SpeechKit.Language != "ru-RU" {
		t.Errorf("Language = %q, want ru-RU", cfg.SpeechKit.Language)
	}
	if cfg.FFmpeg.BinaryPath != "ffmpeg" {
		t.Errorf("BinaryPath = %q, want ffmpeg", cfg.FFmpeg.BinaryPath)
	}

	gem := validConfig()
	gem.LLM.Provider = "gemini"
	if err := gem.Validate(); err != nil {
		t.Fatal(err)
	}
	if gem.LLM.Model != "gemini-2.5-flash" {
		t.Errorf("gemini Model = %q", gem.LLM.Model)
	}
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5433, Name: "n8n", User: "n8n", Password: "p@ss", SSLMode: "disable"}
	want := "postgres://n8n:p%40ss@db:5433/n8n?sslmode=disable"
	if got := d.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}

func TestLoad(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
llm:
  provider: "glm"
  model: "glm-4.7-flash"
  api_key: "file-key"

database:
  host: "localhost"
  name: "n8n"
  user: "n8n"

paths:
  summaries: "exports/summaries"
  recordings: "recordings"

logging:
  level: "debug"
  format: "text"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LLM.APIKey != "file-key" {
		t.Errorf("APIKey = %v, want file-key", cfg.LLM.APIKey)
	}
	if cfg.Paths.Recordings != "recordings" {
		t.Errorf("Recordings = %v, want recordings", cfg.Paths.Recordings)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %v, want debug", cfg.Logging.Level)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("POSTGRES_HOST", "pg.internal")
	t.Setenv("POSTGRES_PORT", "6543")
	t.Setenv("POSTGRES_DB", "crm")
	t.Setenv("POSTGRES_USER", "bot")
	t.Setenv("SUMMARIES_DIR", "/srv/summaries")
	t.Setenv("GLM4_API_KEY", "env-key")

	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadOrDefault() error = %v", err)
	}
	if cfg.Database.Host != "pg.internal" || cfg.Database.Port != 6543 {
		t.Errorf("database = %+v", cfg.Database)
	}
	if cfg.LLM.APIKey != "env-key" {
		t.Errorf("APIKey = %q, want env-key", cfg.LLM.APIKey)
	}
	if err := cfg.RequireSpeechKit(); err == nil {
		t.Error("RequireSpeechKit() should fail without a key")
	}
	if err := cfg.RequireLLM(); err != nil {
		t.Errorf("RequireLLM() error = %v", err)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}

func TestValidateEmptyUsesDefaults(t *testing.T) {
	var cfg Config
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if cfg.Paths.Summaries != "exports/summaries" {
		t.Errorf("Summaries = %q", cfg.Paths.Summaries)
	}
	if cfg.Database.Host != "localhost" || cfg.Database.Name != "n8n" || cfg.Database.User != "n8n" {
		t.Errorf("database = %+v", cfg.Database)
	}
	if cfg.Telegram.APIBase != "https://api.telegram.org" {
		t.Errorf("APIBase = %q", cfg.Telegram.APIBase)
	}
}
