package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load reads the YAML file at path, applies environment overrides and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return parse(data)
}

// LoadOrDefault behaves like Load but tolerates a missing file, so a deployment
// can be configured from the environment alone.
func LoadOrDefault(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		data = nil
	}
	return parse(data)
}

func parse(data []byte) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := &Config{}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	setString(&c.LLM.APIKey, "GLM4_API_KEY")
	if strings.EqualFold(c.LLM.Provider, "gemini") {
		setString(&c.LLM.APIKey, "GEMINI_API_KEY")
	}
	setString(&c.LLM.Model, "LLM_MODEL")
	setString(&c.SpeechKit.APIKey, "SPEECHKIT_API_KEY")
	setString(&c.Storage.Bucket, "SPEECHKIT_BUCKET")

	setString(&c.Database.Host, "POSTGRES_HOST")
	setString(&c.Database.Name, "POSTGRES_DB")
	setString(&c.Database.User, "POSTGRES_USER")
	setString(&c.Database.Password, "POSTGRES_PASSWORD")
	if v := strings.TrimSpace(os.Getenv("POSTGRES_PORT")); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			c.Database.Port = port
		}
	}

	setString(&c.Paths.Summaries, "SUMMARIES_DIR")
	setString(&c.Paths.Recordings, "RECORDINGS_DIR")
	setString(&c.Telegram.BotToken, "TELEGRAM_BOT_TOKEN")
	setString(&c.Telegram.ChatID, "TELEGRAM_CHAT_ID")
	setString(&c.Logging.Level, "LOG_LEVEL")
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}
