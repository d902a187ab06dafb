package config

import (
	"fmt"
	"net/url"
	"strings"
)

type Config struct {
	LLM       LLMConfig       `yaml:"llm"`
	SpeechKit SpeechKitConfig `yaml:"speechkit"`
	Storage   StorageConfig   `yaml:"storage"`
	Database  DatabaseConfig  `yaml:"database"`
	FFmpeg    FFmpegConfig    `yaml:"ffmpeg"`
	Paths     PathsConfig     `yaml:"paths"`
	Telegram  TelegramConfig  `yaml:"telegram"`
	Logging   LoggingConfig   `yaml:"logging"`
	Export    ExportConfig    `yaml:"export"`
}

type LLMConfig struct {
	Provider string `yaml:"provider"` // "glm" or "gemini"
	Endpoint string `yaml:"endpoint"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"api_key"`
}

type SpeechKitConfig struct {
	APIKey         string `yaml:"api_key"`
	Language       string `yaml:"language"`
	RecognizeURL   string `yaml:"recognize_url"`
	LongRunningURL string `yaml:"long_running_url"`
	OperationURL   string `yaml:"operation_url"`
}

// StorageConfig describes the bucket used to hand large recordings to the
// asynchronous recognizer. An empty Bucket leaves the upload path unconfigured.
//
// SpeechKit only fetches audio from Yandex Object Storage links. Objects land in
// a Cloud Storage bucket, so against the default endpoints the long-audio path
// is rejected by SpeechKit until PublicBaseURL points at a mirror it accepts.
type StorageConfig struct {
	Bucket          string `yaml:"bucket"`
	CredentialsFile string `yaml:"credentials_file"`
	PublicBaseURL   string `yaml:"public_base_url"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type FFmpegConfig struct {
	BinaryPath string `yaml:"binary_path"`
	Bitrate    string `yaml:"bitrate"`
}

type PathsConfig struct {
	Summaries  string `yaml:"summaries"`
	Recordings string `yaml:"recordings"`
	Temp       string `yaml:"temp"`
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token"`
	ChatID   string `yaml:"chat_id"`
	APIBase  string `yaml:"api_base"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type ExportConfig struct {
	Docx bool `yaml:"docx"`
}

// DSN returns the postgres connection string for the configured database.
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     "/" + d.Name,
		RawQuery: "sslmode=" + d.SSLMode,
	}
	return u.String()
}

// Validate checks the config and fills defaults for everything left empty.
func (c *Config) Validate() error {
	if c.Paths.Summaries == "" {
		c.Paths.Summaries = "exports/summaries"
	}
	if c.Database.Host == "" {
		c.Database.Host = "localhost"
	}
	if c.Database.Name == "" {
		c.Database.Name = "n8n"
	}
	if c.Database.User == "" {
		c.Database.User = "n8n"
	}
	if c.Database.Port < 0 || c.Database.Port > 65535 {
		return fmt.Errorf("database.port out of range: %d", c.Database.Port)
	}

	switch strings.ToLower(c.LLM.Provider) {
	case "":
		c.LLM.Provider = "glm"
	case "glm", "gemini":
		c.LLM.Provider = strings.ToLower(c.LLM.Provider)
	default:
		return fmt.Errorf("llm.provider must be glm or gemini, got %q", c.LLM.Provider)
	}

	if c.LLM.Endpoint == "" && c.LLM.Provider == "glm" {
		c.LLM.Endpoint = "https://open.bigmodel.cn/api/paas/v4/chat/completions"
	}
	if c.LLM.Model == "" {
		if c.LLM.Provider == "gemini" {
			c.LLM.Model = "gemini-2.5-flash"
		} else {
			c.LLM.Model = "glm-4.7-flash"
		}
	}
	if c.SpeechKit.Language == "" {
		c.SpeechKit.Language = "ru-RU"
	}
	if c.SpeechKit.RecognizeURL == "" {
		c.SpeechKit.RecognizeURL = "https://stt.api.cloud.yandex.net/speech/v1/stt:recognize"
	}
	if c.SpeechKit.LongRunningURL == "" {
		c.SpeechKit.LongRunningURL = "https://transcribe.api.cloud.yandex.net/speech/stt/v2/longRunningRecognize"
	}
	if c.SpeechKit.OperationURL == "" {
		c.SpeechKit.OperationURL = "https://operation.api.cloud.yandex.net/operations"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.FFmpeg.Bitrate == "" {
		c.FFmpeg.Bitrate = "64k"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Telegram.APIBase == "" {
		c.Telegram.APIBase = "https://api.telegram.org"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	return nil
}

// RequireLLM reports whether the LLM credentials needed by summarize/digest are present.
func (c *Config) RequireLLM() error {
	if c.LLM.APIKey == "" {
		return fmt.Errorf("llm.api_key is required (set GLM4_API_KEY / GEMINI_API_KEY or pass -api-key)")
	}
	return nil
}

// RequireSpeechKit reports whether the speech-to-text key is present.
func (c *Config) RequireSpeechKit() error {
	if c.SpeechKit.APIKey == "" {
		return fmt.Errorf("speechkit.api_key is required (set SPEECHKIT_API_KEY or pass -key)")
	}
	return nil
}
