// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by backends that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "content-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// Provider names a text-generation backend.
type Provider string

const (
	ProviderGemini   Provider = "gemini"
	ProviderOpenAI   Provider = "openai"
	ProviderDeepSeek Provider = "deepseek"
)

// AIConfig holds settings for the text-generation backend.
type AIConfig struct {
	HTTPConfig `yaml:",inline"`

	// Provider selects the backend: gemini, openai, or deepseek.
	Provider Provider `json:"provider" yaml:"provider"`

	// Model is the model identifier (e.g. "gemini-2.0-flash").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the provider.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// BaseURL overrides the provider endpoint. Required for deepseek.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// MaxRetries is the number of retry attempts for failed calls (default 0).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// Temperature is the sampling temperature for article calls. Zero leaves
	// the provider default in place.
	Temperature float64 `json:"temperature,omitempty" yaml:"temperature,omitempty"`

	// MaxTokens caps the output of article calls. Zero leaves the provider default.
	MaxTokens int `json:"max_tokens,omitempty" yaml:"max_tokens,omitempty"`
}

// ExportConfig holds settings for document export.
type ExportConfig struct {
	// OutputDir is where exported files are written (default "output/exports").
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Formats lists the formats the export command writes when --format is
	// not given.
	Formats []string `json:"formats" yaml:"formats"`

	// CompressPDF enables stream compression in generated PDFs (default true).
	CompressPDF bool `json:"compress_pdf" yaml:"compress_pdf"`
}

// StoreConfig holds settings for the generation history database.
type StoreConfig struct {
	// Dir is the directory containing history.db (default "data").
	Dir string `json:"dir" yaml:"dir"`

	// Disabled turns off persistence of generations.
	Disabled bool `json:"disabled" yaml:"disabled"`
}

// ServerConfig holds settings for the HTTP API.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr"`

	// RequestTimeout bounds each generation request (default 60s).
	RequestTimeout time.Duration `json:"request_timeout" yaml:"request_timeout"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default "info").
	Level string `json:"level" yaml:"level"`

	// File enables rotating file output when set.
	File string `json:"file,omitempty" yaml:"file,omitempty"`

	MaxSizeMB  int `json:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int `json:"max_backups" yaml:"max_backups"`
	MaxAgeDays int `json:"max_age_days" yaml:"max_age_days"`
}

// Config groups all settings for the CLI and server.
type Config struct {
	AI     AIConfig     `json:"ai" yaml:"ai"`
	Export ExportConfig `json:"export" yaml:"export"`
	Store  StoreConfig  `json:"store" yaml:"store"`
	Server ServerConfig `json:"server" yaml:"server"`
	Log    LogConfig    `json:"log" yaml:"log"`
}
