// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config resolves the content-engine configuration from defaults, a
// YAML config file, CONTENT_ENGINE_* environment variables, a .env file, and
// the .secrets/ directory.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/pdiddy/content-engine/internal/export"
	"github.com/pdiddy/content-engine/internal/logging"
	"github.com/pdiddy/content-engine/internal/secrets"
	"github.com/pdiddy/content-engine/pkg/types"
)

const (
	// FileName is the config file base name searched in the config paths.
	FileName = "content-engine"

	// EnvPrefix prefixes environment overrides, e.g. CONTENT_ENGINE_AI_MODEL.
	EnvPrefix = "CONTENT_ENGINE"

	// DefaultUserAgent identifies outgoing API requests.
	DefaultUserAgent = "content-engine/0.1"
)

// SetDefaults registers a default for every configuration key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("ai.provider", string(types.ProviderGemini))
	v.SetDefault("ai.model", "")
	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.base_url", "")
	v.SetDefault("ai.max_retries", 0)
	v.SetDefault("ai.temperature", 0.0)
	v.SetDefault("ai.max_tokens", 0)
	v.SetDefault("ai.timeout", 60*time.Second)
	v.SetDefault("ai.user_agent", DefaultUserAgent)

	v.SetDefault("export.output_dir", filepath.Join("output", "exports"))
	v.SetDefault("export.formats", []string{"pdf", "docx", "html"})
	v.SetDefault("export.compress_pdf", true)

	v.SetDefault("store.dir", "data")
	v.SetDefault("store.disabled", false)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.request_timeout", 60*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
}

// Init points v at cfgFile, or at content-engine.yaml in the working
// directory or ~/.config/content-engine/, enables environment overrides, and
// reads the file. A missing default config file is not an error. It returns
// the file used, if any.
func Init(v *viper.Viper, cfgFile string) (string, error) {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", FileName))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("reading config: %w", err)
	}
	return v.ConfigFileUsed(), nil
}

// LoadDotEnv loads KEY=value pairs from path into the process environment
// without overriding variables that are already set. A missing file is not
// an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Load builds and validates a Config from v. The AI API key is resolved in
// order: ai.api_key, the provider's environment variable (GEMINI_API_KEY,
// OPENAI_API_KEY, DEEPSEEK_API_KEY), then the provider's file in
// loadedSecrets.
func Load(v *viper.Viper, loadedSecrets map[string]string) (types.Config, error) {
	cfg := types.Config{
		AI: types.AIConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   v.GetDuration("ai.timeout"),
				UserAgent: v.GetString("ai.user_agent"),
			},
			Provider:    types.Provider(strings.ToLower(strings.TrimSpace(v.GetString("ai.provider")))),
			Model:       v.GetString("ai.model"),
			APIKey:      v.GetString("ai.api_key"),
			BaseURL:     v.GetString("ai.base_url"),
			MaxRetries:  v.GetInt("ai.max_retries"),
			Temperature: v.GetFloat64("ai.temperature"),
			MaxTokens:   v.GetInt("ai.max_tokens"),
		},
		Export: types.ExportConfig{
			OutputDir:   v.GetString("export.output_dir"),
			Formats:     v.GetStringSlice("export.formats"),
			CompressPDF: v.GetBool("export.compress_pdf"),
		},
		Store: types.StoreConfig{
			Dir:      v.GetString("store.dir"),
			Disabled: v.GetBool("store.disabled"),
		},
		Server: types.ServerConfig{
			Addr:           v.GetString("server.addr"),
			RequestTimeout: v.GetDuration("server.request_timeout"),
		},
		Log: types.LogConfig{
			Level:      v.GetString("log.level"),
			File:       v.GetString("log.file"),
			MaxSizeMB:  v.GetInt("log.max_size_mb"),
			MaxBackups: v.GetInt("log.max_backups"),
			MaxAgeDays: v.GetInt("log.max_age_days"),
		},
	}

	if cfg.AI.Provider == "" {
		cfg.AI.Provider = types.ProviderGemini
	}
	if cfg.AI.APIKey == "" {
		cfg.AI.APIKey = os.Getenv(secrets.APIKeyEnv(cfg.AI.Provider))
	}
	if cfg.AI.APIKey == "" {
		cfg.AI.APIKey = loadedSecrets[secrets.APIKeyName(cfg.AI.Provider)]
	}

	if err := Validate(cfg); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting in cfg. A missing API key is
// not checked here; commands that need a backend report it.
func Validate(cfg types.Config) error {
	switch cfg.AI.Provider {
	case types.ProviderGemini, types.ProviderOpenAI, types.ProviderDeepSeek:
	default:
		return fmt.Errorf("ai.provider %q not supported: use gemini, openai, or deepseek", cfg.AI.Provider)
	}
	if cfg.AI.MaxRetries < 0 {
		return fmt.Errorf("ai.max_retries must not be negative, got %d", cfg.AI.MaxRetries)
	}
	if cfg.AI.Temperature < 0 || cfg.AI.Temperature > 2 {
		return fmt.Errorf("ai.temperature must be between 0 and 2, got %g", cfg.AI.Temperature)
	}
	if cfg.AI.MaxTokens < 0 {
		return fmt.Errorf("ai.max_tokens must not be negative, got %d", cfg.AI.MaxTokens)
	}
	if _, err := export.ParseFormats(cfg.Export.Formats); err != nil {
		return fmt.Errorf("export.formats: %w", err)
	}
	if _, err := logging.ParseLevel(cfg.Log.Level); err != nil {
		return err
	}
	return nil
}
