// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/content-engine/pkg/types"
)

// clearKeyEnv unsets the provider key variables for the duration of a test.
func clearKeyEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "DEEPSEEK_API_KEY", "CONTENT_ENGINE_AI_API_KEY"} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "content-engine.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearKeyEnv(t)
	v := viper.New()
	SetDefaults(v)

	cfg, err := Load(v, nil)
	require.NoError(t, err)

	assert.Equal(t, types.ProviderGemini, cfg.AI.Provider)
	assert.Equal(t, 0, cfg.AI.MaxRetries)
	assert.Equal(t, 60*time.Second, cfg.AI.Timeout)
	assert.Equal(t, DefaultUserAgent, cfg.AI.UserAgent)
	assert.Empty(t, cfg.AI.APIKey)
	assert.Equal(t, filepath.Join("output", "exports"), cfg.Export.OutputDir)
	assert.Equal(t, []string{"pdf", "docx", "html"}, cfg.Export.Formats)
	assert.True(t, cfg.Export.CompressPDF)
	assert.Equal(t, "data", cfg.Store.Dir)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 60*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestInitReadsFile(t *testing.T) {
	clearKeyEnv(t)
	path := writeConfig(t, `
ai:
  provider: openai
  model: gpt-4o
  max_retries: 2
  temperature: 0.5
  timeout: 30s
export:
  formats: [pdf, html]
  compress_pdf: false
store:
  disabled: true
log:
  level: debug
`)
	v := viper.New()
	used, err := Init(v, path)
	require.NoError(t, err)
	assert.Equal(t, path, used)

	cfg, err := Load(v, nil)
	require.NoError(t, err)
	assert.Equal(t, types.ProviderOpenAI, cfg.AI.Provider)
	assert.Equal(t, "gpt-4o", cfg.AI.Model)
	assert.Equal(t, 2, cfg.AI.MaxRetries)
	assert.Equal(t, 0.5, cfg.AI.Temperature)
	assert.Equal(t, 30*time.Second, cfg.AI.Timeout)
	assert.Equal(t, []string{"pdf", "html"}, cfg.Export.Formats)
	assert.False(t, cfg.Export.CompressPDF)
	assert.True(t, cfg.Store.Disabled)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Unset keys keep their defaults.
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestInitMissingExplicitFile(t *testing.T) {
	v := viper.New()
	_, err := Init(v, filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestInitEnvOverride(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("CONTENT_ENGINE_AI_MODEL", "gemini-1.5-pro")
	t.Setenv("CONTENT_ENGINE_SERVER_ADDR", "127.0.0.1:9000")

	v := viper.New()
	_, err := Init(v, writeConfig(t, "ai:\n  model: from-file\n"))
	require.NoError(t, err)

	cfg, err := Load(v, nil)
	require.NoError(t, err)
	assert.Equal(t, "gemini-1.5-pro", cfg.AI.Model)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
}

func TestAPIKeyPrecedence(t *testing.T) {
	loaded := map[string]string{
		"gemini-api-key": "from-secrets",
		"openai-api-key": "openai-secret",
	}

	tests := []struct {
		name     string
		provider string
		config   string
		env      map[string]string
		want     string
	}{
		{
			name: "secrets file only",
			want: "from-secrets",
		},
		{
			name: "env beats secrets",
			env:  map[string]string{"GEMINI_API_KEY": "from-env"},
			want: "from-env",
		},
		{
			name:   "config beats env",
			config: "from-config",
			env:    map[string]string{"GEMINI_API_KEY": "from-env"},
			want:   "from-config",
		},
		{
			name:     "provider selects the key",
			provider: "openai",
			env:      map[string]string{"GEMINI_API_KEY": "gemini-env"},
			want:     "openai-secret",
		},
		{
			name:     "no key for provider",
			provider: "deepseek",
			want:     "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearKeyEnv(t)
			for k, val := range tt.env {
				t.Setenv(k, val)
			}
			v := viper.New()
			SetDefaults(v)
			if tt.provider != "" {
				v.Set("ai.provider", tt.provider)
			}
			if tt.config != "" {
				v.Set("ai.api_key", tt.config)
			}

			cfg, err := Load(v, loaded)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.AI.APIKey)
		})
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   any
		wantErr string
	}{
		{"unknown provider", "ai.provider", "claude", "ai.provider"},
		{"negative retries", "ai.max_retries", -1, "ai.max_retries"},
		{"temperature too high", "ai.temperature", 3.0, "ai.temperature"},
		{"negative max tokens", "ai.max_tokens", -5, "ai.max_tokens"},
		{"unknown format", "export.formats", []string{"pdf", "rtf"}, "export.formats"},
		{"bad log level", "log.level", "chatty", "log.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearKeyEnv(t)
			v := viper.New()
			SetDefaults(v)
			v.Set(tt.key, tt.value)

			_, err := Load(v, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	t.Setenv("CE_TEST_PRESET", "kept")
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("CE_TEST_NEW=loaded\nCE_TEST_PRESET=overwritten\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("CE_TEST_NEW") })

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "loaded", os.Getenv("CE_TEST_NEW"))
	assert.Equal(t, "kept", os.Getenv("CE_TEST_PRESET"))
}

func TestLoadDotEnvMissing(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), ".env")))
}
