package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "CORS_ALLOWED_ORIGINS", "ARK_API_KEY", "LLM_API_KEY", "ARK_MODEL",
		"ARK_TEMPERATURE", "ARK_TOP_P", "ARK_MAX_TOKENS", "AI_BULLET_INSTRUCTION",
		"RAG_API_URL", "PROVIDER_TIMEOUT_SECONDS", "LOG_DEBUG",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.Server.Addr)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.False(t, cfg.AI.Enabled())
	assert.True(t, cfg.AI.BulletInstruction)
	require.NotNil(t, cfg.AI.MaxTokens)
	assert.Equal(t, 300, *cfg.AI.MaxTokens)
	assert.Equal(t, 30*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, "http://localhost:8000/generate", cfg.Retrieval.URL)
}

func TestLoadCredentialAlias(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_API_KEY", "secondary")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.AI.Enabled())
	assert.Equal(t, "secondary", cfg.AI.APIKey)

	t.Setenv("ARK_API_KEY", "primary")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "primary", cfg.AI.APIKey)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"PORT":                     "50 00",
		"ARK_TEMPERATURE":          "warm",
		"AI_BULLET_INSTRUCTION":    "sometimes",
		"PROVIDER_TIMEOUT_SECONDS": "0",
	}

	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadRAGServer(t *testing.T) {
	t.Setenv("RAG_ADDR", "127.0.0.1:9000")
	t.Setenv("RAG_TOP_N", "5")
	t.Setenv("RAG_CORPUS_PATH", "")
	t.Setenv("LOG_DEBUG", "")

	cfg, err := LoadRAGServer()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, 5, cfg.TopN)
	assert.Empty(t, cfg.CorpusPath)
}
