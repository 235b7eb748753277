package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("SEARCH_THRESHOLD", "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ProviderGoogle, cfg.Provider)
	assert.Equal(t, 0.3, cfg.SearchThreshold)
	assert.Equal(t, 0.1, cfg.SearchRelaxedThreshold)
	assert.Equal(t, DefaultCollectionName, cfg.Qdrant.Collection)
	assert.Equal(t, DefaultKnowledgeFiles, cfg.KnowledgeFiles)
	assert.Equal(t, 768, cfg.Google.EmbeddingDimension)
	assert.Equal(t, 1536, cfg.OpenAI.EmbeddingDimension)
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("LLM_PROVIDER=openai\nKNOWLEDGE_FILES=a.json, b.json\n"), 0o600))
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("KNOWLEDGE_FILES", "")
	// godotenv does not override variables that are already set, even when empty
	require.NoError(t, os.Unsetenv("LLM_PROVIDER"))
	require.NoError(t, os.Unsetenv("KNOWLEDGE_FILES"))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.Equal(t, []string{"a.json", "b.json"}, cfg.KnowledgeFiles)

	primary, fallback := cfg.Selected()
	assert.Equal(t, OpenAIModelName, primary.ChatModel)
	assert.Equal(t, GeminiModelName, fallback.ChatModel)
}

func TestLoad_MissingEnvFileIsIgnored(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.NoError(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Provider:               ProviderGoogle,
			ChatStore:              StoreMemory,
			SearchThreshold:        0.3,
			SearchRelaxedThreshold: 0.1,
			Google:                 ProviderConfig{EmbeddingDimension: 768},
			OpenAI:                 ProviderConfig{EmbeddingDimension: 1536},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"unknown provider", func(c *Config) { c.Provider = "anthropic" }, true},
		{"unknown store", func(c *Config) { c.ChatStore = "sqlite" }, true},
		{"threshold above one", func(c *Config) { c.SearchThreshold = 1.5 }, true},
		{"relaxed above primary", func(c *Config) { c.SearchRelaxedThreshold = 0.5 }, true},
		{"zero dimension", func(c *Config) { c.Google.EmbeddingDimension = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
