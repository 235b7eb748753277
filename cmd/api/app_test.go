package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/akolanti/cogcompanion/internal/config"
	"github.com/akolanti/cogcompanion/internal/rag/providers"
	"github.com/akolanti/cogcompanion/internal/rag/rag_test"
	"github.com/akolanti/cogcompanion/internal/rag/vectorDB/memoryDB"
	"github.com/akolanti/cogcompanion/pkg/logger_i"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func knowledgeConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sleep_rules.json"), []byte(`{"duration": "7-9 hours", "apnea": "screen if snoring"}`), 0o600))
	return &config.Config{KnowledgeDir: dir, KnowledgeFiles: []string{"sleep_rules.json"}}
}

func TestPopulate(t *testing.T) {
	logger := logger_i.NewLogger("test")

	t.Run("empty index is ingested", func(t *testing.T) {
		idx := memoryDB.New()
		em := &rag_test.MockEmbedder{}

		require.NoError(t, populate(t.Context(), knowledgeConfig(t), idx, providers.Set{Embedder: em}, false, logger))

		count, err := idx.Count(t.Context())
		require.NoError(t, err)
		assert.Equal(t, uint64(2), count)
		assert.Equal(t, 1, em.Calls)
	})

	t.Run("populated index is reused", func(t *testing.T) {
		cfg := knowledgeConfig(t)
		idx := memoryDB.New()
		require.NoError(t, populate(t.Context(), cfg, idx, providers.Set{Embedder: &rag_test.MockEmbedder{}}, false, logger))

		em := &rag_test.MockEmbedder{}
		require.NoError(t, populate(t.Context(), cfg, idx, providers.Set{Embedder: em}, false, logger))
		assert.Zero(t, em.Calls)
	})

	t.Run("reindex embeds again", func(t *testing.T) {
		cfg := knowledgeConfig(t)
		idx := memoryDB.New()
		require.NoError(t, populate(t.Context(), cfg, idx, providers.Set{Embedder: &rag_test.MockEmbedder{}}, false, logger))

		em := &rag_test.MockEmbedder{}
		require.NoError(t, populate(t.Context(), cfg, idx, providers.Set{Embedder: em}, true, logger))
		assert.Equal(t, 1, em.Calls)

		count, err := idx.Count(t.Context())
		require.NoError(t, err)
		assert.Equal(t, uint64(2), count)
	})
}
