package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/akolanti/cogcompanion/internal/domain/commonModels"
	"github.com/akolanti/cogcompanion/internal/rag/rag_test"
	"github.com/akolanti/cogcompanion/internal/rag/vectorDB/memoryDB"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeKnowledge(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"sleep_rules.json":     `{"duration": {"adults": "7-9 hours"}, "apnea": "screen if snoring"}`,
		"lifestyle_rules.json": `[{"diet": "DASH"}, {"exercise": "150 min/week"}, "stay social"]`,
		"broken_rules.json":    `{"oops": `,
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
	}
	return dir
}

var knowledgeFiles = []string{"sleep_rules.json", "missing_rules.json", "broken_rules.json", "lifestyle_rules.json"}

func TestRun_PerFileTolerance(t *testing.T) {
	idx := memoryDB.New()
	em := &rag_test.MockEmbedder{}

	report, err := NewIngestor(idx, em, writeKnowledge(t), knowledgeFiles).Run(t.Context())
	require.NoError(t, err)

	assert.Equal(t, []string{"sleep_rules.json", "lifestyle_rules.json"}, report.FilesLoaded)
	assert.Equal(t, []string{"missing_rules.json"}, report.FilesMissing)
	assert.Equal(t, []string{"broken_rules.json"}, report.FilesFailed)
	assert.Equal(t, 5, report.Indexed)
	// one batched embedding call for the whole knowledge base
	assert.Equal(t, 1, em.Calls)
}

func TestRun_SequentialIds(t *testing.T) {
	var got []commonModels.IndexedPoint
	idx := &rag_test.MockIndex{OnUpsert: func(_ context.Context, points []commonModels.IndexedPoint) error {
		got = points
		return nil
	}}

	_, err := NewIngestor(idx, &rag_test.MockEmbedder{}, writeKnowledge(t), knowledgeFiles).Run(t.Context())
	require.NoError(t, err)
	require.Len(t, got, 5)
	for i, p := range got {
		assert.Equal(t, uint64(i+1), p.Id)
	}
	assert.Equal(t, "sleep", got[0].Metadata.Domain)
	assert.Equal(t, "lifestyle", got[4].Metadata.Domain)
}

func TestRun_Idempotent(t *testing.T) {
	dir := writeKnowledge(t)
	idx := memoryDB.New()
	in := NewIngestor(idx, &rag_test.MockEmbedder{}, dir, knowledgeFiles)

	_, err := in.Run(t.Context())
	require.NoError(t, err)
	first, _ := idx.Count(t.Context())

	_, err = in.Run(t.Context())
	require.NoError(t, err)
	second, _ := idx.Count(t.Context())

	assert.Equal(t, first, second)
	assert.Equal(t, uint64(5), second)
}

func TestRun_EmbeddingFailureLeavesEmptyIndex(t *testing.T) {
	idx := memoryDB.New()
	em := &rag_test.MockEmbedder{OnEmbedMany: func(context.Context, []string) ([][]float32, error) {
		return nil, &commonModels.EmbeddingFailure{Provider: "mock", Err: errors.New("unauthorized")}
	}}

	report, err := NewIngestor(idx, em, writeKnowledge(t), knowledgeFiles).Run(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 5, report.Documents)
	assert.Zero(t, report.Indexed)

	n, _ := idx.Count(t.Context())
	assert.Zero(t, n)
}

func TestRun_NoFiles(t *testing.T) {
	report, err := NewIngestor(memoryDB.New(), &rag_test.MockEmbedder{}, t.TempDir(), knowledgeFiles).Run(t.Context())
	require.NoError(t, err)
	assert.Zero(t, report.Indexed)
	assert.Len(t, report.FilesMissing, len(knowledgeFiles))
}

func TestRun_DimensionMismatchIsFatal(t *testing.T) {
	idx := memoryDB.New()
	require.NoError(t, idx.Create(t.Context(), 3))

	_, err := NewIngestor(idx, &rag_test.MockEmbedder{Dim: 2}, writeKnowledge(t), knowledgeFiles).Run(t.Context())
	assert.ErrorIs(t, err, commonModels.ErrDimensionMismatch)
}

func TestRun_UpsertFailureIsFatal(t *testing.T) {
	idx := &rag_test.MockIndex{OnUpsert: func(context.Context, []commonModels.IndexedPoint) error {
		return errors.New("disk full")
	}}
	_, err := NewIngestor(idx, &rag_test.MockEmbedder{}, writeKnowledge(t), knowledgeFiles).Run(t.Context())
	var failure *commonModels.IndexFailure
	assert.ErrorAs(t, err, &failure)
}
