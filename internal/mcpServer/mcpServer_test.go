package mcpServer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/akolanti/cogcompanion/internal/domain/commonModels"
	"github.com/akolanti/cogcompanion/internal/rag/retriever"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockKnowledge struct {
	OnSearch func(ctx context.Context, query string, k int, threshold float32) ([]commonModels.SearchResult, error)
	relevant bool
}

func (m *mockKnowledge) Search(ctx context.Context, query string, k int, threshold float32) ([]commonModels.SearchResult, error) {
	return m.OnSearch(ctx, query, k, threshold)
}

func (m *mockKnowledge) CheckRelevance(context.Context, string) bool { return m.relevant }

func (m *mockKnowledge) Recommendations(_ context.Context, p retriever.Profile) []commonModels.SearchResult {
	if !p.Hypertension {
		return nil
	}
	return []commonModels.SearchResult{{Content: "SPRINT MIND", Metadata: commonModels.Metadata{Domain: "sprint_mind_evidence"}}}
}

func connect(t *testing.T, k Knowledge) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()
	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	_, err := New(k, 0.3).Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	session, err := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil).Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func call[T any](t *testing.T, session *mcp.ClientSession, name string, args map[string]any) (T, *mcp.CallToolResult) {
	t.Helper()
	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)

	var out T
	if !res.IsError {
		require.NotEmpty(t, res.Content)
		text, ok := res.Content[0].(*mcp.TextContent)
		require.True(t, ok)
		require.NoError(t, json.Unmarshal([]byte(text.Text), &out))
	}
	return out, res
}

func TestSearchKnowledge(t *testing.T) {
	var gotK int
	var gotThreshold float32
	session := connect(t, &mockKnowledge{OnSearch: func(_ context.Context, q string, k int, th float32) ([]commonModels.SearchResult, error) {
		gotK, gotThreshold = k, th
		return []commonModels.SearchResult{{Content: "sleep 7-9 hours", Metadata: commonModels.Metadata{Domain: "sleep", Source: "sleep_rules.json"}, Similarity: 0.6}}, nil
	}})

	out, _ := call[SearchOutput](t, session, "search_knowledge", map[string]any{"query": "sleep"})
	assert.Equal(t, 5, gotK)
	assert.Equal(t, float32(0.3), gotThreshold)
	require.Len(t, out.Results, 1)
	assert.Equal(t, Hit{Content: "sleep 7-9 hours", Domain: "sleep", Source: "sleep_rules.json", Similarity: 0.6}, out.Results[0])

	_, _ = call[SearchOutput](t, session, "search_knowledge", map[string]any{"query": "sleep", "k": 2, "threshold": 0.1})
	assert.Equal(t, 2, gotK)
	assert.InDelta(t, 0.1, gotThreshold, 1e-6)
}

func TestSearchKnowledge_ErrorIsReported(t *testing.T) {
	session := connect(t, &mockKnowledge{OnSearch: func(context.Context, string, int, float32) ([]commonModels.SearchResult, error) {
		return nil, errors.New("qdrant unreachable")
	}})

	_, res := call[SearchOutput](t, session, "search_knowledge", map[string]any{"query": "sleep"})
	assert.True(t, res.IsError)
}

func TestCheckRelevance(t *testing.T) {
	out, _ := call[RelevanceOutput](t, connect(t, &mockKnowledge{relevant: true}), "check_relevance", map[string]any{"query": "What is the DASH diet?"})
	assert.True(t, out.Relevant)

	out, _ = call[RelevanceOutput](t, connect(t, &mockKnowledge{}), "check_relevance", map[string]any{"query": "pizza"})
	assert.False(t, out.Relevant)
}

func TestRecommendEvidence(t *testing.T) {
	out, _ := call[SearchOutput](t, connect(t, &mockKnowledge{}), "recommend_evidence", map[string]any{"hypertension": true})
	require.Len(t, out.Results, 1)
	assert.Equal(t, "SPRINT MIND", out.Results[0].Content)
}
