package rag_test

import (
	"context"
	"errors"
	"sync"

	"github.com/akolanti/cogcompanion/internal/domain/commonModels"
	"github.com/akolanti/cogcompanion/internal/rag/llm"
)

// MockEmbedder implements embedding.Embedder. Without OnEmbedMany it maps every
// text to the unit vector of length Dim.
type MockEmbedder struct {
	Dim         int
	OnEmbedMany func(ctx context.Context, texts []string) ([][]float32, error)

	mu    sync.Mutex
	Calls int
}

func (m *MockEmbedder) EmbedMany(ctx context.Context, texts []string) ([][]float32, error) {
	m.mu.Lock()
	m.Calls++
	m.mu.Unlock()
	if m.OnEmbedMany != nil {
		return m.OnEmbedMany(ctx, texts)
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		v := make([]float32, m.Dimension())
		v[0] = 1
		out[i] = v
	}
	return out, nil
}

func (m *MockEmbedder) EmbedOne(ctx context.Context, text string) ([]float32, error) {
	vectors, err := m.EmbedMany(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, errors.New("no vector")
	}
	return vectors[0], nil
}

func (m *MockEmbedder) Dimension() int {
	if m.Dim == 0 {
		return 2
	}
	return m.Dim
}

func (m *MockEmbedder) Name() string { return "mock" }

// ChatCall is one recorded MockLLM.Chat invocation.
type ChatCall struct {
	System string
	Turns  []commonModels.ConversationTurn
	Opts   llm.Options
}

// MockLLM implements llm.Provider and records every call.
type MockLLM struct {
	OnChat func(ctx context.Context, system string, turns []commonModels.ConversationTurn, opts llm.Options) (string, error)

	mu    sync.Mutex
	Calls []ChatCall
}

func (m *MockLLM) Chat(ctx context.Context, system string, turns []commonModels.ConversationTurn, opts llm.Options) (string, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, ChatCall{System: system, Turns: append([]commonModels.ConversationTurn(nil), turns...), Opts: opts})
	m.mu.Unlock()
	if m.OnChat != nil {
		return m.OnChat(ctx, system, turns, opts)
	}
	return "mock reply", nil
}

func (m *MockLLM) Name() string { return "mock" }

// LastUserMessage is the content of the final turn of the most recent call.
func (m *MockLLM) LastUserMessage() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Calls) == 0 {
		return ""
	}
	turns := m.Calls[len(m.Calls)-1].Turns
	if len(turns) == 0 {
		return ""
	}
	return turns[len(turns)-1].Content
}

// MockIndex implements vectorDB.Index. Unset hooks behave like an empty, existing
// collection.
type MockIndex struct {
	OnSearch func(ctx context.Context, vector []float32, k int, threshold float32) ([]commonModels.SearchResult, error)
	OnUpsert func(ctx context.Context, points []commonModels.IndexedPoint) error

	mu         sync.Mutex
	Thresholds []float32
}

func (m *MockIndex) Exists(context.Context) (bool, error) { return true, nil }
func (m *MockIndex) Create(context.Context, int) error { return nil }
func (m *MockIndex) Dimension(context.Context) (int, error) { return 2, nil }
func (m *MockIndex) Count(context.Context) (uint64, error) { return 0, nil }

func (m *MockIndex) Upsert(ctx context.Context, points []commonModels.IndexedPoint) error {
	if m.OnUpsert != nil {
		return m.OnUpsert(ctx, points)
	}
	return nil
}

func (m *MockIndex) Search(ctx context.Context, vector []float32, k int, threshold float32) ([]commonModels.SearchResult, error) {
	m.mu.Lock()
	m.Thresholds = append(m.Thresholds, threshold)
	m.mu.Unlock()
	if m.OnSearch != nil {
		return m.OnSearch(ctx, vector, k, threshold)
	}
	return nil, nil
}

func (m *MockIndex) SearchByDomain(context.Context, string, int) ([]commonModels.SearchResult, error) {
	return nil, nil
}
