// Package providers picks the embedding and chat backend at startup. The
// configured provider is tried first; if it cannot be constructed the other one
// is built instead.
package providers

import (
	"context"
	"errors"
	"fmt"

	"github.com/akolanti/cogcompanion/internal/config"
	"github.com/akolanti/cogcompanion/internal/customHttpClient"
	"github.com/akolanti/cogcompanion/internal/rag/embedding"
	"github.com/akolanti/cogcompanion/internal/rag/embedding/googleEmbedding"
	"github.com/akolanti/cogcompanion/internal/rag/embedding/openaiEmbedding"
	"github.com/akolanti/cogcompanion/internal/rag/llm"
	"github.com/akolanti/cogcompanion/internal/rag/llm/gemini"
	"github.com/akolanti/cogcompanion/internal/rag/llm/openaiLLM"
	"github.com/akolanti/cogcompanion/pkg/logger_i"
	"github.com/openai/openai-go/option"
)

// Set is the embedder and chat model of one provider. They are always taken
// together so that query and document vectors come from the same model.
type Set struct {
	Name     string
	Embedder embedding.Embedder
	LLM      llm.Provider
}

type Builder func(ctx context.Context, pc config.ProviderConfig) (Set, error)

var DefaultBuilders = map[string]Builder{
	config.ProviderGoogle: buildGoogle,
	config.ProviderOpenAI: buildOpenAI,
}

func Select(ctx context.Context, cfg *config.Config) (Set, error) {
	return SelectWith(ctx, cfg, DefaultBuilders)
}

func SelectWith(ctx context.Context, cfg *config.Config, builders map[string]Builder) (Set, error) {
	logger := logger_i.NewLogger("providers")
	primaryName, fallbackName := cfg.Provider, otherProvider(cfg.Provider)
	primary, fallback := cfg.Selected()

	set, primaryErr := build(ctx, builders, primaryName, primary)
	if primaryErr == nil {
		logger.Info("Using configured provider", "provider", set.Name)
		return set, nil
	}
	logger.Warn("Configured provider unavailable, falling back", "provider", primaryName, "fallback", fallbackName, "error", primaryErr)

	set, fallbackErr := build(ctx, builders, fallbackName, fallback)
	if fallbackErr != nil {
		return Set{}, fmt.Errorf("no provider available: %w", errors.Join(primaryErr, fallbackErr))
	}
	logger.Info("Using fallback provider", "provider", set.Name)
	return set, nil
}

func build(ctx context.Context, builders map[string]Builder, name string, pc config.ProviderConfig) (Set, error) {
	b, ok := builders[name]
	if !ok {
		return Set{}, fmt.Errorf("no builder for provider %q", name)
	}
	set, err := b(ctx, pc)
	if err != nil {
		return Set{}, fmt.Errorf("%s: %w", name, err)
	}
	set.Name = name
	return set, nil
}

func otherProvider(name string) string {
	if name == config.ProviderOpenAI {
		return config.ProviderGoogle
	}
	return config.ProviderOpenAI
}

func buildGoogle(ctx context.Context, pc config.ProviderConfig) (Set, error) {
	em, err := googleEmbedding.GetGoogleEmbeddingClient(ctx, pc.EmbeddingModel, pc.APIKey, pc.EmbeddingDimension, customHttpClient.Pooled())
	if err != nil {
		return Set{}, err
	}
	chat, err := gemini.GetGeminiClient(ctx, pc.ChatModel, pc.APIKey, customHttpClient.Pooled())
	if err != nil {
		return Set{}, err
	}
	return Set{Embedder: em, LLM: chat}, nil
}

func buildOpenAI(_ context.Context, pc config.ProviderConfig) (Set, error) {
	em, err := openaiEmbedding.GetOpenAIEmbeddingClient(pc.EmbeddingModel, pc.APIKey, pc.EmbeddingDimension, option.WithHTTPClient(customHttpClient.Pooled()))
	if err != nil {
		return Set{}, err
	}
	chat, err := openaiLLM.GetOpenAIClient(pc.ChatModel, pc.APIKey, option.WithHTTPClient(customHttpClient.Pooled()))
	if err != nil {
		return Set{}, err
	}
	return Set{Embedder: em, LLM: chat}, nil
}
