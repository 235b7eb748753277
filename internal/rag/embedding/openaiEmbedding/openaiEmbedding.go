package openaiEmbedding

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/akolanti/cogcompanion/internal/config"
	"github.com/akolanti/cogcompanion/internal/domain/commonModels"
	"github.com/akolanti/cogcompanion/internal/rag/embedding"
	"github.com/akolanti/cogcompanion/pkg/logger_i"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const providerName = "openai"

type client struct {
	api       openai.Client
	model     string
	dimension int
	logger    *logger_i.Logger
}

// GetOpenAIEmbeddingClient builds the OpenAI embedder. Extra request options are
// appended after the api key, which lets tests point it at an httptest server.
func GetOpenAIEmbeddingClient(modelName string, apikey string, dimension int, opts ...option.RequestOption) (embedding.Embedder, error) {
	if apikey == "" {
		return nil, errors.New("openai api key is not set")
	}
	opts = append([]option.RequestOption{option.WithAPIKey(apikey)}, opts...)
	logger := logger_i.NewLogger("openai_embedding")
	logger.Info("OpenAI Embedding client created", "model", modelName, "dimension", dimension)
	return &client{
		api:       openai.NewClient(opts...),
		model:     modelName,
		dimension: dimension,
		logger:    logger,
	}, nil
}

func (c *client) Name() string { return providerName }
func (c *client) Dimension() int { return c.dimension }

func (c *client) EmbedOne(ctx context.Context, text string) ([]float32, error) {
	vectors, err := c.EmbedMany(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (c *client) EmbedMany(ctx context.Context, texts []string) ([][]float32, error) {
	log := c.logger.WithContext(ctx, config.TRACE_ID_KEY)
	out := make([][]float32, 0, len(texts))

	for _, batch := range embedding.Batches(texts, config.EmbeddingBatchSize) {
		vectors, err := c.embedBatch(ctx, batch)
		if err != nil {
			if isRateLimit(err) {
				log.Warn("Rate limit hit", "error", err)
			}
			log.Error("Error getting Embeddings from OpenAI", "error", err, "batch", len(batch))
			return nil, &commonModels.EmbeddingFailure{Provider: providerName, Err: err}
		}
		out = append(out, vectors...)
	}
	return out, nil
}

func (c *client) embedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	callCtx, cancel := context.WithTimeout(ctx, config.ExternalCallTimeout)
	defer cancel()

	resp, err := c.api.Embeddings.New(callCtx, openai.EmbeddingNewParams{
		Model:      openai.EmbeddingModel(c.model),
		Input:      openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: texts},
		Dimensions: openai.Int(int64(c.dimension)),
	})
	if err != nil {
		return nil, fmt.Errorf("openai embeddings: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, embedding.ErrCountMismatch
	}

	vectors := make([][]float32, len(texts))
	for _, d := range resp.Data {
		if d.Index < 0 || int(d.Index) >= len(texts) {
			return nil, fmt.Errorf("embedding index %d out of range", d.Index)
		}
		v := make([]float32, len(d.Embedding))
		for i, f := range d.Embedding {
			v[i] = float32(f)
		}
		vectors[d.Index] = v
	}
	return vectors, nil
}

func isRateLimit(err error) bool {
	var apiErr *openai.Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests
}
