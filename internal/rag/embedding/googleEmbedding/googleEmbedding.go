package googleEmbedding

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/akolanti/cogcompanion/internal/config"
	"github.com/akolanti/cogcompanion/internal/domain/commonModels"
	"github.com/akolanti/cogcompanion/internal/rag/embedding"
	"github.com/akolanti/cogcompanion/pkg/logger_i"
	"google.golang.org/genai"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const providerName = "google"

var retryDelay = 5 * time.Second

type client struct {
	models    *genai.Models
	model     string
	dimension int32
	logger    *logger_i.Logger
}

func GetGoogleEmbeddingClient(ctx context.Context, modelName string, apikey string, dimension int, httpClient *http.Client) (embedding.Embedder, error) {
	if apikey == "" {
		return nil, errors.New("google api key is not set")
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apikey, Backend: genai.BackendGeminiAPI, HTTPClient: httpClient})
	if err != nil {
		return nil, fmt.Errorf("creating google embedding client: %w", err)
	}
	logger := logger_i.NewLogger("google_embedding")
	logger.Info("Google Embedding client created", "model", modelName, "dimension", dimension)
	return &client{models: c.Models, model: modelName, dimension: int32(dimension), logger: logger}, nil
}

func (c *client) Name() string { return providerName }
func (c *client) Dimension() int { return int(c.dimension) }

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
		res, err := c.doCall(ctx, getContent(batch))
		if err != nil && doRetry(err, log) {
			log.Debug("Retrying after backoff", "delay", retryDelay)
			select {
			case <-time.After(retryDelay):
			case <-ctx.Done():
				return nil, &commonModels.EmbeddingFailure{Provider: providerName, Err: ctx.Err()}
			}
			res, err = c.doCall(ctx, getContent(batch))
		}
		if err != nil {
			log.Error("Error getting Embeddings from Google", "error", err)
			return nil, &commonModels.EmbeddingFailure{Provider: providerName, Err: err}
		}
		if len(res.Embeddings) != len(batch) {
			return nil, &commonModels.EmbeddingFailure{Provider: providerName, Err: embedding.ErrCountMismatch}
		}
		for _, e := range res.Embeddings {
			out = append(out, e.Values)
		}
	}
	return out, nil
}

func (c *client) doCall(ctx context.Context, content []*genai.Content) (*genai.EmbedContentResponse, error) {
	callCtx, cancel := context.WithTimeout(ctx, config.ExternalCallTimeout)
	defer cancel()
	return c.models.EmbedContent(callCtx, c.model, content, &genai.EmbedContentConfig{
		OutputDimensionality: &c.dimension,
		TaskType:             "RETRIEVAL_DOCUMENT",
	})
}

func getContent(chunks []string) []*genai.Content {
	contentsToSend := make([]*genai.Content, 0, len(chunks))
	for _, chunk := range chunks {
		contentsToSend = append(contentsToSend, &genai.Content{
			Parts: []*genai.Part{{Text: chunk}},
		})
	}
	return contentsToSend
}

// doRetry reports whether err is a rate-limit response worth one more attempt.
func doRetry(err error, log *logger_i.Logger) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests {
		log.Warn("Rate limit hit", "error", err)
		return true
	}
	if s, ok := status.FromError(err); ok && s.Code() == codes.ResourceExhausted {
		log.Warn("Rate limit hit", "error", err)
		return true
	}
	return false
}
