package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/akolanti/cogcompanion/internal/config"
	"github.com/akolanti/cogcompanion/internal/domain/commonModels"
	"github.com/akolanti/cogcompanion/internal/rag/llm"
	"github.com/akolanti/cogcompanion/pkg/logger_i"
	"google.golang.org/genai"
)

const providerName = "google"

type llmClient struct {
	models    *genai.Models
	modelName string
	logger    *logger_i.Logger
}

// GetGeminiClient builds the chat client. A nil httpClient uses the genai default.
func GetGeminiClient(ctx context.Context, modelName string, apikey string, httpClient *http.Client) (llm.Provider, error) {
	if apikey == "" {
		return nil, errors.New("google api key is not set")
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apikey, Backend: genai.BackendGeminiAPI, HTTPClient: httpClient})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	logger := logger_i.NewLogger("llm_gemini")
	logger.Info("Gemini client created", "model", modelName)
	return &llmClient{models: c.Models, modelName: modelName, logger: logger}, nil
}

func (c *llmClient) Name() string { return providerName }

func (c *llmClient) Chat(ctx context.Context, system string, turns []commonModels.ConversationTurn, opts llm.Options) (string, error) {
	log := c.logger.WithContext(ctx, config.TRACE_ID_KEY, config.SESSION_ID_KEY)

	callCtx, cancel := context.WithTimeout(ctx, config.ExternalCallTimeout)
	defer cancel()

	result, err := c.models.GenerateContent(callCtx, c.modelName, toContents(turns), buildConfig(system, opts))
	if err != nil {
		log.Error("Gemini generate failed", "error", err)
		return "", &commonModels.LLMCallFailure{Provider: providerName, Err: err}
	}
	return result.Text(), nil
}

func buildConfig(system string, opts llm.Options) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(opts.Temperature),
		MaxOutputTokens: int32(opts.MaxTokens),
	}
	if system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}
	return cfg
}

func toContents(turns []commonModels.ConversationTurn) []*genai.Content {
	normalized := llm.NormalizeTurns(turns)
	contents := make([]*genai.Content, 0, len(normalized))
	for _, t := range normalized {
		role := genai.Role(genai.RoleUser)
		if t.Role == commonModels.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(t.Content, role))
	}
	return contents
}
