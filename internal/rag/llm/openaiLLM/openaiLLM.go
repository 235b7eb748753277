package openaiLLM

import (
	"context"
	"errors"

	"github.com/akolanti/cogcompanion/internal/config"
	"github.com/akolanti/cogcompanion/internal/domain/commonModels"
	"github.com/akolanti/cogcompanion/internal/rag/llm"
	"github.com/akolanti/cogcompanion/pkg/logger_i"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const providerName = "openai"

type llmClient struct {
	api       openai.Client
	modelName string
	logger    *logger_i.Logger
}

func GetOpenAIClient(modelName string, apikey string, opts ...option.RequestOption) (llm.Provider, error) {
	if apikey == "" {
		return nil, errors.New("openai api key is not set")
	}
	opts = append([]option.RequestOption{option.WithAPIKey(apikey)}, opts...)
	logger := logger_i.NewLogger("llm_openai")
	logger.Info("OpenAI client created", "model", modelName)
	return &llmClient{api: openai.NewClient(opts...), modelName: modelName, logger: logger}, nil
}

func (c *llmClient) Name() string { return providerName }

func (c *llmClient) Chat(ctx context.Context, system string, turns []commonModels.ConversationTurn, opts llm.Options) (string, error) {
	log := c.logger.WithContext(ctx, config.TRACE_ID_KEY, config.SESSION_ID_KEY)

	callCtx, cancel := context.WithTimeout(ctx, config.ExternalCallTimeout)
	defer cancel()

	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.modelName),
		Messages:    toMessages(system, turns),
		Temperature: openai.Float(float64(opts.Temperature)),
	}
	if opts.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(opts.MaxTokens))
	}

	completion, err := c.api.Chat.Completions.New(callCtx, params)
	if err != nil {
		log.Error("OpenAI chat completion failed", "error", err)
		return "", &commonModels.LLMCallFailure{Provider: providerName, Err: err}
	}
	if len(completion.Choices) == 0 {
		return "", nil
	}
	return completion.Choices[0].Message.Content, nil
}

func toMessages(system string, turns []commonModels.ConversationTurn) []openai.ChatCompletionMessageParamUnion {
	normalized := llm.NormalizeTurns(turns)
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(normalized)+1)
	if system != "" {
		messages = append(messages, openai.SystemMessage(system))
	}
	for _, t := range normalized {
		if t.Role == commonModels.RoleAssistant {
			messages = append(messages, openai.AssistantMessage(t.Content))
		} else {
			messages = append(messages, openai.UserMessage(t.Content))
		}
	}
	return messages
}
