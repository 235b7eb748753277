package openaiLLM

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/akolanti/cogcompanion/internal/domain/commonModels"
	"github.com/akolanti/cogcompanion/internal/rag/llm"
	"github.com/openai/openai-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
	Messages    []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func TestChat_SendsSystemAndTurns(t *testing.T) {
	var got capturedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","created":1,"model":"m",
			"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"hello"}}]}`))
	}))
	defer srv.Close()

	p, err := GetOpenAIClient("gpt-test", "key", option.WithBaseURL(srv.URL), option.WithMaxRetries(0))
	require.NoError(t, err)

	reply, err := p.Chat(t.Context(), "sys", []commonModels.ConversationTurn{
		{Role: commonModels.RoleUser, Content: "q1"},
		{Role: commonModels.RoleAssistant, Content: "a1"},
		{Role: commonModels.RoleUser, Content: "q2"},
	}, llm.Options{Temperature: 0.7, MaxTokens: 800})
	require.NoError(t, err)

	assert.Equal(t, "hello", reply)
	assert.Equal(t, "gpt-test", got.Model)
	assert.InDelta(t, 0.7, got.Temperature, 1e-6)
	assert.Equal(t, 800, got.MaxTokens)
	require.Len(t, got.Messages, 4)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "assistant", got.Messages[2].Role)
	assert.Equal(t, "q2", got.Messages[3].Content)
}

func TestChat_FailureIsTyped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p, err := GetOpenAIClient("m", "key", option.WithBaseURL(srv.URL), option.WithMaxRetries(0))
	require.NoError(t, err)

	_, err = p.Chat(t.Context(), "", []commonModels.ConversationTurn{{Role: commonModels.RoleUser, Content: "q"}}, llm.Options{})
	var failure *commonModels.LLMCallFailure
	assert.ErrorAs(t, err, &failure)
}
