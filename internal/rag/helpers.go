package rag

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/akolanti/cogcompanion/internal/config"
	"github.com/akolanti/cogcompanion/internal/domain/chatModel"
	"github.com/akolanti/cogcompanion/internal/domain/commonModels"
	"github.com/akolanti/cogcompanion/internal/metrics"
	"github.com/akolanti/cogcompanion/internal/rag/prompt"
	"github.com/akolanti/cogcompanion/pkg/logger_i"
)

func respond(turn *chatModel.Turn, reply string) error {
	turn.Reply = reply
	turn.Finished = time.Now().UTC()
	return turn.Advance(chatModel.Responded)
}

func (s *service) llmError(log *logger_i.Logger, turn *chatModel.Turn, err error) {
	provider := s.llm.Name()
	var failure *commonModels.LLMCallFailure
	if errors.As(err, &failure) {
		provider = failure.Provider
	}
	log.Error("LLM call failed", "provider", provider, "error", err)

	turn.Degraded = true
	turn.Error = chatModel.TurnError{
		Code:    http.StatusServiceUnavailable,
		Message: "language model unavailable",
		Retry:   true,
	}
}

func (s *service) executeRetrievalStep(ctx context.Context, query string) string {
	return s.retriever.Retrieve(ctx, query, config.DefaultSearchK)
}

func (s *service) executeLLMStep(ctx context.Context, p prompt.Prompt) (string, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm_generation", time.Since(start)) }()

	reply, err := s.llm.Chat(ctx, p.System, p.Turns, p.Options)
	return strings.TrimSpace(reply), err
}

func (s *service) summarizeReport(ctx context.Context, f *commonModels.UploadedFile) {
	result := s.summarizer.Summarize(ctx, f.Content, config.SummaryTargetChunks)
	if result.OverallSummary == "" {
		return
	}
	f.RawContent = f.Content
	f.ChunkSummaries = result.Texts()
	f.Summary = result.OverallSummary
	f.Content = result.OverallSummary
}
