package summarizer

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/akolanti/cogcompanion/internal/config"
	"github.com/akolanti/cogcompanion/internal/domain/commonModels"
	"github.com/akolanti/cogcompanion/internal/metrics"
	"github.com/akolanti/cogcompanion/internal/rag/llm"
	"github.com/akolanti/cogcompanion/pkg/logger_i"
)

var errEmptySummary = errors.New("model returned an empty summary")

// Summarizer compresses long report text with one model call per chunk plus one
// fusion call. It never fails: broken chunks get a placeholder and a broken
// fusion drops the narrative.
type Summarizer struct {
	llm           llm.Provider
	minChunkChars int
	logger        *logger_i.Logger
}

func New(provider llm.Provider) *Summarizer {
	return &Summarizer{
		llm:           provider,
		minChunkChars: config.SummaryMinChunkChars,
		logger:        logger_i.NewLogger("summarizer"),
	}
}

func (s *Summarizer) Summarize(ctx context.Context, text string, targetChunks int) commonModels.SummaryResult {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("summarization", time.Since(start)) }()
	log := s.logger.WithContext(ctx, config.TRACE_ID_KEY, config.SESSION_ID_KEY)

	chunks := ChunkText(text, targetChunks, s.minChunkChars)
	if len(chunks) == 0 {
		return commonModels.SummaryResult{}
	}
	log.Debug("Summarizing report", "chunks", len(chunks), "chars", len(text))

	result := commonModels.SummaryResult{ChunkSummaries: make([]commonModels.ChunkSummary, len(chunks))}
	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		summary, err := s.summarizeChunk(ctx, chunk, i, len(chunks))
		cs := commonModels.ChunkSummary{Index: i, Text: summary}
		if err != nil {
			failure := &commonModels.SummarizationChunkFailure{Index: i, Err: err}
			log.Error("Chunk summary failed, using placeholder", "error", failure)
			metrics.CaptureSummarizationFailure("chunk")
			cs = commonModels.ChunkSummary{Index: i, Text: FailedChunkPlaceholder, Failed: true}
		}
		result.ChunkSummaries[i] = cs
		texts[i] = cs.Text
	}

	narrative, err := s.fuse(ctx, texts)
	if err != nil {
		failure := &commonModels.SummarizationFusionFailure{Err: err}
		log.Error("Fusion failed, returning section summaries only", "error", failure)
		metrics.CaptureSummarizationFailure("fusion")
		narrative = ""
	}
	result.OverallSummary = assemble(narrative, texts)
	return result
}

func (s *Summarizer) summarizeChunk(ctx context.Context, chunk string, index, total int) (string, error) {
	reply, err := s.llm.Chat(ctx, chunkSystemPrompt, []commonModels.ConversationTurn{
		{Role: commonModels.RoleUser, Content: chunkPrompt(chunk, index, total)},
	}, llm.Options{Temperature: config.ChunkSummaryTemperature, MaxTokens: config.ChunkSummaryMaxTokens})
	if err != nil {
		return "", err
	}
	return keepScores(chunk, strings.TrimSpace(reply)), nil
}

func (s *Summarizer) fuse(ctx context.Context, summaries []string) (string, error) {
	reply, err := s.llm.Chat(ctx, fusionSystemPrompt, []commonModels.ConversationTurn{
		{Role: commonModels.RoleUser, Content: fusionPrompt(summaries)},
	}, llm.Options{Temperature: config.FusionSummaryTemperature, MaxTokens: config.FusionSummaryMaxTokens})
	if err != nil {
		return "", err
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", errEmptySummary
	}
	return reply, nil
}
