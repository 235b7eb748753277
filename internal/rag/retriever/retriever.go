package retriever

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/akolanti/cogcompanion/internal/adapter/utils"
	"github.com/akolanti/cogcompanion/internal/config"
	"github.com/akolanti/cogcompanion/internal/domain/commonModels"
	"github.com/akolanti/cogcompanion/internal/metrics"
	"github.com/akolanti/cogcompanion/internal/rag/embedding"
	"github.com/akolanti/cogcompanion/internal/rag/vectorDB"
	"github.com/akolanti/cogcompanion/pkg/logger_i"
)

const TruncationMarker = "\n\n[... knowledge base context truncated for length ...]"

var relevanceKeywords = []string{
	"cognitive", "brain", "health", "memory", "blood pressure", "exercise",
	"diet", "sleep", "vascular", "dementia", "assessment", "recognaize",
	"processing", "attention", "executive", "cholesterol", "diabetes",
	"dash", "mediterranean", "intervention", "lifestyle",
}

// Retriever is the read side of the knowledge base. Only Search returns errors;
// Retrieve and CheckRelevance absorb them.
type Retriever struct {
	index      vectorDB.Index
	embedder   embedding.Embedder
	thresholds vectorDB.Thresholds
	logger     *logger_i.Logger
}

func New(index vectorDB.Index, embedder embedding.Embedder, thresholds vectorDB.Thresholds) *Retriever {
	return &Retriever{
		index:      index,
		embedder:   embedder,
		thresholds: thresholds,
		logger:     logger_i.NewLogger("retriever"),
	}
}

func (r *Retriever) Thresholds() vectorDB.Thresholds { return r.thresholds }

// Search embeds query and runs the two-tier search starting at threshold.
func (r *Retriever) Search(ctx context.Context, query string, k int, threshold float32) ([]commonModels.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, commonModels.ErrEmptyQuery
	}
	if k < 1 {
		return nil, fmt.Errorf("k must be at least 1, got %d", k)
	}
	if threshold < 0 || threshold > 1 {
		return nil, fmt.Errorf("threshold %v outside [0,1]", threshold)
	}

	vector, err := r.embed(ctx, query)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	results, relaxed, err := vectorDB.SearchWithFallback(ctx, r.index, vector, k, vectorDB.Thresholds{
		Primary: threshold,
		Relaxed: min(r.thresholds.Relaxed, threshold),
	})
	metrics.CaptureExecutionMetrics("vector_search", time.Since(start))
	if relaxed {
		metrics.CaptureRetrievalFallback(len(results) > 0)
	}
	return results, err
}

// Retrieve returns formatted knowledge-base context for query, or "" when nothing
// relevant is found or any step fails.
func (r *Retriever) Retrieve(ctx context.Context, query string, k int) string {
	log := r.logger.WithContext(ctx, config.TRACE_ID_KEY)
	results, err := r.Search(ctx, query, k, r.thresholds.Primary)
	if err != nil {
		log.Error("Error retrieving context", "error", err)
		return ""
	}
	log.Debug("Retrieved context", "hits", len(results))
	return FormatContext(results)
}

// FormatContext renders hits as "[domain]: content" blocks and caps the result.
func FormatContext(results []commonModels.SearchResult) string {
	if len(results) == 0 {
		return ""
	}
	parts := make([]string, len(results))
	for i, res := range results {
		domain := res.Metadata.Domain
		if domain == "" {
			domain = "unknown"
		}
		parts[i] = "[" + domain + "]: " + res.Content
	}
	return utils.Truncate(strings.Join(parts, "\n\n"), config.MaxKnowledgeContextChars, TruncationMarker)
}

// CheckRelevance is deliberately permissive: a domain keyword or any hit at the
// relaxed threshold is enough, and a failing search counts as relevant.
func (r *Retriever) CheckRelevance(ctx context.Context, query string) bool {
	if HasDomainKeyword(query) {
		return true
	}
	results, err := r.Search(ctx, query, config.RelevanceSearchK, r.thresholds.Relaxed)
	if err != nil {
		r.logger.WithContext(ctx, config.TRACE_ID_KEY).Warn("Relevance search failed, treating as relevant", "error", err)
		return true
	}
	return len(results) > 0
}

func HasDomainKeyword(query string) bool {
	q := strings.ToLower(query)
	for _, kw := range relevanceKeywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

func (r *Retriever) embed(ctx context.Context, query string) ([]float32, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("embedding", time.Since(start)) }()
	return r.embedder.EmbedOne(ctx, query)
}
