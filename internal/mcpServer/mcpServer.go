// Package mcpServer exposes the knowledge base read side as MCP tools so that
// assistants can ground their answers without going through the chat pipeline.
package mcpServer

import (
	"context"

	"github.com/akolanti/cogcompanion/internal/config"
	"github.com/akolanti/cogcompanion/internal/domain/commonModels"
	"github.com/akolanti/cogcompanion/internal/rag/retriever"
	"github.com/akolanti/cogcompanion/pkg/logger_i"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	serverName    = "cogcompanion"
	serverVersion = "v1.0.0"
)

// Knowledge is the part of the retriever the tools need.
type Knowledge interface {
	Search(ctx context.Context, query string, k int, threshold float32) ([]commonModels.SearchResult, error)
	CheckRelevance(ctx context.Context, query string) bool
	Recommendations(ctx context.Context, p retriever.Profile) []commonModels.SearchResult
}

type SearchParams struct {
	Query     string   `json:"query" jsonschema:"the question or topic to look up"`
	K         int      `json:"k,omitempty" jsonschema:"maximum number of results, default 5"`
	Threshold *float64 `json:"threshold,omitempty" jsonschema:"minimum cosine similarity in [0,1]"`
}

type Hit struct {
	Content    string  `json:"content"`
	Domain     string  `json:"domain"`
	Source     string  `json:"source"`
	Similarity float32 `json:"similarity"`
}

type SearchOutput struct {
	Results []Hit `json:"results"`
}

type RelevanceParams struct {
	Query string `json:"query" jsonschema:"the user question"`
}

type RelevanceOutput struct {
	Relevant bool `json:"relevant"`
}

type ProfileParams struct {
	ProcessingSpeedLow bool `json:"processing_speed_low,omitempty" jsonschema:"processing speed scored low"`
	Hypertension       bool `json:"hypertension,omitempty"`
	HighCholesterol    bool `json:"high_cholesterol,omitempty"`
	Diabetes           bool `json:"diabetes,omitempty"`
	Sedentary          bool `json:"sedentary,omitempty"`
	PoorSleep          bool `json:"poor_sleep,omitempty"`
}

type tools struct {
	knowledge        Knowledge
	defaultThreshold float32
	logger           *logger_i.Logger
}

// New builds the server with every tool registered. Run it with
// server.Run(ctx, &mcp.StdioTransport{}).
func New(knowledge Knowledge, defaultThreshold float32) *mcp.Server {
	t := &tools{
		knowledge:        knowledge,
		defaultThreshold: defaultThreshold,
		logger:           logger_i.NewLogger("mcp"),
	}
	server := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_knowledge",
		Description: "Search the cognitive health knowledge base (vascular health, lifestyle, sleep and trial evidence).",
	}, t.search)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "check_relevance",
		Description: "Report whether a question belongs to the cognitive health domain.",
	}, t.checkRelevance)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "recommend_evidence",
		Description: "Knowledge base entries for the risk factors flagged in a profile.",
	}, t.recommend)
	return server
}

func (t *tools) search(ctx context.Context, _ *mcp.CallToolRequest, args SearchParams) (*mcp.CallToolResult, SearchOutput, error) {
	k := args.K
	if k == 0 {
		k = config.DefaultSearchK
	}
	threshold := t.defaultThreshold
	if args.Threshold != nil {
		threshold = float32(*args.Threshold)
	}

	results, err := t.knowledge.Search(ctx, args.Query, k, threshold)
	if err != nil {
		t.logger.Warn("search_knowledge failed", "query", args.Query, "error", err)
		return nil, SearchOutput{}, err
	}
	return nil, toOutput(results), nil
}

func (t *tools) checkRelevance(ctx context.Context, _ *mcp.CallToolRequest, args RelevanceParams) (*mcp.CallToolResult, RelevanceOutput, error) {
	return nil, RelevanceOutput{Relevant: t.knowledge.CheckRelevance(ctx, args.Query)}, nil
}

func (t *tools) recommend(ctx context.Context, _ *mcp.CallToolRequest, args ProfileParams) (*mcp.CallToolResult, SearchOutput, error) {
	return nil, toOutput(t.knowledge.Recommendations(ctx, retriever.Profile(args))), nil
}

func toOutput(results []commonModels.SearchResult) SearchOutput {
	hits := make([]Hit, len(results))
	for i, r := range results {
		hits[i] = Hit{
			Content:    r.Content,
			Domain:     r.Metadata.Domain,
			Source:     r.Metadata.Source,
			Similarity: r.Similarity,
		}
	}
	return SearchOutput{Results: hits}
}
