package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/akolanti/cogcompanion/internal/config"
	"github.com/akolanti/cogcompanion/internal/data/store"
	"github.com/akolanti/cogcompanion/internal/handlers"
	"github.com/akolanti/cogcompanion/internal/mcpServer"
	"github.com/akolanti/cogcompanion/internal/middleware"
	"github.com/akolanti/cogcompanion/internal/rag"
	"github.com/akolanti/cogcompanion/internal/rag/ingest"
	"github.com/akolanti/cogcompanion/internal/rag/providers"
	"github.com/akolanti/cogcompanion/internal/rag/retriever"
	"github.com/akolanti/cogcompanion/internal/rag/vectorDB"
	"github.com/akolanti/cogcompanion/internal/rag/vectorDB/memoryDB"
	"github.com/akolanti/cogcompanion/internal/rag/vectorDB/qdrantDB"
	"github.com/akolanti/cogcompanion/internal/server"
	"github.com/akolanti/cogcompanion/internal/session"
	"github.com/akolanti/cogcompanion/pkg/logger_i"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/urfave/cli/v3"
)

// app is everything a command needs after startup: configuration, the chosen
// provider and a populated knowledge index.
type app struct {
	cfg       *config.Config
	providers providers.Set
	retriever *retriever.Retriever
	logger    *logger_i.Logger
}

func bootstrap(ctx context.Context, cfg *config.Config, reindex bool) (*app, error) {
	logger := logger_i.NewLogger("main")

	set, err := providers.Select(ctx, cfg)
	if err != nil {
		return nil, err
	}

	idx, err := openIndex(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := populate(ctx, cfg, idx, set, reindex, logger); err != nil {
		return nil, err
	}

	r := retriever.New(idx, set.Embedder, vectorDB.Thresholds{
		Primary: float32(cfg.SearchThreshold),
		Relaxed: float32(cfg.SearchRelaxedThreshold),
	})
	return &app{cfg: cfg, providers: set, retriever: r, logger: logger}, nil
}

func openIndex(ctx context.Context, cfg *config.Config) (vectorDB.Index, error) {
	if cfg.Qdrant.Host == "" {
		return memoryDB.New(), nil
	}
	holder, err := qdrantDB.GetQdrantClient(ctx, cfg.Qdrant)
	if err != nil {
		return nil, err
	}
	return holder, nil
}

// populate embeds the knowledge files. A persistent collection that already
// holds points is reused unless reindex is set; its dimension is still checked.
func populate(ctx context.Context, cfg *config.Config, idx vectorDB.Index, set providers.Set, reindex bool, logger *logger_i.Logger) error {
	if !reindex {
		if _, err := vectorDB.EnsureCollection(ctx, idx, set.Embedder.Dimension()); err != nil {
			return err
		}
		count, err := idx.Count(ctx)
		if err != nil {
			return err
		}
		if count > 0 {
			logger.Info("Reusing indexed knowledge base", "points", count)
			return nil
		}
	}
	_, err := ingest.NewIngestor(idx, set.Embedder, cfg.KnowledgeDir, cfg.KnowledgeFiles).Run(ctx)
	return err
}

// loadForCLI is bootstrap for the commands that keep stdout for their own output.
func loadForCLI(ctx context.Context, cmd *cli.Command) (*app, error) {
	cfg, err := config.Load(cmd.String("env"))
	if err != nil {
		return nil, err
	}
	logger_i.InitWriter(os.Stderr, cfg.Prod)
	return bootstrap(ctx, cfg, cmd.Bool("reindex"))
}

func (a *app) newService(sessions *session.Manager) rag.Service {
	return rag.NewService(a.retriever, a.providers.LLM, sessions)
}

func serveAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("env"))
	if err != nil {
		return err
	}
	logger_i.Init(cfg.Prod)

	a, err := bootstrap(ctx, cfg, cmd.Bool("reindex"))
	if err != nil {
		return err
	}

	conversations, err := store.New(ctx, a.cfg)
	if err != nil {
		return err
	}
	sessions := session.NewManager(conversations)
	go sessions.RunJanitor(ctx, config.SessionSweepInterval, config.SessionIdleTimeout)

	h := handlers.NewHandler(a.newService(sessions), float32(a.cfg.SearchThreshold))
	chain := middleware.NewChain(a.cfg.AuthToken, config.RATE_LIMIT_PER_SECOND, config.BURST_RATE_LIMIT_PER_SECOND)
	go chain.RunLimiterEviction(ctx)

	a.logger.Info("Starting server", "addr", a.cfg.ListenAddr, "provider", a.providers.Name, "store", a.cfg.ChatStore)
	err = server.NewServer(a.cfg.ListenAddr, server.Routes(h, chain, a.cfg.CORSOrigins)).Run(ctx)
	a.logger.Info("Server stopped")
	return err
}

func searchAction(ctx context.Context, cmd *cli.Command) error {
	a, err := loadForCLI(ctx, cmd)
	if err != nil {
		return err
	}

	threshold := float32(cmd.Float("threshold"))
	if threshold < 0 {
		threshold = float32(a.cfg.SearchThreshold)
	}
	hits, err := a.retriever.Search(ctx, cmd.String("query"), int(cmd.Int("k")), threshold)
	if err != nil {
		return err
	}
	if len(hits) == 0 {
		fmt.Println("no results")
		return nil
	}
	for i, hit := range hits {
		fmt.Printf("%d. [%.3f] %s/%s (%s)\n   %s\n", i+1, hit.Similarity, hit.Metadata.Domain, hit.Metadata.Key, hit.Metadata.Source, hit.Content)
	}
	return nil
}

func summarizeAction(ctx context.Context, cmd *cli.Command) error {
	a, err := loadForCLI(ctx, cmd)
	if err != nil {
		return err
	}

	path := cmd.String("file")
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	svc := a.newService(session.NewManager(store.NewInMemoryConversationStore()))
	file, err := svc.Summarize(ctx, filepath.Base(path), f)
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s, %d bytes)\n\n", file.Name, file.Type, file.SizeBytes)
	for i, s := range file.ChunkSummaries {
		fmt.Printf("Section %d:\n%s\n\n", i+1, s)
	}
	fmt.Println(file.Content)
	return nil
}

func mcpAction(ctx context.Context, cmd *cli.Command) error {
	// stdout carries the protocol, so logs go to stderr like the other one-shot commands
	a, err := loadForCLI(ctx, cmd)
	if err != nil {
		return err
	}
	return mcpServer.New(a.retriever, float32(a.cfg.SearchThreshold)).Run(ctx, &mcp.StdioTransport{})
}
