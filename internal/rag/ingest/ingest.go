package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/akolanti/cogcompanion/internal/domain/commonModels"
	"github.com/akolanti/cogcompanion/internal/metrics"
	"github.com/akolanti/cogcompanion/internal/rag/embedding"
	"github.com/akolanti/cogcompanion/internal/rag/vectorDB"
	"github.com/akolanti/cogcompanion/pkg/logger_i"
)

// Report describes one ingestion run.
type Report struct {
	FilesLoaded  []string
	FilesMissing []string
	FilesFailed  []string
	Documents    int
	Indexed      int
}

// Ingestor loads the knowledge files into the vector index. It runs once at
// startup and again on explicit reload.
type Ingestor struct {
	index    vectorDB.Index
	embedder embedding.Embedder
	dir      string
	files    []string
	logger   *logger_i.Logger
}

func NewIngestor(index vectorDB.Index, embedder embedding.Embedder, dir string, files []string) *Ingestor {
	return &Ingestor{
		index:    index,
		embedder: embedder,
		dir:      dir,
		files:    files,
		logger:   logger_i.NewLogger("knowledge_ingestion"),
	}
}

// Run returns an error only for index failures, which must stop the process.
// Unreadable files and embedding failures are logged and leave a partial or
// empty knowledge base.
func (in *Ingestor) Run(ctx context.Context) (Report, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("knowledge_ingestion", time.Since(start)) }()

	var report Report
	if _, err := vectorDB.EnsureCollection(ctx, in.index, in.embedder.Dimension()); err != nil {
		in.logger.Error("Collection check failed", "error", err)
		return report, err
	}

	docs := in.loadAll(&report)
	report.Documents = len(docs)
	if len(docs) == 0 {
		in.logger.Warn("No knowledge documents loaded", "dir", in.dir)
		return report, nil
	}

	texts := make([]string, len(docs))
	for i := range docs {
		docs[i].Id = uint64(i + 1)
		texts[i] = docs[i].Content
	}

	vectors, err := in.embedder.EmbedMany(ctx, texts)
	if err != nil {
		in.logger.Error("Embedding knowledge base failed, continuing without it", "error", err, "documents", len(docs))
		return report, nil
	}
	if len(vectors) != len(docs) {
		in.logger.Error("Embedding count mismatch, continuing without knowledge base", "documents", len(docs), "vectors", len(vectors))
		return report, nil
	}

	points := make([]commonModels.IndexedPoint, len(docs))
	for i, d := range docs {
		points[i] = commonModels.IndexedPoint{Id: d.Id, Vector: vectors[i], Content: d.Content, Metadata: d.Metadata}
	}
	if err := in.index.Upsert(ctx, points); err != nil {
		failure := &commonModels.IndexFailure{Op: "upsert", Err: err}
		in.logger.Error("Upserting knowledge base failed", "error", failure)
		return report, failure
	}

	report.Indexed = len(points)
	in.logger.Info("Knowledge base indexed", "documents", report.Indexed, "files", len(report.FilesLoaded), "missing", len(report.FilesMissing), "failed", len(report.FilesFailed))
	return report, nil
}

func (in *Ingestor) loadAll(report *Report) []commonModels.Document {
	var docs []commonModels.Document
	for _, name := range in.files {
		path := filepath.Join(in.dir, name)
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			in.logger.Debug("Knowledge file missing, skipping", "file", path)
			report.FilesMissing = append(report.FilesMissing, name)
			continue
		}
		if err != nil {
			in.logger.Error("Error reading knowledge file", "file", path, "error", err)
			report.FilesFailed = append(report.FilesFailed, name)
			continue
		}

		fileDocs, err := Flatten(data, name)
		if err != nil {
			in.logger.Error("Error parsing knowledge file", "file", path, "error", err)
			report.FilesFailed = append(report.FilesFailed, name)
			continue
		}
		report.FilesLoaded = append(report.FilesLoaded, name)
		docs = append(docs, fileDocs...)
	}
	return docs
}
