package fileProcessor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/akolanti/cogcompanion/internal/config"
	"github.com/akolanti/cogcompanion/internal/domain/commonModels"
	"github.com/akolanti/cogcompanion/internal/metrics"
	"github.com/akolanti/cogcompanion/pkg/logger_i"
)

type extractor func(ctx context.Context, data []byte) (string, error)

var handlers = map[commonModels.FileType]extractor{
	commonModels.TXT:  extractText,
	commonModels.CSV:  extractCSV,
	commonModels.JSON: extractJSON,
	commonModels.PDF:  extractPDF,
	commonModels.XLSX: extractXLSX,
	commonModels.XLS:  extractXLS,
	commonModels.DOCX: extractDocument,
	commonModels.ODT:  extractDocument,
	commonModels.RTF:  extractDocument,
}

var errNoContent = errors.New("no readable text in file")

var logger = logger_i.NewLogger("fileProcessor")

// TypeOf maps a filename to a supported type by its extension.
func TypeOf(filename string) (commonModels.FileType, error) {
	ext := commonModels.FileType(strings.ToLower(filepath.Ext(filename)))
	if _, ok := handlers[ext]; !ok {
		return "", &commonModels.FileProcessingFailure{Name: filename, Err: fmt.Errorf("%w: %q", commonModels.ErrUnsupportedFileType, ext)}
	}
	return ext, nil
}

// Process validates and extracts one upload. Every rejection is a
// *commonModels.FileProcessingFailure wrapping the reason.
func Process(ctx context.Context, filename string, r io.Reader) (commonModels.UploadedFile, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("file_processing", time.Since(start)) }()
	log := logger.WithContext(ctx, config.TRACE_ID_KEY, config.SESSION_ID_KEY)

	fileType, err := TypeOf(filename)
	if err != nil {
		log.Warn("Unsupported file type", "filename", filename)
		return commonModels.UploadedFile{}, err
	}

	data, err := io.ReadAll(io.LimitReader(r, config.MaxUploadBytes+1))
	if err != nil {
		return commonModels.UploadedFile{}, &commonModels.FileProcessingFailure{Name: filename, Err: err}
	}
	if len(data) > config.MaxUploadBytes {
		log.Warn("File exceeds max size", "filename", filename)
		return commonModels.UploadedFile{}, &commonModels.FileProcessingFailure{Name: filename, Err: commonModels.ErrFileTooLarge}
	}

	content, err := handlers[fileType](ctx, data)
	if err == nil && strings.TrimSpace(content) == "" {
		err = errNoContent
	}
	if err != nil {
		log.Error("Failed to process file", "filename", filename, "error", err)
		return commonModels.UploadedFile{}, &commonModels.FileProcessingFailure{Name: filename, Err: err}
	}

	log.Info("Parsed upload", "filename", filename, "file_type", fileType, "size_bytes", len(data), "content_length", len(content))
	return commonModels.UploadedFile{
		Name:       filename,
		Type:       fileType,
		Content:    content,
		SizeBytes:  int64(len(data)),
		UploadedAt: time.Now().UTC(),
	}, nil
}
