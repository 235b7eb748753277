package commonModels

import (
	"errors"
	"fmt"
)

var (
	ErrDimensionMismatch   = errors.New("collection dimension does not match embedding dimension")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds upload size limit")
	ErrEmptyQuery          = errors.New("query is empty")
	ErrSessionNotFound     = errors.New("session not found")
	ErrInvalidSessionId    = errors.New("invalid session id")
	ErrCorruptSession      = errors.New("session history is unreadable")
)

type EmbeddingFailure struct {
	Provider string
	Err      error
}

func (e *EmbeddingFailure) Error() string {
	return fmt.Sprintf("embedding failure (%s): %v", e.Provider, e.Err)
}

func (e *EmbeddingFailure) Unwrap() error { return e.Err }

type IndexFailure struct {
	Op  string
	Err error
}

func (e *IndexFailure) Error() string {
	return fmt.Sprintf("index failure during %s: %v", e.Op, e.Err)
}

func (e *IndexFailure) Unwrap() error { return e.Err }

type SummarizationChunkFailure struct {
	Index int
	Err   error
}

func (e *SummarizationChunkFailure) Error() string {
	return fmt.Sprintf("summarizing section %d: %v", e.Index, e.Err)
}

func (e *SummarizationChunkFailure) Unwrap() error { return e.Err }

type SummarizationFusionFailure struct {
	Err error
}

func (e *SummarizationFusionFailure) Error() string {
	return fmt.Sprintf("fusing section summaries: %v", e.Err)
}

func (e *SummarizationFusionFailure) Unwrap() error { return e.Err }

type FileProcessingFailure struct {
	Name string
	Err  error
}

func (e *FileProcessingFailure) Error() string {
	return fmt.Sprintf("processing file %q: %v", e.Name, e.Err)
}

func (e *FileProcessingFailure) Unwrap() error { return e.Err }

type LLMCallFailure struct {
	Provider string
	Err      error
}

func (e *LLMCallFailure) Error() string {
	return fmt.Sprintf("llm call failure (%s): %v", e.Provider, e.Err)
}

func (e *LLMCallFailure) Unwrap() error { return e.Err }
