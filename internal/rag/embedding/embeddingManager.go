package embedding

import (
	"context"
	"errors"
)

// Embedder maps text to fixed-dimension vectors. EmbedMany returns one vector per
// input, in input order.
type Embedder interface {
	EmbedMany(ctx context.Context, texts []string) ([][]float32, error)
	EmbedOne(ctx context.Context, text string) ([]float32, error)
	Dimension() int
	Name() string
}

var ErrCountMismatch = errors.New("embedding count does not match input count")

// Batches splits texts into consecutive groups of at most size elements.
func Batches(texts []string, size int) [][]string {
	if size <= 0 {
		size = len(texts)
	}
	var out [][]string
	for start := 0; start < len(texts); start += size {
		end := min(start+size, len(texts))
		out = append(out, texts[start:end])
	}
	return out
}
