package vectorDB

import (
	"context"
	"fmt"

	"github.com/akolanti/cogcompanion/internal/domain/commonModels"
)

// Index is a cosine-similarity vector store holding one named collection.
type Index interface {
	Exists(ctx context.Context) (bool, error)
	Create(ctx context.Context, dimension int) error
	// Dimension reports the vector size of the existing collection.
	Dimension(ctx context.Context) (int, error)
	Upsert(ctx context.Context, points []commonModels.IndexedPoint) error
	// Search returns at most k hits with similarity >= threshold, best first.
	Search(ctx context.Context, vector []float32, k int, threshold float32) ([]commonModels.SearchResult, error)
	SearchByDomain(ctx context.Context, domain string, limit int) ([]commonModels.SearchResult, error)
	Count(ctx context.Context) (uint64, error)
}

// EnsureCollection creates the collection when absent and otherwise checks that its
// dimension matches the embedder. A mismatch is fatal for the caller.
func EnsureCollection(ctx context.Context, idx Index, dimension int) (created bool, err error) {
	exists, err := idx.Exists(ctx)
	if err != nil {
		return false, &commonModels.IndexFailure{Op: "exists", Err: err}
	}
	if exists {
		have, err := idx.Dimension(ctx)
		if err != nil {
			return false, &commonModels.IndexFailure{Op: "dimension", Err: err}
		}
		if have != dimension {
			return false, &commonModels.IndexFailure{
				Op:  "dimension",
				Err: fmt.Errorf("%w: collection has %d, embedder produces %d", commonModels.ErrDimensionMismatch, have, dimension),
			}
		}
		return false, nil
	}
	if err := idx.Create(ctx, dimension); err != nil {
		return false, &commonModels.IndexFailure{Op: "create", Err: err}
	}
	return true, nil
}
