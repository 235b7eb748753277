package vectorDB

import (
	"context"

	"github.com/akolanti/cogcompanion/internal/domain/commonModels"
)

// Thresholds is the two-tier similarity policy: search at Primary and, only when
// that yields nothing, retry once at Relaxed.
type Thresholds struct {
	Primary float32
	Relaxed float32
}

// SearchWithFallback makes at most two index calls. The second flag reports
// whether the relaxed threshold produced the results.
func SearchWithFallback(ctx context.Context, idx Index, vector []float32, k int, th Thresholds) ([]commonModels.SearchResult, bool, error) {
	results, err := idx.Search(ctx, vector, k, th.Primary)
	if err != nil {
		return nil, false, &commonModels.IndexFailure{Op: "search", Err: err}
	}
	if len(results) > 0 || th.Relaxed >= th.Primary {
		return truncate(results, k), false, nil
	}

	results, err = idx.Search(ctx, vector, k, th.Relaxed)
	if err != nil {
		return nil, true, &commonModels.IndexFailure{Op: "search", Err: err}
	}
	return truncate(results, k), true, nil
}

func truncate(results []commonModels.SearchResult, k int) []commonModels.SearchResult {
	if k >= 0 && len(results) > k {
		return results[:k]
	}
	return results
}
