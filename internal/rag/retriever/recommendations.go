package retriever

import (
	"context"

	"github.com/akolanti/cogcompanion/internal/config"
	"github.com/akolanti/cogcompanion/internal/domain/commonModels"
)

// Profile holds the risk flags a user reported.
type Profile struct {
	ProcessingSpeedLow bool `json:"processing_speed_low"`
	Hypertension       bool `json:"hypertension"`
	HighCholesterol    bool `json:"high_cholesterol"`
	Diabetes           bool `json:"diabetes"`
	Sedentary          bool `json:"sedentary"`
	PoorSleep          bool `json:"poor_sleep"`
}

func (p Profile) queries() []string {
	var q []string
	if p.ProcessingSpeedLow {
		q = append(q, "processing speed cognitive decline brain health")
	}
	if p.Hypertension {
		q = append(q, "hypertension blood pressure SPRINT MIND cognitive")
	}
	if p.HighCholesterol {
		q = append(q, "cholesterol lipid management cardiovascular cognitive")
	}
	if p.Diabetes {
		q = append(q, "diabetes glucose control cognitive health")
	}
	if p.Sedentary {
		q = append(q, "physical activity exercise aerobic cognitive benefit")
	}
	if p.PoorSleep {
		q = append(q, "sleep quality sleep optimization cognitive function")
	}
	return q
}

// Recommendations searches once per flagged risk and returns the hits with
// duplicate content removed, in first-seen order. Failed searches are skipped.
func (r *Retriever) Recommendations(ctx context.Context, p Profile) []commonModels.SearchResult {
	seen := make(map[string]struct{})
	var out []commonModels.SearchResult
	for _, q := range p.queries() {
		results, err := r.Search(ctx, q, config.RecommendationsPerSignal, r.thresholds.Primary)
		if err != nil {
			r.logger.Warn("Recommendation search failed", "query", q, "error", err)
			continue
		}
		for _, res := range results {
			if _, dup := seen[res.Content]; dup {
				continue
			}
			seen[res.Content] = struct{}{}
			out = append(out, res)
		}
	}
	return out
}
