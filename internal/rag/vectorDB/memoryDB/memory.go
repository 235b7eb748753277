// Package memoryDB is an in-process cosine index used when no Qdrant host is
// configured. Contents are lost on restart.
package memoryDB

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/akolanti/cogcompanion/internal/domain/commonModels"
)

var ErrNoCollection = errors.New("collection does not exist")

type Index struct {
	mu        sync.RWMutex
	created   bool
	dimension int
	points    map[uint64]commonModels.IndexedPoint
}

func New() *Index {
	return &Index{points: make(map[uint64]commonModels.IndexedPoint)}
}

func (m *Index) Exists(_ context.Context) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.created, nil
}

func (m *Index) Create(_ context.Context, dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("invalid dimension %d", dimension)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = true
	m.dimension = dimension
	return nil
}

func (m *Index) Dimension(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.created {
		return 0, ErrNoCollection
	}
	return m.dimension, nil
}

func (m *Index) Upsert(_ context.Context, points []commonModels.IndexedPoint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.created {
		return ErrNoCollection
	}
	for _, p := range points {
		if len(p.Vector) != m.dimension {
			return fmt.Errorf("point %d: %w", p.Id, commonModels.ErrDimensionMismatch)
		}
	}
	for _, p := range points {
		p.Vector = append([]float32(nil), p.Vector...)
		m.points[p.Id] = p
	}
	return nil
}

func (m *Index) Search(_ context.Context, vector []float32, k int, threshold float32) ([]commonModels.SearchResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.created {
		return nil, ErrNoCollection
	}
	if len(vector) != m.dimension {
		return nil, commonModels.ErrDimensionMismatch
	}

	var results []commonModels.SearchResult
	for _, p := range m.points {
		sim := cosine(vector, p.Vector)
		if sim < threshold {
			continue
		}
		results = append(results, commonModels.SearchResult{
			Id:         p.Id,
			Content:    p.Content,
			Metadata:   p.Metadata,
			Similarity: sim,
		})
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Similarity != results[j].Similarity {
			return results[i].Similarity > results[j].Similarity
		}
		return results[i].Id < results[j].Id
	})
	if k >= 0 && len(results) > k {
		results = results[:k]
	}
	return results, nil
}

func (m *Index) SearchByDomain(_ context.Context, domain string, limit int) ([]commonModels.SearchResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.created {
		return nil, ErrNoCollection
	}
	var results []commonModels.SearchResult
	for _, p := range m.points {
		if p.Metadata.Domain == domain {
			results = append(results, commonModels.SearchResult{Id: p.Id, Content: p.Content, Metadata: p.Metadata})
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Id < results[j].Id })
	if limit >= 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (m *Index) Count(_ context.Context) (uint64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return uint64(len(m.points)), nil
}

// cosine returns 0 when either vector has zero norm.
func cosine(a, b []float32) float32 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(na) * math.Sqrt(nb)))
}
