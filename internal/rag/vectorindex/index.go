package vectorindex

import (
	"fmt"
	"sort"
	"sync"

	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/metrics"
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/pkg/logger_i"
)

// Index is a flat, exact-search vector store: an append-only slice of
// float32 vectors and a parallel slice of chunk ids. Position i in both
// slices refers to the same chunk - that invariant is the whole design, so
// every mutation happens under one lock and appends are all-or-nothing.
//
// A linear scan is fine at this scale. If this ever outgrows memory the
// swap happens behind Add/Search/Save/Load, not in the callers.
type Index struct {
	mu        sync.RWMutex
	dimension int
	vectors   [][]float32
	chunkIDs  []string

	vectorPath string
	idsPath    string
	logger     *logger_i.Logger
}

// Match is one search hit. Distance is squared euclidean - smaller is closer.
type Match struct {
	ChunkID  string
	Distance float64
}

// New opens the index stored under dir, or starts empty when there is no
// prior state. The dimension is fixed for the life of the index; every
// vector added or queried must match it exactly.
func New(dimension int, dir string) (*Index, error) {
	if dimension <= 0 {
		return nil, fmt.Errorf("invalid vector dimension %d", dimension)
	}

	idx := &Index{
		dimension: dimension,
		logger:    logger_i.NewLogger("VectorIndex"),
	}
	if err := idx.setPaths(dir); err != nil {
		return nil, err
	}

	idx.load()
	return idx, nil
}

// Add appends a batch of vectors with their chunk ids. Either the whole
// batch lands or none of it does - a concurrent Search never observes the
// parallel slices at different lengths.
func (idx *Index) Add(vectors [][]float32, chunkIDs []string) (int, error) {
	if len(vectors) != len(chunkIDs) {
		return 0, fmt.Errorf("vector/id count mismatch: %d vs %d", len(vectors), len(chunkIDs))
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	//validate everything before touching state
	for i, v := range vectors {
		if len(v) != idx.dimension {
			return 0, fmt.Errorf("vector %d has dimension %d, index requires %d", i, len(v), idx.dimension)
		}
	}

	base := len(idx.vectors)
	for _, v := range vectors {
		owned := make([]float32, len(v))
		copy(owned, v)
		idx.vectors = append(idx.vectors, owned)
	}
	idx.chunkIDs = append(idx.chunkIDs, chunkIDs...)

	metrics.SetIndexedVectorCount(len(idx.vectors))
	idx.logger.Info("Added vectors to index", "batch", len(vectors), "total", len(idx.vectors))
	return base, nil
}

// Search scans every stored vector and returns the k nearest by squared
// euclidean distance, ascending. k is clamped to the stored count; an empty
// index returns no matches and no error.
func (idx *Index) Search(query []float32, k int) ([]Match, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if len(idx.vectors) == 0 {
		return nil, nil
	}
	if len(query) != idx.dimension {
		return nil, fmt.Errorf("query has dimension %d, index requires %d", len(query), idx.dimension)
	}
	if k < 1 {
		k = 1
	}
	if k > len(idx.vectors) {
		k = len(idx.vectors)
	}

	matches := make([]Match, len(idx.vectors))
	for i, v := range idx.vectors {
		var dist float64
		for j := range v {
			d := float64(v[j]) - float64(query[j])
			dist += d * d
		}
		matches[i] = Match{ChunkID: idx.chunkIDs[i], Distance: dist}
	}

	//stable so ties resolve by insertion order
	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].Distance < matches[b].Distance
	})

	return matches[:k], nil
}

// TotalVectors reports how many vectors are currently searchable.
func (idx *Index) TotalVectors() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.vectors)
}

// Dimension returns the fixed vector dimension of this index.
func (idx *Index) Dimension() int {
	return idx.dimension
}

// Reset discards every vector and chunk id, then persists the empty state.
// This is the full-reindex path - there is no deletion by id.
func (idx *Index) Reset() error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.vectors = nil
	idx.chunkIDs = nil
	metrics.SetIndexedVectorCount(0)
	idx.logger.Info("Index reset")
	return idx.saveLocked()
}
