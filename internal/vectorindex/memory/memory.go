// Package memory is a brute-force in-memory vector index using cosine
// distance. Positions in the index are the corpus document ids.
package memory

import (
	"errors"
	"sort"
	"sync"

	"github.com/viant/vec/search"
)

// Index stores document vectors and their precomputed magnitudes.
type Index struct {
	mu         sync.RWMutex
	dimension  int
	vectors    [][]float32
	magnitudes []float32
}

// NewIndex creates an empty index. Init must be called before Upsert.
func NewIndex() *Index { return &Index{} }

// Init sets the vector dimension and drops any stored vectors.
func (ix *Index) Init(dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.dimension = dimension
	ix.vectors = nil
	ix.magnitudes = nil
	return nil
}

// Upsert appends vectors in order; their positions become their ids.
func (ix *Index) Upsert(vectors [][]float32) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	for _, v := range vectors {
		if len(v) != ix.dimension {
			return errors.New("vector dimension mismatch")
		}
	}
	for _, v := range vectors {
		ix.vectors = append(ix.vectors, v)
		ix.magnitudes = append(ix.magnitudes, search.Float32s(v).Magnitude())
	}
	return nil
}

// Len returns the number of stored vectors.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.vectors)
}

// Clear drops all stored vectors but keeps the dimension.
func (ix *Index) Clear() error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.vectors = nil
	ix.magnitudes = nil
	return nil
}

// Search returns the k nearest vectors by cosine distance. Slots beyond the
// number of usable matches carry id -1, the convention callers rely on. A
// zero-magnitude query matches nothing.
func (ix *Index) Search(vector []float32, k int) ([]float32, []int, error) {
	if k <= 0 {
		return nil, nil, errors.New("invalid k")
	}
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	if len(vector) != ix.dimension {
		return nil, nil, errors.New("query vector dimension mismatch")
	}

	dists := make([]float32, k)
	ids := make([]int, k)
	for i := range ids {
		ids[i] = -1
	}

	q := search.Float32s(vector)
	qmag := q.Magnitude()
	if qmag == 0 || len(ix.vectors) == 0 {
		return dists, ids, nil
	}

	type hit struct {
		id   int
		dist float32
	}
	hits := make([]hit, len(ix.vectors))
	for i, v := range ix.vectors {
		hits[i] = hit{id: i, dist: q.CosineDistanceWithMagnitude(v, qmag, ix.magnitudes[i])}
	}
	sort.SliceStable(hits, func(a, b int) bool { return hits[a].dist < hits[b].dist })

	n := k
	if n > len(hits) {
		n = len(hits)
	}
	for i := 0; i < n; i++ {
		dists[i] = hits[i].dist
		ids[i] = hits[i].id
	}
	return dists, ids, nil
}
