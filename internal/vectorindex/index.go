package vectorindex

// Index supports nearest-neighbor search over precomputed document vectors.
// Search returns (distances, ids) pairs aligned by position; ids below zero
// mean "no match" and pad the result when fewer than k vectors exist.
type Index interface {
	Init(dimension int) error
	Upsert(vectors [][]float32) error
	Search(vector []float32, k int) (dists []float32, ids []int, err error)
	Len() int
	Clear() error
}
