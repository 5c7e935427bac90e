// Package corpus holds the fixed ordered set of legal-text documents
// available for retrieval. Document ids are zero-based positions aligned 1:1
// with vector-index entries.
package corpus

// Store is an integer-indexable, length-stable sequence of document strings.
type Store interface {
	Len() int
	Doc(i int) (string, bool)
	Docs() []string
	Add(docs ...string) error
	Clear() error
}
