package corpus

import "sync"

// MemoryStore is a slice-backed corpus store.
type MemoryStore struct {
	mu   sync.RWMutex
	docs []string
}

// NewMemoryStore creates a store seeded with the given documents.
func NewMemoryStore(docs ...string) *MemoryStore {
	return &MemoryStore{docs: append([]string(nil), docs...)}
}

// Len returns the number of documents.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// Doc returns the document at position i.
func (s *MemoryStore) Doc(i int) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.docs) {
		return "", false
	}
	return s.docs[i], true
}

// Docs returns a copy of all documents in order.
func (s *MemoryStore) Docs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.docs...)
}

// Add appends documents, assigning them the next positions.
func (s *MemoryStore) Add(docs ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = append(s.docs, docs...)
	return nil
}

// Clear removes all documents.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = nil
	return nil
}
