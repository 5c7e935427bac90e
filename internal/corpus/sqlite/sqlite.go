// Package sqlite provides a SQLite-backed corpus store. Documents are loaded
// into memory once at open so reads never touch the database on the query
// path; writes keep the database and the in-memory view in step.
package sqlite

import (
	"database/sql"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	content TEXT NOT NULL
);
`

// Store persists corpus documents in a SQLite database.
type Store struct {
	mu   sync.RWMutex
	db   *sql.DB
	docs []string
}

// Open opens (creating if needed) the database at path and loads all
// documents ordered by id.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open corpus db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init corpus schema: %w", err)
	}
	s := &Store{db: db}
	if err := s.load(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	rows, err := s.db.Query(`SELECT content FROM documents ORDER BY id`)
	if err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}
	defer rows.Close()
	var docs []string
	for rows.Next() {
		var content string
		if err := rows.Scan(&content); err != nil {
			return fmt.Errorf("scan corpus row: %w", err)
		}
		docs = append(docs, content)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	s.docs = docs
	return nil
}

// Len returns the number of documents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// Doc returns the document at position i.
func (s *Store) Doc(i int) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.docs) {
		return "", false
	}
	return s.docs[i], true
}

// Docs returns a copy of all documents in order.
func (s *Store) Docs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.docs...)
}

// Add inserts documents at the end of the corpus.
func (s *Store) Add(docs ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin corpus insert: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO documents (content) VALUES (?)`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare corpus insert: %w", err)
	}
	defer stmt.Close()
	for _, d := range docs {
		if _, err := stmt.Exec(d); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert document: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit corpus insert: %w", err)
	}
	s.docs = append(s.docs, docs...)
	return nil
}

// Clear removes every document.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.Exec(`DELETE FROM documents`); err != nil {
		return fmt.Errorf("clear corpus: %w", err)
	}
	s.docs = nil
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }
