package domain

import "context"

// Document represents a single raw text file loaded during ingestion.
type Document struct {
	ID      string
	Path    string
	Content string
}

// Chunk is a semantically meaningful part of a document stored in the corpus.
type Chunk struct {
	DocumentID string
	ChunkID    string
	Text       string
	Index      int
}

// ExtractedMetadata holds the category-specific signal lines pulled out of
// retrieved documents. The four lists are mutually deduplicated.
type ExtractedMetadata struct {
	Sections  []string
	Penalties []string
	KeyPoints []string
	Examples  []string
}

// AnswerMetadata is the machine-readable half of an answer. The JSON shape is
// part of the public output contract and must not change.
type AnswerMetadata struct {
	TLDR        string   `json:"tldr"`
	ShortAnswer string   `json:"short_answer"`
	Sections    []string `json:"sections"`
	Penalties   []string `json:"penalties"`
	KeyPoints   []string `json:"key_points"`
	Examples    []string `json:"examples"`
	Detailed    string   `json:"detailed"`
}

// AnswerRecord is the full result of one query: rendered markdown plus
// metadata. Created fresh per query, never persisted.
type AnswerRecord struct {
	Markdown string         `json:"markdown"`
	Metadata AnswerMetadata `json:"metadata"`
}

// PipelineStats is a snapshot of in-memory request counters for monitoring.
type PipelineStats struct {
	Requests           int64    `json:"requests"`
	LastRetrievalSecs  *float64 `json:"last_retrieval_s"`
	LastGenerationSecs *float64 `json:"last_generation_s"`
	AvgRetrievalSecs   *float64 `json:"avg_retrieval_s"`
	AvgGenerationSecs  *float64 `json:"avg_generation_s"`
}

// Embedder converts free text into a numeric vector representation.
// Implementations may require a preparation phase over the corpus.
type Embedder interface {
	Name() string
	Prepare(corpus []string) error
	Dimension() int
	Embed(text string) ([]float32, error)
}

// Chunker splits documents into chunks suitable for corpus storage.
type Chunker interface {
	Chunk(document Document) ([]Chunk, error)
}

// VectorIndex supports nearest-neighbor search over document vectors.
// Search returns distances and corpus ids aligned by position; an id below
// zero means "no match" at that slot.
type VectorIndex interface {
	Init(dimension int) error
	Upsert(vectors [][]float32) error
	Search(vector []float32, k int) (dists []float32, ids []int, err error)
	Len() int
	Clear() error
}

// CorpusStore is an ordered sequence of document strings aligned by index
// with the vector index. Reads are stable for the process lifetime once
// ingestion has finished.
type CorpusStore interface {
	Len() int
	Doc(i int) (string, bool)
	Docs() []string
	Add(docs ...string) error
	Clear() error
}

// Retriever returns the documents most relevant to a query, most relevant
// first. It never fails: degraded paths return whatever they can.
type Retriever interface {
	Retrieve(query string, topK int) []string
}

// Generator produces an AnswerRecord for a query given retrieved documents,
// falling back to deterministic assembly when the backend is unavailable.
type Generator interface {
	Generate(query string, docs []string) *AnswerRecord
}

// Backend is a generative-text service. Complete returns the raw response
// body; the caller normalizes it into plain text. May hang or fail.
type Backend interface {
	Complete(ctx context.Context, prompt string) ([]byte, error)
}

// Summarizer produces a brief summary of the provided text. Used for the
// ingest report, not for answer assembly.
type Summarizer interface {
	Summarize(text string, maxSentences int) (string, error)
}

// LegalService defines the operations exposed by the application core.
type LegalService interface {
	Ingest(paths []string) (summary string, err error)
	Answer(query string) *AnswerRecord
	Stats() PipelineStats
}
