// Package service wires the retrieval-and-synthesis pipeline together:
// ingestion of legal text into the corpus and index, and per-query
// retrieve → generate → assemble answering.
package service

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"lexai/internal/corpus"
	"lexai/internal/domain"
)

// LegalServiceImpl orchestrates the pipeline. All collaborators are injected;
// embedder and index may be nil, in which case retrieval is purely lexical.
type LegalServiceImpl struct {
	chunker    domain.Chunker
	embedder   domain.Embedder
	store      domain.CorpusStore
	index      domain.VectorIndex
	retriever  domain.Retriever
	generator  domain.Generator
	summarizer domain.Summarizer
	topK       int
	log        *logrus.Entry
	stats      statsCollector
}

// NewLegalService creates the pipeline service.
func NewLegalService(
	chunker domain.Chunker,
	embedder domain.Embedder,
	store domain.CorpusStore,
	index domain.VectorIndex,
	ret domain.Retriever,
	gen domain.Generator,
	sum domain.Summarizer,
	topK int,
	log *logrus.Entry,
) *LegalServiceImpl {
	if topK <= 0 {
		topK = 2
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &LegalServiceImpl{
		chunker:    chunker,
		embedder:   embedder,
		store:      store,
		index:      index,
		retriever:  ret,
		generator:  gen,
		summarizer: sum,
		topK:       topK,
		log:        log.WithField("component", "service"),
	}
}

// Ingest loads .txt and .jsonl inputs, chunks plain text into corpus
// documents, rebuilds the corpus store, prepares the embedder and fills the
// vector index. It returns a brief frequency summary of the ingested text.
func (s *LegalServiceImpl) Ingest(paths []string) (string, error) {
	files := corpus.ExpandPaths(paths)
	if len(files) == 0 {
		return "", fmt.Errorf("no .txt or .jsonl documents found")
	}

	var docs []string
	var allText strings.Builder
	for _, path := range files {
		if strings.HasSuffix(strings.ToLower(path), ".jsonl") {
			loaded, err := corpus.LoadJSONL(path)
			if err != nil {
				return "", err
			}
			for _, d := range loaded {
				docs = append(docs, d)
				allText.WriteString("\n")
				allText.WriteString(d)
			}
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		doc := domain.Document{ID: hashString(path), Path: path, Content: string(data)}
		chunks, err := s.chunker.Chunk(doc)
		if err != nil {
			return "", err
		}
		for _, ch := range chunks {
			docs = append(docs, ch.Text)
		}
		allText.WriteString("\n")
		allText.WriteString(doc.Content)
	}
	if len(docs) == 0 {
		return "", fmt.Errorf("no documents produced from inputs")
	}

	if err := s.store.Clear(); err != nil {
		return "", err
	}
	if err := s.store.Add(docs...); err != nil {
		return "", err
	}

	if s.embedder != nil && s.index != nil {
		if err := s.buildIndex(docs); err != nil {
			// the lexical fallback still serves queries without an index
			s.log.WithError(err).Warn("index build failed; retrieval will be lexical only")
		}
	}

	s.log.WithField("documents", len(docs)).Info("corpus ingested")

	if s.summarizer == nil {
		return fmt.Sprintf("Ingested %d documents.", len(docs)), nil
	}
	return s.summarizer.Summarize(allText.String(), 5)
}

func (s *LegalServiceImpl) buildIndex(docs []string) error {
	if err := s.embedder.Prepare(docs); err != nil {
		return fmt.Errorf("prepare embedder: %w", err)
	}
	if err := s.index.Init(s.embedder.Dimension()); err != nil {
		return fmt.Errorf("init index: %w", err)
	}
	vectors := make([][]float32, len(docs))
	for i, d := range docs {
		vec, err := s.embedder.Embed(d)
		if err != nil {
			return fmt.Errorf("embed document %d: %w", i, err)
		}
		vectors[i] = vec
	}
	if err := s.index.Upsert(vectors); err != nil {
		return fmt.Errorf("upsert vectors: %w", err)
	}
	return nil
}

// Answer runs the full pipeline for one query. It is total: every query,
// including the empty one, yields a well-formed record.
func (s *LegalServiceImpl) Answer(query string) *domain.AnswerRecord {
	rStart := time.Now()
	docs := s.retriever.Retrieve(query, s.topK)
	retrievalDur := time.Since(rStart)

	gStart := time.Now()
	record := s.generator.Generate(query, docs)
	generationDur := time.Since(gStart)

	s.stats.observe(retrievalDur, generationDur)
	s.log.WithFields(logrus.Fields{
		"docs":       len(docs),
		"retrieval":  retrievalDur,
		"generation": generationDur,
	}).Info("query answered")
	return record
}

// Stats returns a snapshot of the in-memory request counters.
func (s *LegalServiceImpl) Stats() domain.PipelineStats {
	return s.stats.snapshot()
}

func hashString(s string) string {
	h := sha1.Sum([]byte(s))
	return hex.EncodeToString(h[:8])
}
