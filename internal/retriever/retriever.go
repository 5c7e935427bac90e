// Package retriever finds the corpus documents most relevant to a query. It
// prefers similarity search over embeddings and degrades to lexical token
// scoring whenever the semantic path is unavailable or comes back empty, so
// the caller always gets some context when a corpus exists.
package retriever

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"lexai/internal/domain"
	"lexai/internal/embedding"
)

// DefaultTopK is the number of documents returned when the caller does not
// ask for a specific count.
const DefaultTopK = 2

// substringBonus rewards documents containing the full query verbatim;
// shortDocBonus breaks ties toward concise documents.
const (
	substringBonus    = 3.0
	shortDocBonus     = 0.1
	shortDocThreshold = 1000
)

// SimilarityRetriever orchestrates embedding lookup, vector-index search and
// the lexical fallback. Any of embedder/index may be nil; retrieval then runs
// purely lexical.
type SimilarityRetriever struct {
	embedder domain.Embedder
	index    domain.VectorIndex
	corpus   domain.CorpusStore
	cache    *embedding.Cache
	log      *logrus.Entry
}

// New creates a retriever. cache may be nil to disable embedding caching.
func New(embedder domain.Embedder, index domain.VectorIndex, corpus domain.CorpusStore, cache *embedding.Cache, log *logrus.Entry) *SimilarityRetriever {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &SimilarityRetriever{
		embedder: embedder,
		index:    index,
		corpus:   corpus,
		cache:    cache,
		log:      log.WithField("component", "retriever"),
	}
}

// Retrieve returns up to topK documents, most relevant first. It never
// fails: collaborator errors degrade to the lexical fallback, and an empty
// query or empty corpus returns an empty slice.
func (r *SimilarityRetriever) Retrieve(query string, topK int) []string {
	if query == "" {
		return nil
	}
	if topK <= 0 {
		topK = DefaultTopK
	}
	start := time.Now()

	if r.embedder != nil && r.index != nil && r.corpus != nil {
		results, err := r.semanticSearch(query, topK)
		if err != nil {
			r.log.WithError(err).Warn("embedding/index retrieval failed, falling back to text search")
		} else if len(results) > 0 {
			r.log.WithFields(logrus.Fields{
				"results":  len(results),
				"duration": time.Since(start),
				"top_k":    topK,
			}).Info("semantic retrieval done")
			return results
		} else {
			r.log.Debug("index returned no usable results, falling back to text scoring")
		}
	}

	var docs []string
	if r.corpus != nil {
		docs = r.corpus.Docs()
	}
	results := lexicalSearch(query, docs, topK)
	r.log.WithFields(logrus.Fields{
		"results":  len(results),
		"duration": time.Since(start),
		"top_k":    topK,
	}).Info("lexical retrieval done")
	return results
}

// semanticSearch embeds the query (through the cache), searches the index and
// maps ids back to documents. Ids below zero or outside corpus bounds are
// silently skipped.
func (r *SimilarityRetriever) semanticSearch(query string, topK int) ([]string, error) {
	vec, err := r.queryEmbedding(query)
	if err != nil {
		return nil, err
	}
	_, ids, err := r.index.Search(vec, topK)
	if err != nil {
		return nil, fmt.Errorf("index search: %w", err)
	}
	results := make([]string, 0, topK)
	for _, id := range ids {
		if id < 0 {
			continue
		}
		doc, ok := r.corpus.Doc(id)
		if !ok {
			continue
		}
		results = append(results, doc)
		if len(results) == topK {
			break
		}
	}
	return results, nil
}

func (r *SimilarityRetriever) queryEmbedding(query string) ([]float32, error) {
	if r.cache != nil {
		if vec, ok := r.cache.Get(query); ok {
			return vec, nil
		}
	}
	vec, err := r.embedder.Embed(query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if r.cache != nil {
		r.cache.Put(query, vec)
	}
	return vec, nil
}

// lexicalSearch scores each document by summed occurrence counts of the
// lower-cased query tokens, with a bonus for containing the full query and a
// small tie-break bonus for short documents. If nothing scores positive it
// returns the first topK documents, so callers still get context.
func lexicalSearch(query string, docs []string, topK int) []string {
	if len(docs) == 0 {
		return nil
	}
	tokens := strings.Fields(strings.ToLower(query))
	fullQuery := strings.TrimSpace(strings.ToLower(query))

	type scored struct {
		idx   int
		score float64
	}
	scores := make([]scored, len(docs))
	for i, d := range docs {
		text := strings.ToLower(d)
		score := 0.0
		for _, tok := range tokens {
			score += float64(strings.Count(text, tok))
		}
		if fullQuery != "" && strings.Contains(text, fullQuery) {
			score += substringBonus
		}
		if utf8.RuneCountInString(text) <= shortDocThreshold {
			score += shortDocBonus
		}
		scores[i] = scored{idx: i, score: score}
	}
	sort.SliceStable(scores, func(a, b int) bool { return scores[a].score > scores[b].score })

	out := make([]string, 0, topK)
	for _, sc := range scores {
		if sc.score <= 0 || len(out) == topK {
			break
		}
		out = append(out, docs[sc.idx])
	}
	if len(out) == 0 {
		for i := 0; i < len(docs) && i < topK; i++ {
			out = append(out, docs[i])
		}
	}
	return out
}
