package retriever

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexai/internal/corpus"
	"lexai/internal/embedding"
)

type stubEmbedder struct {
	vector []float32
	err    error
	calls  int
}

func (s *stubEmbedder) Name() string             { return "stub" }
func (s *stubEmbedder) Prepare(_ []string) error { return nil }
func (s *stubEmbedder) Dimension() int           { return len(s.vector) }

func (s *stubEmbedder) Embed(_ string) ([]float32, error) {
	s.calls++
	return s.vector, s.err
}

type stubIndex struct {
	ids []int
	err error
}

func (s *stubIndex) Init(_ int) error           { return nil }
func (s *stubIndex) Upsert(_ [][]float32) error { return nil }
func (s *stubIndex) Len() int                   { return len(s.ids) }
func (s *stubIndex) Clear() error               { return nil }

func (s *stubIndex) Search(_ []float32, k int) ([]float32, []int, error) {
	if s.err != nil {
		return nil, nil, s.err
	}
	return make([]float32, len(s.ids)), s.ids, nil
}

func TestRetrieve_EmptyQuery(t *testing.T) {
	r := New(nil, nil, corpus.NewMemoryStore("doc"), nil, nil)
	assert.Nil(t, r.Retrieve("", 2))
}

func TestRetrieve_EmptyCorpus(t *testing.T) {
	r := New(nil, nil, corpus.NewMemoryStore(), nil, nil)
	assert.Empty(t, r.Retrieve("theft", 2))
}

func TestRetrieve_SemanticPathMapsIdsToDocuments(t *testing.T) {
	store := corpus.NewMemoryStore("doc zero", "doc one", "doc two")
	emb := &stubEmbedder{vector: []float32{1, 0}}
	idx := &stubIndex{ids: []int{2, 0}}

	r := New(emb, idx, store, nil, nil)
	got := r.Retrieve("query", 2)
	assert.Equal(t, []string{"doc two", "doc zero"}, got)
}

func TestRetrieve_SemanticSkipsNegativeAndOutOfRangeIds(t *testing.T) {
	store := corpus.NewMemoryStore("doc zero", "doc one")
	emb := &stubEmbedder{vector: []float32{1, 0}}
	idx := &stubIndex{ids: []int{-1, 7, 1}}

	r := New(emb, idx, store, nil, nil)
	got := r.Retrieve("query", 3)
	assert.Equal(t, []string{"doc one"}, got)
}

func TestRetrieve_AllMissesFallBackToLexical(t *testing.T) {
	store := corpus.NewMemoryStore("nothing about it", "cheating is an offence")
	emb := &stubEmbedder{vector: []float32{1, 0}}
	idx := &stubIndex{ids: []int{-1, -1}}

	r := New(emb, idx, store, nil, nil)
	got := r.Retrieve("cheating", 1)
	assert.Equal(t, []string{"cheating is an offence"}, got)
}

func TestRetrieve_EmbedderErrorFallsBackToLexical(t *testing.T) {
	store := corpus.NewMemoryStore("theft of property")
	emb := &stubEmbedder{err: errors.New("embedding service down")}

	r := New(emb, &stubIndex{}, store, nil, nil)
	got := r.Retrieve("theft", 1)
	assert.Equal(t, []string{"theft of property"}, got)
}

func TestRetrieve_IndexErrorFallsBackToLexical(t *testing.T) {
	store := corpus.NewMemoryStore("theft of property")
	emb := &stubEmbedder{vector: []float32{1, 0}}
	idx := &stubIndex{err: errors.New("index broken")}

	r := New(emb, idx, store, nil, nil)
	got := r.Retrieve("theft", 1)
	assert.Equal(t, []string{"theft of property"}, got)
}

func TestRetrieve_CacheAvoidsRepeatEmbedding(t *testing.T) {
	store := corpus.NewMemoryStore("doc zero")
	emb := &stubEmbedder{vector: []float32{1, 0}}
	idx := &stubIndex{ids: []int{0}}
	cache := embedding.NewCache(8)

	r := New(emb, idx, store, cache, nil)
	r.Retrieve("same query", 1)
	r.Retrieve("same query", 1)
	assert.Equal(t, 1, emb.calls)
}

func TestRetrieve_NonPositiveTopKUsesDefault(t *testing.T) {
	store := corpus.NewMemoryStore("theft one", "theft two", "theft three")
	r := New(nil, nil, store, nil, nil)
	got := r.Retrieve("theft", 0)
	assert.Len(t, got, DefaultTopK)
}

func TestLexicalSearch_FullQueryBonusWins(t *testing.T) {
	docs := []string{
		"Cheating is defined in Section 415.",
		"Punishment for cheating is described here.",
	}
	got := lexicalSearch("punishment for cheating", docs, 2)
	require.Len(t, got, 2)
	assert.Equal(t, docs[1], got[0])
	assert.Equal(t, docs[0], got[1])
}

func TestLexicalSearch_ShortDocBonusBreaksTies(t *testing.T) {
	long := "theft " + strings.Repeat("filler ", 200)
	short := "theft means dishonest taking"
	got := lexicalSearch("theft", []string{long, short}, 1)
	require.Len(t, got, 1)
	assert.Equal(t, short, got[0])
}

func TestLexicalSearch_NoPositiveScoresReturnsLeadingDocs(t *testing.T) {
	docs := []string{
		strings.Repeat("z", 1100),
		strings.Repeat("y", 1100),
		strings.Repeat("w", 1100),
	}
	got := lexicalSearch("unmatchable", docs, 2)
	assert.Equal(t, []string{docs[0], docs[1]}, got)
}

func TestRetrieve_CheatingPunishmentScenario(t *testing.T) {
	doc := "Section 420 IPC: cheating and dishonestly inducing delivery of property, punishable with imprisonment."
	store := corpus.NewMemoryStore(doc)

	r := New(nil, nil, store, nil, nil)
	got := r.Retrieve("cheating punishment", 2)
	assert.Equal(t, []string{doc}, got)
}

func TestLexicalSearch_Idempotent(t *testing.T) {
	docs := []string{"theft of property", "murder trial", "theft again"}
	first := lexicalSearch("theft", docs, 2)
	second := lexicalSearch("theft", docs, 2)
	assert.Equal(t, first, second)
}
