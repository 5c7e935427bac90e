package generator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexai/internal/answer"
)

type stubBackend struct {
	response []byte
	err      error
	delay    time.Duration
	prompts  []string
}

func (b *stubBackend) Complete(ctx context.Context, prompt string) ([]byte, error) {
	b.prompts = append(b.prompts, prompt)
	if b.delay > 0 {
		select {
		case <-time.After(b.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return b.response, b.err
}

var legalDocs = []string{
	"Theft is addressed by criminal law. It concerns movable property. Dishonest taking is required.\n" +
		"Section 378 IPC defines theft.\n" +
		"Punishment extends to three years imprisonment or fine.",
}

func TestGenerate_NoDocumentsSkipsBackend(t *testing.T) {
	backend := &stubBackend{response: []byte("should not be used")}
	g := New(backend, time.Second, nil)

	record := g.Generate("what is theft", nil)
	require.NotNil(t, record)
	assert.Equal(t, answer.NoInfoMarkdown, record.Markdown)
	assert.Empty(t, backend.prompts, "backend must not be called without documents")
}

func TestGenerate_NilBackendUsesDeterministicPath(t *testing.T) {
	g := New(nil, time.Second, nil)
	record := g.Generate("what is theft", legalDocs)
	require.NotNil(t, record)
	assert.Contains(t, record.Markdown, "**Relevant IPC Sections:**")
}

func TestGenerate_BackendErrorFallsBack(t *testing.T) {
	backend := &stubBackend{err: errors.New("connection refused")}
	g := New(backend, time.Second, nil)

	record := g.Generate("what is theft", legalDocs)
	require.NotNil(t, record)
	assert.Contains(t, record.Markdown, "**Summary**")
}

func TestGenerate_WhitespaceOnlyContentFallsBack(t *testing.T) {
	backend := &stubBackend{response: []byte("   \n\t  ")}
	g := New(backend, time.Second, nil)

	record := g.Generate("what is theft", legalDocs)
	require.NotNil(t, record)
	assert.Contains(t, record.Markdown, "**Summary**")
	assert.NotEmpty(t, record.Metadata.Sections)
}

func TestGenerate_MergesBackendContentWithExtraction(t *testing.T) {
	backend := &stubBackend{
		response: []byte(`{"message":{"content":"Theft requires dishonest intention to take movable property. The property must be taken without consent. Courts examine the circumstances of the taking."}}`),
	}
	g := New(backend, time.Second, nil)

	record := g.Generate("what is theft", legalDocs)
	require.NotNil(t, record)
	assert.Contains(t, record.Markdown, "**Summary**")
	assert.Contains(t, record.Metadata.Sections[0], "Section 378")
	assert.NotEmpty(t, record.Metadata.ShortAnswer)
	assert.NotEmpty(t, record.Metadata.TLDR)
	assert.NotEmpty(t, record.Metadata.Detailed)
}

func TestGenerate_PromptCarriesTopDocumentAndQuery(t *testing.T) {
	backend := &stubBackend{response: []byte("Some generated answer about theft with enough length to count.")}
	g := New(backend, time.Second, nil)

	g.Generate("what is theft", legalDocs)
	require.Len(t, backend.prompts, 1)
	assert.Contains(t, backend.prompts[0], "Section 378 IPC defines theft.")
	assert.Contains(t, backend.prompts[0], "what is theft")
}

func TestGenerate_SlowBackendAbandonedAfterGrace(t *testing.T) {
	backend := &stubBackend{
		response: []byte("too late"),
		delay:    time.Minute,
	}
	g := New(backend, 100*time.Millisecond, nil)

	start := time.Now()
	record := g.Generate("what is theft", legalDocs)
	elapsed := time.Since(start)

	require.NotNil(t, record)
	assert.Contains(t, record.Markdown, "**Summary**")
	assert.Less(t, elapsed, 100*time.Millisecond+GraceBuffer+time.Second)
}

func TestNew_NonPositiveTimeoutDefaults(t *testing.T) {
	g := New(nil, 0, nil)
	assert.Equal(t, DefaultTimeout, g.timeout)
}
