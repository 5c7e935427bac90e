// Package generator invokes the generative backend under a hard wall-clock
// deadline and merges its output with extracted metadata. Every failure mode
// (no backend, error, timeout, empty content) degrades to the deterministic
// assembler; Generate never returns an error.
package generator

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"lexai/internal/answer"
	"lexai/internal/domain"
	"lexai/internal/extractor"
	"lexai/internal/summarizer"
)

// DefaultTimeout bounds the backend call; GraceBuffer is the extra slack
// allowed beyond it before the call is abandoned.
const (
	DefaultTimeout = 6 * time.Second
	GraceBuffer    = 2 * time.Second
)

// promptContextBudget truncates the single most relevant document before it
// enters the prompt.
const promptContextBudget = 1200

// detailedBudget for the generation path is wider than the fallback's.
const detailedBudget = 8000

const promptTemplate = `You are LEXAI, an expert in Indian Penal Code (IPC).
Use ONLY the context below to answer the query. Provide: TL;DR (one short sentence), In short (2-3 bullets), Relevant IPC Sections (short bullets), Punishments/Penalties (short bullets), Key Legal Points (3 numbered items), Example (if available), and a short detailed explanation.
Context:
%s

User Query: %s
`

// Generator produces answers by calling a generative backend with a bounded
// deadline. A nil backend means every query takes the deterministic path.
type Generator struct {
	backend domain.Backend
	timeout time.Duration
	log     *logrus.Entry
}

// New creates a Generator. timeout <= 0 selects DefaultTimeout.
func New(backend domain.Backend, timeout time.Duration, log *logrus.Entry) *Generator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Generator{backend: backend, timeout: timeout, log: log.WithField("component", "generator")}
}

// Generate returns a complete AnswerRecord for the query. With no documents
// there is nothing to ground the model on, so the backend is not called at
// all.
func (g *Generator) Generate(query string, docs []string) *domain.AnswerRecord {
	if len(docs) == 0 {
		g.log.Info("no retrieved docs; using deterministic assembly")
		return answer.Assemble(query, docs)
	}
	if g.backend == nil {
		g.log.Debug("no generative backend configured; using deterministic assembly")
		return answer.Assemble(query, docs)
	}

	promptContext := summarizer.CutAtSentence(strings.TrimSpace(docs[0]), promptContextBudget)
	prompt := fmt.Sprintf(promptTemplate, promptContext, query)

	content := strings.TrimSpace(g.boundedComplete(prompt))
	if content == "" {
		g.log.Info("no content from backend; using deterministic assembly")
		return answer.Assemble(query, docs)
	}
	return g.merge(content, docs)
}

// boundedComplete runs the backend call in a single worker goroutine and
// abandons it after timeout plus grace. Cancellation is advisory: the backend
// may keep computing, but its result is discarded.
func (g *Generator) boundedComplete(prompt string) string {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	type result struct {
		raw []byte
		err error
	}
	ch := make(chan result, 1)
	start := time.Now()
	go func() {
		raw, err := g.backend.Complete(ctx, prompt)
		ch <- result{raw: raw, err: err}
	}()

	select {
	case res := <-ch:
		if res.err != nil {
			g.log.WithError(res.err).Warn("backend call failed")
			return ""
		}
		g.log.WithField("duration", time.Since(start)).Info("backend call finished")
		return NormalizeResponse(res.raw)
	case <-time.After(g.timeout + GraceBuffer):
		cancel()
		g.log.WithField("timeout", g.timeout).Warn("backend call timed out")
		return ""
	}
}

// merge derives the summary fields from the generated content, combines them
// with metadata extracted from the documents, renders the unified markdown
// and re-derives the summary from that markdown.
func (g *Generator) merge(content string, docs []string) *domain.AnswerRecord {
	extracted := extractor.Extract(docs)

	short := summarizer.Summarize(content, 3, 600)
	tldr := summarizer.Summarize(content, 1, 250)

	if utf8.RuneCountInString(short) < 50 {
		combined := strings.Join(topDocs(docs, 2), " ")
		alt := summarizer.FirstNSentences(combined, 3, 800)
		if alt != "" && utf8.RuneCountInString(alt) > utf8.RuneCountInString(short) {
			short = alt
		}
		if utf8.RuneCountInString(short) < 40 && len(extracted.KeyPoints) > 0 {
			short = strings.Join(topDocs(extracted.KeyPoints, 3), " ")
		}
	}

	record := &domain.AnswerRecord{
		Metadata: domain.AnswerMetadata{
			TLDR:        tldr,
			ShortAnswer: short,
			Sections:    extracted.Sections,
			Penalties:   extracted.Penalties,
			KeyPoints:   extracted.KeyPoints,
			Examples:    extracted.Examples,
			Detailed:    summarizer.CutAtSentence(strings.Join(topDocs(docs, 2), "\n\n"), detailedBudget),
		},
	}
	answer.Finalize(record)
	return record
}

func topDocs(docs []string, n int) []string {
	if len(docs) < n {
		return docs
	}
	return docs[:n]
}
