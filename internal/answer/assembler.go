// Package answer assembles extracted metadata and generated content into one
// deduplicated markdown document plus a metadata record. It serves both as
// the deterministic fallback when no generative backend is reachable and as
// the merge step of the generation path.
package answer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"lexai/internal/domain"
	"lexai/internal/extractor"
	"lexai/internal/summarizer"
)

// NoInfoMarkdown is rendered when nothing at all could be said.
const NoInfoMarkdown = "No relevant information found in retrieved documents."

// Character budgets for the deterministic fallback path.
const (
	shortAnswerBudget = 600
	tldrBudget        = 300
	widenedBudget     = 800
	detailedBudget    = 4000
)

// minShortAnswer is the length under which a short answer is considered
// uninformative and gets widened from more documents.
const minShortAnswer = 50

// Assemble builds a deterministic extractive answer from the retrieved
// documents alone. It is total: any input yields a well-formed record.
func Assemble(query string, docs []string) *domain.AnswerRecord {
	meta := extractor.Extract(docs)

	short := ""
	if len(docs) > 0 {
		sentences := splitTerminated(strings.TrimSpace(docs[0]))
		if len(sentences) > 0 {
			short = strings.Join(firstN(sentences, 3), " ")
		}
		if utf8.RuneCountInString(short) > shortAnswerBudget {
			short = summarizer.Summarize(short, 3, shortAnswerBudget)
		}
	}

	tldr := ""
	if short != "" {
		tldr = summarizer.FirstNSentences(short, 1, tldrBudget)
	}

	short = widenShortAnswer(short, docs, meta.KeyPoints, "\n\n")

	detailed := ""
	if len(docs) > 0 {
		detailed = summarizer.CutAtSentence(strings.Join(firstN(docs, 2), "\n\n"), detailedBudget)
	}

	record := &domain.AnswerRecord{
		Metadata: domain.AnswerMetadata{
			TLDR:        tldr,
			ShortAnswer: short,
			Sections:    meta.Sections,
			Penalties:   meta.Penalties,
			KeyPoints:   meta.KeyPoints,
			Examples:    meta.Examples,
			Detailed:    detailed,
		},
	}
	Finalize(record)
	return record
}

// Finalize renders the unified markdown and re-derives the short answer and
// tldr from it, so the displayed summary always matches what was rendered.
func Finalize(record *domain.AnswerRecord) {
	record.Markdown = BuildUnified(&record.Metadata)
	record.Metadata.ShortAnswer = summarizer.Summarize(record.Markdown, 3, 600)
	record.Metadata.TLDR = summarizer.Summarize(record.Markdown, 1, 250)
}

// widenShortAnswer extends an empty or too-short answer: first from the
// opening sentences of the top two documents, then from the key points.
func widenShortAnswer(short string, docs, keyPoints []string, joiner string) string {
	if short != "" && utf8.RuneCountInString(short) >= minShortAnswer {
		return short
	}
	combined := strings.Join(firstN(docs, 2), joiner)
	alt := summarizer.FirstNSentences(combined, 3, widenedBudget)
	if alt != "" && utf8.RuneCountInString(alt) > utf8.RuneCountInString(short) {
		return alt
	}
	if len(keyPoints) > 0 {
		return strings.Join(firstN(keyPoints, 3), " ")
	}
	return short
}

// BuildUnified renders one ordered markdown document from the non-empty
// metadata fields. A second dedup pass seeded with the short answer's
// canonical form suppresses list items already implied by the summary.
func BuildUnified(meta *domain.AnswerMetadata) string {
	var parts []string

	sa := meta.ShortAnswer
	saKey := extractor.Canonical(sa)
	if sa != "" {
		parts = append(parts, "**Summary**\n\n"+sa)
	}

	var prior []string
	if saKey != "" {
		prior = append(prior, saKey)
	}

	if sections := filterAgainst(meta.Sections, &prior); len(sections) > 0 {
		parts = append(parts, "**Relevant IPC Sections:**\n"+bulleted(sections))
	}
	if penalties := filterAgainst(meta.Penalties, &prior); len(penalties) > 0 {
		parts = append(parts, "**Punishments / Penalties:**\n"+bulleted(penalties))
	}
	if kps := filterAgainst(meta.KeyPoints, &prior); len(kps) > 0 {
		parts = append(parts, "**Key Legal Points:**\n"+numbered(kps))
	}
	if examples := filterAgainst(meta.Examples, &prior); len(examples) > 0 {
		parts = append(parts, "**Examples:**\n"+bulleted(examples))
	}
	if meta.Detailed != "" {
		if saKey == "" || !containsKey(prior, extractor.Canonical(meta.Detailed)) {
			parts = append(parts, "**Detailed Explanation:**\n"+meta.Detailed)
		}
	}

	if len(parts) == 0 {
		return NoInfoMarkdown
	}
	return strings.Join(parts, "\n\n")
}

// filterAgainst drops items whose canonical form duplicates (by substring
// containment either way) anything already accepted, and records the keys of
// the survivors.
func filterAgainst(items []string, prior *[]string) []string {
	var out []string
	for _, it := range items {
		if strings.TrimSpace(it) == "" {
			continue
		}
		key := extractor.Canonical(it)
		dup := false
		for _, pk := range *prior {
			if pk == "" {
				continue
			}
			if strings.Contains(pk, key) || strings.Contains(key, pk) {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		out = append(out, it)
		*prior = append(*prior, key)
	}
	return out
}

func containsKey(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

func bulleted(items []string) string {
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = "- " + it
	}
	return strings.Join(lines, "\n")
}

func numbered(items []string) string {
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = fmt.Sprintf("%d. %s", i+1, it)
	}
	return strings.Join(lines, "\n")
}

// firstN returns at most n leading elements without copying.
func firstN(items []string, n int) []string {
	if len(items) < n {
		return items
	}
	return items[:n]
}

// splitTerminated splits on sentence terminators followed by whitespace,
// discarding the terminator, and drops empty segments.
func splitTerminated(text string) []string {
	var out []string
	runes := []rune(text)
	start := 0
	i := 0
	for i < len(runes) {
		r := runes[i]
		if (r == '.' || r == '?' || r == '!') && i+1 < len(runes) && isSpace(runes[i+1]) {
			if seg := strings.TrimSpace(string(runes[start:i])); seg != "" {
				out = append(out, seg)
			}
			i++
			for i < len(runes) && isSpace(runes[i]) {
				i++
			}
			start = i
			continue
		}
		i++
	}
	if start < len(runes) {
		if seg := strings.TrimSpace(string(runes[start:])); seg != "" {
			out = append(out, seg)
		}
	}
	return out
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f'
}
