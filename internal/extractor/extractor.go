// Package extractor scans retrieved legal-code passages for signal lines:
// statutory sections, penalties, key legal elements and illustrative
// examples, deduplicated across categories.
package extractor

import (
	"strings"

	"lexai/internal/domain"
	"lexai/internal/summarizer"
)

// Per-category caps keep the extracted bullets summary-friendly.
const (
	maxSections  = 3
	maxPenalties = 3
	maxKeyPoints = 4
	maxExamples  = 2

	// snippetBudget is the per-line character budget before insertion.
	snippetBudget = 300
)

var (
	penaltyWords  = []string{"punish", "imprison", "fine"}
	keyPointWords = []string{"intent", "offence", "liable", "guilty", "element", "mens rea", "actus reus"}
)

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// Extract classifies every non-empty line of the documents into zero or more
// categories by case-insensitive keyword match. A line matching several
// keyword sets lands in several categories; suppression of such repeats
// happens in the cross-category dedup pass, never at classification time.
func Extract(docs []string) domain.ExtractedMetadata {
	var meta domain.ExtractedMetadata
	for _, doc := range docs {
		for _, ln := range strings.Split(doc, "\n") {
			ln = strings.TrimSpace(ln)
			if ln == "" {
				continue
			}
			lower := strings.ToLower(ln)

			if (strings.Contains(lower, "section") || strings.Contains(lower, "ipc")) && len(meta.Sections) < maxSections {
				meta.Sections = append(meta.Sections, shorten(ln))
			}
			if containsAny(lower, penaltyWords) && len(meta.Penalties) < maxPenalties {
				meta.Penalties = append(meta.Penalties, shorten(ln))
			}
			if containsAny(lower, keyPointWords) && len(meta.KeyPoints) < maxKeyPoints {
				meta.KeyPoints = append(meta.KeyPoints, shorten(ln))
			}
			if (strings.Contains(lower, "illustration") || strings.Contains(lower, "example")) && len(meta.Examples) < maxExamples {
				meta.Examples = append(meta.Examples, shorten(ln))
			}
		}
	}
	dedupe(&meta)
	return meta
}

func shorten(line string) string {
	return summarizer.CutAtSentence(line, snippetBudget)
}

// dedupe drops near-identical snippets across all four categories in a single
// pass, preserving first occurrence. A snippet is a duplicate when its
// canonical form equals, contains, or is contained by any previously accepted
// canonical form. Deliberately aggressive: a short bullet repeated inside a
// longer one is noise in the rendered answer.
func dedupe(meta *domain.ExtractedMetadata) {
	seen := newSeenKeys()
	meta.Sections = uniqPreserve(meta.Sections, seen)
	meta.Penalties = uniqPreserve(meta.Penalties, seen)
	meta.KeyPoints = uniqPreserve(meta.KeyPoints, seen)
	meta.Examples = uniqPreserve(meta.Examples, seen)
}

func uniqPreserve(items []string, seen *seenKeys) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if strings.TrimSpace(it) == "" {
			continue
		}
		key := Canonical(it)
		if key == "" || seen.isDuplicate(key) {
			continue
		}
		seen.add(key)
		out = append(out, it)
	}
	return out
}
