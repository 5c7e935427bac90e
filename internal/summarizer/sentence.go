package summarizer

import (
	"regexp"
	"strings"
)

// Ellipsis is appended whenever a truncating cut was made.
const Ellipsis = "..."

// forwardExtension is how far past the budget CutAtSentence may look for the
// next sentence terminator before giving up and cutting at whitespace.
const forwardExtension = 400

// sentence terminators, including the Devanagari danda used in Hindi legal text.
const terminators = ".?!।;…"

func isTerminator(r rune) bool { return strings.ContainsRune(terminators, r) }

// CutAtSentence cuts text to at most maxChars but prefers ending at a
// sentence boundary. If no terminator falls late enough inside the budget, it
// extends forward a little to reach one rather than cutting mid-sentence.
// Budgets are measured in runes.
func CutAtSentence(text string, maxChars int) string {
	s := strings.TrimSpace(text)
	if s == "" {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxChars {
		return s
	}

	snippet := runes[:maxChars]
	last := -1
	for i := len(snippet) - 1; i >= 0; i-- {
		if isTerminator(snippet[i]) {
			last = i
			break
		}
	}
	// a terminator early in the snippet is not a reasonable cut point
	if last >= int(float64(maxChars)*0.3) {
		return strings.TrimSpace(string(snippet[:last+1])) + Ellipsis
	}

	forwardLimit := maxChars + forwardExtension
	if forwardLimit > len(runes) {
		forwardLimit = len(runes)
	}
	for i := maxChars; i < forwardLimit; i++ {
		if isTerminator(runes[i]) {
			return strings.TrimSpace(string(runes[:i+1])) + Ellipsis
		}
	}

	if cut := lastSpaceCut(snippet); cut != "" {
		return strings.TrimSpace(cut) + Ellipsis
	}
	return strings.TrimSpace(string(snippet)) + Ellipsis
}

// lastSpaceCut returns everything before the final space, or "" when the
// snippet contains no space at all.
func lastSpaceCut(runes []rune) string {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == ' ' {
			return string(runes[:i])
		}
	}
	return ""
}

// FirstNSentences returns the first n sentences of text joined by single
// spaces. The sentence that crosses maxChars is still included; sentences are
// never split.
func FirstNSentences(text string, n, maxChars int) string {
	s := strings.TrimSpace(text)
	if s == "" {
		return ""
	}
	sentences := splitSentences(s)
	var out []string
	total := 0
	for _, sent := range sentences {
		if sent == "" {
			continue
		}
		out = append(out, strings.TrimSpace(sent))
		total += len([]rune(sent))
		if len(out) >= n || total >= maxChars {
			break
		}
	}
	return strings.TrimSpace(strings.Join(out, " "))
}

// Summarize cleans markdown noise out of text and returns up to nSentences of
// it within maxChars. An ellipsis marks that the result is strictly shorter
// than the cleaned input.
func Summarize(text string, nSentences, maxChars int) string {
	clean := CleanText(text)
	if clean == "" {
		return ""
	}
	sentences := splitSentences(clean)
	if len(sentences) == 0 {
		cleanRunes := []rune(clean)
		if len(cleanRunes) <= maxChars {
			return clean
		}
		snippet := cleanRunes[:maxChars]
		if cut := lastSpaceCut(snippet); cut != "" {
			return strings.TrimRight(cut, " ") + Ellipsis
		}
		return strings.TrimRight(string(snippet), " ") + Ellipsis
	}

	var out []string
	total := 0
	for _, sent := range sentences {
		if len(out) >= nSentences {
			break
		}
		// unlike FirstNSentences, a sentence that would cross the budget is
		// excluded here
		projected := total + len([]rune(sent))
		if total > 0 {
			projected++ // joining space
		}
		if projected > maxChars {
			break
		}
		out = append(out, sent)
		total = projected
	}

	if len(out) == 0 {
		return cutFirstSentence(sentences[0], maxChars)
	}

	joined := strings.Join(out, " ")
	if len([]rune(joined)) < len([]rune(clean)) {
		return strings.TrimSpace(joined) + Ellipsis
	}
	return strings.TrimSpace(joined)
}

// cutFirstSentence handles the case where even the first sentence exceeds the
// summary budget: truncate it cleanly instead of returning nothing.
func cutFirstSentence(first string, maxChars int) string {
	runes := []rune(first)
	if len(runes) <= maxChars {
		return first
	}
	snippet := runes[:maxChars]
	last := -1
	for i := len(snippet) - 1; i >= 0; i-- {
		if r := snippet[i]; r == '.' || r == '?' || r == '!' {
			last = i
			break
		}
	}
	if last > int(float64(maxChars)*0.3) {
		return strings.TrimSpace(string(snippet[:last+1])) + Ellipsis
	}
	if cut := lastSpaceCut(snippet); cut != "" {
		return strings.TrimSpace(cut) + Ellipsis
	}
	return strings.TrimSpace(string(snippet)) + Ellipsis
}

// splitSentences splits on sentence-ending punctuation followed by
// whitespace, keeping the punctuation with its sentence.
func splitSentences(text string) []string {
	var sentences []string
	runes := []rune(text)
	start := 0
	i := 0
	for i < len(runes) {
		r := runes[i]
		if (r == '.' || r == '!' || r == '?') && i+1 < len(runes) && isSpace(runes[i+1]) {
			sentences = append(sentences, strings.TrimSpace(string(runes[start:i+1])))
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
		tail := strings.TrimSpace(string(runes[start:]))
		if tail != "" {
			sentences = append(sentences, tail)
		}
	}
	return sentences
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f'
}

var (
	codeFenceRe   = regexp.MustCompile("(?s)```.*?```")
	headingRe     = regexp.MustCompile(`(?m)^#+\s*`)
	bulletRe      = regexp.MustCompile(`(?m)^- \s*`)
	bracketRe     = regexp.MustCompile(`\[[^\]]*\]`)
	parentheticRe = regexp.MustCompile(`\([^)]*\)`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
)

// CleanText strips code fences, markdown markers, bracketed annotations and
// short parenthetical notes, then collapses whitespace.
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	text = codeFenceRe.ReplaceAllString(text, " ")
	text = headingRe.ReplaceAllString(text, "")
	text = bulletRe.ReplaceAllString(text, "")
	text = bracketRe.ReplaceAllString(text, " ")
	text = parentheticRe.ReplaceAllString(text, " ")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
