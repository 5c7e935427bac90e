package extractor

import (
	"regexp"
	"strings"
)

var (
	trailingEllipsisRe = regexp.MustCompile(`\.\.\.+$`)
	nonAlnumRe         = regexp.MustCompile(`[^0-9a-z\s]`)
	spacesRe           = regexp.MustCompile(`\s+`)
)

// Canonical normalizes a snippet for duplicate comparison: lower-case, strip
// the trailing ellipsis marker, replace non-alphanumerics with spaces and
// collapse whitespace.
func Canonical(s string) string {
	k := strings.ToLower(strings.TrimSpace(s))
	k = trailingEllipsisRe.ReplaceAllString(k, "")
	k = nonAlnumRe.ReplaceAllString(k, " ")
	k = spacesRe.ReplaceAllString(k, " ")
	return strings.TrimSpace(k)
}

// seenKeys tracks accepted canonical forms for containment-based dedup.
type seenKeys struct {
	keys []string
	set  map[string]struct{}
}

func newSeenKeys() *seenKeys {
	return &seenKeys{set: make(map[string]struct{})}
}

func (s *seenKeys) add(key string) {
	s.keys = append(s.keys, key)
	s.set[key] = struct{}{}
}

// isDuplicate reports whether key exactly matches, contains, or is contained
// by any previously accepted key.
func (s *seenKeys) isDuplicate(key string) bool {
	if _, ok := s.set[key]; ok {
		return true
	}
	for _, existing := range s.keys {
		if existing == "" {
			continue
		}
		if strings.Contains(existing, key) || strings.Contains(key, existing) {
			return true
		}
	}
	return false
}
