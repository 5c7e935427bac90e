package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_ClassifiesByKeyword(t *testing.T) {
	doc := "Section 302 IPC deals with murder.\n" +
		"The sentence may extend to imprisonment for life.\n" +
		"Dishonest intent of the accused must be proven.\n" +
		"Illustration: A strikes B with a stick."
	meta := Extract([]string{doc})

	assert.Equal(t, []string{"Section 302 IPC deals with murder."}, meta.Sections)
	assert.Equal(t, []string{"The sentence may extend to imprisonment for life."}, meta.Penalties)
	assert.Equal(t, []string{"Dishonest intent of the accused must be proven."}, meta.KeyPoints)
	assert.Equal(t, []string{"Illustration: A strikes B with a stick."}, meta.Examples)
}

func TestExtract_CapsSections(t *testing.T) {
	doc := "Section 299 covers culpable homicide.\n" +
		"Section 300 covers murder.\n" +
		"Section 304 covers lesser homicide.\n" +
		"Section 306 covers abetment of suicide."
	meta := Extract([]string{doc})

	require.Len(t, meta.Sections, 3)
	assert.Equal(t, "Section 299 covers culpable homicide.", meta.Sections[0])
	assert.Equal(t, "Section 304 covers lesser homicide.", meta.Sections[2])
}

func TestExtract_CrossCategoryDedup(t *testing.T) {
	// one line matches both the section and the penalty keyword sets; after
	// dedup it survives only in the earlier category
	doc := "Section 379 prescribes punishment of imprisonment."
	meta := Extract([]string{doc})

	assert.Equal(t, []string{"Section 379 prescribes punishment of imprisonment."}, meta.Sections)
	assert.Empty(t, meta.Penalties)
}

func TestExtract_NearDuplicateLinesCollapse(t *testing.T) {
	doc := "The accused must have intent.\nthe accused must have intent!"
	meta := Extract([]string{doc})

	assert.Equal(t, []string{"The accused must have intent."}, meta.KeyPoints)
}

func TestExtract_ContainmentDedup(t *testing.T) {
	doc := "Intent matters.\nIntent matters in every criminal proceeding."
	meta := Extract([]string{doc})

	assert.Equal(t, []string{"Intent matters."}, meta.KeyPoints)
}

func TestExtract_EmptyInput(t *testing.T) {
	meta := Extract(nil)
	assert.Empty(t, meta.Sections)
	assert.Empty(t, meta.Penalties)
	assert.Empty(t, meta.KeyPoints)
	assert.Empty(t, meta.Examples)
}

func TestCanonical(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"punctuation and case", "Theft, Is Bad.", "theft is bad"},
		{"trailing ellipsis stripped", "imprisonment for life...", "imprisonment for life"},
		{"whitespace collapsed", "a   b\t c", "a b c"},
		{"digits kept", "Section 420", "section 420"},
		{"empty", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Canonical(tt.in))
		})
	}
}

func TestSeenKeys_Containment(t *testing.T) {
	seen := newSeenKeys()
	seen.add("intent matters in law")

	assert.True(t, seen.isDuplicate("intent matters in law"))
	assert.True(t, seen.isDuplicate("intent matters"))
	assert.True(t, seen.isDuplicate("strict intent matters in law today"))
	assert.False(t, seen.isDuplicate("punishment for theft"))
}
