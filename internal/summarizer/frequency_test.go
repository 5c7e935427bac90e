package summarizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrequencySummarizer_KeepsOriginalOrder(t *testing.T) {
	s := NewFrequencySummarizer()
	got, err := s.Summarize("Murder is punished. Theft is punished too. Courts decide.", 5)
	require.NoError(t, err)
	assert.Equal(t, "Murder is punished. Theft is punished too. Courts decide.", got)
}

func TestFrequencySummarizer_PicksHighestFrequencySentence(t *testing.T) {
	s := NewFrequencySummarizer()
	got, err := s.Summarize("Theft theft theft theft. Nothing here.", 1)
	require.NoError(t, err)
	assert.Equal(t, "Theft theft theft theft.", got)
}

func TestFrequencySummarizer_EmptyText(t *testing.T) {
	s := NewFrequencySummarizer()
	got, err := s.Summarize("   ", 3)
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestFrequencySummarizer_NonPositiveCapDefaults(t *testing.T) {
	s := NewFrequencySummarizer()
	got, err := s.Summarize("One sentence only.", 0)
	require.NoError(t, err)
	assert.Equal(t, "One sentence only.", got)
}
