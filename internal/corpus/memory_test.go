package corpus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_AddAndRead(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Add("first", "second"))

	assert.Equal(t, 2, s.Len())
	doc, ok := s.Doc(1)
	require.True(t, ok)
	assert.Equal(t, "second", doc)
	assert.Equal(t, []string{"first", "second"}, s.Docs())
}

func TestMemoryStore_DocOutOfBounds(t *testing.T) {
	s := NewMemoryStore("only")

	_, ok := s.Doc(-1)
	assert.False(t, ok)
	_, ok = s.Doc(1)
	assert.False(t, ok)
}

func TestMemoryStore_Clear(t *testing.T) {
	s := NewMemoryStore("a", "b")
	require.NoError(t, s.Clear())
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Docs())
}

func TestMemoryStore_DocsReturnsCopy(t *testing.T) {
	s := NewMemoryStore("a")
	docs := s.Docs()
	docs[0] = "mutated"

	doc, ok := s.Doc(0)
	require.True(t, ok)
	assert.Equal(t, "a", doc)
}
