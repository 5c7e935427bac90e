package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_AddAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.db")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Add("first", "second"))
	assert.Equal(t, 2, s.Len())

	doc, ok := s.Doc(0)
	require.True(t, ok)
	assert.Equal(t, "first", doc)
	assert.Equal(t, []string{"first", "second"}, s.Docs())

	_, ok = s.Doc(5)
	assert.False(t, ok)
}

func TestStore_DocumentsSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Add("persisted"))
	require.NoError(t, s.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()
	assert.Equal(t, []string{"persisted"}, s2.Docs())
}

func TestStore_Clear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.db")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Add("a", "b"))
	require.NoError(t, s.Clear())
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Docs())
}
