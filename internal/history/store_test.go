package history

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newsreap/newsreap/internal/domain"
)

func TestStoreRecordAndSeen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()

	assert.False(t, store.Seen("https://example.com/a"))

	err = store.Record([]domain.Article{
		{URL: "https://example.com/a"},
		{URL: "https://example.com/b"},
	})
	require.NoError(t, err)

	assert.True(t, store.Seen("https://example.com/a"))
	assert.True(t, store.Seen("https://example.com/b"))
	assert.False(t, store.Seen("https://example.com/c"))
	assert.Equal(t, 2, store.Len())
}

func TestStorePersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Record([]domain.Article{{URL: "https://example.com/kept"}}))
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	assert.True(t, reopened.Seen("https://example.com/kept"))
	assert.Equal(t, 1, reopened.Len())
}

func TestNilStoreIsInert(t *testing.T) {
	var store *Store

	assert.False(t, store.Seen("https://example.com"))
	assert.NoError(t, store.Record([]domain.Article{{URL: "x"}}))
	assert.NoError(t, store.Close())
	assert.Equal(t, 0, store.Len())
}
