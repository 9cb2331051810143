package journal

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJournal_MarkAndQuery(t *testing.T) {
	j := New(filepath.Join(t.TempDir(), "journal.json"))

	assert.False(t, j.IsIngested("2024/photo1.jpg"))

	j.MarkIngested("2024/photo1.jpg", "3e8f0176-0001-4000-8000-000000000000")
	assert.True(t, j.IsIngested("2024/photo1.jpg"))
	assert.False(t, j.IsIngested("2024/photo2.jpg"))

	total, ingested := j.Stats()
	assert.Equal(t, 1, total)
	assert.Equal(t, 1, ingested)
}

func TestJournal_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.json")

	j := New(path)
	j.MarkIngested("album/a.jpg", "id-a")
	j.MarkIngested("album/b.jpg", "id-b")
	require.NoError(t, j.Save())

	reloaded := New(path)
	require.NoError(t, reloaded.Load())

	assert.True(t, reloaded.IsIngested("album/a.jpg"))
	assert.True(t, reloaded.IsIngested("album/b.jpg"))
	assert.False(t, reloaded.IsIngested("album/c.jpg"))

	assert.ElementsMatch(t, []string{"album/a.jpg", "album/b.jpg"}, reloaded.ListIngested())
}

func TestJournal_LoadMissingFileStartsFresh(t *testing.T) {
	j := New(filepath.Join(t.TempDir(), "does-not-exist.json"))
	require.NoError(t, j.Load())

	total, _ := j.Stats()
	assert.Equal(t, 0, total)
}

func TestJournal_EntryKeepsID(t *testing.T) {
	j := New(filepath.Join(t.TempDir(), "journal.json"))
	j.MarkIngested("p.jpg", "some-uuid")

	entry := j.Entries["p.jpg"]
	assert.Equal(t, "some-uuid", entry.ID)
	assert.Equal(t, "p.jpg", entry.Path)
	assert.False(t, entry.Timestamp.IsZero())
}
