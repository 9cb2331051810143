package source

import (
	"archive/zip"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Directory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "album"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.jpg"), []byte("aa"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "album", "b.png"), []byte("bbb"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip me"), 0644))

	src, err := New(context.Background(), dir)
	require.NoError(t, err)
	defer src.Close()

	files := src.ListFiles()
	require.Len(t, files, 2)

	// Stable order, non-images excluded
	assert.Equal(t, "a.jpg", files[0].Path)
	assert.Equal(t, int64(2), files[0].Size)
	assert.Equal(t, "album/b.png", files[1].Path)
	assert.Equal(t, int64(3), files[1].Size)

	r, err := src.Open("a.jpg")
	require.NoError(t, err)
	defer r.Close()
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "aa", string(data))
}

func TestNew_SingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photo.jpg")
	require.NoError(t, os.WriteFile(path, []byte("photo"), 0644))

	src, err := New(context.Background(), path)
	require.NoError(t, err)
	defer src.Close()

	files := src.ListFiles()
	require.Len(t, files, 1)
	assert.Equal(t, "photo.jpg", files[0].Path)
	assert.Equal(t, int64(5), files[0].Size)
}

func TestNew_DirectoryExcludesUnsupportedFormats(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "photo.jpg"), []byte("jj"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "animation.gif"), []byte("gg"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "modern.webp"), []byte("ww"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "phone.heic"), []byte("hh"), 0644))

	src, err := New(context.Background(), dir)
	require.NoError(t, err)
	defer src.Close()

	// Formats the pipeline would reject are never queued
	files := src.ListFiles()
	require.Len(t, files, 1)
	assert.Equal(t, "photo.jpg", files[0].Path)
}

func TestNew_SingleFileUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "animation.gif")
	require.NoError(t, os.WriteFile(path, []byte("gif"), 0644))

	_, err := New(context.Background(), path)
	assert.Error(t, err)
}

func TestNew_SingleFileNotImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("text"), 0644))

	_, err := New(context.Background(), path)
	assert.Error(t, err)
}

func TestNew_Zip(t *testing.T) {
	zipPath := filepath.Join(t.TempDir(), "batch.zip")

	f, err := os.Create(zipPath)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for name, content := range map[string]string{
		"one.jpg":         "1",
		"nested/two.tiff": "22",
		"readme.md":       "skip",
	} {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	src, err := New(context.Background(), zipPath)
	require.NoError(t, err)
	defer src.Close()

	files := src.ListFiles()
	require.Len(t, files, 2)
	assert.Equal(t, "nested/two.tiff", files[0].Path)
	assert.Equal(t, "one.jpg", files[1].Path)
}

func TestNew_Missing(t *testing.T) {
	_, err := New(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
