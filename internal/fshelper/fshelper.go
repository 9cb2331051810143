package fshelper

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// NameFS is a filesystem that has a name
type NameFS interface {
	fs.FS
	Name() string
}

// DirFS represents a directory filesystem with a name
type DirFS struct {
	fs.FS
	name string
}

// Name returns the name of the filesystem
func (d *DirFS) Name() string {
	return d.name
}

// ZipFS represents a zip filesystem with a name
type ZipFS struct {
	*zip.Reader
	name string
	rc   io.Closer
}

// Name returns the name of the filesystem
func (z *ZipFS) Name() string {
	return z.name
}

// Close closes the zip file
func (z *ZipFS) Close() error {
	if z.rc != nil {
		return z.rc.Close()
	}
	return nil
}

// OpenPath opens a directory or zip archive as a named filesystem
func OpenPath(path string) (NameFS, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("path does not exist: %s", path)
		}
		return nil, fmt.Errorf("error accessing path %s: %w", path, err)
	}

	if info.IsDir() {
		return &DirFS{FS: os.DirFS(path), name: filepath.Base(path)}, nil
	}

	if strings.HasSuffix(strings.ToLower(path), ".zip") {
		return OpenZip(path)
	}

	return nil, fmt.Errorf("unsupported input type: %s", path)
}

// OpenZip opens a zip file and returns a filesystem
func OpenZip(path string) (NameFS, error) {
	zipFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening zip file: %w", err)
	}

	info, err := zipFile.Stat()
	if err != nil {
		zipFile.Close()
		return nil, fmt.Errorf("error getting zip file info: %w", err)
	}

	zipReader, err := zip.NewReader(zipFile, info.Size())
	if err != nil {
		zipFile.Close()
		return nil, fmt.Errorf("error creating zip reader: %w", err)
	}

	return &ZipFS{
		Reader: zipReader,
		name:   filepath.Base(path),
		rc:     zipFile,
	}, nil
}

// StageFile copies r into a temporary file and returns its path, the number
// of bytes staged, and a cleanup func. The cleanup func must be called on
// every exit path; it removes the staged file.
func StageFile(r io.Reader, pattern string) (path string, size int64, cleanup func(), err error) {
	tmp, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", 0, nil, fmt.Errorf("failed to create staging file: %w", err)
	}

	cleanup = func() {
		os.Remove(tmp.Name())
	}

	size, err = io.Copy(tmp, r)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		cleanup()
		return "", 0, nil, fmt.Errorf("failed to stage upload: %w", err)
	}

	return tmp.Name(), size, cleanup, nil
}

// WalkDir walks a filesystem and calls the function for each file
func WalkDir(fsys fs.FS, root string, fn func(path string, d fs.DirEntry, err error) error) error {
	return fs.WalkDir(fsys, root, fn)
}

// Exists checks if a path exists
func Exists(fsys fs.FS, path string) (bool, error) {
	_, err := fs.Stat(fsys, path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
