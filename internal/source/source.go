// internal/source/source.go
package source

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bstardust/photo-ingest/internal/fileinfo"
	"github.com/bstardust/photo-ingest/internal/fshelper"
	"github.com/bstardust/photo-ingest/internal/logger"
)

// Source is a scanned collection of ingestible photos: a directory, a zip
// archive, or a single image file.
type Source struct {
	fsys  fs.FS
	name  string
	files map[string]*File
}

// File is one photo found in a source
type File struct {
	Path string
	Size int64
}

// New opens path and scans it for image files
func New(ctx context.Context, path string) (*Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open source %s: %w", path, err)
	}

	// A bare image file is a one-element source
	if !info.IsDir() && !strings.HasSuffix(strings.ToLower(path), ".zip") {
		if !fileinfo.IsAllowedImage(path) {
			return nil, fmt.Errorf("not an ingestible image: %s", path)
		}
		name := filepath.Base(path)
		return &Source{
			fsys:  os.DirFS(filepath.Dir(path)),
			name:  name,
			files: map[string]*File{name: {Path: name, Size: info.Size()}},
		}, nil
	}

	fsys, err := fshelper.OpenPath(path)
	if err != nil {
		return nil, err
	}

	s := &Source{
		fsys:  fsys,
		name:  fsys.Name(),
		files: make(map[string]*File),
	}

	if err := s.scan(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

// scan walks the filesystem and indexes every image file
func (s *Source) scan(ctx context.Context) error {
	return fshelper.WalkDir(s.fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			return nil
		}

		// Only queue formats the pipeline will accept
		if !fileinfo.IsAllowedImage(path) {
			if fileinfo.IsImageFile(path) {
				logger.Debug("Skipping unsupported image format: %s", path)
			}
			return nil
		}

		info, err := d.Info()
		if err != nil {
			logger.Warn("Failed to get file info for %s: %v", path, err)
			return nil
		}

		s.files[path] = &File{Path: path, Size: info.Size()}
		return nil
	})
}

// Name returns the name of the source
func (s *Source) Name() string {
	return s.name
}

// ListFiles returns the indexed files in a stable order
func (s *Source) ListFiles() []*File {
	files := make([]*File, 0, len(s.files))
	for _, f := range s.files {
		files = append(files, f)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files
}

// Open opens a file from the source
func (s *Source) Open(path string) (io.ReadCloser, error) {
	return s.fsys.Open(path)
}

// Close releases the underlying archive, if any
func (s *Source) Close() error {
	if closer, ok := s.fsys.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
