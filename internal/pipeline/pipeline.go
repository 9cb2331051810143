// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/bstardust/photo-ingest/internal/config"
	"github.com/bstardust/photo-ingest/internal/derivative"
	"github.com/bstardust/photo-ingest/internal/exif"
	"github.com/bstardust/photo-ingest/internal/fileinfo"
	"github.com/bstardust/photo-ingest/internal/fshelper"
	"github.com/bstardust/photo-ingest/internal/logger"
	"github.com/bstardust/photo-ingest/internal/storage"
	"github.com/bstardust/photo-ingest/pkg/common"
)

// Replicator copies a stored file to secondary storage. Implementations must
// be safe for concurrent use.
type Replicator interface {
	Replicate(ctx context.Context, localPath, objectKey, contentType string) error
}

// Result is the outcome of one ingestion. The original is always present;
// each derivative is nil if its generation failed.
type Result struct {
	ID        uuid.UUID
	Original  storage.Location
	Thumbnail *storage.Location
	Preview   *storage.Location
	Metadata  *exif.Metadata
}

// Pipeline ingests one photo at a time: validate, extract metadata, persist
// the original verbatim, then attempt derivatives. It holds no mutable state
// and is safe for concurrent use.
type Pipeline struct {
	maxFileSize int64
	alloc       *storage.Allocator
	thumbnail   derivative.Spec
	preview     derivative.Spec
	mirror      Replicator
}

// New creates a pipeline writing under alloc's root. mirror may be nil.
func New(cfg *config.Config, alloc *storage.Allocator, mirror Replicator) *Pipeline {
	thumbnail := derivative.Thumbnail
	preview := derivative.Preview
	if q := cfg.Derivatives.ThumbnailQuality; q > 0 {
		thumbnail.Quality = q
	}
	if q := cfg.Derivatives.PreviewQuality; q > 0 {
		preview.Quality = q
	}

	return &Pipeline{
		maxFileSize: cfg.Storage.MaxFileSize,
		alloc:       alloc,
		thumbnail:   thumbnail,
		preview:     preview,
		mirror:      mirror,
	}
}

// Ingest runs the pipeline for one upload. declaredSize is the size claimed
// by the caller and is checked before any bytes are read; the staged size is
// checked again afterwards. A derivative failure never fails the ingest; a
// failure to persist the original always does.
func (p *Pipeline) Ingest(ctx context.Context, filename string, r io.Reader, declaredSize int64) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Reject before any decoding work
	if !fileinfo.IsAllowedImage(filename) {
		return nil, common.NewUnsupportedTypeError(filename)
	}
	if declaredSize > p.maxFileSize {
		return nil, common.NewSizeExceededError(declaredSize, p.maxFileSize)
	}

	// The declared size can lie, so stage at most one byte past the limit;
	// a full read means the stream is oversized.
	staged, size, cleanup, err := fshelper.StageFile(io.LimitReader(r, p.maxFileSize+1), "photo-ingest-*")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	if size > p.maxFileSize {
		return nil, common.NewSizeExceededError(size, p.maxFileSize)
	}

	data, err := os.ReadFile(staged)
	if err != nil {
		return nil, fmt.Errorf("failed to read staged upload: %w", err)
	}

	id := uuid.New()

	// Best-effort: an unreadable image degrades to empty metadata
	meta, err := exif.Extract(data)
	if err != nil {
		logger.Warn("Could not extract metadata from %s: %v", filename, err)
	}

	ext := fileinfo.Extension(filename)
	origLoc, err := p.alloc.Allocate(id, storage.RoleOriginal, ext)
	if err != nil {
		return nil, common.NewStorageError(p.alloc.Root(), err)
	}
	if err := os.WriteFile(origLoc.Path, data, 0644); err != nil {
		return nil, common.NewStorageError(origLoc.Path, err)
	}

	result := &Result{
		ID:        id,
		Original:  origLoc,
		Thumbnail: p.generateDerivative(data, id, storage.RoleThumbnail, p.thumbnail),
		Preview:   p.generateDerivative(data, id, storage.RolePreview, p.preview),
		Metadata:  meta,
	}

	p.replicate(ctx, result)

	return result, nil
}

// generateDerivative produces one derivative next to the original. Any
// failure is logged and reported as a nil location.
func (p *Pipeline) generateDerivative(data []byte, id uuid.UUID, role storage.Role, spec derivative.Spec) *storage.Location {
	encoded, err := derivative.Generate(data, spec)
	if err != nil {
		logger.Warn("Failed to generate %s for %s: %v", role, id, err)
		return nil
	}

	loc, err := p.alloc.Allocate(id, role, derivative.Extension)
	if err != nil {
		logger.Warn("Failed to allocate %s path for %s: %v", role, id, err)
		return nil
	}
	if err := os.WriteFile(loc.Path, encoded, 0644); err != nil {
		logger.Warn("Failed to write %s for %s: %v", role, id, err)
		os.Remove(loc.Path)
		return nil
	}

	return &loc
}

// replicate mirrors every produced file to secondary storage, best-effort
func (p *Pipeline) replicate(ctx context.Context, result *Result) {
	if p.mirror == nil {
		return
	}

	locations := []*storage.Location{&result.Original, result.Thumbnail, result.Preview}
	for _, loc := range locations {
		if loc == nil {
			continue
		}

		key, err := p.alloc.RelPath(*loc)
		if err != nil {
			logger.Warn("Failed to compute object key for %s: %v", loc.Path, err)
			continue
		}

		if err := p.mirror.Replicate(ctx, loc.Path, key, fileinfo.DetectContentType(loc.Path)); err != nil {
			logger.Warn("Failed to mirror %s: %v", key, err)
		}
	}
}
