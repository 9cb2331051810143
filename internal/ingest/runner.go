// internal/ingest/runner.go
package ingest

import (
	"context"
	"fmt"
	"io"

	"github.com/bstardust/photo-ingest/internal/config"
	"github.com/bstardust/photo-ingest/internal/journal"
	"github.com/bstardust/photo-ingest/internal/logger"
	"github.com/bstardust/photo-ingest/internal/pipeline"
	"github.com/bstardust/photo-ingest/internal/progress"
	"github.com/bstardust/photo-ingest/internal/source"
	"github.com/bstardust/photo-ingest/internal/worker"
)

// Ingestor runs the ingestion pipeline for one photo
type Ingestor interface {
	Ingest(ctx context.Context, filename string, r io.Reader, declaredSize int64) (*pipeline.Result, error)
}

// Photos lists and opens the files of a scanned source
type Photos interface {
	ListFiles() []*source.File
	Open(path string) (io.ReadCloser, error)
}

// Runner drives the pipeline over every photo in a source
type Runner struct {
	ctx      context.Context
	ingestor Ingestor
	photos   Photos
	journal  *journal.Journal
	pool     *worker.Pool
	progress *progress.Reporter
	config   *config.Config
}

// New creates a new Runner
func New(ctx context.Context, ingestor Ingestor, photos Photos, jnl *journal.Journal,
	pool *worker.Pool, progress *progress.Reporter, cfg *config.Config) *Runner {
	return &Runner{
		ctx:      ctx,
		ingestor: ingestor,
		photos:   photos,
		journal:  jnl,
		pool:     pool,
		progress: progress,
		config:   cfg,
	}
}

// Run ingests every file in the source. Per-file failures are counted and
// logged; only context cancellation aborts the run.
func (r *Runner) Run() error {
	files := r.photos.ListFiles()

	r.progress.Start(len(files))

	for _, file := range files {
		if r.ctx.Err() != nil {
			return r.ctx.Err()
		}

		if r.config.Ingest.SkipIngested && r.journal.IsIngested(file.Path) {
			r.progress.Skip(file.Path)
			continue
		}

		if r.config.Ingest.DryRun {
			logger.Info("DRY RUN: Would ingest %s (%d bytes)", file.Path, file.Size)
			r.progress.Complete(file.Path)
			continue
		}

		file := file
		r.pool.Submit(func() {
			result, err := r.ingestFile(file)
			if err != nil {
				logger.Error("Failed to ingest %s: %v", file.Path, err)
				r.progress.Error(file.Path, err)
				return
			}

			r.journal.MarkIngested(file.Path, result.ID.String())
			if result.Thumbnail == nil || result.Preview == nil {
				r.progress.Degraded(file.Path)
			} else {
				r.progress.Complete(file.Path)
			}
		})
	}

	r.pool.Wait()

	if err := r.journal.Save(); err != nil {
		logger.Warn("Failed to save journal: %v", err)
	}

	r.progress.Finish()

	return nil
}

// ingestFile runs the pipeline for a single file
func (r *Runner) ingestFile(file *source.File) (*pipeline.Result, error) {
	reader, err := r.photos.Open(file.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer reader.Close()

	return r.ingestor.Ingest(r.ctx, file.Path, reader, file.Size)
}
