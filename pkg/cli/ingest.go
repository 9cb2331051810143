package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bstardust/photo-ingest/internal/config"
	"github.com/bstardust/photo-ingest/internal/ingest"
	"github.com/bstardust/photo-ingest/internal/journal"
	"github.com/bstardust/photo-ingest/internal/logger"
	"github.com/bstardust/photo-ingest/internal/pipeline"
	"github.com/bstardust/photo-ingest/internal/progress"
	"github.com/bstardust/photo-ingest/internal/source"
	"github.com/bstardust/photo-ingest/internal/storage"
	"github.com/bstardust/photo-ingest/internal/worker"
)

func newIngestCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest [flags] <photo.jpg> | <folder> | <archive.zip> ...",
		Short: "Ingest photos into the storage tree",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgFile, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			return runIngest(cmd.Context(), cfg, args)
		},
	}

	defaults := config.New()

	// Storage
	cmd.Flags().String("storage-root", "", "Root directory for ingested photos (required unless set in config)")
	cmd.Flags().Int64("max-size", defaults.Storage.MaxFileSize, "Maximum accepted file size in bytes")

	// Derivatives
	cmd.Flags().Int("thumb-quality", defaults.Derivatives.ThumbnailQuality, "JPEG quality for thumbnails")
	cmd.Flags().Int("preview-quality", defaults.Derivatives.PreviewQuality, "JPEG quality for previews")

	// Batch options
	cmd.Flags().Int("concurrency", defaults.Ingest.Concurrency, "Number of concurrent ingestions")
	cmd.Flags().Bool("dry-run", false, "Report what would be ingested without writing anything")
	cmd.Flags().Bool("resume", defaults.Ingest.Resume, "Resume a previous run if interrupted")
	cmd.Flags().String("journal", "", "Path to journal file for resumable runs")
	cmd.Flags().Bool("skip-ingested", defaults.Ingest.SkipIngested, "Skip files already recorded in the journal")

	// Mirror (optional S3 replication)
	cmd.Flags().Bool("mirror", false, "Replicate ingested files to S3-compatible storage")
	cmd.Flags().String("mirror-endpoint", "", "Mirror S3 endpoint URL")
	cmd.Flags().String("mirror-region", defaults.Mirror.Region, "Mirror S3 region")
	cmd.Flags().String("mirror-bucket", "", "Mirror S3 bucket name")
	cmd.Flags().String("mirror-access-key", "", "Mirror S3 access key")
	cmd.Flags().String("mirror-secret-key", "", "Mirror S3 secret key")
	cmd.Flags().Bool("mirror-use-ssl", defaults.Mirror.UseSSL, "Use SSL for the mirror connection")
	cmd.Flags().String("mirror-prefix", "", "Prefix for mirrored object keys")

	return cmd
}

func runIngest(ctx context.Context, cfg *config.Config, args []string) error {
	logger.SetLevel(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return err
	}

	alloc := storage.NewAllocator(cfg.Storage.Root)

	var mirror pipeline.Replicator
	if cfg.Mirror.Enabled {
		m, err := storage.NewMirror(ctx, cfg.MirrorStorageConfig())
		if err != nil {
			return fmt.Errorf("failed to initialize mirror: %w", err)
		}
		mirror = m
	}

	pipe := pipeline.New(cfg, alloc, mirror)

	jnl := journal.New(cfg.Ingest.JournalPath)
	if cfg.Ingest.Resume {
		if err := jnl.Load(); err != nil {
			logger.Warn("Could not load journal: %v", err)
		}
	}

	pool := worker.NewPool(cfg.Ingest.Concurrency)
	reporter := progress.New()

	for _, path := range args {
		src, err := source.New(ctx, path)
		if err != nil {
			return fmt.Errorf("failed to scan %s: %w", path, err)
		}

		runner := ingest.New(ctx, pipe, src, jnl, pool, reporter, cfg)
		err = runner.Run()
		src.Close()
		if err != nil {
			return fmt.Errorf("ingestion failed: %w", err)
		}
	}

	return nil
}
