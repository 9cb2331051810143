// pkg/cli/root.go
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bstardust/photo-ingest/internal/logger"
)

func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interruption signals
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signalCh
		logger.Info("Received interrupt signal, shutting down gracefully...")
		cancel()
	}()

	rootCmd := &cobra.Command{
		Use:   "photo-ingest",
		Short: "Ingest photos into time-sharded storage with EXIF extraction",
		Long: `A tool for ingesting photographs into a year/month-sharded storage tree.
Each photo gets its EXIF metadata extracted, a 150x150 thumbnail and an
800x600 preview generated, and can optionally be replicated to S3-compatible
storage.`,
	}

	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")

	// Add commands
	rootCmd.AddCommand(newIngestCommand())

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Error("Error executing command: %v", err)
		os.Exit(1)
	}
}
