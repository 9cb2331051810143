// cmd/photo-ingest/main.go
package main

import (
	"github.com/bstardust/photo-ingest/internal/logger"
	"github.com/bstardust/photo-ingest/pkg/cli"
)

func main() {
	// Initialize logger
	logger.Init()

	// Execute CLI
	cli.Execute()
}
