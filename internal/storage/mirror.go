// internal/storage/mirror.go
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/bstardust/photo-ingest/internal/logger"
)

// MirrorConfig holds the connection settings for an S3-compatible bucket that
// ingested files are replicated to.
type MirrorConfig struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Prefix    string
}

// Mirror replicates ingested files to an S3-compatible bucket. Replication
// is best-effort; callers must not treat a mirror failure as an ingest
// failure.
type Mirror struct {
	client *minio.Client
	config MirrorConfig
	retry  RetryConfig
}

// NewMirror creates a mirror client and verifies the target bucket exists
func NewMirror(ctx context.Context, cfg MirrorConfig) (*Mirror, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("mirror endpoint is required")
	}
	if err := validateBucketName(cfg.Bucket); err != nil {
		return nil, fmt.Errorf("invalid mirror bucket: %w", err)
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("mirror access key and secret key are required")
	}

	endpoint := cfg.Endpoint
	endpoint = strings.TrimPrefix(endpoint, "https://")
	endpoint = strings.TrimPrefix(endpoint, "http://")

	client, err := minio.New(endpoint, &minio.Options{
		Creds:        credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:       cfg.UseSSL,
		Region:       cfg.Region,
		BucketLookup: minio.BucketLookupAuto,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create mirror client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check if bucket exists: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", cfg.Bucket)
	}

	logger.Info("Mirroring ingested files to %s/%s", endpoint, cfg.Bucket)

	return &Mirror{
		client: client,
		config: cfg,
		retry:  DefaultRetryConfig(),
	}, nil
}

// Replicate uploads the file at localPath to the bucket under objectKey
func (m *Mirror) Replicate(ctx context.Context, localPath, objectKey, contentType string) error {
	objectKey = m.objectKey(objectKey)

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	op := fmt.Sprintf("mirror upload of %s", objectKey)
	return RetryWithBackoff(ctx, op, func() error {
		file, err := os.Open(localPath)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", localPath, err)
		}
		defer file.Close()

		info, err := file.Stat()
		if err != nil {
			return fmt.Errorf("failed to stat %s: %w", localPath, err)
		}

		res, err := m.client.PutObject(ctx, m.config.Bucket, objectKey, file, info.Size(), minio.PutObjectOptions{
			ContentType: contentType,
		})
		if err != nil {
			return fmt.Errorf("failed to upload object: %w", err)
		}

		logger.Debug("Mirrored %s (%d bytes, etag: %s)", objectKey, res.Size, res.ETag)
		return nil
	}, m.retry)
}

// objectKey returns the full object key with the configured prefix
func (m *Mirror) objectKey(key string) string {
	if m.config.Prefix == "" {
		return key
	}

	prefix := strings.TrimSuffix(m.config.Prefix, "/")
	key = strings.TrimPrefix(key, "/")

	return filepath.ToSlash(filepath.Join(prefix, key))
}

// validateBucketName checks the bucket name against S3 naming conventions
func validateBucketName(name string) error {
	if len(name) < 3 || len(name) > 63 {
		return fmt.Errorf("bucket name must be between 3 and 63 characters")
	}
	for _, char := range name {
		if !(char >= 'a' && char <= 'z') && !(char >= '0' && char <= '9') && char != '-' && char != '.' {
			return fmt.Errorf("bucket name must be DNS compliant")
		}
	}
	return nil
}
