package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/bstardust/photo-ingest/internal/storage"
)

// Config represents the application configuration
type Config struct {
	LogLevel    string            `mapstructure:"log_level"`
	Storage     StorageConfig     `mapstructure:"storage"`
	Derivatives DerivativesConfig `mapstructure:"derivatives"`
	Ingest      IngestConfig      `mapstructure:"ingest"`
	Mirror      MirrorConfig      `mapstructure:"mirror"`
}

// StorageConfig represents local storage configuration
type StorageConfig struct {
	Root        string `mapstructure:"root"`
	MaxFileSize int64  `mapstructure:"max_file_size"`
}

// DerivativesConfig represents derivative generation configuration
type DerivativesConfig struct {
	ThumbnailQuality int `mapstructure:"thumbnail_quality"`
	PreviewQuality   int `mapstructure:"preview_quality"`
}

// IngestConfig represents batch ingestion configuration
type IngestConfig struct {
	Concurrency  int    `mapstructure:"concurrency"`
	DryRun       bool   `mapstructure:"dry_run"`
	Resume       bool   `mapstructure:"resume"`
	JournalPath  string `mapstructure:"journal"`
	SkipIngested bool   `mapstructure:"skip_ingested"`
}

// MirrorConfig represents optional S3 replication configuration
type MirrorConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	Prefix    string `mapstructure:"prefix"`
}

// New creates a new configuration with default values
func New() *Config {
	return &Config{
		LogLevel: "info",
		Storage: StorageConfig{
			MaxFileSize: 20 * 1024 * 1024, // 20MB
		},
		Derivatives: DerivativesConfig{
			ThumbnailQuality: 85,
			PreviewQuality:   90,
		},
		Ingest: IngestConfig{
			Concurrency:  4,
			Resume:       true,
			SkipIngested: true,
		},
		Mirror: MirrorConfig{
			Region: "us-east-1",
			UseSSL: true,
		},
	}
}

// flagBindings maps config keys to the CLI flags that override them
var flagBindings = map[string]string{
	"log_level":                     "log-level",
	"storage.root":                  "storage-root",
	"storage.max_file_size":         "max-size",
	"derivatives.thumbnail_quality": "thumb-quality",
	"derivatives.preview_quality":   "preview-quality",
	"ingest.concurrency":            "concurrency",
	"ingest.dry_run":                "dry-run",
	"ingest.resume":                 "resume",
	"ingest.journal":                "journal",
	"ingest.skip_ingested":          "skip-ingested",
	"mirror.enabled":                "mirror",
	"mirror.endpoint":               "mirror-endpoint",
	"mirror.region":                 "mirror-region",
	"mirror.bucket":                 "mirror-bucket",
	"mirror.access_key":             "mirror-access-key",
	"mirror.secret_key":             "mirror-secret-key",
	"mirror.use_ssl":                "mirror-use-ssl",
	"mirror.prefix":                 "mirror-prefix",
}

// Load builds the effective configuration: defaults, then an optional config
// file, then environment variables (PHOTO_INGEST_*), then any flags the user
// set explicitly.
func Load(file string, flags *pflag.FlagSet) (*Config, error) {
	cfg := New()

	v := viper.New()
	v.SetEnvPrefix("PHOTO_INGEST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	} else {
		v.SetConfigName("photo-ingest")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	if flags != nil {
		for key, flag := range flagBindings {
			if f := flags.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", flag, err)
				}
			}
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration is usable for ingestion
func (c *Config) Validate() error {
	if c.Storage.Root == "" {
		return fmt.Errorf("storage root is required")
	}
	if c.Storage.MaxFileSize <= 0 {
		return fmt.Errorf("max file size must be positive")
	}
	if c.Ingest.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1")
	}
	return nil
}

// MirrorStorageConfig converts the mirror section into the storage package's config
func (c *Config) MirrorStorageConfig() storage.MirrorConfig {
	return storage.MirrorConfig{
		Endpoint:  c.Mirror.Endpoint,
		Region:    c.Mirror.Region,
		Bucket:    c.Mirror.Bucket,
		AccessKey: c.Mirror.AccessKey,
		SecretKey: c.Mirror.SecretKey,
		UseSSL:    c.Mirror.UseSSL,
		Prefix:    c.Mirror.Prefix,
	}
}
