// Package config assembles a catalog.Service from declarative server
// configuration: repository selection, blob store, fallback store and
// uploader wiring.
package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tendant/simple-catalog/pkg/catalog"
	repomemory "github.com/tendant/simple-catalog/pkg/catalog/repo/memory"
	repopg "github.com/tendant/simple-catalog/pkg/catalog/repo/postgres"
	fsstorage "github.com/tendant/simple-catalog/pkg/catalog/storage/fs"
	memorystorage "github.com/tendant/simple-catalog/pkg/catalog/storage/memory"
	s3storage "github.com/tendant/simple-catalog/pkg/catalog/storage/s3"
	"github.com/tendant/simple-catalog/pkg/catalog/uploader"
)

// Option applies configuration to a ServerConfig instance.
type Option func(*ServerConfig) error

// Load constructs a ServerConfig by applying the supplied options on top of
// library defaults.
func Load(opts ...Option) (*ServerConfig, error) {
	cfg := defaults()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() ServerConfig {
	return ServerConfig{
		Port:          "8080",
		Environment:   "development",
		DatabaseType:  "memory",
		StorageType:   "memory",
		UploadWorkers: uploader.DefaultWorkers,
		FallbackDir:   "uploads",
		FallbackURL:   "/uploads",
	}
}

// ServerConfig represents server configuration for the catalog service
type ServerConfig struct {
	Port        string
	Environment string // development, production, testing

	// Database configuration
	DatabaseURL  string
	DatabaseType string // "memory", "postgres"

	// Blob store configuration
	StorageType string // "memory", "s3"
	S3          s3storage.Config

	// Local fallback store
	FallbackDir string
	FallbackURL string

	// Upload worker-pool width
	UploadWorkers int
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}

	if c.DatabaseType != "memory" && c.DatabaseType != "postgres" {
		return errors.New("database_type must be 'memory' or 'postgres'")
	}

	if c.DatabaseType == "postgres" && c.DatabaseURL == "" {
		return errors.New("database_url is required when using postgres")
	}

	if c.StorageType != "memory" && c.StorageType != "s3" {
		return errors.New("storage_type must be 'memory' or 's3'")
	}

	if c.StorageType == "s3" && c.S3.Bucket == "" {
		return errors.New("s3 bucket is required when using s3 storage")
	}

	if c.FallbackDir == "" {
		return errors.New("fallback directory is required")
	}

	return nil
}

// BuildService creates a Service instance from the server configuration.
// The returned shutdown function closes the database pool when one was
// opened.
func (c *ServerConfig) BuildService(ctx context.Context, log *slog.Logger) (catalog.Service, func(), error) {
	shutdown := func() {}

	repo, pool, err := c.buildRepository(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build repository: %w", err)
	}
	if pool != nil {
		shutdown = pool.Close
	}

	blob, err := c.buildBlobStore()
	if err != nil {
		shutdown()
		return nil, nil, fmt.Errorf("failed to build blob store: %w", err)
	}

	fallback, err := fsstorage.New(fsstorage.Config{
		BaseDir:   c.FallbackDir,
		URLPrefix: c.FallbackURL,
	})
	if err != nil {
		shutdown()
		return nil, nil, fmt.Errorf("failed to build fallback store: %w", err)
	}

	svc, err := catalog.New(
		catalog.WithRepository(repo),
		catalog.WithBlobStore(blob),
		catalog.WithUploader(uploader.New(blob, fallback,
			uploader.WithWorkers(c.UploadWorkers),
			uploader.WithLogger(log),
		)),
		catalog.WithLogger(log),
	)
	if err != nil {
		shutdown()
		return nil, nil, err
	}

	return svc, shutdown, nil
}

func (c *ServerConfig) buildRepository(ctx context.Context) (catalog.Repository, *pgxpool.Pool, error) {
	switch c.DatabaseType {
	case "postgres":
		pool, err := pgxpool.New(ctx, c.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create database pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("failed to ping database: %w", err)
		}
		return repopg.NewWithPool(pool), pool, nil
	default:
		return repomemory.New(), nil, nil
	}
}

func (c *ServerConfig) buildBlobStore() (catalog.BlobStore, error) {
	switch c.StorageType {
	case "s3":
		return s3storage.New(c.S3)
	default:
		return memorystorage.New(), nil
	}
}
