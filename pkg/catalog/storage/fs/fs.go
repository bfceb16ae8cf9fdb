// Package fs provides the local-disk fallback store used when the blob
// store is unavailable. Files saved here have no external ID and cannot be
// deleted remotely.
package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tendant/simple-catalog/pkg/catalog"
)

// Config options for the fallback store
type Config struct {
	BaseDir   string // Base directory for storing files
	URLPrefix string // URL prefix the saved files are served under
}

// Store is a filesystem implementation of the catalog.FallbackStore
// interface.
type Store struct {
	baseDir   string
	urlPrefix string
}

// New creates a new filesystem fallback store
func New(config Config) (*Store, error) {
	if config.BaseDir == "" {
		return nil, errors.New("base directory is required")
	}

	if err := os.MkdirAll(config.BaseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	urlPrefix := strings.TrimSuffix(config.URLPrefix, "/")
	if urlPrefix == "" {
		urlPrefix = "/uploads"
	}

	return &Store{
		baseDir:   config.BaseDir,
		urlPrefix: urlPrefix,
	}, nil
}

// Save writes the file under a timestamped name and returns its durable
// URL. Disk failures propagate; the fallback is the last line of defense.
func (s *Store) Save(ctx context.Context, file catalog.File) (string, error) {
	filename := fmt.Sprintf("%d_%s", time.Now().UnixMilli(), filepath.Base(file.Name))
	target := filepath.Join(s.baseDir, filename)

	if err := os.WriteFile(target, file.Data, 0644); err != nil {
		return "", fmt.Errorf("failed to save file locally: %w", err)
	}

	return fmt.Sprintf("%s/%s", s.urlPrefix, filename), nil
}
