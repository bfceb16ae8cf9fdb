// Package uploader implements the media upload orchestrator: blob-store
// uploads with a local-disk fallback and a bounded-concurrency pool for
// multi-file batches.
package uploader

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/tendant/simple-catalog/pkg/catalog"
)

// DefaultWorkers bounds parallel uploads in UploadAll.
const DefaultWorkers = 4

// Uploader implements catalog.MediaUploader.
type Uploader struct {
	blob     catalog.BlobStore
	fallback catalog.FallbackStore
	workers  int
	log      *slog.Logger
}

// Option configures an Uploader.
type Option func(*Uploader)

// WithWorkers sets the worker-pool width for UploadAll.
func WithWorkers(n int) Option {
	return func(u *Uploader) {
		if n > 0 {
			u.workers = n
		}
	}
}

// WithLogger sets the logger used to report degraded (fallback) uploads.
func WithLogger(log *slog.Logger) Option {
	return func(u *Uploader) {
		if log != nil {
			u.log = log
		}
	}
}

// New creates an Uploader over a blob store and a local fallback store.
func New(blob catalog.BlobStore, fallback catalog.FallbackStore, options ...Option) *Uploader {
	u := &Uploader{
		blob:     blob,
		fallback: fallback,
		workers:  DefaultWorkers,
		log:      slog.Default(),
	}
	for _, option := range options {
		option(u)
	}
	return u
}

// UploadOne uploads a single file. Any blob-store failure degrades to the
// fallback store and a MediaRef with no external ID; only a fallback
// failure is an error.
func (u *Uploader) UploadOne(ctx context.Context, file catalog.File, folder string) (catalog.MediaRef, error) {
	ref, err := u.blob.Upload(ctx, file, folder)
	if err == nil {
		return ref, nil
	}

	u.log.Warn("blob store upload failed, saving locally",
		"file", file.Name, "folder", folder, "error", err)

	url, saveErr := u.fallback.Save(ctx, file)
	if saveErr != nil {
		return catalog.MediaRef{}, saveErr
	}
	return catalog.MediaRef{URL: url}, nil
}

// UploadAll uploads files through a pool of at most the configured worker
// count. The returned slice corresponds index-for-index with the input; on
// error it still carries every ref that finished, so the caller can
// compensate the external uploads that already happened.
func (u *Uploader) UploadAll(ctx context.Context, files []catalog.File, folder string) ([]catalog.MediaRef, error) {
	refs := make([]catalog.MediaRef, len(files))
	if len(files) == 0 {
		return refs, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(u.workers)
	for i, file := range files {
		g.Go(func() error {
			ref, err := u.UploadOne(ctx, file, folder)
			if err != nil {
				return err
			}
			refs[i] = ref
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return refs, err
	}
	return refs, nil
}
