// Package memory provides an in-memory blob store used in tests and local
// development. It records every call and can be told to fail, which the
// lifecycle tests use to simulate blob-store outages and compensation
// failures.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/tendant/simple-catalog/pkg/catalog"
)

// Store is an in-memory implementation of the catalog.BlobStore interface.
type Store struct {
	mu      sync.Mutex
	objects map[string][]byte

	// Deleted records every external ID passed to Delete or DeleteMany, in
	// call order.
	deleted []string

	failUploads bool
	failDeletes bool
}

// New creates a new in-memory blob store
func New() *Store {
	return &Store{
		objects: make(map[string][]byte),
	}
}

// FailUploads makes every subsequent Upload return an error.
func (s *Store) FailUploads(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failUploads = fail
}

// FailDeletes makes every subsequent Delete/DeleteMany return an error.
func (s *Store) FailDeletes(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failDeletes = fail
}

// Upload stores the file under a fresh key.
func (s *Store) Upload(ctx context.Context, file catalog.File, folder string) (catalog.MediaRef, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failUploads {
		return catalog.MediaRef{}, &catalog.StorageError{
			Backend: "memory",
			Key:     file.Name,
			Op:      "upload",
			Err:     errors.New("upload failure injected"),
		}
	}

	key := fmt.Sprintf("%s/%s", folder, uuid.New())
	s.objects[key] = file.Data

	return catalog.MediaRef{
		URL:        fmt.Sprintf("memory://%s", key),
		ExternalID: key,
	}, nil
}

// Delete removes a single object.
func (s *Store) Delete(ctx context.Context, externalID string) error {
	return s.DeleteMany(ctx, []string{externalID})
}

// DeleteMany removes a batch of objects.
func (s *Store) DeleteMany(ctx context.Context, externalIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failDeletes {
		return &catalog.StorageError{
			Backend: "memory",
			Op:      "delete_many",
			Err:     errors.New("delete failure injected"),
		}
	}

	for _, id := range externalIDs {
		delete(s.objects, id)
		s.deleted = append(s.deleted, id)
	}
	return nil
}

// Deleted returns the external IDs deleted so far, in call order.
func (s *Store) Deleted() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.deleted))
	copy(out, s.deleted)
	return out
}

// Stored reports whether an object is still present.
func (s *Store) Stored(externalID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[externalID]
	return ok
}

// Len returns the number of stored objects.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}
