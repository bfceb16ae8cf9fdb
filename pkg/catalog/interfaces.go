package catalog

import (
	"context"

	"github.com/google/uuid"
)

// BlobStore defines the external object-store capability. All calls may fail
// transiently; the uploader absorbs upload failures via the fallback store,
// while delete failures are the caller's orphan-handling concern.
type BlobStore interface {
	// Upload stores a file under folder and returns its MediaRef.
	Upload(ctx context.Context, file File, folder string) (MediaRef, error)

	// Delete removes a single asset by external ID.
	Delete(ctx context.Context, externalID string) error

	// DeleteMany removes a batch of assets by external ID.
	DeleteMany(ctx context.Context, externalIDs []string) error
}

// FallbackStore persists a file locally when the blob store is unavailable.
// Assets saved here have no external ID and cannot be deleted remotely.
type FallbackStore interface {
	Save(ctx context.Context, file File) (string, error)
}

// MediaUploader wraps uploads with the blob-store/fallback policy. A failed
// blob-store upload degrades to a fallback MediaRef instead of an error.
type MediaUploader interface {
	UploadOne(ctx context.Context, file File, folder string) (MediaRef, error)

	// UploadAll uploads files with bounded concurrency. The result slice
	// corresponds index-for-index with the input.
	UploadAll(ctx context.Context, files []File, folder string) ([]MediaRef, error)
}

// Filter selects entities by a case-insensitive substring match against the
// entity name or (categories) any sub-category name. Product filters also
// match the resolved category name. An empty Search matches everything.
type Filter struct {
	Search string
}

// Repository defines the document-store contract for categories and
// products. Implementations must enforce the case-insensitive uniqueness of
// category names at commit time (returning ErrCategoryExists to the loser of
// a race) and provide the versioned sub-category list swap.
type Repository interface {
	// Category operations
	CreateCategory(ctx context.Context, category *Category) error
	GetCategory(ctx context.Context, id uuid.UUID) (*Category, error)
	GetCategoryByName(ctx context.Context, name string) (*Category, error)
	UpdateCategory(ctx context.Context, category *Category) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	ListCategories(ctx context.Context, filter Filter, skip, limit int) ([]*Category, error)
	CountCategories(ctx context.Context, filter Filter) (int64, error)

	// UpdateSubCategories replaces the sub-category list if the stored
	// version still equals expectedVersion, returning the updated category.
	// A lost race returns ErrVersionConflict.
	UpdateSubCategories(ctx context.Context, id uuid.UUID, expectedVersion int64, names []string) (*Category, error)

	// Product operations
	CreateProduct(ctx context.Context, product *Product) error
	GetProduct(ctx context.Context, id uuid.UUID) (*Product, error)
	UpdateProduct(ctx context.Context, product *Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	ListProducts(ctx context.Context, filter Filter, skip, limit int) ([]*Product, error)
	CountProducts(ctx context.Context, filter Filter) (int64, error)
	ListProductsByCategory(ctx context.Context, categoryID uuid.UUID) ([]*Product, error)
}
