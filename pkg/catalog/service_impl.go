package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// service implements the Service interface
type service struct {
	repo     Repository
	blob     BlobStore
	uploader MediaUploader
	log      *slog.Logger
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithRepository sets the entity repository for the service
func WithRepository(repo Repository) Option {
	return func(s *service) {
		s.repo = repo
	}
}

// WithBlobStore sets the blob store used for compensating deletes
func WithBlobStore(store BlobStore) Option {
	return func(s *service) {
		s.blob = store
	}
}

// WithUploader sets the media upload orchestrator
func WithUploader(uploader MediaUploader) Option {
	return func(s *service) {
		s.uploader = uploader
	}
}

// WithLogger sets the structured logger. Orphans left behind by failed
// compensation are reported through it.
func WithLogger(log *slog.Logger) Option {
	return func(s *service) {
		s.log = log
	}
}

// New creates a new service instance with the given options
func New(options ...Option) (Service, error) {
	s := &service{}

	for _, option := range options {
		option(s)
	}

	if s.repo == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if s.blob == nil {
		return nil, fmt.Errorf("blob store is required")
	}
	if s.uploader == nil {
		return nil, fmt.Errorf("uploader is required")
	}
	if s.log == nil {
		s.log = slog.Default()
	}

	return s, nil
}

// Category operations

// CreateCategory runs the create state machine: validate, persist the
// skeleton record (reserving identity and the unique name before any upload
// cost), upload the image, then patch the record. A failure after the
// skeleton insert deletes the record and any uploaded blob.
func (s *service) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*Category, error) {
	if err := validateCreateCategory(req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	category := &Category{
		ID:            uuid.New(),
		Name:          strings.TrimSpace(req.Name),
		Slug:          Slugify(req.Slug),
		Description:   strings.TrimSpace(req.Description),
		SubCategories: []string{},
		Version:       1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.CreateCategory(ctx, category); err != nil {
		if errors.Is(err, ErrCategoryExists) {
			return nil, err
		}
		return nil, &CategoryError{CategoryID: category.ID, Op: "create", Err: err}
	}

	ref, err := s.uploader.UploadOne(ctx, *req.Image, FolderCategoryImages)
	if err != nil {
		s.abortCategoryCreate(ctx, category.ID, nil)
		return nil, &CategoryError{CategoryID: category.ID, Op: "upload_image", Err: err}
	}

	category.Image = ref
	category.UpdatedAt = time.Now().UTC()
	if err := s.repo.UpdateCategory(ctx, category); err != nil {
		if s.categoryFinalized(ctx, category.ID, ref.URL, err) {
			return category, nil
		}
		s.abortCategoryCreate(ctx, category.ID, ExternalIDs(ref))
		return nil, &CategoryError{CategoryID: category.ID, Op: "finalize", Err: err}
	}

	return category, nil
}

func (s *service) GetCategory(ctx context.Context, id uuid.UUID) (*Category, error) {
	return s.repo.GetCategory(ctx, id)
}

// UpdateCategory uploads the replacement image first, persists the merged
// record, and only then deletes the old remote asset, so the record never
// points at a deleted blob. If the persist fails, the newly uploaded asset
// is deleted instead and the stored record stays on the old one.
func (s *service) UpdateCategory(ctx context.Context, req UpdateCategoryRequest) (*Category, error) {
	existing, err := s.repo.GetCategory(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if err := validateUpdateCategory(req); err != nil {
		return nil, err
	}

	updated := *existing
	var newRef *MediaRef
	if req.Image != nil {
		ref, err := s.uploader.UploadOne(ctx, *req.Image, FolderCategoryImages)
		if err != nil {
			return nil, &CategoryError{CategoryID: req.ID, Op: "upload_image", Err: err}
		}
		newRef = &ref
		updated.Image = ref
	}
	if req.Name != nil {
		updated.Name = strings.TrimSpace(*req.Name)
	}
	if req.Slug != nil {
		updated.Slug = Slugify(*req.Slug)
	}
	if req.Description != nil {
		updated.Description = strings.TrimSpace(*req.Description)
	}
	updated.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateCategory(ctx, &updated); err != nil {
		if newRef != nil && s.categoryFinalized(ctx, req.ID, newRef.URL, err) {
			s.deleteReplacedImage(ctx, existing.Image, *newRef)
			return &updated, nil
		}
		if newRef != nil {
			s.cleanupBlobs(ctx, "category", req.ID.String(), ExternalIDs(*newRef))
		}
		if errors.Is(err, ErrCategoryExists) {
			return nil, err
		}
		return nil, &CategoryError{CategoryID: req.ID, Op: "update", Err: err}
	}

	if newRef != nil {
		s.deleteReplacedImage(ctx, existing.Image, *newRef)
	}
	return &updated, nil
}

// DeleteCategory removes the record first and then deletes the blob best
// effort; entity deletion never waits on blob cleanup. The delete is
// rejected while any product references the category.
func (s *service) DeleteCategory(ctx context.Context, id uuid.UUID) (*Category, error) {
	products, err := s.repo.ListProductsByCategory(ctx, id)
	if err != nil {
		return nil, &CategoryError{CategoryID: id, Op: "delete", Err: err}
	}
	if len(products) > 0 {
		names := make([]string, len(products))
		for i, p := range products {
			names[i] = p.Name
		}
		return nil, fmt.Errorf("%w: %s. Delete them first", ErrCategoryInUse, strings.Join(names, ", "))
	}

	category, err := s.repo.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return nil, &CategoryError{CategoryID: id, Op: "delete", Err: err}
	}

	if category.Image.Remote() {
		if err := s.blob.Delete(context.WithoutCancel(ctx), category.Image.ExternalID); err != nil {
			s.log.Error("orphaned blob after category delete",
				"category_id", id, "external_id", category.Image.ExternalID, "error", err)
		}
	}

	return category, nil
}

func (s *service) ListCategories(ctx context.Context, req ListRequest) (*CategoryPage, error) {
	page, limit := normalizePaging(req)
	filter := Filter{Search: strings.TrimSpace(req.Search)}

	categories, err := s.repo.ListCategories(ctx, filter, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	count, err := s.repo.CountCategories(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &CategoryPage{
		Categories:    categories,
		Page:          page,
		Limit:         limit,
		MatchingCount: count,
	}, nil
}

// Sub-category list operations

func (s *service) AddSubCategories(ctx context.Context, categoryID uuid.UUID, names []string) (*Category, error) {
	normalized := normalizeSubCategories(names)
	if err := validateSubCategoryNames(normalized); err != nil {
		return nil, err
	}
	return s.mutateSubCategories(ctx, categoryID, func(current []string) ([]string, error) {
		return appendSubCategories(current, normalized)
	})
}

func (s *service) RenameSubCategory(ctx context.Context, categoryID uuid.UUID, oldName, newName string) (*Category, error) {
	normalized := NormalizeSubCategory(newName)
	if err := validateSubCategoryNames([]string{normalized}); err != nil {
		return nil, err
	}
	return s.mutateSubCategories(ctx, categoryID, func(current []string) ([]string, error) {
		return renameSubCategory(current, oldName, normalized)
	})
}

func (s *service) RemoveSubCategories(ctx context.Context, categoryID uuid.UUID, names []string) (*Category, error) {
	normalized := normalizeSubCategories(names)
	if len(normalized) == 0 {
		return nil, NewValidationError("subCategoriesName", "at least one subcategory name is required")
	}
	return s.mutateSubCategories(ctx, categoryID, func(current []string) ([]string, error) {
		return removeSubCategories(current, normalized)
	})
}

// mutateSubCategories runs a read-modify-write over the whole list guarded
// by the repository's version check, retrying once when a concurrent
// mutation wins the swap.
func (s *service) mutateSubCategories(ctx context.Context, id uuid.UUID, mutate func([]string) ([]string, error)) (*Category, error) {
	for attempt := 0; ; attempt++ {
		category, err := s.repo.GetCategory(ctx, id)
		if err != nil {
			return nil, err
		}

		next, err := mutate(category.SubCategories)
		if err != nil {
			return nil, err
		}

		updated, err := s.repo.UpdateSubCategories(ctx, id, category.Version, next)
		if err == nil {
			return updated, nil
		}
		if !errors.Is(err, ErrVersionConflict) || attempt >= 1 {
			return nil, &CategoryError{CategoryID: id, Op: "mutate_subcategories", Err: err}
		}
	}
}

// Helper methods

func normalizePaging(req ListRequest) (page, limit int) {
	page = req.Page
	if page < 1 {
		page = 1
	}
	limit = DefaultLimit
	for _, allowed := range AllowedLimits {
		if req.Limit == allowed {
			limit = req.Limit
			break
		}
	}
	return page, limit
}

// categoryFinalized disambiguates a failed finalize write. A deadline or
// cancellation after uploads may hide a commit that actually happened;
// deleting in that state would leave the stored record pointing at a dead
// asset, so the current record is re-queried before any compensation.
func (s *service) categoryFinalized(ctx context.Context, id uuid.UUID, imageURL string, err error) bool {
	if !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled) {
		return false
	}
	stored, getErr := s.repo.GetCategory(context.WithoutCancel(ctx), id)
	return getErr == nil && stored.Image.URL == imageURL
}

// abortCategoryCreate compensates a partially-completed create: delete the
// skeleton record, then any uploaded blobs. Failures here produce orphans,
// which are logged for out-of-band reconciliation and never change the
// error the caller already got.
func (s *service) abortCategoryCreate(ctx context.Context, id uuid.UUID, externalIDs []string) {
	ctx = context.WithoutCancel(ctx)
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		s.log.Error("orphaned category record after failed create", "category_id", id, "error", err)
	}
	s.cleanupBlobs(ctx, "category", id.String(), externalIDs)
}

// cleanupBlobs best-effort deletes uploaded assets, logging an orphan on
// failure.
func (s *service) cleanupBlobs(ctx context.Context, entity, id string, externalIDs []string) {
	if len(externalIDs) == 0 {
		return
	}
	if err := s.blob.DeleteMany(context.WithoutCancel(ctx), externalIDs); err != nil {
		s.log.Error("orphaned blobs after compensation failure",
			"entity", entity, "id", id, "external_ids", externalIDs, "error", err)
	}
}

// deleteReplacedImage removes the previous remote asset once the record
// durably points at the new one. Fallback-stored assets have no external ID
// and are skipped.
func (s *service) deleteReplacedImage(ctx context.Context, old, new MediaRef) {
	if !old.Remote() || old.ExternalID == new.ExternalID {
		return
	}
	if err := s.blob.Delete(context.WithoutCancel(ctx), old.ExternalID); err != nil {
		s.log.Error("orphaned blob after image replacement",
			"external_id", old.ExternalID, "error", err)
	}
}
