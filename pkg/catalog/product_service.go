package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Product operations. Same create/update/delete shape as categories,
// parameterized by one display image plus a gallery instead of a single
// image.

func (s *service) CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error) {
	if err := validateCreateProduct(req); err != nil {
		return nil, err
	}

	category, err := s.repo.GetCategory(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}
	subCategories, err := resolveSubCategories(category, req.SubCategories)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &Product{
		ID:            uuid.New(),
		Name:          strings.TrimSpace(req.Name),
		CategoryID:    category.ID,
		SubCategories: subCategories,
		Description:   strings.TrimSpace(req.Description),
		GalleryImages: []MediaRef{},
		Price:         req.Price,
		SalePrice:     req.SalePrice,
		Stock:         req.Stock,
		Weight:        req.Weight,
		Availability:  req.Availability,
		Tags:          req.Tags,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, &ProductError{ProductID: product.ID, Op: "create", Err: err}
	}

	display, err := s.uploader.UploadOne(ctx, *req.DisplayImage, FolderProductImages)
	if err != nil {
		s.abortProductCreate(ctx, product.ID, nil)
		return nil, &ProductError{ProductID: product.ID, Op: "upload_display_image", Err: err}
	}

	gallery, err := s.uploader.UploadAll(ctx, req.GalleryImages, FolderProductImages)
	uploaded := ExternalIDs(append([]MediaRef{display}, gallery...)...)
	if err != nil {
		s.abortProductCreate(ctx, product.ID, uploaded)
		return nil, &ProductError{ProductID: product.ID, Op: "upload_gallery", Err: err}
	}

	product.DisplayImage = display
	product.GalleryImages = gallery
	product.UpdatedAt = time.Now().UTC()
	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		if s.productFinalized(ctx, product.ID, display.URL, err) {
			return product, nil
		}
		s.abortProductCreate(ctx, product.ID, uploaded)
		return nil, &ProductError{ProductID: product.ID, Op: "finalize", Err: err}
	}

	return product, nil
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*Product, error) {
	return s.repo.GetProduct(ctx, id)
}

func (s *service) UpdateProduct(ctx context.Context, req UpdateProductRequest) (*Product, error) {
	existing, err := s.repo.GetProduct(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if err := validateUpdateProduct(req, existing); err != nil {
		return nil, err
	}

	updated := *existing

	// Re-resolve the sub-category subset when either side of the reference
	// changes.
	if req.CategoryID != nil || req.SubCategories != nil {
		categoryID := existing.CategoryID
		if req.CategoryID != nil {
			categoryID = *req.CategoryID
		}
		category, err := s.repo.GetCategory(ctx, categoryID)
		if err != nil {
			return nil, err
		}
		names := existing.SubCategories
		if req.SubCategories != nil {
			names = req.SubCategories
		}
		resolved, err := resolveSubCategories(category, names)
		if err != nil {
			return nil, err
		}
		updated.CategoryID = category.ID
		updated.SubCategories = resolved
	}

	// Upload replacements before touching the record. Old remote assets are
	// collected but deleted only after the record commit.
	var newIDs, oldIDs []string
	if req.DisplayImage != nil {
		display, err := s.uploader.UploadOne(ctx, *req.DisplayImage, FolderProductImages)
		if err != nil {
			return nil, &ProductError{ProductID: req.ID, Op: "upload_display_image", Err: err}
		}
		newIDs = append(newIDs, ExternalIDs(display)...)
		oldIDs = append(oldIDs, ExternalIDs(existing.DisplayImage)...)
		updated.DisplayImage = display
	}
	if len(req.GalleryImages) > 0 {
		gallery, err := s.uploader.UploadAll(ctx, req.GalleryImages, FolderProductImages)
		if err != nil {
			s.cleanupBlobs(ctx, "product", req.ID.String(), append(newIDs, ExternalIDs(gallery...)...))
			return nil, &ProductError{ProductID: req.ID, Op: "upload_gallery", Err: err}
		}
		newIDs = append(newIDs, ExternalIDs(gallery...)...)
		oldIDs = append(oldIDs, ExternalIDs(existing.GalleryImages...)...)
		updated.GalleryImages = gallery
	}

	if req.Name != nil {
		updated.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		updated.Description = strings.TrimSpace(*req.Description)
	}
	if req.Price != nil {
		updated.Price = *req.Price
	}
	if req.SalePrice != nil {
		updated.SalePrice = *req.SalePrice
	}
	if req.Stock != nil {
		updated.Stock = *req.Stock
	}
	if req.Weight != nil {
		updated.Weight = *req.Weight
	}
	if req.Availability != nil {
		updated.Availability = *req.Availability
	}
	if req.Tags != nil {
		updated.Tags = req.Tags
	}
	updated.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateProduct(ctx, &updated); err != nil {
		if len(newIDs) > 0 && s.productFinalized(ctx, req.ID, updated.DisplayImage.URL, err) {
			s.deleteOldProductMedia(ctx, req.ID, oldIDs, newIDs)
			return &updated, nil
		}
		// The record was never changed; the old assets stay valid and only
		// the new uploads are rolled back.
		s.cleanupBlobs(ctx, "product", req.ID.String(), newIDs)
		return nil, &ProductError{ProductID: req.ID, Op: "update", Err: err}
	}

	s.deleteOldProductMedia(ctx, req.ID, oldIDs, newIDs)
	return &updated, nil
}

func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) (*Product, error) {
	product, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return nil, &ProductError{ProductID: id, Op: "delete", Err: err}
	}

	refs := append([]MediaRef{product.DisplayImage}, product.GalleryImages...)
	if ids := ExternalIDs(refs...); len(ids) > 0 {
		if err := s.blob.DeleteMany(context.WithoutCancel(ctx), ids); err != nil {
			s.log.Error("orphaned blobs after product delete",
				"product_id", id, "external_ids", ids, "error", err)
		}
	}

	return product, nil
}

func (s *service) ListProducts(ctx context.Context, req ListRequest) (*ProductPage, error) {
	page, limit := normalizePaging(req)
	filter := Filter{Search: strings.TrimSpace(req.Search)}

	products, err := s.repo.ListProducts(ctx, filter, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	count, err := s.repo.CountProducts(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ProductPage{
		Products:      products,
		Page:          page,
		Limit:         limit,
		MatchingCount: count,
	}, nil
}

// Helper methods

// resolveSubCategories maps submitted names onto the category's stored
// sub-category entries (case-insensitive) and rejects names outside the
// category's list.
func resolveSubCategories(category *Category, names []string) ([]string, error) {
	out := make([]string, len(names))
	for i, name := range names {
		normalized := NormalizeSubCategory(name)
		found := false
		for _, have := range category.SubCategories {
			if strings.EqualFold(have, normalized) {
				out[i] = have
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: %s", ErrSubCategoryNotFound, normalized)
		}
	}
	return out, nil
}

func (s *service) productFinalized(ctx context.Context, id uuid.UUID, displayURL string, err error) bool {
	if !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled) {
		return false
	}
	stored, getErr := s.repo.GetProduct(context.WithoutCancel(ctx), id)
	return getErr == nil && stored.DisplayImage.URL == displayURL
}

func (s *service) abortProductCreate(ctx context.Context, id uuid.UUID, externalIDs []string) {
	ctx = context.WithoutCancel(ctx)
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		s.log.Error("orphaned product record after failed create", "product_id", id, "error", err)
	}
	s.cleanupBlobs(ctx, "product", id.String(), externalIDs)
}

// deleteOldProductMedia removes replaced remote assets after a successful
// update commit. An id that also appears in the new set is kept.
func (s *service) deleteOldProductMedia(ctx context.Context, id uuid.UUID, oldIDs, newIDs []string) {
	var stale []string
	for _, old := range oldIDs {
		replaced := true
		for _, current := range newIDs {
			if old == current {
				replaced = false
				break
			}
		}
		if replaced {
			stale = append(stale, old)
		}
	}
	if len(stale) == 0 {
		return
	}
	if err := s.blob.DeleteMany(context.WithoutCancel(ctx), stale); err != nil {
		s.log.Error("orphaned blobs after product update",
			"product_id", id, "external_ids", stale, "error", err)
	}
}
