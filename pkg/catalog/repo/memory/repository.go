// Package memory provides an in-memory catalog.Repository. It enforces the
// same commit-time guarantees as the SQL repository: case-insensitive
// uniqueness of category names and the versioned sub-category list swap.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tendant/simple-catalog/pkg/catalog"
)

// Repository implements catalog.Repository using in-memory storage
type Repository struct {
	mu         sync.RWMutex
	categories map[uuid.UUID]*catalog.Category
	products   map[uuid.UUID]*catalog.Product
}

// New creates a new in-memory repository
func New() *Repository {
	return &Repository{
		categories: make(map[uuid.UUID]*catalog.Category),
		products:   make(map[uuid.UUID]*catalog.Product),
	}
}

// Category operations

func (r *Repository) CreateCategory(ctx context.Context, category *catalog.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Commit-time uniqueness: two concurrent creates can both pass the
	// caller's validation; the second one fails here.
	for _, have := range r.categories {
		if strings.EqualFold(have.Name, category.Name) {
			return fmt.Errorf("%w: %s", catalog.ErrCategoryExists, category.Name)
		}
	}

	categoryCopy := cloneCategory(category)
	r.categories[category.ID] = categoryCopy

	return nil
}

func (r *Repository) GetCategory(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	category, exists := r.categories[id]
	if !exists {
		return nil, catalog.ErrCategoryNotFound
	}
	return cloneCategory(category), nil
}

func (r *Repository) GetCategoryByName(ctx context.Context, name string) (*catalog.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, category := range r.categories {
		if strings.EqualFold(category.Name, name) {
			return cloneCategory(category), nil
		}
	}
	return nil, catalog.ErrCategoryNotFound
}

func (r *Repository) UpdateCategory(ctx context.Context, category *catalog.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.categories[category.ID]; !exists {
		return catalog.ErrCategoryNotFound
	}
	for id, have := range r.categories {
		if id != category.ID && strings.EqualFold(have.Name, category.Name) {
			return fmt.Errorf("%w: %s", catalog.ErrCategoryExists, category.Name)
		}
	}

	r.categories[category.ID] = cloneCategory(category)

	return nil
}

func (r *Repository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.categories[id]; !exists {
		return catalog.ErrCategoryNotFound
	}
	delete(r.categories, id)
	return nil
}

func (r *Repository) ListCategories(ctx context.Context, filter catalog.Filter, skip, limit int) ([]*catalog.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*catalog.Category
	for _, category := range r.categories {
		if matchCategory(category, filter) {
			result = append(result, cloneCategory(category))
		}
	}

	// Sort by created_at descending
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return paginate(result, skip, limit), nil
}

func (r *Repository) CountCategories(ctx context.Context, filter catalog.Filter) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, category := range r.categories {
		if matchCategory(category, filter) {
			count++
		}
	}
	return count, nil
}

// UpdateSubCategories swaps the sub-category list if the stored version
// still matches, bumping the version so a concurrent read-modify-write
// loses with catalog.ErrVersionConflict instead of clobbering the list.
func (r *Repository) UpdateSubCategories(ctx context.Context, id uuid.UUID, expectedVersion int64, names []string) (*catalog.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	category, exists := r.categories[id]
	if !exists {
		return nil, catalog.ErrCategoryNotFound
	}
	if category.Version != expectedVersion {
		return nil, catalog.ErrVersionConflict
	}

	category.SubCategories = append([]string(nil), names...)
	category.Version++
	category.UpdatedAt = time.Now().UTC()

	return cloneCategory(category), nil
}

// Product operations

func (r *Repository) CreateProduct(ctx context.Context, product *catalog.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.categories[product.CategoryID]; !exists {
		return catalog.ErrCategoryNotFound
	}

	r.products[product.ID] = cloneProduct(product)

	return nil
}

func (r *Repository) GetProduct(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, exists := r.products[id]
	if !exists {
		return nil, catalog.ErrProductNotFound
	}
	return cloneProduct(product), nil
}

func (r *Repository) UpdateProduct(ctx context.Context, product *catalog.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[product.ID]; !exists {
		return catalog.ErrProductNotFound
	}

	r.products[product.ID] = cloneProduct(product)

	return nil
}

func (r *Repository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[id]; !exists {
		return catalog.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *Repository) ListProducts(ctx context.Context, filter catalog.Filter, skip, limit int) ([]*catalog.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*catalog.Product
	for _, product := range r.products {
		if r.matchProduct(product, filter) {
			result = append(result, cloneProduct(product))
		}
	}

	// Sort by created_at descending
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return paginate(result, skip, limit), nil
}

func (r *Repository) CountProducts(ctx context.Context, filter catalog.Filter) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, product := range r.products {
		if r.matchProduct(product, filter) {
			count++
		}
	}
	return count, nil
}

func (r *Repository) ListProductsByCategory(ctx context.Context, categoryID uuid.UUID) ([]*catalog.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*catalog.Product
	for _, product := range r.products {
		if product.CategoryID == categoryID {
			result = append(result, cloneProduct(product))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

// Helper methods

func matchCategory(category *catalog.Category, filter catalog.Filter) bool {
	if filter.Search == "" {
		return true
	}
	needle := strings.ToLower(filter.Search)
	if strings.Contains(strings.ToLower(category.Name), needle) {
		return true
	}
	for _, sub := range category.SubCategories {
		if strings.Contains(strings.ToLower(sub), needle) {
			return true
		}
	}
	return false
}

// matchProduct matches the product name, the product's sub-category names
// and the name of its resolved category. Callers hold r.mu.
func (r *Repository) matchProduct(product *catalog.Product, filter catalog.Filter) bool {
	if filter.Search == "" {
		return true
	}
	needle := strings.ToLower(filter.Search)
	if strings.Contains(strings.ToLower(product.Name), needle) {
		return true
	}
	for _, sub := range product.SubCategories {
		if strings.Contains(strings.ToLower(sub), needle) {
			return true
		}
	}
	if category, exists := r.categories[product.CategoryID]; exists {
		if strings.Contains(strings.ToLower(category.Name), needle) {
			return true
		}
	}
	return false
}

func paginate[T any](items []T, skip, limit int) []T {
	if skip >= len(items) {
		return []T{}
	}
	items = items[skip:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func cloneCategory(category *catalog.Category) *catalog.Category {
	categoryCopy := *category
	categoryCopy.SubCategories = append([]string(nil), category.SubCategories...)
	return &categoryCopy
}

func cloneProduct(product *catalog.Product) *catalog.Product {
	productCopy := *product
	productCopy.SubCategories = append([]string(nil), product.SubCategories...)
	productCopy.GalleryImages = append([]catalog.MediaRef(nil), product.GalleryImages...)
	productCopy.Tags = append([]catalog.ProductTag(nil), product.Tags...)
	return &productCopy
}
