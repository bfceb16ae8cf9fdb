package catalog

import (
	"context"

	"github.com/google/uuid"
)

// Service is the lifecycle engine for catalog entities.
type Service interface {
	// Category operations
	CreateCategory(ctx context.Context, req CreateCategoryRequest) (*Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*Category, error)
	UpdateCategory(ctx context.Context, req UpdateCategoryRequest) (*Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) (*Category, error)
	ListCategories(ctx context.Context, req ListRequest) (*CategoryPage, error)

	// Sub-category list operations
	AddSubCategories(ctx context.Context, categoryID uuid.UUID, names []string) (*Category, error)
	RenameSubCategory(ctx context.Context, categoryID uuid.UUID, oldName, newName string) (*Category, error)
	RemoveSubCategories(ctx context.Context, categoryID uuid.UUID, names []string) (*Category, error)

	// Product operations
	CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*Product, error)
	UpdateProduct(ctx context.Context, req UpdateProductRequest) (*Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) (*Product, error)
	ListProducts(ctx context.Context, req ListRequest) (*ProductPage, error)
}
