package catalog

import "github.com/google/uuid"

// CreateCategoryRequest contains parameters for creating a category.
// Image is required.
type CreateCategoryRequest struct {
	Name        string
	Slug        string
	Description string
	Image       *File
}

// UpdateCategoryRequest contains parameters for updating a category.
// Nil fields keep their prior values; a non-nil Image replaces the current
// one and schedules the old remote asset for deletion after commit.
type UpdateCategoryRequest struct {
	ID          uuid.UUID
	Name        *string
	Slug        *string
	Description *string
	Image       *File
}

// CreateProductRequest contains parameters for creating a product.
type CreateProductRequest struct {
	Name          string
	CategoryID    uuid.UUID
	SubCategories []string
	Description   string
	DisplayImage  *File
	GalleryImages []File
	Price         float64
	SalePrice     float64
	Stock         int
	Weight        float64
	Availability  Availability
	Tags          []ProductTag
}

// UpdateProductRequest contains parameters for updating a product. Nil (or
// empty-slice) fields keep their prior values. Supplying GalleryImages
// replaces the whole gallery.
type UpdateProductRequest struct {
	ID            uuid.UUID
	Name          *string
	CategoryID    *uuid.UUID
	SubCategories []string
	Description   *string
	DisplayImage  *File
	GalleryImages []File
	Price         *float64
	SalePrice     *float64
	Stock         *int
	Weight        *float64
	Availability  *Availability
	Tags          []ProductTag
}

// ListRequest contains paging parameters for list operations. Page values
// below 1 become 1; limits outside AllowedLimits fall back to DefaultLimit.
type ListRequest struct {
	Search string
	Page   int
	Limit  int
}

// Paging bounds.
const DefaultLimit = 10

// AllowedLimits is the fixed set of accepted page sizes.
var AllowedLimits = []int{10, 25, 50, 100}

// CategoryPage is one page of categories plus the independent match count.
// The count and the page are separate queries with no shared snapshot, so
// under concurrent writes they can be transiently inconsistent.
type CategoryPage struct {
	Categories    []*Category `json:"categories"`
	Page          int         `json:"page"`
	Limit         int         `json:"limit"`
	MatchingCount int64       `json:"matchingCount"`
}

// ProductPage is one page of products plus the independent match count.
type ProductPage struct {
	Products      []*Product `json:"products"`
	Page          int        `json:"page"`
	Limit         int        `json:"limit"`
	MatchingCount int64      `json:"matchingCount"`
}
