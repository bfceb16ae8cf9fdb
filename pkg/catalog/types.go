package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Availability is the shipping readiness of a product.
type Availability string

// Availability constants. The spellings are wire values carried over from
// the existing clients and must not change.
const (
	AvailabilityReadyToShip Availability = "Ready_To_Ship"
	AvailabilityOnBooking   Availability = "On_Booking"
)

// ProductTag is a merchandising label attached to a product.
type ProductTag string

// Product tag constants (wire values).
const (
	TagHotProduct ProductTag = "Hot_product"
	TagBestSeller ProductTag = "Best_Seller"
	TagTodaysDeal ProductTag = "Today's_deal"
)

// ValidAvailability reports whether a is a known availability value.
func ValidAvailability(a Availability) bool {
	return a == AvailabilityReadyToShip || a == AvailabilityOnBooking
}

// ValidProductTag reports whether t is a known product tag.
func ValidProductTag(t ProductTag) bool {
	return t == TagHotProduct || t == TagBestSeller || t == TagTodaysDeal
}

// MediaRef points at a stored binary asset. ExternalID is the blob store's
// opaque handle; when empty the asset was written through the local fallback
// store and cannot be deleted remotely.
type MediaRef struct {
	URL        string `json:"url"`
	ExternalID string `json:"externalId,omitempty"`
}

// Remote reports whether the asset lives in the external blob store.
func (m MediaRef) Remote() bool { return m.ExternalID != "" }

// ExternalIDs collects the non-empty external IDs out of refs, preserving
// order. The lifecycle engine feeds the result to DeleteMany during
// compensation.
func ExternalIDs(refs ...MediaRef) []string {
	var ids []string
	for _, r := range refs {
		if r.ExternalID != "" {
			ids = append(ids, r.ExternalID)
		}
	}
	return ids
}

// Category is a catalog category with an ordered list of sub-category names
// and a single image.
type Category struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"categoryName"`
	Slug          string    `json:"slug"`
	Description   string    `json:"categoryDescription"`
	SubCategories []string  `json:"subCategoriesName"`
	Image         MediaRef  `json:"categoryImage"`
	// Version backs the compare-and-swap on SubCategories mutations.
	Version   int64     `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Product is a catalog product referencing a category and a subset of its
// sub-category names, with one display image and a gallery.
type Product struct {
	ID            uuid.UUID    `json:"id"`
	Name          string       `json:"productName"`
	CategoryID    uuid.UUID    `json:"categoryName"`
	SubCategories []string     `json:"subCategoryName"`
	Description   string       `json:"productDescription"`
	DisplayImage  MediaRef     `json:"productDisplayImage"`
	GalleryImages []MediaRef   `json:"productImages"`
	Price         float64      `json:"productPrice"`
	SalePrice     float64      `json:"productSalePrice"`
	Stock         int          `json:"stock"`
	Weight        float64      `json:"weight"`
	Availability  Availability `json:"availability"`
	Tags          []ProductTag `json:"productType"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

// File is an in-memory upload, as parsed out of a multipart request.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Upload folders per asset kind.
const (
	FolderCategoryImages = "category_images"
	FolderProductImages  = "product_images"
)

// Limits enforced by the engine.
const (
	MaxGalleryImages      = 50
	MaxCategoryImageBytes = 500 * 1024
)
