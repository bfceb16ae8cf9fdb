package catalog

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Validation bounds. Category and product descriptions carry different
// profiles; names share one.
const (
	minNameLen = 3
	maxNameLen = 50

	minDescriptionLen      = 10
	maxCategoryDescription = 1000
	maxProductDescription  = 255
	minSubCategoryNameLen  = 3
)

func validateName(field, name string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(name))
	if n < minNameLen || n > maxNameLen {
		return NewValidationError(field, fmt.Sprintf("must be between %d and %d characters", minNameLen, maxNameLen))
	}
	return nil
}

func validateDescription(field, description string, max int) error {
	n := utf8.RuneCountInString(strings.TrimSpace(description))
	if n < minDescriptionLen || n > max {
		return NewValidationError(field, fmt.Sprintf("must be between %d and %d characters", minDescriptionLen, max))
	}
	return nil
}

func validateCategoryImage(file *File) error {
	if file == nil {
		return NewValidationError("categoryImage", "category image is required")
	}
	if len(file.Data) > MaxCategoryImageBytes {
		return NewValidationError("categoryImage", "category image size should be less than 500KB")
	}
	return nil
}

func validateCreateCategory(req CreateCategoryRequest) error {
	if err := validateName("categoryName", req.Name); err != nil {
		return err
	}
	if utf8.RuneCountInString(Slugify(req.Slug)) < minNameLen {
		return NewValidationError("slug", "must be at least 3 characters")
	}
	if err := validateDescription("categoryDescription", req.Description, maxCategoryDescription); err != nil {
		return err
	}
	return validateCategoryImage(req.Image)
}

func validateUpdateCategory(req UpdateCategoryRequest) error {
	if req.Name != nil {
		if err := validateName("categoryName", *req.Name); err != nil {
			return err
		}
	}
	if req.Slug != nil && utf8.RuneCountInString(Slugify(*req.Slug)) < minNameLen {
		return NewValidationError("slug", "must be at least 3 characters")
	}
	if req.Description != nil {
		if err := validateDescription("categoryDescription", *req.Description, maxCategoryDescription); err != nil {
			return err
		}
	}
	if req.Image != nil && len(req.Image.Data) > MaxCategoryImageBytes {
		return NewValidationError("categoryImage", "category image size should be less than 500KB")
	}
	return nil
}

func validateSubCategoryNames(names []string) error {
	if len(names) == 0 {
		return NewValidationError("subCategoriesName", "at least one subcategory name is required")
	}
	for _, n := range names {
		if utf8.RuneCountInString(n) < minSubCategoryNameLen {
			return NewValidationError("subCategoriesName", "each subcategory must be at least 3 characters")
		}
	}
	return nil
}

func validatePricePair(price, salePrice float64) error {
	if price <= 0 {
		return NewValidationError("productPrice", "must be a positive number")
	}
	if salePrice <= 0 {
		return NewValidationError("productSalePrice", "must be a positive number")
	}
	if salePrice >= price {
		return NewValidationError("productSalePrice", "sale price must be less than product price")
	}
	return nil
}

func validateTags(tags []ProductTag) error {
	if len(tags) == 0 {
		return NewValidationError("productType", "at least one product type is required")
	}
	for _, t := range tags {
		if !ValidProductTag(t) {
			return NewValidationError("productType", fmt.Sprintf("invalid product type: %s", t))
		}
	}
	return nil
}

func validateCreateProduct(req CreateProductRequest) error {
	if err := validateName("productName", req.Name); err != nil {
		return err
	}
	if err := validateDescription("productDescription", req.Description, maxProductDescription); err != nil {
		return err
	}
	if len(req.SubCategories) == 0 {
		return NewValidationError("subCategoryName", "at least one subcategory is required")
	}
	if req.DisplayImage == nil {
		return NewValidationError("productDisplayImage", "product display image is required")
	}
	if len(req.GalleryImages) < 1 {
		return NewValidationError("productImages", "at least one product image is required")
	}
	if len(req.GalleryImages) > MaxGalleryImages {
		return NewValidationError("productImages", fmt.Sprintf("maximum %d product images are allowed", MaxGalleryImages))
	}
	if err := validatePricePair(req.Price, req.SalePrice); err != nil {
		return err
	}
	if req.Stock < 0 {
		return NewValidationError("stock", "must be a non-negative integer")
	}
	if req.Weight <= 0 {
		return NewValidationError("weight", "must be a positive number")
	}
	if !ValidAvailability(req.Availability) {
		return NewValidationError("availability", fmt.Sprintf("invalid availability option: %s", req.Availability))
	}
	return validateTags(req.Tags)
}

// validateUpdateProduct checks only the supplied fields, with the price pair
// checked against the effective (merged) values.
func validateUpdateProduct(req UpdateProductRequest, current *Product) error {
	if req.Name != nil {
		if err := validateName("productName", *req.Name); err != nil {
			return err
		}
	}
	if req.Description != nil {
		if err := validateDescription("productDescription", *req.Description, maxProductDescription); err != nil {
			return err
		}
	}
	if req.SubCategories != nil && len(req.SubCategories) == 0 {
		return NewValidationError("subCategoryName", "at least one subcategory is required")
	}
	if len(req.GalleryImages) > MaxGalleryImages {
		return NewValidationError("productImages", fmt.Sprintf("maximum %d product images are allowed", MaxGalleryImages))
	}
	price := current.Price
	if req.Price != nil {
		price = *req.Price
	}
	salePrice := current.SalePrice
	if req.SalePrice != nil {
		salePrice = *req.SalePrice
	}
	if err := validatePricePair(price, salePrice); err != nil {
		return err
	}
	if req.Stock != nil && *req.Stock < 0 {
		return NewValidationError("stock", "must be a non-negative integer")
	}
	if req.Weight != nil && *req.Weight <= 0 {
		return NewValidationError("weight", "must be a positive number")
	}
	if req.Availability != nil && !ValidAvailability(*req.Availability) {
		return NewValidationError("availability", fmt.Sprintf("invalid availability option: %s", *req.Availability))
	}
	if req.Tags != nil {
		return validateTags(req.Tags)
	}
	return nil
}
