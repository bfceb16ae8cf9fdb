package catalog

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Error types
var (
	// ErrCategoryNotFound indicates a category was not found
	ErrCategoryNotFound = errors.New("category not found")

	// ErrProductNotFound indicates a product was not found
	ErrProductNotFound = errors.New("product not found")

	// ErrCategoryExists indicates a duplicate category name
	ErrCategoryExists = errors.New("category already exists")

	// ErrSubCategoryExists indicates a duplicate sub-category name within a category
	ErrSubCategoryExists = errors.New("subcategory already exists")

	// ErrSubCategoryNotFound indicates a sub-category name did not match any entry
	ErrSubCategoryNotFound = errors.New("subcategory name does not match existing data")

	// ErrCategoryInUse indicates a delete blocked by referencing products
	ErrCategoryInUse = errors.New("category has products associated with it")

	// ErrVersionConflict indicates a concurrent mutation won the version check
	ErrVersionConflict = errors.New("version conflict")
)

// ValidationError reports malformed or out-of-range input. It carries the
// offending field so callers can surface it without parsing the message.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// CategoryError represents an error related to category operations
type CategoryError struct {
	CategoryID uuid.UUID
	Op         string
	Err        error
}

func (e *CategoryError) Error() string {
	return fmt.Sprintf("category operation %s failed for category %s: %v", e.Op, e.CategoryID, e.Err)
}

func (e *CategoryError) Unwrap() error {
	return e.Err
}

// ProductError represents an error related to product operations
type ProductError struct {
	ProductID uuid.UUID
	Op        string
	Err       error
}

func (e *ProductError) Error() string {
	return fmt.Sprintf("product operation %s failed for product %s: %v", e.Op, e.ProductID, e.Err)
}

func (e *ProductError) Unwrap() error {
	return e.Err
}

// StorageError represents a blob or fallback store failure
type StorageError struct {
	Backend string
	Key     string
	Op      string
	Err     error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage operation %s failed for key %s on backend %s: %v", e.Op, e.Key, e.Backend, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
