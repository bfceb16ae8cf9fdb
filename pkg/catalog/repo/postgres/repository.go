// Package postgres provides a catalog.Repository backed by PostgreSQL.
// Category and product documents keep their list-valued fields as jsonb;
// name uniqueness is a functional unique index on lower(name) and the
// sub-category list swap is a conditional UPDATE on a version column.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tendant/simple-catalog/pkg/catalog"
)

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Repository implements catalog.Repository using PostgreSQL
type Repository struct {
	db DBTX
}

// New creates a new PostgreSQL repository
func New(db DBTX) *Repository {
	return &Repository{db: db}
}

// NewWithPool creates a new PostgreSQL repository with connection pool
func NewWithPool(pool *pgxpool.Pool) *Repository {
	return &Repository{db: pool}
}

// handlePostgresError maps driver errors onto the domain sentinels.
func handlePostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			if strings.Contains(pgErr.ConstraintName, "categories") {
				return catalog.ErrCategoryExists
			}
			return fmt.Errorf("duplicate entry: %s", pgErr.ConstraintName)
		case "23503": // foreign_key_violation
			return catalog.ErrCategoryNotFound
		case "23502": // not_null_violation
			return fmt.Errorf("required field %s is missing", pgErr.ColumnName)
		case "42P01": // undefined_table
			return fmt.Errorf("table does not exist - database migration required")
		default:
			return fmt.Errorf("database error in %s: %s (code: %s)", operation, pgErr.Message, pgErr.Code)
		}
	}
	return fmt.Errorf("database error in %s: %w", operation, err)
}

const categoryColumns = `id, name, slug, description, sub_categories, image_url, image_external_id, version, created_at, updated_at`

func scanCategory(row pgx.Row) (*catalog.Category, error) {
	var c catalog.Category
	err := row.Scan(
		&c.ID, &c.Name, &c.Slug, &c.Description, &c.SubCategories,
		&c.Image.URL, &c.Image.ExternalID, &c.Version, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrCategoryNotFound
		}
		return nil, err
	}
	if c.SubCategories == nil {
		c.SubCategories = []string{}
	}
	return &c, nil
}

// Category operations

func (r *Repository) CreateCategory(ctx context.Context, category *catalog.Category) error {
	query := `
		INSERT INTO categories (
			id, name, slug, description, sub_categories,
			image_url, image_external_id, version, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Exec(ctx, query,
		category.ID, category.Name, category.Slug, category.Description, category.SubCategories,
		category.Image.URL, category.Image.ExternalID, category.Version,
		category.CreatedAt, category.UpdatedAt,
	)
	if err != nil {
		return handlePostgresError("create_category", err)
	}
	return nil
}

func (r *Repository) GetCategory(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`
	return scanCategory(r.db.QueryRow(ctx, query, id))
}

func (r *Repository) GetCategoryByName(ctx context.Context, name string) (*catalog.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE lower(name) = lower($1)`
	return scanCategory(r.db.QueryRow(ctx, query, name))
}

func (r *Repository) UpdateCategory(ctx context.Context, category *catalog.Category) error {
	query := `
		UPDATE categories SET
			name = $2, slug = $3, description = $4, sub_categories = $5,
			image_url = $6, image_external_id = $7, updated_at = $8
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		category.ID, category.Name, category.Slug, category.Description, category.SubCategories,
		category.Image.URL, category.Image.ExternalID, category.UpdatedAt,
	)
	if err != nil {
		return handlePostgresError("update_category", err)
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrCategoryNotFound
	}
	return nil
}

func (r *Repository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return handlePostgresError("delete_category", err)
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrCategoryNotFound
	}
	return nil
}

// categorySearchClause matches name or any sub-category name, case
// insensitively. $1 is the search term; an empty term matches all rows.
const categorySearchClause = `
	($1 = '' OR name ILIKE '%' || $1 || '%' OR EXISTS (
		SELECT 1 FROM jsonb_array_elements_text(sub_categories) AS sub(name)
		WHERE sub.name ILIKE '%' || $1 || '%'
	))`

func (r *Repository) ListCategories(ctx context.Context, filter catalog.Filter, skip, limit int) ([]*catalog.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories
		WHERE ` + categorySearchClause + `
		ORDER BY created_at DESC
		OFFSET $2 LIMIT $3`

	rows, err := r.db.Query(ctx, query, filter.Search, skip, limit)
	if err != nil {
		return nil, handlePostgresError("list_categories", err)
	}
	defer rows.Close()

	var result []*catalog.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, category)
	}
	return result, rows.Err()
}

func (r *Repository) CountCategories(ctx context.Context, filter catalog.Filter) (int64, error) {
	query := `SELECT count(*) FROM categories WHERE ` + categorySearchClause

	var count int64
	if err := r.db.QueryRow(ctx, query, filter.Search).Scan(&count); err != nil {
		return 0, handlePostgresError("count_categories", err)
	}
	return count, nil
}

// UpdateSubCategories performs the versioned list swap. A concurrent
// mutation that already bumped the version makes the WHERE clause miss,
// which surfaces as ErrVersionConflict (distinguished from a missing row).
func (r *Repository) UpdateSubCategories(ctx context.Context, id uuid.UUID, expectedVersion int64, names []string) (*catalog.Category, error) {
	query := `
		UPDATE categories SET
			sub_categories = $3, version = version + 1, updated_at = $4
		WHERE id = $1 AND version = $2
		RETURNING ` + categoryColumns

	category, err := scanCategory(r.db.QueryRow(ctx, query, id, expectedVersion, names, time.Now().UTC()))
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, catalog.ErrCategoryNotFound) {
		return nil, handlePostgresError("update_sub_categories", err)
	}

	// No row matched: either the category is gone or the version moved.
	if _, getErr := r.GetCategory(ctx, id); getErr != nil {
		return nil, getErr
	}
	return nil, catalog.ErrVersionConflict
}

const productColumns = `id, name, category_id, sub_categories, description,
	display_image_url, display_image_external_id, gallery_images,
	price, sale_price, stock, weight, availability, tags, created_at, updated_at`

func scanProduct(row pgx.Row) (*catalog.Product, error) {
	var p catalog.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.CategoryID, &p.SubCategories, &p.Description,
		&p.DisplayImage.URL, &p.DisplayImage.ExternalID, &p.GalleryImages,
		&p.Price, &p.SalePrice, &p.Stock, &p.Weight, &p.Availability, &p.Tags,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrProductNotFound
		}
		return nil, err
	}
	if p.SubCategories == nil {
		p.SubCategories = []string{}
	}
	if p.GalleryImages == nil {
		p.GalleryImages = []catalog.MediaRef{}
	}
	return &p, nil
}

// Product operations

func (r *Repository) CreateProduct(ctx context.Context, product *catalog.Product) error {
	query := `
		INSERT INTO products (
			id, name, category_id, sub_categories, description,
			display_image_url, display_image_external_id, gallery_images,
			price, sale_price, stock, weight, availability, tags, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err := r.db.Exec(ctx, query,
		product.ID, product.Name, product.CategoryID, product.SubCategories, product.Description,
		product.DisplayImage.URL, product.DisplayImage.ExternalID, product.GalleryImages,
		product.Price, product.SalePrice, product.Stock, product.Weight,
		product.Availability, product.Tags, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		return handlePostgresError("create_product", err)
	}
	return nil
}

func (r *Repository) GetProduct(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return scanProduct(r.db.QueryRow(ctx, query, id))
}

func (r *Repository) UpdateProduct(ctx context.Context, product *catalog.Product) error {
	query := `
		UPDATE products SET
			name = $2, category_id = $3, sub_categories = $4, description = $5,
			display_image_url = $6, display_image_external_id = $7, gallery_images = $8,
			price = $9, sale_price = $10, stock = $11, weight = $12,
			availability = $13, tags = $14, updated_at = $15
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		product.ID, product.Name, product.CategoryID, product.SubCategories, product.Description,
		product.DisplayImage.URL, product.DisplayImage.ExternalID, product.GalleryImages,
		product.Price, product.SalePrice, product.Stock, product.Weight,
		product.Availability, product.Tags, product.UpdatedAt,
	)
	if err != nil {
		return handlePostgresError("update_product", err)
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrProductNotFound
	}
	return nil
}

func (r *Repository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return handlePostgresError("delete_product", err)
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrProductNotFound
	}
	return nil
}

// productSearchClause matches the product name, its sub-category names or
// the resolved category name.
const productSearchClause = `
	($1 = '' OR p.name ILIKE '%' || $1 || '%' OR EXISTS (
		SELECT 1 FROM jsonb_array_elements_text(p.sub_categories) AS sub(name)
		WHERE sub.name ILIKE '%' || $1 || '%'
	) OR EXISTS (
		SELECT 1 FROM categories c
		WHERE c.id = p.category_id AND c.name ILIKE '%' || $1 || '%'
	))`

func (r *Repository) ListProducts(ctx context.Context, filter catalog.Filter, skip, limit int) ([]*catalog.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p
		WHERE ` + productSearchClause + `
		ORDER BY p.created_at DESC
		OFFSET $2 LIMIT $3`

	rows, err := r.db.Query(ctx, query, filter.Search, skip, limit)
	if err != nil {
		return nil, handlePostgresError("list_products", err)
	}
	defer rows.Close()

	var result []*catalog.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, product)
	}
	return result, rows.Err()
}

func (r *Repository) CountProducts(ctx context.Context, filter catalog.Filter) (int64, error) {
	query := `SELECT count(*) FROM products p WHERE ` + productSearchClause

	var count int64
	if err := r.db.QueryRow(ctx, query, filter.Search).Scan(&count); err != nil {
		return 0, handlePostgresError("count_products", err)
	}
	return count, nil
}

func (r *Repository) ListProductsByCategory(ctx context.Context, categoryID uuid.UUID) ([]*catalog.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE category_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, categoryID)
	if err != nil {
		return nil, handlePostgresError("list_products_by_category", err)
	}
	defer rows.Close()

	var result []*catalog.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, product)
	}
	return result, rows.Err()
}
