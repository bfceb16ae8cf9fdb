package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/tendant/simple-catalog/pkg/catalog"
)

// CategoryHandler handles HTTP requests for categories
type CategoryHandler struct {
	service catalog.Service
	log     *slog.Logger
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(service catalog.Service, log *slog.Logger) *CategoryHandler {
	return &CategoryHandler{service: service, log: log}
}

// Routes returns the routes for categories
func (h *CategoryHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.CreateCategory)
	r.Get("/", h.ListCategories)
	r.Get("/{categoryId}", h.GetCategory)
	r.Patch("/{categoryId}", h.UpdateCategory)
	r.Delete("/{categoryId}", h.DeleteCategory)

	// Sub-category list operations
	r.Post("/{categoryId}/subcategories", h.AddSubCategories)
	r.Patch("/{categoryId}/subcategories", h.RenameSubCategory)
	r.Delete("/{categoryId}/subcategories", h.RemoveSubCategories)

	return r
}

// categoryResponse is the {message, category} envelope.
type categoryResponse struct {
	Message  string            `json:"message"`
	Category *catalog.Category `json:"category"`
}

// categoryListResponse additionally carries the paging fields.
type categoryListResponse struct {
	Message       string              `json:"message"`
	Page          int                 `json:"page"`
	Limit         int                 `json:"limit"`
	MatchingCount int64               `json:"matchingCount"`
	Categories    []*catalog.Category `json:"categories"`
}

func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		renderMessage(w, r, http.StatusBadRequest, "invalid multipart form")
		return
	}

	req := catalog.CreateCategoryRequest{
		Name:        r.FormValue("categoryName"),
		Slug:        r.FormValue("slug"),
		Description: r.FormValue("categoryDescription"),
	}
	if headers := r.MultipartForm.File["categoryImage"]; len(headers) > 0 {
		file, err := fileFromHeader(headers[0])
		if err != nil {
			renderMessage(w, r, http.StatusBadRequest, "failed to read category image")
			return
		}
		req.Image = file
	}

	category, err := h.service.CreateCategory(r.Context(), req)
	if err != nil {
		renderError(w, r, h.log, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, categoryResponse{
		Message:  "Category created successfully",
		Category: category,
	})
}

func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "categoryId"))
	if err != nil {
		renderMessage(w, r, http.StatusBadRequest, "invalid category ID")
		return
	}

	category, err := h.service.GetCategory(r.Context(), id)
	if err != nil {
		renderError(w, r, h.log, err)
		return
	}

	render.JSON(w, r, categoryResponse{
		Message:  "Category fetched successfully",
		Category: category,
	})
}

func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "categoryId"))
	if err != nil {
		renderMessage(w, r, http.StatusBadRequest, "invalid category ID")
		return
	}
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		renderMessage(w, r, http.StatusBadRequest, "invalid multipart form")
		return
	}

	req := catalog.UpdateCategoryRequest{
		ID:          id,
		Name:        formValue(r, "categoryName"),
		Slug:        formValue(r, "slug"),
		Description: formValue(r, "categoryDescription"),
	}
	if headers := r.MultipartForm.File["categoryImage"]; len(headers) > 0 {
		file, err := fileFromHeader(headers[0])
		if err != nil {
			renderMessage(w, r, http.StatusBadRequest, "failed to read category image")
			return
		}
		req.Image = file
	}

	category, err := h.service.UpdateCategory(r.Context(), req)
	if err != nil {
		renderError(w, r, h.log, err)
		return
	}

	render.JSON(w, r, categoryResponse{
		Message:  fmt.Sprintf("Updated %s successfully", category.Name),
		Category: category,
	})
}

func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "categoryId"))
	if err != nil {
		renderMessage(w, r, http.StatusBadRequest, "invalid category ID")
		return
	}

	category, err := h.service.DeleteCategory(r.Context(), id)
	if err != nil {
		renderError(w, r, h.log, err)
		return
	}

	render.JSON(w, r, categoryResponse{
		Message:  fmt.Sprintf("Deleted %s successfully", category.Name),
		Category: category,
	})
}

func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.ListCategories(r.Context(), listParams(r, "search"))
	if err != nil {
		renderError(w, r, h.log, err)
		return
	}

	message := "Categories fetched successfully"
	if len(page.Categories) == 0 {
		message = "No categories found"
		page.Categories = []*catalog.Category{}
	}

	render.JSON(w, r, categoryListResponse{
		Message:       message,
		Page:          page.Page,
		Limit:         page.Limit,
		MatchingCount: page.MatchingCount,
		Categories:    page.Categories,
	})
}

// addSubCategoriesRequest accepts subCategoriesName as string or array.
type addSubCategoriesRequest struct {
	SubCategoriesName stringList `json:"subCategoriesName"`
}

func (h *CategoryHandler) AddSubCategories(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "categoryId"))
	if err != nil {
		renderMessage(w, r, http.StatusBadRequest, "invalid category ID")
		return
	}

	var req addSubCategoriesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderMessage(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	category, err := h.service.AddSubCategories(r.Context(), id, req.SubCategoriesName)
	if err != nil {
		renderError(w, r, h.log, err)
		return
	}

	render.JSON(w, r, categoryResponse{
		Message:  fmt.Sprintf("Updated %s Successfully", category.Name),
		Category: category,
	})
}

type renameSubCategoryRequest struct {
	OldSubCategoryName string `json:"oldSubCategoryName"`
	NewSubCategoryName string `json:"newSubCategoryName"`
}

func (h *CategoryHandler) RenameSubCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "categoryId"))
	if err != nil {
		renderMessage(w, r, http.StatusBadRequest, "invalid category ID")
		return
	}

	var req renameSubCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderMessage(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	category, err := h.service.RenameSubCategory(r.Context(), id, req.OldSubCategoryName, req.NewSubCategoryName)
	if err != nil {
		renderError(w, r, h.log, err)
		return
	}

	render.JSON(w, r, categoryResponse{
		Message:  "Subcategory updated successfully",
		Category: category,
	})
}

func (h *CategoryHandler) RemoveSubCategories(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "categoryId"))
	if err != nil {
		renderMessage(w, r, http.StatusBadRequest, "invalid category ID")
		return
	}

	var req addSubCategoriesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderMessage(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	category, err := h.service.RemoveSubCategories(r.Context(), id, req.SubCategoriesName)
	if err != nil {
		renderError(w, r, h.log, err)
		return
	}

	render.JSON(w, r, categoryResponse{
		Message:  fmt.Sprintf("Deleted %s Successfully", joinNames(req.SubCategoriesName)),
		Category: category,
	})
}

func joinNames(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return out
}
