package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/tendant/simple-catalog/pkg/catalog"
)

// ProductHandler handles HTTP requests for products
type ProductHandler struct {
	service catalog.Service
	log     *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(service catalog.Service, log *slog.Logger) *ProductHandler {
	return &ProductHandler{service: service, log: log}
}

// Routes returns the routes for products
func (h *ProductHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.CreateProduct)
	r.Get("/", h.ListProducts)
	r.Get("/{productId}", h.GetProduct)
	r.Patch("/{productId}", h.UpdateProduct)
	r.Delete("/{productId}", h.DeleteProduct)

	return r
}

// productResponse is the {message, product} envelope.
type productResponse struct {
	Message string           `json:"message"`
	Product *catalog.Product `json:"product"`
}

type productListResponse struct {
	Message       string             `json:"message"`
	Page          int                `json:"page"`
	Limit         int                `json:"limit"`
	MatchingCount int64              `json:"matchingCount"`
	Products      []*catalog.Product `json:"products"`
}

func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		renderMessage(w, r, http.StatusBadRequest, "invalid multipart form")
		return
	}

	categoryID, err := uuid.Parse(r.FormValue("categoryName"))
	if err != nil {
		renderMessage(w, r, http.StatusBadRequest, "invalid category reference")
		return
	}

	req := catalog.CreateProductRequest{
		Name:          r.FormValue("productName"),
		CategoryID:    categoryID,
		SubCategories: r.MultipartForm.Value["subCategoryName"],
		Description:   r.FormValue("productDescription"),
		Availability:  catalog.Availability(r.FormValue("availability")),
		Tags:          parseTags(r.MultipartForm.Value["productType"]),
	}

	var parseErr error
	req.Price, parseErr = parseNumber(r.FormValue("productPrice"), parseErr)
	req.SalePrice, parseErr = parseNumber(r.FormValue("productSalePrice"), parseErr)
	req.Weight, parseErr = parseNumber(r.FormValue("weight"), parseErr)
	if parseErr != nil {
		renderMessage(w, r, http.StatusBadRequest, parseErr.Error())
		return
	}
	if stock := r.FormValue("stock"); stock != "" {
		if req.Stock, err = strconv.Atoi(stock); err != nil {
			renderMessage(w, r, http.StatusBadRequest, "stock must be a number")
			return
		}
	}

	if headers := r.MultipartForm.File["productDisplayImage"]; len(headers) > 0 {
		file, err := fileFromHeader(headers[0])
		if err != nil {
			renderMessage(w, r, http.StatusBadRequest, "failed to read product display image")
			return
		}
		req.DisplayImage = file
	}
	gallery, err := filesFromHeaders(r.MultipartForm.File["productImages"])
	if err != nil {
		renderMessage(w, r, http.StatusBadRequest, "failed to read product images")
		return
	}
	req.GalleryImages = gallery

	product, err := h.service.CreateProduct(r.Context(), req)
	if err != nil {
		renderError(w, r, h.log, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, productResponse{
		Message: "Product created successfully",
		Product: product,
	})
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "productId"))
	if err != nil {
		renderMessage(w, r, http.StatusBadRequest, "invalid product ID")
		return
	}

	product, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		renderError(w, r, h.log, err)
		return
	}

	render.JSON(w, r, productResponse{
		Message: "Product fetched successfully",
		Product: product,
	})
}

func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "productId"))
	if err != nil {
		renderMessage(w, r, http.StatusBadRequest, "invalid product ID")
		return
	}
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		renderMessage(w, r, http.StatusBadRequest, "invalid multipart form")
		return
	}

	req := catalog.UpdateProductRequest{
		ID:          id,
		Name:        formValue(r, "productName"),
		Description: formValue(r, "productDescription"),
	}
	if v := formValue(r, "categoryName"); v != nil {
		categoryID, err := uuid.Parse(*v)
		if err != nil {
			renderMessage(w, r, http.StatusBadRequest, "invalid category reference")
			return
		}
		req.CategoryID = &categoryID
	}
	if values, ok := r.MultipartForm.Value["subCategoryName"]; ok {
		req.SubCategories = values
	}
	if values, ok := r.MultipartForm.Value["productType"]; ok {
		req.Tags = parseTags(values)
	}
	if v := formValue(r, "availability"); v != nil {
		availability := catalog.Availability(*v)
		req.Availability = &availability
	}

	var parseErr error
	req.Price, parseErr = parseOptionalNumber(formValue(r, "productPrice"), parseErr)
	req.SalePrice, parseErr = parseOptionalNumber(formValue(r, "productSalePrice"), parseErr)
	req.Weight, parseErr = parseOptionalNumber(formValue(r, "weight"), parseErr)
	if parseErr != nil {
		renderMessage(w, r, http.StatusBadRequest, parseErr.Error())
		return
	}
	if v := formValue(r, "stock"); v != nil {
		stock, err := strconv.Atoi(*v)
		if err != nil {
			renderMessage(w, r, http.StatusBadRequest, "stock must be a number")
			return
		}
		req.Stock = &stock
	}

	if headers := r.MultipartForm.File["productDisplayImage"]; len(headers) > 0 {
		file, err := fileFromHeader(headers[0])
		if err != nil {
			renderMessage(w, r, http.StatusBadRequest, "failed to read product display image")
			return
		}
		req.DisplayImage = file
	}
	if headers := r.MultipartForm.File["productImages"]; len(headers) > 0 {
		gallery, err := filesFromHeaders(headers)
		if err != nil {
			renderMessage(w, r, http.StatusBadRequest, "failed to read product images")
			return
		}
		req.GalleryImages = gallery
	}

	product, err := h.service.UpdateProduct(r.Context(), req)
	if err != nil {
		renderError(w, r, h.log, err)
		return
	}

	render.JSON(w, r, productResponse{
		Message: "Product updated successfully",
		Product: product,
	})
}

func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "productId"))
	if err != nil {
		renderMessage(w, r, http.StatusBadRequest, "invalid product ID")
		return
	}

	product, err := h.service.DeleteProduct(r.Context(), id)
	if err != nil {
		renderError(w, r, h.log, err)
		return
	}

	render.JSON(w, r, productResponse{
		Message: "Product deleted successfully",
		Product: product,
	})
}

func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.ListProducts(r.Context(), listParams(r, "searchProduct"))
	if err != nil {
		renderError(w, r, h.log, err)
		return
	}

	if page.Products == nil {
		page.Products = []*catalog.Product{}
	}
	render.JSON(w, r, productListResponse{
		Message:       "Products fetched successfully",
		Page:          page.Page,
		Limit:         page.Limit,
		MatchingCount: page.MatchingCount,
		Products:      page.Products,
	})
}

// parseTags accepts productType as repeated fields or a single
// comma-joined value.
func parseTags(values []string) []catalog.ProductTag {
	if len(values) == 1 && strings.Contains(values[0], ",") {
		values = strings.Split(values[0], ",")
	}
	tags := make([]catalog.ProductTag, 0, len(values))
	for _, v := range values {
		tags = append(tags, catalog.ProductTag(strings.TrimSpace(v)))
	}
	return tags
}

func parseNumber(value string, prior error) (float64, error) {
	if prior != nil {
		return 0, prior
	}
	n, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, &catalog.ValidationError{Message: "must be a number: " + value}
	}
	return n, nil
}

func parseOptionalNumber(value *string, prior error) (*float64, error) {
	if prior != nil || value == nil {
		return nil, prior
	}
	n, err := strconv.ParseFloat(*value, 64)
	if err != nil {
		return nil, &catalog.ValidationError{Message: "must be a number: " + *value}
	}
	return &n, nil
}
