// Package api exposes the catalog service over HTTP. Handlers are thin
// adapters: they parse the multipart/JSON wire contract, delegate to
// catalog.Service and render {message, entity} responses. Field names are
// part of the wire contract shared with existing clients and must not
// change.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-chi/render"

	"github.com/tendant/simple-catalog/pkg/catalog"
)

// maxMultipartMemory bounds the in-memory part of multipart parsing.
const maxMultipartMemory = 64 << 20

// messageResponse is the generic {message} envelope.
type messageResponse struct {
	Message string `json:"message"`
}

// stringList accepts either a JSON string or an array of strings, matching
// the lenient subCategoriesName contract.
type stringList []string

func (l *stringList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*l = stringList{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*l = stringList(many)
	return nil
}

// renderError maps domain errors onto HTTP responses.
func renderError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var ve *catalog.ValidationError
	switch {
	case errors.As(err, &ve):
		renderMessage(w, r, http.StatusBadRequest, ve.Error())
	case errors.Is(err, catalog.ErrCategoryNotFound):
		renderMessage(w, r, http.StatusNotFound, "Category not found")
	case errors.Is(err, catalog.ErrProductNotFound):
		renderMessage(w, r, http.StatusNotFound, "Product not found")
	case errors.Is(err, catalog.ErrCategoryExists):
		renderMessage(w, r, http.StatusBadRequest, "Category already exists")
	case errors.Is(err, catalog.ErrSubCategoryExists):
		renderMessage(w, r, http.StatusBadRequest, "Subcategory already exists")
	case errors.Is(err, catalog.ErrSubCategoryNotFound):
		renderMessage(w, r, http.StatusBadRequest, "Subcategory name does not match existing data")
	case errors.Is(err, catalog.ErrCategoryInUse):
		renderMessage(w, r, http.StatusConflict, err.Error())
	default:
		log.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		renderMessage(w, r, http.StatusInternalServerError, "Internal server error")
	}
}

func renderMessage(w http.ResponseWriter, r *http.Request, status int, message string) {
	render.Status(r, status)
	render.JSON(w, r, messageResponse{Message: message})
}

// fileFromHeader reads one multipart file fully into memory.
func fileFromHeader(header *multipart.FileHeader) (*catalog.File, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	return &catalog.File{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// filesFromHeaders reads a multi-file field into memory, preserving order.
func filesFromHeaders(headers []*multipart.FileHeader) ([]catalog.File, error) {
	files := make([]catalog.File, 0, len(headers))
	for _, header := range headers {
		file, err := fileFromHeader(header)
		if err != nil {
			return nil, err
		}
		files = append(files, *file)
	}
	return files, nil
}

// listParams extracts search/page/limit query parameters.
func listParams(r *http.Request, searchParam string) catalog.ListRequest {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	return catalog.ListRequest{
		Search: q.Get(searchParam),
		Page:   page,
		Limit:  limit,
	}
}

// formValue returns a pointer to the field value when the field was
// submitted, nil otherwise, so absent fields keep their stored values.
func formValue(r *http.Request, field string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	values, ok := r.MultipartForm.Value[field]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}
