package api

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/erazemk/shramba/internal/model"
	"github.com/erazemk/shramba/internal/store"
)

// ProductsHandler handles inventory endpoints.
type ProductsHandler struct {
	DB *sql.DB
}

// amountRequest sets an absolute amount or applies a delta. Exactly one
// field must be present; deltas are the manual +/- buttons and go
// through the store's atomic adjustment.
type amountRequest struct {
	Set   *int `json:"set,omitempty"`
	Delta *int `json:"delta,omitempty"`
}

// List handles GET /api/products.
func (h *ProductsHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := store.ListProducts(r.Context(), h.DB)
	if err != nil {
		storeError(w, err)
		return
	}
	if products == nil {
		products = []model.Product{}
	}
	jsonResponse(w, http.StatusOK, products)
}

// Get handles GET /api/products/{id}.
func (h *ProductsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := store.GetProduct(r.Context(), h.DB, id)
	if err != nil {
		storeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, product)
}

// Delete handles DELETE /api/products/{id}. Deleting a missing product
// succeeds; delete is idempotent.
func (h *ProductsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := store.DeleteProduct(r.Context(), h.DB, id); err != nil {
		storeError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "product deleted"})
}

// SetAmount handles POST /api/products/{id}/amount.
func (h *ProductsHandler) SetAmount(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req amountRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if (req.Set == nil) == (req.Delta == nil) {
		jsonError(w, http.StatusBadRequest, "provide exactly one of 'set' or 'delta'")
		return
	}

	var product *model.Product
	if req.Set != nil {
		product, err = store.SetAmount(r.Context(), h.DB, id, *req.Set)
	} else {
		product, err = store.AddAmount(r.Context(), h.DB, id, *req.Delta)
	}
	if err != nil {
		storeError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, product)
}

// GetImage handles GET /api/products/{id}/image, serving the cached
// thumbnail.
func (h *ProductsHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	data, mime, err := store.GetProductImage(r.Context(), h.DB, id)
	if err != nil {
		storeError(w, err)
		return
	}
	if len(data) == 0 {
		jsonError(w, http.StatusNotFound, "no cached image")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "max-age=86400")
	w.Write(data)
}
