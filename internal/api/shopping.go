package api

import (
	"database/sql"
	"net/http"

	"github.com/erazemk/shramba/internal/model"
	"github.com/erazemk/shramba/internal/shopping"
)

// ShoppingHandler handles shopping-list endpoints.
type ShoppingHandler struct {
	DB *sql.DB
}

type replenishRequest struct {
	IDs []int64 `json:"ids"`
}

type replenishFailure struct {
	ID    int64  `json:"id"`
	Error string `json:"error"`
}

type replenishResponse struct {
	Replenished []int64            `json:"replenished"`
	Failed      []replenishFailure `json:"failed"`
}

// List handles GET /api/shopping-list. The list is re-derived from the
// store on every call; clients re-fetch it whenever the screen gains
// focus instead of caching.
func (h *ShoppingHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := shopping.List(r.Context(), h.DB)
	if err != nil {
		storeError(w, err)
		return
	}
	if products == nil {
		products = []model.Product{}
	}
	jsonResponse(w, http.StatusOK, products)
}

// Replenish handles POST /api/shopping-list/replenish. The device holds
// the selection; it posts the selected ids and gets back which ones
// could not be restocked. Partial failure is reported, not rolled back.
func (h *ShoppingHandler) Replenish(w http.ResponseWriter, r *http.Request) {
	var req replenishRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.IDs) == 0 {
		jsonError(w, http.StatusBadRequest, "no products selected")
		return
	}

	sel := shopping.NewSelection(req.IDs...)
	failed := shopping.Replenish(r.Context(), h.DB, sel)

	resp := replenishResponse{Replenished: []int64{}, Failed: []replenishFailure{}}
	for _, id := range req.IDs {
		if err, ok := failed[id]; ok {
			resp.Failed = append(resp.Failed, replenishFailure{ID: id, Error: err.Error()})
		} else {
			resp.Replenished = append(resp.Replenished, id)
		}
	}

	status := http.StatusOK
	if len(resp.Failed) > 0 {
		status = http.StatusMultiStatus
	}
	jsonResponse(w, status, resp)
}
