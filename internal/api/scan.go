package api

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/erazemk/shramba/internal/imaging"
	"github.com/erazemk/shramba/internal/scan"
	"github.com/erazemk/shramba/internal/store"
)

// ScanHandler exposes each device's scan session over HTTP.
type ScanHandler struct {
	DB    *sql.DB
	Scans *scan.Controller
}

type beginScanRequest struct {
	Barcode string `json:"barcode"`
}

// session returns the scan session for the calling device.
func (h *ScanHandler) session(r *http.Request) *scan.Session {
	return h.Scans.Session(GetClaims(r.Context()).DeviceID)
}

// Begin handles POST /api/scan.
func (h *ScanHandler) Begin(w http.ResponseWriter, r *http.Request) {
	var req beginScanRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Barcode == "" {
		jsonError(w, http.StatusBadRequest, "barcode required")
		return
	}

	session := h.session(r)
	accepted := session.Begin(req.Barcode)

	jsonResponse(w, http.StatusOK, map[string]any{
		"accepted": accepted,
		"session":  session.Snapshot(),
	})
}

// Get handles GET /api/scan, for polling the session state.
func (h *ScanHandler) Get(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, h.session(r).Snapshot())
}

// Confirm handles POST /api/scan/confirm.
func (h *ScanHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	session := h.session(r)

	product, err := session.Confirm(r.Context())
	if errors.Is(err, scan.ErrNoCandidate) {
		jsonError(w, http.StatusConflict, "no candidate to confirm")
		return
	}
	if err != nil {
		storeError(w, err)
		return
	}

	// Cache the product image in the background; a failure only costs
	// the thumbnail, never the insert.
	if product.ImageURL != "" {
		go cacheProductImage(h.DB, product.ID, product.ImageURL)
	}

	jsonResponse(w, http.StatusCreated, product)
}

// Cancel handles POST /api/scan/cancel.
func (h *ScanHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	session := h.session(r)
	session.Cancel()
	jsonResponse(w, http.StatusOK, session.Snapshot())
}

// cacheProductImage downloads and stores a product's thumbnail.
func cacheProductImage(db *sql.DB, id int64, imageURL string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	thumb, err := imaging.FetchThumbnail(ctx, imageURL)
	if err != nil {
		slog.Warn("caching product image failed", "product", id, "error", err)
		return
	}

	if err := store.SetProductImage(ctx, db, id, thumb.Data, thumb.MIME); err != nil {
		slog.Warn("storing product image failed", "product", id, "error", err)
	}
}
