package api

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/erazemk/shramba/internal/model"
	"github.com/erazemk/shramba/internal/store"
)

// DevicesHandler lets any paired device see and unpair the household's
// devices (e.g. a lost phone).
type DevicesHandler struct {
	DB *sql.DB
}

// List handles GET /api/devices.
func (h *DevicesHandler) List(w http.ResponseWriter, r *http.Request) {
	devices, err := store.ListDevices(r.Context(), h.DB)
	if err != nil {
		storeError(w, err)
		return
	}
	if devices == nil {
		devices = []model.Device{}
	}
	jsonResponse(w, http.StatusOK, devices)
}

// Revoke handles POST /api/devices/{id}/revoke. Revoking an unknown or
// already revoked device succeeds; the token simply stays dead.
func (h *DevicesHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid device id")
		return
	}

	if err := store.RevokeDevice(r.Context(), h.DB, id); err != nil {
		storeError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "device revoked"})
}
