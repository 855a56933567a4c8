package api

import (
	"database/sql"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/erazemk/shramba/internal/auth"
	"github.com/erazemk/shramba/internal/store"
)

// PairHandler exchanges the household pairing code for a device token.
type PairHandler struct {
	DB        *sql.DB
	JWTSecret string
}

type pairRequest struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// Pair handles POST /api/pair.
func (h *PairHandler) Pair(w http.ResponseWriter, r *http.Request) {
	var req pairRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == "" {
		jsonError(w, http.StatusBadRequest, "device name required")
		return
	}

	hash, err := store.GetPairingCodeHash(r.Context(), h.DB)
	if err != nil {
		storeError(w, err)
		return
	}
	if hash == "" {
		jsonError(w, http.StatusForbidden, "pairing not set up")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Code)) != nil {
		jsonError(w, http.StatusUnauthorized, "wrong pairing code")
		return
	}

	device, err := store.CreateDevice(r.Context(), h.DB, req.Name)
	if err != nil {
		storeError(w, err)
		return
	}

	token, err := auth.GenerateToken(h.JWTSecret, device.ID, device.Name)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"token":  token,
		"device": device,
	})
}
