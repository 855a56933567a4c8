package api

import (
	"database/sql"
	"net/http"

	"github.com/erazemk/shramba/internal/scan"
)

// NewRouter creates the API router with all endpoints registered.
// The scan controller is shared so every request for a device reaches
// the same scan session.
func NewRouter(db *sql.DB, jwtSecret string, scans *scan.Controller) http.Handler {
	mux := http.NewServeMux()

	pairHandler := &PairHandler{DB: db, JWTSecret: jwtSecret}
	devicesHandler := &DevicesHandler{DB: db}
	productsHandler := &ProductsHandler{DB: db}
	shoppingHandler := &ShoppingHandler{DB: db}
	scanHandler := &ScanHandler{DB: db, Scans: scans}

	authMW := AuthMiddleware(jwtSecret, db)

	// Public: pairing.
	mux.HandleFunc("POST /api/pair", pairHandler.Pair)

	// Paired devices.
	mux.Handle("GET /api/devices", authMW(http.HandlerFunc(devicesHandler.List)))
	mux.Handle("POST /api/devices/{id}/revoke", authMW(http.HandlerFunc(devicesHandler.Revoke)))

	// Inventory.
	mux.Handle("GET /api/products", authMW(http.HandlerFunc(productsHandler.List)))
	mux.Handle("GET /api/products/{id}", authMW(http.HandlerFunc(productsHandler.Get)))
	mux.Handle("DELETE /api/products/{id}", authMW(http.HandlerFunc(productsHandler.Delete)))
	mux.Handle("POST /api/products/{id}/amount", authMW(http.HandlerFunc(productsHandler.SetAmount)))
	mux.Handle("GET /api/products/{id}/image", authMW(http.HandlerFunc(productsHandler.GetImage)))

	// Shopping list.
	mux.Handle("GET /api/shopping-list", authMW(http.HandlerFunc(shoppingHandler.List)))
	mux.Handle("POST /api/shopping-list/replenish", authMW(http.HandlerFunc(shoppingHandler.Replenish)))

	// Scan sessions.
	mux.Handle("POST /api/scan", authMW(http.HandlerFunc(scanHandler.Begin)))
	mux.Handle("GET /api/scan", authMW(http.HandlerFunc(scanHandler.Get)))
	mux.Handle("POST /api/scan/confirm", authMW(http.HandlerFunc(scanHandler.Confirm)))
	mux.Handle("POST /api/scan/cancel", authMW(http.HandlerFunc(scanHandler.Cancel)))

	return mux
}
