// Package shopping derives the shopping list from the product store and
// handles batch replenishment. The list is never stored: a product is a
// shopping-list item exactly while its amount is zero.
package shopping

import (
	"context"
	"database/sql"

	"github.com/erazemk/shramba/internal/model"
	"github.com/erazemk/shramba/internal/store"
)

// List returns the current shopping list: all products with amount 0,
// newest-inserted-first. Recomputed from the store on every call so a
// mutation that just zeroed (or restocked) a product is visible to the
// very next call.
func List(ctx context.Context, db *sql.DB) ([]model.Product, error) {
	return store.ListOutOfStock(ctx, db)
}

// Replenish marks each selected product as restocked by adding one unit,
// each id independently. A failure on one id does not stop the rest and
// nothing is rolled back; the caller gets the failed ids (with reasons)
// to report. Ids that succeeded are removed from the selection.
func Replenish(ctx context.Context, db *sql.DB, sel *Selection) map[int64]error {
	failed := make(map[int64]error)
	for _, id := range sel.IDs() {
		if _, err := store.AddAmount(ctx, db, id, 1); err != nil {
			failed[id] = err
			continue
		}
		sel.Remove(id)
	}
	return failed
}
