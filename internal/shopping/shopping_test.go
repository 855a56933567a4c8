package shopping

import (
	"context"
	"errors"
	"testing"

	"github.com/erazemk/shramba/internal/db"
	"github.com/erazemk/shramba/internal/store"
)

func TestListOnlyOutOfStock(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	inStock, _ := store.InsertProduct(ctx, database, "Butter", "", "")
	out1, _ := store.InsertProduct(ctx, database, "Milk", "", "")
	out2, _ := store.InsertProduct(ctx, database, "Bread", "", "")
	store.SetAmount(ctx, database, out1.ID, 0)
	store.SetAmount(ctx, database, out2.ID, 0)

	list, err := List(ctx, database)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 shopping-list items, got %d", len(list))
	}

	// Newest-first order.
	if list[0].ID != out2.ID || list[1].ID != out1.ID {
		t.Errorf("expected order [%d %d], got [%d %d]", out2.ID, out1.ID, list[0].ID, list[1].ID)
	}
	for _, p := range list {
		if p.ID == inStock.ID {
			t.Errorf("in-stock product %d must not appear on the shopping list", inStock.ID)
		}
	}
}

func TestListReflectsLatestState(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	product, _ := store.InsertProduct(ctx, database, "Milk", "", "")

	// Zeroing the amount must be visible to the very next List call.
	store.SetAmount(ctx, database, product.ID, 0)
	list, _ := List(ctx, database)
	if len(list) != 1 || list[0].ID != product.ID {
		t.Fatalf("expected freshly zeroed product on the list, got %v", list)
	}

	store.SetAmount(ctx, database, product.ID, 1)
	list, _ = List(ctx, database)
	if len(list) != 0 {
		t.Errorf("expected empty list after restock, got %d items", len(list))
	}
}

func TestSelectionToggle(t *testing.T) {
	sel := NewSelection()

	sel.Toggle(1)
	sel.Toggle(2)
	if !sel.Contains(1) || !sel.Contains(2) {
		t.Error("expected toggled ids to be selected")
	}

	sel.Toggle(1)
	if sel.Contains(1) {
		t.Error("expected second toggle to deselect")
	}
	if sel.Len() != 1 {
		t.Errorf("expected 1 selected id, got %d", sel.Len())
	}

	sel.Clear()
	if sel.Len() != 0 {
		t.Errorf("expected empty selection after Clear, got %d", sel.Len())
	}
}

func TestReplenish(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	milk, _ := store.InsertProduct(ctx, database, "Milk", "", "")
	bread, _ := store.InsertProduct(ctx, database, "Bread", "", "")
	store.SetAmount(ctx, database, milk.ID, 0)
	store.SetAmount(ctx, database, bread.ID, 0)

	sel := NewSelection(milk.ID, bread.ID)
	failed := Replenish(ctx, database, sel)
	if len(failed) != 0 {
		t.Fatalf("expected no failures, got %v", failed)
	}
	if sel.Len() != 0 {
		t.Errorf("expected selection cleared after full success, got %d ids", sel.Len())
	}

	for _, id := range []int64{milk.ID, bread.ID} {
		p, _ := store.GetProduct(ctx, database, id)
		if p.Amount != 1 {
			t.Errorf("product %d: expected amount 1 after replenish, got %d", id, p.Amount)
		}
	}

	list, _ := List(ctx, database)
	if len(list) != 0 {
		t.Errorf("expected empty shopping list after replenish, got %d items", len(list))
	}
}

func TestReplenishPartialFailure(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	milk, _ := store.InsertProduct(ctx, database, "Milk", "", "")
	store.SetAmount(ctx, database, milk.ID, 0)
	const missingID = int64(9999)

	sel := NewSelection(milk.ID, missingID)
	failed := Replenish(ctx, database, sel)

	// The missing id fails, the real one still succeeds.
	if len(failed) != 1 {
		t.Fatalf("expected 1 failure, got %v", failed)
	}
	if !errors.Is(failed[missingID], store.ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing id, got %v", failed[missingID])
	}

	p, _ := store.GetProduct(ctx, database, milk.ID)
	if p.Amount != 1 {
		t.Errorf("expected successful id to be replenished, got amount %d", p.Amount)
	}

	// Succeeded ids leave the selection, failed ids stay for a retry.
	if sel.Contains(milk.ID) {
		t.Error("expected succeeded id removed from selection")
	}
	if !sel.Contains(missingID) {
		t.Error("expected failed id to stay selected")
	}
}

func TestOutOfStockRoundTrip(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	// Insert → decrement to 0 → appears on list → replenish → disappears.
	product, _ := store.InsertProduct(ctx, database, "Coffee", "", "")

	if _, err := store.AddAmount(ctx, database, product.ID, -1); err != nil {
		t.Fatalf("AddAmount: %v", err)
	}

	list, _ := List(ctx, database)
	if len(list) != 1 || list[0].ID != product.ID {
		t.Fatalf("expected product on shopping list, got %v", list)
	}

	sel := NewSelection(product.ID)
	if failed := Replenish(ctx, database, sel); len(failed) != 0 {
		t.Fatalf("Replenish failed: %v", failed)
	}

	p, _ := store.GetProduct(ctx, database, product.ID)
	if p.Amount != 1 {
		t.Errorf("expected amount 1 after replenish, got %d", p.Amount)
	}

	list, _ = List(ctx, database)
	if len(list) != 0 {
		t.Errorf("expected product off the shopping list, got %d items", len(list))
	}
}
