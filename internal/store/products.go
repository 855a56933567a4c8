package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/shramba/internal/model"
)

// productColumns is the column list every product query selects.
const productColumns = `id, product_name, brands, image_url, amount,
	image IS NOT NULL, created_at`

// InsertProduct creates a new product record with amount 1.
// Display metadata may be empty; empty fields are stored as NULL.
func InsertProduct(ctx context.Context, db *sql.DB, name, brands, imageURL string) (*model.Product, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO products (product_name, brands, image_url, amount)
		 VALUES (?, ?, ?, 1)`,
		nullable(name), nullable(brands), nullable(imageURL),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting product: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting product id: %w", err)
	}

	return GetProduct(ctx, db, id)
}

// GetProduct returns a product by ID, or ErrNotFound.
func GetProduct(ctx context.Context, db *sql.DB, id int64) (*model.Product, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = ?`, id,
	)
	product, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting product: %w", err)
	}
	return product, nil
}

// ListProducts returns every product, newest-inserted-first. This is
// the canonical order for both the inventory view and the shopping
// list projection.
func ListProducts(ctx context.Context, db *sql.DB) ([]model.Product, error) {
	return queryProducts(ctx, db,
		`SELECT `+productColumns+` FROM products ORDER BY id DESC`,
	)
}

// ListOutOfStock returns products with amount 0, newest-inserted-first.
func ListOutOfStock(ctx context.Context, db *sql.DB) ([]model.Product, error) {
	return queryProducts(ctx, db,
		`SELECT `+productColumns+` FROM products WHERE amount = 0 ORDER BY id DESC`,
	)
}

// DeleteProduct removes a product. Deleting a missing id is a no-op.
func DeleteProduct(ctx context.Context, db *sql.DB, id int64) error {
	_, err := db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}
	return nil
}

// SetAmount atomically replaces a product's amount and returns the
// updated record. Returns ErrNegativeAmount if amount is negative
// (record unchanged) and ErrNotFound if the id does not exist.
func SetAmount(ctx context.Context, db *sql.DB, id int64, amount int) (*model.Product, error) {
	if amount < 0 {
		return nil, ErrNegativeAmount
	}

	result, err := db.ExecContext(ctx,
		`UPDATE products SET amount = ? WHERE id = ?`, amount, id,
	)
	if err != nil {
		return nil, fmt.Errorf("setting amount: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("checking amount update: %w", err)
	}
	if n == 0 {
		return nil, ErrNotFound
	}

	return GetProduct(ctx, db, id)
}

// AddAmount atomically adjusts a product's amount by delta, evaluated
// against the stored value inside a single write so that concurrent
// deltas against the same id never lose updates. Returns the updated
// record, ErrNegativeAmount if the result would go below zero, or
// ErrNotFound if the id does not exist.
func AddAmount(ctx context.Context, db *sql.DB, id int64, delta int) (*model.Product, error) {
	result, err := db.ExecContext(ctx,
		`UPDATE products SET amount = amount + ?
		 WHERE id = ? AND amount + ? >= 0`,
		delta, id, delta,
	)
	if err != nil {
		return nil, fmt.Errorf("adjusting amount: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("checking amount adjustment: %w", err)
	}
	if n == 0 {
		// The guard rejected the update: either the id is missing or
		// the delta would have made the amount negative.
		var exists bool
		err := db.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM products WHERE id = ?)`, id,
		).Scan(&exists)
		if err != nil {
			return nil, fmt.Errorf("checking product existence: %w", err)
		}
		if !exists {
			return nil, ErrNotFound
		}
		return nil, ErrNegativeAmount
	}

	return GetProduct(ctx, db, id)
}

// SetProductImage stores a product's cached image data.
func SetProductImage(ctx context.Context, db *sql.DB, id int64, image []byte, mime string) error {
	result, err := db.ExecContext(ctx,
		`UPDATE products SET image = ?, image_mime = ? WHERE id = ?`,
		image, mime, id,
	)
	if err != nil {
		return fmt.Errorf("setting product image: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking image update: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetProductImage returns a product's cached image data and MIME type.
// A product without a cached image returns nil data and no error.
func GetProductImage(ctx context.Context, db *sql.DB, id int64) ([]byte, string, error) {
	var image []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT image, image_mime FROM products WHERE id = ?`, id,
	).Scan(&image, &mime)
	if err == sql.ErrNoRows {
		return nil, "", ErrNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting product image: %w", err)
	}
	return image, mime.String, nil
}

func queryProducts(ctx context.Context, db *sql.DB, query string) ([]model.Product, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}
		products = append(products, *product)
	}
	return products, rows.Err()
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*model.Product, error) {
	product := &model.Product{}
	var name, brands, imageURL sql.NullString
	err := row.Scan(&product.ID, &name, &brands, &imageURL, &product.Amount,
		&product.HasImage, &product.CreatedAt)
	if err != nil {
		return nil, err
	}
	product.Name = name.String
	product.Brands = brands.String
	product.ImageURL = imageURL.String
	return product, nil
}

// nullable converts an empty string to NULL for storage.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
