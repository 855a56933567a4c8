package model

import "time"

// Product is a pantry product identified during a barcode scan.
// Amount is the number of units on hand; a product with amount 0 is
// what the shopping list is derived from.
type Product struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name,omitempty"`
	Brands    string    `json:"brands,omitempty"`
	ImageURL  string    `json:"image_url,omitempty"`
	Amount    int       `json:"amount"`
	HasImage  bool      `json:"has_image"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductInfo is the display metadata a barcode lookup returns for a
// product that has not been stored yet.
type ProductInfo struct {
	Name     string `json:"name,omitempty"`
	Brands   string `json:"brands,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}
