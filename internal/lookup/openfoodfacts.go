// Package lookup resolves barcodes to product metadata using the Open
// Food Facts public API.
package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/erazemk/shramba/internal/model"
)

// DefaultBaseURL is the Open Food Facts API endpoint.
const DefaultBaseURL = "https://world.openfoodfacts.org"

// ErrNotFound is returned for barcodes Open Food Facts does not know.
var ErrNotFound = errors.New("barcode not found")

// Client is an Open Food Facts lookup client. It satisfies the scan
// package's Lookup interface.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient returns a client against the public Open Food Facts API.
func NewClient() *Client {
	return &Client{
		BaseURL:    DefaultBaseURL,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// productResponse is the subset of the API response we care about.
type productResponse struct {
	Status  int `json:"status"`
	Product struct {
		ProductName string `json:"product_name"`
		Brands      string `json:"brands"`
		ImageURL    string `json:"image_url"`
	} `json:"product"`
}

// Fetch looks up a barcode and returns its display metadata. Unknown
// barcodes return ErrNotFound; any other failure is a transport error.
func (c *Client) Fetch(ctx context.Context, barcode string) (*model.ProductInfo, error) {
	endpoint := fmt.Sprintf("%s/api/v0/product/%s.json", c.BaseURL, url.PathEscape(barcode))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building lookup request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching product %s: %w", barcode, err)
	}
	defer resp.Body.Close()

	// The API answers unknown barcodes with 404 and a status-0 body;
	// treat both signals the same.
	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching product %s: unexpected status %d", barcode, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("reading lookup response: %w", err)
	}

	var parsed productResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decoding lookup response: %w", err)
	}

	if parsed.Status != 1 {
		return nil, ErrNotFound
	}

	return &model.ProductInfo{
		Name:     parsed.Product.ProductName,
		Brands:   parsed.Product.Brands,
		ImageURL: parsed.Product.ImageURL,
	}, nil
}
