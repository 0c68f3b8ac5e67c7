package catalog

import (
	"context"
	"errors"
)

// Common errors returned by the store
var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
)

// Filter narrows a List call. Zero value matches everything.
type Filter struct {
	Category Category // CategoryAll or empty matches all categories
	Query    string   // case-insensitive match against name and tags
}

// Store defines the interface for catalog storage operations
type Store interface {
	// List returns products matching the filter, in catalog order
	List(ctx context.Context, f Filter) ([]Product, error)

	// Get returns a single product or ErrProductNotFound
	Get(ctx context.Context, id string) (*Product, error)

	// AddReview appends a review to the product and recomputes its
	// average rating. Returns the updated product.
	AddReview(ctx context.Context, productID string, review Review) (*Product, error)

	// Excerpt returns the reduced product fields used as AI context
	Excerpt(ctx context.Context) ([]ProductExcerpt, error)

	// Close releases any underlying resources
	Close() error
}
