package cart

import (
	"context"
	"errors"
)

// ViewCache caches the composed cart view between mutations.
type ViewCache interface {
	Get(ctx context.Context) (*View, error)
	Set(ctx context.Context, view *View) error
	Delete(ctx context.Context) error
}

var ErrCacheMiss = errors.New("cache miss")
