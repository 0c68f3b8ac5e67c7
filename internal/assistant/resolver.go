package assistant

import (
	"context"
	"errors"
	"fmt"

	"github.com/ulhasvenkateshm13-dotcom/buildit/internal/catalog"
)

// maxLineQuantity mirrors the quantity bound enforced at the HTTP edge.
const maxLineQuantity = 99

// CartAdder is the cart mutation surface the resolver needs.
type CartAdder interface {
	AddItem(product catalog.Product, quantity int)
}

const (
	DropReasonUnknownProduct  = "unknown_product"
	DropReasonInvalidQuantity = "invalid_quantity"
)

type AddedItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
}

type DroppedItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Reason    string `json:"reason"`
}

// ApplyReport tells the caller exactly what a bundle application did.
// Dropped items are reported rather than silently discarded so the
// view layer can choose to surface them.
type ApplyReport struct {
	Added   []AddedItem   `json:"added"`
	Dropped []DroppedItem `json:"dropped"`
}

// Resolver validates an externally supplied bundle and translates it
// into cart operations.
type Resolver struct {
	store catalog.Store
	cart  CartAdder
}

func NewResolver(store catalog.Store, cart CartAdder) *Resolver {
	return &Resolver{store: store, cart: cart}
}

// Apply sanitizes each bundle item before it may touch the cart:
// unknown product ids and non-positive quantities are dropped,
// oversized quantities are clamped. Valid items are added to the cart.
func (r *Resolver) Apply(ctx context.Context, bundle ProjectBundle) (*ApplyReport, error) {
	report := &ApplyReport{}

	for _, item := range bundle.Items {
		if item.Quantity < 1 {
			report.Dropped = append(report.Dropped, DroppedItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Reason:    DropReasonInvalidQuantity,
			})
			continue
		}

		product, err := r.store.Get(ctx, item.ProductID)
		if errors.Is(err, catalog.ErrProductNotFound) {
			report.Dropped = append(report.Dropped, DroppedItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Reason:    DropReasonUnknownProduct,
			})
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to resolve bundle item %s: %w", item.ProductID, err)
		}

		quantity := item.Quantity
		if quantity > maxLineQuantity {
			quantity = maxLineQuantity
		}

		r.cart.AddItem(*product, quantity)
		report.Added = append(report.Added, AddedItem{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  quantity,
		})
	}

	return report, nil
}
