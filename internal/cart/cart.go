package cart

import (
	"github.com/ulhasvenkateshm13-dotcom/buildit/internal/catalog"
)

// Line is a product plus a positive quantity. A quantity of zero never
// exists in the cart; the line is removed instead.
type Line struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

func (l Line) Subtotal() int64 {
	return l.Product.Price * int64(l.Quantity)
}

const (
	// FreeDeliveryThreshold is the subtotal above which delivery is free
	FreeDeliveryThreshold = 500

	DeliveryFee = 40
	PlatformFee = 5
)

// Quote is the displayed amount-to-pay breakdown. Only the subtotal is
// persisted on an order; fees are a display-time concern.
type Quote struct {
	Subtotal    int64 `json:"subtotal"`
	DeliveryFee int64 `json:"delivery_fee"`
	PlatformFee int64 `json:"platform_fee"`
	Payable     int64 `json:"payable"`
}

// QuoteFor computes the fee breakdown for a subtotal.
func QuoteFor(subtotal int64) Quote {
	q := Quote{
		Subtotal:    subtotal,
		PlatformFee: PlatformFee,
	}
	if subtotal <= FreeDeliveryThreshold {
		q.DeliveryFee = DeliveryFee
	}
	q.Payable = q.Subtotal + q.DeliveryFee + q.PlatformFee
	return q
}

// View is the composed cart state handed to consumers.
type View struct {
	Lines     []Line `json:"lines"`
	ItemCount int    `json:"item_count"`
	Quote     Quote  `json:"quote"`
}
