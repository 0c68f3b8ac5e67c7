package http

import (
	"errors"
	"net/http"

	"github.com/ulhasvenkateshm13-dotcom/buildit/internal/order"
)

type OrderHandler struct {
	engine *order.Engine
}

func NewOrderHandler(engine *order.Engine) *OrderHandler {
	return &OrderHandler{engine: engine}
}

// Checkout snapshots the cart into a new order. The core treats an
// empty cart as a silent no-op; at the HTTP edge that surfaces as 422
// so the client knows nothing was created.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	o, err := h.engine.PlaceOrder()
	if errors.Is(err, order.ErrOrderInProgress) {
		respondError(w, http.StatusConflict, "order_in_progress", "an order is already in progress")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to place order")
		return
	}
	if o == nil {
		respondError(w, http.StatusUnprocessableEntity, "empty_cart", "cart is empty")
		return
	}

	respondJSON(w, http.StatusCreated, o)
}

func (h *OrderHandler) Active(w http.ResponseWriter, r *http.Request) {
	o := h.engine.Active()
	if o == nil {
		respondError(w, http.StatusNotFound, "not_found", "no active order")
		return
	}

	respondJSON(w, http.StatusOK, o)
}
