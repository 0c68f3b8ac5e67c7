package order

import "time"

// Status is the delivery phase of an order. Transitions are monotonic:
// PLACED -> PACKED -> OUT_FOR_DELIVERY -> ARRIVED.
type Status string

const (
	StatusPlaced         Status = "PLACED"
	StatusPacked         Status = "PACKED"
	StatusOutForDelivery Status = "OUT_FOR_DELIVERY"
	StatusArrived        Status = "ARRIVED"
)

func (s Status) IsTerminal() bool {
	return s == StatusArrived
}

// String representation (for logging)
func (s Status) String() string {
	return string(s)
}

// Item is a frozen cart line captured at checkout. Later catalog price
// changes never touch it.
type Item struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Unit      string `json:"unit"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

// Order is the checkout snapshot plus live delivery state. Total is the
// item subtotal only; display fees are quoted by the cart, not persisted
// here.
type Order struct {
	ID            string    `json:"id"`
	Items         []Item    `json:"items"`
	Total         int64     `json:"total"`
	Status        Status    `json:"status"`
	ETA           int       `json:"eta_minutes"`
	Progress      int       `json:"progress"`
	DriverName    string    `json:"driver_name"`
	VehicleNumber string    `json:"vehicle_number"`
	PlacedAt      time.Time `json:"placed_at"`
}

const (
	// progressStep is added to progress on every driver tick
	progressStep = 2

	initialETA = 8
)

// advance applies one driver step and returns the next (status, progress,
// eta). The bands are evaluated highest threshold first. Status only
// moves at the 30/60/100 crossings; between 80 and 100 the eta tightens
// while the status carries forward, so status is not derivable from
// progress alone there.
func advance(status Status, progress int) (Status, int, int) {
	progress += progressStep
	switch {
	case progress >= 100:
		return StatusArrived, 100, 0
	case progress > 80:
		return status, progress, 1
	case progress > 60:
		return StatusOutForDelivery, progress, 3
	case progress > 30:
		return StatusPacked, progress, 6
	default:
		return status, progress, initialETA
	}
}
