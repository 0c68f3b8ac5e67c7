package order

import (
	"context"
	"errors"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/ulhasvenkateshm13-dotcom/buildit/internal/cart"
	"github.com/ulhasvenkateshm13-dotcom/buildit/internal/events"
)

var ErrOrderInProgress = errors.New("an order is already in progress")

const (
	// DefaultTickInterval is the demo-clock cadence of the delivery driver
	DefaultTickInterval = time.Second

	driverName    = "Vikram Kumar"
	vehicleNumber = "MH-02-DN-4321"
)

// CartSource is the cart the engine snapshots and clears at checkout.
type CartSource interface {
	Lines() []cart.Line
	Total() int64
	Clear()
}

// Engine owns the active order and its delivery driver. At most one
// order is active at a time; the driver is keyed to the order, started
// once at creation and stopped exactly once at ARRIVED or engine close.
type Engine struct {
	mu       sync.Mutex
	active   *Order
	stop     chan struct{}
	stopOnce *sync.Once

	cart CartSource
	pub  events.Publisher
	tick time.Duration
	wg   sync.WaitGroup
}

type Option func(*Engine)

// WithTickInterval overrides the driver cadence (useful in tests).
func WithTickInterval(d time.Duration) Option {
	return func(e *Engine) { e.tick = d }
}

func NewEngine(cartSource CartSource, pub events.Publisher, opts ...Option) *Engine {
	e := &Engine{
		cart: cartSource,
		pub:  pub,
		tick: DefaultTickInterval,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// PlaceOrder snapshots the cart into a new order and starts its delivery
// driver. An empty cart is a no-op and returns (nil, nil). A second
// order while one is still in flight returns ErrOrderInProgress.
func (e *Engine) PlaceOrder() (*Order, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active != nil && !e.active.Status.IsTerminal() {
		return nil, ErrOrderInProgress
	}

	lines := e.cart.Lines()
	if len(lines) == 0 {
		return nil, nil
	}

	items := make([]Item, 0, len(lines))
	var total int64
	for _, line := range lines {
		items = append(items, Item{
			ProductID: line.Product.ID,
			Name:      line.Product.Name,
			Unit:      line.Product.Unit,
			Price:     line.Product.Price,
			Quantity:  line.Quantity,
		})
		total += line.Subtotal()
	}

	now := time.Now()
	o := &Order{
		ID:            newOrderID(now),
		Items:         items,
		Total:         total,
		Status:        StatusPlaced,
		ETA:           initialETA,
		Progress:      0,
		DriverName:    driverName,
		VehicleNumber: vehicleNumber,
		PlacedAt:      now,
	}

	e.cart.Clear()

	e.active = o
	e.stop = make(chan struct{})
	e.stopOnce = &sync.Once{}

	e.publish(*o)

	e.wg.Add(1)
	go e.drive(e.stop)

	cp := copyOrder(o)
	return &cp, nil
}

// Active returns a copy of the current order, terminal or not, or nil
// when nothing has been checked out yet.
func (e *Engine) Active() *Order {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active == nil {
		return nil
	}
	cp := copyOrder(e.active)
	return &cp
}

// Close stops the running driver and waits for it to finish. Safe to
// call more than once.
func (e *Engine) Close() error {
	e.mu.Lock()
	stop, once := e.stop, e.stopOnce
	e.mu.Unlock()

	if stop != nil {
		once.Do(func() { close(stop) })
	}
	e.wg.Wait()
	return nil
}

func (e *Engine) drive(stop chan struct{}) {
	defer e.wg.Done()

	ticker := time.NewTicker(e.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if e.step() {
				return
			}
		case <-stop:
			return
		}
	}
}

// step reads live progress from the authoritative order, applies the
// band rule and reports whether the driver is done.
func (e *Engine) step() bool {
	e.mu.Lock()
	o := e.active
	if o == nil || o.Status.IsTerminal() {
		e.mu.Unlock()
		return true
	}

	o.Status, o.Progress, o.ETA = advance(o.Status, o.Progress)
	snapshot := copyOrder(o)
	done := o.Status.IsTerminal()
	e.mu.Unlock()

	e.publish(snapshot)
	return done
}

func (e *Engine) publish(o Order) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	event := events.OrderEvent{
		OrderID:  o.ID,
		Status:   o.Status.String(),
		Progress: o.Progress,
		ETA:      o.ETA,
		At:       time.Now(),
	}
	if err := e.pub.Publish(ctx, event); err != nil {
		log.Printf("order event publish error: %v", err)
	}
}

// newOrderID derives the display id from the last six digits of the
// placement timestamp in milliseconds.
func newOrderID(now time.Time) string {
	ms := strconv.FormatInt(now.UnixMilli(), 10)
	return "ORD-" + ms[len(ms)-6:]
}

func copyOrder(o *Order) Order {
	cp := *o
	cp.Items = make([]Item, len(o.Items))
	copy(cp.Items, o.Items)
	return cp
}
