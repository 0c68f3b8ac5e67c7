package order

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulhasvenkateshm13-dotcom/buildit/internal/cart"
	"github.com/ulhasvenkateshm13-dotcom/buildit/internal/catalog"
	"github.com/ulhasvenkateshm13-dotcom/buildit/internal/events"
)

type recordingPublisher struct {
	m      sync.Mutex
	events []events.OrderEvent
}

func (p *recordingPublisher) Publish(_ context.Context, e events.OrderEvent) error {
	p.m.Lock()
	defer p.m.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) snapshot() []events.OrderEvent {
	p.m.Lock()
	defer p.m.Unlock()
	out := make([]events.OrderEvent, len(p.events))
	copy(out, p.events)
	return out
}

func cementProduct() catalog.Product {
	return catalog.Product{ID: "1", Name: "UltraTech Cement", Price: 420, Unit: "50kg Bag"}
}

func setupEngine(t *testing.T, tick time.Duration) (*Engine, *cart.Store, *recordingPublisher) {
	store := cart.NewStore()
	pub := &recordingPublisher{}
	engine := NewEngine(store, pub, WithTickInterval(tick))
	t.Cleanup(func() { engine.Close() })
	return engine, store, pub
}

func TestEngine_PlaceOrder_EmptyCartIsNoOp(t *testing.T) {
	engine, store, pub := setupEngine(t, time.Hour)

	o, err := engine.PlaceOrder()
	require.NoError(t, err)
	assert.Nil(t, o)
	assert.Nil(t, engine.Active())
	assert.Empty(t, store.Lines())
	assert.Empty(t, pub.snapshot())
}

func TestEngine_PlaceOrder_SnapshotsAndClearsCart(t *testing.T) {
	engine, store, pub := setupEngine(t, time.Hour)
	store.AddItem(cementProduct(), 1)

	o, err := engine.PlaceOrder()
	require.NoError(t, err)
	require.NotNil(t, o)

	assert.Regexp(t, `^ORD-\d{6}$`, o.ID)
	assert.Equal(t, int64(420), o.Total)
	assert.Equal(t, StatusPlaced, o.Status)
	assert.Equal(t, 0, o.Progress)
	assert.Equal(t, 8, o.ETA)
	assert.Equal(t, "Vikram Kumar", o.DriverName)
	assert.Equal(t, "MH-02-DN-4321", o.VehicleNumber)
	assert.False(t, o.PlacedAt.IsZero())
	require.Len(t, o.Items, 1)
	assert.Equal(t, "1", o.Items[0].ProductID)
	assert.Equal(t, 1, o.Items[0].Quantity)

	// checkout clears the cart
	assert.Empty(t, store.Lines())
	assert.Equal(t, int64(0), store.Total())

	// placement event is published immediately
	placed := pub.snapshot()
	require.Len(t, placed, 1)
	assert.Equal(t, "PLACED", placed[0].Status)
	assert.Equal(t, 0, placed[0].Progress)
}

func TestEngine_PlaceOrder_TotalFrozenAgainstLaterCartActivity(t *testing.T) {
	engine, store, _ := setupEngine(t, time.Hour)
	store.AddItem(cementProduct(), 1)

	o, err := engine.PlaceOrder()
	require.NoError(t, err)
	require.NotNil(t, o)

	// later cart activity with a repriced product must not touch the order
	repriced := cementProduct()
	repriced.Price = 9999
	store.AddItem(repriced, 5)

	active := engine.Active()
	require.NotNil(t, active)
	assert.Equal(t, int64(420), active.Total)
	assert.Equal(t, int64(420), active.Items[0].Price)
}

func TestEngine_PlaceOrder_RejectsSecondOrderInFlight(t *testing.T) {
	engine, store, _ := setupEngine(t, time.Hour)
	store.AddItem(cementProduct(), 1)

	_, err := engine.PlaceOrder()
	require.NoError(t, err)

	store.AddItem(cementProduct(), 1)
	_, err = engine.PlaceOrder()
	assert.ErrorIs(t, err, ErrOrderInProgress)
}

func TestEngine_DriverRunsToArrival(t *testing.T) {
	engine, store, pub := setupEngine(t, time.Millisecond)
	store.AddItem(cementProduct(), 1)

	_, err := engine.PlaceOrder()
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		o := engine.Active()
		return o != nil && o.Status == StatusArrived
	}, 5*time.Second, 5*time.Millisecond)

	o := engine.Active()
	assert.Equal(t, 100, o.Progress)
	assert.Equal(t, 0, o.ETA)

	// the driver stops permanently: no further mutation after arrival
	eventCount := len(pub.snapshot())
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, eventCount, len(pub.snapshot()))
	assert.Equal(t, 100, engine.Active().Progress)
	assert.Equal(t, StatusArrived, engine.Active().Status)
}

func TestEngine_DriverEventSequence(t *testing.T) {
	engine, store, pub := setupEngine(t, time.Millisecond)
	store.AddItem(cementProduct(), 1)

	_, err := engine.PlaceOrder()
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		o := engine.Active()
		return o != nil && o.Status.IsTerminal()
	}, 5*time.Second, 5*time.Millisecond)

	evs := pub.snapshot()
	// one placement event plus fifty driver steps
	require.Len(t, evs, 51)

	byProgress := make(map[int]events.OrderEvent, len(evs))
	for _, e := range evs {
		byProgress[e.Progress] = e
	}

	assert.Equal(t, "PLACED", byProgress[30].Status)
	assert.Equal(t, 8, byProgress[30].ETA)
	assert.Equal(t, "PACKED", byProgress[32].Status)
	assert.Equal(t, 6, byProgress[32].ETA)
	assert.Equal(t, "OUT_FOR_DELIVERY", byProgress[62].Status)
	assert.Equal(t, 3, byProgress[62].ETA)
	assert.Equal(t, "OUT_FOR_DELIVERY", byProgress[82].Status)
	assert.Equal(t, 1, byProgress[82].ETA)
	assert.Equal(t, "ARRIVED", byProgress[100].Status)
	assert.Equal(t, 0, byProgress[100].ETA)
}

func TestEngine_NewOrderAllowedAfterArrival(t *testing.T) {
	engine, store, _ := setupEngine(t, time.Millisecond)
	store.AddItem(cementProduct(), 1)

	first, err := engine.PlaceOrder()
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		o := engine.Active()
		return o != nil && o.Status.IsTerminal()
	}, 5*time.Second, 5*time.Millisecond)

	store.AddItem(cementProduct(), 2)
	second, err := engine.PlaceOrder()
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, int64(840), second.Total)
	assert.NotEqual(t, first.ID, engine.Active().ID)
}

func TestEngine_CloseStopsDriver(t *testing.T) {
	engine, store, _ := setupEngine(t, 5*time.Millisecond)
	store.AddItem(cementProduct(), 1)

	_, err := engine.PlaceOrder()
	require.NoError(t, err)

	require.NoError(t, engine.Close())

	o := engine.Active()
	progress := o.Progress
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, progress, engine.Active().Progress)

	// Close is idempotent
	require.NoError(t, engine.Close())
}

func TestEngine_ActiveReturnsCopy(t *testing.T) {
	engine, store, _ := setupEngine(t, time.Hour)
	store.AddItem(cementProduct(), 1)

	_, err := engine.PlaceOrder()
	require.NoError(t, err)

	o := engine.Active()
	o.Total = 1
	o.Items[0].Price = 1

	again := engine.Active()
	assert.Equal(t, int64(420), again.Total)
	assert.Equal(t, int64(420), again.Items[0].Price)
}
