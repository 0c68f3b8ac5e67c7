package assistant

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulhasvenkateshm13-dotcom/buildit/internal/catalog"
)

type recordingCart struct {
	added []struct {
		id  string
		qty int
	}
}

func (c *recordingCart) AddItem(p catalog.Product, quantity int) {
	c.added = append(c.added, struct {
		id  string
		qty int
	}{p.ID, quantity})
}

func testStore() catalog.Store {
	return catalog.NewMemoryStore([]catalog.Product{
		{ID: "1", Name: "UltraTech Cement", Price: 420, Category: catalog.CategoryHeavy},
		{ID: "9", Name: "Asian Paints White", Price: 3200, Category: catalog.CategoryFinishing},
	})
}

func TestResolver_Apply_ValidItems(t *testing.T) {
	cartRec := &recordingCart{}
	r := NewResolver(testStore(), cartRec)

	report, err := r.Apply(context.Background(), ProjectBundle{
		Title: "Paint a room",
		Items: []BundleItem{
			{ProductID: "9", Quantity: 1, Reason: "wall coverage"},
			{ProductID: "1", Quantity: 2, Reason: "patching"},
		},
	})
	require.NoError(t, err)

	require.Len(t, report.Added, 2)
	assert.Empty(t, report.Dropped)
	require.Len(t, cartRec.added, 2)
	assert.Equal(t, "9", cartRec.added[0].id)
	assert.Equal(t, 1, cartRec.added[0].qty)
	assert.Equal(t, "1", cartRec.added[1].id)
	assert.Equal(t, 2, cartRec.added[1].qty)
}

func TestResolver_Apply_UnknownProductDropped(t *testing.T) {
	cartRec := &recordingCart{}
	r := NewResolver(testStore(), cartRec)

	report, err := r.Apply(context.Background(), ProjectBundle{
		Items: []BundleItem{
			{ProductID: "1", Quantity: 1},
			{ProductID: "no-such-product", Quantity: 3},
		},
	})
	require.NoError(t, err)

	require.Len(t, report.Added, 1)
	assert.Equal(t, "1", report.Added[0].ProductID)

	require.Len(t, report.Dropped, 1)
	assert.Equal(t, "no-such-product", report.Dropped[0].ProductID)
	assert.Equal(t, DropReasonUnknownProduct, report.Dropped[0].Reason)

	// only the valid item reached the cart
	require.Len(t, cartRec.added, 1)
	assert.Equal(t, "1", cartRec.added[0].id)
}

func TestResolver_Apply_InvalidQuantities(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		added    bool
		applied  int
	}{
		{"zero quantity dropped", 0, false, 0},
		{"negative quantity dropped", -4, false, 0},
		{"oversized quantity clamped", 500, true, maxLineQuantity},
		{"boundary quantity passes", 99, true, 99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cartRec := &recordingCart{}
			r := NewResolver(testStore(), cartRec)

			report, err := r.Apply(context.Background(), ProjectBundle{
				Items: []BundleItem{{ProductID: "1", Quantity: tt.quantity}},
			})
			require.NoError(t, err)

			if !tt.added {
				assert.Empty(t, report.Added)
				require.Len(t, report.Dropped, 1)
				assert.Equal(t, DropReasonInvalidQuantity, report.Dropped[0].Reason)
				assert.Empty(t, cartRec.added)
				return
			}

			require.Len(t, report.Added, 1)
			assert.Equal(t, tt.applied, report.Added[0].Quantity)
			require.Len(t, cartRec.added, 1)
			assert.Equal(t, tt.applied, cartRec.added[0].qty)
		})
	}
}

func TestResolver_Apply_EmptyBundle(t *testing.T) {
	cartRec := &recordingCart{}
	r := NewResolver(testStore(), cartRec)

	report, err := r.Apply(context.Background(), ProjectBundle{Title: "Nothing"})
	require.NoError(t, err)
	assert.Empty(t, report.Added)
	assert.Empty(t, report.Dropped)
	assert.Empty(t, cartRec.added)
}
