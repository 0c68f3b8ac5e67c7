package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvance_FullRun(t *testing.T) {
	status := StatusPlaced
	progress := 0

	type step struct {
		status   Status
		progress int
		eta      int
	}
	var steps []step
	for progress < 100 {
		var eta int
		status, progress, eta = advance(status, progress)
		steps = append(steps, step{status, progress, eta})
	}

	// 0,2,4,...,100 is fifty steps
	require.Len(t, steps, 50)

	// Exact transition points: PACKED at the first value above 30,
	// OUT_FOR_DELIVERY at the first value above 60, ARRIVED at 100.
	byProgress := make(map[int]step, len(steps))
	for _, s := range steps {
		byProgress[s.progress] = s
	}

	assert.Equal(t, StatusPlaced, byProgress[30].status)
	assert.Equal(t, StatusPacked, byProgress[32].status)
	assert.Equal(t, StatusPacked, byProgress[60].status)
	assert.Equal(t, StatusOutForDelivery, byProgress[62].status)
	assert.Equal(t, StatusOutForDelivery, byProgress[98].status)
	assert.Equal(t, StatusArrived, byProgress[100].status)

	// No skipped or regressed stage
	rank := map[Status]int{StatusPlaced: 0, StatusPacked: 1, StatusOutForDelivery: 2, StatusArrived: 3}
	prev := StatusPlaced
	for _, s := range steps {
		assert.GreaterOrEqual(t, rank[s.status], rank[prev], "status regressed at progress %d", s.progress)
		assert.LessOrEqual(t, rank[s.status]-rank[prev], 1, "status skipped a stage at progress %d", s.progress)
		prev = s.status
	}
}

func TestAdvance_ETABands(t *testing.T) {
	tests := []struct {
		name         string
		fromProgress int
		expectedETA  int
	}{
		{"low band keeps initial eta", 10, 8},
		{"upper edge of low band", 28, 8},
		{"packed band", 30, 6},
		{"upper edge of packed band", 58, 6},
		{"out for delivery band", 60, 3},
		{"upper edge of delivery band", 78, 3},
		{"final approach", 80, 1},
		{"last step before arrival", 96, 1},
		{"arrival", 98, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, eta := advance(StatusOutForDelivery, tt.fromProgress)
			assert.Equal(t, tt.expectedETA, eta)
		})
	}
}

func TestAdvance_ETANeverIncreases(t *testing.T) {
	status := StatusPlaced
	progress := 0
	prevETA := initialETA

	for progress < 100 {
		var eta int
		status, progress, eta = advance(status, progress)
		assert.LessOrEqual(t, eta, prevETA, "eta increased at progress %d", progress)
		prevETA = eta
	}
	assert.Equal(t, 0, prevETA)
}

func TestAdvance_StatusCarriesForwardInFinalBand(t *testing.T) {
	// Between 80 and 100 only the eta tightens; whatever status was
	// last reached rides along.
	s, p, eta := advance(StatusOutForDelivery, 88)
	assert.Equal(t, StatusOutForDelivery, s)
	assert.Equal(t, 90, p)
	assert.Equal(t, 1, eta)
}

func TestAdvance_ClampsAtHundred(t *testing.T) {
	s, p, eta := advance(StatusOutForDelivery, 99)
	assert.Equal(t, StatusArrived, s)
	assert.Equal(t, 100, p)
	assert.Equal(t, 0, eta)
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.False(t, StatusPlaced.IsTerminal())
	assert.False(t, StatusPacked.IsTerminal())
	assert.False(t, StatusOutForDelivery.IsTerminal())
	assert.True(t, StatusArrived.IsTerminal())
}
