package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthieukhl/ordersynth/internal/models"
)

func TestLedgerFirstCustomerIsAlwaysNew(t *testing.T) {
	l := NewCustomerLedger(models.DefaultSegments())

	// gate succeeds but the ledger is empty, so a customer is created
	rng := &scriptedRand{t: t, floats: []float64{0.01}, ints: []int{3}}
	c, created := l.GetOrCreate(rng, 0.3, "West")

	require.True(t, created)
	assert.Equal(t, "CUST-10000", c.ID)
	assert.Equal(t, models.SegmentBulk, c.Segment)
	assert.Equal(t, "West", c.Region)
	assert.Zero(t, c.LifetimeOrders)
	assert.Zero(t, c.TotalSpent)
	assert.True(t, rng.drained())
}

func TestLedgerReuseAndCreate(t *testing.T) {
	l := NewCustomerLedger(models.DefaultSegments())

	rng := &scriptedRand{t: t,
		floats: []float64{0.9, 0.9, 0.1},
		ints:   []int{0, 2, 1},
	}
	first, _ := l.GetOrCreate(rng, 0.3, "North")
	second, created := l.GetOrCreate(rng, 0.3, "South")
	require.True(t, created)
	assert.Equal(t, "CUST-10001", second.ID)
	assert.Equal(t, models.SegmentBudget, second.Segment)

	again, created := l.GetOrCreate(rng, 0.3, "East")
	assert.False(t, created)
	assert.Equal(t, second.ID, again.ID)
	// a repeat customer keeps the region it was created in
	assert.Equal(t, "South", again.Region)
	assert.Equal(t, first.ID, l.Customers()[0].ID)
	assert.Equal(t, 2, l.Len())
}

func TestLedgerRecordOrder(t *testing.T) {
	l := NewCustomerLedger(models.DefaultSegments())
	rng := &scriptedRand{t: t, floats: []float64{0.5}, ints: []int{0}}
	c, _ := l.GetOrCreate(rng, 0.3, "North")

	assert.True(t, l.RecordOrder(c.ID, 120.5))
	assert.True(t, l.RecordOrder(c.ID, 9.5))

	got, ok := l.Customer(c.ID)
	require.True(t, ok)
	assert.Equal(t, 2, got.LifetimeOrders)
	assert.InDelta(t, 130.0, got.TotalSpent, 1e-9)

	// snapshots are copies
	assert.Zero(t, c.LifetimeOrders)
}

func TestLedgerRecordOrderUnknownID(t *testing.T) {
	l := NewCustomerLedger(models.DefaultSegments())
	assert.False(t, l.RecordOrder("CUST-99999", 10))
	_, ok := l.Customer("CUST-99999")
	assert.False(t, ok)
}
