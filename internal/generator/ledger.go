package generator

import (
	"fmt"

	"github.com/matthieukhl/ordersynth/internal/models"
)

const customerIDBase = 10000

// CustomerLedger tracks every customer created during a run, in creation
// order. It belongs to a single generator and is not safe for concurrent use.
type CustomerLedger struct {
	segments  []string
	ids       []string
	customers map[string]*models.Customer
}

// NewCustomerLedger returns an empty ledger whose new customers draw their
// segment from segments.
func NewCustomerLedger(segments []models.Segment) *CustomerLedger {
	names := make([]string, len(segments))
	for i, s := range segments {
		names[i] = s.Name
	}
	return &CustomerLedger{
		segments:  names,
		customers: make(map[string]*models.Customer),
	}
}

// GetOrCreate returns a repeat customer with probability reuseProbability
// when the ledger is not empty, or else registers a new customer in region.
// The gate draw is consumed either way. The returned value is a snapshot
// taken before the current order is recorded.
func (l *CustomerLedger) GetOrCreate(rng Rand, reuseProbability float64, region string) (models.Customer, bool) {
	reuse := chance(rng, reuseProbability)
	if reuse && len(l.ids) > 0 {
		id := l.ids[rng.Intn(len(l.ids))]
		return *l.customers[id], false
	}

	c := &models.Customer{
		ID:      fmt.Sprintf("CUST-%d", customerIDBase+len(l.ids)),
		Segment: l.segments[rng.Intn(len(l.segments))],
		Region:  region,
	}
	l.ids = append(l.ids, c.ID)
	l.customers[c.ID] = c
	return *c, true
}

// RecordOrder adds one order worth total to the customer's history. It
// reports false for an id the ledger never issued.
func (l *CustomerLedger) RecordOrder(id string, total float64) bool {
	c, ok := l.customers[id]
	if !ok {
		return false
	}
	c.LifetimeOrders++
	c.TotalSpent += total
	return true
}

// Customer returns a snapshot of the customer with the given id.
func (l *CustomerLedger) Customer(id string) (models.Customer, bool) {
	c, ok := l.customers[id]
	if !ok {
		return models.Customer{}, false
	}
	return *c, true
}

// Len returns the number of customers created so far.
func (l *CustomerLedger) Len() int {
	return len(l.ids)
}

// Customers returns snapshots of all customers in creation order.
func (l *CustomerLedger) Customers() []models.Customer {
	out := make([]models.Customer, 0, len(l.ids))
	for _, id := range l.ids {
		out = append(out, *l.customers[id])
	}
	return out
}
