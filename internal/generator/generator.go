// Package generator produces synthetic e-commerce orders. A Generator owns a
// seeded random stream and a customer ledger; given the same tables, options
// and count it emits the same orders.
package generator

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/matthieukhl/ordersynth/internal/models"
	"github.com/matthieukhl/ordersynth/internal/money"
)

const orderIDBase = 100000

// Options tune a run. Zero values are not defaults; start from DefaultOptions.
type Options struct {
	Seed                    int64
	ReuseProbability        float64
	DiscountGateProbability float64
	Epoch                   time.Time
}

// DefaultOptions returns the options of the reference dataset.
func DefaultOptions() Options {
	return Options{
		Seed:                    42,
		ReuseProbability:        0.3,
		DiscountGateProbability: 0.3,
		Epoch:                   DefaultEpoch,
	}
}

// Generator runs the order model.
type Generator struct {
	model    models.Model
	opts     Options
	rng      Rand
	ledger   *CustomerLedger
	dates    QuotaDateSampler
	segments map[string]models.Segment
	weights  []float64
	total    float64
	issued   int
	logger   *zap.Logger
}

// New validates the tables and returns a generator seeded with opts.Seed.
func New(m models.Model, opts Options, logger *zap.Logger) (*Generator, error) {
	return NewWithRand(m, opts, NewRand(opts.Seed), logger)
}

// NewWithRand is New with a caller-supplied random stream.
func NewWithRand(m models.Model, opts Options, rng Rand, logger *zap.Logger) (*Generator, error) {
	if err := Validate(m, opts); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Epoch.IsZero() {
		opts.Epoch = DefaultEpoch
	}

	g := &Generator{
		model:    m,
		opts:     opts,
		rng:      rng,
		ledger:   NewCustomerLedger(m.Segments),
		dates:    QuotaDateSampler{Epoch: opts.Epoch},
		segments: make(map[string]models.Segment, len(m.Segments)),
		weights:  make([]float64, len(m.Regions)),
		logger:   logger,
	}
	for _, s := range m.Segments {
		g.segments[s.Name] = s
	}
	for i, r := range m.Regions {
		g.weights[i] = r.PopulationWeight
		g.total += r.PopulationWeight
	}
	return g, nil
}

// Ledger exposes the customer state of the run.
func (g *Generator) Ledger() *CustomerLedger {
	return g.ledger
}

// Run generates count orders.
func (g *Generator) Run(count int) ([]models.Order, error) {
	if err := ValidateCount(count); err != nil {
		return nil, err
	}
	orders := make([]models.Order, 0, count)
	err := g.Generate(count, func(o models.Order) bool {
		orders = append(orders, o)
		return true
	})
	return orders, err
}

// Generate emits count orders to yield, stopping early if yield returns
// false. Each order is recorded in the ledger before yield sees it, so the
// ledger always matches the orders handed out so far.
//
// Calling Generate again continues the same stream and ledger; order ids
// keep increasing across calls.
func (g *Generator) Generate(count int, yield func(models.Order) bool) error {
	if err := ValidateCount(count); err != nil {
		return err
	}

	start := time.Now()
	emitted := 0
	for i := 0; i < count; i++ {
		o := g.next(i, count)
		emitted++
		if !yield(o) {
			break
		}
	}

	g.logger.Debug("generated orders",
		zap.Int("requested", count),
		zap.Int("emitted", emitted),
		zap.Int("customers", g.ledger.Len()),
		zap.Int64("seed", g.opts.Seed),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

// next builds order i of an n-order run. The sequence of draws below is
// fixed; changing it changes every dataset generated from a seed.
func (g *Generator) next(i, n int) models.Order {
	date, seasonal := g.dates.Sample(i, n, g.rng)

	region := g.model.Regions[weightedIndex(g.rng, g.weights, g.total)]

	customer, _ := g.ledger.GetOrCreate(g.rng, g.opts.ReuseProbability, region.Name)
	segment := g.segments[customer.Segment]

	category := g.model.Catalog[g.rng.Intn(len(g.model.Catalog))]
	product := category.Product(g.rng.Intn(len(category.Products)))

	unitPrice := UnitPrice(product, region, seasonal, g.rng)
	quantity := Quantity(category.Name, segment, g.rng)
	subtotal := Subtotal(unitPrice, quantity)

	discount := ApplyDiscount(customer.LifetimeOrders, subtotal, date, g.opts.DiscountGateProbability, g.rng)
	afterDiscount := subtotal - discount.Amount

	shipping := ShippingCost(afterDiscount, g.rng)
	total := money.Cents(afterDiscount + shipping)

	rating := Satisfaction(segment.Name, g.rng)

	weekday := date.Weekday()
	o := models.Order{
		OrderID:            fmt.Sprintf("ORD-%d", orderIDBase+g.issued),
		CustomerID:         customer.ID,
		OrderDate:          date,
		Category:           category.Name,
		Product:            product.Name,
		Quantity:           quantity,
		UnitPrice:          unitPrice,
		Subtotal:           subtotal,
		DiscountRate:       discount.Rate,
		DiscountAmount:     discount.Amount,
		ShippingCost:       shipping,
		TotalAmount:        total,
		Region:             region.Name,
		CustomerSegment:    segment.Name,
		SatisfactionRating: rating,
		DayOfWeek:          weekday.String(),
		Month:              int(date.Month()),
		Quarter:            fmt.Sprintf("Q%d", (int(date.Month())-1)/3+1),
		IsWeekend:          weekday == time.Saturday || weekday == time.Sunday,
		IsHolidaySeason:    IsHolidayMonth(date.Month()),
	}
	g.issued++

	g.ledger.RecordOrder(customer.ID, total)
	return o
}
