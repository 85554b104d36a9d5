package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthieukhl/ordersynth/internal/generator"
	"github.com/matthieukhl/ordersynth/internal/models"
)

func order(id, customer, category, product, region, segment string, day int, total, discount, shipping, rating float64) models.Order {
	return models.Order{
		OrderID:            id,
		CustomerID:         customer,
		OrderDate:          time.Date(2023, 3, day, 0, 0, 0, 0, time.UTC),
		Category:           category,
		Product:            product,
		Region:             region,
		CustomerSegment:    segment,
		TotalAmount:        total,
		DiscountAmount:     discount,
		ShippingCost:       shipping,
		SatisfactionRating: rating,
	}
}

func TestSummarize(t *testing.T) {
	orders := []models.Order{
		order("ORD-1", "CUST-1", "Office", "Lamp", "West", "Budget", 10, 70.10, 0, 10, 3.0),
		order("ORD-2", "CUST-2", "Electronics", "Laptop", "North", "Premium", 2, 1200.20, 60, 0, 4.5),
		order("ORD-3", "CUST-1", "Office", "Desk", "West", "Budget", 20, 500.00, 0, 0, 3.5),
	}

	s := Summarize(orders)
	assert.Equal(t, 3, s.Records)
	assert.Equal(t, "2023-03-02", s.FirstDate)
	assert.Equal(t, "2023-03-20", s.LastDate)
	assert.Equal(t, 2, s.Categories)
	assert.Equal(t, 3, s.Products)
	assert.Equal(t, 2, s.Customers)
	assert.Equal(t, 1770.30, s.TotalRevenue)
	assert.Equal(t, 590.10, s.AverageOrderValue)
	assert.Equal(t, 1, s.DiscountedOrders)
	assert.Equal(t, 2, s.FreeShippingOrders)
	assert.Equal(t, 3.67, s.AverageSatisfaction)

	assert.Equal(t, []Breakdown{
		{Name: "Electronics", Orders: 1, Revenue: 1200.20},
		{Name: "Office", Orders: 2, Revenue: 570.10},
	}, s.ByCategory)
	assert.Equal(t, []Breakdown{
		{Name: "North", Orders: 1, Revenue: 1200.20},
		{Name: "West", Orders: 2, Revenue: 570.10},
	}, s.ByRegion)
	require.Len(t, s.ByProduct, 3)
	assert.Equal(t, "Desk", s.ByProduct[1].Name)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, Summary{}, s)

	var buf bytes.Buffer
	s.Print(&buf)
	assert.Equal(t, "✅ Generated 0 records:\n", buf.String())
}

func TestSummarizeGeneratedRun(t *testing.T) {
	g, err := generator.New(models.DefaultModel(), generator.DefaultOptions(), nil)
	require.NoError(t, err)
	orders, err := g.Run(2000)
	require.NoError(t, err)

	s := Summarize(orders)
	assert.Equal(t, 2000, s.Records)
	assert.GreaterOrEqual(t, s.FirstDate, "2023-01-01")
	assert.Less(t, s.LastDate, "2025-01-01")
	assert.Equal(t, 2, s.Categories)
	assert.Equal(t, 8, s.Products)
	assert.Equal(t, g.Ledger().Len(), s.Customers)
	assert.Len(t, s.ByRegion, 4)
	assert.Len(t, s.BySegment, 4)

	var regionOrders int
	for _, b := range s.ByRegion {
		regionOrders += b.Orders
	}
	assert.Equal(t, 2000, regionOrders)
}

func TestDollars(t *testing.T) {
	assert.Equal(t, "$0.00", Dollars(0))
	assert.Equal(t, "$59.28", Dollars(59.28))
	assert.Equal(t, "$1,234,567.89", Dollars(1234567.891))
}

func TestPrint(t *testing.T) {
	s := Summarize([]models.Order{
		order("ORD-1", "CUST-1", "Office", "Lamp", "West", "Budget", 10, 1070.10, 0, 10, 3.0),
	})
	var buf bytes.Buffer
	s.Print(&buf)
	out := buf.String()
	assert.Contains(t, out, "Generated 1 records")
	assert.Contains(t, out, "Date range: 2023-03-10 to 2023-03-10")
	assert.Contains(t, out, "Total revenue: $1,070.10")
	assert.Contains(t, out, "West")
}
