package generator

import (
	"math"

	"github.com/matthieukhl/ordersynth/internal/models"
	"github.com/matthieukhl/ordersynth/internal/money"
)

// UnitPrice scales the product's base price by a ±10% draw, the seasonal
// effect and the regional income modifier. Segments do not affect price.
func UnitPrice(p models.Product, r models.Region, seasonalFactor float64, rng Rand) float64 {
	variation := uniform(rng, 0.9, 1.1)
	seasonal := seasonalFactor * p.Seasonality
	return money.Cents(p.BasePrice * variation * seasonal * r.IncomeModifier)
}

// Quantity draws how many units the customer buys. Bulk buyers of office
// furniture order between 2 and 8 units; everyone else orders around their
// segment's average.
func Quantity(category string, seg models.Segment, rng Rand) int {
	if category == models.CategoryOffice && seg.Name == models.SegmentBulk {
		return 2 + rng.Intn(7)
	}
	jitter := uniform(rng, 0.5, 2.0)
	return max(1, int(math.Round(seg.AvgItems*jitter)))
}

// Subtotal is the line total rounded to cents.
func Subtotal(unitPrice float64, quantity int) float64 {
	return money.Cents(unitPrice * float64(quantity))
}
