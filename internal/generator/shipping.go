package generator

import "github.com/matthieukhl/ordersynth/internal/money"

const freeShippingThreshold = 100.0

// ShippingCost is free above the threshold, otherwise a flat draw between
// 5 and 15. Free shipping consumes no draw.
func ShippingCost(totalAfterDiscount float64, rng Rand) float64 {
	if totalAfterDiscount > freeShippingThreshold {
		return 0
	}
	return money.Cents(uniform(rng, 5, 15))
}
