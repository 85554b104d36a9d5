// Package money holds the rounding rules used for prices and totals.
package money

import "github.com/shopspring/decimal"

// Round rounds v to the given number of decimal places, half away from zero,
// working on the shortest decimal representation of v.
func Round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

// Cents rounds v to two decimal places.
func Cents(v float64) float64 {
	return Round(v, 2)
}

// Format renders v with exactly places digits after the point.
func Format(v float64, places int32) string {
	return decimal.NewFromFloat(v).StringFixed(places)
}
