package generator

import (
	"github.com/matthieukhl/ordersynth/internal/models"
	"github.com/matthieukhl/ordersynth/internal/money"
)

const (
	minRating         = 1.0
	maxRating         = 5.0
	ratingNoiseStdDev = 0.5
)

// satisfactionBase is the mean rating of a segment.
func satisfactionBase(segment string) float64 {
	switch segment {
	case models.SegmentPremium:
		return 4.5
	case models.SegmentBudget:
		return 3.8
	default:
		return 4.0
	}
}

// Satisfaction draws a rating around the segment's base, clamped to [1, 5]
// and rounded to one decimal.
func Satisfaction(segment string, rng Rand) float64 {
	v := satisfactionBase(segment) + rng.NormFloat64()*ratingNoiseStdDev
	v = min(maxRating, max(minRating, v))
	return money.Round(v, 1)
}
