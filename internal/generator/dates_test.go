package generator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQuotaBucketBoundaries(t *testing.T) {
	s := QuotaDateSampler{Epoch: DefaultEpoch}

	tests := []struct {
		i      int
		factor float64
		from   int
	}{
		{0, 0.8, 0},
		{499, 0.8, 0},
		{500, 1.1, 90},
		{999, 1.1, 90},
		{1000, 1.0, 180},
		{1499, 1.0, 180},
		{1500, 1.4, 270},
		{1999, 1.4, 270},
	}
	for _, tt := range tests {
		b := s.Bucket(tt.i, 2000)
		assert.Equal(t, tt.factor, b.SeasonalFactor, "index %d", tt.i)
		assert.Equal(t, tt.from, b.From, "index %d", tt.i)
	}
}

func TestQuotaBucketScalesWithCount(t *testing.T) {
	s := QuotaDateSampler{Epoch: DefaultEpoch}

	assert.Equal(t, 0.8, s.Bucket(0, 1).SeasonalFactor)
	assert.Equal(t, 0.8, s.Bucket(0, 4).SeasonalFactor)
	assert.Equal(t, 1.1, s.Bucket(1, 4).SeasonalFactor)
	assert.Equal(t, 1.0, s.Bucket(2, 4).SeasonalFactor)
	assert.Equal(t, 1.4, s.Bucket(3, 4).SeasonalFactor)
	assert.Equal(t, 1.4, s.Bucket(9, 10).SeasonalFactor)
}

func TestQuotaSampleUsesOneDraw(t *testing.T) {
	s := QuotaDateSampler{Epoch: DefaultEpoch}

	rng := &scriptedRand{t: t, ints: []int{89}}
	date, factor := s.Sample(10, 2000, rng)
	assert.Equal(t, time.Date(2023, time.March, 31, 0, 0, 0, 0, time.UTC), date)
	assert.Equal(t, 0.8, factor)
	assert.True(t, rng.drained())

	// last bucket reaches into the second year
	rng = &scriptedRand{t: t, ints: []int{459}}
	date, factor = s.Sample(1999, 2000, rng)
	assert.Equal(t, time.Date(2024, time.December, 30, 0, 0, 0, 0, time.UTC), date)
	assert.Equal(t, 1.4, factor)
}
