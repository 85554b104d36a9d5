package generator

import "time"

// DateBucket is one quota slice of a run: a day-offset range [From, To)
// relative to the epoch and the seasonal price factor applied inside it.
type DateBucket struct {
	From           int
	To             int
	SeasonalFactor float64
}

// quotaBuckets split a run into four equal index quotas. The last one spans
// the rest of the two-year window, not just the fourth quarter.
var quotaBuckets = [4]DateBucket{
	{From: 0, To: 90, SeasonalFactor: 0.8},
	{From: 90, To: 180, SeasonalFactor: 1.1},
	{From: 180, To: 270, SeasonalFactor: 1.0},
	{From: 270, To: 730, SeasonalFactor: 1.4},
}

// DefaultEpoch is day zero of the generated calendar.
var DefaultEpoch = time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)

// QuotaDateSampler maps a generation index to a date and a seasonal factor.
type QuotaDateSampler struct {
	Epoch time.Time
}

// Bucket returns the quota bucket of index i in a run of n records.
func (s QuotaDateSampler) Bucket(i, n int) DateBucket {
	if n <= 0 || i < 0 {
		return quotaBuckets[0]
	}
	b := i * len(quotaBuckets) / n
	if b >= len(quotaBuckets) {
		b = len(quotaBuckets) - 1
	}
	return quotaBuckets[b]
}

// Sample draws the day offset for index i and returns the date with the
// bucket's seasonal factor. It consumes exactly one draw.
func (s QuotaDateSampler) Sample(i, n int, rng Rand) (time.Time, float64) {
	b := s.Bucket(i, n)
	offset := b.From + rng.Intn(b.To-b.From)
	return s.Epoch.AddDate(0, 0, offset), b.SeasonalFactor
}
