package generator

import (
	"time"

	"github.com/matthieukhl/ordersynth/internal/money"
)

// DiscountTier names the rule that set an order's discount rate.
type DiscountTier string

const (
	TierNone    DiscountTier = "none"
	TierLoyalty DiscountTier = "loyalty"
	TierBulk    DiscountTier = "bulk"
	TierHoliday DiscountTier = "holiday"
)

const (
	loyaltyMinOrders = 5
	bulkMinSubtotal  = 1000.0
)

// Rate returns the discount rate of the tier.
func (t DiscountTier) Rate() float64 {
	switch t {
	case TierLoyalty:
		return 0.05
	case TierBulk:
		return 0.10
	case TierHoliday:
		return 0.15
	default:
		return 0
	}
}

// Discount is the outcome of the discount rules for one order. Rate is
// always recorded; Amount is only non-zero when the gate let it through.
type Discount struct {
	Tier   DiscountTier
	Rate   float64
	Amount float64
}

// SelectTier applies the tiers in priority order: loyalty, bulk, holiday.
// lifetimeOrders is the count before the current order.
func SelectTier(lifetimeOrders int, subtotal float64, month time.Month) DiscountTier {
	switch {
	case lifetimeOrders > loyaltyMinOrders:
		return TierLoyalty
	case subtotal > bulkMinSubtotal:
		return TierBulk
	case IsHolidayMonth(month):
		return TierHoliday
	default:
		return TierNone
	}
}

// ApplyDiscount selects the tier and then draws the gate: with probability
// gate the amount is taken off the subtotal, otherwise the amount stays zero
// while the rate is kept.
func ApplyDiscount(lifetimeOrders int, subtotal float64, date time.Time, gate float64, rng Rand) Discount {
	tier := SelectTier(lifetimeOrders, subtotal, date.Month())
	d := Discount{Tier: tier, Rate: tier.Rate()}
	if chance(rng, gate) {
		d.Amount = money.Cents(subtotal * d.Rate)
	}
	return d
}

// IsHolidayMonth reports whether m is November or December.
func IsHolidayMonth(m time.Month) bool {
	return m == time.November || m == time.December
}
