package generator

import (
	"github.com/matthieukhl/ordersynth/internal/models"
	"github.com/matthieukhl/ordersynth/internal/money"
)

// Validate checks the static tables and options before a run starts.
func Validate(m models.Model, opts Options) error {
	if len(m.Catalog) == 0 {
		return configErr("catalog", "at least one category is required")
	}
	for i, c := range m.Catalog {
		if len(c.Products) == 0 {
			return configErr("catalog", "category %d (%q) has no products", i, c.Name)
		}
		for _, p := range c.Products {
			if p.BasePrice <= 0 {
				return configErr("catalog", "product %q: base_price must be positive", p.Name)
			}
			if p.Seasonality <= 0 {
				return configErr("catalog", "product %q: seasonality must be positive", p.Name)
			}
		}
	}

	if len(m.Regions) == 0 {
		return configErr("regions", "at least one region is required")
	}
	total := 0.0
	for _, r := range m.Regions {
		if r.PopulationWeight < 0 {
			return configErr("regions", "region %q: negative population_weight", r.Name)
		}
		if r.IncomeModifier <= 0 {
			return configErr("regions", "region %q: income_modifier must be positive", r.Name)
		}
		total += r.PopulationWeight
	}
	if total <= 0 {
		return configErr("regions", "population weights must sum to a positive total")
	}
	if err := validateMinimumPrices(m); err != nil {
		return err
	}

	if len(m.Segments) == 0 {
		return configErr("segments", "at least one segment is required")
	}
	for _, s := range m.Segments {
		if s.AvgItems <= 0 {
			return configErr("segments", "segment %q: avg_items must be positive", s.Name)
		}
	}

	if opts.ReuseProbability < 0 || opts.ReuseProbability > 1 {
		return configErr("reuse_probability", "%v is outside [0, 1]", opts.ReuseProbability)
	}
	if opts.DiscountGateProbability < 0 || opts.DiscountGateProbability > 1 {
		return configErr("discount_gate_probability", "%v is outside [0, 1]", opts.DiscountGateProbability)
	}
	return nil
}

// validateMinimumPrices rejects products whose cheapest possible draw would
// round to a zero unit price.
func validateMinimumPrices(m models.Model) error {
	minSeasonal := quotaBuckets[0].SeasonalFactor
	for _, b := range quotaBuckets {
		minSeasonal = min(minSeasonal, b.SeasonalFactor)
	}
	minIncome := 0.0
	for _, r := range m.Regions {
		if r.PopulationWeight > 0 && (minIncome == 0 || r.IncomeModifier < minIncome) {
			minIncome = r.IncomeModifier
		}
	}
	for _, c := range m.Catalog {
		for _, p := range c.Products {
			if money.Cents(p.BasePrice*0.9*minSeasonal*p.Seasonality*minIncome) <= 0 {
				return configErr("catalog", "product %q: base_price %v can produce a zero unit price", p.Name, p.BasePrice)
			}
		}
	}
	return nil
}

// ValidateCount rejects non-positive run sizes.
func ValidateCount(count int) error {
	if count <= 0 {
		return configErr("count", "must be positive, got %d", count)
	}
	return nil
}
