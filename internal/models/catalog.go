package models

// Product is a catalog entry. Category is filled in from the owning Category.
type Product struct {
	Category    string  `json:"category" mapstructure:"-"`
	Name        string  `json:"name" mapstructure:"name"`
	BasePrice   float64 `json:"base_price" mapstructure:"base_price"`
	Margin      float64 `json:"margin" mapstructure:"margin"`
	Seasonality float64 `json:"seasonality" mapstructure:"seasonality"`
}

// Category groups products. Order matters: categories and products are
// sampled by index, so reordering them changes output for a fixed seed.
type Category struct {
	Name     string    `json:"name" mapstructure:"name"`
	Products []Product `json:"products" mapstructure:"products"`
}

// Region describes where a customer lives.
type Region struct {
	Name             string  `json:"name" mapstructure:"name"`
	PopulationWeight float64 `json:"population_weight" mapstructure:"population_weight"`
	IncomeModifier   float64 `json:"income_modifier" mapstructure:"income_modifier"`
	TechAffinity     float64 `json:"tech_affinity" mapstructure:"tech_affinity"`
}

// Segment is a customer behaviour profile.
type Segment struct {
	Name            string  `json:"name" mapstructure:"name"`
	SpendMultiplier float64 `json:"spend_multiplier" mapstructure:"spend_multiplier"`
	Frequency       float64 `json:"frequency" mapstructure:"frequency"`
	AvgItems        float64 `json:"avg_items" mapstructure:"avg_items"`
}

// Model bundles the three static tables a generation run draws from.
type Model struct {
	Catalog  []Category `json:"catalog" mapstructure:"catalog"`
	Regions  []Region   `json:"regions" mapstructure:"regions"`
	Segments []Segment  `json:"segments" mapstructure:"segments"`
}

// Product categories
const (
	CategoryElectronics = "Electronics"
	CategoryOffice      = "Office"
)

// Customer segments
const (
	SegmentPremium = "Premium"
	SegmentRegular = "Regular"
	SegmentBudget  = "Budget"
	SegmentBulk    = "Bulk"
)

// DefaultCatalog returns the built-in product catalog.
func DefaultCatalog() []Category {
	return []Category{
		{
			Name: CategoryElectronics,
			Products: []Product{
				{Name: "Laptop", BasePrice: 800, Margin: 400, Seasonality: 1.2},
				{Name: "Monitor", BasePrice: 300, Margin: 200, Seasonality: 1.0},
				{Name: "Keyboard", BasePrice: 80, Margin: 40, Seasonality: 0.9},
				{Name: "Mouse", BasePrice: 40, Margin: 30, Seasonality: 0.8},
				{Name: "Headphones", BasePrice: 150, Margin: 100, Seasonality: 1.1},
			},
		},
		{
			Name: CategoryOffice,
			Products: []Product{
				{Name: "Chair", BasePrice: 250, Margin: 150, Seasonality: 0.7},
				{Name: "Desk", BasePrice: 400, Margin: 200, Seasonality: 0.8},
				{Name: "Lamp", BasePrice: 60, Margin: 40, Seasonality: 0.6},
			},
		},
	}
}

// DefaultRegions returns the built-in regions. Weights sum to 1.0.
func DefaultRegions() []Region {
	return []Region{
		{Name: "North", PopulationWeight: 0.30, IncomeModifier: 1.2, TechAffinity: 1.3},
		{Name: "South", PopulationWeight: 0.25, IncomeModifier: 0.9, TechAffinity: 0.8},
		{Name: "East", PopulationWeight: 0.30, IncomeModifier: 1.1, TechAffinity: 1.2},
		{Name: "West", PopulationWeight: 0.15, IncomeModifier: 1.0, TechAffinity: 1.0},
	}
}

// DefaultSegments returns the built-in customer segments.
func DefaultSegments() []Segment {
	return []Segment{
		{Name: SegmentPremium, SpendMultiplier: 1.5, Frequency: 0.3, AvgItems: 2.5},
		{Name: SegmentRegular, SpendMultiplier: 1.0, Frequency: 0.5, AvgItems: 1.8},
		{Name: SegmentBudget, SpendMultiplier: 0.7, Frequency: 0.6, AvgItems: 1.2},
		{Name: SegmentBulk, SpendMultiplier: 1.3, Frequency: 0.1, AvgItems: 4.0},
	}
}

// DefaultModel returns the built-in tables.
func DefaultModel() Model {
	return Model{
		Catalog:  DefaultCatalog(),
		Regions:  DefaultRegions(),
		Segments: DefaultSegments(),
	}
}

// Product returns the i-th product of c with its Category field set.
func (c Category) Product(i int) Product {
	p := c.Products[i]
	p.Category = c.Name
	return p
}
