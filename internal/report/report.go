// Package report summarises a generated dataset for the CLI and the HTTP API.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/matthieukhl/ordersynth/internal/models"
	"github.com/matthieukhl/ordersynth/internal/money"
)

// Breakdown is the order count and revenue of one category, region,
// segment or product.
type Breakdown struct {
	Name    string  `json:"name"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

type Summary struct {
	Records             int         `json:"records"`
	FirstDate           string      `json:"first_date,omitempty"`
	LastDate            string      `json:"last_date,omitempty"`
	Categories          int         `json:"categories"`
	Products            int         `json:"products"`
	Customers           int         `json:"customers"`
	TotalRevenue        float64     `json:"total_revenue"`
	AverageOrderValue   float64     `json:"average_order_value"`
	DiscountedOrders    int         `json:"discounted_orders"`
	FreeShippingOrders  int         `json:"free_shipping_orders"`
	AverageSatisfaction float64     `json:"average_satisfaction"`
	ByCategory          []Breakdown `json:"by_category"`
	ByRegion            []Breakdown `json:"by_region"`
	BySegment           []Breakdown `json:"by_segment"`
	ByProduct           []Breakdown `json:"by_product"`
}

type tally struct {
	orders  int
	revenue decimal.Decimal
}

type tallies map[string]*tally

func (t tallies) add(name string, amount decimal.Decimal) {
	e, ok := t[name]
	if !ok {
		e = &tally{}
		t[name] = e
	}
	e.orders++
	e.revenue = e.revenue.Add(amount)
}

// sorted orders by revenue, highest first, then by name.
func (t tallies) sorted() []Breakdown {
	out := make([]Breakdown, 0, len(t))
	for name, e := range t {
		out = append(out, Breakdown{Name: name, Orders: e.orders, Revenue: e.revenue.Round(2).InexactFloat64()})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Summarize computes the dataset overview. Revenue is summed in decimal so
// the totals do not drift with the number of orders.
func Summarize(orders []models.Order) Summary {
	s := Summary{Records: len(orders)}
	if len(orders) == 0 {
		return s
	}

	categories := tallies{}
	regions := tallies{}
	segments := tallies{}
	products := tallies{}
	customers := map[string]struct{}{}

	revenue := decimal.Zero
	satisfaction := decimal.Zero
	first, last := orders[0].OrderDate, orders[0].OrderDate

	for _, o := range orders {
		amount := decimal.NewFromFloat(o.TotalAmount)
		revenue = revenue.Add(amount)
		satisfaction = satisfaction.Add(decimal.NewFromFloat(o.SatisfactionRating))

		categories.add(o.Category, amount)
		regions.add(o.Region, amount)
		segments.add(o.CustomerSegment, amount)
		products.add(o.Product, amount)
		customers[o.CustomerID] = struct{}{}

		if o.OrderDate.Before(first) {
			first = o.OrderDate
		}
		if o.OrderDate.After(last) {
			last = o.OrderDate
		}
		if o.DiscountAmount > 0 {
			s.DiscountedOrders++
		}
		if o.ShippingCost == 0 {
			s.FreeShippingOrders++
		}
	}

	n := decimal.NewFromInt(int64(len(orders)))
	s.FirstDate = first.Format(models.DateLayout)
	s.LastDate = last.Format(models.DateLayout)
	s.Categories = len(categories)
	s.Products = len(products)
	s.Customers = len(customers)
	s.TotalRevenue = revenue.Round(2).InexactFloat64()
	s.AverageOrderValue = revenue.Div(n).Round(2).InexactFloat64()
	s.AverageSatisfaction = satisfaction.Div(n).Round(2).InexactFloat64()
	s.ByCategory = categories.sorted()
	s.ByRegion = regions.sorted()
	s.BySegment = segments.sorted()
	s.ByProduct = products.sorted()
	return s
}

// Dollars formats v as $1,234.56.
func Dollars(v float64) string {
	return "$" + humanize.FormatFloat("#,###.##", money.Cents(v))
}

// Print writes the human readable overview printed after generation.
func (s Summary) Print(w io.Writer) {
	fmt.Fprintf(w, "✅ Generated %d records:\n", s.Records)
	if s.Records == 0 {
		return
	}
	fmt.Fprintf(w, "   • Date range: %s to %s\n", s.FirstDate, s.LastDate)
	fmt.Fprintf(w, "   • Categories: %d\n", s.Categories)
	fmt.Fprintf(w, "   • Products: %d\n", s.Products)
	fmt.Fprintf(w, "   • Customers: %d\n", s.Customers)
	fmt.Fprintf(w, "   • Total revenue: %s\n", Dollars(s.TotalRevenue))
	fmt.Fprintf(w, "   • Average order: %s\n", Dollars(s.AverageOrderValue))
	fmt.Fprintf(w, "   • Discounted orders: %d, free shipping: %d\n", s.DiscountedOrders, s.FreeShippingOrders)
	fmt.Fprintf(w, "   • Average satisfaction: %.2f\n", s.AverageSatisfaction)

	fmt.Fprintln(w, "\n📊 Revenue by region:")
	for _, b := range s.ByRegion {
		fmt.Fprintf(w, "   %-10s %6d orders  %s\n", b.Name, b.Orders, Dollars(b.Revenue))
	}
	fmt.Fprintln(w, "\n📊 Revenue by segment:")
	for _, b := range s.BySegment {
		fmt.Fprintf(w, "   %-10s %6d orders  %s\n", b.Name, b.Orders, Dollars(b.Revenue))
	}
}
