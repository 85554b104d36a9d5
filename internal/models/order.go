package models

import (
	"time"
)

// DateLayout is the calendar format used for order dates on the wire and in CSV.
const DateLayout = "2006-01-02"

// Customer is the per-run state of a generated customer
type Customer struct {
	ID             string  `json:"customer_id" db:"customer_id"`
	Segment        string  `json:"segment" db:"segment"`
	Region         string  `json:"region" db:"region"`
	LifetimeOrders int     `json:"lifetime_orders" db:"lifetime_orders"`
	TotalSpent     float64 `json:"total_spent" db:"total_spent"`
}

// Order is one generated sales record. Values are never modified after the
// generator hands them out.
type Order struct {
	OrderID            string    `json:"order_id" db:"order_id" gorm:"column:order_id;size:32;index"`
	CustomerID         string    `json:"customer_id" db:"customer_id" gorm:"column:customer_id;size:32;index"`
	OrderDate          time.Time `json:"order_date" db:"order_date" gorm:"column:order_date;type:date"`
	Category           string    `json:"category" db:"category" gorm:"column:category;size:64"`
	Product            string    `json:"product" db:"product" gorm:"column:product;size:64"`
	Quantity           int       `json:"quantity" db:"quantity" gorm:"column:quantity"`
	UnitPrice          float64   `json:"unit_price" db:"unit_price" gorm:"column:unit_price"`
	Subtotal           float64   `json:"subtotal" db:"subtotal" gorm:"column:subtotal"`
	DiscountRate       float64   `json:"discount_rate" db:"discount_rate" gorm:"column:discount_rate"`
	DiscountAmount     float64   `json:"discount_amount" db:"discount_amount" gorm:"column:discount_amount"`
	ShippingCost       float64   `json:"shipping_cost" db:"shipping_cost" gorm:"column:shipping_cost"`
	TotalAmount        float64   `json:"total_amount" db:"total_amount" gorm:"column:total_amount"`
	Region             string    `json:"region" db:"region" gorm:"column:region;size:32"`
	CustomerSegment    string    `json:"customer_segment" db:"customer_segment" gorm:"column:customer_segment;size:32"`
	SatisfactionRating float64   `json:"satisfaction_rating" db:"satisfaction_rating" gorm:"column:satisfaction_rating"`
	DayOfWeek          string    `json:"day_of_week" db:"day_of_week" gorm:"column:day_of_week;size:16"`
	Month              int       `json:"month" db:"month" gorm:"column:month"`
	Quarter            string    `json:"quarter" db:"quarter" gorm:"column:quarter;size:2"`
	IsWeekend          bool      `json:"is_weekend" db:"is_weekend" gorm:"column:is_weekend"`
	IsHolidaySeason    bool      `json:"is_holiday_season" db:"is_holiday_season" gorm:"column:is_holiday_season"`
}

// Date returns the order date formatted as YYYY-MM-DD.
func (o Order) Date() string {
	return o.OrderDate.Format(DateLayout)
}

// Columns lists the Order fields in storage order.
var Columns = []string{
	"order_id",
	"customer_id",
	"order_date",
	"category",
	"product",
	"quantity",
	"unit_price",
	"subtotal",
	"discount_rate",
	"discount_amount",
	"shipping_cost",
	"total_amount",
	"region",
	"customer_segment",
	"satisfaction_rating",
	"day_of_week",
	"month",
	"quarter",
	"is_weekend",
	"is_holiday_season",
}

// Values returns the field values in the order of Columns.
func (o Order) Values() []any {
	return []any{
		o.OrderID,
		o.CustomerID,
		o.Date(),
		o.Category,
		o.Product,
		o.Quantity,
		o.UnitPrice,
		o.Subtotal,
		o.DiscountRate,
		o.DiscountAmount,
		o.ShippingCost,
		o.TotalAmount,
		o.Region,
		o.CustomerSegment,
		o.SatisfactionRating,
		o.DayOfWeek,
		o.Month,
		o.Quarter,
		o.IsWeekend,
		o.IsHolidaySeason,
	}
}
