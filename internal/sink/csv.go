package sink

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/matthieukhl/ordersynth/internal/models"
	"github.com/matthieukhl/ordersynth/internal/money"
)

// EncodeCSV writes a header row followed by one row per order, columns in
// models.Columns order. Money is written with two decimals.
func EncodeCSV(w io.Writer, orders []models.Order) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(models.Columns); err != nil {
		return err
	}
	for _, o := range orders {
		if err := cw.Write(csvRecord(o)); err != nil {
			return fmt.Errorf("failed to write %s: %w", o.OrderID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvRecord(o models.Order) []string {
	return []string{
		o.OrderID,
		o.CustomerID,
		o.Date(),
		o.Category,
		o.Product,
		strconv.Itoa(o.Quantity),
		money.Format(o.UnitPrice, 2),
		money.Format(o.Subtotal, 2),
		money.Format(o.DiscountRate, 2),
		money.Format(o.DiscountAmount, 2),
		money.Format(o.ShippingCost, 2),
		money.Format(o.TotalAmount, 2),
		o.Region,
		o.CustomerSegment,
		money.Format(o.SatisfactionRating, 1),
		o.DayOfWeek,
		strconv.Itoa(o.Month),
		o.Quarter,
		strconv.FormatBool(o.IsWeekend),
		strconv.FormatBool(o.IsHolidaySeason),
	}
}
