package sink

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthieukhl/ordersynth/internal/generator"
	"github.com/matthieukhl/ordersynth/internal/models"
)

func generateOrders(t *testing.T, n int) []models.Order {
	t.Helper()
	g, err := generator.New(models.DefaultModel(), generator.DefaultOptions(), nil)
	require.NoError(t, err)
	orders, err := g.Run(n)
	require.NoError(t, err)
	return orders
}

func sampleOrder() models.Order {
	return models.Order{
		OrderID:            "ORD-100000",
		CustomerID:         "CUST-10000",
		OrderDate:          time.Date(2023, 11, 16, 0, 0, 0, 0, time.UTC),
		Category:           "Electronics",
		Product:            "Mouse",
		Quantity:           1,
		UnitPrice:          49.28,
		Subtotal:           49.28,
		ShippingCost:       10,
		TotalAmount:        59.28,
		Region:             "East",
		CustomerSegment:    "Regular",
		SatisfactionRating: 4.2,
		DayOfWeek:          "Thursday",
		Month:              11,
		Quarter:            "Q4",
		IsHolidaySeason:    true,
	}
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("replace")
	require.NoError(t, err)
	assert.Equal(t, ModeReplace, m)

	m, err = ParseMode("append")
	require.NoError(t, err)
	assert.Equal(t, ModeAppend, m)

	_, err = ParseMode("upsert")
	assert.Error(t, err)
}

func TestPersistenceErrorUnwraps(t *testing.T) {
	cause := errors.New("connection reset")
	var err error = &PersistenceError{Sink: "sql", Op: "insert", Err: cause}

	assert.Equal(t, "sql sink: insert: connection reset", err.Error())
	assert.ErrorIs(t, err, cause)

	var pe *PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "insert", pe.Op)
}

func TestMemorySink(t *testing.T) {
	s := NewMemorySink()
	ctx := context.Background()
	orders := generateOrders(t, 10)

	n, err := s.Write(ctx, orders[:6], ModeReplace)
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	n, err = s.Write(ctx, orders[6:], ModeAppend)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, orders, s.Orders())

	count, err := s.CountRows(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(10), count)

	_, err = s.Write(ctx, orders[:2], ModeReplace)
	require.NoError(t, err)
	assert.Equal(t, orders[:2], s.Orders())
	assert.Equal(t, 3, s.Writes())

	// stored orders do not alias the caller's slice
	got := s.Orders()
	got[0].OrderID = "changed"
	assert.Equal(t, orders[0].OrderID, s.Orders()[0].OrderID)

	_, err = s.Write(ctx, orders, Mode("merge"))
	var pe *PersistenceError
	assert.ErrorAs(t, err, &pe)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = s.Write(cancelled, orders, ModeAppend)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 3, s.Writes())
}
