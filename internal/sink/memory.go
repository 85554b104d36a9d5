package sink

import (
	"context"
	"fmt"
	"sync"

	"github.com/matthieukhl/ordersynth/internal/models"
)

// MemorySink keeps written orders in memory. It backs dry runs and tests.
type MemorySink struct {
	mu     sync.Mutex
	orders []models.Order
	writes int
}

func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Name() string {
	return "memory"
}

func (s *MemorySink) Write(ctx context.Context, orders []models.Order, mode Mode) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, &PersistenceError{Sink: s.Name(), Op: "write", Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch mode {
	case ModeReplace:
		s.orders = append([]models.Order(nil), orders...)
	case ModeAppend:
		s.orders = append(s.orders, orders...)
	default:
		return 0, &PersistenceError{Sink: s.Name(), Op: "prepare", Err: fmt.Errorf("unknown write mode %q", mode)}
	}
	s.writes++
	return len(orders), nil
}

// Orders returns a copy of everything currently stored.
func (s *MemorySink) Orders() []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Order(nil), s.orders...)
}

// Writes counts successful Write calls.
func (s *MemorySink) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

func (s *MemorySink) CountRows(context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.orders)), nil
}

func (s *MemorySink) Columns(context.Context) ([]string, error) {
	return append([]string(nil), models.Columns...), nil
}

func (s *MemorySink) Close() error {
	return nil
}
