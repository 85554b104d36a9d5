// Package sink persists finished batches of generated orders.
package sink

import (
	"context"
	"fmt"

	"github.com/matthieukhl/ordersynth/internal/models"
)

// Mode selects what happens to rows already at the destination.
type Mode string

const (
	ModeReplace Mode = "replace"
	ModeAppend  Mode = "append"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeReplace, ModeAppend:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown write mode %q (want replace or append)", s)
}

// Sink accepts a batch of orders and reports how many were persisted.
type Sink interface {
	Name() string
	Write(ctx context.Context, orders []models.Order, mode Mode) (int, error)
	Close() error
}

// Inspector is implemented by sinks that write to a queryable table.
type Inspector interface {
	CountRows(ctx context.Context) (int64, error)
	Columns(ctx context.Context) ([]string, error)
}

// PersistenceError is returned by every sink when a write fails. Nothing is
// retried and the orders are not regenerated.
type PersistenceError struct {
	Sink string
	Op   string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s sink: %s: %v", e.Sink, e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
