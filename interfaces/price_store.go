package interfaces

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mocks/price_store.go . PriceStore

// NoData is the sentinel stored for every currency of a day the source
// had no data for, distinguishing "source empty" from "not yet fetched"
const NoData float64 = -1

// PriceStore persists one complete price record per (market, day) pair.
// Writes are insert-if-absent: an existing record is never overwritten.
type PriceStore interface {
	// CreateTableIfAbsent ensures the per-market table exists with one
	// column per currency plus the day key. Idempotent.
	CreateTableIfAbsent(ctx context.Context, market string, currencies []string) error

	// HasRecord reports whether a record exists for the given day
	HasRecord(ctx context.Context, market string, day time.Time) (bool, error)

	// InsertIfAbsent stores a record for the given day unless one
	// already exists; inserting over an existing record is a no-op
	InsertIfAbsent(ctx context.Context, market string, day time.Time, prices Prices) error

	// GetRecord returns the prices stored for the given day; a missing
	// day yields an empty Prices map, not an error
	GetRecord(ctx context.Context, market string, day time.Time, currencies []string) (Prices, error)

	// GetRange returns records for days in [from, to], keyed by
	// YYYY-MM-DD; days with no record are absent from the result
	GetRange(ctx context.Context, market string, from, to time.Time, currencies []string) (DailyPrices, error)
}
