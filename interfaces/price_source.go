package interfaces

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mocks/price_source.go . PriceSource

// Prices maps a currency code to a price value
type Prices map[string]float64

// DailyPrices maps an ISO-8601 day (YYYY-MM-DD) to its prices.
// JSON marshaling keeps the keys sorted, so serialized ranges are
// chronological.
type DailyPrices map[string]Prices

// PriceSource answers current and single-day historical price queries
// against an external provider. Calls are plain request/response with a
// short timeout and no retries; failure policy belongs to the caller.
type PriceSource interface {
	// CurrentPrices returns the raw provider payload mapping
	// market -> currency -> price for the given markets and currencies
	CurrentPrices(ctx context.Context, markets, currencies []string) ([]byte, error)

	// HistoricalPrices returns normalized prices for one market on one
	// calendar day: every requested currency is present, with 0 for
	// values the provider omitted or returned as null
	HistoricalPrices(ctx context.Context, market string, day time.Time, currencies []string) (Prices, error)
}
