package coingecko

import (
	"fmt"
	"strings"
	"time"
)

const (
	// Complete path for simple price API endpoint
	CURRENT_API_PATH = "/api/v3/simple/price"
	// Path template for the single-day history endpoint
	HISTORY_API_PATH = "/api/v3/coins/%s/history"
)

// CurrentRequestBuilder builds simple/price requests
type CurrentRequestBuilder struct {
	*RequestBuilder
}

// NewCurrentRequestBuilder creates a request builder for the simple price endpoint
func NewCurrentRequestBuilder(baseURL string) *CurrentRequestBuilder {
	return &CurrentRequestBuilder{
		RequestBuilder: NewRequestBuilder(baseURL, CURRENT_API_PATH),
	}
}

// WithMarkets adds the ids parameter
func (rb *CurrentRequestBuilder) WithMarkets(markets []string) *CurrentRequestBuilder {
	rb.With("ids", strings.Join(markets, ","))
	return rb
}

// WithCurrencies adds the vs_currencies parameter
func (rb *CurrentRequestBuilder) WithCurrencies(currencies []string) *CurrentRequestBuilder {
	rb.With("vs_currencies", strings.Join(currencies, ","))
	return rb
}

// HistoryRequestBuilder builds coins/{id}/history requests
type HistoryRequestBuilder struct {
	*RequestBuilder
}

// NewHistoryRequestBuilder creates a request builder for the history endpoint
func NewHistoryRequestBuilder(baseURL, market string) *HistoryRequestBuilder {
	return &HistoryRequestBuilder{
		RequestBuilder: NewRequestBuilder(baseURL, fmt.Sprintf(HISTORY_API_PATH, market)),
	}
}

// WithDay adds the date parameter; the endpoint expects DD-MM-YYYY
func (rb *HistoryRequestBuilder) WithDay(day time.Time) *HistoryRequestBuilder {
	rb.With("date", day.UTC().Format("02-01-2006"))
	return rb
}

// WithoutLocalization drops localized names from the payload
func (rb *HistoryRequestBuilder) WithoutLocalization() *HistoryRequestBuilder {
	rb.With("localization", "false")
	return rb
}
