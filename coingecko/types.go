package coingecko

// HistoryResponse is the subset of the coins/{id}/history payload the
// backfill engine consumes. CurrentPrice values are pointers because
// the API returns null for currencies it has no data for.
type HistoryResponse struct {
	ID         string      `json:"id"`
	MarketData *MarketData `json:"market_data"`
}

// MarketData holds the nested price mapping for a historical day
type MarketData struct {
	CurrentPrice map[string]*float64 `json:"current_price"`
}
