package coingecko

import "github.com/status-im/fiatprices/interfaces"

// NormalizePrices maps a raw nullable price mapping to a complete record
// over the configured currencies: null and missing values become 0, and
// currencies outside the configured set are dropped.
func NormalizePrices(raw map[string]*float64, currencies []string) interfaces.Prices {
	prices := make(interfaces.Prices, len(currencies))
	for _, currency := range currencies {
		if value, ok := raw[currency]; ok && value != nil {
			prices[currency] = *value
		} else {
			prices[currency] = 0
		}
	}
	return prices
}
