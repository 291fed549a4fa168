package storage

import (
	"sort"
	"time"

	"github.com/status-im/fiatprices/interfaces"
)

// truncateToDay drops the time-of-day component, keeping the UTC date
func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DayKey formats a time as the ISO day string used for range results
func DayKey(t time.Time) string {
	return truncateToDay(t).Format("2006-01-02")
}

func sortedCurrencies(prices interfaces.Prices) []string {
	currencies := make([]string, 0, len(prices))
	for currency := range prices {
		currencies = append(currencies, currency)
	}
	sort.Strings(currencies)
	return currencies
}
