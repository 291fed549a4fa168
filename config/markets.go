package config

import (
	"log"
	"strings"
	"time"
)

// Market is a tracked asset together with the earliest day backfill
// will ever attempt for it. Immutable after config load.
type Market struct {
	Name     string
	Earliest time.Time
}

// ParseMarket parses a market spec of the form "name" or "name:YYYY-MM-DD".
// A missing or unparsable date falls back to January 1 of the current year.
func ParseMarket(spec string) Market {
	now := time.Now().UTC()
	startOfYear := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)

	name, dateStr, found := strings.Cut(spec, ":")
	name = strings.TrimSpace(name)
	if !found {
		return Market{Name: name, Earliest: startOfYear}
	}

	earliest, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(dateStr), time.UTC)
	if err != nil {
		log.Printf("Config: invalid earliest date in market spec %q: %v, falling back to %s",
			spec, err, startOfYear.Format("2006-01-02"))
		return Market{Name: name, Earliest: startOfYear}
	}

	return Market{Name: name, Earliest: earliest}
}
