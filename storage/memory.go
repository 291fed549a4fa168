package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/status-im/fiatprices/interfaces"
)

// MemoryStore is an in-memory PriceStore with the same insert-if-absent
// semantics as the Postgres implementation. Used in tests.
type MemoryStore struct {
	mu sync.RWMutex

	// records keyed by market, then by ISO day string
	records map[string]map[string]interfaces.Prices
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]map[string]interfaces.Prices),
	}
}

// CreateTableIfAbsent ensures the per-market record map exists
func (m *MemoryStore) CreateTableIfAbsent(ctx context.Context, market string, currencies []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[market]; !ok {
		m.records[market] = make(map[string]interfaces.Prices)
	}
	return nil
}

func (m *MemoryStore) table(market string) (map[string]interfaces.Prices, error) {
	table, ok := m.records[market]
	if !ok {
		return nil, fmt.Errorf("no table for market %s", market)
	}
	return table, nil
}

// HasRecord reports whether a record exists for the given day
func (m *MemoryStore) HasRecord(ctx context.Context, market string, day time.Time) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	table, err := m.table(market)
	if err != nil {
		return false, err
	}
	_, ok := table[DayKey(day)]
	return ok, nil
}

// InsertIfAbsent stores a record unless the day already has one
func (m *MemoryStore) InsertIfAbsent(ctx context.Context, market string, day time.Time, prices interfaces.Prices) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	table, err := m.table(market)
	if err != nil {
		return err
	}

	key := DayKey(day)
	if _, ok := table[key]; ok {
		return nil
	}

	stored := make(interfaces.Prices, len(prices))
	for currency, value := range prices {
		stored[currency] = value
	}
	table[key] = stored
	return nil
}

// GetRecord returns the prices for the given day, empty when absent
func (m *MemoryStore) GetRecord(ctx context.Context, market string, day time.Time, currencies []string) (interfaces.Prices, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	table, err := m.table(market)
	if err != nil {
		return nil, err
	}

	stored, ok := table[DayKey(day)]
	if !ok {
		return interfaces.Prices{}, nil
	}

	prices := make(interfaces.Prices, len(currencies))
	for _, currency := range currencies {
		prices[currency] = stored[currency]
	}
	return prices, nil
}

// GetRange returns records with day in [from, to] keyed by ISO day
func (m *MemoryStore) GetRange(ctx context.Context, market string, from, to time.Time, currencies []string) (interfaces.DailyPrices, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	table, err := m.table(market)
	if err != nil {
		return nil, err
	}

	fromKey := DayKey(from)
	toKey := DayKey(to)

	result := make(interfaces.DailyPrices)
	for key, stored := range table {
		if key < fromKey || key > toKey {
			continue
		}
		prices := make(interfaces.Prices, len(currencies))
		for _, currency := range currencies {
			prices[currency] = stored[currency]
		}
		result[key] = prices
	}
	return result, nil
}

// RecordCount returns the number of stored records for a market
func (m *MemoryStore) RecordCount(market string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records[market])
}
