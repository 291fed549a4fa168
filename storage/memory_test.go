package storage

import (
	"context"
	"testing"
	"time"

	"github.com/status-im/fiatprices/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMemoryStore_InsertIfAbsent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.CreateTableIfAbsent(ctx, "bitcoin", []string{"usd", "eur"}))

	d := day(2024, 1, 2)
	require.NoError(t, store.InsertIfAbsent(ctx, "bitcoin", d, interfaces.Prices{"usd": 42000, "eur": 38000}))

	// Inserting different values for the same day must not alter the original
	require.NoError(t, store.InsertIfAbsent(ctx, "bitcoin", d, interfaces.Prices{"usd": 1, "eur": 2}))

	prices, err := store.GetRecord(ctx, "bitcoin", d, []string{"usd", "eur"})
	require.NoError(t, err)
	assert.Equal(t, 42000.0, prices["usd"])
	assert.Equal(t, 38000.0, prices["eur"])
	assert.Equal(t, 1, store.RecordCount("bitcoin"))
}

func TestMemoryStore_HasRecord(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.CreateTableIfAbsent(ctx, "bitcoin", []string{"usd"}))

	has, err := store.HasRecord(ctx, "bitcoin", day(2024, 1, 2))
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, store.InsertIfAbsent(ctx, "bitcoin", day(2024, 1, 2), interfaces.Prices{"usd": 1}))

	has, err = store.HasRecord(ctx, "bitcoin", day(2024, 1, 2))
	require.NoError(t, err)
	assert.True(t, has)

	// Time-of-day does not matter, only the calendar day
	has, err = store.HasRecord(ctx, "bitcoin", day(2024, 1, 2).Add(15*time.Hour))
	require.NoError(t, err)
	assert.True(t, has)
}

func TestMemoryStore_MissingTable(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.HasRecord(ctx, "unknown", day(2024, 1, 2))
	assert.Error(t, err)

	err = store.InsertIfAbsent(ctx, "unknown", day(2024, 1, 2), interfaces.Prices{"usd": 1})
	assert.Error(t, err)
}

func TestMemoryStore_GetRecord_MissingDay(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.CreateTableIfAbsent(ctx, "bitcoin", []string{"usd"}))

	// No row is not an error at the read boundary
	prices, err := store.GetRecord(ctx, "bitcoin", day(2099, 1, 1), []string{"usd"})
	require.NoError(t, err)
	assert.Empty(t, prices)
}

func TestMemoryStore_GetRange(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.CreateTableIfAbsent(ctx, "bitcoin", []string{"usd"}))

	for d := 1; d <= 5; d++ {
		require.NoError(t, store.InsertIfAbsent(ctx, "bitcoin", day(2024, 1, d), interfaces.Prices{"usd": float64(d)}))
	}

	result, err := store.GetRange(ctx, "bitcoin", day(2024, 1, 2), day(2024, 1, 4), []string{"usd"})
	require.NoError(t, err)

	assert.Len(t, result, 3)
	assert.Equal(t, 2.0, result["2024-01-02"]["usd"])
	assert.Equal(t, 4.0, result["2024-01-04"]["usd"])
	assert.NotContains(t, result, "2024-01-01")
	assert.NotContains(t, result, "2024-01-05")
}
