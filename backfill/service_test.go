package backfill

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/status-im/fiatprices/config"
	"github.com/status-im/fiatprices/interfaces"
	mock_interfaces "github.com/status-im/fiatprices/interfaces/mocks"
	"github.com/status-im/fiatprices/metrics"
	"github.com/status-im/fiatprices/storage"
)

func day(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func testConfig(noGaps bool, markets ...string) *config.Config {
	return &config.Config{
		Markets:    markets,
		Currencies: []string{"usd", "eur"},
		Backfill: config.BackfillConfig{
			Enabled:         true,
			NoGaps:          noGaps,
			RequestInterval: time.Microsecond,
		},
	}
}

func newTestService(t *testing.T, cfg *config.Config, source interfaces.PriceSource, today string) (*Service, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	service := NewService(store, source, metrics.New(), cfg)
	service.now = func() time.Time { return day(today) }
	require.NoError(t, service.Bootstrap(context.Background()))
	return service, store
}

func TestRunFillsAllMissingDays(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mock_interfaces.NewMockPriceSource(ctrl)
	source.EXPECT().
		HistoricalPrices(gomock.Any(), "bitcoin", gomock.Any(), gomock.Any()).
		Return(interfaces.Prices{"usd": 42000.0, "eur": 39000.0}, nil).
		Times(3)

	cfg := testConfig(false, "bitcoin:2024-01-01")
	service, store := newTestService(t, cfg, source, "2024-01-03")

	require.NoError(t, service.Run(context.Background()))

	assert.Equal(t, 3, store.RecordCount("bitcoin"))
	for _, d := range []string{"2024-01-01", "2024-01-02", "2024-01-03"} {
		prices, err := store.GetRecord(context.Background(), "bitcoin", day(d), cfg.Currencies)
		require.NoError(t, err)
		assert.Equal(t, 42000.0, prices["usd"], d)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mock_interfaces.NewMockPriceSource(ctrl)
	// Exactly one fetch per day across both runs: the second run finds
	// every day stored and never touches the source
	source.EXPECT().
		HistoricalPrices(gomock.Any(), "bitcoin", gomock.Any(), gomock.Any()).
		Return(interfaces.Prices{"usd": 42000.0, "eur": 39000.0}, nil).
		Times(3)

	service, store := newTestService(t, testConfig(false, "bitcoin:2024-01-01"), source, "2024-01-03")

	require.NoError(t, service.Run(context.Background()))
	require.NoError(t, service.Run(context.Background()))

	assert.Equal(t, 3, store.RecordCount("bitcoin"))
}

func TestRunEarliestIsToday(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mock_interfaces.NewMockPriceSource(ctrl)
	source.EXPECT().
		HistoricalPrices(gomock.Any(), "bitcoin", day("2024-01-03"), gomock.Any()).
		Return(interfaces.Prices{"usd": 42000.0, "eur": 39000.0}, nil).
		Times(1)

	service, store := newTestService(t, testConfig(false, "bitcoin:2024-01-03"), source, "2024-01-03")

	require.NoError(t, service.Run(context.Background()))
	assert.Equal(t, 1, store.RecordCount("bitcoin"))
}

func TestRunEarliestInFuture(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mock_interfaces.NewMockPriceSource(ctrl)
	// no source calls at all

	service, store := newTestService(t, testConfig(false, "bitcoin:2024-06-01"), source, "2024-01-03")

	require.NoError(t, service.Run(context.Background()))
	assert.Equal(t, 0, store.RecordCount("bitcoin"))
}

func TestRunSkipsFailedDaysByDefault(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mock_interfaces.NewMockPriceSource(ctrl)
	source.EXPECT().
		HistoricalPrices(gomock.Any(), "bitcoin", day("2024-01-03"), gomock.Any()).
		Return(interfaces.Prices{"usd": 42000.0, "eur": 39000.0}, nil)
	source.EXPECT().
		HistoricalPrices(gomock.Any(), "bitcoin", day("2024-01-02"), gomock.Any()).
		Return(nil, errors.New("rate limited"))
	source.EXPECT().
		HistoricalPrices(gomock.Any(), "bitcoin", day("2024-01-01"), gomock.Any()).
		Return(interfaces.Prices{"usd": 41000.0, "eur": 38000.0}, nil)

	cfg := testConfig(false, "bitcoin:2024-01-01")
	service, store := newTestService(t, cfg, source, "2024-01-03")

	require.NoError(t, service.Run(context.Background()))

	// The failed day is left missing, so a later run re-attempts it
	assert.Equal(t, 2, store.RecordCount("bitcoin"))
	has, err := store.HasRecord(context.Background(), "bitcoin", day("2024-01-02"))
	require.NoError(t, err)
	assert.False(t, has)
}

func TestRunNoGapsWritesMarkers(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mock_interfaces.NewMockPriceSource(ctrl)
	source.EXPECT().
		HistoricalPrices(gomock.Any(), "bitcoin", day("2024-01-03"), gomock.Any()).
		Return(interfaces.Prices{"usd": 42000.0, "eur": 39000.0}, nil)
	source.EXPECT().
		HistoricalPrices(gomock.Any(), "bitcoin", day("2024-01-02"), gomock.Any()).
		Return(nil, errors.New("upstream down"))
	source.EXPECT().
		HistoricalPrices(gomock.Any(), "bitcoin", day("2024-01-01"), gomock.Any()).
		Return(nil, errors.New("upstream down"))

	cfg := testConfig(true, "bitcoin:2024-01-01")
	service, store := newTestService(t, cfg, source, "2024-01-03")

	require.NoError(t, service.Run(context.Background()))

	// Every scanned day has a record, failed ones carry the sentinel
	assert.Equal(t, 3, store.RecordCount("bitcoin"))
	prices, err := store.GetRecord(context.Background(), "bitcoin", day("2024-01-02"), cfg.Currencies)
	require.NoError(t, err)
	assert.Equal(t, interfaces.NoData, prices["usd"])
	assert.Equal(t, interfaces.NoData, prices["eur"])

	assert.Equal(t, 2.0, testutil.ToFloat64(service.metrics.BackfillGapMarkers.WithLabelValues("bitcoin")))
	assert.Equal(t, 2.0, testutil.ToFloat64(service.metrics.BackfillFetchErrors.WithLabelValues("bitcoin")))
	assert.Equal(t, 1.0, testutil.ToFloat64(service.metrics.BackfillDaysFilled.WithLabelValues("bitcoin")))

	// Gap markers are permanent: a second run never re-fetches them
	require.NoError(t, service.Run(context.Background()))
}

func TestRunStoreErrorIsFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mock_interfaces.NewMockPriceSource(ctrl)

	store := mock_interfaces.NewMockPriceStore(ctrl)
	store.EXPECT().
		HasRecord(gomock.Any(), "bitcoin", gomock.Any()).
		Return(false, errors.New("connection refused"))

	service := NewService(store, source, metrics.New(), testConfig(false, "bitcoin:2024-01-01"))
	service.now = func() time.Time { return day("2024-01-03") }

	err := service.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestRunMultipleMarketsSequential(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mock_interfaces.NewMockPriceSource(ctrl)
	ethereum := source.EXPECT().
		HistoricalPrices(gomock.Any(), "ethereum", gomock.Any(), gomock.Any()).
		Return(interfaces.Prices{"usd": 2500.0, "eur": 2300.0}, nil).
		Times(2)
	source.EXPECT().
		HistoricalPrices(gomock.Any(), "bitcoin", gomock.Any(), gomock.Any()).
		Return(interfaces.Prices{"usd": 42000.0, "eur": 39000.0}, nil).
		Times(2).
		After(ethereum)

	cfg := testConfig(false, "ethereum:2024-01-02", "bitcoin:2024-01-02")
	service, store := newTestService(t, cfg, source, "2024-01-03")

	require.NoError(t, service.Run(context.Background()))
	assert.Equal(t, 2, store.RecordCount("ethereum"))
	assert.Equal(t, 2, store.RecordCount("bitcoin"))
}

func TestInsertIfAbsentPreservesExisting(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mock_interfaces.NewMockPriceSource(ctrl)
	source.EXPECT().
		HistoricalPrices(gomock.Any(), "bitcoin", day("2024-01-02"), gomock.Any()).
		Return(interfaces.Prices{"usd": 99999.0, "eur": 99999.0}, nil)

	cfg := testConfig(false, "bitcoin:2024-01-01")
	service, store := newTestService(t, cfg, source, "2024-01-02")

	// Pre-seeded value survives even if a concurrent writer landed first
	require.NoError(t, store.InsertIfAbsent(context.Background(), "bitcoin",
		day("2024-01-01"), interfaces.Prices{"usd": 41000.0, "eur": 38000.0}))

	require.NoError(t, service.Run(context.Background()))

	prices, err := store.GetRecord(context.Background(), "bitcoin", day("2024-01-01"), cfg.Currencies)
	require.NoError(t, err)
	assert.Equal(t, 41000.0, prices["usd"])
}
