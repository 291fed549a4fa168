package snapshot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/status-im/fiatprices/cache"
	"github.com/status-im/fiatprices/config"
	mock_interfaces "github.com/status-im/fiatprices/interfaces/mocks"
)

func testConfig(ttl time.Duration) *config.Config {
	return &config.Config{
		Markets:    []string{"bitcoin", "ethereum"},
		Currencies: []string{"usd", "eur"},
		Snapshot:   config.SnapshotConfig{TTL: ttl},
	}
}

func newTestService(t *testing.T, ttl time.Duration) (*Service, *mock_interfaces.MockPriceSource) {
	t.Helper()
	ctrl := gomock.NewController(t)
	source := mock_interfaces.NewMockPriceSource(ctrl)
	priceCache := cache.NewService(ttl, 0)
	require.NoError(t, priceCache.Start(context.Background()))
	t.Cleanup(priceCache.Stop)
	return NewService(source, priceCache, testConfig(ttl)), source
}

func TestCurrentPricesCachesPayload(t *testing.T) {
	service, source := newTestService(t, time.Minute)
	payload := []byte(`{"bitcoin":{"usd":42000,"eur":39000}}`)

	// A single fetch serves any number of reads within the TTL
	source.EXPECT().
		CurrentPrices(gomock.Any(), []string{"bitcoin", "ethereum"}, []string{"usd", "eur"}).
		Return(payload, nil).
		Times(1)

	assert.Equal(t, payload, service.CurrentPrices(context.Background()))
	assert.Equal(t, payload, service.CurrentPrices(context.Background()))
	assert.True(t, service.Healthy())
}

func TestCurrentPricesFallsBackToLastGood(t *testing.T) {
	service, source := newTestService(t, time.Nanosecond)
	payload := []byte(`{"bitcoin":{"usd":42000}}`)

	source.EXPECT().
		CurrentPrices(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(payload, nil)
	assert.Equal(t, payload, service.CurrentPrices(context.Background()))

	time.Sleep(time.Millisecond)

	// The refresh fails but the reader still gets the previous payload
	source.EXPECT().
		CurrentPrices(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("upstream down"))
	assert.Equal(t, payload, service.CurrentPrices(context.Background()))
}

func TestCurrentPricesEmptyObjectWhenNeverFetched(t *testing.T) {
	service, source := newTestService(t, time.Minute)

	source.EXPECT().
		CurrentPrices(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("upstream down"))

	assert.Equal(t, []byte("{}"), service.CurrentPrices(context.Background()))
	assert.False(t, service.Healthy())
}

func TestRefreshEmitsUpdateEvent(t *testing.T) {
	service, source := newTestService(t, time.Minute)

	sub := service.SubscribeUpdates()
	defer sub.Cancel()

	source.EXPECT().
		CurrentPrices(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]byte(`{"bitcoin":{"usd":42000}}`), nil)
	require.NoError(t, service.Refresh(context.Background()))

	select {
	case <-sub.Chan():
	case <-time.After(time.Second):
		t.Fatal("no update event after successful refresh")
	}
}

func TestRefreshErrorDoesNotEmit(t *testing.T) {
	service, source := newTestService(t, time.Minute)

	sub := service.SubscribeUpdates()
	defer sub.Cancel()

	source.EXPECT().
		CurrentPrices(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("upstream down"))
	require.Error(t, service.Refresh(context.Background()))

	select {
	case <-sub.Chan():
		t.Fatal("unexpected update event after failed refresh")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestCacheKeyFollowsConfiguredBaseURL(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mock_interfaces.NewMockPriceSource(ctrl)
	priceCache := cache.NewService(time.Minute, 0)

	cfg := testConfig(time.Minute)
	cfg.OverrideCoingeckoURL = "http://localhost:9999"

	service := NewService(source, priceCache, cfg)

	// The key is the URL the client would actually request, so a base
	// URL change never serves a stale payload from another host
	assert.Contains(t, service.cacheKey, "http://localhost:9999/")

	other := NewService(source, priceCache, testConfig(time.Minute))
	assert.NotEqual(t, service.cacheKey, other.cacheKey)
}

func TestPricesParsesSnapshot(t *testing.T) {
	service, source := newTestService(t, time.Minute)

	source.EXPECT().
		CurrentPrices(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]byte(`{"bitcoin":{"usd":42000.5,"eur":39000.25}}`), nil)

	prices := service.Prices(context.Background())
	assert.Equal(t, 42000.5, prices["bitcoin"]["usd"])
	assert.Equal(t, 39000.25, prices["bitcoin"]["eur"])
}

func TestPricesToleratesMalformedPayload(t *testing.T) {
	service, source := newTestService(t, time.Minute)

	// Valid JSON object but not a price map
	source.EXPECT().
		CurrentPrices(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]byte(`{"bitcoin":"unavailable"}`), nil).
		AnyTimes()

	assert.Empty(t, service.Prices(context.Background()))
}
