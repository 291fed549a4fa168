package snapshot

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/status-im/fiatprices/cache"
	"github.com/status-im/fiatprices/coingecko"
	"github.com/status-im/fiatprices/config"
	"github.com/status-im/fiatprices/events"
	"github.com/status-im/fiatprices/interfaces"
	"github.com/status-im/fiatprices/scheduler"
)

// emptyPayload is served when no current prices were ever fetched
var emptyPayload = []byte("{}")

// Service serves the current price snapshot for all configured markets.
// The raw source payload is cached under the request URL for a fixed
// TTL; while a cached payload is fresh the source is never contacted.
// On a failed refresh the last successful payload is served instead, so
// readers always get an answer, possibly a stale one.
type Service struct {
	source     interfaces.PriceSource
	cache      cache.Cache
	markets    []string
	currencies []string
	ttl        time.Duration
	cacheKey   string

	// warmer keeps the snapshot fresh without read traffic so the
	// price gauges never go stale
	refreshInterval time.Duration
	warmer          *scheduler.Scheduler

	subs *events.SubscriptionManager

	lastGoodLock sync.RWMutex
	lastGood     []byte
}

// NewService creates a snapshot service over the given source and cache
func NewService(source interfaces.PriceSource, priceCache cache.Cache, cfg *config.Config) *Service {
	markets := make([]string, 0, len(cfg.Markets))
	for _, market := range cfg.ParsedMarkets() {
		markets = append(markets, market.Name)
	}

	// The key is the request URL the fetch resolves to, so changing the
	// configured base URL, markets or currencies naturally invalidates
	// the cache
	cacheKey := coingecko.NewCurrentRequestBuilder(coingecko.APIBaseURL(cfg)).
		WithMarkets(markets).
		WithCurrencies(cfg.Currencies).
		BuildURL()

	return &Service{
		source:          source,
		cache:           priceCache,
		markets:         markets,
		currencies:      cfg.Currencies,
		ttl:             cfg.Snapshot.TTL,
		cacheKey:        cacheKey,
		refreshInterval: cfg.Snapshot.RefreshInterval,
		subs:            events.NewSubscriptionManager(),
	}
}

// Start launches the periodic warmer when one is configured
func (s *Service) Start(ctx context.Context) error {
	if s.refreshInterval > 0 {
		s.warmer = scheduler.New(s.refreshInterval, func(ctx context.Context) {
			if err := s.Refresh(ctx); err != nil {
				log.Printf("Snapshot: periodic refresh failed: %v", err)
			}
		})
		s.warmer.Start(ctx, true)
	}
	return nil
}

func (s *Service) Stop() {
	if s.warmer != nil {
		s.warmer.Stop()
	}
}

// CurrentPrices returns the raw current prices payload. The result is
// cached; an expired cache triggers one source fetch. This never fails:
// a failed fetch falls back to the last good payload or to an empty
// object.
func (s *Service) CurrentPrices(ctx context.Context) []byte {
	payload, err := s.cache.GetOrLoad(s.cacheKey, func() ([]byte, error) {
		return s.refresh(ctx)
	}, s.ttl)
	if err != nil {
		log.Printf("Snapshot: serving fallback payload: %v", err)
		return s.fallback()
	}
	return payload
}

// Refresh forces a source fetch and cache update regardless of TTL.
// Used by the periodic warmer so metrics stay current even without
// read traffic.
func (s *Service) Refresh(ctx context.Context) error {
	payload, err := s.refresh(ctx)
	if err != nil {
		return err
	}
	s.cache.Set(s.cacheKey, payload, s.ttl)
	return nil
}

func (s *Service) refresh(ctx context.Context) ([]byte, error) {
	payload, err := s.source.CurrentPrices(ctx, s.markets, s.currencies)
	if err != nil {
		return nil, err
	}

	s.lastGoodLock.Lock()
	s.lastGood = payload
	s.lastGoodLock.Unlock()

	s.subs.Emit(ctx)
	return payload, nil
}

func (s *Service) fallback() []byte {
	s.lastGoodLock.RLock()
	defer s.lastGoodLock.RUnlock()
	if s.lastGood != nil {
		return s.lastGood
	}
	return emptyPayload
}

// Healthy reports whether at least one snapshot was ever fetched
func (s *Service) Healthy() bool {
	s.lastGoodLock.RLock()
	defer s.lastGoodLock.RUnlock()
	return s.lastGood != nil
}

// SubscribeUpdates returns a subscription signalled after every
// successful refresh
func (s *Service) SubscribeUpdates() *events.Subscription {
	return s.subs.Subscribe()
}

// Prices parses the current snapshot into market -> currency -> value.
// A payload that does not parse yields an empty map rather than an
// error, the raw payload endpoints are unaffected by it.
func (s *Service) Prices(ctx context.Context) map[string]map[string]float64 {
	var prices map[string]map[string]float64
	if err := json.Unmarshal(s.CurrentPrices(ctx), &prices); err != nil {
		log.Printf("Snapshot: payload does not parse as prices: %v", err)
		return map[string]map[string]float64{}
	}
	return prices
}
