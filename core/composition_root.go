package core

import (
	"context"

	"github.com/status-im/fiatprices/api"
	"github.com/status-im/fiatprices/backfill"
	"github.com/status-im/fiatprices/cache"
	"github.com/status-im/fiatprices/coingecko"
	"github.com/status-im/fiatprices/config"
	"github.com/status-im/fiatprices/metrics"
	"github.com/status-im/fiatprices/snapshot"
	"github.com/status-im/fiatprices/storage"
)

// Setup creates and registers all services. Registration order is
// start order: the backfill engine runs to convergence before the API
// server begins serving reads.
func Setup(ctx context.Context, cfg *config.Config) (*Registry, error) {
	registry := NewRegistry()

	// Create Cache service
	cacheService := cache.NewService(cfg.Snapshot.TTL, 0)
	registry.Register(cacheService)

	// One Metrics instance per process, passed to everything that records
	m := metrics.New()

	// Separate source clients so request metrics are labeled per consumer
	snapshotClient := coingecko.NewClient(cfg, metrics.NewMetricsWriter(m, metrics.ServiceSnapshot))
	backfillClient := coingecko.NewClient(cfg, metrics.NewMetricsWriter(m, metrics.ServiceBackfill))

	// Connect the price store; the pool is shared between backfill and API
	store, err := storage.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	// Registered early so StopAll closes the pool after its consumers
	registry.Register(&storeService{store: store})

	// Create the current snapshot service with cache dependency
	snapshotService := snapshot.NewService(snapshotClient, cacheService, cfg)
	registry.Register(snapshotService)

	// Price gauges follow snapshot refreshes
	snapshotService.SubscribeUpdates().Watch(ctx, func() {
		m.RecordPrices(snapshotService.Prices(ctx))
	}, false)

	if cfg.Backfill.Enabled {
		backfillService := backfill.NewService(store, backfillClient, m, cfg)
		registry.Register(backfillService)
	}

	if cfg.API.Enabled {
		server := api.New(cfg, store, snapshotService, m)
		registry.Register(server)
	}

	return registry, nil
}

// storeService adapts the connection pool to the service lifecycle
type storeService struct {
	store *storage.PostgresStore
}

func (s *storeService) Start(ctx context.Context) error { return nil }

func (s *storeService) Stop() { s.store.Close() }
