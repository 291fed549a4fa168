package backfill

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/time/rate"

	"github.com/status-im/fiatprices/config"
	"github.com/status-im/fiatprices/interfaces"
	"github.com/status-im/fiatprices/metrics"
	"github.com/status-im/fiatprices/scheduler"
)

// Service is the historical backfill engine. For each configured market
// it walks backward day by day from today to the market's earliest
// tracked day, fetches days absent from the store and persists either
// the fetched values or a gap marker.
//
// The walk is intentionally single-threaded: markets strictly one after
// another, days strictly newest to oldest within a market. The pacing
// between source requests exists because the source rate-limits
// globally, not because of any local resource constraint, so
// parallelizing would only trade fetch errors for speed.
type Service struct {
	store      interfaces.PriceStore
	source     interfaces.PriceSource
	metrics    *metrics.Metrics
	markets    []config.Market
	currencies []string
	noGaps     bool
	limiter    *rate.Limiter

	rerunInterval time.Duration
	rerun         *scheduler.Scheduler

	// now is swappable for tests
	now func() time.Time
}

// NewService creates a backfill engine over the given store and source
func NewService(store interfaces.PriceStore, source interfaces.PriceSource, m *metrics.Metrics, cfg *config.Config) *Service {
	return &Service{
		store:         store,
		source:        source,
		metrics:       m,
		markets:       cfg.ParsedMarkets(),
		currencies:    cfg.Currencies,
		noGaps:        cfg.Backfill.NoGaps,
		limiter:       rate.NewLimiter(rate.Every(cfg.Backfill.RequestInterval), 1),
		rerunInterval: cfg.Backfill.RerunInterval,
		now:           time.Now,
	}
}

// Start bootstraps the store, runs one backfill to convergence and
// then keeps re-running on the configured interval. The first run is
// synchronous, so a registry starting this service before the API
// server guarantees the store is converged before reads are served.
func (s *Service) Start(ctx context.Context) error {
	if err := s.Bootstrap(ctx); err != nil {
		return err
	}
	if err := s.Run(ctx); err != nil {
		return err
	}

	if s.rerunInterval > 0 {
		s.rerun = scheduler.New(s.rerunInterval, func(ctx context.Context) {
			if err := s.Run(ctx); err != nil {
				log.Printf("Backfill: periodic run failed: %v", err)
			}
		})
		s.rerun.Start(ctx, false)
	}
	return nil
}

func (s *Service) Stop() {
	if s.rerun != nil {
		s.rerun.Stop()
	}
}

// Bootstrap ensures every market's table exists. Must complete for all
// markets before any backfill starts; a failure here is fatal because
// backfilling against a missing table risks silent data loss.
func (s *Service) Bootstrap(ctx context.Context) error {
	for _, market := range s.markets {
		if err := s.store.CreateTableIfAbsent(ctx, market.Name, s.currencies); err != nil {
			return fmt.Errorf("bootstrap %s: %w", market.Name, err)
		}
	}
	return nil
}

// Run walks every market once to convergence. Source failures are
// handled per day and never abort the run; store failures do.
func (s *Service) Run(ctx context.Context) error {
	start := time.Now()

	for _, market := range s.markets {
		if err := s.backfillMarket(ctx, market); err != nil {
			return err
		}
	}

	s.metrics.RecordBackfillRun(start)
	return nil
}

// backfillMarket scans one market newest to oldest, so the most recent
// (most valuable) days are resolved first if the process is interrupted
func (s *Service) backfillMarket(ctx context.Context, market config.Market) error {
	today := truncateToDay(s.now())
	earliest := truncateToDay(market.Earliest)

	filled, scanned := 0, 0
	for day := today; !day.Before(earliest); day = day.AddDate(0, 0, -1) {
		scanned++

		has, err := s.store.HasRecord(ctx, market.Name, day)
		if err != nil {
			return fmt.Errorf("scan %s at %s: %w", market.Name, day.Format("2006-01-02"), err)
		}
		if has {
			// Stored days advance the cursor without any network call
			continue
		}

		// One request per configured interval; the source rejects
		// anything faster
		if err := s.limiter.Wait(ctx); err != nil {
			return err
		}

		log.Printf("Backfill: missing price for %s: %s", market.Name, day.Format("2006-01-02"))
		if err := s.resolveDay(ctx, market.Name, day); err != nil {
			return err
		}
		filled++
	}

	log.Printf("Backfill: %s done, scanned %d days, resolved %d", market.Name, scanned, filled)
	return nil
}

// resolveDay turns one missing day into a stored record. A failed fetch
// is skipped (retried on a future run) or, in no-gaps mode, recorded as
// a gap marker so the day is never re-attempted. Only store errors
// propagate.
func (s *Service) resolveDay(ctx context.Context, market string, day time.Time) error {
	prices, err := s.source.HistoricalPrices(ctx, market, day, s.currencies)
	if err != nil {
		s.metrics.BackfillFetchErrors.WithLabelValues(market).Inc()

		if !s.noGaps {
			log.Printf("Backfill: skipping %s %s: %v", market, day.Format("2006-01-02"), err)
			return nil
		}

		log.Printf("Backfill: writing gap marker for %s %s: %v", market, day.Format("2006-01-02"), err)
		if err := s.store.InsertIfAbsent(ctx, market, day, s.gapMarker()); err != nil {
			return fmt.Errorf("persist gap marker for %s at %s: %w", market, day.Format("2006-01-02"), err)
		}
		s.metrics.BackfillGapMarkers.WithLabelValues(market).Inc()
		return nil
	}

	if err := s.store.InsertIfAbsent(ctx, market, day, prices); err != nil {
		return fmt.Errorf("persist %s at %s: %w", market, day.Format("2006-01-02"), err)
	}
	s.metrics.BackfillDaysFilled.WithLabelValues(market).Inc()
	return nil
}

// gapMarker builds a record with the no-data sentinel for every
// configured currency
func (s *Service) gapMarker() interfaces.Prices {
	marker := make(interfaces.Prices, len(s.currencies))
	for _, currency := range s.currencies {
		marker[currency] = interfaces.NoData
	}
	return marker
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
