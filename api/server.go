package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/status-im/fiatprices/config"
	"github.com/status-im/fiatprices/interfaces"
	"github.com/status-im/fiatprices/metrics"
	"github.com/status-im/fiatprices/snapshot"
)

type Server struct {
	port       string
	store      interfaces.PriceStore
	snapshot   *snapshot.Service
	metrics    *metrics.Metrics
	markets    map[string]struct{}
	currencies []string
	server     *http.Server

	// now is swappable for tests
	now func() time.Time
}

func New(cfg *config.Config, store interfaces.PriceStore, snapshotService *snapshot.Service, m *metrics.Metrics) *Server {
	markets := make(map[string]struct{}, len(cfg.Markets))
	for _, market := range cfg.ParsedMarkets() {
		markets[market.Name] = struct{}{}
	}

	return &Server{
		port:       cfg.API.Port,
		store:      store,
		snapshot:   snapshotService,
		metrics:    m,
		markets:    markets,
		currencies: cfg.Currencies,
		now:        time.Now,
	}
}

// router wires all routes; split out so tests can drive handlers
// without a listening socket
func (s *Server) router() *mux.Router {
	router := mux.NewRouter()
	router.Use(requestLogger)

	router.HandleFunc("/health", s.handleHealth).Methods("GET")
	router.Handle("/metrics", s.metrics.Handler()).Methods("GET")

	router.HandleFunc("/api/current", s.handleCurrent).Methods("GET")
	router.HandleFunc("/api/{market}/at/{date}", s.handleDay).Methods("GET")
	router.HandleFunc("/api/{market}/from/{from}/to/{to}", s.handleRange).Methods("GET")

	return router
}

func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:    ":" + s.port,
		Handler: s.router(),
	}

	log.Printf("Server starting at http://localhost:%s", s.port)
	log.Println("Prometheus metrics available at /metrics endpoint")

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	return nil
}

// Stop gracefully shuts down the server
func (s *Server) Stop() {
	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.server.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down server: %v", err)
		}
	}
}
