package api

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/status-im/fiatprices/interfaces"
)

// dayResponse is the single-day record shape, keyed by market so
// clients can merge responses for different markets
type dayResponse struct {
	Markets map[string]interfaces.Prices `json:"markets"`
}

func newDayResponse(market string, prices interfaces.Prices) dayResponse {
	return dayResponse{Markets: map[string]interfaces.Prices{market: prices}}
}

// handleCurrent serves the raw current snapshot payload. Best effort:
// on source trouble the snapshot service falls back to the last good
// payload, so this endpoint never fails.
func (s *Server) handleCurrent(w http.ResponseWriter, r *http.Request) {
	s.sendRawJSON(w, s.snapshot.CurrentPrices(r.Context()))
}

// handleDay serves one day's record. Today's date is answered from the
// current snapshot since the store only holds completed days.
func (s *Server) handleDay(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	market := vars["market"]
	date := vars["date"]

	// Only configured markets have tables; everything else is a
	// client error, not a store failure
	if _, configured := s.markets[market]; !configured {
		s.sendErrorResponse(w, http.StatusBadRequest, "no such market")
		return
	}

	if date == s.now().UTC().Format("2006-01-02") {
		s.handleToday(w, r, market)
		return
	}

	day, err := parseDay(date)
	if err != nil {
		s.sendErrorResponse(w, http.StatusBadRequest, fmt.Sprintf("invalid date: %v", err))
		return
	}

	// Days the backfill never reached come back as an empty record,
	// a missing row is not an error at the read boundary
	prices, err := s.store.GetRecord(r.Context(), market, day, s.currencies)
	if err != nil {
		s.sendErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.sendJSONResponse(w, newDayResponse(market, prices))
}

// handleToday answers a single-day request for the current date from
// the snapshot. The market is already validated; one missing from a
// degraded snapshot gets an empty record instead of a failure.
func (s *Server) handleToday(w http.ResponseWriter, r *http.Request, market string) {
	snapshotPrices := s.snapshot.Prices(r.Context())

	if current, ok := snapshotPrices[market]; ok {
		s.sendJSONResponse(w, newDayResponse(market, current))
		return
	}

	s.sendJSONResponse(w, newDayResponse(market, interfaces.Prices{}))
}

// handleRange serves all stored records with from <= day <= to, keyed
// by date
func (s *Server) handleRange(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	market := vars["market"]

	if _, configured := s.markets[market]; !configured {
		s.sendErrorResponse(w, http.StatusBadRequest, "no such market")
		return
	}

	from, err := parseDay(vars["from"])
	if err != nil {
		s.sendErrorResponse(w, http.StatusBadRequest, fmt.Sprintf("invalid from date: %v", err))
		return
	}

	to, err := parseDay(vars["to"])
	if err != nil {
		s.sendErrorResponse(w, http.StatusBadRequest, fmt.Sprintf("invalid to date: %v", err))
		return
	}

	records, err := s.store.GetRange(r.Context(), market, from, to, s.currencies)
	if err != nil {
		s.sendErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.sendJSONResponse(w, records)
}
