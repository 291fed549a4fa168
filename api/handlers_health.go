package api

import (
	"net/http"
)

// handleHealth responds with 200 OK to indicate the service is running
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"app":    "fiatprices",
		"status": "ok",
		"services": map[string]string{
			"snapshot": "unknown",
		},
	}

	if s.snapshot.Healthy() {
		status["services"].(map[string]string)["snapshot"] = "up"
	}

	s.sendJSONResponse(w, status)
}
