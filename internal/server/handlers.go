package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/KwaminaWhyte/esimbridge/internal/utils"
	"github.com/KwaminaWhyte/esimbridge/pkg/lpa"
)

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		utils.Log.Warnf("writing response: %v", err)
	}
}

func (s *Server) handleSupported(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]bool{"supported": s.bridge.Supported(r.Context())})
}

func (s *Server) handleCapability(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.bridge.Capability(r.Context()))
}

func (s *Server) handlePlans(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.bridge.ActivePlans(r.Context()))
}

type setupRequest struct {
	ActivationCode string `json:"activationCode"`
}

// handleSetup drives one OpenSetup call and, when a store is configured,
// records the attempt with the activation code redacted to its SM-DP+ host.
func (s *Server) handleSetup(w http.ResponseWriter, r *http.Request) {
	var req setupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	outcome := s.bridge.OpenSetup(r.Context(), req.ActivationCode)

	if s.store != nil {
		host := ""
		if code, err := lpa.Parse(req.ActivationCode); err == nil {
			host = code.SMDPAddress
		}
		if err := s.store.RecordAttempt(r.Context(), uuid.NewString(), host, string(outcome)); err != nil {
			utils.Log.Warnf("recording setup attempt: %v", err)
		}
	}

	writeJSON(w, map[string]string{"outcome": string(outcome)})
}

func (s *Server) handleAttempts(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, "audit store not configured", http.StatusNotFound)
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, _ = strconv.Atoi(v)
	}

	attempts, err := s.store.RecentAttempts(r.Context(), limit)
	if err != nil {
		utils.Log.Warnf("listing setup attempts: %v", err)
		http.Error(w, "failed to list attempts", http.StatusInternalServerError)
		return
	}
	writeJSON(w, attempts)
}
