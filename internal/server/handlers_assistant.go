package server

import (
	"net/http"
	"strings"
)

type assistantQueryRequest struct {
	Query     string `json:"query"`
	SessionID string `json:"session_id,omitempty"`
}

// handleAssistantQuery handles POST /api/assistant/query. The session ID may
// come from the body or the X-Lucra-Session-ID header; the body wins.
func (s *Server) handleAssistantQuery(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if s.app.AssistantClient == nil {
		WriteError(w, http.StatusServiceUnavailable, "Assistant is not configured (set GEMINI_API_KEY)")
		return
	}

	var req assistantQueryRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		WriteError(w, http.StatusBadRequest, "Query must not be empty")
		return
	}
	if req.SessionID == "" {
		req.SessionID = r.Header.Get("X-Lucra-Session-ID")
	}

	wallet := s.app.Ledger.Snapshot(r.Context())
	reply, err := s.app.AssistantClient.ProcessQuery(r.Context(), req.Query, wallet, req.SessionID)
	if err != nil {
		s.logger.Error().Err(err).Msg("Assistant query failed")
		WriteError(w, http.StatusBadGateway, "Assistant request failed: "+err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, reply)
}

// handleSpendingReport handles GET /api/reports/spending.png.
func (s *Server) handleSpendingReport(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if err := s.app.ReportService.SpendingChart(r.Context(), w); err != nil {
		s.logger.Warn().Err(err).Msg("Spending chart render failed")
	}
}

// handleCashbackReport handles GET /api/reports/cashback.png.
func (s *Server) handleCashbackReport(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if err := s.app.ReportService.CashbackChart(r.Context(), w); err != nil {
		s.logger.Warn().Err(err).Msg("Cashback chart render failed")
	}
}
