package server

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/LucraWealth/lucra-wallet/internal/models"
)

// handleTokens handles GET and POST /api/tokens.
func (s *Server) handleTokens(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		tokens := s.app.Ledger.Tokens(r.Context())
		WriteJSON(w, http.StatusOK, map[string]interface{}{
			"tokens":          tokens,
			"portfolio_value": s.app.Ledger.PortfolioValue(r.Context()),
		})
	case http.MethodPost:
		var spec models.TokenSpec
		if !DecodeJSON(w, r, &spec) {
			return
		}
		token, err := s.app.Ledger.AddToken(r.Context(), spec)
		if err != nil {
			WriteLedgerError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, token)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

type tokenTradeRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
}

// handleTokenBuy handles POST /api/tokens/{id}/buy.
func (s *Server) handleTokenBuy(w http.ResponseWriter, r *http.Request, tokenID string) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req tokenTradeRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	tx, err := s.app.Ledger.BuyToken(r.Context(), tokenID, req.Quantity)
	if err != nil {
		WriteLedgerError(w, err)
		return
	}
	s.writeMutationResult(w, map[string]interface{}{
		"transaction": tx,
		"balance":     s.app.Ledger.Balance(r.Context()),
	})
}

// handleTokenSell handles POST /api/tokens/{id}/sell.
func (s *Server) handleTokenSell(w http.ResponseWriter, r *http.Request, tokenID string) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req tokenTradeRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	tx, err := s.app.Ledger.SellToken(r.Context(), tokenID, req.Quantity)
	if err != nil {
		WriteLedgerError(w, err)
		return
	}
	s.writeMutationResult(w, map[string]interface{}{
		"transaction": tx,
		"balance":     s.app.Ledger.Balance(r.Context()),
	})
}

type tokenSwapRequest struct {
	FromID   string          `json:"from_id"`
	ToID     string          `json:"to_id"`
	Quantity decimal.Decimal `json:"quantity"`
}

// handleTokenSwap handles POST /api/tokens/swap.
func (s *Server) handleTokenSwap(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req tokenSwapRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	tx, err := s.app.Ledger.SwapTokens(r.Context(), req.FromID, req.ToID, req.Quantity)
	if err != nil {
		WriteLedgerError(w, err)
		return
	}
	s.writeMutationResult(w, map[string]interface{}{
		"transaction": tx,
		"tokens":      s.app.Ledger.Tokens(r.Context()),
	})
}
