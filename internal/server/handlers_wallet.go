package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/LucraWealth/lucra-wallet/internal/interfaces"
	"github.com/LucraWealth/lucra-wallet/internal/models"
)

// handleWallet handles GET /api/wallet, returning the full wallet snapshot.
func (s *Server) handleWallet(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	snap := s.app.Ledger.Snapshot(r.Context())
	resp := map[string]interface{}{
		"balance":          snap.Balance,
		"cashback_balance": snap.CashbackBalance,
		"portfolio_value":  snap.PortfolioValue(),
		"transactions":     snap.Transactions,
		"tokens":           snap.Tokens,
		"bills":            snap.Bills,
		"contacts":         snap.Contacts,
	}
	if warning := s.app.Ledger.PersistenceWarning(); warning != "" {
		resp["warning"] = warning
	}
	WriteJSON(w, http.StatusOK, resp)
}

type depositRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Memo   string          `json:"memo,omitempty"`
}

// handleDeposit handles POST /api/wallet/deposit.
func (s *Server) handleDeposit(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req depositRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	tx, err := s.app.Ledger.DepositMoney(r.Context(), req.Amount, req.Memo)
	if err != nil {
		WriteLedgerError(w, err)
		return
	}
	s.writeMutationResult(w, map[string]interface{}{
		"transaction": tx,
		"balance":     s.app.Ledger.Balance(r.Context()),
	})
}

type sendRequest struct {
	Recipient   string          `json:"recipient"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
}

// handleSend handles POST /api/wallet/send.
func (s *Server) handleSend(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req sendRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	tx, err := s.app.Ledger.SendMoney(r.Context(), req.Recipient, req.Amount, req.Description)
	if err != nil {
		WriteLedgerError(w, err)
		return
	}
	s.writeMutationResult(w, map[string]interface{}{
		"transaction": tx,
		"balance":     s.app.Ledger.Balance(r.Context()),
	})
}

// handleTransactions handles GET /api/wallet/transactions with optional
// kind, category, from, to (RFC 3339), and limit query parameters.
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query()
	filter := interfaces.TransactionFilter{
		Kind:     models.TransactionKind(q.Get("kind")),
		Category: q.Get("category"),
	}
	if filter.Kind != "" && !models.ValidTransactionKind(filter.Kind) {
		WriteError(w, http.StatusBadRequest, "Unknown transaction kind: "+string(filter.Kind))
		return
	}
	if from := q.Get("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid 'from' timestamp: "+err.Error())
			return
		}
		filter.From = t
	}
	if to := q.Get("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid 'to' timestamp: "+err.Error())
			return
		}
		filter.To = t
	}
	if limit := q.Get("limit"); limit != "" {
		v, err := strconv.Atoi(limit)
		if err != nil || v < 0 {
			WriteError(w, http.StatusBadRequest, "Invalid 'limit' value")
			return
		}
		filter.Limit = v
	}

	txs := s.app.Ledger.Transactions(r.Context(), filter)
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"transactions": txs,
		"count":        len(txs),
	})
}

// handleCashback handles GET /api/cashback.
func (s *Server) handleCashback(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"cashback_balance": s.app.Ledger.CashbackBalance(r.Context()),
	})
}

type redeemRequest struct {
	Amount decimal.Decimal         `json:"amount"`
	Method models.RedemptionMethod `json:"method"`
}

// handleCashbackRedeem handles POST /api/cashback/redeem.
func (s *Server) handleCashbackRedeem(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req redeemRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	red, err := s.app.Ledger.RedeemCashback(r.Context(), req.Amount, req.Method)
	if err != nil {
		WriteLedgerError(w, err)
		return
	}
	s.writeMutationResult(w, map[string]interface{}{
		"redemption":       red,
		"cashback_balance": s.app.Ledger.CashbackBalance(r.Context()),
		"balance":          s.app.Ledger.Balance(r.Context()),
	})
}

// handleContacts handles GET and POST /api/contacts.
func (s *Server) handleContacts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		WriteJSON(w, http.StatusOK, map[string]interface{}{
			"contacts": s.app.Ledger.Contacts(r.Context()),
		})
	case http.MethodPost:
		var spec models.ContactSpec
		if !DecodeJSON(w, r, &spec) {
			return
		}
		contact, err := s.app.Ledger.AddContact(r.Context(), spec)
		if err != nil {
			WriteLedgerError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, contact)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// handleActions handles POST /api/actions, the whitelisted action envelope.
func (s *Server) handleActions(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.ActionRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	result, err := s.app.Dispatcher.Dispatch(r.Context(), req)
	if err != nil {
		WriteLedgerError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, result)
}

// writeMutationResult attaches the persistence warning, if any, to a
// successful mutation response.
func (s *Server) writeMutationResult(w http.ResponseWriter, resp map[string]interface{}) {
	if warning := s.app.Ledger.PersistenceWarning(); warning != "" {
		resp["warning"] = warning
	}
	WriteJSON(w, http.StatusOK, resp)
}
