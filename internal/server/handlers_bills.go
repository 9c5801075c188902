package server

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/LucraWealth/lucra-wallet/internal/models"
)

// handleBills handles GET and POST /api/bills.
func (s *Server) handleBills(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		WriteJSON(w, http.StatusOK, map[string]interface{}{
			"bills": s.app.Ledger.Bills(r.Context()),
		})
	case http.MethodPost:
		var spec models.BillSpec
		if !DecodeJSON(w, r, &spec) {
			return
		}
		bill, err := s.app.Ledger.AddBill(r.Context(), spec)
		if err != nil {
			WriteLedgerError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, bill)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// handleBillGet handles GET /api/bills/{id}.
func (s *Server) handleBillGet(w http.ResponseWriter, r *http.Request, billID string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	bill, err := s.app.Ledger.Bill(r.Context(), billID)
	if err != nil {
		WriteLedgerError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, bill)
}

type payBillRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category,omitempty"`
}

// handleBillPay handles POST /api/bills/{id}/pay. When the body omits the
// amount, the bill's own amount is used.
func (s *Server) handleBillPay(w http.ResponseWriter, r *http.Request, billID string) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req payBillRequest
	if r.ContentLength != 0 {
		if !DecodeJSON(w, r, &req) {
			return
		}
	}
	if req.Amount.IsZero() {
		bill, err := s.app.Ledger.Bill(r.Context(), billID)
		if err != nil {
			WriteLedgerError(w, err)
			return
		}
		req.Amount = bill.Amount
	}

	payment, err := s.app.Ledger.PayBill(r.Context(), billID, req.Amount, req.Category)
	if err != nil {
		WriteLedgerError(w, err)
		return
	}
	s.writeMutationResult(w, map[string]interface{}{
		"payment": payment,
		"balance": s.app.Ledger.Balance(r.Context()),
	})
}

// handleBillAutoPay handles POST (toggle) and PATCH (partial update) on
// /api/bills/{id}/autopay.
func (s *Server) handleBillAutoPay(w http.ResponseWriter, r *http.Request, billID string) {
	switch r.Method {
	case http.MethodPost:
		bill, err := s.app.Ledger.ToggleAutoPay(r.Context(), billID)
		if err != nil {
			WriteLedgerError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, bill)
	case http.MethodPatch:
		var update models.AutoPayUpdate
		if !DecodeJSON(w, r, &update) {
			return
		}
		bill, err := s.app.Ledger.UpdateAutoPaySettings(r.Context(), billID, update)
		if err != nil {
			WriteLedgerError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, bill)
	default:
		RequireMethod(w, r, http.MethodPost, http.MethodPatch)
	}
}

// handleBillHistory handles GET /api/bills/{id}/history.
func (s *Server) handleBillHistory(w http.ResponseWriter, r *http.Request, billID string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	history, err := s.app.Ledger.BillPaymentHistory(r.Context(), billID)
	if err != nil {
		WriteLedgerError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"bill_id": billID,
		"history": history,
	})
}
