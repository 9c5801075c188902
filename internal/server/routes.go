package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/LucraWealth/lucra-wallet/internal/common"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)
	mux.HandleFunc("/api/config", s.handleConfig)
	mux.HandleFunc("/api/shutdown", s.handleShutdown)

	// Wallet
	mux.HandleFunc("/api/wallet", s.handleWallet)
	mux.HandleFunc("/api/wallet/deposit", s.handleDeposit)
	mux.HandleFunc("/api/wallet/send", s.handleSend)
	mux.HandleFunc("/api/wallet/transactions", s.handleTransactions)

	// Cashback
	mux.HandleFunc("/api/cashback", s.handleCashback)
	mux.HandleFunc("/api/cashback/redeem", s.handleCashbackRedeem)

	// Bills
	mux.HandleFunc("/api/bills/", s.routeBills)
	mux.HandleFunc("/api/bills", s.handleBills)

	// Tokens
	mux.HandleFunc("/api/tokens/swap", s.handleTokenSwap)
	mux.HandleFunc("/api/tokens/", s.routeTokens)
	mux.HandleFunc("/api/tokens", s.handleTokens)

	// Contacts
	mux.HandleFunc("/api/contacts", s.handleContacts)

	// Actions and assistant
	mux.HandleFunc("/api/actions", s.handleActions)
	mux.HandleFunc("/api/assistant/query", s.handleAssistantQuery)

	// Reports
	mux.HandleFunc("/api/reports/spending.png", s.handleSpendingReport)
	mux.HandleFunc("/api/reports/cashback.png", s.handleCashbackReport)
}

// routeBills dispatches /api/bills/{id}[/{action}] to the appropriate handler.
func (s *Server) routeBills(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/bills/")
	if path == "" {
		s.handleBills(w, r)
		return
	}

	parts := strings.SplitN(path, "/", 2)
	billID := parts[0]
	subpath := ""
	if len(parts) > 1 {
		subpath = parts[1]
	}

	switch subpath {
	case "":
		s.handleBillGet(w, r, billID)
	case "pay":
		s.handleBillPay(w, r, billID)
	case "autopay":
		s.handleBillAutoPay(w, r, billID)
	case "history":
		s.handleBillHistory(w, r, billID)
	default:
		WriteError(w, http.StatusNotFound, "Not found")
	}
}

// routeTokens dispatches /api/tokens/{id}/{action} to the appropriate handler.
func (s *Server) routeTokens(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/tokens/")
	if path == "" {
		s.handleTokens(w, r)
		return
	}

	parts := strings.SplitN(path, "/", 2)
	tokenID := parts[0]
	subpath := ""
	if len(parts) > 1 {
		subpath = parts[1]
	}

	switch subpath {
	case "buy":
		s.handleTokenBuy(w, r, tokenID)
	case "sell":
		s.handleTokenSell(w, r, tokenID)
	default:
		WriteError(w, http.StatusNotFound, "Not found")
	}
}

// --- System handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	uptime := time.Since(s.app.StartupTime).Round(time.Second)
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"environment":          s.app.Config.Environment,
		"storage_engine":       s.app.Config.Storage.Engine,
		"storage_path":         s.app.Config.Storage.Path,
		"logging_level":        s.app.Config.Logging.Level,
		"cashback_rate":        s.app.Config.Rewards.CashbackRate,
		"reward_token":         s.app.Config.Rewards.RewardToken,
		"assistant_configured": s.app.AssistantClient != nil,
		"uptime":               uptime.String(),
		"started_at":           s.app.StartupTime,
	})
}

// handleShutdown handles POST /api/shutdown (dev mode only).
func (s *Server) handleShutdown(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if s.app.Config.IsProduction() {
		WriteError(w, http.StatusForbidden, "Shutdown endpoint disabled in production")
		return
	}

	s.logger.Info().Msg("Shutdown requested via HTTP endpoint")

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Shutting down gracefully...\n"))

	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}

	if s.shutdownChan != nil {
		go func() {
			time.Sleep(100 * time.Millisecond)
			s.shutdownChan <- struct{}{}
		}()
	}
}
