// Package ledger implements the wallet ledger: the single authoritative,
// mutex-guarded copy of balances, transactions, tokens, bills, and contacts.
// Every mutation validates against the current state, commits atomically,
// and snapshots to persistence best-effort afterwards.
package ledger

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/LucraWealth/lucra-wallet/internal/common"
	"github.com/LucraWealth/lucra-wallet/internal/interfaces"
	"github.com/LucraWealth/lucra-wallet/internal/models"
	"github.com/LucraWealth/lucra-wallet/internal/services/rewards"
)

// Service is the ledger store. All access goes through the mutex; callers
// receive copies, never aliases into internal state.
type Service struct {
	mu          sync.Mutex
	state       *models.Snapshot
	snapshots   interfaces.SnapshotStore
	policy      *rewards.Policy
	logger      *common.Logger
	lastSaveErr string
}

// Compile-time interface check.
var _ interfaces.LedgerService = (*Service)(nil)

// NewService creates the ledger, loading the persisted snapshot or seeding
// first-run defaults when none exists.
func NewService(ctx context.Context, snapshots interfaces.SnapshotStore, policy *rewards.Policy, logger *common.Logger) (*Service, error) {
	if logger == nil {
		logger = common.NewDefaultLogger()
	}
	if policy == nil {
		policy = rewards.DefaultPolicy()
	}

	snap, err := snapshots.Load(ctx)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		snap = models.SeedSnapshot(time.Now())
		logger.Info().Msg("No wallet snapshot found, seeding first-run defaults")
	}
	normalize(snap, time.Now())

	return &Service{
		state:     snap,
		snapshots: snapshots,
		policy:    policy,
		logger:    logger,
	}, nil
}

// normalize repairs a loaded snapshot: nil slices become empty and the
// derived overdue flag is recomputed against now.
func normalize(s *models.Snapshot, now time.Time) {
	if s.Transactions == nil {
		s.Transactions = []models.Transaction{}
	}
	if s.Tokens == nil {
		s.Tokens = []models.Token{}
	}
	if s.Bills == nil {
		s.Bills = []models.Bill{}
	}
	if s.Contacts == nil {
		s.Contacts = []models.Contact{}
	}
	for i := range s.Bills {
		s.Bills[i].IsOverdue = s.Bills[i].OverdueAt(now)
	}
}

// newID returns a short prefixed identifier, e.g. "tx_1a2b3c4d".
func newID(prefix string) string {
	return prefix + "_" + uuid.NewString()[:8]
}

// persistLocked snapshots the current state. Save failures never fail the
// mutation that triggered them; the in-memory ledger stays authoritative and
// the failure is surfaced through PersistenceWarning. Caller holds mu.
func (s *Service) persistLocked(ctx context.Context) {
	s.state.SavedAt = time.Now()
	if err := s.snapshots.Save(ctx, s.state.Clone()); err != nil {
		s.lastSaveErr = err.Error()
		s.logger.Warn().Err(err).Msg("Failed to persist wallet snapshot, in-memory state remains authoritative")
		return
	}
	s.lastSaveErr = ""
}

// PersistenceWarning returns the last snapshot save failure, or "" when the
// most recent save succeeded.
func (s *Service) PersistenceWarning() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSaveErr
}

// Snapshot returns a deep copy of the full wallet state.
func (s *Service) Snapshot(ctx context.Context) *models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Balance returns the current spendable balance.
func (s *Service) Balance(ctx context.Context) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Balance
}

// CashbackBalance returns the current redeemable cashback.
func (s *Service) CashbackBalance(ctx context.Context) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.CashbackBalance
}

// PortfolioValue returns the summed market value of all token holdings.
func (s *Service) PortfolioValue(ctx context.Context) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.PortfolioValue()
}

// Transactions returns ledger entries newest-first, narrowed by filter.
func (s *Service) Transactions(ctx context.Context, filter interfaces.TransactionFilter) []models.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Transaction, 0, len(s.state.Transactions))
	for i := len(s.state.Transactions) - 1; i >= 0; i-- {
		tx := s.state.Transactions[i]
		if filter.Kind != "" && tx.Kind != filter.Kind {
			continue
		}
		if filter.Category != "" && !categoryMatches(tx.Category, filter.Category) {
			continue
		}
		if !filter.From.IsZero() && tx.Timestamp.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && tx.Timestamp.After(filter.To) {
			continue
		}
		out = append(out, tx)
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
	}
	return out
}

// categoryMatches compares categories loosely: case-insensitive with spaces,
// hyphens and underscores stripped, so "auto-pay" matches "Auto Pay".
func categoryMatches(have, want string) bool {
	return normalizeCategory(have) == normalizeCategory(want)
}

func normalizeCategory(c string) string {
	c = strings.ToLower(c)
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return r
	}, c)
}

// Bills returns all bills with the overdue flag freshly derived.
func (s *Service) Bills(ctx context.Context) []models.Bill {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	out := make([]models.Bill, len(s.state.Bills))
	for i, b := range s.state.Bills {
		out[i] = copyBill(b)
		out[i].IsOverdue = b.OverdueAt(now)
	}
	return out
}

// Bill returns a single bill by ID.
func (s *Service) Bill(ctx context.Context, billID string) (*models.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.findBillLocked(billID)
	if b == nil {
		return nil, billNotFound(billID)
	}
	out := copyBill(*b)
	out.IsOverdue = b.OverdueAt(time.Now())
	return &out, nil
}

// BillPaymentHistory returns the bill's settled payments newest-first. The
// recorded history is merged with any payment transactions that reference the
// bill by name, deduplicated on transaction ID.
func (s *Service) BillPaymentHistory(ctx context.Context, billID string) ([]models.BillHistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.findBillLocked(billID)
	if b == nil {
		return nil, billNotFound(billID)
	}

	entries := append([]models.BillHistoryEntry(nil), b.History...)
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.TransactionID != "" {
			seen[e.TransactionID] = true
		}
	}
	for _, tx := range s.state.Transactions {
		if tx.Kind != models.TxPayment || seen[tx.ID] {
			continue
		}
		if !strings.Contains(strings.ToLower(tx.Title), strings.ToLower(b.Name)) {
			continue
		}
		entries = append(entries, models.BillHistoryEntry{
			Date:          tx.Timestamp,
			Amount:        tx.Amount,
			Status:        "paid",
			TransactionID: tx.ID,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
	return entries, nil
}

// Tokens returns all token holdings.
func (s *Service) Tokens(ctx context.Context) []models.Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Token(nil), s.state.Tokens...)
}

// Contacts returns the contact list.
func (s *Service) Contacts(ctx context.Context) []models.Contact {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Contact(nil), s.state.Contacts...)
}

// RefreshOverdue recomputes the derived overdue flag on unpaid bills against
// now. Returns the number of bills whose flag changed; the snapshot is
// persisted only when something changed.
func (s *Service) RefreshOverdue(ctx context.Context, now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := 0
	for i := range s.state.Bills {
		overdue := s.state.Bills[i].OverdueAt(now)
		if overdue != s.state.Bills[i].IsOverdue {
			s.state.Bills[i].IsOverdue = overdue
			changed++
		}
	}
	if changed > 0 {
		s.logger.Info().Int("bills", changed).Msg("Refreshed overdue flags")
		s.persistLocked(ctx)
	}
	return changed
}

// findBillLocked returns a pointer into state. Caller holds mu.
func (s *Service) findBillLocked(billID string) *models.Bill {
	for i := range s.state.Bills {
		if s.state.Bills[i].ID == billID {
			return &s.state.Bills[i]
		}
	}
	return nil
}

// findTokenLocked returns a pointer into state, matching on ID first and
// falling back to case-insensitive symbol. Caller holds mu.
func (s *Service) findTokenLocked(idOrSymbol string) *models.Token {
	for i := range s.state.Tokens {
		if s.state.Tokens[i].ID == idOrSymbol {
			return &s.state.Tokens[i]
		}
	}
	for i := range s.state.Tokens {
		if strings.EqualFold(s.state.Tokens[i].Symbol, idOrSymbol) {
			return &s.state.Tokens[i]
		}
	}
	return nil
}

func copyBill(b models.Bill) models.Bill {
	out := b
	out.History = append([]models.BillHistoryEntry(nil), b.History...)
	if b.AutoPay != nil {
		ap := *b.AutoPay
		out.AutoPay = &ap
	}
	return out
}
