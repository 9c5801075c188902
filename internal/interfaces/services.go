package interfaces

import (
	"context"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/LucraWealth/lucra-wallet/internal/models"
)

// TransactionFilter narrows transaction queries. Zero values mean "no filter".
type TransactionFilter struct {
	Category string
	Kind     models.TransactionKind
	From     time.Time
	To       time.Time
	Limit    int
}

// LedgerService is the single source of truth for balance, transactions,
// tokens, bills, contacts, and cashback. Every mutation is atomic: validated
// against all invariants before commit, never partially applied, and
// snapshotted to persistence afterwards (best-effort).
type LedgerService interface {
	// Queries
	Snapshot(ctx context.Context) *models.Snapshot
	Balance(ctx context.Context) decimal.Decimal
	CashbackBalance(ctx context.Context) decimal.Decimal
	PortfolioValue(ctx context.Context) decimal.Decimal
	Transactions(ctx context.Context, filter TransactionFilter) []models.Transaction
	Bills(ctx context.Context) []models.Bill
	Bill(ctx context.Context, billID string) (*models.Bill, error)
	BillPaymentHistory(ctx context.Context, billID string) ([]models.BillHistoryEntry, error)
	Tokens(ctx context.Context) []models.Token
	Contacts(ctx context.Context) []models.Contact

	// Mutations
	DepositMoney(ctx context.Context, amount decimal.Decimal, memo string) (*models.Transaction, error)
	SendMoney(ctx context.Context, recipient string, amount decimal.Decimal, description string) (*models.Transaction, error)
	PayBill(ctx context.Context, billID string, amount decimal.Decimal, category string) (*models.BillPayment, error)
	AddBill(ctx context.Context, spec models.BillSpec) (*models.Bill, error)
	ToggleAutoPay(ctx context.Context, billID string) (*models.Bill, error)
	UpdateAutoPaySettings(ctx context.Context, billID string, update models.AutoPayUpdate) (*models.Bill, error)
	AddToken(ctx context.Context, spec models.TokenSpec) (*models.Token, error)
	BuyToken(ctx context.Context, tokenID string, quantity decimal.Decimal) (*models.Transaction, error)
	SellToken(ctx context.Context, tokenID string, quantity decimal.Decimal) (*models.Transaction, error)
	SwapTokens(ctx context.Context, fromID, toID string, quantity decimal.Decimal) (*models.Transaction, error)
	AddContact(ctx context.Context, spec models.ContactSpec) (*models.Contact, error)
	RedeemCashback(ctx context.Context, amount decimal.Decimal, method models.RedemptionMethod) (*models.Redemption, error)

	// RefreshOverdue recomputes the derived overdue flag on unpaid bills.
	// Returns the number of bills whose flag changed.
	RefreshOverdue(ctx context.Context, now time.Time) int

	// PersistenceWarning returns the last snapshot save failure, or "" when
	// the most recent save succeeded. Save failures never fail operations.
	PersistenceWarning() string
}

// Dispatcher routes whitelisted action envelopes onto ledger mutations.
// It holds no state of its own.
type Dispatcher interface {
	Dispatch(ctx context.Context, req models.ActionRequest) (*models.ActionResult, error)
}

// AssistantClient is the boundary to the remote Lina assistant service. The
// reply envelope is opaque to the engine except for the action form, which
// only ever executes through the Dispatcher.
type AssistantClient interface {
	ProcessQuery(ctx context.Context, query string, wallet *models.Snapshot, sessionID string) (*models.AssistantReply, error)
}

// ReportService renders PNG charts from ledger state.
type ReportService interface {
	SpendingChart(ctx context.Context, w io.Writer) error
	CashbackChart(ctx context.Context, w io.Writer) error
}
