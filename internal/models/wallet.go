// Package models defines the wallet domain types shared across services and storage.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind categorizes the direction and purpose of a wallet transaction.
type TransactionKind string

const (
	TxSend       TransactionKind = "send"
	TxReceive    TransactionKind = "receive"
	TxPayment    TransactionKind = "payment"
	TxDeposit    TransactionKind = "deposit"
	TxWithdrawal TransactionKind = "withdrawal"
	TxSwap       TransactionKind = "swap"
	TxBuy        TransactionKind = "buy"
	TxSell       TransactionKind = "sell"
	TxCashback   TransactionKind = "cashback"
)

// validTransactionKinds lists all accepted transaction kinds.
var validTransactionKinds = map[TransactionKind]bool{
	TxSend:       true,
	TxReceive:    true,
	TxPayment:    true,
	TxDeposit:    true,
	TxWithdrawal: true,
	TxSwap:       true,
	TxBuy:        true,
	TxSell:       true,
	TxCashback:   true,
}

// ValidTransactionKind returns true if k is a valid transaction kind.
func ValidTransactionKind(k TransactionKind) bool {
	return validTransactionKinds[k]
}

// IsOutflowKind returns true if the kind represents money leaving the balance.
// Outflows: send, payment, withdrawal, buy.
func IsOutflowKind(k TransactionKind) bool {
	switch k {
	case TxSend, TxPayment, TxWithdrawal, TxBuy:
		return true
	default:
		return false
	}
}

// Transaction is an immutable ledger entry. Amount is a non-negative
// magnitude; the sign is implied by Kind. Entries are never mutated or
// deleted after commit; corrections are new offsetting transactions.
type Transaction struct {
	ID              string          `json:"id"`
	Kind            TransactionKind `json:"kind"`
	Title           string          `json:"title"`
	Amount          decimal.Decimal `json:"amount"`
	Timestamp       time.Time       `json:"timestamp"`
	Recipient       string          `json:"recipient,omitempty"`
	Category        string          `json:"category,omitempty"`
	Description     string          `json:"description,omitempty"`
	PendingExternal bool            `json:"pending_external,omitempty"`
}

// Token is a holding of a single token. Portfolio value is derived, not stored.
type Token struct {
	ID            string          `json:"id"`
	Symbol        string          `json:"symbol"`
	Name          string          `json:"name"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	PercentChange float64         `json:"percent_change"`
	Description   string          `json:"description,omitempty"`
}

// Value returns the current market value of the holding (quantity × unit price).
func (t Token) Value() decimal.Decimal {
	return t.Quantity.Mul(t.UnitPrice)
}

// TokenSpec describes a token to add to the wallet.
type TokenSpec struct {
	Symbol          string          `json:"symbol"`
	Name            string          `json:"name"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	PercentChange   float64         `json:"percent_change"`
	InitialQuantity decimal.Decimal `json:"initial_quantity"`
	Description     string          `json:"description,omitempty"`
}

// AutoPaySettings describes recurring automatic payment for a bill.
// State only; no scheduler executes autopay.
type AutoPaySettings struct {
	Enabled       bool       `json:"enabled"`
	PaymentMethod string     `json:"payment_method"`
	PaymentDay    int        `json:"payment_day"` // day of month, 1-31
	NextPaymentAt *time.Time `json:"next_payment_at,omitempty"`
	LastPaymentAt *time.Time `json:"last_payment_at,omitempty"`
}

// BillHistoryEntry records one settled payment against a bill.
type BillHistoryEntry struct {
	Date          time.Time       `json:"date"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
	TransactionID string          `json:"transaction_id,omitempty"`
}

// Bill is a payable obligation. IsPaid is monotonic (false→true, never
// reverted); IsOverdue is derived from DueDate vs. now unless paid.
type Bill struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Amount      decimal.Decimal    `json:"amount"`
	DueDate     time.Time          `json:"due_date"`
	Category    string             `json:"category"`
	Description string             `json:"description,omitempty"`
	IsPaid      bool               `json:"is_paid"`
	IsOverdue   bool               `json:"is_overdue"`
	History     []BillHistoryEntry `json:"history,omitempty"`
	AutoPay     *AutoPaySettings   `json:"auto_pay,omitempty"`
}

// OverdueAt reports whether the bill is overdue at the given instant.
func (b *Bill) OverdueAt(now time.Time) bool {
	return !b.IsPaid && b.DueDate.Before(now)
}

// BillSpec describes a bill to add to the wallet.
type BillSpec struct {
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     time.Time       `json:"due_date"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
}

// AutoPayUpdate carries partial autopay settings changes. Nil fields are
// left unchanged.
type AutoPayUpdate struct {
	Enabled       *bool   `json:"enabled,omitempty"`
	PaymentMethod *string `json:"payment_method,omitempty"`
	PaymentDay    *int    `json:"payment_day,omitempty"`
}

// Contact is an entry in the user's contact list. No monetary effect.
type Contact struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
	Phone  string `json:"phone,omitempty"`
	Handle string `json:"handle,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

// ContactSpec describes a contact to add.
type ContactSpec struct {
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
	Phone  string `json:"phone,omitempty"`
	Handle string `json:"handle,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

// RedemptionMethod selects where redeemed cashback goes.
type RedemptionMethod string

const (
	RedeemToWallet RedemptionMethod = "wallet"
	RedeemToBank   RedemptionMethod = "bank"
	RedeemToToken  RedemptionMethod = "token"
)

// ValidRedemptionMethod returns true if m is a supported redemption method.
func ValidRedemptionMethod(m RedemptionMethod) bool {
	switch m {
	case RedeemToWallet, RedeemToBank, RedeemToToken:
		return true
	default:
		return false
	}
}

// Redemption is the committed outcome of a cashback redemption. It is never
// persisted standalone; its effects live in the snapshot it was applied to.
type Redemption struct {
	Amount        decimal.Decimal  `json:"amount"`
	Method        RedemptionMethod `json:"method"`
	Transaction   Transaction      `json:"transaction"`
	TokenSymbol   string           `json:"token_symbol,omitempty"`
	TokenQuantity decimal.Decimal  `json:"token_quantity,omitempty"`
}

// BillPayment is the committed outcome of a payBill call. AlreadyPaid marks
// the idempotent no-op case (bill was settled before the call).
type BillPayment struct {
	Bill        Bill            `json:"bill"`
	Transaction *Transaction    `json:"transaction,omitempty"`
	Cashback    decimal.Decimal `json:"cashback"`
	AlreadyPaid bool            `json:"already_paid"`
}

// Snapshot is the full serialized state of the wallet ledger, persisted as a
// versionless JSON document. Absent or malformed snapshots are treated as empty.
type Snapshot struct {
	Balance         decimal.Decimal `json:"balance"`
	CashbackBalance decimal.Decimal `json:"cashback_balance"`
	Transactions    []Transaction   `json:"transactions"`
	Tokens          []Token         `json:"tokens"`
	Bills           []Bill          `json:"bills"`
	Contacts        []Contact       `json:"contacts"`
	SavedAt         time.Time       `json:"saved_at,omitempty"`
}

// PortfolioValue returns the summed market value of all token holdings.
func (s *Snapshot) PortfolioValue() decimal.Decimal {
	total := decimal.Zero
	for _, t := range s.Tokens {
		total = total.Add(t.Value())
	}
	return total
}

// Clone returns a deep copy of the snapshot. Mutating the copy never
// affects the original.
func (s *Snapshot) Clone() *Snapshot {
	c := &Snapshot{
		Balance:         s.Balance,
		CashbackBalance: s.CashbackBalance,
		SavedAt:         s.SavedAt,
	}
	c.Transactions = append([]Transaction(nil), s.Transactions...)
	c.Tokens = append([]Token(nil), s.Tokens...)
	c.Contacts = append([]Contact(nil), s.Contacts...)
	c.Bills = make([]Bill, len(s.Bills))
	for i, b := range s.Bills {
		cb := b
		cb.History = append([]BillHistoryEntry(nil), b.History...)
		if b.AutoPay != nil {
			ap := *b.AutoPay
			cb.AutoPay = &ap
		}
		c.Bills[i] = cb
	}
	return c
}
