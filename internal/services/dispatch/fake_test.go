package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/LucraWealth/lucra-wallet/internal/interfaces"
	"github.com/LucraWealth/lucra-wallet/internal/models"
)

// fakeLedger is a minimal LedgerService for dispatcher tests. Bills
// "bill_netflix" and "bill_rent" exist unpaid, "bill_paid" exists paid.
type fakeLedger struct {
	bills        map[string]*models.Bill
	failBills    map[string]error
	warning      string
	payBillCalls int
}

var _ interfaces.LedgerService = (*fakeLedger)(nil)

func newFakeLedger() *fakeLedger {
	dec := decimal.RequireFromString
	return &fakeLedger{
		bills: map[string]*models.Bill{
			"bill_netflix": {ID: "bill_netflix", Name: "Netflix Subscription", Amount: dec("15.49"), Category: "Entertainment"},
			"bill_rent":    {ID: "bill_rent", Name: "Monthly Rent", Amount: dec("1200.00"), Category: "Housing"},
			"bill_paid":    {ID: "bill_paid", Name: "Water Bill", Amount: dec("30.00"), Category: "Utilities", IsPaid: true},
		},
		failBills: map[string]error{},
	}
}

func (f *fakeLedger) Snapshot(ctx context.Context) *models.Snapshot { return &models.Snapshot{} }
func (f *fakeLedger) Balance(ctx context.Context) decimal.Decimal   { return decimal.Zero }
func (f *fakeLedger) CashbackBalance(ctx context.Context) decimal.Decimal {
	return decimal.Zero
}
func (f *fakeLedger) PortfolioValue(ctx context.Context) decimal.Decimal { return decimal.Zero }
func (f *fakeLedger) Transactions(ctx context.Context, filter interfaces.TransactionFilter) []models.Transaction {
	return nil
}
func (f *fakeLedger) Bills(ctx context.Context) []models.Bill       { return nil }
func (f *fakeLedger) Tokens(ctx context.Context) []models.Token     { return nil }
func (f *fakeLedger) Contacts(ctx context.Context) []models.Contact { return nil }

func (f *fakeLedger) Bill(ctx context.Context, billID string) (*models.Bill, error) {
	b, ok := f.bills[billID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrBillNotFound, billID)
	}
	cp := *b
	return &cp, nil
}

func (f *fakeLedger) BillPaymentHistory(ctx context.Context, billID string) ([]models.BillHistoryEntry, error) {
	return nil, nil
}

func (f *fakeLedger) DepositMoney(ctx context.Context, amount decimal.Decimal, memo string) (*models.Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, models.ErrInvalidAmount
	}
	return &models.Transaction{ID: "tx_dep", Kind: models.TxDeposit, Amount: amount, Timestamp: time.Now()}, nil
}

func (f *fakeLedger) SendMoney(ctx context.Context, recipient string, amount decimal.Decimal, description string) (*models.Transaction, error) {
	return &models.Transaction{ID: "tx_send", Kind: models.TxSend, Amount: amount, Recipient: recipient}, nil
}

func (f *fakeLedger) PayBill(ctx context.Context, billID string, amount decimal.Decimal, category string) (*models.BillPayment, error) {
	f.payBillCalls++
	if err, ok := f.failBills[billID]; ok {
		return nil, err
	}
	b, ok := f.bills[billID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrBillNotFound, billID)
	}
	if b.IsPaid {
		return &models.BillPayment{Bill: *b, AlreadyPaid: true}, nil
	}
	paid := *b
	paid.IsPaid = true
	tx := models.Transaction{ID: "tx_" + billID, Kind: models.TxPayment, Amount: amount}
	return &models.BillPayment{Bill: paid, Transaction: &tx, Cashback: amount.Mul(decimal.RequireFromString("0.05")).Round(2)}, nil
}

func (f *fakeLedger) AddBill(ctx context.Context, spec models.BillSpec) (*models.Bill, error) {
	return &models.Bill{ID: "bill_new", Name: spec.Name, Amount: spec.Amount}, nil
}

func (f *fakeLedger) ToggleAutoPay(ctx context.Context, billID string) (*models.Bill, error) {
	return f.Bill(ctx, billID)
}

func (f *fakeLedger) UpdateAutoPaySettings(ctx context.Context, billID string, update models.AutoPayUpdate) (*models.Bill, error) {
	return f.Bill(ctx, billID)
}

func (f *fakeLedger) AddToken(ctx context.Context, spec models.TokenSpec) (*models.Token, error) {
	if spec.Symbol == "" {
		return nil, models.ErrInvalidArgument
	}
	return &models.Token{ID: "doge", Symbol: "DOGE", Name: spec.Name, UnitPrice: spec.UnitPrice}, nil
}

func (f *fakeLedger) BuyToken(ctx context.Context, tokenID string, quantity decimal.Decimal) (*models.Transaction, error) {
	return &models.Transaction{ID: "tx_buy", Kind: models.TxBuy}, nil
}

func (f *fakeLedger) SellToken(ctx context.Context, tokenID string, quantity decimal.Decimal) (*models.Transaction, error) {
	return &models.Transaction{ID: "tx_sell", Kind: models.TxSell}, nil
}

func (f *fakeLedger) SwapTokens(ctx context.Context, fromID, toID string, quantity decimal.Decimal) (*models.Transaction, error) {
	return &models.Transaction{ID: "tx_swap", Kind: models.TxSwap}, nil
}

func (f *fakeLedger) AddContact(ctx context.Context, spec models.ContactSpec) (*models.Contact, error) {
	return &models.Contact{ID: "contact_new", Name: spec.Name}, nil
}

func (f *fakeLedger) RedeemCashback(ctx context.Context, amount decimal.Decimal, method models.RedemptionMethod) (*models.Redemption, error) {
	if !models.ValidRedemptionMethod(method) {
		return nil, models.ErrInvalidRedemptionMethod
	}
	return &models.Redemption{
		Amount:      amount,
		Method:      method,
		Transaction: models.Transaction{ID: "tx_redeem", Kind: models.TxCashback, Amount: amount},
	}, nil
}

func (f *fakeLedger) RefreshOverdue(ctx context.Context, now time.Time) int { return 0 }
func (f *fakeLedger) PersistenceWarning() string                            { return f.warning }
