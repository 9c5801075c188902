package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/LucraWealth/lucra-wallet/internal/models"
)

func billNotFound(billID string) error {
	return fmt.Errorf("%w: %s", models.ErrBillNotFound, billID)
}

func tokenNotFound(id string) error {
	return fmt.Errorf("%w: %s", models.ErrTokenNotFound, id)
}

func invalidAmount(amount decimal.Decimal) error {
	return fmt.Errorf("%w: amount must be positive, got %s", models.ErrInvalidAmount, amount)
}

func insufficientFunds(requested, available decimal.Decimal) error {
	return fmt.Errorf("%w: requested %s, available %s", models.ErrInsufficientFunds, requested, available)
}

// DepositMoney credits the balance. Deposits are not idempotent: two
// identical calls commit two transactions.
func (s *Service) DepositMoney(ctx context.Context, amount decimal.Decimal, memo string) (*models.Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, invalidAmount(amount)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	title := "Deposit"
	if memo != "" {
		title = memo
	}
	tx := models.Transaction{
		ID:        newID("tx"),
		Kind:      models.TxDeposit,
		Title:     title,
		Amount:    amount,
		Timestamp: time.Now(),
		Category:  "Deposit",
	}
	s.state.Balance = s.state.Balance.Add(amount)
	s.state.Transactions = append(s.state.Transactions, tx)
	s.persistLocked(ctx)

	s.logger.Info().Str("tx_id", tx.ID).Str("amount", amount.String()).Msg("Deposit committed")
	return &tx, nil
}

// SendMoney debits the balance and records a send to the named recipient.
func (s *Service) SendMoney(ctx context.Context, recipient string, amount decimal.Decimal, description string) (*models.Transaction, error) {
	if strings.TrimSpace(recipient) == "" {
		return nil, fmt.Errorf("%w: recipient is required", models.ErrInvalidArgument)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, invalidAmount(amount)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if amount.GreaterThan(s.state.Balance) {
		return nil, insufficientFunds(amount, s.state.Balance)
	}

	tx := models.Transaction{
		ID:          newID("tx"),
		Kind:        models.TxSend,
		Title:       "Sent to " + recipient,
		Amount:      amount,
		Timestamp:   time.Now(),
		Recipient:   recipient,
		Category:    "Transfer",
		Description: description,
	}
	s.state.Balance = s.state.Balance.Sub(amount)
	s.state.Transactions = append(s.state.Transactions, tx)
	s.persistLocked(ctx)

	s.logger.Info().Str("tx_id", tx.ID).Str("recipient", recipient).Str("amount", amount.String()).Msg("Send committed")
	return &tx, nil
}

// PayBill settles a bill: debit, payment transaction, history entry, and
// cashback accrual commit together or not at all. Paying an already-paid
// bill is a no-op success, so retried confirmations never double-charge.
func (s *Service) PayBill(ctx context.Context, billID string, amount decimal.Decimal, category string) (*models.BillPayment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bill := s.findBillLocked(billID)
	if bill == nil {
		return nil, billNotFound(billID)
	}
	if bill.IsPaid {
		out := copyBill(*bill)
		return &models.BillPayment{Bill: out, Cashback: decimal.Zero, AlreadyPaid: true}, nil
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, invalidAmount(amount)
	}
	if amount.GreaterThan(s.state.Balance) {
		return nil, insufficientFunds(amount, s.state.Balance)
	}

	if category == "" {
		category = bill.Category
	}
	now := time.Now()
	tx := models.Transaction{
		ID:        newID("tx"),
		Kind:      models.TxPayment,
		Title:     "Paid " + bill.Name,
		Amount:    amount,
		Timestamp: now,
		Category:  category,
	}
	cashback := s.policy.Accrual(amount)

	s.state.Balance = s.state.Balance.Sub(amount)
	s.state.CashbackBalance = s.state.CashbackBalance.Add(cashback)
	s.state.Transactions = append(s.state.Transactions, tx)
	bill.IsPaid = true
	bill.IsOverdue = false
	bill.History = append(bill.History, models.BillHistoryEntry{
		Date:          now,
		Amount:        amount,
		Status:        "paid",
		TransactionID: tx.ID,
	})
	if bill.AutoPay != nil && bill.AutoPay.Enabled {
		t := now
		bill.AutoPay.LastPaymentAt = &t
	}
	s.persistLocked(ctx)

	s.logger.Info().
		Str("bill_id", billID).
		Str("amount", amount.String()).
		Str("cashback", cashback.String()).
		Msg("Bill payment committed")

	out := copyBill(*bill)
	return &models.BillPayment{Bill: out, Transaction: &tx, Cashback: cashback}, nil
}

// AddBill registers a new payable bill.
func (s *Service) AddBill(ctx context.Context, spec models.BillSpec) (*models.Bill, error) {
	if strings.TrimSpace(spec.Name) == "" {
		return nil, fmt.Errorf("%w: bill name is required", models.ErrInvalidArgument)
	}
	if spec.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, invalidAmount(spec.Amount)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	bill := models.Bill{
		ID:          newID("bill"),
		Name:        spec.Name,
		Amount:      spec.Amount,
		DueDate:     spec.DueDate,
		Category:    spec.Category,
		Description: spec.Description,
	}
	bill.IsOverdue = bill.OverdueAt(time.Now())
	s.state.Bills = append(s.state.Bills, bill)
	s.persistLocked(ctx)

	s.logger.Info().Str("bill_id", bill.ID).Str("name", bill.Name).Msg("Bill added")
	out := copyBill(bill)
	return &out, nil
}

// ToggleAutoPay flips autopay on a bill. Enabling without prior settings
// applies defaults and schedules the next payment date; autopay is state
// only and never moves money on its own.
func (s *Service) ToggleAutoPay(ctx context.Context, billID string) (*models.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bill := s.findBillLocked(billID)
	if bill == nil {
		return nil, billNotFound(billID)
	}

	if bill.AutoPay == nil {
		bill.AutoPay = &models.AutoPaySettings{
			PaymentMethod: "Visa •••• 4242",
			PaymentDay:    15,
		}
	}
	bill.AutoPay.Enabled = !bill.AutoPay.Enabled
	if bill.AutoPay.Enabled {
		next := nextPaymentDate(time.Now(), bill.AutoPay.PaymentDay)
		bill.AutoPay.NextPaymentAt = &next
	} else {
		bill.AutoPay.NextPaymentAt = nil
	}
	s.persistLocked(ctx)

	s.logger.Info().Str("bill_id", billID).Bool("enabled", bill.AutoPay.Enabled).Msg("AutoPay toggled")
	out := copyBill(*bill)
	return &out, nil
}

// UpdateAutoPaySettings applies a partial autopay update. Nil fields are
// left unchanged.
func (s *Service) UpdateAutoPaySettings(ctx context.Context, billID string, update models.AutoPayUpdate) (*models.Bill, error) {
	if update.PaymentDay != nil && (*update.PaymentDay < 1 || *update.PaymentDay > 31) {
		return nil, fmt.Errorf("%w: payment day must be 1-31, got %d", models.ErrInvalidArgument, *update.PaymentDay)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	bill := s.findBillLocked(billID)
	if bill == nil {
		return nil, billNotFound(billID)
	}

	if bill.AutoPay == nil {
		bill.AutoPay = &models.AutoPaySettings{
			PaymentMethod: "Visa •••• 4242",
			PaymentDay:    15,
		}
	}
	if update.Enabled != nil {
		bill.AutoPay.Enabled = *update.Enabled
	}
	if update.PaymentMethod != nil {
		bill.AutoPay.PaymentMethod = *update.PaymentMethod
	}
	if update.PaymentDay != nil {
		bill.AutoPay.PaymentDay = *update.PaymentDay
	}
	if bill.AutoPay.Enabled {
		next := nextPaymentDate(time.Now(), bill.AutoPay.PaymentDay)
		bill.AutoPay.NextPaymentAt = &next
	} else {
		bill.AutoPay.NextPaymentAt = nil
	}
	s.persistLocked(ctx)

	out := copyBill(*bill)
	return &out, nil
}

// nextPaymentDate returns the next occurrence of the given day of month
// strictly after now, clamped to the target month's length.
func nextPaymentDate(now time.Time, day int) time.Time {
	year, month := now.Year(), now.Month()
	if now.Day() >= day {
		month++
	}
	d := time.Date(year, month, 1, 9, 0, 0, 0, now.Location())
	last := d.AddDate(0, 1, -1).Day()
	if day > last {
		day = last
	}
	return time.Date(d.Year(), d.Month(), day, 9, 0, 0, 0, now.Location())
}

// AddToken registers a new token holding. Symbols are unique
// case-insensitively.
func (s *Service) AddToken(ctx context.Context, spec models.TokenSpec) (*models.Token, error) {
	symbol := strings.TrimSpace(spec.Symbol)
	if symbol == "" {
		return nil, fmt.Errorf("%w: token symbol is required", models.ErrInvalidArgument)
	}
	if spec.UnitPrice.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: unit price must be positive, got %s", models.ErrInvalidAmount, spec.UnitPrice)
	}
	if spec.InitialQuantity.IsNegative() {
		return nil, fmt.Errorf("%w: initial quantity must not be negative, got %s", models.ErrInvalidAmount, spec.InitialQuantity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.state.Tokens {
		if strings.EqualFold(t.Symbol, symbol) {
			return nil, fmt.Errorf("%w: %s", models.ErrDuplicateToken, symbol)
		}
	}

	name := spec.Name
	if name == "" {
		name = symbol
	}
	token := models.Token{
		ID:            strings.ToLower(symbol),
		Symbol:        strings.ToUpper(symbol),
		Name:          name,
		Quantity:      spec.InitialQuantity,
		UnitPrice:     spec.UnitPrice,
		PercentChange: spec.PercentChange,
		Description:   spec.Description,
	}
	s.state.Tokens = append(s.state.Tokens, token)
	s.persistLocked(ctx)

	s.logger.Info().Str("symbol", token.Symbol).Msg("Token added")
	out := token
	return &out, nil
}

// BuyToken spends balance to increase a holding at its current unit price.
func (s *Service) BuyToken(ctx context.Context, tokenID string, quantity decimal.Decimal) (*models.Transaction, error) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, invalidAmount(quantity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	token := s.findTokenLocked(tokenID)
	if token == nil {
		return nil, tokenNotFound(tokenID)
	}
	cost := quantity.Mul(token.UnitPrice)
	if cost.GreaterThan(s.state.Balance) {
		return nil, insufficientFunds(cost, s.state.Balance)
	}

	tx := models.Transaction{
		ID:          newID("tx"),
		Kind:        models.TxBuy,
		Title:       "Bought " + token.Symbol,
		Amount:      cost,
		Timestamp:   time.Now(),
		Category:    "Investment",
		Description: fmt.Sprintf("%s %s at %s", quantity, token.Symbol, token.UnitPrice),
	}
	s.state.Balance = s.state.Balance.Sub(cost)
	token.Quantity = token.Quantity.Add(quantity)
	s.state.Transactions = append(s.state.Transactions, tx)
	s.persistLocked(ctx)

	s.logger.Info().Str("symbol", token.Symbol).Str("quantity", quantity.String()).Msg("Token purchase committed")
	return &tx, nil
}

// SellToken decreases a holding and credits the balance at the current
// unit price.
func (s *Service) SellToken(ctx context.Context, tokenID string, quantity decimal.Decimal) (*models.Transaction, error) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, invalidAmount(quantity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	token := s.findTokenLocked(tokenID)
	if token == nil {
		return nil, tokenNotFound(tokenID)
	}
	if quantity.GreaterThan(token.Quantity) {
		return nil, fmt.Errorf("%w: requested %s %s, holding %s", models.ErrInsufficientTokenBalance, quantity, token.Symbol, token.Quantity)
	}

	proceeds := quantity.Mul(token.UnitPrice)
	tx := models.Transaction{
		ID:          newID("tx"),
		Kind:        models.TxSell,
		Title:       "Sold " + token.Symbol,
		Amount:      proceeds,
		Timestamp:   time.Now(),
		Category:    "Investment",
		Description: fmt.Sprintf("%s %s at %s", quantity, token.Symbol, token.UnitPrice),
	}
	s.state.Balance = s.state.Balance.Add(proceeds)
	token.Quantity = token.Quantity.Sub(quantity)
	s.state.Transactions = append(s.state.Transactions, tx)
	s.persistLocked(ctx)

	s.logger.Info().Str("symbol", token.Symbol).Str("quantity", quantity.String()).Msg("Token sale committed")
	return &tx, nil
}

// SwapTokens exchanges quantity of one holding for another at the ratio of
// their unit prices. Balance is untouched; both legs commit together.
func (s *Service) SwapTokens(ctx context.Context, fromID, toID string, quantity decimal.Decimal) (*models.Transaction, error) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, invalidAmount(quantity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	from := s.findTokenLocked(fromID)
	if from == nil {
		return nil, tokenNotFound(fromID)
	}
	to := s.findTokenLocked(toID)
	if to == nil {
		return nil, tokenNotFound(toID)
	}
	if quantity.GreaterThan(from.Quantity) {
		return nil, fmt.Errorf("%w: requested %s %s, holding %s", models.ErrInsufficientTokenBalance, quantity, from.Symbol, from.Quantity)
	}
	if to.UnitPrice.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: %s has no positive unit price", models.ErrTokenNotFound, to.Symbol)
	}

	value := quantity.Mul(from.UnitPrice)
	credited := value.Div(to.UnitPrice)
	tx := models.Transaction{
		ID:          newID("tx"),
		Kind:        models.TxSwap,
		Title:       fmt.Sprintf("Swapped %s to %s", from.Symbol, to.Symbol),
		Amount:      value,
		Timestamp:   time.Now(),
		Category:    "Investment",
		Description: fmt.Sprintf("%s %s for %s %s", quantity, from.Symbol, credited, to.Symbol),
	}
	from.Quantity = from.Quantity.Sub(quantity)
	to.Quantity = to.Quantity.Add(credited)
	s.state.Transactions = append(s.state.Transactions, tx)
	s.persistLocked(ctx)

	s.logger.Info().
		Str("from", from.Symbol).
		Str("to", to.Symbol).
		Str("quantity", quantity.String()).
		Msg("Token swap committed")
	return &tx, nil
}

// AddContact adds an entry to the contact list.
func (s *Service) AddContact(ctx context.Context, spec models.ContactSpec) (*models.Contact, error) {
	if strings.TrimSpace(spec.Name) == "" {
		return nil, fmt.Errorf("%w: contact name is required", models.ErrInvalidArgument)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	contact := models.Contact{
		ID:     newID("contact"),
		Name:   spec.Name,
		Email:  spec.Email,
		Phone:  spec.Phone,
		Handle: spec.Handle,
		Avatar: spec.Avatar,
	}
	s.state.Contacts = append(s.state.Contacts, contact)
	s.persistLocked(ctx)

	out := contact
	return &out, nil
}

// RedeemCashback converts cashback into the chosen destination. All effects
// are computed before any state changes, so a failed redemption leaves the
// wallet untouched.
func (s *Service) RedeemCashback(ctx context.Context, amount decimal.Decimal, method models.RedemptionMethod) (*models.Redemption, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.policy.ValidateRedemption(s.state.CashbackBalance, amount, method); err != nil {
		return nil, err
	}

	now := time.Now()
	red := &models.Redemption{Amount: amount, Method: method}

	switch method {
	case models.RedeemToWallet:
		tx := models.Transaction{
			ID:        newID("tx"),
			Kind:      models.TxCashback,
			Title:     "Cashback Redemption",
			Amount:    amount,
			Timestamp: now,
			Category:  "Rewards",
		}
		s.state.CashbackBalance = s.state.CashbackBalance.Sub(amount)
		s.state.Balance = s.state.Balance.Add(amount)
		s.state.Transactions = append(s.state.Transactions, tx)
		red.Transaction = tx

	case models.RedeemToBank:
		tx := models.Transaction{
			ID:              newID("tx"),
			Kind:            models.TxWithdrawal,
			Title:           "Cashback to Bank",
			Amount:          amount,
			Timestamp:       now,
			Category:        "Rewards",
			PendingExternal: true,
		}
		s.state.CashbackBalance = s.state.CashbackBalance.Sub(amount)
		s.state.Transactions = append(s.state.Transactions, tx)
		red.Transaction = tx

	case models.RedeemToToken:
		symbol := s.policy.RewardTokenSymbol()
		token := s.findTokenLocked(symbol)
		var seed *models.Token
		if token == nil {
			t := s.policy.RewardTokenSeed()
			seed = &t
			token = seed
		}
		quantity, err := s.policy.TokenConversion(amount, token.UnitPrice)
		if err != nil {
			return nil, err
		}

		tx := models.Transaction{
			ID:          newID("tx"),
			Kind:        models.TxCashback,
			Title:       "Cashback to " + symbol,
			Amount:      amount,
			Timestamp:   now,
			Category:    "Rewards",
			Description: fmt.Sprintf("%s %s credited", quantity, symbol),
		}
		s.state.CashbackBalance = s.state.CashbackBalance.Sub(amount)
		if seed != nil {
			s.state.Tokens = append(s.state.Tokens, *seed)
			token = &s.state.Tokens[len(s.state.Tokens)-1]
		}
		token.Quantity = token.Quantity.Add(quantity)
		s.state.Transactions = append(s.state.Transactions, tx)
		red.Transaction = tx
		red.TokenSymbol = token.Symbol
		red.TokenQuantity = quantity
	}

	s.persistLocked(ctx)

	s.logger.Info().
		Str("method", string(method)).
		Str("amount", amount.String()).
		Msg("Cashback redemption committed")
	return red, nil
}
