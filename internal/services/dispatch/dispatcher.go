// Package dispatch routes whitelisted action envelopes onto ledger
// mutations. The assistant and the HTTP action endpoint both go through
// here; nothing outside the whitelist can reach the ledger.
package dispatch

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/LucraWealth/lucra-wallet/internal/common"
	"github.com/LucraWealth/lucra-wallet/internal/interfaces"
	"github.com/LucraWealth/lucra-wallet/internal/models"
)

// Dispatcher validates and executes action requests against the ledger.
type Dispatcher struct {
	ledger interfaces.LedgerService
	logger *common.Logger
}

var _ interfaces.Dispatcher = (*Dispatcher)(nil)

// NewDispatcher creates a dispatcher bound to the given ledger.
func NewDispatcher(ledger interfaces.LedgerService, logger *common.Logger) *Dispatcher {
	if logger == nil {
		logger = common.NewDefaultLogger()
	}
	return &Dispatcher{ledger: ledger, logger: logger}
}

// Dispatch decodes the payload for the named action and executes it. Unknown
// actions are rejected before any payload decoding.
func (d *Dispatcher) Dispatch(ctx context.Context, req models.ActionRequest) (*models.ActionResult, error) {
	d.logger.Debug().Str("action", req.Action).Msg("Dispatching action")

	var (
		result *models.ActionResult
		err    error
	)
	switch req.Action {
	case models.ActionPayBill:
		result, err = d.payBill(ctx, req.Payload)
	case models.ActionPayAllBills:
		result, err = d.payAllBills(ctx, req.Payload)
	case models.ActionDepositMoney:
		result, err = d.depositMoney(ctx, req.Payload)
	case models.ActionRedeemCashback:
		result, err = d.redeemCashback(ctx, req.Payload)
	case models.ActionAddToken:
		result, err = d.addToken(ctx, req.Payload)
	default:
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownAction, req.Action)
	}
	if err != nil {
		return nil, err
	}

	result.Action = req.Action
	result.Warning = d.ledger.PersistenceWarning()
	return result, nil
}

func decodePayload[T any](raw json.RawMessage, action string) (T, error) {
	var payload T
	if len(raw) == 0 {
		return payload, fmt.Errorf("%w: %s requires a payload", models.ErrInvalidArgument, action)
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return payload, fmt.Errorf("%w: malformed %s payload: %v", models.ErrInvalidArgument, action, err)
	}
	return payload, nil
}

func (d *Dispatcher) payBill(ctx context.Context, raw json.RawMessage) (*models.ActionResult, error) {
	payload, err := decodePayload[models.PayBillPayload](raw, models.ActionPayBill)
	if err != nil {
		return nil, err
	}

	payment, err := d.ledger.PayBill(ctx, payload.BillID, payload.Amount, payload.Category)
	if err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("Paid %s (%s), earned %s cashback", payment.Bill.Name, payment.Bill.Amount, payment.Cashback)
	if payment.AlreadyPaid {
		msg = fmt.Sprintf("%s is already paid", payment.Bill.Name)
	}
	return &models.ActionResult{
		Message:     msg,
		BillPayment: payment,
		Transaction: payment.Transaction,
	}, nil
}

// payAllBills settles each bill independently: one failing bill never stops
// the rest, and the per-bill outcomes report exactly what happened.
func (d *Dispatcher) payAllBills(ctx context.Context, raw json.RawMessage) (*models.ActionResult, error) {
	payload, err := decodePayload[models.PayAllBillsPayload](raw, models.ActionPayAllBills)
	if err != nil {
		return nil, err
	}
	if len(payload.BillIDs) == 0 {
		return nil, fmt.Errorf("%w: payAllBills requires at least one bill id", models.ErrInvalidArgument)
	}

	outcomes := make([]models.BillOutcome, 0, len(payload.BillIDs))
	paid := 0
	for _, id := range payload.BillIDs {
		bill, err := d.ledger.Bill(ctx, id)
		if err != nil {
			outcomes = append(outcomes, models.BillOutcome{
				BillID: id,
				Status: models.BillOutcomeFailed,
				Error:  err.Error(),
				Code:   models.ErrorCode(err),
			})
			continue
		}

		payment, err := d.ledger.PayBill(ctx, id, bill.Amount, bill.Category)
		switch {
		case err != nil:
			outcomes = append(outcomes, models.BillOutcome{
				BillID: id,
				Status: models.BillOutcomeFailed,
				Error:  err.Error(),
				Code:   models.ErrorCode(err),
			})
		case payment.AlreadyPaid:
			outcomes = append(outcomes, models.BillOutcome{BillID: id, Status: models.BillOutcomeAlreadyPaid})
		default:
			outcomes = append(outcomes, models.BillOutcome{BillID: id, Status: models.BillOutcomePaid})
			paid++
		}
	}

	return &models.ActionResult{
		Message:     fmt.Sprintf("Paid %d of %d bills", paid, len(payload.BillIDs)),
		BillResults: outcomes,
	}, nil
}

func (d *Dispatcher) depositMoney(ctx context.Context, raw json.RawMessage) (*models.ActionResult, error) {
	payload, err := decodePayload[models.DepositMoneyPayload](raw, models.ActionDepositMoney)
	if err != nil {
		return nil, err
	}

	tx, err := d.ledger.DepositMoney(ctx, payload.Amount, payload.Memo)
	if err != nil {
		return nil, err
	}
	return &models.ActionResult{
		Message:     fmt.Sprintf("Deposited %s", tx.Amount),
		Transaction: tx,
	}, nil
}

func (d *Dispatcher) redeemCashback(ctx context.Context, raw json.RawMessage) (*models.ActionResult, error) {
	payload, err := decodePayload[models.RedeemCashbackPayload](raw, models.ActionRedeemCashback)
	if err != nil {
		return nil, err
	}

	red, err := d.ledger.RedeemCashback(ctx, payload.Amount, payload.Method)
	if err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("Redeemed %s cashback to %s", red.Amount, red.Method)
	if red.Method == models.RedeemToToken {
		msg = fmt.Sprintf("Redeemed %s cashback for %s %s", red.Amount, red.TokenQuantity, red.TokenSymbol)
	}
	tx := red.Transaction
	return &models.ActionResult{
		Message:     msg,
		Redemption:  red,
		Transaction: &tx,
	}, nil
}

func (d *Dispatcher) addToken(ctx context.Context, raw json.RawMessage) (*models.ActionResult, error) {
	payload, err := decodePayload[models.AddTokenPayload](raw, models.ActionAddToken)
	if err != nil {
		return nil, err
	}

	token, err := d.ledger.AddToken(ctx, models.TokenSpec{
		Symbol:          payload.Symbol,
		Name:            payload.Name,
		UnitPrice:       payload.UnitPrice,
		InitialQuantity: payload.InitialQuantity,
	})
	if err != nil {
		return nil, err
	}
	return &models.ActionResult{
		Message: fmt.Sprintf("Added token %s", token.Symbol),
		Token:   token,
	}, nil
}
