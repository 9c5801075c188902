package dispatch

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LucraWealth/lucra-wallet/internal/common"
	"github.com/LucraWealth/lucra-wallet/internal/models"
)

func newTestDispatcher(t *testing.T) (*Dispatcher, *fakeLedger) {
	t.Helper()
	ledger := newFakeLedger()
	return NewDispatcher(ledger, common.NewSilentLogger()), ledger
}

func payload(t *testing.T, v any) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}

func TestDispatchUnknownAction(t *testing.T) {
	d, _ := newTestDispatcher(t)

	_, err := d.Dispatch(context.Background(), models.ActionRequest{Action: "dropTables"})
	assert.ErrorIs(t, err, models.ErrUnknownAction)
}

func TestDispatchRequiresPayload(t *testing.T) {
	d, _ := newTestDispatcher(t)

	_, err := d.Dispatch(context.Background(), models.ActionRequest{Action: models.ActionPayBill})
	assert.ErrorIs(t, err, models.ErrInvalidArgument)

	_, err = d.Dispatch(context.Background(), models.ActionRequest{
		Action:  models.ActionDepositMoney,
		Payload: json.RawMessage(`{"amount": "not-a-number"}`),
	})
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
}

func TestDispatchPayBill(t *testing.T) {
	d, ledger := newTestDispatcher(t)

	result, err := d.Dispatch(context.Background(), models.ActionRequest{
		Action:  models.ActionPayBill,
		Payload: payload(t, models.PayBillPayload{BillID: "bill_netflix", Amount: decimal.RequireFromString("15.49")}),
	})
	require.NoError(t, err)
	assert.Equal(t, models.ActionPayBill, result.Action)
	require.NotNil(t, result.BillPayment)
	assert.True(t, result.BillPayment.Bill.IsPaid)
	assert.Equal(t, 1, ledger.payBillCalls)
}

func TestDispatchDepositMoney(t *testing.T) {
	d, _ := newTestDispatcher(t)

	result, err := d.Dispatch(context.Background(), models.ActionRequest{
		Action:  models.ActionDepositMoney,
		Payload: payload(t, models.DepositMoneyPayload{Amount: decimal.RequireFromString("100.00")}),
	})
	require.NoError(t, err)
	require.NotNil(t, result.Transaction)
	assert.Equal(t, models.TxDeposit, result.Transaction.Kind)
}

func TestDispatchPayAllBillsContinuesPastFailures(t *testing.T) {
	d, ledger := newTestDispatcher(t)
	ledger.failBills["bill_rent"] = models.ErrInsufficientFunds

	result, err := d.Dispatch(context.Background(), models.ActionRequest{
		Action:  models.ActionPayAllBills,
		Payload: payload(t, models.PayAllBillsPayload{BillIDs: []string{"bill_netflix", "bill_rent", "bill_missing", "bill_paid"}}),
	})
	require.NoError(t, err, "individual bill failures do not fail the batch")
	require.Len(t, result.BillResults, 4)

	byID := map[string]models.BillOutcome{}
	for _, o := range result.BillResults {
		byID[o.BillID] = o
	}
	assert.Equal(t, models.BillOutcomePaid, byID["bill_netflix"].Status)
	assert.Equal(t, models.BillOutcomeFailed, byID["bill_rent"].Status)
	assert.Equal(t, "INSUFFICIENT_FUNDS", byID["bill_rent"].Code)
	assert.Equal(t, models.BillOutcomeFailed, byID["bill_missing"].Status)
	assert.Equal(t, "BILL_NOT_FOUND", byID["bill_missing"].Code)
	assert.Equal(t, models.BillOutcomeAlreadyPaid, byID["bill_paid"].Status)
}

func TestDispatchRedeemCashback(t *testing.T) {
	d, _ := newTestDispatcher(t)

	result, err := d.Dispatch(context.Background(), models.ActionRequest{
		Action:  models.ActionRedeemCashback,
		Payload: payload(t, models.RedeemCashbackPayload{Amount: decimal.RequireFromString("5.00"), Method: models.RedeemToWallet}),
	})
	require.NoError(t, err)
	require.NotNil(t, result.Redemption)
	assert.Equal(t, models.RedeemToWallet, result.Redemption.Method)
}

func TestDispatchAddToken(t *testing.T) {
	d, _ := newTestDispatcher(t)

	result, err := d.Dispatch(context.Background(), models.ActionRequest{
		Action: models.ActionAddToken,
		Payload: payload(t, models.AddTokenPayload{
			Symbol:    "doge",
			Name:      "Dogecoin",
			UnitPrice: decimal.RequireFromString("0.10"),
		}),
	})
	require.NoError(t, err)
	require.NotNil(t, result.Token)
	assert.Equal(t, "DOGE", result.Token.Symbol)
}

func TestDispatchSurfacesPersistenceWarning(t *testing.T) {
	d, ledger := newTestDispatcher(t)
	ledger.warning = "disk full"

	result, err := d.Dispatch(context.Background(), models.ActionRequest{
		Action:  models.ActionDepositMoney,
		Payload: payload(t, models.DepositMoneyPayload{Amount: decimal.RequireFromString("10.00")}),
	})
	require.NoError(t, err)
	assert.Equal(t, "disk full", result.Warning)
}
