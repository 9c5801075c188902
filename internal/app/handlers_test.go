package app

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LucraWealth/lucra-wallet/internal/common"
	"github.com/LucraWealth/lucra-wallet/internal/interfaces"
	"github.com/LucraWealth/lucra-wallet/internal/models"
	"github.com/LucraWealth/lucra-wallet/internal/services/dispatch"
	"github.com/LucraWealth/lucra-wallet/internal/services/ledger"
	"github.com/LucraWealth/lucra-wallet/internal/services/rewards"
)

// memSnapshots keeps the snapshot in memory for handler tests.
type memSnapshots struct {
	snap *models.Snapshot
}

func (m *memSnapshots) Load(ctx context.Context) (*models.Snapshot, error) {
	return m.snap, nil
}

func (m *memSnapshots) Save(ctx context.Context, snapshot *models.Snapshot) error {
	m.snap = snapshot
	return nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestServices(t *testing.T) (interfaces.LedgerService, interfaces.Dispatcher, *common.Logger) {
	t.Helper()
	logger := common.NewSilentLogger()
	svc, err := ledger.NewService(context.Background(), &memSnapshots{}, rewards.DefaultPolicy(), logger)
	require.NoError(t, err)
	return svc, dispatch.NewDispatcher(svc, logger), logger
}

func toolText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, result.Content, 1)
	tc, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return tc.Text
}

func TestHandleWalletSummary(t *testing.T) {
	ledgerSvc, _, logger := newTestServices(t)
	handler := handleWalletSummary(ledgerSvc, logger)

	result, err := handler(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	require.False(t, result.IsError)

	text := toolText(t, result)
	assert.Contains(t, text, "Balance: $1160.76")
	assert.Contains(t, text, "Cashback: $30.00")
	assert.Contains(t, text, "4 unpaid")
}

func TestHandleListBills_UnpaidOnly(t *testing.T) {
	ledgerSvc, dispatcher, logger := newTestServices(t)

	payHandler := handlePayBill(ledgerSvc, dispatcher, logger)
	request := mcp.CallToolRequest{}
	request.Params.Arguments = map[string]interface{}{"bill_id": "bill_netflix"}
	result, err := payHandler(context.Background(), request)
	require.NoError(t, err)
	require.False(t, result.IsError, toolText(t, result))

	listHandler := handleListBills(ledgerSvc, logger)
	request = mcp.CallToolRequest{}
	request.Params.Arguments = map[string]interface{}{"unpaid_only": true}
	result, err = listHandler(context.Background(), request)
	require.NoError(t, err)

	text := toolText(t, result)
	assert.Contains(t, text, "Bills (3)")
	assert.NotContains(t, text, "bill_netflix")
}

func TestHandlePayBill_DefaultsToBillAmount(t *testing.T) {
	ledgerSvc, dispatcher, logger := newTestServices(t)
	handler := handlePayBill(ledgerSvc, dispatcher, logger)

	request := mcp.CallToolRequest{}
	request.Params.Arguments = map[string]interface{}{"bill_id": "bill_netflix"}
	result, err := handler(context.Background(), request)
	require.NoError(t, err)
	require.False(t, result.IsError, toolText(t, result))
	assert.Contains(t, toolText(t, result), "Netflix")

	// Balance reflects the bill's own amount
	assert.True(t, ledgerSvc.Balance(context.Background()).Equal(dec("1145.27")))
}

func TestHandlePayBill_MissingBillID(t *testing.T) {
	ledgerSvc, dispatcher, logger := newTestServices(t)
	handler := handlePayBill(ledgerSvc, dispatcher, logger)

	result, err := handler(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleDepositMoney_InvalidAmount(t *testing.T) {
	_, dispatcher, logger := newTestServices(t)
	handler := handleDepositMoney(dispatcher, logger)

	request := mcp.CallToolRequest{}
	request.Params.Arguments = map[string]interface{}{"amount": "lots"}
	result, err := handler(context.Background(), request)
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, toolText(t, result), "invalid amount")
}

func TestHandleRedeemCashback(t *testing.T) {
	ledgerSvc, dispatcher, logger := newTestServices(t)
	handler := handleRedeemCashback(dispatcher, logger)

	request := mcp.CallToolRequest{}
	request.Params.Arguments = map[string]interface{}{"amount": "10.00", "method": "wallet"}
	result, err := handler(context.Background(), request)
	require.NoError(t, err)
	require.False(t, result.IsError, toolText(t, result))

	assert.True(t, ledgerSvc.CashbackBalance(context.Background()).Equal(dec("20.00")))
	assert.True(t, ledgerSvc.Balance(context.Background()).Equal(dec("1170.76")))
}

func TestHandlePayAllBills_ReportsOutcomes(t *testing.T) {
	_, dispatcher, logger := newTestServices(t)
	handler := handlePayAllBills(dispatcher, logger)

	request := mcp.CallToolRequest{}
	request.Params.Arguments = map[string]interface{}{
		"bill_ids": []interface{}{"bill_netflix", "bill_missing"},
	}
	result, err := handler(context.Background(), request)
	require.NoError(t, err)
	require.False(t, result.IsError)

	text := toolText(t, result)
	assert.Contains(t, text, "Paid 1 of 2 bills")
	assert.Contains(t, text, "bill_netflix: paid")
	assert.Contains(t, text, "bill_missing: failed")
}

func TestHandleAddToken_MissingSymbol(t *testing.T) {
	_, dispatcher, logger := newTestServices(t)
	handler := handleAddToken(dispatcher, logger)

	request := mcp.CallToolRequest{}
	request.Params.Arguments = map[string]interface{}{"unit_price": "0.10"}
	result, err := handler(context.Background(), request)
	require.NoError(t, err)
	assert.True(t, result.IsError)
}
