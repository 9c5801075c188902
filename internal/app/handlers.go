package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/shopspring/decimal"

	"github.com/LucraWealth/lucra-wallet/internal/common"
	"github.com/LucraWealth/lucra-wallet/internal/interfaces"
	"github.com/LucraWealth/lucra-wallet/internal/models"
)

// handleGetVersion implements the get_version tool
func handleGetVersion() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result := fmt.Sprintf("Lucra Wallet Server\nVersion: %s\nBuild: %s\nCommit: %s\nStatus: OK",
			common.GetVersion(), common.GetBuild(), common.GetGitCommit())
		return textResult(result), nil
	}
}

// handleWalletSummary implements the wallet_summary tool
func handleWalletSummary(ledger interfaces.LedgerService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		snap := ledger.Snapshot(ctx)

		unpaid, overdue := 0, 0
		for _, b := range snap.Bills {
			if !b.IsPaid {
				unpaid++
				if b.IsOverdue {
					overdue++
				}
			}
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "# Wallet Summary\n\n")
		fmt.Fprintf(&sb, "- Balance: $%s\n", snap.Balance.StringFixed(2))
		fmt.Fprintf(&sb, "- Cashback: $%s\n", snap.CashbackBalance.StringFixed(2))
		fmt.Fprintf(&sb, "- Portfolio value: $%s (%d tokens)\n", snap.PortfolioValue().StringFixed(2), len(snap.Tokens))
		fmt.Fprintf(&sb, "- Bills: %d unpaid (%d overdue)\n", unpaid, overdue)
		fmt.Fprintf(&sb, "- Transactions: %d\n", len(snap.Transactions))
		return textResult(sb.String()), nil
	}
}

// handleListTransactions implements the list_transactions tool
func handleListTransactions(ledger interfaces.LedgerService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		limit := request.GetInt("limit", 20)
		if limit > 100 {
			limit = 100
		}
		filter := interfaces.TransactionFilter{
			Kind:     models.TransactionKind(request.GetString("kind", "")),
			Category: request.GetString("category", ""),
			Limit:    limit,
		}
		if filter.Kind != "" && !models.ValidTransactionKind(filter.Kind) {
			return errorResult(fmt.Sprintf("Error: unknown transaction kind %q", filter.Kind)), nil
		}

		txs := ledger.Transactions(ctx, filter)
		if len(txs) == 0 {
			return textResult("No transactions found."), nil
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "# Transactions (%d)\n\n", len(txs))
		for _, tx := range txs {
			sign := "+"
			if models.IsOutflowKind(tx.Kind) {
				sign = "-"
			}
			fmt.Fprintf(&sb, "- %s  %s$%s  %s [%s]\n",
				tx.Timestamp.Format("2006-01-02"), sign, tx.Amount.StringFixed(2), tx.Title, tx.Kind)
		}
		return textResult(sb.String()), nil
	}
}

// handleListBills implements the list_bills tool
func handleListBills(ledger interfaces.LedgerService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		unpaidOnly := request.GetBool("unpaid_only", false)

		bills := ledger.Bills(ctx)
		var sb strings.Builder
		count := 0
		for _, b := range bills {
			if unpaidOnly && b.IsPaid {
				continue
			}
			count++
			state := "unpaid"
			if b.IsPaid {
				state = "paid"
			} else if b.IsOverdue {
				state = "OVERDUE"
			}
			fmt.Fprintf(&sb, "- %s: %s  $%s  due %s  [%s]\n",
				b.ID, b.Name, b.Amount.StringFixed(2), b.DueDate.Format("2006-01-02"), state)
		}
		if count == 0 {
			return textResult("No bills found."), nil
		}
		return textResult(fmt.Sprintf("# Bills (%d)\n\n%s", count, sb.String())), nil
	}
}

// handlePayBill implements the pay_bill tool
func handlePayBill(ledger interfaces.LedgerService, dispatcher interfaces.Dispatcher, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		billID, err := request.RequireString("bill_id")
		if err != nil || billID == "" {
			return errorResult("Error: bill_id parameter is required"), nil
		}

		amount := request.GetString("amount", "")
		if amount == "" {
			bill, err := ledger.Bill(ctx, billID)
			if err != nil {
				return errorResult(fmt.Sprintf("Error: %v", err)), nil
			}
			amount = bill.Amount.String()
		} else if _, err := decimal.NewFromString(amount); err != nil {
			return errorResult(fmt.Sprintf("Error: invalid amount %q", amount)), nil
		}
		payload := map[string]any{"billId": billID, "amount": amount}

		result, err := dispatchAction(ctx, dispatcher, models.ActionPayBill, payload)
		if err != nil {
			logger.Error().Err(err).Str("bill_id", billID).Msg("Bill payment failed")
			return errorResult(fmt.Sprintf("Payment error: %v", err)), nil
		}
		return actionResult(result), nil
	}
}

// handlePayAllBills implements the pay_all_bills tool
func handlePayAllBills(dispatcher interfaces.Dispatcher, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		billIDs := request.GetStringSlice("bill_ids", nil)
		if len(billIDs) == 0 {
			return errorResult("Error: bill_ids parameter is required"), nil
		}

		result, err := dispatchAction(ctx, dispatcher, models.ActionPayAllBills, map[string]any{"billIds": billIDs})
		if err != nil {
			logger.Error().Err(err).Msg("Batch bill payment failed")
			return errorResult(fmt.Sprintf("Payment error: %v", err)), nil
		}

		var sb strings.Builder
		sb.WriteString(result.Message + "\n\n")
		for _, o := range result.BillResults {
			if o.Error != "" {
				fmt.Fprintf(&sb, "- %s: %s (%s)\n", o.BillID, o.Status, o.Error)
			} else {
				fmt.Fprintf(&sb, "- %s: %s\n", o.BillID, o.Status)
			}
		}
		if result.Warning != "" {
			fmt.Fprintf(&sb, "\nWarning: %s\n", result.Warning)
		}
		return textResult(sb.String()), nil
	}
}

// handleDepositMoney implements the deposit_money tool
func handleDepositMoney(dispatcher interfaces.Dispatcher, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		amount, err := request.RequireString("amount")
		if err != nil || amount == "" {
			return errorResult("Error: amount parameter is required"), nil
		}
		if _, err := decimal.NewFromString(amount); err != nil {
			return errorResult(fmt.Sprintf("Error: invalid amount %q", amount)), nil
		}

		payload := map[string]any{"amount": amount}
		if memo := request.GetString("memo", ""); memo != "" {
			payload["memo"] = memo
		}

		result, err := dispatchAction(ctx, dispatcher, models.ActionDepositMoney, payload)
		if err != nil {
			logger.Error().Err(err).Msg("Deposit failed")
			return errorResult(fmt.Sprintf("Deposit error: %v", err)), nil
		}
		return actionResult(result), nil
	}
}

// handleRedeemCashback implements the redeem_cashback tool
func handleRedeemCashback(dispatcher interfaces.Dispatcher, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		amount, err := request.RequireString("amount")
		if err != nil || amount == "" {
			return errorResult("Error: amount parameter is required"), nil
		}
		method, err := request.RequireString("method")
		if err != nil || method == "" {
			return errorResult("Error: method parameter is required"), nil
		}
		if _, err := decimal.NewFromString(amount); err != nil {
			return errorResult(fmt.Sprintf("Error: invalid amount %q", amount)), nil
		}

		result, err := dispatchAction(ctx, dispatcher, models.ActionRedeemCashback,
			map[string]any{"amount": amount, "method": method})
		if err != nil {
			logger.Error().Err(err).Str("method", method).Msg("Cashback redemption failed")
			return errorResult(fmt.Sprintf("Redemption error: %v", err)), nil
		}
		return actionResult(result), nil
	}
}

// handleAddToken implements the add_token tool
func handleAddToken(dispatcher interfaces.Dispatcher, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		symbol, err := request.RequireString("symbol")
		if err != nil || symbol == "" {
			return errorResult("Error: symbol parameter is required"), nil
		}
		unitPrice, err := request.RequireString("unit_price")
		if err != nil || unitPrice == "" {
			return errorResult("Error: unit_price parameter is required"), nil
		}
		if _, err := decimal.NewFromString(unitPrice); err != nil {
			return errorResult(fmt.Sprintf("Error: invalid unit_price %q", unitPrice)), nil
		}

		payload := map[string]any{
			"symbol":    symbol,
			"unitPrice": unitPrice,
		}
		if name := request.GetString("name", ""); name != "" {
			payload["name"] = name
		}
		if qty := request.GetString("initial_quantity", ""); qty != "" {
			if _, err := decimal.NewFromString(qty); err != nil {
				return errorResult(fmt.Sprintf("Error: invalid initial_quantity %q", qty)), nil
			}
			payload["initialQuantity"] = qty
		}

		result, err := dispatchAction(ctx, dispatcher, models.ActionAddToken, payload)
		if err != nil {
			logger.Error().Err(err).Str("symbol", symbol).Msg("Add token failed")
			return errorResult(fmt.Sprintf("Add token error: %v", err)), nil
		}
		return actionResult(result), nil
	}
}

// dispatchAction marshals the payload and routes it through the dispatcher.
func dispatchAction(ctx context.Context, dispatcher interfaces.Dispatcher, action string, payload map[string]any) (*models.ActionResult, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return dispatcher.Dispatch(ctx, models.ActionRequest{Action: action, Payload: raw})
}

// actionResult renders a dispatcher result as tool output.
func actionResult(result *models.ActionResult) *mcp.CallToolResult {
	text := result.Message
	if result.Warning != "" {
		text += "\nWarning: " + result.Warning
	}
	return textResult(text)
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
		IsError: true,
	}
}
