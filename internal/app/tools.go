package app

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// registerTools registers all MCP tools on the App's MCPServer.
func (a *App) registerTools() {
	s := a.MCPServer

	s.AddTool(createGetVersionTool(), handleGetVersion())
	s.AddTool(createWalletSummaryTool(), handleWalletSummary(a.Ledger, a.Logger))
	s.AddTool(createListTransactionsTool(), handleListTransactions(a.Ledger, a.Logger))
	s.AddTool(createListBillsTool(), handleListBills(a.Ledger, a.Logger))
	s.AddTool(createPayBillTool(), handlePayBill(a.Ledger, a.Dispatcher, a.Logger))
	s.AddTool(createPayAllBillsTool(), handlePayAllBills(a.Dispatcher, a.Logger))
	s.AddTool(createDepositMoneyTool(), handleDepositMoney(a.Dispatcher, a.Logger))
	s.AddTool(createRedeemCashbackTool(), handleRedeemCashback(a.Dispatcher, a.Logger))
	s.AddTool(createAddTokenTool(), handleAddToken(a.Dispatcher, a.Logger))
}

// createGetVersionTool returns the get_version tool definition
func createGetVersionTool() mcp.Tool {
	return mcp.NewTool("get_version",
		mcp.WithDescription("Get the Lucra wallet server version and status. Use this to verify connectivity."),
	)
}

// createWalletSummaryTool returns the wallet_summary tool definition
func createWalletSummaryTool() mcp.Tool {
	return mcp.NewTool("wallet_summary",
		mcp.WithDescription("Get the wallet summary: balance, cashback balance, token portfolio value, and bill counts."),
	)
}

// createListTransactionsTool returns the list_transactions tool definition
func createListTransactionsTool() mcp.Tool {
	return mcp.NewTool("list_transactions",
		mcp.WithDescription("List wallet transactions newest-first, optionally filtered by kind or category."),
		mcp.WithString("kind",
			mcp.Description("Filter by kind: send, receive, payment, deposit, withdrawal, swap, buy, sell, cashback"),
		),
		mcp.WithString("category",
			mcp.Description("Filter by category (e.g., 'Utilities', 'Entertainment')"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum results to return (default: 20, max: 100)"),
		),
	)
}

// createListBillsTool returns the list_bills tool definition
func createListBillsTool() mcp.Tool {
	return mcp.NewTool("list_bills",
		mcp.WithDescription("List all bills with amounts, due dates, and paid/overdue state."),
		mcp.WithBoolean("unpaid_only",
			mcp.Description("Only return unpaid bills (default: false)"),
		),
	)
}

// createPayBillTool returns the pay_bill tool definition
func createPayBillTool() mcp.Tool {
	return mcp.NewTool("pay_bill",
		mcp.WithDescription("Pay a bill by id. Debits the balance, accrues cashback, and marks the bill paid. Paying an already-paid bill is a no-op."),
		mcp.WithString("bill_id",
			mcp.Required(),
			mcp.Description("Bill identifier (e.g., 'bill_netflix')"),
		),
		mcp.WithString("amount",
			mcp.Description("Payment amount as a decimal string; defaults to the bill's amount"),
		),
	)
}

// createPayAllBillsTool returns the pay_all_bills tool definition
func createPayAllBillsTool() mcp.Tool {
	return mcp.NewTool("pay_all_bills",
		mcp.WithDescription("Pay a batch of bills by id. Each bill settles independently; failures are reported per bill and never stop the rest."),
		mcp.WithArray("bill_ids",
			mcp.WithStringItems(),
			mcp.Required(),
			mcp.Description("Bill identifiers to pay"),
		),
	)
}

// createDepositMoneyTool returns the deposit_money tool definition
func createDepositMoneyTool() mcp.Tool {
	return mcp.NewTool("deposit_money",
		mcp.WithDescription("Deposit money into the wallet balance."),
		mcp.WithString("amount",
			mcp.Required(),
			mcp.Description("Deposit amount as a decimal string (e.g., '100.00')"),
		),
		mcp.WithString("memo",
			mcp.Description("Optional memo shown as the transaction title"),
		),
	)
}

// createRedeemCashbackTool returns the redeem_cashback tool definition
func createRedeemCashbackTool() mcp.Tool {
	return mcp.NewTool("redeem_cashback",
		mcp.WithDescription("Redeem cashback to the wallet balance, to a bank account, or into the reward token (with bonus)."),
		mcp.WithString("amount",
			mcp.Required(),
			mcp.Description("Redemption amount as a decimal string"),
		),
		mcp.WithString("method",
			mcp.Required(),
			mcp.Description("Destination: wallet, bank, or token"),
		),
	)
}

// createAddTokenTool returns the add_token tool definition
func createAddTokenTool() mcp.Tool {
	return mcp.NewTool("add_token",
		mcp.WithDescription("Add a new token holding to the wallet."),
		mcp.WithString("symbol",
			mcp.Required(),
			mcp.Description("Token symbol (e.g., 'DOGE')"),
		),
		mcp.WithString("name",
			mcp.Description("Display name; defaults to the symbol"),
		),
		mcp.WithString("unit_price",
			mcp.Required(),
			mcp.Description("Unit price as a decimal string"),
		),
		mcp.WithString("initial_quantity",
			mcp.Description("Starting quantity as a decimal string (default: 0)"),
		),
	)
}
