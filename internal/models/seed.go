package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SeedSnapshot returns the first-run wallet state used when the persistence
// layer has no snapshot. Bill due dates are placed relative to now so the
// overdue derivation starts in a sensible state.
func SeedSnapshot(now time.Time) *Snapshot {
	return &Snapshot{
		Balance:         decimal.RequireFromString("1160.76"),
		CashbackBalance: decimal.RequireFromString("30.00"),
		Transactions:    []Transaction{},
		Tokens: []Token{
			{
				ID:            "btc",
				Symbol:        "BTC",
				Name:          "Bitcoin",
				Quantity:      decimal.RequireFromString("0.05"),
				UnitPrice:     decimal.RequireFromString("60000"),
				PercentChange: 2.5,
			},
			{
				ID:            "eth",
				Symbol:        "ETH",
				Name:          "Ethereum",
				Quantity:      decimal.RequireFromString("0.75"),
				UnitPrice:     decimal.RequireFromString("2800"),
				PercentChange: -1.2,
			},
			{
				ID:            "sol",
				Symbol:        "SOL",
				Name:          "Solana",
				Quantity:      decimal.RequireFromString("10"),
				UnitPrice:     decimal.RequireFromString("120"),
				PercentChange: 5.8,
			},
			{
				ID:            "usdc",
				Symbol:        "USDC",
				Name:          "USD Coin",
				Quantity:      decimal.RequireFromString("500"),
				UnitPrice:     decimal.RequireFromString("1"),
				PercentChange: 0,
			},
		},
		Bills: []Bill{
			{
				ID:       "bill_electricity",
				Name:     "Electricity Bill",
				Amount:   decimal.RequireFromString("89.99"),
				DueDate:  now.AddDate(0, 0, 14),
				Category: "Utilities",
				AutoPay: &AutoPaySettings{
					Enabled:       false,
					PaymentMethod: "Visa •••• 4242",
					PaymentDay:    10,
				},
			},
			{
				ID:       "bill_internet",
				Name:     "Internet Service",
				Amount:   decimal.RequireFromString("59.99"),
				DueDate:  now.AddDate(0, 0, 7),
				Category: "Utilities",
			},
			{
				ID:       "bill_netflix",
				Name:     "Netflix Subscription",
				Amount:   decimal.RequireFromString("15.49"),
				DueDate:  now.AddDate(0, 0, 3),
				Category: "Entertainment",
			},
			{
				ID:       "bill_rent",
				Name:     "Monthly Rent",
				Amount:   decimal.RequireFromString("1200.00"),
				DueDate:  now.AddDate(0, 0, 20),
				Category: "Housing",
			},
		},
		Contacts: []Contact{
			{ID: "contact_1", Name: "Sarah Johnson", Email: "sarah@example.com", Phone: "+1 (555) 123-4567"},
			{ID: "contact_2", Name: "John Smith", Email: "john@example.com", Phone: "+1 (555) 987-6543"},
			{ID: "contact_3", Name: "Mike Wilson", Email: "mike@example.com", Phone: "+1 (555) 456-7890"},
		},
	}
}
