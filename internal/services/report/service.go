// Package report renders PNG charts from ledger state.
package report

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/LucraWealth/lucra-wallet/internal/common"
	"github.com/LucraWealth/lucra-wallet/internal/interfaces"
	"github.com/LucraWealth/lucra-wallet/internal/models"
	"github.com/LucraWealth/lucra-wallet/internal/services/rewards"
)

// Service renders spending and cashback charts from the ledger.
type Service struct {
	ledger interfaces.LedgerService
	policy *rewards.Policy
	logger *common.Logger
}

var _ interfaces.ReportService = (*Service)(nil)

// NewService creates a report service bound to the given ledger.
func NewService(ledger interfaces.LedgerService, policy *rewards.Policy, logger *common.Logger) *Service {
	if policy == nil {
		policy = rewards.DefaultPolicy()
	}
	if logger == nil {
		logger = common.NewDefaultLogger()
	}
	return &Service{ledger: ledger, policy: policy, logger: logger}
}

// SpendingChart renders a PNG bar chart of outflow totals by category.
func (s *Service) SpendingChart(ctx context.Context, w io.Writer) error {
	txs := s.ledger.Transactions(ctx, interfaces.TransactionFilter{})

	totals := map[string]float64{}
	for _, tx := range txs {
		if !models.IsOutflowKind(tx.Kind) {
			continue
		}
		category := tx.Category
		if category == "" {
			category = "Other"
		}
		amount, _ := tx.Amount.Float64()
		totals[category] += amount
	}
	if len(totals) == 0 {
		return fmt.Errorf("no spending to chart")
	}

	categories := make([]string, 0, len(totals))
	for c := range totals {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool {
		return totals[categories[i]] > totals[categories[j]]
	})

	bars := make([]chart.Value, len(categories))
	for i, c := range categories {
		bars[i] = chart.Value{Label: c, Value: totals[c]}
	}

	graph := chart.BarChart{
		Title:  "Spending by Category",
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		BarWidth: 60,
		Bars:     bars,
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("$%.0f", f)
				}
				return ""
			},
		},
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("chart render failed: %w", err)
	}
	return nil
}

// CashbackChart renders a PNG line chart of cumulative cashback accrued by
// payments over time.
func (s *Service) CashbackChart(ctx context.Context, w io.Writer) error {
	txs := s.ledger.Transactions(ctx, interfaces.TransactionFilter{Kind: models.TxPayment})
	if len(txs) < 2 {
		return fmt.Errorf("need at least 2 payments to chart, got %d", len(txs))
	}

	// Transactions arrive newest-first; the series needs ascending time.
	sort.Slice(txs, func(i, j int) bool {
		return txs[i].Timestamp.Before(txs[j].Timestamp)
	})

	xValues := make([]time.Time, len(txs))
	yValues := make([]float64, len(txs))
	running := 0.0
	for i, tx := range txs {
		accrued, _ := s.policy.Accrual(tx.Amount).Float64()
		running += accrued
		xValues[i] = tx.Timestamp
		yValues[i] = running
	}

	series := chart.TimeSeries{
		Name: "Cashback Earned",
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("16a34a"), // green-600
			StrokeWidth: 2.5,
		},
		XValues: xValues,
		YValues: yValues,
	}

	graph := chart.Chart{
		Title:  "Cumulative Cashback",
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format("Jan 02")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("$%.2f", f)
				}
				return ""
			},
		},
		Series: []chart.Series{series},
	}

	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("chart render failed: %w", err)
	}
	return nil
}
