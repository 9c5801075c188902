// Package assistant provides the Lina chat assistant client backed by the
// Google Gemini API. The assistant only ever proposes actions; execution
// goes through the dispatcher after user confirmation.
package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/LucraWealth/lucra-wallet/internal/common"
	"github.com/LucraWealth/lucra-wallet/internal/interfaces"
	"github.com/LucraWealth/lucra-wallet/internal/models"
)

const DefaultModel = "gemini-2.0-flash"

// Client implements the AssistantClient interface.
type Client struct {
	client *genai.Client
	model  string
	logger *common.Logger
}

var _ interfaces.AssistantClient = (*Client)(nil)

// ClientOption configures the client.
type ClientOption func(*Client)

// WithModel sets the model to use.
func WithModel(model string) ClientOption {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new assistant client.
func NewClient(ctx context.Context, apiKey string, opts ...ClientOption) (*Client, error) {
	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	c := &Client{
		client: genaiClient,
		model:  DefaultModel,
		logger: common.NewSilentLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ProcessQuery sends the user's query with wallet context to the model and
// parses the reply envelope. A reply that fails to parse degrades to a plain
// text answer instead of an error.
func (c *Client) ProcessQuery(ctx context.Context, query string, wallet *models.Snapshot, sessionID string) (*models.AssistantReply, error) {
	prompt, err := buildPrompt(query, wallet)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().Str("model", c.model).Str("session_id", sessionID).Msg("Processing assistant query")

	contents := genai.Text(prompt)
	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("assistant query failed: %w", err)
	}

	text, err := extractTextFromResponse(result)
	if err != nil {
		return nil, err
	}
	return parseReply(text, c.logger), nil
}

// buildPrompt composes the system instructions, the wallet context document,
// and the user query.
func buildPrompt(query string, wallet *models.Snapshot) (string, error) {
	context, err := json.Marshal(walletContext(wallet))
	if err != nil {
		return "", fmt.Errorf("failed to encode wallet context: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(`You are Lina, the Lucra wallet assistant. Answer questions about the
user's wallet using only the wallet state below. When the user asks to move
money, do not claim it happened; instead reply with an action proposal.

Respond with a single JSON object, no markdown fences, in one of two forms.

Informational:
{"success": true, "responseText": "...", "suggestedActions": [{"title": "...", "query": "..."}]}

Action proposal (only for payBill, payAllBills, depositMoney, redeemCashback, addToken):
{"success": true, "action": {"action": "payBill", "payload": {"billId": "...", "amount": "..."}}, "confirmation_message": "..."}

Amounts are decimal strings. Never invent bill or token identifiers.

Wallet state:
`)
	sb.Write(context)
	sb.WriteString("\n\nUser query: ")
	sb.WriteString(query)
	return sb.String(), nil
}

// walletContext trims the snapshot to what the model needs: balances plus
// bill and token listings. Full transaction history stays local.
func walletContext(wallet *models.Snapshot) map[string]any {
	if wallet == nil {
		return map[string]any{}
	}

	bills := make([]map[string]any, len(wallet.Bills))
	for i, b := range wallet.Bills {
		bills[i] = map[string]any{
			"id":         b.ID,
			"name":       b.Name,
			"amount":     b.Amount,
			"due_date":   b.DueDate,
			"category":   b.Category,
			"is_paid":    b.IsPaid,
			"is_overdue": b.IsOverdue,
		}
	}
	tokens := make([]map[string]any, len(wallet.Tokens))
	for i, t := range wallet.Tokens {
		tokens[i] = map[string]any{
			"id":         t.ID,
			"symbol":     t.Symbol,
			"name":       t.Name,
			"quantity":   t.Quantity,
			"unit_price": t.UnitPrice,
		}
	}

	return map[string]any{
		"balance":          wallet.Balance,
		"cashback_balance": wallet.CashbackBalance,
		"portfolio_value":  wallet.PortfolioValue(),
		"bills":            bills,
		"tokens":           tokens,
		"recent_transactions": func() []map[string]any {
			n := len(wallet.Transactions)
			start := n - 10
			if start < 0 {
				start = 0
			}
			recent := make([]map[string]any, 0, n-start)
			for i := n - 1; i >= start; i-- {
				tx := wallet.Transactions[i]
				recent = append(recent, map[string]any{
					"kind":      tx.Kind,
					"title":     tx.Title,
					"amount":    tx.Amount,
					"timestamp": tx.Timestamp,
					"category":  tx.Category,
				})
			}
			return recent
		}(),
	}
}

// parseReply decodes the model's JSON envelope. Replies that are not valid
// envelopes degrade to plain text so a chatty model never breaks the flow.
func parseReply(text string, logger *common.Logger) *models.AssistantReply {
	cleaned := stripFences(text)

	var reply models.AssistantReply
	if err := json.Unmarshal([]byte(cleaned), &reply); err != nil {
		logger.Debug().Err(err).Msg("Assistant reply is not a JSON envelope, passing through as text")
		return &models.AssistantReply{Success: true, ResponseText: strings.TrimSpace(text)}
	}

	// An envelope proposing an unknown action is downgraded to its
	// confirmation text; the dispatcher would reject it anyway.
	if reply.Action != nil {
		switch reply.Action.Action {
		case models.ActionPayBill, models.ActionPayAllBills, models.ActionDepositMoney,
			models.ActionRedeemCashback, models.ActionAddToken:
		default:
			logger.Warn().Str("action", reply.Action.Action).Msg("Assistant proposed an unsupported action, dropping it")
			if reply.ResponseText == "" {
				reply.ResponseText = reply.ConfirmationMessage
			}
			reply.Action = nil
			reply.ConfirmationMessage = ""
		}
	}
	return &reply
}

// stripFences removes a surrounding ```json ... ``` block if present.
func stripFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

func extractTextFromResponse(result *genai.GenerateContentResponse) (string, error) {
	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated")
	}

	text := ""
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
	}
	return text, nil
}
