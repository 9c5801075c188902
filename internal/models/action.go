package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Action names accepted by the dispatcher. Anything outside this set is
// rejected before reaching the ledger.
const (
	ActionPayBill        = "payBill"
	ActionPayAllBills    = "payAllBills"
	ActionDepositMoney   = "depositMoney"
	ActionRedeemCashback = "redeemCashback"
	ActionAddToken       = "addToken"
)

// ActionRequest is the envelope an external caller (the chat assistant or a
// screen) submits. Payload is decoded into the action's typed payload;
// unknown actions are rejected.
type ActionRequest struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// PayBillPayload is the payload for the payBill action.
type PayBillPayload struct {
	BillID   string          `json:"billId"`
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category,omitempty"`
}

// PayAllBillsPayload is the payload for the payAllBills action.
type PayAllBillsPayload struct {
	BillIDs []string `json:"billIds"`
}

// DepositMoneyPayload is the payload for the depositMoney action.
type DepositMoneyPayload struct {
	Amount decimal.Decimal `json:"amount"`
	Memo   string          `json:"memo,omitempty"`
}

// RedeemCashbackPayload is the payload for the redeemCashback action.
type RedeemCashbackPayload struct {
	Amount decimal.Decimal  `json:"amount"`
	Method RedemptionMethod `json:"method"`
}

// AddTokenPayload is the payload for the addToken action.
type AddTokenPayload struct {
	Symbol          string          `json:"symbol"`
	Name            string          `json:"name"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	InitialQuantity decimal.Decimal `json:"initialQuantity"`
}

// Bill outcome statuses reported by payAllBills.
const (
	BillOutcomePaid        = "paid"
	BillOutcomeAlreadyPaid = "already_paid"
	BillOutcomeFailed      = "failed"
)

// BillOutcome reports the result of one bill within a payAllBills batch.
type BillOutcome struct {
	BillID string `json:"bill_id"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Code   string `json:"code,omitempty"`
}

// ActionResult is the dispatcher's reply for a successfully routed action.
// Only the fields relevant to the action are populated.
type ActionResult struct {
	Action      string        `json:"action"`
	Message     string        `json:"message,omitempty"`
	Transaction *Transaction  `json:"transaction,omitempty"`
	BillPayment *BillPayment  `json:"bill_payment,omitempty"`
	BillResults []BillOutcome `json:"bill_results,omitempty"`
	Redemption  *Redemption   `json:"redemption,omitempty"`
	Token       *Token        `json:"token,omitempty"`
	Warning     string        `json:"warning,omitempty"`
}

// SuggestedAction is a follow-up query the assistant offers the user.
type SuggestedAction struct {
	Title string `json:"title"`
	Query string `json:"query"`
}

// AssistantReply is the parsed envelope returned by the Lina assistant
// service. Either ResponseText (plain answer, possibly with suggestions) or
// Action + ConfirmationMessage (a proposed mutation awaiting user
// confirmation) is set. The text is opaque to the engine and passed through
// to the UI unchanged.
type AssistantReply struct {
	Success             bool              `json:"success"`
	ResponseText        string            `json:"responseText,omitempty"`
	SuggestedActions    []SuggestedAction `json:"suggestedActions,omitempty"`
	Action              *ActionRequest    `json:"action,omitempty"`
	ConfirmationMessage string            `json:"confirmation_message,omitempty"`
}
