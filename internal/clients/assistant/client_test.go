package assistant

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LucraWealth/lucra-wallet/internal/common"
	"github.com/LucraWealth/lucra-wallet/internal/models"
)

func TestParseReplyInformational(t *testing.T) {
	text := `{"success": true, "responseText": "Your balance is $100.", "suggestedActions": [{"title": "Pay bills", "query": "pay all my bills"}]}`

	reply := parseReply(text, common.NewSilentLogger())
	assert.True(t, reply.Success)
	assert.Equal(t, "Your balance is $100.", reply.ResponseText)
	require.Len(t, reply.SuggestedActions, 1)
	assert.Equal(t, "Pay bills", reply.SuggestedActions[0].Title)
	assert.Nil(t, reply.Action)
}

func TestParseReplyActionProposal(t *testing.T) {
	text := "```json\n" + `{"success": true, "action": {"action": "payBill", "payload": {"billId": "bill_netflix", "amount": "15.49"}}, "confirmation_message": "Pay Netflix for $15.49?"}` + "\n```"

	reply := parseReply(text, common.NewSilentLogger())
	require.NotNil(t, reply.Action)
	assert.Equal(t, models.ActionPayBill, reply.Action.Action)
	assert.Equal(t, "Pay Netflix for $15.49?", reply.ConfirmationMessage)
}

func TestParseReplyPlainTextFallback(t *testing.T) {
	text := "I'm sorry, I can't help with that."

	reply := parseReply(text, common.NewSilentLogger())
	assert.True(t, reply.Success)
	assert.Equal(t, text, reply.ResponseText)
	assert.Nil(t, reply.Action)
}

func TestParseReplyDropsUnsupportedAction(t *testing.T) {
	text := `{"success": true, "action": {"action": "transferEverything"}, "confirmation_message": "Transfer everything?"}`

	reply := parseReply(text, common.NewSilentLogger())
	assert.Nil(t, reply.Action)
	assert.Empty(t, reply.ConfirmationMessage)
	assert.Equal(t, "Transfer everything?", reply.ResponseText)
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripFences("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripFences(`{"a":1}`))
}

func TestBuildPromptIncludesWalletState(t *testing.T) {
	snap := models.SeedSnapshot(time.Now())
	prompt, err := buildPrompt("what bills do I owe?", snap)
	require.NoError(t, err)

	assert.True(t, strings.Contains(prompt, "bill_netflix"))
	assert.True(t, strings.Contains(prompt, "cashback_balance"))
	assert.True(t, strings.Contains(prompt, "what bills do I owe?"))
	// History beyond the recent window stays local.
	assert.False(t, strings.Contains(prompt, "transactions\": null"))
}
