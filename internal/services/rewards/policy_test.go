package rewards

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LucraWealth/lucra-wallet/internal/common"
	"github.com/LucraWealth/lucra-wallet/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNewPolicyRejectsBadRates(t *testing.T) {
	cfg := common.NewDefaultConfig().Rewards
	cfg.CashbackRate = "five percent"
	_, err := NewPolicy(cfg)
	assert.Error(t, err)

	cfg = common.NewDefaultConfig().Rewards
	cfg.RewardTokenPrice = "0"
	_, err = NewPolicy(cfg)
	assert.Error(t, err)
}

func TestAccrualRoundsHalfUp(t *testing.T) {
	p := DefaultPolicy()

	cases := []struct {
		amount string
		want   string
	}{
		{"15.49", "0.77"}, // 0.7745 rounds up
		{"100.00", "5.00"},
		{"0.10", "0.01"}, // 0.005 rounds up, not to zero
		{"59.99", "3.00"},
		{"1200.00", "60.00"},
		{"0.01", "0.00"}, // 0.0005 is below the half-cent threshold
	}
	for _, tc := range cases {
		got := p.Accrual(dec(tc.amount))
		assert.True(t, got.Equal(dec(tc.want)), "accrual(%s) = %s, want %s", tc.amount, got, tc.want)
	}
}

func TestValidateRedemption(t *testing.T) {
	p := DefaultPolicy()
	available := dec("10.00")

	assert.NoError(t, p.ValidateRedemption(available, dec("10.00"), models.RedeemToWallet))
	assert.NoError(t, p.ValidateRedemption(available, dec("0.01"), models.RedeemToBank))

	err := p.ValidateRedemption(available, dec("10.01"), models.RedeemToWallet)
	assert.ErrorIs(t, err, models.ErrInsufficientCashback)

	err = p.ValidateRedemption(available, dec("0"), models.RedeemToWallet)
	assert.ErrorIs(t, err, models.ErrInvalidAmount)

	err = p.ValidateRedemption(available, dec("-1"), models.RedeemToToken)
	assert.ErrorIs(t, err, models.ErrInvalidAmount)

	err = p.ValidateRedemption(available, dec("5.00"), models.RedemptionMethod("venmo"))
	assert.ErrorIs(t, err, models.ErrInvalidRedemptionMethod)
}

func TestTokenConversionAppliesBonus(t *testing.T) {
	p := DefaultPolicy()

	// 10.00 cashback × 1.05 at 0.03/token = 350 tokens.
	qty, err := p.TokenConversion(dec("10.00"), dec("0.03"))
	require.NoError(t, err)
	assert.True(t, qty.Equal(dec("350")), "got %s", qty)

	_, err = p.TokenConversion(dec("10.00"), dec("0"))
	assert.ErrorIs(t, err, models.ErrTokenNotFound)
}

func TestRewardTokenSeed(t *testing.T) {
	p := DefaultPolicy()

	seed := p.RewardTokenSeed()
	assert.Equal(t, "LCRA", seed.Symbol)
	assert.True(t, seed.Quantity.IsZero())
	assert.True(t, seed.UnitPrice.Equal(dec("0.03")))
	assert.Equal(t, "LCRA", p.RewardTokenSymbol())
}
