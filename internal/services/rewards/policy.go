// Package rewards implements the cashback accrual and redemption policy.
// The policy is pure: it computes and validates but never stores state;
// every change it produces is committed through the ledger's mutation API.
package rewards

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/LucraWealth/lucra-wallet/internal/common"
	"github.com/LucraWealth/lucra-wallet/internal/models"
)

// Policy holds the fixed, deterministic reward parameters.
type Policy struct {
	rate             decimal.Decimal // fraction of each payment accrued as cashback
	tokenBonus       decimal.Decimal // bonus fraction applied on token redemptions
	rewardToken      string          // symbol credited by token redemptions
	rewardTokenPrice decimal.Decimal // unit price used when the holding must be created
}

// NewPolicy builds a Policy from configuration. Rates are decimal strings so
// the arithmetic stays exact.
func NewPolicy(cfg common.RewardsConfig) (*Policy, error) {
	rate, err := decimal.NewFromString(cfg.CashbackRate)
	if err != nil {
		return nil, fmt.Errorf("invalid cashback rate %q: %w", cfg.CashbackRate, err)
	}
	bonus, err := decimal.NewFromString(cfg.TokenBonus)
	if err != nil {
		return nil, fmt.Errorf("invalid token bonus %q: %w", cfg.TokenBonus, err)
	}
	price, err := decimal.NewFromString(cfg.RewardTokenPrice)
	if err != nil {
		return nil, fmt.Errorf("invalid reward token price %q: %w", cfg.RewardTokenPrice, err)
	}
	if price.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("reward token price must be positive, got %s", price)
	}

	return &Policy{
		rate:             rate,
		tokenBonus:       bonus,
		rewardToken:      cfg.RewardToken,
		rewardTokenPrice: price,
	}, nil
}

// DefaultPolicy returns the standard 5% policy with LCRA token redemptions.
func DefaultPolicy() *Policy {
	p, err := NewPolicy(common.NewDefaultConfig().Rewards)
	if err != nil {
		panic(err) // defaults are statically valid
	}
	return p
}

// Accrual returns the cashback earned by a committed payment of the given
// amount: amount × rate, rounded half-up to the minor currency unit. The
// result is pinned to the payment amount at commit time.
func (p *Policy) Accrual(amount decimal.Decimal) decimal.Decimal {
	// decimal.Round rounds half away from zero, which is half-up for the
	// non-negative magnitudes the ledger commits.
	return amount.Mul(p.rate).Round(2)
}

// ValidateRedemption checks a proposed redemption against the current
// cashback balance. It must be called before any state is touched.
func (p *Policy) ValidateRedemption(available, amount decimal.Decimal, method models.RedemptionMethod) error {
	if !models.ValidRedemptionMethod(method) {
		return fmt.Errorf("%w: %q", models.ErrInvalidRedemptionMethod, method)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: redemption amount must be positive, got %s", models.ErrInvalidAmount, amount)
	}
	if amount.GreaterThan(available) {
		return fmt.Errorf("%w: requested %s, available %s", models.ErrInsufficientCashback, amount, available)
	}
	return nil
}

// TokenConversion returns the reward-token quantity credited for a token
// redemption of amount at unitPrice, including the bonus.
func (p *Policy) TokenConversion(amount, unitPrice decimal.Decimal) (decimal.Decimal, error) {
	if unitPrice.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("%w: reward token has no positive unit price", models.ErrTokenNotFound)
	}
	return amount.Mul(decimal.NewFromInt(1).Add(p.tokenBonus)).Div(unitPrice), nil
}

// RewardTokenSymbol returns the symbol credited by token redemptions.
func (p *Policy) RewardTokenSymbol() string {
	return p.rewardToken
}

// RewardTokenSeed returns a zero-quantity holding for the reward token,
// used when a token redemption targets a symbol the wallet does not hold
// yet. Creating the holding before the credit preserves conservation.
func (p *Policy) RewardTokenSeed() models.Token {
	return models.Token{
		ID:        strings.ToLower(p.rewardToken),
		Symbol:    p.rewardToken,
		Name:      "Lucra",
		Quantity:  decimal.Zero,
		UnitPrice: p.rewardTokenPrice,
	}
}
