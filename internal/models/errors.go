package models

import "errors"

// Wallet error kinds. All validation failures are detected before any state
// is mutated; callers match with errors.Is.
var (
	ErrInvalidAmount            = errors.New("invalid amount")
	ErrInsufficientFunds        = errors.New("insufficient funds")
	ErrInsufficientCashback     = errors.New("insufficient cashback balance")
	ErrInsufficientTokenBalance = errors.New("insufficient token balance")
	ErrBillNotFound             = errors.New("bill not found")
	ErrTokenNotFound            = errors.New("token not found")
	ErrDuplicateToken           = errors.New("token already exists")
	ErrUnknownAction            = errors.New("unknown action")
	ErrInvalidRedemptionMethod  = errors.New("invalid redemption method")
	ErrInvalidArgument          = errors.New("invalid argument")
)

// ErrorCode maps a wallet error to its stable API code. Unrecognized errors
// map to "INTERNAL".
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidAmount):
		return "INVALID_AMOUNT"
	case errors.Is(err, ErrInsufficientFunds):
		return "INSUFFICIENT_FUNDS"
	case errors.Is(err, ErrInsufficientCashback):
		return "INSUFFICIENT_CASHBACK"
	case errors.Is(err, ErrInsufficientTokenBalance):
		return "INSUFFICIENT_TOKEN_BALANCE"
	case errors.Is(err, ErrBillNotFound):
		return "BILL_NOT_FOUND"
	case errors.Is(err, ErrTokenNotFound):
		return "TOKEN_NOT_FOUND"
	case errors.Is(err, ErrDuplicateToken):
		return "DUPLICATE_TOKEN"
	case errors.Is(err, ErrUnknownAction):
		return "UNKNOWN_ACTION"
	case errors.Is(err, ErrInvalidRedemptionMethod):
		return "INVALID_REDEMPTION_METHOD"
	case errors.Is(err, ErrInvalidArgument):
		return "INVALID_ARGUMENT"
	default:
		return "INTERNAL"
	}
}
