package balance

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound      = errors.New("client not found")
	ErrOverLimit     = errors.New("deposit exceeds limit")
	ErrInvalidAmount = errors.New("deposit amount must be positive with at most two decimal places")
)

var limitDivisor = decimal.NewFromInt(4)

// Balances are stored as NUMERIC(12,2).
const amountPlaces = 2

var maxAmount = decimal.RequireFromString("9999999999.99")

// validAmount accepts positive amounts that the balance column can hold
// exactly, so the amount checked against the limit is the amount credited.
func validAmount(amount decimal.Decimal) bool {
	return amount.IsPositive() &&
		amount.Equal(amount.Truncate(amountPlaces)) &&
		amount.LessThanOrEqual(maxAmount)
}

// DepositLimit is the largest deposit allowed for a client whose unpaid jobs
// add up to unpaidTotal. A zero limit means no cap is enforced.
func DepositLimit(unpaidTotal decimal.Decimal) decimal.Decimal {
	return unpaidTotal.Div(limitDivisor)
}

// exceedsLimit keeps the observed rule: with no unpaid work the limit is zero
// and any amount passes.
func exceedsLimit(amount, unpaidTotal decimal.Decimal) bool {
	limit := DepositLimit(unpaidTotal)
	return limit.IsPositive() && amount.GreaterThan(limit)
}
