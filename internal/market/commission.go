package market

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultCommissionRate is the platform fee when none is configured.
var DefaultCommissionRate = decimal.RequireFromString("0.10")

// CommissionCalculator computes the platform fee on a sale. Arithmetic is
// exact, the result is never rounded.
type CommissionCalculator struct {
	rate decimal.Decimal
}

// NewCommissionCalculator rejects rates outside [0, 1).
func NewCommissionCalculator(rate decimal.Decimal) (*CommissionCalculator, error) {
	if rate.IsNegative() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("commission rate %s outside [0, 1)", rate)
	}
	return &CommissionCalculator{rate: rate}, nil
}

func (c *CommissionCalculator) Rate() decimal.Decimal {
	return c.rate
}

// Commission is price * rate.
func (c *CommissionCalculator) Commission(price decimal.Decimal) decimal.Decimal {
	return price.Mul(c.rate)
}

// Payout is what the seller is credited: price - commission.
func (c *CommissionCalculator) Payout(price decimal.Decimal) decimal.Decimal {
	return price.Sub(c.Commission(price))
}
