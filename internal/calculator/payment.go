package calculator

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// ComputePayment computes the amount which must be added to a card so that it
// holds at least rides fares once the bonus is credited.
//
// Algorithm:
//   - shortfall = fare × rides − currentBalance; nothing is owed if it is <= 0
//   - if shortfall reaches bonusMin, solve p + bonus(p) = shortfall for p,
//     i.e. p = shortfall × 100 / (100 + bonusPercentage), half-up to the cent
//   - if that p no longer reaches bonusMin, pay max(bonusMin, increment) so
//     the bonus still applies
//   - otherwise round up to the next multiple of increment
//
// The result carries two decimal places, except for a fallback to a bonusMin
// finer than a cent, which is returned unrounded.
//
// A zero Policy fails with ErrPolicyNotInitialized.
func (p Policy) ComputePayment(fare, currentBalance decimal.Decimal, rides *big.Int) (decimal.Decimal, error) {
	if err := p.initialized(); err != nil {
		return decimal.Decimal{}, err
	}
	if fare.IsNegative() {
		return decimal.Decimal{}, &InputError{Arg: "fare"}
	}
	if currentBalance.IsNegative() {
		return decimal.Decimal{}, &InputError{Arg: "current balance"}
	}
	if rides == nil || rides.Sign() < 0 {
		return decimal.Decimal{}, &InputError{Arg: "rides"}
	}

	target := fare.Mul(decimal.NewFromBigInt(rides, 0))
	result := target.Sub(currentBalance)
	if result.Sign() <= 0 {
		return zeroCents, nil
	}

	if result.GreaterThanOrEqual(p.bonusMin) {
		result = result.Mul(hundred).DivRound(hundred.Add(p.bonusPercentage), 2)
		if result.LessThanOrEqual(p.bonusMin) {
			return atCents(decimal.Max(p.bonusMin, p.increment)), nil
		}
	}

	if remainder := result.Mod(p.increment); !remainder.IsZero() {
		result = result.Add(p.increment.Sub(remainder))
	}
	return result.Round(2), nil
}

// ComputeBonus returns the bonus credited for payment: zero below bonusMin,
// otherwise payment × bonusPercentage / 100 rounded half-up to the cent.
// A zero Policy fails with ErrPolicyNotInitialized.
func (p Policy) ComputeBonus(payment decimal.Decimal) (decimal.Decimal, error) {
	if err := p.initialized(); err != nil {
		return decimal.Decimal{}, err
	}
	if payment.IsNegative() {
		return decimal.Decimal{}, &InputError{Arg: "payment"}
	}
	if payment.LessThan(p.bonusMin) {
		return zeroCents, nil
	}
	return payment.Mul(p.bonusPercentage).DivRound(hundred, 2), nil
}

// atCents rescales d to two decimal places when that does not change its value.
func atCents(d decimal.Decimal) decimal.Decimal {
	if r := d.Round(2); r.Equal(d) {
		return r
	}
	return d
}
