// Package calculator implements the fare bonus engine: given a fare, a card
// balance and a desired number of rides it works out how much must be paid
// and what bonus that payment earns.
//
// All money is handled as exact decimals. A Policy is an immutable value; to
// change parameters build a new one and swap it in through a PolicyHolder.
package calculator

import (
	"github.com/shopspring/decimal"
)

var (
	hundred   = decimal.NewFromInt(100)
	cent      = decimal.New(1, -2)
	zeroCents = decimal.New(0, -2)
)

// Policy holds the bonus rules applied to every payment.
type Policy struct {
	bonusMin        decimal.Decimal
	bonusPercentage decimal.Decimal
	increment       decimal.Decimal
}

// NewPolicy validates the parameters and returns an immutable Policy.
//
// bonusMin is the smallest payment that earns a bonus, bonusPercentage is a
// percentage (7 means 7%), and increment is the grid every payment is rounded
// up to. Checks run in this order and the first failure is returned.
func NewPolicy(bonusMin, bonusPercentage, increment decimal.Decimal) (Policy, error) {
	if bonusMin.IsNegative() {
		return Policy{}, &PolicyError{Reason: "bonus minimum must not be negative"}
	}
	if bonusPercentage.IsNegative() {
		return Policy{}, &PolicyError{Reason: "bonus percentage must not be negative"}
	}
	if !increment.IsPositive() {
		return Policy{}, &PolicyError{Reason: "increment must be positive"}
	}
	if !increment.Mod(cent).IsZero() {
		return Policy{}, &PolicyError{Reason: "increment must be a multiple of 0.01"}
	}

	return Policy{
		bonusMin:        bonusMin,
		bonusPercentage: bonusPercentage,
		increment:       increment,
	}, nil
}

// BonusMin returns the minimum payment needed for a bonus to apply.
func (p Policy) BonusMin() decimal.Decimal {
	return p.bonusMin
}

// BonusPercentage returns the bonus percentage.
func (p Policy) BonusPercentage() decimal.Decimal {
	return p.bonusPercentage
}

// Increment returns the payment increment.
func (p Policy) Increment() decimal.Decimal {
	return p.increment
}

// initialized reports whether p came from NewPolicy. The zero Policy has no
// increment and would divide by zero.
func (p Policy) initialized() error {
	if !p.increment.IsPositive() {
		return ErrPolicyNotInitialized
	}
	return nil
}
