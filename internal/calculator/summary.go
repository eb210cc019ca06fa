package calculator

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// Summary is what the card looks like after a payment and its bonus.
type Summary struct {
	NewBalance     decimal.Decimal
	RidesAvailable *big.Int
	Remainder      decimal.Decimal // left on the card after RidesAvailable fares
}

// Quote bundles the inputs of a calculation with everything derived from them.
type Quote struct {
	Fare    decimal.Decimal
	Balance decimal.Decimal
	Rides   *big.Int
	Payment decimal.Decimal
	Bonus   decimal.Decimal
	Summary
}

// Summarize derives the new balance and how many fares it covers.
//
//   - new_balance = currentBalance + payment + bonus
//   - rides_available = floor(new_balance / fare)
//   - remainder = new_balance mod fare
//
// A zero fare is rejected before any division happens.
func Summarize(fare, currentBalance, payment, bonus decimal.Decimal) (Summary, error) {
	switch {
	case fare.IsNegative():
		return Summary{}, &InputError{Arg: "fare"}
	case currentBalance.IsNegative():
		return Summary{}, &InputError{Arg: "current balance"}
	case payment.IsNegative():
		return Summary{}, &InputError{Arg: "payment"}
	case bonus.IsNegative():
		return Summary{}, &InputError{Arg: "bonus"}
	case fare.IsZero():
		return Summary{}, ErrZeroFare
	}

	newBalance := currentBalance.Add(payment).Add(bonus)

	// All operands are non-negative, so truncation is floor.
	quotient, remainder := newBalance.QuoRem(fare, 0)

	return Summary{
		NewBalance:     newBalance,
		RidesAvailable: quotient.BigInt(),
		Remainder:      remainder,
	}, nil
}

// Quote runs ComputePayment, ComputeBonus and Summarize in sequence.
func (p Policy) Quote(fare, currentBalance decimal.Decimal, rides *big.Int) (Quote, error) {
	payment, err := p.ComputePayment(fare, currentBalance, rides)
	if err != nil {
		return Quote{}, err
	}
	bonus, err := p.ComputeBonus(payment)
	if err != nil {
		return Quote{}, err
	}
	summary, err := Summarize(fare, currentBalance, payment, bonus)
	if err != nil {
		return Quote{}, err
	}

	return Quote{
		Fare:    fare,
		Balance: currentBalance,
		Rides:   new(big.Int).Set(rides),
		Payment: payment,
		Bonus:   bonus,
		Summary: summary,
	}, nil
}
