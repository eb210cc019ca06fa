// Package input parses user-entered amounts and ride counts before they reach
// the calculator. Anything blank or malformed is reported as ErrFieldsRequired
// so the caller can show a single "all fields required" message.
package input

import (
	"errors"
	"math/big"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrFieldsRequired is returned for blank or malformed input.
var ErrFieldsRequired = errors.New("all fields required")

// Scale is the maximum number of fractional digits accepted in an amount.
const Scale = 2

var (
	amountPattern = regexp.MustCompile(`^(0|[1-9][0-9]*)?(\.[0-9]{0,2})?$`)
	ridesPattern  = regexp.MustCompile(`^[0-9]+$`)
)

// ParseMoney parses a non-negative amount with at most two decimal places,
// e.g. "2.75", "30", ".5" or "4.".
func ParseMoney(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if !hasDigit(s) || !amountPattern.MatchString(s) {
		return decimal.Decimal{}, ErrFieldsRequired
	}
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	}
	s = strings.TrimSuffix(s, ".")

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, ErrFieldsRequired
	}
	return d, nil
}

// ParsePercent parses a bonus percentage. It follows the same grammar as
// ParseMoney.
func ParsePercent(s string) (decimal.Decimal, error) {
	return ParseMoney(s)
}

// ParseRides parses a non-negative base-10 ride count of any size.
func ParseRides(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if !ridesPattern.MatchString(s) {
		return nil, ErrFieldsRequired
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, ErrFieldsRequired
	}
	return n, nil
}

// IsBlank reports whether s would be rejected as an empty field: only
// whitespace, or a lone decimal point.
func IsBlank(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || s == "."
}

func hasDigit(s string) bool {
	return strings.ContainsAny(s, "0123456789")
}
