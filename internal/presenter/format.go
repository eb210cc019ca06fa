// Package presenter turns calculation results into display strings.
// Nothing here feeds back into a computation.
package presenter

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/farebonus/internal/calculator"
)

// FormatMoney formats d with the pattern #,##0.00: thousands grouped with
// commas, always two decimals, half-up rounding.
func FormatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")

	return sign + groupThousands(intPart) + "." + frac
}

// FormatDollars is FormatMoney with a leading dollar sign.
func FormatDollars(d decimal.Decimal) string {
	s := FormatMoney(d)
	if strings.HasPrefix(s, "-") {
		return "-$" + s[1:]
	}
	return "$" + s
}

// FormatPercent formats d with at most two decimals and no trailing zeros,
// followed by a percent sign.
func FormatPercent(d decimal.Decimal) string {
	return d.Round(2).String() + "%"
}

// RideCount returns "1 ride" or "N rides".
func RideCount(n *big.Int) string {
	if n != nil && n.IsInt64() && n.Int64() == 1 {
		return "1 ride"
	}
	return fmt.Sprintf("%s rides", n)
}

// FareOption is the label for a fare in a fare picker, e.g. "Regular ($2.75)".
func FareOption(name string, fare decimal.Decimal) string {
	return fmt.Sprintf("%s (%s)", name, FormatDollars(fare))
}

// ResultMessage renders a quote as three paragraphs: what to pay, what the
// card will hold afterwards, and the bonus earned.
func ResultMessage(q calculator.Quote) string {
	var b strings.Builder

	if q.Payment.IsZero() {
		b.WriteString("No payment needed.")
	} else {
		fmt.Fprintf(&b, "Add %s to your card.", FormatDollars(q.Payment))
	}
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "Your new balance will be %s, enough for %s with %s left over.",
		FormatDollars(q.NewBalance),
		RideCount(q.RidesAvailable),
		FormatDollars(q.Remainder),
	)
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "Bonus: %s", FormatDollars(q.Bonus))

	return b.String()
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
