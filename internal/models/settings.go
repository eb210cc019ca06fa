package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FareType identifies one of the selectable fares.
type FareType string

const (
	FareRegular           FareType = "regular"
	FareReduced           FareType = "reduced"
	FareExpressBus        FareType = "expressBus"
	FareExpressBusReduced FareType = "expressBusReduced"
)

// FareTypes lists every fare type in display order.
var FareTypes = []FareType{
	FareRegular,
	FareReduced,
	FareExpressBus,
	FareExpressBusReduced,
}

var fareNames = map[FareType]string{
	FareRegular:           "Regular",
	FareReduced:           "Reduced",
	FareExpressBus:        "Express Bus",
	FareExpressBusReduced: "Express Bus Reduced",
}

// Name returns the human-readable name of the fare type.
func (f FareType) Name() string {
	if name, ok := fareNames[f]; ok {
		return name
	}
	return string(f)
}

// Valid reports whether f is one of the known fare types.
func (f FareType) Valid() bool {
	_, ok := fareNames[f]
	return ok
}

// ParseFareType converts a fare type key into a FareType.
func ParseFareType(s string) (FareType, error) {
	f := FareType(s)
	if !f.Valid() {
		return "", fmt.Errorf("unknown fare type: %q", s)
	}
	return f, nil
}

// Preference keys. These double as the primary keys of the preferences table.
const (
	KeyBonusPercentage = "bonusPct"
	KeyBonusMin        = "bonusMin"
	KeyIncrement       = "increment"
	KeySelectedFare    = "spinnerPos"
	KeyVersion         = "versionCode"
)

// Settings are the persisted preferences used to build a calculator.Policy
// and to price each fare type.
type Settings struct {
	// Fares maps every FareType to its cost in USD.
	Fares map[FareType]decimal.Decimal

	// BonusPercentage is a percentage, not a fraction (5 means 5%).
	BonusPercentage decimal.Decimal

	// BonusMin is the minimum payment in USD that earns a bonus.
	BonusMin decimal.Decimal

	// Increment is the grid in USD that payments are rounded up to.
	Increment decimal.Decimal
}

// Fare returns the fare for f, or false if none is configured.
func (s *Settings) Fare(f FareType) (decimal.Decimal, bool) {
	fare, ok := s.Fares[f]
	return fare, ok
}

// Clone returns a deep copy of s.
func (s *Settings) Clone() *Settings {
	fares := make(map[FareType]decimal.Decimal, len(s.Fares))
	for k, v := range s.Fares {
		fares[k] = v
	}
	return &Settings{
		Fares:           fares,
		BonusPercentage: s.BonusPercentage,
		BonusMin:        s.BonusMin,
		Increment:       s.Increment,
	}
}

// Default preference values as exact decimal strings.
var defaultValues = map[string]string{
	string(FareRegular):           "2.75",
	string(FareReduced):           "1.35",
	string(FareExpressBus):        "6.75",
	string(FareExpressBusReduced): "3.35",
	KeyBonusPercentage:            "5",
	KeyBonusMin:                   "5.50",
	KeyIncrement:                  "0.05",
}

// DefaultSelectedFare is the fare selected before the user picks one.
const DefaultSelectedFare = FareRegular

// DefaultValue returns the documented default for a preference key.
func DefaultValue(key string) (string, bool) {
	v, ok := defaultValues[key]
	return v, ok
}

// DefaultSettings returns a fresh copy of the documented defaults.
func DefaultSettings() *Settings {
	s := &Settings{Fares: make(map[FareType]decimal.Decimal, len(FareTypes))}
	for _, f := range FareTypes {
		s.Fares[f] = decimal.RequireFromString(defaultValues[string(f)])
	}
	s.BonusPercentage = decimal.RequireFromString(defaultValues[KeyBonusPercentage])
	s.BonusMin = decimal.RequireFromString(defaultValues[KeyBonusMin])
	s.Increment = decimal.RequireFromString(defaultValues[KeyIncrement])
	return s
}
