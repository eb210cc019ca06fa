// Package api defines the farebonus.v1 RPC messages and the Connect handler
// and client constructors for them. Messages travel as JSON; every amount is
// an exact decimal string, never a JSON number.
package api

// Fare describes one selectable fare.
type Fare struct {
	Type  string `json:"type"`
	Name  string `json:"name"`
	Fare  string `json:"fare"`
	Label string `json:"label"`
}

type ListFaresRequest struct{}

type ListFaresResponse struct {
	Fares            []*Fare `json:"fares"`
	SelectedFareType string  `json:"selected_fare_type"`
}

// CalculateRequest carries the values exactly as the user typed them.
// An empty FareType uses the last selected fare.
type CalculateRequest struct {
	FareType string `json:"fare_type,omitempty"`
	Balance  string `json:"balance"`
	Rides    string `json:"rides"`
}

type CalculateResponse struct {
	FareType       string `json:"fare_type"`
	Fare           string `json:"fare"`
	Payment        string `json:"payment"`
	Bonus          string `json:"bonus"`
	NewBalance     string `json:"new_balance"`
	RidesAvailable string `json:"rides_available"`
	Remainder      string `json:"remainder"`

	// Message is the result formatted for display.
	Message string `json:"message"`
}

// Settings is the wire form of the persisted settings. The *Summary fields
// are display strings such as "$5.50" or "5%".
type Settings struct {
	Fares                  map[string]string `json:"fares"`
	BonusPercentage        string            `json:"bonus_percentage"`
	BonusMin               string            `json:"bonus_min"`
	Increment              string            `json:"increment"`
	BonusPercentageSummary string            `json:"bonus_percentage_summary"`
	BonusMinSummary        string            `json:"bonus_min_summary"`
	IncrementSummary       string            `json:"increment_summary"`
}

type GetSettingsRequest struct{}

type GetSettingsResponse struct {
	Settings *Settings `json:"settings"`
}

// UpdateSettingsRequest is a partial update: nil fields and absent fares are
// left unchanged.
type UpdateSettingsRequest struct {
	Fares           map[string]string `json:"fares,omitempty"`
	BonusPercentage *string           `json:"bonus_percentage,omitempty"`
	BonusMin        *string           `json:"bonus_min,omitempty"`
	Increment       *string           `json:"increment,omitempty"`
}

type UpdateSettingsResponse struct {
	Settings *Settings `json:"settings"`
}

type RestoreDefaultsRequest struct{}

type RestoreDefaultsResponse struct {
	Settings *Settings `json:"settings"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AdminID string `json:"admin_id"`
	Token   string `json:"token"`
}
