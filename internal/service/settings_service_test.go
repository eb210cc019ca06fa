package service

import (
	"context"
	"strings"
	"testing"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/farebonus/internal/models"
	"github.com/mmynk/farebonus/pkg/api"
)

func TestBootstrap(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	holder, err := Bootstrap(ctx, store, "1")
	if err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}
	if got := holder.Load().BonusMin(); !got.Equal(decimal.RequireFromString("5.50")) {
		t.Errorf("Expected default bonus minimum 5.50, got %s", got)
	}
	if version, _ := store.GetVersion(ctx); version != "1" {
		t.Errorf("Expected version 1 to be recorded, got %q", version)
	}

	custom := models.DefaultSettings()
	custom.BonusPercentage = decimal.NewFromInt(11)
	if err := store.SaveSettings(ctx, custom); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	t.Run("same version keeps settings", func(t *testing.T) {
		holder, err := Bootstrap(ctx, store, "1")
		if err != nil {
			t.Fatalf("Bootstrap failed: %v", err)
		}
		if got := holder.Load().BonusPercentage(); !got.Equal(decimal.NewFromInt(11)) {
			t.Errorf("Expected bonus percentage 11, got %s", got)
		}
	})

	t.Run("new version restores defaults", func(t *testing.T) {
		holder, err := Bootstrap(ctx, store, "2")
		if err != nil {
			t.Fatalf("Bootstrap failed: %v", err)
		}
		if got := holder.Load().BonusPercentage(); !got.Equal(decimal.NewFromInt(5)) {
			t.Errorf("Expected bonus percentage 5, got %s", got)
		}
		if version, _ := store.GetVersion(ctx); version != "2" {
			t.Errorf("Expected version 2 to be recorded, got %q", version)
		}
	})
}

func TestGetSettings(t *testing.T) {
	ts := setupTestServer(t)

	resp, err := ts.settings.GetSettings(context.Background(), connect.NewRequest(&api.GetSettingsRequest{}))
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}

	got := resp.Msg.Settings
	if got.Fares["regular"] != "2.75" || got.Fares["expressBusReduced"] != "3.35" {
		t.Errorf("Unexpected fares: %v", got.Fares)
	}
	if got.BonusPercentageSummary != "5%" {
		t.Errorf("Expected bonus percentage summary 5%%, got %q", got.BonusPercentageSummary)
	}
	if got.BonusMinSummary != "$5.50" {
		t.Errorf("Expected bonus minimum summary $5.50, got %q", got.BonusMinSummary)
	}
	if got.IncrementSummary != "$0.05" {
		t.Errorf("Expected increment summary $0.05, got %q", got.IncrementSummary)
	}
}

func TestUpdateSettings_RequiresAuth(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not a bearer token", "Basic abc"},
		{"garbage token", "Bearer not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := connect.NewRequest(&api.UpdateSettingsRequest{BonusPercentage: strPtr("9")})
			if tt.header != "" {
				req.Header().Set("Authorization", tt.header)
			}
			_, err := ts.settings.UpdateSettings(ctx, req)
			assertCode(t, err, connect.CodeUnauthenticated)
		})
	}

	_, err := ts.settings.RestoreDefaults(ctx, connect.NewRequest(&api.RestoreDefaultsRequest{}))
	assertCode(t, err, connect.CodeUnauthenticated)

	if got := ts.policy.Load().BonusPercentage(); !got.Equal(decimal.NewFromInt(5)) {
		t.Errorf("Rejected update changed bonus percentage to %s", got)
	}

	// Rejected calls still reach the metrics interceptor.
	body := ts.scrapeMetrics(t)
	for _, want := range []string{
		`farebonus_rpc_duration_seconds_count{code="unauthenticated",procedure="/farebonus.v1.SettingsService/UpdateSettings"} 3`,
		`farebonus_rpc_duration_seconds_count{code="unauthenticated",procedure="/farebonus.v1.SettingsService/RestoreDefaults"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("Expected metrics to contain %s", want)
		}
	}
}

func TestUpdateSettings(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()
	token := ts.login(t)

	resp, err := ts.settings.UpdateSettings(ctx, withToken(&api.UpdateSettingsRequest{
		BonusPercentage: strPtr("7"),
		Increment:       strPtr("1.00"),
	}, token))
	if err != nil {
		t.Fatalf("UpdateSettings failed: %v", err)
	}

	got := resp.Msg.Settings
	if got.BonusPercentage != "7" || got.Increment != "1.00" || got.BonusMin != "5.50" {
		t.Errorf("Unexpected settings after update: %+v", got)
	}
	if got.Fares["regular"] != "2.75" {
		t.Errorf("Expected untouched regular fare 2.75, got %s", got.Fares["regular"])
	}

	// The new policy applies to the next calculation.
	calc, err := ts.fares.Calculate(ctx, connect.NewRequest(&api.CalculateRequest{
		FareType: "regular",
		Balance:  "0",
		Rides:    "10",
	}))
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	want := "Add $26.00 to your card.\n\n" +
		"Your new balance will be $27.82, enough for 10 rides with $0.32 left over.\n\n" +
		"Bonus: $1.82"
	if calc.Msg.Message != want {
		t.Errorf("Expected message:\n%s\ngot:\n%s", want, calc.Msg.Message)
	}

	// Persisted for the next start.
	stored, err := ts.store.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if !stored.Increment.Equal(decimal.NewFromInt(1)) {
		t.Errorf("Expected stored increment 1, got %s", stored.Increment)
	}
}

func TestUpdateSettings_Invalid(t *testing.T) {
	tests := []struct {
		name string
		req  api.UpdateSettingsRequest
	}{
		{"blank bonus percentage", api.UpdateSettingsRequest{BonusPercentage: strPtr(" ")}},
		{"blank bonus minimum", api.UpdateSettingsRequest{BonusMin: strPtr("")}},
		{"lone decimal point increment", api.UpdateSettingsRequest{Increment: strPtr(".")}},
		{"zero increment", api.UpdateSettingsRequest{Increment: strPtr("0.00")}},
		{"three decimals", api.UpdateSettingsRequest{Increment: strPtr("0.015")}},
		{"negative fare", api.UpdateSettingsRequest{Fares: map[string]string{"regular": "-2.75"}}},
		{"blank fare", api.UpdateSettingsRequest{Fares: map[string]string{"reduced": ""}}},
		{"unknown fare", api.UpdateSettingsRequest{Fares: map[string]string{"ferry": "2.75"}}},
	}

	ts := setupTestServer(t)
	ctx := context.Background()
	token := ts.login(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ts.settings.UpdateSettings(ctx, withToken(&tt.req, token))
			assertCode(t, err, connect.CodeInvalidArgument)
		})
	}

	// Nothing was saved.
	stored, err := ts.store.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	defaults := models.DefaultSettings()
	if !stored.Increment.Equal(defaults.Increment) || !stored.Fares[models.FareRegular].Equal(defaults.Fares[models.FareRegular]) {
		t.Errorf("Invalid updates changed stored settings: %+v", stored)
	}
}

func TestRestoreDefaults(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()
	token := ts.login(t)

	_, err := ts.settings.UpdateSettings(ctx, withToken(&api.UpdateSettingsRequest{
		Fares:    map[string]string{"regular": "3.00"},
		BonusMin: strPtr("10"),
	}, token))
	if err != nil {
		t.Fatalf("UpdateSettings failed: %v", err)
	}
	if _, err := ts.fares.Calculate(ctx, connect.NewRequest(&api.CalculateRequest{
		FareType: "reduced", Balance: "0", Rides: "1",
	})); err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}

	resp, err := ts.settings.RestoreDefaults(ctx, withToken(&api.RestoreDefaultsRequest{}, token))
	if err != nil {
		t.Fatalf("RestoreDefaults failed: %v", err)
	}
	if resp.Msg.Settings.Fares["regular"] != "2.75" || resp.Msg.Settings.BonusMin != "5.50" {
		t.Errorf("Expected defaults, got %+v", resp.Msg.Settings)
	}
	if got := ts.policy.Load().BonusMin(); !got.Equal(decimal.RequireFromString("5.50")) {
		t.Errorf("Expected policy bonus minimum 5.50, got %s", got)
	}

	selected, err := ts.store.GetSelectedFare(ctx)
	if err != nil {
		t.Fatalf("GetSelectedFare failed: %v", err)
	}
	if selected != models.FareRegular {
		t.Errorf("Expected selected fare reset to regular, got %s", selected)
	}
	if version, _ := ts.store.GetVersion(ctx); version != testVersion {
		t.Errorf("Expected version %q after restore, got %q", testVersion, version)
	}
}
