package service

import (
	"context"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/farebonus/internal/calculator"
	"github.com/mmynk/farebonus/internal/input"
	"github.com/mmynk/farebonus/internal/middleware"
	"github.com/mmynk/farebonus/internal/models"
	"github.com/mmynk/farebonus/internal/presenter"
	"github.com/mmynk/farebonus/internal/storage"
	"github.com/mmynk/farebonus/pkg/api"
)

// SettingsService implements api.SettingsServiceHandler.
type SettingsService struct {
	store   storage.SettingsStore
	policy  *calculator.PolicyHolder
	version string
}

var _ api.SettingsServiceHandler = (*SettingsService)(nil)

// NewSettingsService creates a SettingsService. Every successful change is
// published to policy. version is recorded again after defaults are restored.
func NewSettingsService(store storage.SettingsStore, policy *calculator.PolicyHolder, version string) *SettingsService {
	return &SettingsService{store: store, policy: policy, version: version}
}

// Bootstrap prepares the stored settings for version and returns a holder
// with the policy they describe. When version differs from the version that
// ran last, every preference is reset to its default first.
func Bootstrap(ctx context.Context, store storage.SettingsStore, version string) (*calculator.PolicyHolder, error) {
	previous, err := store.GetVersion(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read version: %w", err)
	}
	if previous != version {
		slog.Info("App version changed, restoring default settings", "previous", previous, "current", version)
		if err := store.RestoreDefaults(ctx); err != nil {
			return nil, fmt.Errorf("failed to restore defaults: %w", err)
		}
		if err := store.SetVersion(ctx, version); err != nil {
			return nil, fmt.Errorf("failed to record version: %w", err)
		}
	}

	settings, err := store.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	policy, err := policyFromSettings(settings)
	if err != nil {
		return nil, err
	}
	return calculator.NewPolicyHolder(policy), nil
}

// GetSettings returns the current settings.
func (s *SettingsService) GetSettings(ctx context.Context, req *connect.Request[api.GetSettingsRequest]) (*connect.Response[api.GetSettingsResponse], error) {
	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		slog.Error("GetSettings: failed to load settings", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(&api.GetSettingsResponse{Settings: settingsToAPI(settings)}), nil
}

// UpdateSettings applies a partial update. Nothing is saved unless every
// supplied value is valid and the resulting policy is valid.
func (s *SettingsService) UpdateSettings(ctx context.Context, req *connect.Request[api.UpdateSettingsRequest]) (*connect.Response[api.UpdateSettingsResponse], error) {
	adminID := middleware.GetAdminID(ctx)

	current, err := s.store.GetSettings(ctx)
	if err != nil {
		slog.Error("UpdateSettings: failed to load settings", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	updated := current.Clone()

	for key, value := range req.Msg.Fares {
		fareType, err := models.ParseFareType(key)
		if err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		fare, err := parseSetting(key, value, input.ParseMoney)
		if err != nil {
			return nil, err
		}
		updated.Fares[fareType] = fare
	}
	if req.Msg.BonusPercentage != nil {
		if updated.BonusPercentage, err = parseSetting(models.KeyBonusPercentage, *req.Msg.BonusPercentage, input.ParsePercent); err != nil {
			return nil, err
		}
	}
	if req.Msg.BonusMin != nil {
		if updated.BonusMin, err = parseSetting(models.KeyBonusMin, *req.Msg.BonusMin, input.ParseMoney); err != nil {
			return nil, err
		}
	}
	if req.Msg.Increment != nil {
		if updated.Increment, err = parseSetting(models.KeyIncrement, *req.Msg.Increment, input.ParseMoney); err != nil {
			return nil, err
		}
		if updated.Increment.IsZero() {
			return nil, connect.NewError(connect.CodeInvalidArgument, errZeroIncrement)
		}
	}

	policy, err := policyFromSettings(updated)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	if err := s.store.SaveSettings(ctx, updated); err != nil {
		slog.Error("UpdateSettings: failed to save settings", "admin_id", adminID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	s.policy.Store(policy)

	slog.Info("Settings updated",
		"admin_id", adminID,
		"bonus_percentage", updated.BonusPercentage.String(),
		"bonus_min", updated.BonusMin.String(),
		"increment", updated.Increment.String(),
	)
	return connect.NewResponse(&api.UpdateSettingsResponse{Settings: settingsToAPI(updated)}), nil
}

// RestoreDefaults resets every preference, including the selected fare, to
// its default.
func (s *SettingsService) RestoreDefaults(ctx context.Context, req *connect.Request[api.RestoreDefaultsRequest]) (*connect.Response[api.RestoreDefaultsResponse], error) {
	adminID := middleware.GetAdminID(ctx)

	if err := s.store.RestoreDefaults(ctx); err != nil {
		slog.Error("RestoreDefaults failed", "admin_id", adminID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	if err := s.store.SetVersion(ctx, s.version); err != nil {
		slog.Error("RestoreDefaults: failed to record version", "admin_id", adminID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		slog.Error("RestoreDefaults: failed to load settings", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	policy, err := policyFromSettings(settings)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	s.policy.Store(policy)

	slog.Info("Settings restored to defaults", "admin_id", adminID)
	return connect.NewResponse(&api.RestoreDefaultsResponse{Settings: settingsToAPI(settings)}), nil
}

func policyFromSettings(s *models.Settings) (calculator.Policy, error) {
	return calculator.NewPolicy(s.BonusMin, s.BonusPercentage, s.Increment)
}

// parseSetting rejects blank and malformed values with InvalidArgument
// errors naming the field.
func parseSetting(key, value string, parse func(string) (decimal.Decimal, error)) (decimal.Decimal, error) {
	if input.IsBlank(value) {
		return decimal.Decimal{}, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("%s: %w", key, errBlankField))
	}
	d, err := parse(value)
	if err != nil {
		return decimal.Decimal{}, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("%s: %w", key, errInvalidAmount))
	}
	return d, nil
}

func settingsToAPI(s *models.Settings) *api.Settings {
	fares := make(map[string]string, len(s.Fares))
	for fareType, fare := range s.Fares {
		fares[string(fareType)] = fare.StringFixed(2)
	}
	return &api.Settings{
		Fares:                  fares,
		BonusPercentage:        s.BonusPercentage.String(),
		BonusMin:               s.BonusMin.StringFixed(2),
		Increment:              s.Increment.StringFixed(2),
		BonusPercentageSummary: presenter.FormatPercent(s.BonusPercentage),
		BonusMinSummary:        presenter.FormatDollars(s.BonusMin),
		IncrementSummary:       presenter.FormatDollars(s.Increment),
	}
}
