package service

import (
	"context"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/farebonus/internal/calculator"
	"github.com/mmynk/farebonus/internal/input"
	"github.com/mmynk/farebonus/internal/metrics"
	"github.com/mmynk/farebonus/internal/models"
	"github.com/mmynk/farebonus/internal/presenter"
	"github.com/mmynk/farebonus/internal/storage"
	"github.com/mmynk/farebonus/pkg/api"
)

// FareService implements api.FareServiceHandler.
type FareService struct {
	store   storage.SettingsStore
	policy  *calculator.PolicyHolder
	metrics *metrics.Metrics
}

var _ api.FareServiceHandler = (*FareService)(nil)

// NewFareService creates a FareService. policy is shared with the settings
// service, which swaps it whenever settings change. m may be nil.
func NewFareService(store storage.SettingsStore, policy *calculator.PolicyHolder, m *metrics.Metrics) *FareService {
	return &FareService{store: store, policy: policy, metrics: m}
}

// ListFares returns every fare type with its current fare and the fare
// selected last.
func (s *FareService) ListFares(ctx context.Context, req *connect.Request[api.ListFaresRequest]) (*connect.Response[api.ListFaresResponse], error) {
	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		slog.Error("ListFares: failed to load settings", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	selected, err := s.store.GetSelectedFare(ctx)
	if err != nil {
		slog.Error("ListFares: failed to load selected fare", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	fares := make([]*api.Fare, 0, len(models.FareTypes))
	for _, f := range models.FareTypes {
		amount, _ := settings.Fare(f)
		fares = append(fares, &api.Fare{
			Type:  string(f),
			Name:  f.Name(),
			Fare:  amount.StringFixed(2),
			Label: presenter.FareOption(f.Name(), amount),
		})
	}

	return connect.NewResponse(&api.ListFaresResponse{
		Fares:            fares,
		SelectedFareType: string(selected),
	}), nil
}

// Calculate works out the payment needed for the requested number of rides,
// the bonus it earns and what the card holds afterwards.
func (s *FareService) Calculate(ctx context.Context, req *connect.Request[api.CalculateRequest]) (*connect.Response[api.CalculateResponse], error) {
	fareType, err := s.resolveFareType(ctx, req.Msg.FareType)
	if err != nil {
		return nil, err
	}
	label := string(fareType)

	balance, err := input.ParseMoney(req.Msg.Balance)
	if err != nil {
		return nil, s.reject(label, err)
	}
	rides, err := input.ParseRides(req.Msg.Rides)
	if err != nil {
		return nil, s.reject(label, err)
	}

	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		slog.Error("Calculate: failed to load settings", "error", err)
		s.metrics.ObserveCalculation(label, metrics.OutcomeFailed, decimal.Zero)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	fare, ok := settings.Fare(fareType)
	if !ok {
		return nil, connect.NewError(connect.CodeInternal, fmt.Errorf("no fare configured for %s", fareType))
	}
	if fare.IsZero() {
		return nil, s.reject(label, calculator.ErrZeroFare)
	}

	slog.Debug("Calculating payment",
		"fare_type", fareType,
		"fare", fare.String(),
		"balance", balance.String(),
		"rides", rides.String(),
	)

	quote, err := s.policy.Load().Quote(fare, balance, rides)
	if err != nil {
		slog.Warn("Calculate failed", "fare_type", fareType, "error", err)
		s.metrics.ObserveCalculation(label, metrics.OutcomeFailed, decimal.Zero)
		return nil, calculationError(err)
	}
	s.metrics.ObserveCalculation(label, metrics.OutcomeOK, quote.Payment)

	slog.Debug("Payment calculated",
		"fare_type", fareType,
		"payment", quote.Payment.StringFixed(2),
		"bonus", quote.Bonus.StringFixed(2),
		"rides_available", quote.RidesAvailable.String(),
	)

	return connect.NewResponse(&api.CalculateResponse{
		FareType:       string(fareType),
		Fare:           fare.StringFixed(2),
		Payment:        quote.Payment.StringFixed(2),
		Bonus:          quote.Bonus.StringFixed(2),
		NewBalance:     quote.NewBalance.StringFixed(2),
		RidesAvailable: quote.RidesAvailable.String(),
		Remainder:      quote.Remainder.StringFixed(2),
		Message:        presenter.ResultMessage(quote),
	}), nil
}

// resolveFareType returns the requested fare type, remembering it as the new
// selection, or the last selection when none was requested.
func (s *FareService) resolveFareType(ctx context.Context, requested string) (models.FareType, error) {
	if requested == "" {
		fareType, err := s.store.GetSelectedFare(ctx)
		if err != nil {
			slog.Error("Calculate: failed to load selected fare", "error", err)
			return "", connect.NewError(connect.CodeInternal, err)
		}
		return fareType, nil
	}

	fareType, err := models.ParseFareType(requested)
	if err != nil {
		return "", connect.NewError(connect.CodeInvalidArgument, err)
	}
	if err := s.store.SetSelectedFare(ctx, fareType); err != nil {
		// Not fatal: the calculation itself does not depend on it.
		slog.Warn("Calculate: failed to remember selected fare", "fare_type", fareType, "error", err)
	}
	return fareType, nil
}

func (s *FareService) reject(fareType string, err error) error {
	s.metrics.ObserveCalculation(fareType, metrics.OutcomeRejected, decimal.Zero)
	return calculationError(err)
}
