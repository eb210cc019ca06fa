package service

import (
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/farebonus/internal/calculator"
	"github.com/mmynk/farebonus/internal/input"
)

var (
	errBlankField    = errors.New("field must not be blank")
	errInvalidAmount = errors.New("must be a non-negative amount with at most two decimal places")
	errZeroIncrement = errors.New("increment must not be zero")
)

// calculationError maps calculator and input errors onto Connect codes.
func calculationError(err error) *connect.Error {
	switch {
	case errors.Is(err, input.ErrFieldsRequired), errors.Is(err, calculator.ErrInvalidInput):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, calculator.ErrZeroFare),
		errors.Is(err, calculator.ErrInvalidPolicy),
		errors.Is(err, calculator.ErrPolicyNotInitialized):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
