package calculator

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPolicy is matched by every *PolicyError.
	ErrInvalidPolicy = errors.New("invalid policy")

	// ErrInvalidInput is matched by every *InputError.
	ErrInvalidInput = errors.New("invalid input")

	// ErrPolicyNotInitialized is returned when a zero Policy, one not built by
	// NewPolicy, is used for a computation.
	ErrPolicyNotInitialized = errors.New("policy is not initialized")

	// ErrZeroFare is returned when rides would have to be derived from a zero fare.
	ErrZeroFare = errors.New("fare must be positive to derive rides")
)

// PolicyError reports a policy parameter that violates its invariant.
type PolicyError struct {
	Reason string
}

func (e *PolicyError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidPolicy, e.Reason)
}

func (e *PolicyError) Unwrap() error {
	return ErrInvalidPolicy
}

// InputError reports a negative (or missing) argument passed to a computation.
// Arg names the offending argument, e.g. "fare" or "current balance".
type InputError struct {
	Arg string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s must not be negative", ErrInvalidInput, e.Arg)
}

func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}
