package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// ErrInsufficientGroups is returned when a test receives fewer groups or
	// summary pairs than it requires.
	ErrInsufficientGroups = errors.New("insufficient groups")

	// ErrInvalidParameter is returned for structurally invalid input:
	// non-positive degrees of freedom, ragged matrices, empty required
	// dimensions, negative F statistics.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrDegenerateResult is returned where a denominator collapsed to zero
	// and the policy is to fail rather than silently return 0, e.g. a zero
	// standard error in the t-test.
	ErrDegenerateResult = errors.New("degenerate result")
)

// Error constructors with context
func NewInsufficientGroupsError(test string, got, want int) error {
	return fmt.Errorf("%w: %s requires at least %d groups, got %d", ErrInsufficientGroups, test, want, got)
}

func NewInvalidParameterError(name string, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidParameter, name, reason)
}

func NewDegenerateResultError(test string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrDegenerateResult, test, reason)
}

// Error checking helpers
func IsInsufficientGroups(err error) bool {
	return errors.Is(err, ErrInsufficientGroups)
}

func IsInvalidParameter(err error) bool {
	return errors.Is(err, ErrInvalidParameter)
}

func IsDegenerateResult(err error) bool {
	return errors.Is(err, ErrDegenerateResult)
}
