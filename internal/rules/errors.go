package rules

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// InvalidTypeError reports a numeric predicate applied to a parameter whose
// resolved value is not a number. It is returned from the single evaluation
// that hit it; callers decide whether to propagate or treat the condition
// as not met.
type InvalidTypeError struct {
	Property string
	Value    any
}

func (e *InvalidTypeError) Error() string {
	return fmt.Sprintf("parameter %q must be a number, got %T", e.Property, e.Value)
}

// ErrUnparsableNumber marks a threshold or range boundary that could not be
// parsed as an integer or a float.
var ErrUnparsableNumber = errors.New("not a valid integer or float")

// ParseNumber parses a numeric comparison operand from its rule-table
// string form: integer first, float on integer failure.
func ParseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return float64(n), nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, nil
	}
	return 0, fmt.Errorf("parse %q: %w", s, ErrUnparsableNumber)
}
