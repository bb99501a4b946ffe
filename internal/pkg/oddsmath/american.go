// Package oddsmath converts between American odds strings and numeric forms.
// Collected events keep odds as opaque strings; these helpers are for
// downstream consumers that want to compare prices numerically.
package oddsmath

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseAmerican parses an American odds string into its integer value.
// Accepts a leading + or -, the Unicode minus, and the "EVEN" convention
// (treated as +100).
func ParseAmerican(s string) (int, error) {
	v := strings.TrimSpace(s)
	v = strings.ReplaceAll(v, "−", "-")
	if strings.EqualFold(v, "EVEN") || strings.EqualFold(v, "EV") {
		return 100, nil
	}
	v = strings.TrimPrefix(v, "+")
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid American odds %q", s)
	}
	if n == 0 {
		return 0, fmt.Errorf("invalid American odds: cannot be 0")
	}
	return n, nil
}

// AmericanToDecimal converts American odds to decimal odds.
// +150 → 2.50, -150 → 1.67.
func AmericanToDecimal(american int) (float64, error) {
	if american == 0 {
		return 0, fmt.Errorf("invalid American odds: cannot be 0")
	}
	if american > 0 {
		return (float64(american) / 100.0) + 1.0, nil
	}
	return (100.0 / float64(-american)) + 1.0, nil
}

// DecimalToAmerican converts decimal odds to American odds.
// 2.50 → +150, 1.67 → -150.
func DecimalToAmerican(decimal float64) (int, error) {
	if decimal < 1.0 {
		return 0, fmt.Errorf("invalid decimal odds: must be >= 1.0")
	}
	if decimal >= 2.0 {
		return int(math.Round((decimal - 1.0) * 100.0)), nil
	}
	return int(math.Round(-100.0 / (decimal - 1.0))), nil
}

// ImpliedProbability converts American odds to their implied probability.
// -110 → 0.524, +150 → 0.40.
func ImpliedProbability(american int) (float64, error) {
	decimal, err := AmericanToDecimal(american)
	if err != nil {
		return 0, err
	}
	return 1.0 / decimal, nil
}

// ImpliedProbabilityString is ImpliedProbability over the raw odds string.
func ImpliedProbabilityString(s string) (float64, error) {
	american, err := ParseAmerican(s)
	if err != nil {
		return 0, err
	}
	return ImpliedProbability(american)
}
