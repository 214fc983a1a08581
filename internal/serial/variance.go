package serial

import (
	"errors"
	"math"
)

// ErrInvalidTolerance is returned when a negative tolerance percentage is
// supplied.  A zero tolerance is legal and means the measurement must equal
// the expected value exactly.
var ErrInvalidTolerance = errors.New("tolerance percent must not be negative")

// VarianceResult classifies a measured quantity against the expected value.
// When the check is skipped (no expected value or tolerance configured for
// the product) InRange is true and the other fields stay zero.
type VarianceResult struct {
	InRange          bool    `json:"in_range"`
	DeviationPercent float64 `json:"deviation_percent,omitempty"` // |measured-expected|/expected*100, 1 decimal
	IsOver           bool    `json:"is_over,omitempty"`           // true when measured exceeds the upper bound
}

// CheckVariance compares a measurement against expected ± tolerancePercent.
// The bounds are inclusive.  Passing nil for either expected or
// tolerancePercent disables the check; the feature is opt-in per product.
func CheckVariance(measured float64, expected, tolerancePercent *float64) (VarianceResult, error) {
	if expected == nil || tolerancePercent == nil {
		return VarianceResult{InRange: true}, nil
	}
	if *tolerancePercent < 0 {
		return VarianceResult{}, ErrInvalidTolerance
	}
	min := *expected * (1 - *tolerancePercent/100)
	max := *expected * (1 + *tolerancePercent/100)
	if measured >= min && measured <= max {
		return VarianceResult{InRange: true}, nil
	}
	deviation := math.Abs(measured-*expected) / *expected * 100
	return VarianceResult{
		InRange:          false,
		DeviationPercent: math.Round(deviation*10) / 10,
		IsOver:           measured > max,
	}, nil
}
