// Package testutil provides common utility functions for testing.
package testutil

import (
	"testing"

	"github.com/iwvelando/emi-calculator/pkg/amortization"
)

// MustCalculate runs the calculation and fails the test on error.
func MustCalculate(tb testing.TB, input amortization.LoanInput, opts ...amortization.Option) amortization.Result {
	tb.Helper()
	result, err := amortization.NewCalculator(nil, opts...).Calculate(input)
	if err != nil {
		tb.Fatalf("Calculate(%+v) error = %v", input, err)
	}
	return result
}

// SumPrincipal totals the principal portions of a schedule.
func SumPrincipal(schedule []amortization.MonthEntry) float64 {
	total := 0.0
	for _, month := range schedule {
		total += month.Principal
	}
	return total
}
