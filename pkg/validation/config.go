// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/emi-calculator/pkg/amortization"
	"github.com/iwvelando/emi-calculator/pkg/constants"
)

// LoanWarnings reports values that compute fine but fall outside the
// calculator's slider ranges.
func LoanWarnings(input amortization.LoanInput) []string {
	var warnings []string

	if input.Principal > 0 && input.Principal < constants.MinSuggestedPrincipal {
		warnings = append(warnings, fmt.Sprintf("principal %.2f is below the usual minimum of %.0f",
			input.Principal, constants.MinSuggestedPrincipal))
	}
	if input.Principal > constants.MaxSuggestedPrincipal {
		warnings = append(warnings, fmt.Sprintf("principal %.2f is above the usual maximum of %.0f",
			input.Principal, constants.MaxSuggestedPrincipal))
	}
	if input.AnnualRatePercent > constants.MaxSuggestedRate {
		warnings = append(warnings, fmt.Sprintf("annual rate %.2f%% is above %.0f%%",
			input.AnnualRatePercent, constants.MaxSuggestedRate))
	}
	if input.TenureYears > constants.MaxSuggestedTenure {
		warnings = append(warnings, fmt.Sprintf("tenure of %d years is above %d years",
			input.TenureYears, constants.MaxSuggestedTenure))
	}
	if input.TenureYears == 0 {
		warnings = append(warnings, "tenure is zero; EMI and schedule will be empty")
	}

	return warnings
}
