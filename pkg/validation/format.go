// Package validation provides common validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/emi-calculator/pkg/constants"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	switch format {
	case constants.OutputFormatPretty, constants.OutputFormatCSV,
		constants.OutputFormatSummary, constants.OutputFormatClipboard:
		return nil
	}
	return fmt.Errorf("expected output format of %s, %s, %s or %s, got %s",
		constants.OutputFormatPretty, constants.OutputFormatCSV,
		constants.OutputFormatSummary, constants.OutputFormatClipboard, format)
}

// ValidateView checks if the schedule view is one of the supported views.
func ValidateView(view string) error {
	switch view {
	case constants.ViewYearly, constants.ViewMonthly, constants.ViewSummary:
		return nil
	}
	return fmt.Errorf("expected view of %s, %s or %s, got %s",
		constants.ViewYearly, constants.ViewMonthly, constants.ViewSummary, view)
}

// ValidateResponseFormat checks if an HTTP response format is supported.
func ValidateResponseFormat(format string) error {
	switch format {
	case constants.OutputFormatJSON, constants.OutputFormatCSV:
		return nil
	}
	return fmt.Errorf("expected format of %s or %s, got %s",
		constants.OutputFormatJSON, constants.OutputFormatCSV, format)
}
