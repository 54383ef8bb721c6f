// Package output provides utilities for formatting and displaying calculation results.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iwvelando/emi-calculator/pkg/amortization"
	"github.com/iwvelando/emi-calculator/pkg/constants"
	"github.com/iwvelando/emi-calculator/pkg/format"
	"github.com/iwvelando/emi-calculator/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Summary returns the one-line plaintext projection of the totals.
func Summary(result amortization.Result, style format.Style) string {
	return fmt.Sprintf("EMI: %s, Total Payment: %s, Total Interest: %s",
		format.Whole(result.EMI, style),
		format.Whole(result.TotalPayment, style),
		format.Whole(result.TotalInterest, style))
}

// ClipboardText returns the three-line text offered by the copy button.
func ClipboardText(result amortization.Result, style format.Style) string {
	return fmt.Sprintf("Loan EMI: %s\nTotal Payment: %s\nTotal Interest: %s",
		format.Whole(result.EMI, style),
		format.Whole(result.TotalPayment, style),
		format.Whole(result.TotalInterest, style))
}

// ChartSlice is one segment of the principal versus interest breakdown.
type ChartSlice struct {
	Name    string  `json:"name"`
	Value   float64 `json:"value"`
	Percent float64 `json:"percent"`
}

// Chart splits the total payment into principal and interest shares.
func Chart(result amortization.Result) []ChartSlice {
	return []ChartSlice{
		{
			Name:    "Principal",
			Value:   result.Input.Principal,
			Percent: mathutil.CalculatePercentage(result.Input.Principal, result.TotalPayment),
		},
		{
			Name:    "Interest",
			Value:   result.TotalInterest,
			Percent: mathutil.CalculatePercentage(result.TotalInterest, result.TotalPayment),
		},
	}
}

// PrettyFormat writes the header block followed by the table for view:
// every month for monthly, one row per year for yearly, and no table at all
// for summary.
func PrettyFormat(w io.Writer, result amortization.Result, style format.Style, view string) {
	PrettySummary(w, result, style)

	switch view {
	case constants.ViewSummary:
		return
	case constants.ViewMonthly:
		_, _ = fmt.Fprintln(w)
		PrettyMonthly(w, result, style)
	default:
		_, _ = fmt.Fprintln(w)
		PrettyYearly(w, result, style)
	}
}

// PrettySummary writes the loan header, the totals and the principal versus
// interest shares.
func PrettySummary(w io.Writer, result amortization.Result, style format.Style) {
	p := message.NewPrinter(language.English)
	_, _ = p.Fprintf(w, "--- EMI for %s at %.2f%% over %d years (%s) ---\n",
		format.Whole(result.Input.Principal, style), result.Input.AnnualRatePercent,
		result.Input.TenureYears, result.Method)
	_, _ = p.Fprintf(w, "Monthly EMI    : %s\n", format.Whole(result.EMI, style))
	_, _ = p.Fprintf(w, "Total Payment  : %s\n", format.Whole(result.TotalPayment, style))
	_, _ = p.Fprintf(w, "Total Interest : %s\n", format.Whole(result.TotalInterest, style))
	for _, slice := range Chart(result) {
		_, _ = p.Fprintf(w, "%-9s share : %.1f%%\n", slice.Name, slice.Percent)
	}
}

// PrettyYearly writes one row per year of the tenure.
func PrettyYearly(w io.Writer, result amortization.Result, style format.Style) {
	p := message.NewPrinter(language.English)
	_, _ = p.Fprintf(w, "Year | Months | EMI Paid | Principal | Interest | Balance\n")
	_, _ = p.Fprintf(w, "____ | ______ | ________ | _________ | ________ | _______\n")
	for _, year := range result.Yearly {
		_, _ = p.Fprintf(w, "%4d | %6d | %s | %s | %s | %s\n",
			year.Year, len(year.Months),
			format.Whole(year.TotalEMI(), style),
			format.Whole(year.TotalPrincipal(), style),
			format.Whole(year.TotalInterest(), style),
			format.Whole(year.ClosingBalance(), style))
	}
}

// PrettyMonthly writes every month, grouped under a heading per year.
func PrettyMonthly(w io.Writer, result amortization.Result, style format.Style) {
	p := message.NewPrinter(language.English)
	for _, year := range result.Yearly {
		_, _ = p.Fprintf(w, "Year %d\n", year.Year)
		_, _ = p.Fprintf(w, "Month | EMI | Principal | Interest | Balance\n")
		_, _ = p.Fprintf(w, "_____ | ___ | _________ | ________ | _______\n")
		for _, month := range year.Months {
			_, _ = p.Fprintf(w, "%5d | %s | %s | %s | %s\n",
				month.Month,
				format.Whole(month.EMI, style),
				format.Whole(month.Principal, style),
				format.Whole(month.Interest, style),
				format.Whole(month.Balance, style))
		}
		_, _ = fmt.Fprintln(w)
	}
}

// CsvFormat writes the monthly schedule in comma-separated value format with
// amounts at two decimals.
func CsvFormat(w io.Writer, result amortization.Result) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"year", "month", "emi", "principal", "interest", "balance"}); err != nil {
		return err
	}
	for _, year := range result.Yearly {
		for _, month := range year.Months {
			record := []string{
				strconv.Itoa(year.Year),
				strconv.Itoa(month.Month),
				amount(month.EMI),
				amount(month.Principal),
				amount(month.Interest),
				amount(month.Balance),
			}
			if err := writer.Write(record); err != nil {
				return err
			}
		}
	}
	writer.Flush()
	return writer.Error()
}

// CsvString returns the CSV projection as a string.
func CsvString(result amortization.Result) string {
	var builder strings.Builder
	if err := CsvFormat(&builder, result); err != nil {
		return ""
	}
	return builder.String()
}

func amount(value float64) string {
	return strconv.FormatFloat(mathutil.Round(value), 'f', 2, 64)
}
