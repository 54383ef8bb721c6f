// Package loaninput turns raw form or query text into an amortization.LoanInput.
//
// Coerce reproduces the calculator's typing behavior, where a field may be
// empty or half-typed and counts as zero. Parse is the strict variant for
// untrusted input and reports the offending field.
package loaninput

import (
	"strconv"
	"strings"

	"github.com/iwvelando/emi-calculator/pkg/amortization"
	"github.com/shopspring/decimal"
)

// Field names reported in errors.
const (
	FieldPrincipal = "principal"
	FieldRate      = "annualRatePercent"
	FieldTenure    = "tenureYears"
)

// Coerce maps each field onto a non-negative number. Empty, unparseable and
// negative text become zero; a fractional tenure is truncated to whole years.
func Coerce(principal, rate, tenure string) amortization.LoanInput {
	return amortization.LoanInput{
		Principal:         coerceAmount(principal),
		AnnualRatePercent: coerceAmount(rate),
		TenureYears:       int(decimalOrZero(tenure).Truncate(0).IntPart()),
	}
}

// Parse maps each field onto a number, treating empty text as zero. Any
// other text that is not a non-negative number, or a tenure with a
// fractional part, yields an *amortization.InvalidInputError.
func Parse(principal, rate, tenure string) (amortization.LoanInput, error) {
	var input amortization.LoanInput

	p, err := parseAmount(FieldPrincipal, principal)
	if err != nil {
		return input, err
	}
	r, err := parseAmount(FieldRate, rate)
	if err != nil {
		return input, err
	}
	years, err := parseAmount(FieldTenure, tenure)
	if err != nil {
		return input, err
	}
	if !years.Equal(years.Truncate(0)) {
		return input, &amortization.InvalidInputError{
			Field:  FieldTenure,
			Value:  strings.TrimSpace(tenure),
			Reason: "must be a whole number of years",
		}
	}
	if years.GreaterThan(decimal.NewFromInt(MaxTenureYears)) {
		return input, tenureOutOfRange(strings.TrimSpace(tenure))
	}

	input.Principal = p.InexactFloat64()
	input.AnnualRatePercent = r.InexactFloat64()
	input.TenureYears = int(years.IntPart())
	return input, nil
}

// MaxTenureYears bounds the schedule length a single request can ask for.
const MaxTenureYears = 1000

// CheckTenure applies the MaxTenureYears bound to an already decoded
// tenure, such as one read from a JSON body.
func CheckTenure(years int) error {
	if years > MaxTenureYears {
		return tenureOutOfRange(strconv.Itoa(years))
	}
	return nil
}

func tenureOutOfRange(value string) error {
	return &amortization.InvalidInputError{
		Field:  FieldTenure,
		Value:  value,
		Reason: "is out of range",
	}
}

func coerceAmount(value string) float64 {
	return decimalOrZero(value).InexactFloat64()
}

func decimalOrZero(value string) decimal.Decimal {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func parseAmount(field, value string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, &amortization.InvalidInputError{
			Field:  field,
			Value:  trimmed,
			Reason: "not a number",
		}
	}
	if d.IsNegative() {
		return decimal.Zero, &amortization.InvalidInputError{
			Field:  field,
			Value:  trimmed,
			Reason: "must not be negative",
		}
	}
	return d, nil
}
