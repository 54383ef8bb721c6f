package loaninput

import (
	"errors"
	"testing"

	"github.com/iwvelando/emi-calculator/pkg/amortization"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerce(t *testing.T) {
	tests := []struct {
		name      string
		principal string
		rate      string
		tenure    string
		expected  amortization.LoanInput
	}{
		{"Defaults", "1000000", "8.5", "20", amortization.LoanInput{Principal: 1000000, AnnualRatePercent: 8.5, TenureYears: 20}},
		{"All empty", "", "", "", amortization.LoanInput{}},
		{"Whitespace", "  250000 ", " 7.25", "15 ", amortization.LoanInput{Principal: 250000, AnnualRatePercent: 7.25, TenureYears: 15}},
		{"Half typed", "12..", "abc", "-", amortization.LoanInput{}},
		{"Negative values", "-500", "-1", "-3", amortization.LoanInput{}},
		{"Fractional tenure truncated", "100000", "9", "20.9", amortization.LoanInput{Principal: 100000, AnnualRatePercent: 9, TenureYears: 20}},
		{"Exponent", "1e6", "8.5", "20", amortization.LoanInput{Principal: 1000000, AnnualRatePercent: 8.5, TenureYears: 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Coerce(tt.principal, tt.rate, tt.tenure))
		})
	}
}

func TestParse(t *testing.T) {
	input, err := Parse("1000000", "8.5", "20")
	require.NoError(t, err)
	assert.Equal(t, amortization.LoanInput{Principal: 1000000, AnnualRatePercent: 8.5, TenureYears: 20}, input)

	input, err = Parse("", "", "")
	require.NoError(t, err)
	assert.Equal(t, amortization.LoanInput{}, input)

	input, err = Parse("500000", "0", "10.0")
	require.NoError(t, err)
	assert.Equal(t, 10, input.TenureYears)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name      string
		principal string
		rate      string
		tenure    string
		field     string
	}{
		{"Non-numeric principal", "ten lakh", "8.5", "20", FieldPrincipal},
		{"Negative principal", "-1", "8.5", "20", FieldPrincipal},
		{"Non-numeric rate", "100000", "eight", "20", FieldRate},
		{"Negative rate", "100000", "-8.5", "20", FieldRate},
		{"NaN rate", "100000", "NaN", "20", FieldRate},
		{"Fractional tenure", "100000", "8.5", "2.5", FieldTenure},
		{"Negative tenure", "100000", "8.5", "-2", FieldTenure},
		{"Huge tenure", "100000", "8.5", "1000000", FieldTenure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.principal, tt.rate, tt.tenure)
			require.Error(t, err)

			var invalid *amortization.InvalidInputError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, tt.field, invalid.Field)
		})
	}
}

func TestCheckTenure(t *testing.T) {
	tests := []struct {
		name    string
		years   int
		wantErr bool
	}{
		{"Zero", 0, false},
		{"Typical", 20, false},
		{"At bound", MaxTenureYears, false},
		{"Past bound", MaxTenureYears + 1, true},
		{"Huge", 1537228672809129301, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckTenure(tt.years)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var invalid *amortization.InvalidInputError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, FieldTenure, invalid.Field)
			assert.Equal(t, "is out of range", invalid.Reason)
		})
	}
}
