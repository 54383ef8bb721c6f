// Package amortization computes fixed-installment (EMI) loan schedules.
//
// Every function is pure: results depend only on the arguments, so the same
// input always produces bit-identical output.
package amortization

import (
	"math"

	"github.com/iwvelando/emi-calculator/pkg/constants"
	"github.com/iwvelando/emi-calculator/pkg/mathutil"
)

// MonthlyRate converts an annual percentage rate into the decimal monthly rate.
func MonthlyRate(annualRatePercent float64) float64 {
	return annualRatePercent / constants.PercentageMultiplier / constants.MonthsPerYear
}

// ComputeEMI calculates the monthly installment using the reducing-balance
// fixed-installment formula.
func ComputeEMI(principal, annualRatePercent float64, months int) float64 {
	if months == 0 {
		return 0
	}

	rate := annualRatePercent / constants.PercentageMultiplier
	monthlyRate := rate / constants.MonthsPerYear
	if monthlyRate == 0 {
		// The formula is 0/0 here; zero interest amortizes linearly.
		return principal / float64(months)
	}

	power := math.Pow(1+monthlyRate, float64(months))
	return principal * rate / constants.MonthsPerYear * power / (power - 1)
}

// BuildSchedule produces the month-by-month breakdown. Interest for month i
// (0-indexed) is taken on principal - i*emi rather than on the carried
// balance, and each balance is principal less (i+1) times that month's
// principal portion, floored at zero.
func BuildSchedule(principal, monthlyRate float64, months int, emi float64) []MonthEntry {
	return linearProxy(principal, months, emi, func(base float64) float64 {
		return base * monthlyRate
	})
}

// BuildScheduleForRate is BuildSchedule driven by the annual percentage
// rate. Interest is evaluated as (base*rate)/12, which rounds differently
// from base*(rate/12) for some months; Calculator uses this form.
func BuildScheduleForRate(principal, annualRatePercent float64, months int, emi float64) []MonthEntry {
	rate := annualRatePercent / constants.PercentageMultiplier
	return linearProxy(principal, months, emi, func(base float64) float64 {
		return float64(base*rate) / constants.MonthsPerYear
	})
}

// The explicit float64 conversions keep the compiler from fusing the
// multiply-subtract pairs, so every platform rounds at the same steps.
func linearProxy(principal float64, months int, emi float64, interestOn func(base float64) float64) []MonthEntry {
	schedule := make([]MonthEntry, 0, months)
	for i := 0; i < months; i++ {
		interest := interestOn(principal - float64(float64(i)*emi))
		principalPart := emi - interest
		balance := principal - float64(principalPart*float64(i+1))

		schedule = append(schedule, MonthEntry{
			Month:     i + 1,
			EMI:       emi,
			Principal: principalPart,
			Interest:  interest,
			Balance:   mathutil.Max(0, balance),
		})
	}
	return schedule
}

// BuildReducingBalanceSchedule produces the month-by-month breakdown with
// interest taken on the balance left after the previous payment.
func BuildReducingBalanceSchedule(principal, monthlyRate float64, months int, emi float64) []MonthEntry {
	schedule := make([]MonthEntry, 0, months)
	balance := principal
	for i := 0; i < months; i++ {
		interest := balance * monthlyRate
		principalPart := emi - interest
		balance -= principalPart

		// Machine error leaves a few paise on the last row.
		if i == months-1 && mathutil.IsZero(balance) {
			balance = 0
		}

		schedule = append(schedule, MonthEntry{
			Month:     i + 1,
			EMI:       emi,
			Principal: principalPart,
			Interest:  interest,
			Balance:   mathutil.Max(0, balance),
		})
	}
	return schedule
}

// AggregateYears partitions the schedule into tenureYears consecutive chunks
// of twelve months. Chunks running past the end of the schedule are
// truncated, possibly to empty, and never padded.
func AggregateYears(schedule []MonthEntry, tenureYears int) []YearEntry {
	yearly := make([]YearEntry, 0, max(tenureYears, 0))
	for year := 0; year < tenureYears; year++ {
		start := min(year*constants.MonthsPerYear, len(schedule))
		end := min(start+constants.MonthsPerYear, len(schedule))
		yearly = append(yearly, YearEntry{
			Year:   year + 1,
			Months: schedule[start:end:end],
		})
	}
	return yearly
}

// ComputeTotals derives the amounts paid over the whole tenure. No rounding
// is applied.
func ComputeTotals(principal, emi float64, months int) EmiResult {
	totalPayment := emi * float64(months)
	return EmiResult{
		EMI:           emi,
		TotalPayment:  totalPayment,
		TotalInterest: totalPayment - principal,
	}
}
