package amortization

import "github.com/iwvelando/emi-calculator/pkg/constants"

// LoanInput holds the three values a schedule is derived from.
type LoanInput struct {
	Principal         float64 `json:"principal" yaml:"principal"`
	AnnualRatePercent float64 `json:"annualRatePercent" yaml:"annualRatePercent"`
	TenureYears       int     `json:"tenureYears" yaml:"tenureYears"`
}

// Months returns the tenure expressed in months.
func (in LoanInput) Months() int {
	return in.TenureYears * constants.MonthsPerYear
}

// EmiResult holds the installment and the totals paid over the tenure.
type EmiResult struct {
	EMI           float64 `json:"emi"`
	TotalPayment  float64 `json:"totalPayment"`
	TotalInterest float64 `json:"totalInterest"`
}

// MonthEntry is one row of the amortization schedule.
type MonthEntry struct {
	Month     int     `json:"month"`
	EMI       float64 `json:"emi"`
	Principal float64 `json:"principal"`
	Interest  float64 `json:"interest"`
	Balance   float64 `json:"balance"`
}

// YearEntry groups the schedule rows falling in one year of the tenure.
type YearEntry struct {
	Year   int          `json:"year"`
	Months []MonthEntry `json:"months"`
}

// TotalEMI sums the installments paid during the year.
func (y YearEntry) TotalEMI() float64 {
	total := 0.0
	for _, m := range y.Months {
		total += m.EMI
	}
	return total
}

// TotalPrincipal sums the principal repaid during the year.
func (y YearEntry) TotalPrincipal() float64 {
	total := 0.0
	for _, m := range y.Months {
		total += m.Principal
	}
	return total
}

// TotalInterest sums the interest paid during the year.
func (y YearEntry) TotalInterest() float64 {
	total := 0.0
	for _, m := range y.Months {
		total += m.Interest
	}
	return total
}

// ClosingBalance returns the balance after the year's last payment, or zero
// for an empty year.
func (y YearEntry) ClosingBalance() float64 {
	if len(y.Months) == 0 {
		return 0
	}
	return y.Months[len(y.Months)-1].Balance
}

// Result is the complete output of one calculation.
type Result struct {
	Input  LoanInput      `json:"input"`
	Method InterestMethod `json:"method"`
	EmiResult
	Schedule []MonthEntry `json:"schedule"`
	Yearly   []YearEntry  `json:"yearly"`
}
