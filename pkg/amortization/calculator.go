package amortization

import (
	"math"
	"strconv"

	"github.com/iwvelando/emi-calculator/pkg/constants"
	"github.com/iwvelando/emi-calculator/pkg/mathutil"
	"go.uber.org/zap"
)

// Calculator runs the full computation for a LoanInput. It keeps no state
// between calls and is safe for concurrent use.
type Calculator struct {
	logger *zap.Logger
	method InterestMethod
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithMethod selects the interest method used for the schedule.
func WithMethod(method InterestMethod) Option {
	return func(c *Calculator) {
		if method != "" {
			c.method = method
		}
	}
}

// NewCalculator creates a calculator using the linear-proxy method unless
// an option says otherwise.
func NewCalculator(logger *zap.Logger, opts ...Option) *Calculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Calculator{logger: logger, method: LinearProxy}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Method returns the configured interest method.
func (c *Calculator) Method() InterestMethod {
	return c.method
}

// Calculate validates the input and derives the EMI, the monthly schedule,
// the yearly roll-up and the totals.
func (c *Calculator) Calculate(input LoanInput) (Result, error) {
	if err := Validate(input); err != nil {
		return Result{}, err
	}

	months := input.Months()
	monthlyRate := MonthlyRate(input.AnnualRatePercent)
	emi := ComputeEMI(input.Principal, input.AnnualRatePercent, months)

	var schedule []MonthEntry
	switch c.method {
	case ReducingBalance:
		schedule = BuildReducingBalanceSchedule(input.Principal, monthlyRate, months, emi)
	default:
		schedule = BuildScheduleForRate(input.Principal, input.AnnualRatePercent, months, emi)
	}

	result := Result{
		Input:     input,
		Method:    c.method,
		EmiResult: ComputeTotals(input.Principal, emi, months),
		Schedule:  schedule,
		Yearly:    AggregateYears(schedule, input.TenureYears),
	}

	c.logger.Debug("computed amortization schedule",
		zap.String("op", "amortization.Calculate"),
		zap.Float64("principal", input.Principal),
		zap.Float64("annual_rate_percent", input.AnnualRatePercent),
		zap.Int("months", months),
		zap.String("method", c.method.String()),
		zap.Float64("emi", emi),
	)

	return result, nil
}

// Calculate runs the default linear-proxy calculation without logging.
func Calculate(input LoanInput) (Result, error) {
	return NewCalculator(nil).Calculate(input)
}

// Validate rejects inputs that would feed NaN or infinities into the
// formulas, negative values, and tenures whose month count overflows int.
func Validate(input LoanInput) error {
	if err := checkAmount("principal", input.Principal); err != nil {
		return err
	}
	if err := checkAmount("annualRatePercent", input.AnnualRatePercent); err != nil {
		return err
	}
	if input.TenureYears < 0 {
		return &InvalidInputError{
			Field:  "tenureYears",
			Value:  strconv.Itoa(input.TenureYears),
			Reason: "must not be negative",
		}
	}
	if input.TenureYears > math.MaxInt/constants.MonthsPerYear {
		return &InvalidInputError{
			Field:  "tenureYears",
			Value:  strconv.Itoa(input.TenureYears),
			Reason: "is out of range",
		}
	}
	return nil
}

func checkAmount(field string, value float64) error {
	if !mathutil.IsFinite(value) {
		return &InvalidInputError{
			Field:  field,
			Value:  strconv.FormatFloat(value, 'g', -1, 64),
			Reason: "must be a finite number",
		}
	}
	if value < 0 {
		return &InvalidInputError{
			Field:  field,
			Value:  strconv.FormatFloat(value, 'g', -1, 64),
			Reason: "must not be negative",
		}
	}
	return nil
}
