// Package constants provides shared constants for the emi-calculator application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 paisa / 1 cent)
	CurrencyTolerance = 0.01
)

// Default loan input, matching the calculator's initial slider positions.
const (
	DefaultPrincipal         = 1000000.0
	DefaultAnnualRatePercent = 8.5
	DefaultTenureYears       = 20
)

// Slider ranges. Values outside these are accepted but produce warnings.
const (
	MinSuggestedPrincipal = 50000.0
	MaxSuggestedPrincipal = 5000000.0
	MaxSuggestedRate      = 20.0
	MaxSuggestedTenure    = 30
)

// Interest method constants
const (
	// MethodLinearProxy computes each month's interest from principal - i*emi.
	MethodLinearProxy = "linear-proxy"

	// MethodReducingBalance computes each month's interest from the carried balance.
	MethodReducingBalance = "reducing-balance"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatSummary is the single plaintext summary line
	OutputFormatSummary = "summary"

	// OutputFormatClipboard is the multi-line copy text
	OutputFormatClipboard = "clipboard"

	// OutputFormatJSON is the default HTTP response body
	OutputFormatJSON = "json"
)

// Output view constants
const (
	ViewYearly  = "yearly"
	ViewMonthly = "monthly"
	ViewSummary = "summary"
)

// Currency grouping styles
const (
	// CurrencyIndian groups digits as 12,34,567 and prefixes a rupee sign
	CurrencyIndian = "indian"

	// CurrencyWestern groups digits as 1,234,567
	CurrencyWestern = "western"

	// RupeeSymbol is prefixed to Indian-style amounts
	RupeeSymbol = "₹"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix is the prefix for environment variable overrides
	EnvPrefix = "EMI"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxBodyBytes caps JSON request bodies (16 KB)
	DefaultMaxBodyBytes int64 = 16 * 1024
)
