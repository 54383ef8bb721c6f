// Package format renders monetary amounts for display.
package format

import (
	"math"
	"strings"

	"github.com/iwvelando/emi-calculator/pkg/constants"
	"github.com/shopspring/decimal"
)

// Style selects digit grouping and currency symbol.
type Style string

const (
	// Indian groups as 12,34,567.89 with a rupee sign.
	Indian Style = constants.CurrencyIndian

	// Western groups as 1,234,567.89 with no symbol.
	Western Style = constants.CurrencyWestern
)

// Currency returns amount with the style's symbol and grouping, rounded to
// places decimals (e.g., "₹8,678" or "-₹10,82,768.35").
func Currency(amount float64, style Style, places int32) string {
	formatted := Number(amount, style, places)
	if style != Indian {
		return formatted
	}
	if digits, negative := strings.CutPrefix(formatted, "-"); negative {
		return "-" + constants.RupeeSymbol + digits
	}
	return constants.RupeeSymbol + formatted
}

// Number returns amount with the style's grouping but no currency symbol.
func Number(amount float64, style Style, places int32) string {
	formatted := formatPositive(math.Abs(amount), style, places)
	if amount < 0 && strings.Trim(formatted, "0.,") != "" {
		return "-" + formatted
	}
	return formatted
}

// Whole rounds to whole currency units the way the calculator displays its
// headline figures.
func Whole(amount float64, style Style) string {
	return Currency(amount, style, 0)
}

func formatPositive(value float64, style Style, places int32) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "NaN"
	}

	formatted := decimal.NewFromFloat(value).StringFixed(places)
	intPart, decPart, hasDecimals := strings.Cut(formatted, ".")

	switch style {
	case Indian:
		intPart = groupIndian(intPart)
	default:
		intPart = groupThousands(intPart)
	}

	if hasDecimals {
		return intPart + "." + decPart
	}
	return intPart
}

func groupThousands(intPart string) string {
	if len(intPart) <= 3 {
		return intPart
	}
	var builder strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			builder.WriteByte(',')
		}
		builder.WriteRune(digit)
	}
	return builder.String()
}

// groupIndian keeps the last three digits together and groups the rest in
// pairs.
func groupIndian(intPart string) string {
	if len(intPart) <= 3 {
		return intPart
	}
	head := intPart[:len(intPart)-3]
	tail := intPart[len(intPart)-3:]

	var builder strings.Builder
	for i, digit := range head {
		if i > 0 && (len(head)-i)%2 == 0 {
			builder.WriteByte(',')
		}
		builder.WriteRune(digit)
	}
	builder.WriteByte(',')
	builder.WriteString(tail)
	return builder.String()
}

// ParseStyle validates a currency style name; empty selects Indian.
func ParseStyle(value string) (Style, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", constants.CurrencyIndian:
		return Indian, true
	case constants.CurrencyWestern:
		return Western, true
	default:
		return "", false
	}
}
