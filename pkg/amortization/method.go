package amortization

import (
	"fmt"
	"strings"

	"github.com/iwvelando/emi-calculator/pkg/constants"
)

// InterestMethod selects how each month's interest portion is derived.
type InterestMethod string

const (
	// LinearProxy takes interest on principal - i*emi for month index i.
	// Once i*emi exceeds the principal the interest turns negative.
	LinearProxy InterestMethod = constants.MethodLinearProxy

	// ReducingBalance takes interest on the balance carried from the
	// previous month.
	ReducingBalance InterestMethod = constants.MethodReducingBalance
)

// ParseInterestMethod maps a configuration or query value onto a method.
// An empty value selects LinearProxy.
func ParseInterestMethod(value string) (InterestMethod, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", constants.MethodLinearProxy, "linear":
		return LinearProxy, nil
	case constants.MethodReducingBalance, "reducing":
		return ReducingBalance, nil
	default:
		return "", fmt.Errorf("expected interest method of %s or %s, got %s",
			constants.MethodLinearProxy, constants.MethodReducingBalance, value)
	}
}

func (m InterestMethod) String() string {
	return string(m)
}
