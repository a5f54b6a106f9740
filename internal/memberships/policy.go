package memberships

import (
	"fmt"
	"strings"
)

// Bounds limits the number of billing periods of one interval.
type Bounds struct {
	Min  int
	Max  int
	Unit string
}

// PolicyViolation names a billing period count outside its bounds.
type PolicyViolation struct {
	Code   string
	Reason string
}

func (v *PolicyViolation) Error() string {
	return v.Code
}

func (v *PolicyViolation) Unwrap() error {
	return ErrValidation
}

// Policy maps billing intervals to their period count bounds. Intervals
// without bounds accept any count.
type Policy struct {
	bounds map[BillingInterval]Bounds
}

// DefaultPolicy allows 6 to 12 monthly periods and 3 to 10 yearly periods.
func DefaultPolicy() Policy {
	return Policy{
		bounds: map[BillingInterval]Bounds{
			BillingIntervalMonthly: {Min: 6, Max: 12, Unit: "Months"},  //nolint:mnd //policy
			BillingIntervalYearly:  {Min: 3, Max: 10, Unit: "Years"},   //nolint:mnd //policy
		},
	}
}

// NewPolicy returns the default policy with extra bounds added or replaced.
func NewPolicy(extra map[BillingInterval]Bounds) Policy {
	p := DefaultPolicy()
	for interval, b := range extra {
		p.bounds[interval] = b
	}
	return p
}

// Bounds returns the bounds of interval, if any.
func (p Policy) Bounds(interval BillingInterval) (Bounds, bool) {
	b, ok := p.bounds[interval]
	return b, ok
}

// Validate returns nil when count is allowed for interval.
func (p Policy) Validate(interval BillingInterval, count int) *PolicyViolation {
	b, ok := p.bounds[interval]
	if !ok {
		return nil
	}

	unit := strings.ToLower(b.Unit)
	if count > b.Max {
		return &PolicyViolation{
			Code:   fmt.Sprintf("billingPeriodsMoreThan%d%s", b.Max, b.Unit),
			Reason: "too many " + unit,
		}
	}
	if count < b.Min {
		return &PolicyViolation{
			Code:   fmt.Sprintf("billingPeriodsLessThan%d%s", b.Min, b.Unit),
			Reason: "too few " + unit,
		}
	}

	return nil
}

// ValidateBillingPeriods checks count against the default policy.
func ValidateBillingPeriods(interval BillingInterval, count int) *PolicyViolation {
	return DefaultPolicy().Validate(interval, count)
}
