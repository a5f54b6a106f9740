package memberships

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

const (
	CodeMissingMandatoryFields = "missingMandatoryFields"
	CodeNegativeRecurringPrice = "negativeRecurringPrice"
	CodeCashPriceBelow100      = "cashPriceBelow100"
	CodeInvalidBillingPeriods  = "invalidBillingPeriods"
	CodeInvalidPaymentMethod   = "invalidPaymentMethod"

	cashPriceLimit = 100
)

// MaxBillingPeriods caps the period count of any interval, including those
// the period-count policy leaves unbounded.
const MaxBillingPeriods = 1000

type Violation struct {
	Field string
	Code  string
}

// ValidationError lists every problem found in a request.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(e.Codes(), ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Codes returns the distinct violation codes in the order they were found.
func (e *ValidationError) Codes() []string {
	return lo.Uniq(lo.Map(e.Violations, func(v Violation, _ int) string { return v.Code }))
}

// Validate checks a creation request. All problems are reported together.
func (s *Service) Validate(ctx context.Context, req CreateRequest) error {
	var violations []Violation
	add := func(field, code string) {
		violations = append(violations, Violation{Field: field, Code: code})
	}

	if req.Name == "" {
		add("name", CodeMissingMandatoryFields)
	} else {
		known, err := s.IsValidMembershipType(ctx, req.Name)
		if err != nil {
			return err
		}
		if !known {
			add("name", CodeMissingMandatoryFields)
		}
	}

	switch {
	case req.RecurringPrice == nil:
		add("recurringPrice", CodeMissingMandatoryFields)
	case *req.RecurringPrice < 0:
		add("recurringPrice", CodeNegativeRecurringPrice)
	case req.PaymentMethod == PaymentMethodCash && *req.RecurringPrice > cashPriceLimit:
		add("recurringPrice", CodeCashPriceBelow100)
	}

	switch req.PaymentMethod {
	case "", PaymentMethodCash, PaymentMethodCreditCard:
	default:
		add("paymentMethod", CodeInvalidPaymentMethod)
	}

	if !req.BillingInterval.IsValid() {
		add("billingInterval", CodeInvalidBillingPeriods)
	}

	switch {
	case req.BillingPeriods == nil, *req.BillingPeriods < 1, *req.BillingPeriods > MaxBillingPeriods:
		add("billingPeriods", CodeInvalidBillingPeriods)
	default:
		if v := s.policy.Validate(req.BillingInterval, *req.BillingPeriods); v != nil {
			add("billingPeriods", v.Code)
		}
	}

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}

	return nil
}
