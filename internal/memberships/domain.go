package memberships

import (
	"time"

	"github.com/apiarycd/memberships/internal/storage"
)

type BillingInterval string

const (
	BillingIntervalMonthly BillingInterval = "monthly"
	BillingIntervalYearly  BillingInterval = "yearly"
	BillingIntervalWeekly  BillingInterval = "weekly"
)

func (i BillingInterval) IsValid() bool {
	switch i {
	case BillingIntervalMonthly, BillingIntervalYearly, BillingIntervalWeekly:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentMethodCash       PaymentMethod = "cash"
	PaymentMethodCreditCard PaymentMethod = "creditCard"
)

type State string

const (
	StatePending State = "pending"
	StateActive  State = "active"
	StateExpired State = "expired"
)

type PeriodState string

const (
	PeriodStatePlanned PeriodState = "planned"
	PeriodStateActive  PeriodState = "active"
	PeriodStateExpired PeriodState = "expired"
)

// Membership is a recurring subscription of one user.
type Membership struct {
	storage.BaseEntity

	Name            string          `json:"name"`
	UserID          int64           `json:"user"`
	RecurringPrice  float64         `json:"recurringPrice"`
	ValidFrom       time.Time       `json:"validFrom"`
	ValidUntil      time.Time       `json:"validUntil"`
	State           State           `json:"state"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod,omitempty"`
	BillingInterval BillingInterval `json:"billingInterval"`
	BillingPeriods  int             `json:"billingPeriods"`
}

// Period is one billing unit of a membership.
type Period struct {
	storage.BaseEntity

	MembershipID int64       `json:"membership"`
	Start        time.Time   `json:"start"`
	End          time.Time   `json:"end"`
	State        PeriodState `json:"state"`
}

type MembershipType struct {
	storage.BaseEntity

	Name string `json:"name"`
}

type MembershipWithPeriods struct {
	Membership Membership
	Periods    []Period
}

// CreateRequest carries the caller supplied fields of a new membership.
// Nil pointers mark fields that were not supplied.
type CreateRequest struct {
	Name            string
	RecurringPrice  *float64
	ValidFrom       *time.Time
	PaymentMethod   PaymentMethod
	BillingInterval BillingInterval
	BillingPeriods  *int
}

type CreateResult struct {
	Membership Membership
	Periods    []Period
}

// ExportData is the payload of an export job.
type ExportData struct {
	DBJobID int64  `json:"dbJobId"`
	UserID  int64  `json:"userId"`
	Email   string `json:"email"`
	Ver     int    `json:"ver"`
}

const ExportDataVersion = 1
