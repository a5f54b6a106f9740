package memberships

import (
	"time"

	"github.com/apiarycd/memberships/internal/memberships"
)

const dateLayout = time.DateOnly

// CreateRequest is the payload of a new membership.
type CreateRequest struct {
	Name            string   `json:"name"            validate:"max=100"`
	RecurringPrice  *float64 `json:"recurringPrice"`
	ValidFrom       string   `json:"validFrom"       validate:"omitempty,datetime=2006-01-02|datetime=2006-01-02T15:04:05Z07:00"`
	PaymentMethod   string   `json:"paymentMethod"   validate:"max=32"`
	BillingInterval string   `json:"billingInterval" validate:"max=32"`
	// Non-integer counts are reported as invalid billing periods
	BillingPeriods *float64 `json:"billingPeriods"`
}

type MembershipResponse struct {
	ID              int64   `json:"id"`
	UUID            string  `json:"uuid"`
	Name            string  `json:"name"`
	UserID          int64   `json:"user"`
	RecurringPrice  float64 `json:"recurringPrice"`
	ValidFrom       string  `json:"validFrom"`
	ValidUntil      string  `json:"validUntil"`
	State           string  `json:"state"`
	PaymentMethod   string  `json:"paymentMethod,omitempty"`
	BillingInterval string  `json:"billingInterval"`
	BillingPeriods  int     `json:"billingPeriods"`
}

type PeriodResponse struct {
	ID           int64     `json:"id"`
	UUID         string    `json:"uuid"`
	MembershipID int64     `json:"membership"`
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	State        string    `json:"state"`
}

type ListItemResponse struct {
	Membership MembershipResponse `json:"membership"`
	Periods    []PeriodResponse   `json:"periods"`
}

type CreateResponse struct {
	Membership        MembershipResponse `json:"membership"`
	MembershipPeriods []PeriodResponse   `json:"membershipPeriods"`
}

type ExportResponse struct {
	// UUID of the job status tracking the export
	UUID string `json:"uuid"`
}

func newMembershipResponse(m memberships.Membership) MembershipResponse {
	return MembershipResponse{
		ID:              m.ID,
		UUID:            m.UUID,
		Name:            m.Name,
		UserID:          m.UserID,
		RecurringPrice:  m.RecurringPrice,
		ValidFrom:       m.ValidFrom.Format(dateLayout),
		ValidUntil:      m.ValidUntil.Format(dateLayout),
		State:           string(m.State),
		PaymentMethod:   string(m.PaymentMethod),
		BillingInterval: string(m.BillingInterval),
		BillingPeriods:  m.BillingPeriods,
	}
}

func newPeriodResponses(periods []memberships.Period) []PeriodResponse {
	responses := make([]PeriodResponse, len(periods))
	for i, p := range periods {
		responses[i] = PeriodResponse{
			ID:           p.ID,
			UUID:         p.UUID,
			MembershipID: p.MembershipID,
			Start:        p.Start,
			End:          p.End,
			State:        string(p.State),
		}
	}
	return responses
}
