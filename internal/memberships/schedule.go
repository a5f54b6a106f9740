package memberships

import (
	"time"

	"github.com/google/uuid"
)

const daysPerWeek = 7

// Advance moves t forward by units billing intervals. Month arithmetic
// normalizes overflowing days the way time.AddDate does, so Jan 31 plus one
// month is Mar 2 or Mar 3. Unknown intervals do not move t.
func Advance(t time.Time, interval BillingInterval, units int) time.Time {
	switch interval {
	case BillingIntervalMonthly:
		return t.AddDate(0, units, 0)
	case BillingIntervalYearly:
		return t.AddDate(0, 12*units, 0) //nolint:mnd //months per year
	case BillingIntervalWeekly:
		return t.AddDate(0, 0, daysPerWeek*units)
	}

	return t
}

// DeriveWindow returns the end of a membership starting at validFrom and
// spanning periods billing intervals.
func DeriveWindow(validFrom time.Time, interval BillingInterval, periods int) time.Time {
	return Advance(validFrom, interval, periods)
}

// PeriodEnd returns the end of a single period starting at start.
func PeriodEnd(start time.Time, interval BillingInterval) time.Time {
	return Advance(start, interval, 1)
}

// StateAt evaluates the membership state at now. A window that starts in the
// future and also ends in the past is expired.
func StateAt(validFrom, validUntil, now time.Time) State {
	state := StateActive
	if validFrom.After(now) {
		state = StatePending
	}
	if validUntil.Before(now) {
		state = StateExpired
	}

	return state
}

// DerivePeriods splits the membership window into count contiguous periods.
// Each period starts where the previous one ends and lasts one interval.
func DerivePeriods(membershipID int64, validFrom time.Time, interval BillingInterval, count int) []Period {
	if count <= 0 {
		return []Period{}
	}

	periods := make([]Period, 0, count)
	start := validFrom
	for range count {
		end := PeriodEnd(start, interval)

		period := Period{
			MembershipID: membershipID,
			Start:        start,
			End:          end,
			State:        PeriodStatePlanned,
		}
		period.UUID = uuid.NewString()

		periods = append(periods, period)
		start = end
	}

	return periods
}
