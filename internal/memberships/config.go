package memberships

type Config struct {
	// User on whose behalf requests are made until authentication exists
	ActingUserID int64
	// Membership types created when none exist
	Types []string
	// Period count bounds added to or replacing the defaults
	ExtraBounds map[BillingInterval]Bounds
}
