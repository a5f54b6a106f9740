package users

// SeedUser describes a user created on first start.
type SeedUser struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Role      string
}

type Config struct {
	// Users created when the users collection is empty
	Seed []SeedUser
}
