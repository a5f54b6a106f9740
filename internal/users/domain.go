package users

import (
	"time"

	"github.com/apiarycd/memberships/internal/storage"
)

type Role struct {
	storage.BaseEntity

	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type User struct {
	storage.BaseEntity

	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	RoleID    int64     `json:"roleId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserWithRole pairs a user with its role. Role is nil when the user
// references a role that does not exist.
type UserWithRole struct {
	User User
	Role *Role
}
