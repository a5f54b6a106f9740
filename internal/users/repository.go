package users

import (
	"fmt"

	"github.com/apiarycd/memberships/internal/storage"
)

const (
	CollectionUsers = "users"
	CollectionRoles = "roles"
)

type Repository struct {
	*storage.Repository[User]
}

func NewRepository(provider storage.Provider) (*Repository, error) {
	r, err := storage.NewRepository[User](CollectionUsers, provider)
	if err != nil {
		return nil, fmt.Errorf("failed to create users repository: %w", err)
	}

	return &Repository{Repository: r}, nil
}

type RoleRepository struct {
	*storage.Repository[Role]
}

func NewRoleRepository(provider storage.Provider) (*RoleRepository, error) {
	r, err := storage.NewRepository[Role](CollectionRoles, provider)
	if err != nil {
		return nil, fmt.Errorf("failed to create roles repository: %w", err)
	}

	return &RoleRepository{Repository: r}, nil
}
