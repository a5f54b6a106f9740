package users

import (
	"context"
	"fmt"
	"time"

	"github.com/apiarycd/memberships/internal/storage"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type Service struct {
	users *Repository
	roles *RoleRepository

	config Config
	logger *zap.Logger
}

func NewService(users *Repository, roles *RoleRepository, config Config, logger *zap.Logger) *Service {
	return &Service{
		users: users,
		roles: roles,

		config: config,
		logger: logger,
	}
}

func (s *Service) GetAllUsers(ctx context.Context) ([]UserWithRole, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		s.logger.Error("failed to fetch users", zap.Error(err))
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}

	roles, err := s.roles.FindAll(ctx)
	if err != nil {
		s.logger.Error("failed to fetch roles", zap.Error(err))
		return nil, fmt.Errorf("failed to fetch roles: %w", err)
	}

	rolesByID := lo.KeyBy(roles, func(r Role) int64 { return r.ID })

	return lo.Map(users, func(u User, _ int) UserWithRole {
		var role *Role
		if r, ok := rolesByID[u.RoleID]; ok {
			role = &r
		}
		return UserWithRole{User: u, Role: role}
	}), nil
}

func (s *Service) GetUserByID(ctx context.Context, id int64) (UserWithRole, bool, error) {
	user, ok, err := s.users.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to fetch user", zap.Int64("id", id), zap.Error(err))
		return UserWithRole{}, false, fmt.Errorf("failed to fetch user: %w", err)
	}
	if !ok {
		return UserWithRole{}, false, nil
	}

	role, ok, err := s.roles.FindByID(ctx, user.RoleID)
	if err != nil {
		s.logger.Error("failed to fetch role", zap.Int64("id", user.RoleID), zap.Error(err))
		return UserWithRole{}, false, fmt.Errorf("failed to fetch role: %w", err)
	}

	result := UserWithRole{User: user, Role: nil}
	if ok {
		result.Role = &role
	}

	return result, true, nil
}

// Seed creates the configured users and their roles when no user exists yet.
func (s *Service) Seed(ctx context.Context) error {
	existing, err := s.users.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch users: %w", err)
	}
	if len(existing) > 0 || len(s.config.Seed) == 0 {
		return nil
	}

	roles, err := s.roles.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch roles: %w", err)
	}
	roleIDs := lo.SliceToMap(roles, func(r Role) (string, int64) { return r.Name, r.ID })

	now := time.Now().UTC()
	for _, seed := range s.config.Seed {
		roleID, ok := roleIDs[seed.Role]
		if !ok && seed.Role != "" {
			role, createErr := s.roles.Create(ctx, Role{
				BaseEntity:  storage.NewBaseEntity(),
				Name:        seed.Role,
				Description: "",
				CreatedAt:   now,
				UpdatedAt:   now,
			})
			if createErr != nil {
				return fmt.Errorf("failed to create role %q: %w", seed.Role, createErr)
			}
			roleID = role.ID
			roleIDs[seed.Role] = roleID
		}

		user, createErr := s.users.Create(ctx, User{
			BaseEntity: storage.NewBaseEntity(),
			Username:   seed.Username,
			Email:      seed.Email,
			FirstName:  seed.FirstName,
			LastName:   seed.LastName,
			RoleID:     roleID,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
		if createErr != nil {
			return fmt.Errorf("failed to create user %q: %w", seed.Username, createErr)
		}

		s.logger.Info("user seeded", zap.Int64("id", user.ID), zap.String("username", user.Username))
	}

	return nil
}
