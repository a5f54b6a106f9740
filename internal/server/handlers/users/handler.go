package users

import (
	"fmt"
	"time"

	"github.com/apiarycd/memberships/internal/users"
	"github.com/go-core-fx/fiberfx/handler"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type RoleResponse struct {
	ID          int64  `json:"id"`
	UUID        string `json:"uuid"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type UserResponse struct {
	ID        int64         `json:"id"`
	UUID      string        `json:"uuid"`
	Username  string        `json:"username"`
	Email     string        `json:"email"`
	FirstName string        `json:"firstName"`
	LastName  string        `json:"lastName"`
	Role      *RoleResponse `json:"role"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

type Handler struct {
	usersSvc *users.Service

	logger *zap.Logger
}

func NewHandler(usersSvc *users.Service, logger *zap.Logger) handler.Handler {
	return &Handler{
		usersSvc: usersSvc,

		logger: logger,
	}
}

// Register implements handler.Handler.
func (h *Handler) Register(r fiber.Router) {
	r = r.Group("/users")

	r.Get("/", h.list)
}

//	@Summary		List users
//	@Description	Returns all users with their roles
//	@Tags			Users
//	@Produce		json
//	@Success		200	{array}		UserResponse
//	@Failure		500	{object}	fiberfx.ErrorResponse
//	@Router			/users [get]
func (h *Handler) list(c *fiber.Ctx) error {
	items, err := h.usersSvc.GetAllUsers(c.Context())
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]UserResponse, len(items))
	for i, item := range items {
		responses[i] = toResponse(item)
	}

	return c.JSON(responses)
}

func toResponse(item users.UserWithRole) UserResponse {
	var role *RoleResponse
	if item.Role != nil {
		role = &RoleResponse{
			ID:          item.Role.ID,
			UUID:        item.Role.UUID,
			Name:        item.Role.Name,
			Description: item.Role.Description,
		}
	}

	return UserResponse{
		ID:        item.User.ID,
		UUID:      item.User.UUID,
		Username:  item.User.Username,
		Email:     item.User.Email,
		FirstName: item.User.FirstName,
		LastName:  item.User.LastName,
		Role:      role,
		CreatedAt: item.User.CreatedAt,
		UpdatedAt: item.User.UpdatedAt,
	}
}
