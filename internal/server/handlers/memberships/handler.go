package memberships

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/apiarycd/memberships/internal/memberships"
	"github.com/apiarycd/memberships/internal/server/validation"
	"github.com/go-core-fx/fiberfx/handler"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Handler struct {
	membershipsSvc *memberships.Service
	config         memberships.Config

	validator *validator.Validate
	logger    *zap.Logger
}

func NewHandler(
	membershipsSvc *memberships.Service,
	config memberships.Config,
	validator *validator.Validate,
	logger *zap.Logger,
) handler.Handler {
	return &Handler{
		membershipsSvc: membershipsSvc,
		config:         config,

		validator: validator,
		logger:    logger,
	}
}

// Register implements handler.Handler.
func (h *Handler) Register(r fiber.Router) {
	r = r.Group("/memberships")

	r.Use(h.errorsHandler)
	r.Get("/", h.list)
	r.Post("/", validation.DecorateWithBodyEx(h.validator, h.post))
	r.Post("/export", h.export)
}

//	@Summary		List memberships
//	@Description	Returns all memberships with their billing periods
//	@Tags			Memberships
//	@Produce		json
//	@Success		200	{array}		ListItemResponse
//	@Failure		500	{object}	fiberfx.ErrorResponse
//	@Router			/memberships [get]
func (h *Handler) list(c *fiber.Ctx) error {
	items, err := h.membershipsSvc.FindAll(c.Context())
	if err != nil {
		return fmt.Errorf("failed to list memberships: %w", err)
	}

	responses := make([]ListItemResponse, len(items))
	for i, item := range items {
		responses[i] = ListItemResponse{
			Membership: newMembershipResponse(item.Membership),
			Periods:    newPeriodResponses(item.Periods),
		}
	}

	return c.JSON(responses)
}

//	@Summary		Create membership
//	@Description	Creates a membership and its billing periods for the acting user
//	@Tags			Memberships
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateRequest	true	"Membership"
//	@Success		201		{object}	CreateResponse
//	@Failure		400		{object}	fiberfx.ErrorResponse
//	@Failure		500		{object}	fiberfx.ErrorResponse
//	@Router			/memberships [post]
func (h *Handler) post(c *fiber.Ctx, req *CreateRequest) error {
	draft := memberships.CreateRequest{
		Name:            req.Name,
		RecurringPrice:  req.RecurringPrice,
		ValidFrom:       nil,
		PaymentMethod:   memberships.PaymentMethod(req.PaymentMethod),
		BillingInterval: memberships.BillingInterval(req.BillingInterval),
		BillingPeriods:  nil,
	}

	if req.ValidFrom != "" {
		validFrom, err := parseDate(req.ValidFrom)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		draft.ValidFrom = &validFrom
	}

	if p := req.BillingPeriods; p != nil && *p == math.Trunc(*p) && math.Abs(*p) <= math.MaxInt32 {
		periods := int(*p)
		draft.BillingPeriods = &periods
	}

	result, err := h.membershipsSvc.Create(c.Context(), h.config.ActingUserID, draft)
	if err != nil {
		return fmt.Errorf("failed to create membership: %w", err)
	}

	return c.Status(fiber.StatusCreated).JSON(CreateResponse{
		Membership:        newMembershipResponse(result.Membership),
		MembershipPeriods: newPeriodResponses(result.Periods),
	})
}

//	@Summary		Export memberships
//	@Description	Queues a CSV export of all memberships and returns the uuid of its job
//	@Tags			Memberships
//	@Produce		json
//	@Success		202	{object}	ExportResponse
//	@Failure		400	{object}	fiberfx.ErrorResponse
//	@Failure		500	{object}	fiberfx.ErrorResponse
//	@Router			/memberships/export [post]
func (h *Handler) export(c *fiber.Ctx) error {
	uuid, err := h.membershipsSvc.Export(c.Context(), h.config.ActingUserID)
	if err != nil {
		return fmt.Errorf("failed to export memberships: %w", err)
	}

	return c.Status(fiber.StatusAccepted).JSON(ExportResponse{UUID: uuid})
}

func (h *Handler) errorsHandler(c *fiber.Ctx) error {
	err := c.Next()
	if err == nil {
		return nil
	}

	var validationErr *memberships.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return fiber.NewError(fiber.StatusBadRequest, strings.Join(validationErr.Codes(), ", "))
	case errors.Is(err, memberships.ErrInvalidUser):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return err //nolint:wrapcheck //already wrapped
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, value); err == nil {
		return t, nil
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid validFrom %q: expected YYYY-MM-DD or RFC 3339", value)
	}

	return t, nil
}
