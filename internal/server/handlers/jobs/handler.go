package jobs

import (
	"errors"
	"fmt"
	"time"

	"github.com/apiarycd/memberships/internal/jobs"
	"github.com/go-core-fx/fiberfx/handler"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type StatusResponse struct {
	UUID      string    `json:"uuid"`
	JobID     string    `json:"jobId,omitempty"`
	State     string    `json:"state"`
	Result    string    `json:"result,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Handler struct {
	jobsSvc *jobs.Service

	logger *zap.Logger
}

func NewHandler(jobsSvc *jobs.Service, logger *zap.Logger) handler.Handler {
	return &Handler{
		jobsSvc: jobsSvc,

		logger: logger,
	}
}

// Register implements handler.Handler.
func (h *Handler) Register(r fiber.Router) {
	r = r.Group("/jobs")

	r.Use(h.errorsHandler)
	r.Get("/:uuid", h.get)
}

//	@Summary		Get job status
//	@Description	Returns the state of a background job and its result once finished
//	@Tags			Jobs
//	@Produce		json
//	@Param			uuid	path		string	true	"Job UUID"
//	@Success		200		{object}	StatusResponse
//	@Failure		400		{object}	fiberfx.ErrorResponse
//	@Failure		404		{object}	fiberfx.ErrorResponse
//	@Router			/jobs/{uuid} [get]
func (h *Handler) get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("uuid"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	status, err := h.jobsSvc.GetByUUID(c.Context(), id.String())
	if err != nil {
		return fmt.Errorf("failed to get job: %w", err)
	}

	return c.JSON(StatusResponse{
		UUID:      status.UUID,
		JobID:     status.JobID,
		State:     string(status.State),
		Result:    status.Result,
		CreatedAt: status.CreatedAt,
		UpdatedAt: status.UpdatedAt,
	})
}

func (h *Handler) errorsHandler(c *fiber.Ctx) error {
	err := c.Next()
	if err == nil {
		return nil
	}

	if errors.Is(err, jobs.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	return err //nolint:wrapcheck //already wrapped
}
