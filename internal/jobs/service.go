package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/apiarycd/memberships/internal/storage"
	"go.uber.org/zap"
)

type Service struct {
	statuses *Repository

	now    func() time.Time
	logger *zap.Logger
}

func NewService(statuses *Repository, logger *zap.Logger) *Service {
	return &Service{
		statuses: statuses,

		now:    time.Now,
		logger: logger,
	}
}

// Create registers a new pending job of user.
func (s *Service) Create(ctx context.Context, userID int64) (Status, error) {
	now := s.now().UTC()

	status, err := s.statuses.Create(ctx, Status{
		BaseEntity: storage.NewBaseEntity(),
		JobID:      "",
		UserID:     userID,
		State:      StatePending,
		Result:     "",
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return Status{}, fmt.Errorf("failed to create job status: %w", err)
	}

	s.logger.Info("job created", zap.Int64("id", status.ID), zap.String("uuid", status.UUID))

	return status, nil
}

func (s *Service) Update(ctx context.Context, id int64, update StatusUpdate) (Status, error) {
	fields := storage.Record{
		"updatedAt": s.now().UTC().Format(time.RFC3339Nano),
	}
	if update.JobID != nil {
		fields["jobId"] = *update.JobID
	}
	if update.State != nil {
		fields["state"] = string(*update.State)
	}
	if update.Result != nil {
		fields["result"] = *update.Result
	}

	status, ok, err := s.statuses.Update(ctx, id, fields)
	if err != nil {
		return Status{}, fmt.Errorf("failed to update job status: %w", err)
	}
	if !ok {
		return Status{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}

	return status, nil
}

// SetState is a shorthand for updating the state only.
func (s *Service) SetState(ctx context.Context, id int64, state State) error {
	_, err := s.Update(ctx, id, StatusUpdate{JobID: nil, State: &state, Result: nil})
	return err
}

func (s *Service) GetByID(ctx context.Context, id int64) (Status, error) {
	status, ok, err := s.statuses.FindByID(ctx, id)
	if err != nil {
		return Status{}, fmt.Errorf("failed to get job status: %w", err)
	}
	if !ok {
		return Status{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}

	return status, nil
}

func (s *Service) GetByUUID(ctx context.Context, uuid string) (Status, error) {
	status, ok, err := s.statuses.FindByUUID(ctx, uuid)
	if err != nil {
		return Status{}, fmt.Errorf("failed to get job status: %w", err)
	}
	if !ok {
		return Status{}, fmt.Errorf("%w: %s", ErrNotFound, uuid)
	}

	return status, nil
}
