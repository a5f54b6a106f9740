package jobs

import (
	"context"
	"fmt"

	"github.com/apiarycd/memberships/internal/storage"
	"github.com/samber/lo"
)

const CollectionJobStatuses = "jobStatuses"

type Repository struct {
	*storage.Repository[Status]
}

func NewRepository(provider storage.Provider) (*Repository, error) {
	r, err := storage.NewRepository[Status](CollectionJobStatuses, provider)
	if err != nil {
		return nil, fmt.Errorf("failed to create job statuses repository: %w", err)
	}

	return &Repository{Repository: r}, nil
}

func (r *Repository) FindByUUID(ctx context.Context, uuid string) (Status, bool, error) {
	statuses, err := r.FindAll(ctx)
	if err != nil {
		return Status{}, false, err //nolint:wrapcheck //passed through
	}

	status, ok := lo.Find(statuses, func(s Status) bool { return s.UUID == uuid })
	return status, ok, nil
}
