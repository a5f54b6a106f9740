package memberships

import (
	"context"
	"fmt"

	"github.com/apiarycd/memberships/internal/storage"
	"github.com/samber/lo"
)

const (
	CollectionMemberships     = "memberships"
	CollectionPeriods         = "membershipPeriods"
	CollectionMembershipTypes = "membershipTypes"
)

type Repository struct {
	*storage.Repository[Membership]
}

func NewRepository(provider storage.Provider) (*Repository, error) {
	r, err := storage.NewRepository[Membership](CollectionMemberships, provider)
	if err != nil {
		return nil, fmt.Errorf("failed to create memberships repository: %w", err)
	}

	return &Repository{Repository: r}, nil
}

type PeriodRepository struct {
	*storage.Repository[Period]
}

func NewPeriodRepository(provider storage.Provider) (*PeriodRepository, error) {
	r, err := storage.NewRepository[Period](CollectionPeriods, provider)
	if err != nil {
		return nil, fmt.Errorf("failed to create periods repository: %w", err)
	}

	return &PeriodRepository{Repository: r}, nil
}

// FindAllByMembershipIDs returns the periods belonging to any of ids.
func (r *PeriodRepository) FindAllByMembershipIDs(ctx context.Context, ids []int64) ([]Period, error) {
	periods, err := r.FindAll(ctx)
	if err != nil {
		return nil, err //nolint:wrapcheck //passed through
	}

	return lo.Filter(periods, func(p Period, _ int) bool {
		return lo.Contains(ids, p.MembershipID)
	}), nil
}

type TypeRepository struct {
	*storage.Repository[MembershipType]
}

func NewTypeRepository(provider storage.Provider) (*TypeRepository, error) {
	r, err := storage.NewRepository[MembershipType](CollectionMembershipTypes, provider)
	if err != nil {
		return nil, fmt.Errorf("failed to create membership types repository: %w", err)
	}

	return &TypeRepository{Repository: r}, nil
}
