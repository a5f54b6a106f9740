package memberships

import (
	"context"
	"fmt"
	"time"

	"github.com/apiarycd/memberships/internal/jobs"
	"github.com/apiarycd/memberships/internal/queue"
	"github.com/apiarycd/memberships/internal/storage"
	"github.com/apiarycd/memberships/internal/users"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type UserLookup interface {
	GetUserByID(ctx context.Context, id int64) (users.UserWithRole, bool, error)
}

type JobTracker interface {
	Create(ctx context.Context, userID int64) (jobs.Status, error)
	Update(ctx context.Context, id int64, update jobs.StatusUpdate) (jobs.Status, error)
	SetState(ctx context.Context, id int64, state jobs.State) error
}

type Service struct {
	memberships *Repository
	periods     *PeriodRepository
	types       *TypeRepository

	users     UserLookup
	jobs      JobTracker
	publisher queue.Publisher

	policy Policy
	config Config
	now    func() time.Time
	logger *zap.Logger
}

func NewService(
	memberships *Repository,
	periods *PeriodRepository,
	types *TypeRepository,
	users UserLookup,
	jobs JobTracker,
	publisher queue.Publisher,
	config Config,
	logger *zap.Logger,
) *Service {
	return &Service{
		memberships: memberships,
		periods:     periods,
		types:       types,

		users:     users,
		jobs:      jobs,
		publisher: publisher,

		policy: NewPolicy(config.ExtraBounds),
		config: config,
		now:    time.Now,
		logger: logger,
	}
}

// FindAll returns every membership together with its periods.
func (s *Service) FindAll(ctx context.Context) ([]MembershipWithPeriods, error) {
	s.logger.Debug("fetching all memberships")

	memberships, err := s.memberships.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch memberships: %w", err)
	}

	ids := lo.Map(memberships, func(m Membership, _ int) int64 { return m.ID })
	periods, err := s.periods.FindAllByMembershipIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch periods: %w", err)
	}

	byMembership := lo.GroupBy(periods, func(p Period) int64 { return p.MembershipID })

	return lo.Map(memberships, func(m Membership, _ int) MembershipWithPeriods {
		mp, ok := byMembership[m.ID]
		if !ok {
			mp = []Period{}
		}
		return MembershipWithPeriods{Membership: m, Periods: mp}
	}), nil
}

// Create validates req and stores the membership of userID with its derived
// periods. The membership is written first; its id is then set on every
// period before the periods are written. A failure while writing periods
// leaves the membership in place.
func (s *Service) Create(ctx context.Context, userID int64, req CreateRequest) (CreateResult, error) {
	if err := s.Validate(ctx, req); err != nil {
		return CreateResult{}, err
	}

	membership := s.buildMembership(userID, req)
	periods := DerivePeriods(membership.ID, membership.ValidFrom, membership.BillingInterval, membership.BillingPeriods)

	var result CreateResult
	err := storage.WithTransaction(ctx, s.memberships.Provider(), func(ctx context.Context) error {
		saved, err := s.memberships.Create(ctx, membership)
		if err != nil {
			return fmt.Errorf("failed to create membership: %w", err)
		}

		for i := range periods {
			periods[i].MembershipID = saved.ID
		}

		savedPeriods, err := s.periods.CreateMany(ctx, periods)
		if err != nil {
			return fmt.Errorf("failed to create periods of membership %d: %w", saved.ID, err)
		}

		result = CreateResult{Membership: saved, Periods: savedPeriods}
		return nil
	})
	if err != nil {
		s.logger.Error("failed to create membership", zap.Error(err), zap.Any("request", req), zap.Int64("user", userID))
		return CreateResult{}, err
	}

	s.logger.Info("membership created",
		zap.Int64("id", result.Membership.ID),
		zap.String("uuid", result.Membership.UUID),
		zap.Int("periods", len(result.Periods)),
	)

	return result, nil
}

func (s *Service) buildMembership(userID int64, req CreateRequest) Membership {
	validFrom := s.now()
	if req.ValidFrom != nil {
		validFrom = *req.ValidFrom
	}

	periods := lo.FromPtr(req.BillingPeriods)
	validUntil := DeriveWindow(validFrom, req.BillingInterval, periods)

	return Membership{
		BaseEntity:      storage.NewBaseEntity(),
		Name:            req.Name,
		UserID:          userID,
		RecurringPrice:  lo.FromPtr(req.RecurringPrice),
		ValidFrom:       validFrom,
		ValidUntil:      validUntil,
		State:           StateAt(validFrom, validUntil, s.now()),
		PaymentMethod:   req.PaymentMethod,
		BillingInterval: req.BillingInterval,
		BillingPeriods:  periods,
	}
}

// IsValidMembershipType reports whether name is a known membership type.
func (s *Service) IsValidMembershipType(ctx context.Context, name string) (bool, error) {
	types, err := s.types.FindAll(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to fetch membership types: %w", err)
	}

	return lo.ContainsBy(types, func(t MembershipType) bool { return t.Name == name }), nil
}

// SeedTypes stores the configured membership types when none exist yet.
func (s *Service) SeedTypes(ctx context.Context) error {
	existing, err := s.types.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch membership types: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	items := lo.Map(lo.Uniq(s.config.Types), func(name string, _ int) MembershipType {
		return MembershipType{BaseEntity: storage.NewBaseEntity(), Name: name}
	})
	if _, createErr := s.types.CreateMany(ctx, items); createErr != nil {
		return fmt.Errorf("failed to seed membership types: %w", createErr)
	}

	s.logger.Info("membership types seeded", zap.Strings("types", s.config.Types))

	return nil
}

// Export queues an export of all memberships on behalf of userID and returns
// the uuid of the job tracking it.
func (s *Service) Export(ctx context.Context, userID int64) (string, error) {
	user, ok, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch user: %w", err)
	}
	if !ok {
		return "", fmt.Errorf("%w: %d", ErrInvalidUser, userID)
	}

	status, err := s.jobs.Create(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to create export job: %w", err)
	}

	jobID, err := s.publisher.Publish(ctx, ExportData{
		DBJobID: status.ID,
		UserID:  userID,
		Email:   user.User.Email,
		Ver:     ExportDataVersion,
	})
	if err != nil {
		return "", fmt.Errorf("failed to queue export job: %w", err)
	}

	if _, updateErr := s.jobs.Update(ctx, status.ID, jobs.StatusUpdate{JobID: &jobID, State: nil, Result: nil}); updateErr != nil {
		s.logger.Warn("failed to store queue job id", zap.Int64("job", status.ID), zap.Error(updateErr))
	}

	s.logger.Info("export job added", zap.String("job", jobID), zap.String("uuid", status.UUID))

	return status.UUID, nil
}
