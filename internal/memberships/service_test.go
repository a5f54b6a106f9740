package memberships

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/apiarycd/memberships/internal/jobs"
	"github.com/apiarycd/memberships/internal/queue"
	"github.com/apiarycd/memberships/internal/storage"
	"github.com/apiarycd/memberships/internal/users"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type fakePublisher struct {
	mux      sync.Mutex
	payloads []any
	err      error
}

func (f *fakePublisher) Publish(_ context.Context, payload any) (string, error) {
	f.mux.Lock()
	defer f.mux.Unlock()

	if f.err != nil {
		return "", f.err
	}
	f.payloads = append(f.payloads, payload)
	return "queue-job-1", nil
}

type testEnv struct {
	svc       *Service
	provider  storage.Provider
	publisher *fakePublisher
	jobs      *jobs.Service
}

func newTestEnv(t *testing.T, provider storage.Provider) testEnv {
	t.Helper()

	ctx := context.Background()
	logger := zaptest.NewLogger(t)

	membershipsRepo, err := NewRepository(provider)
	require.NoError(t, err)
	periodsRepo, err := NewPeriodRepository(provider)
	require.NoError(t, err)
	typesRepo, err := NewTypeRepository(provider)
	require.NoError(t, err)

	usersRepo, err := users.NewRepository(provider)
	require.NoError(t, err)
	rolesRepo, err := users.NewRoleRepository(provider)
	require.NoError(t, err)
	usersSvc := users.NewService(usersRepo, rolesRepo, users.Config{
		Seed: []users.SeedUser{{Username: "admin", Email: "admin@example.com", FirstName: "Ada", LastName: "Admin", Role: "admin"}},
	}, logger)
	require.NoError(t, usersSvc.Seed(ctx))

	jobsRepo, err := jobs.NewRepository(provider)
	require.NoError(t, err)
	jobsSvc := jobs.NewService(jobsRepo, logger)

	publisher := &fakePublisher{}

	svc := NewService(
		membershipsRepo, periodsRepo, typesRepo,
		usersSvc, jobsSvc, publisher,
		Config{ActingUserID: 1, Types: []string{"Gold Plan", "Platinum Plan", "Gold Plan"}, ExtraBounds: nil},
		logger,
	)
	svc.now = func() time.Time { return testNow }
	require.NoError(t, svc.SeedTypes(ctx))

	return testEnv{svc: svc, provider: provider, publisher: publisher, jobs: jobsSvc}
}

func validRequest() CreateRequest {
	validFrom := date(2024, 1, 15)
	return CreateRequest{
		Name:            "Gold Plan",
		RecurringPrice:  lo.ToPtr(150.0),
		ValidFrom:       &validFrom,
		PaymentMethod:   PaymentMethodCreditCard,
		BillingInterval: BillingIntervalMonthly,
		BillingPeriods:  lo.ToPtr(6),
	}
}

func TestService_SeedTypes(t *testing.T) {
	env := newTestEnv(t, storage.NewMemoryProvider(zaptest.NewLogger(t)))
	ctx := context.Background()

	require.NoError(t, env.svc.SeedTypes(ctx), "seeding twice is a no-op")

	types, err := env.svc.types.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, types, 2)

	ok, err := env.svc.IsValidMembershipType(ctx, "Platinum Plan")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = env.svc.IsValidMembershipType(ctx, "Bronze Plan")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestService_Create(t *testing.T) {
	env := newTestEnv(t, storage.NewMemoryProvider(zaptest.NewLogger(t)))
	ctx := context.Background()

	result, err := env.svc.Create(ctx, 1, validRequest())
	require.NoError(t, err)

	m := result.Membership
	assert.Equal(t, int64(1), m.ID)
	assert.NotEmpty(t, m.UUID)
	assert.Equal(t, "Gold Plan", m.Name)
	assert.Equal(t, int64(1), m.UserID)
	assert.InDelta(t, 150.0, m.RecurringPrice, 0)
	assert.True(t, date(2024, 1, 15).Equal(m.ValidFrom))
	assert.True(t, date(2024, 7, 15).Equal(m.ValidUntil))
	assert.Equal(t, StateActive, m.State)
	assert.Equal(t, 6, m.BillingPeriods)

	require.Len(t, result.Periods, 6)
	for i, p := range result.Periods {
		assert.Equal(t, int64(i+1), p.ID)
		assert.Equal(t, m.ID, p.MembershipID)
		assert.Equal(t, PeriodStatePlanned, p.State)
	}
	assert.True(t, m.ValidUntil.Equal(result.Periods[5].End))

	second, err := env.svc.Create(ctx, 1, validRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.Membership.ID)
	assert.Equal(t, int64(2), second.Periods[0].MembershipID)
	assert.Equal(t, int64(7), second.Periods[0].ID)
}

func TestService_CreateDefaultsValidFromToNow(t *testing.T) {
	env := newTestEnv(t, storage.NewMemoryProvider(zaptest.NewLogger(t)))

	req := validRequest()
	req.ValidFrom = nil
	req.BillingInterval = BillingIntervalYearly
	req.BillingPeriods = lo.ToPtr(3)

	result, err := env.svc.Create(context.Background(), 1, req)
	require.NoError(t, err)

	assert.True(t, testNow.Equal(result.Membership.ValidFrom))
	assert.True(t, testNow.AddDate(3, 0, 0).Equal(result.Membership.ValidUntil))
	assert.Equal(t, StateActive, result.Membership.State)
}

func TestService_CreateStates(t *testing.T) {
	env := newTestEnv(t, storage.NewMemoryProvider(zaptest.NewLogger(t)))

	future := validRequest()
	future.ValidFrom = lo.ToPtr(date(2025, 1, 1))
	result, err := env.svc.Create(context.Background(), 1, future)
	require.NoError(t, err)
	assert.Equal(t, StatePending, result.Membership.State)

	past := validRequest()
	past.ValidFrom = lo.ToPtr(date(2020, 1, 1))
	result, err = env.svc.Create(context.Background(), 1, past)
	require.NoError(t, err)
	assert.Equal(t, StateExpired, result.Membership.State)
}

func TestService_CreateValidation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(r *CreateRequest)
		codes  []string
	}{
		{name: "missing name", modify: func(r *CreateRequest) { r.Name = "" }, codes: []string{CodeMissingMandatoryFields}},
		{name: "unknown type", modify: func(r *CreateRequest) { r.Name = "Bronze Plan" }, codes: []string{CodeMissingMandatoryFields}},
		{name: "missing price", modify: func(r *CreateRequest) { r.RecurringPrice = nil }, codes: []string{CodeMissingMandatoryFields}},
		{name: "negative price", modify: func(r *CreateRequest) { r.RecurringPrice = lo.ToPtr(-1.0) }, codes: []string{CodeNegativeRecurringPrice}},
		{
			name: "cash above limit",
			modify: func(r *CreateRequest) {
				r.PaymentMethod = PaymentMethodCash
				r.RecurringPrice = lo.ToPtr(101.0)
			},
			codes: []string{CodeCashPriceBelow100},
		},
		{name: "unknown payment method", modify: func(r *CreateRequest) { r.PaymentMethod = "bitcoin" }, codes: []string{CodeInvalidPaymentMethod}},
		{
			name: "invalid interval",
			modify: func(r *CreateRequest) {
				r.BillingInterval = "INVALID"
				r.BillingPeriods = lo.ToPtr(13)
			},
			codes: []string{CodeInvalidBillingPeriods},
		},
		{name: "missing periods", modify: func(r *CreateRequest) { r.BillingPeriods = nil }, codes: []string{CodeInvalidBillingPeriods}},
		{
			name: "weekly count above cap",
			modify: func(r *CreateRequest) {
				r.BillingInterval = BillingIntervalWeekly
				r.BillingPeriods = lo.ToPtr(1 << 40)
			},
			codes: []string{CodeInvalidBillingPeriods},
		},
		{name: "too many months", modify: func(r *CreateRequest) { r.BillingPeriods = lo.ToPtr(13) }, codes: []string{"billingPeriodsMoreThan12Months"}},
		{name: "too few months", modify: func(r *CreateRequest) { r.BillingPeriods = lo.ToPtr(5) }, codes: []string{"billingPeriodsLessThan6Months"}},
		{
			name: "too many years",
			modify: func(r *CreateRequest) {
				r.BillingInterval = BillingIntervalYearly
				r.BillingPeriods = lo.ToPtr(11)
			},
			codes: []string{"billingPeriodsMoreThan10Years"},
		},
		{
			name: "several problems",
			modify: func(r *CreateRequest) {
				r.Name = ""
				r.RecurringPrice = nil
				r.BillingPeriods = lo.ToPtr(3)
			},
			codes: []string{CodeMissingMandatoryFields, "billingPeriodsLessThan6Months"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, storage.NewMemoryProvider(zaptest.NewLogger(t)))
			ctx := context.Background()

			req := validRequest()
			tt.modify(&req)

			_, err := env.svc.Create(ctx, 1, req)
			require.ErrorIs(t, err, ErrValidation)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.codes, verr.Codes())

			memberships, err := env.svc.memberships.FindAll(ctx)
			require.NoError(t, err)
			assert.Empty(t, memberships, "nothing is stored")
		})
	}
}

type failingPeriodsProvider struct {
	*storage.MemoryProvider
	err error
}

func (p failingPeriodsProvider) Create(ctx context.Context, collection string, data storage.Record) (storage.Record, error) {
	if collection == CollectionPeriods {
		return nil, p.err
	}
	return p.MemoryProvider.Create(ctx, collection, data)
}

func TestService_CreatePartialFailureKeepsMembership(t *testing.T) {
	boom := errors.New("disk full")
	provider := failingPeriodsProvider{MemoryProvider: storage.NewMemoryProvider(zaptest.NewLogger(t)), err: boom}
	env := newTestEnv(t, provider)
	ctx := context.Background()

	_, err := env.svc.Create(ctx, 1, validRequest())
	require.ErrorIs(t, err, boom)

	memberships, err := env.svc.memberships.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, memberships, 1, "membership written before the failure stays")
}

func TestService_FindAll(t *testing.T) {
	env := newTestEnv(t, storage.NewMemoryProvider(zaptest.NewLogger(t)))
	ctx := context.Background()

	empty, err := env.svc.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	first, err := env.svc.Create(ctx, 1, validRequest())
	require.NoError(t, err)

	yearly := validRequest()
	yearly.BillingInterval = BillingIntervalYearly
	yearly.BillingPeriods = lo.ToPtr(4)
	second, err := env.svc.Create(ctx, 1, yearly)
	require.NoError(t, err)

	all, err := env.svc.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	assert.Equal(t, first.Membership, all[0].Membership)
	assert.Equal(t, first.Periods, all[0].Periods)
	assert.Equal(t, second.Membership, all[1].Membership)
	assert.Len(t, all[1].Periods, 4)
}

func TestService_Export(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown user", func(t *testing.T) {
		env := newTestEnv(t, storage.NewMemoryProvider(zaptest.NewLogger(t)))

		_, err := env.svc.Export(ctx, 2000)
		require.ErrorIs(t, err, ErrInvalidUser)
		assert.Empty(t, env.publisher.payloads)
	})

	t.Run("queues job", func(t *testing.T) {
		env := newTestEnv(t, storage.NewMemoryProvider(zaptest.NewLogger(t)))

		jobUUID, err := env.svc.Export(ctx, 1)
		require.NoError(t, err)

		status, err := env.jobs.GetByUUID(ctx, jobUUID)
		require.NoError(t, err)
		assert.Equal(t, jobs.StatePending, status.State)
		assert.Equal(t, "queue-job-1", status.JobID)
		assert.Equal(t, int64(1), status.UserID)

		require.Len(t, env.publisher.payloads, 1)
		assert.Equal(t, ExportData{DBJobID: status.ID, UserID: 1, Email: "admin@example.com", Ver: 1}, env.publisher.payloads[0])
	})

	t.Run("queue failure", func(t *testing.T) {
		env := newTestEnv(t, storage.NewMemoryProvider(zaptest.NewLogger(t)))
		env.publisher.err = errors.New("queue down")

		_, err := env.svc.Export(ctx, 1)
		require.Error(t, err)
	})
}

func exportMessage(t *testing.T, data any) queue.Message {
	t.Helper()

	payload, err := json.Marshal(data)
	require.NoError(t, err)

	return queue.Message{ID: "m-1", Payload: payload}
}

func TestExportProcessor_Handle(t *testing.T) {
	ctx := context.Background()

	env := newTestEnv(t, storage.NewMemoryProvider(zaptest.NewLogger(t)))
	processor := NewExportProcessor(env.svc, env.jobs, zaptest.NewLogger(t))

	_, err := env.svc.Create(ctx, 1, validRequest())
	require.NoError(t, err)

	jobUUID, err := env.svc.Export(ctx, 1)
	require.NoError(t, err)
	status, err := env.jobs.GetByUUID(ctx, jobUUID)
	require.NoError(t, err)

	t.Run("exports csv", func(t *testing.T) {
		msg := exportMessage(t, ExportData{DBJobID: status.ID, UserID: 1, Email: "admin@example.com", Ver: 1})
		require.NoError(t, processor.Handle(ctx, msg))

		done, err := env.jobs.GetByID(ctx, status.ID)
		require.NoError(t, err)
		assert.Equal(t, jobs.StateSucceeded, done.State)

		lines := strings.Split(strings.TrimSpace(done.Result), "\n")
		require.Len(t, lines, 7, "header and one row per period")
		assert.True(t, strings.HasPrefix(lines[0], "membershipId,membershipUuid,name"))
		assert.Contains(t, lines[1], "Gold Plan")
		assert.Contains(t, lines[1], "2024-01-15")
	})

	t.Run("unsupported version", func(t *testing.T) {
		msg := exportMessage(t, ExportData{DBJobID: status.ID, UserID: 1, Ver: 2})
		require.ErrorIs(t, processor.Handle(ctx, msg), ErrUnsupportedExportVersion)
	})

	t.Run("missing data is acknowledged", func(t *testing.T) {
		require.NoError(t, processor.Handle(ctx, queue.Message{ID: "m-2", Payload: nil}))
	})

	t.Run("unknown job fails", func(t *testing.T) {
		msg := exportMessage(t, ExportData{DBJobID: 999, UserID: 1, Ver: 1})
		require.ErrorIs(t, processor.Handle(ctx, msg), jobs.ErrNotFound)
	})
}

func TestService_ValidateWeeklyCap(t *testing.T) {
	env := newTestEnv(t, storage.NewMemoryProvider(zaptest.NewLogger(t)))

	req := validRequest()
	req.BillingInterval = BillingIntervalWeekly

	req.BillingPeriods = lo.ToPtr(MaxBillingPeriods)
	require.NoError(t, env.svc.Validate(context.Background(), req))

	req.BillingPeriods = lo.ToPtr(MaxBillingPeriods + 1)
	var validationErr *ValidationError
	require.ErrorAs(t, env.svc.Validate(context.Background(), req), &validationErr)
	assert.Equal(t, []string{CodeInvalidBillingPeriods}, validationErr.Codes())
}

type failingMembershipsProvider struct {
	*storage.MemoryProvider
	err error
}

func (p *failingMembershipsProvider) FindAll(ctx context.Context, collection string) ([]storage.Record, error) {
	if p.err != nil && collection == CollectionMemberships {
		return nil, p.err
	}
	return p.MemoryProvider.FindAll(ctx, collection)
}

func TestExportProcessor_MarksFailedJobs(t *testing.T) {
	ctx := context.Background()

	provider := &failingMembershipsProvider{MemoryProvider: storage.NewMemoryProvider(zaptest.NewLogger(t)), err: nil}
	env := newTestEnv(t, provider)
	processor := NewExportProcessor(env.svc, env.jobs, zaptest.NewLogger(t))

	jobUUID, err := env.svc.Export(ctx, 1)
	require.NoError(t, err)
	status, err := env.jobs.GetByUUID(ctx, jobUUID)
	require.NoError(t, err)

	boom := errors.New("storage offline")
	provider.err = boom

	msg := exportMessage(t, ExportData{DBJobID: status.ID, UserID: 1, Email: "admin@example.com", Ver: 1})
	require.ErrorIs(t, processor.Handle(ctx, msg), boom)

	failed, err := env.jobs.GetByID(ctx, status.ID)
	require.NoError(t, err)
	assert.Equal(t, jobs.StateFailed, failed.State)
	assert.Empty(t, failed.Result)
}

func TestRenderCSV_MembershipWithoutPeriods(t *testing.T) {
	report, err := RenderCSV([]MembershipWithPeriods{{
		Membership: Membership{Name: "Gold Plan", ValidFrom: date(2024, 1, 15), ValidUntil: date(2024, 7, 15)},
		Periods:    nil,
	}})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(report), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[1], ",,,,"))
}
