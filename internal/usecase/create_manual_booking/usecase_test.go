package create_manual_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/events"
	customerRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/customer"
	"github.com/m04kA/SMC-SalonBooking/internal/service/availability"
	"github.com/m04kA/SMC-SalonBooking/internal/service/menus"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	args := m.Called(ctx, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) CountByCustomer(ctx context.Context, customerID int64) (int, error) {
	args := m.Called(ctx, customerID)
	return args.Int(0), args.Error(1)
}

type stubCustomers map[int64]*domain.Customer

func (s stubCustomers) GetByID(_ context.Context, id int64) (*domain.Customer, error) {
	c, ok := s[id]
	if !ok {
		return nil, customerRepo.ErrCustomerNotFound
	}
	return c, nil
}

type stubMenus struct{}

func (stubMenus) Resolve(context.Context, []int64) (*menus.Selection, error) {
	cut := &domain.MenuItem{ID: 1, Name: "カット", DurationMinutes: 60, Price: 5500}
	return &menus.Selection{Items: []*domain.MenuItem{cut}, DurationMinutes: 60, Price: 5500, Name: cut.Name}, nil
}

type stubSettings struct {
	s *domain.ScheduleSettings
}

func (s stubSettings) Current(context.Context) (*domain.ScheduleSettings, error) {
	return s.s, nil
}

type mockChecker struct {
	mock.Mock
}

func (m *mockChecker) IsAvailable(ctx context.Context, hours domain.BusinessHours, q availability.SlotQuery) (bool, error) {
	args := m.Called(ctx, hours, q)
	return args.Bool(0), args.Error(1)
}

type recordingPublisher struct {
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, ev events.Event) {
	p.events = append(p.events, ev)
}

type directTx struct{}

func (directTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

type fixture struct {
	uc        *UseCase
	repo      *mockBookingRepo
	checker   *mockChecker
	publisher *recordingPublisher
}

func newFixture(settings *domain.ScheduleSettings) *fixture {
	f := &fixture{
		repo:      &mockBookingRepo{},
		checker:   &mockChecker{},
		publisher: &recordingPublisher{},
	}
	customers := stubCustomers{
		3: {ID: 3, Name: "佐藤 一郎", Phone: "03-1111-2222"},
	}
	f.uc = NewUseCase(f.repo, customers, stubMenus{}, stubSettings{s: settings}, f.checker, f.publisher, directTx{}, logger.Nop())
	f.uc.timeProvider = fixedTime{now: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)}
	return f
}

func validRequest() *Request {
	return &Request{
		CustomerID: 3,
		MenuID:     1,
		Date:       time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
		StartTime:  "10:15",
	}
}

func TestExecute_FirstBookingIsConfirmedWithNewBuffer(t *testing.T) {
	f := newFixture(domain.DefaultScheduleSettings())
	f.repo.On("CountByCustomer", mock.Anything, int64(3)).Return(0, nil)
	f.checker.On("IsAvailable", mock.Anything, mock.Anything, mock.MatchedBy(func(q availability.SlotQuery) bool {
		return q.Start == "10:15" && q.BufferMinutes == 60
	})).Return(true, nil)
	f.repo.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.Status == domain.StatusConfirmed && b.EndTime == "11:15" && b.CustomerName == "佐藤 一郎"
	})).Return(&domain.Booking{ID: 9, Status: domain.StatusConfirmed}, nil)

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(9), resp.Booking.ID)
	assert.True(t, resp.IsNewCustomer)
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, "confirmed", f.publisher.events[0].Status)
}

func TestExecute_ReturningCustomerBuffer(t *testing.T) {
	f := newFixture(domain.DefaultScheduleSettings())
	f.repo.On("CountByCustomer", mock.Anything, int64(3)).Return(2, nil)
	f.checker.On("IsAvailable", mock.Anything, mock.Anything, mock.MatchedBy(func(q availability.SlotQuery) bool {
		return q.BufferMinutes == 30
	})).Return(true, nil)
	f.repo.On("Create", mock.Anything, mock.Anything).Return(&domain.Booking{ID: 10}, nil)

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.False(t, resp.IsNewCustomer)
}

func TestExecute_IgnoresAdvanceWindow(t *testing.T) {
	settings := domain.DefaultScheduleSettings()
	settings.AdvanceBookingDays = 1

	f := newFixture(settings)
	f.repo.On("CountByCustomer", mock.Anything, int64(3)).Return(1, nil)
	f.checker.On("IsAvailable", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
	f.repo.On("Create", mock.Anything, mock.Anything).Return(&domain.Booking{ID: 11}, nil)

	req := validRequest()
	req.Date = time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC)

	_, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
}

func TestExecute_Errors(t *testing.T) {
	t.Run("past date", func(t *testing.T) {
		f := newFixture(domain.DefaultScheduleSettings())
		req := validRequest()
		req.Date = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, domain.ErrDateInPast)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("unknown customer", func(t *testing.T) {
		f := newFixture(domain.DefaultScheduleSettings())
		req := validRequest()
		req.CustomerID = 404

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrCustomerNotFound)
	})

	t.Run("missing menu", func(t *testing.T) {
		f := newFixture(domain.DefaultScheduleSettings())
		req := validRequest()
		req.MenuID = 0

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("slot taken", func(t *testing.T) {
		f := newFixture(domain.DefaultScheduleSettings())
		f.repo.On("CountByCustomer", mock.Anything, int64(3)).Return(1, nil)
		f.checker.On("IsAvailable", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)

		_, err := f.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, domain.ErrSlotNoLongerAvailable)
		f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		assert.Empty(t, f.publisher.events)
	})
}
