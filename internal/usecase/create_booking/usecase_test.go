package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/events"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/notifier"
	"github.com/m04kA/SMC-SalonBooking/internal/service/availability"
	"github.com/m04kA/SMC-SalonBooking/internal/service/customers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/drafts"
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

type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) Resolve(ctx context.Context, name, email, phone string) (*customers.Resolution, error) {
	args := m.Called(ctx, name, email, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customers.Resolution), args.Error(1)
}

type stubMenus struct{}

func (stubMenus) Resolve(_ context.Context, ids []int64) (*menus.Selection, error) {
	items := map[int64]*domain.MenuItem{
		1: {ID: 1, Name: "カット", DurationMinutes: 60, Price: 5500},
		2: {ID: 2, Name: "トリートメント", DurationMinutes: 30, Price: 3300},
	}
	sel := &menus.Selection{}
	for _, id := range ids {
		m, ok := items[id]
		if !ok {
			return nil, menus.ErrMenuNotFound
		}
		sel.Items = append(sel.Items, m)
		sel.DurationMinutes += m.DurationMinutes
		sel.Price += m.Price
		sel.Name = m.Name
	}
	return sel, nil
}

type stubSettings struct{}

func (stubSettings) Current(context.Context) (*domain.ScheduleSettings, error) {
	return domain.DefaultScheduleSettings(), nil
}

type mockChecker struct {
	mock.Mock
}

func (m *mockChecker) IsAvailable(ctx context.Context, hours domain.BusinessHours, q availability.SlotQuery) (bool, error) {
	args := m.Called(ctx, hours, q)
	return args.Bool(0), args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Send(ctx context.Context, kind domain.NotificationKind, to string, p notifier.Payload) error {
	return m.Called(ctx, kind, to, p).Error(0)
}

type recordingPublisher struct {
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, ev events.Event) {
	p.events = append(p.events, ev)
}

type nopRecorder struct{}

func (nopRecorder) RecordNotification(string, bool) {}

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
	resolver  *mockResolver
	checker   *mockChecker
	notifier  *mockNotifier
	publisher *recordingPublisher
}

func newFixture() *fixture {
	f := &fixture{
		repo:      &mockBookingRepo{},
		resolver:  &mockResolver{},
		checker:   &mockChecker{},
		notifier:  &mockNotifier{},
		publisher: &recordingPublisher{},
	}
	f.uc = NewUseCase(f.repo, f.resolver, stubMenus{}, stubSettings{}, f.checker, f.notifier, f.publisher,
		directTx{}, nopRecorder{}, drafts.Shop{Name: "nua"}, logger.Nop())
	f.uc.timeProvider = fixedTime{now: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)}
	return f
}

var bookingDay = time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

func validRequest() *Request {
	return &Request{
		Name:      "山田 花子",
		Email:     "hanako@example.com",
		Phone:     "090-1234-5678",
		MenuID:    1,
		AddOnIDs:  []int64{2},
		Date:      bookingDay,
		StartTime: "10:00",
	}
}

func TestExecute_CreatesPendingWithDerivedEnd(t *testing.T) {
	f := newFixture()
	f.resolver.On("Resolve", mock.Anything, "山田 花子", "hanako@example.com", "090-1234-5678").
		Return(&customers.Resolution{CustomerID: 7, IsNew: true}, nil)
	f.checker.On("IsAvailable", mock.Anything, mock.Anything, mock.MatchedBy(func(q availability.SlotQuery) bool {
		return q.DurationMinutes == 90 && q.BufferMinutes == 60 && q.ExcludeBookingID == nil
	})).Return(true, nil)
	f.repo.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.EndTime == "11:30" && b.Status == domain.StatusPending && b.NewCustomer && *b.CustomerID == 7
	})).Return(func() *domain.Booking {
		b := &domain.Booking{ID: 100, BookingDate: bookingDay, StartTime: "10:00", EndTime: "11:30",
			Status: domain.StatusPending, CustomerName: "山田 花子", CustomerEmail: "hanako@example.com"}
		return b
	}(), nil)
	f.notifier.On("Send", mock.Anything, domain.NotificationBookingReceived, "hanako@example.com", mock.Anything).
		Return(nil).Once()

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(100), resp.Booking.ID)
	assert.Equal(t, "11:30", resp.Booking.EndTime.String())
	assert.True(t, resp.IsNewCustomer)
	assert.True(t, resp.NotificationSent)
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, events.TypeBookingCreated, f.publisher.events[0].Type)
	f.repo.AssertExpectations(t)
}

func TestExecute_ReturningCustomerBuffer(t *testing.T) {
	f := newFixture()
	f.resolver.On("Resolve", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&customers.Resolution{CustomerID: 7, IsNew: false}, nil)
	f.checker.On("IsAvailable", mock.Anything, mock.Anything, mock.MatchedBy(func(q availability.SlotQuery) bool {
		return q.BufferMinutes == 30
	})).Return(true, nil)
	f.repo.On("Create", mock.Anything, mock.Anything).Return(&domain.Booking{ID: 1, BookingDate: bookingDay}, nil)

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.False(t, resp.IsNewCustomer)
	assert.False(t, resp.NotificationSent, "stored booking without email is not notified")
}

func TestExecute_SlotTaken(t *testing.T) {
	f := newFixture()
	f.resolver.On("Resolve", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&customers.Resolution{CustomerID: 7, IsNew: true}, nil)
	f.checker.On("IsAvailable", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, domain.ErrSlotNoLongerAvailable)
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, f.publisher.events)
}

func TestExecute_PersistenceFailure(t *testing.T) {
	f := newFixture()
	f.resolver.On("Resolve", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&customers.Resolution{CustomerID: 7}, nil)
	f.checker.On("IsAvailable", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
	f.repo.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("disk full"))

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, domain.ErrPersistence)
	f.notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_NotificationFailureKeepsBooking(t *testing.T) {
	f := newFixture()
	f.resolver.On("Resolve", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&customers.Resolution{CustomerID: 7}, nil)
	f.checker.On("IsAvailable", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
	f.repo.On("Create", mock.Anything, mock.Anything).
		Return(&domain.Booking{ID: 5, BookingDate: bookingDay, CustomerEmail: "hanako@example.com"}, nil)
	f.notifier.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("relay down"))

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.Booking.ID)
	assert.False(t, resp.NotificationSent)
}

func TestExecute_ValidationBeforeStore(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{"empty name", func(r *Request) { r.Name = "　" }},
		{"no contact", func(r *Request) { r.Email, r.Phone = "", "" }},
		{"bad email", func(r *Request) { r.Email = "hanako" }},
		{"off grid", func(r *Request) { r.StartTime = "10:15" }},
		{"before open", func(r *Request) { r.StartTime = "08:30" }},
		{"past date", func(r *Request) { r.Date = time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC) }},
		{"today already passed", func(r *Request) {
			r.Date = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
			r.StartTime = "11:00"
		}},
		{"overflows midnight", func(r *Request) { r.StartTime = "23:30" }},
		{"bad photo url", func(r *Request) { r.PhotoURLs = []string{"javascript:alert(1)"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := validRequest()
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, domain.ErrValidation)
			f.resolver.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}
