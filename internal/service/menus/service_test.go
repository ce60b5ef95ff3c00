package menus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) GetAll(ctx context.Context) ([]*domain.MenuItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.MenuItem), args.Error(1)
}

func (m *mockRepo) GetByIDs(ctx context.Context, ids []int64) ([]*domain.MenuItem, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.MenuItem), args.Error(1)
}

var (
	cut       = &domain.MenuItem{ID: 1, Name: "カット", DurationMinutes: 60, Price: 5500}
	treatment = &domain.MenuItem{ID: 2, Name: "トリートメント", DurationMinutes: 30, Price: 3300}
)

func TestResolve_SumsDurationInRequestOrder(t *testing.T) {
	repo := &mockRepo{}
	repo.On("GetByIDs", mock.Anything, []int64{1, 2}).Return([]*domain.MenuItem{treatment, cut}, nil)

	sel, err := NewService(repo, logger.Nop()).Resolve(context.Background(), []int64{1, 2})
	require.NoError(t, err)

	assert.Equal(t, 90, sel.DurationMinutes)
	assert.Equal(t, 8800.0, sel.Price)
	assert.Equal(t, "カット + トリートメント", sel.Name)
	assert.Equal(t, int64(1), sel.Main().ID)
}

func TestResolve_Errors(t *testing.T) {
	repo := &mockRepo{}
	repo.On("GetByIDs", mock.Anything, []int64{1, 9}).Return([]*domain.MenuItem{cut}, nil)
	repo.On("GetByIDs", mock.Anything, []int64{3}).Return(nil, errors.New("timeout"))
	svc := NewService(repo, logger.Nop())

	_, err := svc.Resolve(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoMenu)

	_, err = svc.Resolve(context.Background(), []int64{1, 1})
	assert.ErrorIs(t, err, ErrDuplicateMenu)

	_, err = svc.Resolve(context.Background(), []int64{1, 9})
	assert.ErrorIs(t, err, ErrMenuNotFound)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Resolve(context.Background(), []int64{3})
	assert.ErrorIs(t, err, domain.ErrDataUnavailable)
}

func TestList(t *testing.T) {
	repo := &mockRepo{}
	repo.On("GetAll", mock.Anything).Return([]*domain.MenuItem{cut, treatment}, nil)

	resp, err := NewService(repo, logger.Nop()).List(context.Background())
	require.NoError(t, err)
	require.Len(t, resp, 2)
	assert.Equal(t, "カット", resp[0].Name)
}
