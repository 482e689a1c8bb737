package capacity

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

type mockEventRepo struct {
	getByIDFn     func(ctx context.Context, id int64) (*domain.Event, error)
	getCapacityFn func(ctx context.Context, picked domain.PickedEvent) (int, map[string]int, error)
}

func (m *mockEventRepo) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockEventRepo) GetCapacityAndActiveBookings(ctx context.Context, picked domain.PickedEvent) (int, map[string]int, error) {
	return m.getCapacityFn(ctx, picked)
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

func TestEvaluate_SingleEvent(t *testing.T) {
	repo := &mockEventRepo{
		getCapacityFn: func(ctx context.Context, picked domain.PickedEvent) (int, map[string]int, error) {
			return 10, map[string]int{"42": 3, "7": 2}, nil
		},
	}
	svc := NewService(repo, noopLogger{})

	snapshot, err := svc.Evaluate(context.Background(), []domain.PickedEvent{{ID: 100}})
	assert.NoError(t, err)
	assert.Equal(t, 5, snapshot.Availability)
	assert.Equal(t, 2, snapshot.NumberOfUsers())
	assert.Equal(t, 3, snapshot.QuantityBookedBy(domain.AccountIdentity(42)))
	assert.True(t, snapshot.UserHasBooked(domain.AccountIdentity(7)))
	assert.False(t, snapshot.UserHasBooked(domain.AccountIdentity(99)))
}

func TestEvaluate_MinAcrossEvents(t *testing.T) {
	capacities := map[int64]int{100: 10, 101: 4, 102: 8}
	booked := map[int64]map[string]int{
		100: {"42": 1},
		101: {"42": 2},
		102: {"7": 5},
	}
	repo := &mockEventRepo{
		getCapacityFn: func(ctx context.Context, picked domain.PickedEvent) (int, map[string]int, error) {
			return capacities[picked.ID], booked[picked.ID], nil
		},
	}
	svc := NewService(repo, noopLogger{})

	snapshot, err := svc.Evaluate(context.Background(), []domain.PickedEvent{{ID: 100}, {ID: 101}, {ID: 102}})
	assert.NoError(t, err)
	// Остаток единицы равен минимуму по вхождениям: 4 - 2 = 2
	assert.Equal(t, 2, snapshot.Availability)
	// Количество на пользователя равно максимуму по вхождениям
	assert.Equal(t, 2, snapshot.QuantityBookedBy(domain.AccountIdentity(42)))
	assert.Equal(t, 5, snapshot.QuantityBookedBy(domain.AccountIdentity(7)))
}

func TestEvaluate_ZeroCapacityMeansUnlimited(t *testing.T) {
	repo := &mockEventRepo{
		getCapacityFn: func(ctx context.Context, picked domain.PickedEvent) (int, map[string]int, error) {
			return 0, map[string]int{"42": 50}, nil
		},
	}
	svc := NewService(repo, noopLogger{})

	snapshot, err := svc.Evaluate(context.Background(), []domain.PickedEvent{{ID: 100}})
	assert.NoError(t, err)
	assert.Equal(t, domain.UnlimitedAvailability, snapshot.Availability)
}

func TestEvaluate_UnlimitedDoesNotMaskFiniteEvent(t *testing.T) {
	capacities := map[int64]int{100: 0, 101: 6}
	repo := &mockEventRepo{
		getCapacityFn: func(ctx context.Context, picked domain.PickedEvent) (int, map[string]int, error) {
			return capacities[picked.ID], map[string]int{"42": 1}, nil
		},
	}
	svc := NewService(repo, noopLogger{})

	snapshot, err := svc.Evaluate(context.Background(), []domain.PickedEvent{{ID: 100}, {ID: 101}})
	assert.NoError(t, err)
	assert.Equal(t, 5, snapshot.Availability)
}

func TestEvaluate_NoPickedEvents(t *testing.T) {
	svc := NewService(&mockEventRepo{}, noopLogger{})

	_, err := svc.Evaluate(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoPickedEvents)
}

func TestEvaluate_RepositoryError(t *testing.T) {
	repo := &mockEventRepo{
		getCapacityFn: func(ctx context.Context, picked domain.PickedEvent) (int, map[string]int, error) {
			return 0, nil, errors.New("connection lost")
		},
	}
	svc := NewService(repo, noopLogger{})

	_, err := svc.Evaluate(context.Background(), []domain.PickedEvent{{ID: 100}})
	assert.ErrorIs(t, err, ErrInternal)
}
