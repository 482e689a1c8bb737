package change_quantity

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// --- Моки ---

type mockBookingRepo struct {
	getByIDFn             func(ctx context.Context, id int64) (*domain.Booking, error)
	getGroupByIDFn        func(ctx context.Context, id int64) (*domain.BookingGroup, error)
	getGroupBookingsFn    func(ctx context.Context, groupID int64) ([]*domain.Booking, error)
	updateQuantityFn      func(ctx context.Context, id int64, quantity int) error
	updateGroupQuantityFn func(ctx context.Context, groupID int64, quantity int) error
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return m.getByIDFn(ctx, id)
}
func (m *mockBookingRepo) GetGroupByID(ctx context.Context, id int64) (*domain.BookingGroup, error) {
	return m.getGroupByIDFn(ctx, id)
}
func (m *mockBookingRepo) GetGroupBookings(ctx context.Context, groupID int64) ([]*domain.Booking, error) {
	return m.getGroupBookingsFn(ctx, groupID)
}
func (m *mockBookingRepo) UpdateQuantity(ctx context.Context, id int64, quantity int) error {
	return m.updateQuantityFn(ctx, id, quantity)
}
func (m *mockBookingRepo) UpdateGroupQuantity(ctx context.Context, groupID int64, quantity int) error {
	return m.updateGroupQuantityFn(ctx, groupID, quantity)
}

type mockMetaRepo struct {
	activityMeta map[int64]domain.ActivityMeta
	categoryMeta map[int64]domain.ActivityMeta
}

func (m *mockMetaRepo) GetActivityMeta(ctx context.Context, activityID int64) (domain.ActivityMeta, error) {
	return m.activityMeta[activityID], nil
}
func (m *mockMetaRepo) GetCategoryMeta(ctx context.Context, categoryID int64) (domain.ActivityMeta, error) {
	return m.categoryMeta[categoryID], nil
}

type mockCapacity struct {
	snapshot domain.PickedAvailability
}

func (m *mockCapacity) Evaluate(ctx context.Context, picked []domain.PickedEvent) (domain.PickedAvailability, error) {
	return m.snapshot, nil
}

type mockTxManager struct{}

func (m *mockTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

type recordingLogger struct {
	infos []string
}

func (l *recordingLogger) Info(format string, v ...interface{}) {
	l.infos = append(l.infos, fmt.Sprintf(format, v...))
}
func (l *recordingLogger) Warn(format string, v ...interface{})  {}
func (l *recordingLogger) Error(format string, v ...interface{}) {}

// --- Хелперы ---

func newUseCase(repo *mockBookingRepo, meta *mockMetaRepo, snapshot domain.PickedAvailability) *UseCase {
	if meta == nil {
		meta = &mockMetaRepo{}
	}
	return NewUseCase(repo, meta, &mockCapacity{snapshot: snapshot}, &mockTxManager{}, noopLogger{})
}

func bookingRepoWith(b *domain.Booking, updated *int) *mockBookingRepo {
	return &mockBookingRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Booking, error) {
			return b, nil
		},
		updateQuantityFn: func(ctx context.Context, id int64, quantity int) error {
			if updated != nil {
				*updated = quantity
			}
			return nil
		},
	}
}

// --- Валидация ---

func TestExecute_RequiresExactlyOneTarget(t *testing.T) {
	uc := newUseCase(&mockBookingRepo{}, nil, domain.PickedAvailability{})

	_, err := uc.Execute(context.Background(), &Request{Quantity: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{BookingID: 1, GroupID: 2, Quantity: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{BookingID: 1, Quantity: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// --- Одиночное бронирование ---

func TestExecute_NoLimitsSucceeds(t *testing.T) {
	updated := 0
	b := &domain.Booking{ID: 1, UserID: domain.AccountIdentity(42), ActivityID: 5, EventID: 100, Quantity: 1, Active: true}
	uc := newUseCase(bookingRepoWith(b, &updated), nil, domain.PickedAvailability{
		Availability:    domain.UnlimitedAvailability,
		BookingsPerUser: map[string]int{"42": 1},
	})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 1, Quantity: 4, Actor: domain.ActorContext{User: domain.AccountIdentity(42)}})
	assert.NoError(t, err)
	assert.True(t, resp.Result.IsSuccess())
	assert.Equal(t, 4, updated)
}

func TestExecute_ActiveBookingWithinLimits(t *testing.T) {
	// Пользователь держит одно активное место, лимиты 2..5 на пользователя,
	// свободно 10. Изменение на 3 места проходит
	updated := 0
	b := &domain.Booking{ID: 1, UserID: domain.AccountIdentity(42), ActivityID: 5, EventID: 100, Quantity: 1, Active: true}
	meta := &mockMetaRepo{activityMeta: map[int64]domain.ActivityMeta{
		5: {MinBookingsPerUser: 2, MaxBookingsPerUser: 5},
	}}
	uc := newUseCase(bookingRepoWith(b, &updated), meta, domain.PickedAvailability{
		Availability:    10,
		BookingsPerUser: map[string]int{"42": 1},
	})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 1, Quantity: 3})
	assert.NoError(t, err)
	assert.True(t, resp.Result.IsSuccess())
	assert.Equal(t, 3, updated)
}

func TestExecute_InactiveBookingBelowMinimum(t *testing.T) {
	// Свежая неактивная заготовка ещё не занимает мест: заказ одного места
	// при минимуме в два отклоняется
	b := &domain.Booking{ID: 1, UserID: domain.AccountIdentity(42), ActivityID: 5, EventID: 100, Quantity: 0, Active: false}
	meta := &mockMetaRepo{activityMeta: map[int64]domain.ActivityMeta{
		5: {MinBookingsPerUser: 2},
	}}
	uc := newUseCase(bookingRepoWith(b, nil), meta, domain.PickedAvailability{
		Availability:    10,
		BookingsPerUser: map[string]int{},
	})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 1, Quantity: 1})
	assert.NoError(t, err)
	assert.False(t, resp.Result.IsSuccess())
	assert.Contains(t, resp.Result.Messages, domain.MsgQtyInfToMin)
}

func TestExecute_NewUserOverUsersLimit(t *testing.T) {
	// Два пользователя уже заняли событие, лимит участников два: третий
	// пользователь отклоняется
	b := &domain.Booking{ID: 1, UserID: domain.AccountIdentity(99), ActivityID: 5, EventID: 100, Quantity: 0, Active: false}
	meta := &mockMetaRepo{activityMeta: map[int64]domain.ActivityMeta{
		5: {MaxUsersPerEvent: 2},
	}}
	uc := newUseCase(bookingRepoWith(b, nil), meta, domain.PickedAvailability{
		Availability:    10,
		BookingsPerUser: map[string]int{"42": 1, "7": 2},
	})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 1, Quantity: 1})
	assert.NoError(t, err)
	assert.False(t, resp.Result.IsSuccess())
	assert.Contains(t, resp.Result.Messages, domain.MsgUsersSupToMax)
}

func TestExecute_ExistingUserNotBlockedByUsersLimit(t *testing.T) {
	// Пользователь уже участвует, лимит участников не мешает ему менять
	// количество
	updated := 0
	b := &domain.Booking{ID: 1, UserID: domain.AccountIdentity(42), ActivityID: 5, EventID: 100, Quantity: 1, Active: true}
	meta := &mockMetaRepo{activityMeta: map[int64]domain.ActivityMeta{
		5: {MaxUsersPerEvent: 2},
	}}
	uc := newUseCase(bookingRepoWith(b, &updated), meta, domain.PickedAvailability{
		Availability:    10,
		BookingsPerUser: map[string]int{"42": 1, "7": 2},
	})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 1, Quantity: 2})
	assert.NoError(t, err)
	assert.True(t, resp.Result.IsSuccess())
	assert.Equal(t, 2, updated)
}

func TestExecute_OverAvailabilityReportsRemaining(t *testing.T) {
	b := &domain.Booking{ID: 1, UserID: domain.AccountIdentity(42), ActivityID: 5, EventID: 100, Quantity: 1, Active: true}
	uc := newUseCase(bookingRepoWith(b, nil), nil, domain.PickedAvailability{
		Availability:    2,
		BookingsPerUser: map[string]int{"42": 1},
	})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 1, Quantity: 5})
	assert.NoError(t, err)
	assert.False(t, resp.Result.IsSuccess())
	assert.Contains(t, resp.Result.Messages, domain.MsgQtySupToAvail)
	if assert.NotNil(t, resp.Result.Availability) {
		assert.Equal(t, 2, *resp.Result.Availability)
	}
}

func TestExecute_AllViolationsReportedTogether(t *testing.T) {
	// Заготовка нового пользователя нарушает сразу доступность, максимум
	// на пользователя и лимит участников
	b := &domain.Booking{ID: 1, UserID: domain.AccountIdentity(99), ActivityID: 5, EventID: 100, Quantity: 0, Active: false}
	meta := &mockMetaRepo{activityMeta: map[int64]domain.ActivityMeta{
		5: {MaxBookingsPerUser: 3, MaxUsersPerEvent: 1},
	}}
	uc := newUseCase(bookingRepoWith(b, nil), meta, domain.PickedAvailability{
		Availability:    2,
		BookingsPerUser: map[string]int{"42": 2},
	})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 1, Quantity: 5})
	assert.NoError(t, err)
	assert.False(t, resp.Result.IsSuccess())
	assert.Len(t, resp.Result.Messages, 3)
	assert.Contains(t, resp.Result.Messages, domain.MsgQtySupToAvail)
	assert.Contains(t, resp.Result.Messages, domain.MsgQtySupToMax)
	assert.Contains(t, resp.Result.Messages, domain.MsgUsersSupToMax)
}

func TestExecute_InactiveDeltaIsFullQuantity(t *testing.T) {
	// Неактивная запись добавляет всё новое количество: три места при двух
	// свободных не помещаются, хотя активная запись с текущими тремя
	// прошла бы без дельты
	b := &domain.Booking{ID: 1, UserID: domain.AccountIdentity(42), ActivityID: 5, EventID: 100, Quantity: 3, Active: false}
	uc := newUseCase(bookingRepoWith(b, nil), nil, domain.PickedAvailability{
		Availability:    2,
		BookingsPerUser: map[string]int{},
	})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 1, Quantity: 3})
	assert.NoError(t, err)
	assert.Contains(t, resp.Result.Messages, domain.MsgQtySupToAvail)
}

func TestExecute_SameQuantitySkipsWrite(t *testing.T) {
	writes := 0
	b := &domain.Booking{ID: 1, UserID: domain.AccountIdentity(42), ActivityID: 5, EventID: 100, Quantity: 2, Active: true}
	repo := &mockBookingRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Booking, error) {
			return b, nil
		},
		updateQuantityFn: func(ctx context.Context, id int64, quantity int) error {
			writes++
			return nil
		},
	}
	uc := newUseCase(repo, nil, domain.PickedAvailability{
		Availability:    domain.UnlimitedAvailability,
		BookingsPerUser: map[string]int{"42": 2},
	})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 1, Quantity: 2})
	assert.NoError(t, err)
	assert.True(t, resp.Result.IsSuccess())
	assert.Equal(t, 0, writes)
}

func TestExecute_RecordsActingUser(t *testing.T) {
	log := &recordingLogger{}
	b := &domain.Booking{ID: 1, UserID: domain.AccountIdentity(42), ActivityID: 5, EventID: 100, Quantity: 1, Active: true}
	uc := NewUseCase(
		bookingRepoWith(b, nil),
		&mockMetaRepo{},
		&mockCapacity{snapshot: domain.PickedAvailability{
			Availability:    domain.UnlimitedAvailability,
			BookingsPerUser: map[string]int{"42": 1},
		}},
		&mockTxManager{},
		log,
	)

	actor := domain.ActorContext{User: domain.AccountIdentity(77), IsElevated: true}
	_, err := uc.Execute(context.Background(), &Request{BookingID: 1, Quantity: 3, Actor: actor})
	assert.NoError(t, err)

	recorded := false
	for _, line := range log.infos {
		if strings.Contains(line, "by user 77") {
			recorded = true
		}
	}
	assert.True(t, recorded)
}

// --- Группа ---

func TestExecute_GroupQuantityAgainstCategoryMeta(t *testing.T) {
	updated := 0
	repo := &mockBookingRepo{
		getGroupByIDFn: func(ctx context.Context, id int64) (*domain.BookingGroup, error) {
			return &domain.BookingGroup{ID: 9, UserID: domain.AccountIdentity(42), CategoryID: 3, Active: true}, nil
		},
		getGroupBookingsFn: func(ctx context.Context, groupID int64) ([]*domain.Booking, error) {
			return []*domain.Booking{
				{ID: 1, GroupID: 9, UserID: domain.AccountIdentity(42), EventID: 100, Quantity: 2, Active: true},
				{ID: 2, GroupID: 9, UserID: domain.AccountIdentity(42), EventID: 101, Quantity: 2, Active: true},
			}, nil
		},
		updateGroupQuantityFn: func(ctx context.Context, groupID int64, quantity int) error {
			updated = quantity
			return nil
		},
	}
	meta := &mockMetaRepo{categoryMeta: map[int64]domain.ActivityMeta{
		3: {MaxBookingsPerUser: 4},
	}}
	uc := newUseCase(repo, meta, domain.PickedAvailability{
		Availability:    10,
		BookingsPerUser: map[string]int{"42": 2},
	})

	resp, err := uc.Execute(context.Background(), &Request{GroupID: 9, Quantity: 4})
	assert.NoError(t, err)
	assert.True(t, resp.Result.IsSuccess())
	assert.Equal(t, 4, updated)

	resp, err = uc.Execute(context.Background(), &Request{GroupID: 9, Quantity: 5})
	assert.NoError(t, err)
	assert.Contains(t, resp.Result.Messages, domain.MsgQtySupToMax)
}
