package policy

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// --- Моки ---

type mockBookingRepo struct {
	getByIDFn           func(ctx context.Context, id int64) (*domain.Booking, error)
	getGroupByIDFn      func(ctx context.Context, id int64) (*domain.BookingGroup, error)
	getGroupBookingsFn  func(ctx context.Context, groupID int64) ([]*domain.Booking, error)
	updateStatusFn      func(ctx context.Context, id int64, status domain.BookingStatus, active bool) error
	updateGroupStatusFn func(ctx context.Context, groupID int64, status domain.BookingStatus, active bool) error
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
func (m *mockBookingRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, active bool) error {
	return m.updateStatusFn(ctx, id, status, active)
}
func (m *mockBookingRepo) UpdateGroupStatus(ctx context.Context, groupID int64, status domain.BookingStatus, active bool) error {
	return m.updateGroupStatusFn(ctx, groupID, status, active)
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

type mockRefunds struct {
	actions []string
}

func (m *mockRefunds) ActionsForBooking(b *domain.Booking, actor domain.ActorContext) []string {
	return m.actions
}
func (m *mockRefunds) ActionsForGroup(g *domain.BookingGroup, actor domain.ActorContext) []string {
	return m.actions
}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

// --- Хелперы ---

var testNow = time.Date(2026, 8, 31, 12, 0, 0, 0, time.Local)

func testSettings() domain.PolicySettings {
	return domain.PolicySettings{
		AllowCustomersToCancel:         true,
		AllowCustomersToReschedule:     true,
		BookingChangesDeadline:         0,
		AdminRescheduleScope:           domain.ScopeAllSelf,
		RefundActionsAfterCancellation: []string{"email"},
	}.Sanitized()
}

func newTestService(repo *mockBookingRepo, meta *mockMetaRepo, settings domain.PolicySettings) *Service {
	if meta == nil {
		meta = &mockMetaRepo{}
	}
	return NewService(
		repo,
		meta,
		&mockRefunds{actions: []string{"email"}},
		domain.NewStatusRegistry(),
		settings,
		&Overrides{},
		&fixedClock{now: testNow},
		noopLogger{},
	)
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

func dtOf(t time.Time) types.DateTime {
	return types.NewDateTime(t)
}

// --- Окно изменений ---

func TestIsInDelay_Boundary(t *testing.T) {
	settings := testSettings()
	settings.BookingChangesDeadline = 24 * 60 * 60
	svc := newTestService(&mockBookingRepo{}, nil, settings)

	// Ровно за 24 часа до начала изменение ещё разрешено
	b := &domain.Booking{ID: 1, ActivityID: 1, EventStart: dtOf(testNow.Add(24 * time.Hour)), Active: true}
	inDelay, err := svc.IsInDelay(context.Background(), b)
	assert.NoError(t, err)
	assert.True(t, inDelay)

	// Секундой позже уже нет
	b.EventStart = dtOf(testNow.Add(24*time.Hour - time.Second))
	inDelay, err = svc.IsInDelay(context.Background(), b)
	assert.NoError(t, err)
	assert.False(t, inDelay)
}

func TestIsInDelay_ActivityOverridesGlobal(t *testing.T) {
	settings := testSettings()
	settings.BookingChangesDeadline = 48 * 60 * 60

	meta := &mockMetaRepo{activityMeta: map[int64]domain.ActivityMeta{
		1: {BookingChangesDeadline: ptr.Ptr(int64(3600))},
	}}
	svc := newTestService(&mockBookingRepo{}, meta, settings)

	// За два часа до начала глобальная настройка запретила бы изменение,
	// но переопределение активности в один час его разрешает
	b := &domain.Booking{ID: 1, ActivityID: 1, EventStart: dtOf(testNow.Add(2 * time.Hour)), Active: true}
	inDelay, err := svc.IsInDelay(context.Background(), b)
	assert.NoError(t, err)
	assert.True(t, inDelay)
}

// --- Отмена ---

func TestCanBeCancelled_OwnerWithinDelay(t *testing.T) {
	svc := newTestService(&mockBookingRepo{}, nil, testSettings())

	b := &domain.Booking{
		ID:         1,
		UserID:     domain.AccountIdentity(42),
		ActivityID: 1,
		EventStart: dtOf(testNow.Add(time.Hour)),
		Active:     true,
	}
	actor := domain.ActorContext{User: domain.AccountIdentity(42), IsFrontend: true}

	result, err := svc.CanBeCancelled(context.Background(), b, actor)
	assert.NoError(t, err)
	assert.True(t, result.IsSuccess())
}

func TestCanBeCancelled_DeniedForNonOwner(t *testing.T) {
	svc := newTestService(&mockBookingRepo{}, nil, testSettings())

	b := &domain.Booking{
		ID:         1,
		UserID:     domain.AccountIdentity(42),
		ActivityID: 1,
		EventStart: dtOf(testNow.Add(time.Hour)),
		Active:     true,
	}
	actor := domain.ActorContext{User: domain.AccountIdentity(7), IsFrontend: true}

	result, err := svc.CanBeCancelled(context.Background(), b, actor)
	assert.NoError(t, err)
	assert.False(t, result.IsSuccess())
	assert.Equal(t, domain.ErrCodeUserNotAllowed, result.Error)
}

func TestCanBeCancelled_DeniedWhenSettingOff(t *testing.T) {
	settings := testSettings()
	settings.AllowCustomersToCancel = false
	svc := newTestService(&mockBookingRepo{}, nil, settings)

	b := &domain.Booking{
		ID:         1,
		UserID:     domain.AccountIdentity(42),
		ActivityID: 1,
		EventStart: dtOf(testNow.Add(time.Hour)),
		Active:     true,
	}
	actor := domain.ActorContext{User: domain.AccountIdentity(42), IsFrontend: true}

	result, err := svc.CanBeCancelled(context.Background(), b, actor)
	assert.NoError(t, err)
	assert.Equal(t, domain.ErrCodeCancelNotAllowed, result.Error)
}

func TestCanBeCancelled_DeniedForGroupedBooking(t *testing.T) {
	svc := newTestService(&mockBookingRepo{}, nil, testSettings())

	b := &domain.Booking{
		ID:         1,
		UserID:     domain.AccountIdentity(42),
		GroupID:    9,
		ActivityID: 1,
		EventStart: dtOf(testNow.Add(time.Hour)),
		Active:     true,
	}
	actor := domain.ActorContext{User: domain.AccountIdentity(42), IsFrontend: true}

	result, err := svc.CanBeCancelled(context.Background(), b, actor)
	assert.NoError(t, err)
	assert.Equal(t, domain.ErrCodeCancelNotAllowed, result.Error)
}

func TestCanBeCancelled_GroupedOverrideAllows(t *testing.T) {
	svc := newTestService(&mockBookingRepo{}, nil, testSettings())
	svc.overrides.AllowGroupedChanges = func(b *domain.Booking) bool { return true }

	b := &domain.Booking{
		ID:         1,
		UserID:     domain.AccountIdentity(42),
		GroupID:    9,
		ActivityID: 1,
		EventStart: dtOf(testNow.Add(time.Hour)),
		Active:     true,
	}
	actor := domain.ActorContext{User: domain.AccountIdentity(42), IsFrontend: true}

	result, err := svc.CanBeCancelled(context.Background(), b, actor)
	assert.NoError(t, err)
	assert.True(t, result.IsSuccess())
}

func TestCanBeCancelled_ElevatedBackendBypassesAll(t *testing.T) {
	settings := testSettings()
	settings.AllowCustomersToCancel = false
	svc := newTestService(&mockBookingRepo{}, nil, settings)

	// Чужое неактивное бронирование с истекшим окном
	b := &domain.Booking{
		ID:         1,
		UserID:     domain.AccountIdentity(42),
		ActivityID: 1,
		EventStart: dtOf(testNow.Add(-time.Hour)),
		Active:     false,
	}
	actor := domain.ActorContext{User: domain.AccountIdentity(7), IsElevated: true}

	result, err := svc.CanBeCancelled(context.Background(), b, actor)
	assert.NoError(t, err)
	assert.True(t, result.IsSuccess())
}

func TestCanGroupBeCancelled_AllOrNothing(t *testing.T) {
	svc := newTestService(&mockBookingRepo{}, nil, testSettings())

	group := &domain.BookingGroup{ID: 9, UserID: domain.AccountIdentity(42)}
	members := []*domain.Booking{
		{ID: 1, GroupID: 9, UserID: domain.AccountIdentity(42), ActivityID: 1, EventStart: dtOf(testNow.Add(time.Hour)), Active: true},
		{ID: 2, GroupID: 9, UserID: domain.AccountIdentity(42), ActivityID: 1, EventStart: dtOf(testNow.Add(2 * time.Hour)), Active: true},
		// Третий участник уже неактивен и проваливает свою проверку
		{ID: 3, GroupID: 9, UserID: domain.AccountIdentity(42), ActivityID: 1, EventStart: dtOf(testNow.Add(3 * time.Hour)), Active: false},
	}
	actor := domain.ActorContext{User: domain.AccountIdentity(42), IsFrontend: true}

	result, err := svc.CanGroupBeCancelled(context.Background(), group, members, actor)
	assert.NoError(t, err)
	assert.False(t, result.IsSuccess())
}

func TestCancelGroup_NoMemberTransitionedOnDenial(t *testing.T) {
	groupUpdated := false
	repo := &mockBookingRepo{
		getGroupByIDFn: func(ctx context.Context, id int64) (*domain.BookingGroup, error) {
			return &domain.BookingGroup{ID: 9, UserID: domain.AccountIdentity(42)}, nil
		},
		getGroupBookingsFn: func(ctx context.Context, groupID int64) ([]*domain.Booking, error) {
			return []*domain.Booking{
				{ID: 1, GroupID: 9, UserID: domain.AccountIdentity(42), ActivityID: 1, EventStart: dtOf(testNow.Add(time.Hour)), Active: true},
				{ID: 2, GroupID: 9, UserID: domain.AccountIdentity(42), ActivityID: 1, EventStart: dtOf(testNow.Add(time.Hour)), Active: false},
			}, nil
		},
		updateGroupStatusFn: func(ctx context.Context, groupID int64, status domain.BookingStatus, active bool) error {
			groupUpdated = true
			return nil
		},
	}
	svc := newTestService(repo, nil, testSettings())
	actor := domain.ActorContext{User: domain.AccountIdentity(42), IsFrontend: true}

	result, err := svc.CancelGroup(context.Background(), domain.GroupByID(9), actor)
	assert.NoError(t, err)
	assert.False(t, result.IsSuccess())
	assert.False(t, groupUpdated)
}

// --- Смена статуса ---

func TestStatusCanBeChangedTo_ElevatedNoOpNeverDenied(t *testing.T) {
	svc := newTestService(&mockBookingRepo{}, nil, testSettings())

	// Окно изменений давно истекло и актор не владелец
	b := &domain.Booking{
		ID:         1,
		UserID:     domain.AccountIdentity(42),
		ActivityID: 1,
		EventStart: dtOf(testNow.Add(-48 * time.Hour)),
		Status:     domain.StatusBooked,
		Active:     true,
	}
	actor := domain.ActorContext{User: domain.AccountIdentity(7), IsElevated: true}

	result, err := svc.StatusCanBeChangedTo(context.Background(), b, b.Status, actor)
	assert.NoError(t, err)
	assert.True(t, result.IsSuccess())
}

func TestStatusCanBeChangedTo_DeliveredDeniedForCustomer(t *testing.T) {
	svc := newTestService(&mockBookingRepo{}, nil, testSettings())

	b := &domain.Booking{
		ID:         1,
		UserID:     domain.AccountIdentity(42),
		ActivityID: 1,
		EventStart: dtOf(testNow.Add(time.Hour)),
		Status:     domain.StatusBooked,
		Active:     true,
	}
	actor := domain.ActorContext{User: domain.AccountIdentity(42), IsFrontend: true}

	result, err := svc.StatusCanBeChangedTo(context.Background(), b, domain.StatusDelivered, actor)
	assert.NoError(t, err)
	assert.Equal(t, domain.ErrCodeStatusChangeNotAllowed, result.Error)
}

func TestStatusCanBeChangedTo_CancelledDelegatesToCancellation(t *testing.T) {
	svc := newTestService(&mockBookingRepo{}, nil, testSettings())

	b := &domain.Booking{
		ID:         1,
		UserID:     domain.AccountIdentity(42),
		ActivityID: 1,
		EventStart: dtOf(testNow.Add(time.Hour)),
		Status:     domain.StatusBooked,
		Active:     true,
	}
	owner := domain.ActorContext{User: domain.AccountIdentity(42), IsFrontend: true}
	stranger := domain.ActorContext{User: domain.AccountIdentity(7), IsFrontend: true}

	result, err := svc.StatusCanBeChangedTo(context.Background(), b, domain.StatusCancelled, owner)
	assert.NoError(t, err)
	assert.True(t, result.IsSuccess())

	result, err = svc.StatusCanBeChangedTo(context.Background(), b, domain.StatusCancelled, stranger)
	assert.NoError(t, err)
	assert.False(t, result.IsSuccess())
}

func TestStatusCanBeChangedTo_UnknownStatusFailsHard(t *testing.T) {
	svc := newTestService(&mockBookingRepo{}, nil, testSettings())
	actor := domain.ActorContext{User: domain.AccountIdentity(42)}

	_, err := svc.StatusCanBeChangedTo(context.Background(), &domain.Booking{ID: 1}, domain.BookingStatus("nonsense"), actor)
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

// --- Возврат ---

func TestCanBeRefunded_OwnerOfCancelledBooking(t *testing.T) {
	svc := newTestService(&mockBookingRepo{}, nil, testSettings())

	b := &domain.Booking{
		ID:         1,
		UserID:     domain.AccountIdentity(42),
		ActivityID: 1,
		Status:     domain.StatusCancelled,
	}
	actor := domain.ActorContext{User: domain.AccountIdentity(42), IsFrontend: true}

	result, err := svc.CanBeRefunded(context.Background(), b, actor, "email")
	assert.NoError(t, err)
	assert.True(t, result.IsSuccess())
}

func TestCanBeRefunded_DeniedWhenAlreadyRefunded(t *testing.T) {
	svc := newTestService(&mockBookingRepo{}, nil, testSettings())

	b := &domain.Booking{ID: 1, UserID: domain.AccountIdentity(42), Status: domain.StatusRefunded}
	actor := domain.ActorContext{User: domain.AccountIdentity(42), IsFrontend: true}

	result, err := svc.CanBeRefunded(context.Background(), b, actor, "")
	assert.NoError(t, err)
	assert.Equal(t, domain.ErrCodeRefundNotAllowed, result.Error)
}

func TestCanBeRefunded_DeniedWhenNotCancelled(t *testing.T) {
	svc := newTestService(&mockBookingRepo{}, nil, testSettings())

	b := &domain.Booking{ID: 1, UserID: domain.AccountIdentity(42), Status: domain.StatusBooked, Active: true}
	actor := domain.ActorContext{User: domain.AccountIdentity(42), IsFrontend: true}

	result, err := svc.CanBeRefunded(context.Background(), b, actor, "")
	assert.NoError(t, err)
	assert.Equal(t, domain.ErrCodeRefundNotAllowed, result.Error)
}

func TestCanBeRefunded_RequestedActionMustBeAvailable(t *testing.T) {
	svc := newTestService(&mockBookingRepo{}, nil, testSettings())

	b := &domain.Booking{ID: 1, UserID: domain.AccountIdentity(42), Status: domain.StatusCancelled}
	actor := domain.ActorContext{User: domain.AccountIdentity(42), IsFrontend: true}

	result, err := svc.CanBeRefunded(context.Background(), b, actor, "bank_transfer")
	assert.NoError(t, err)
	assert.Equal(t, domain.ErrCodeRefundNotAllowed, result.Error)
}

// --- Оркестрация ---

func TestCancel_PersistsInactiveCancelledStatus(t *testing.T) {
	var gotStatus domain.BookingStatus
	var gotActive bool

	repo := &mockBookingRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Booking, error) {
			return &domain.Booking{
				ID:         id,
				UserID:     domain.AccountIdentity(42),
				ActivityID: 1,
				EventStart: dtOf(testNow.Add(time.Hour)),
				Status:     domain.StatusBooked,
				Active:     true,
			}, nil
		},
		updateStatusFn: func(ctx context.Context, id int64, status domain.BookingStatus, active bool) error {
			gotStatus = status
			gotActive = active
			return nil
		},
	}
	svc := newTestService(repo, nil, testSettings())
	actor := domain.ActorContext{User: domain.AccountIdentity(42), IsFrontend: true}

	result, err := svc.Cancel(context.Background(), domain.ByID(1), actor)
	assert.NoError(t, err)
	assert.True(t, result.IsSuccess())
	assert.Equal(t, domain.StatusCancelled, gotStatus)
	assert.False(t, gotActive)
}

func TestRefund_CustomerRequestsElevatedApplies(t *testing.T) {
	var gotStatus domain.BookingStatus

	repo := &mockBookingRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Booking, error) {
			return &domain.Booking{
				ID:         id,
				UserID:     domain.AccountIdentity(42),
				ActivityID: 1,
				Status:     domain.StatusCancelled,
			}, nil
		},
		updateStatusFn: func(ctx context.Context, id int64, status domain.BookingStatus, active bool) error {
			gotStatus = status
			return nil
		},
	}
	svc := newTestService(repo, nil, testSettings())

	customer := domain.ActorContext{User: domain.AccountIdentity(42), IsFrontend: true}
	result, err := svc.Refund(context.Background(), domain.ByID(1), "email", customer)
	assert.NoError(t, err)
	assert.True(t, result.IsSuccess())
	assert.Equal(t, domain.StatusRefundRequested, gotStatus)

	admin := domain.ActorContext{User: domain.AccountIdentity(7), IsElevated: true}
	result, err = svc.Refund(context.Background(), domain.ByID(1), "", admin)
	assert.NoError(t, err)
	assert.True(t, result.IsSuccess())
	assert.Equal(t, domain.StatusRefunded, gotStatus)
}

// --- Смена владельца ---

func TestUserCanBeChanged_RoleRestriction(t *testing.T) {
	meta := &mockMetaRepo{activityMeta: map[int64]domain.ActivityMeta{
		1: {AllowedRoles: []string{"vip_member"}},
	}}
	svc := newTestService(&mockBookingRepo{}, meta, testSettings())

	b := &domain.Booking{ID: 1, ActivityID: 1}

	result, err := svc.UserCanBeChanged(context.Background(), b, []string{"subscriber"})
	assert.NoError(t, err)
	assert.Equal(t, domain.ErrCodeUserNotAllowed, result.Error)

	result, err = svc.UserCanBeChanged(context.Background(), b, []string{"vip_member"})
	assert.NoError(t, err)
	assert.True(t, result.IsSuccess())
}
