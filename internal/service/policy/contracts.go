package policy

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetGroupByID(ctx context.Context, id int64) (*domain.BookingGroup, error)
	GetGroupBookings(ctx context.Context, groupID int64) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, active bool) error
	UpdateGroupStatus(ctx context.Context, groupID int64, status domain.BookingStatus, active bool) error
}

// MetaRepository интерфейс репозитория метаданных активностей и категорий
type MetaRepository interface {
	GetActivityMeta(ctx context.Context, activityID int64) (domain.ActivityMeta, error)
	GetCategoryMeta(ctx context.Context, categoryID int64) (domain.ActivityMeta, error)
}

// RefundActionsProvider интерфейс для получения доступных механизмов возврата
type RefundActionsProvider interface {
	ActionsForBooking(booking *domain.Booking, actor domain.ActorContext) []string
	ActionsForGroup(group *domain.BookingGroup, actor domain.ActorContext) []string
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
