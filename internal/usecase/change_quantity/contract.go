package change_quantity

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetGroupByID(ctx context.Context, id int64) (*domain.BookingGroup, error)
	GetGroupBookings(ctx context.Context, groupID int64) ([]*domain.Booking, error)
	UpdateQuantity(ctx context.Context, id int64, quantity int) error
	UpdateGroupQuantity(ctx context.Context, groupID int64, quantity int) error
}

// MetaRepository интерфейс репозитория метаданных активностей и категорий
type MetaRepository interface {
	GetActivityMeta(ctx context.Context, activityID int64) (domain.ActivityMeta, error)
	GetCategoryMeta(ctx context.Context, categoryID int64) (domain.ActivityMeta, error)
}

// CapacityService интерфейс сервиса занятости
type CapacityService interface {
	Evaluate(ctx context.Context, picked []domain.PickedEvent) (domain.PickedAvailability, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
