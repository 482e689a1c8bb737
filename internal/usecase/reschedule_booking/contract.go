package reschedule_booking

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/formservice"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Reschedule(ctx context.Context, id int64, eventID int64, start, end types.DateTime) error
}

// EventRepository интерфейс репозитория событий
type EventRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
}

// MetaRepository интерфейс репозитория метаданных активностей
type MetaRepository interface {
	GetActivityMeta(ctx context.Context, activityID int64) (domain.ActivityMeta, error)
}

// PolicyService интерфейс сервиса политики изменений
type PolicyService interface {
	CanReschedule(ctx context.Context, b *domain.Booking, actor domain.ActorContext) (domain.Result, error)
}

// FormServiceClient интерфейс клиента для FormService
type FormServiceClient interface {
	IsEventAvailableOnForm(ctx context.Context, formID int64, picked domain.PickedEvent) (bool, error)
	GetForm(ctx context.Context, formID int64) (*formservice.Form, error)
	GetManagedCalendarIDs(ctx context.Context, userID int64) ([]int64, error)
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
