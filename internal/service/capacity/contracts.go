package capacity

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// EventRepository интерфейс репозитория событий
type EventRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
	GetCapacityAndActiveBookings(ctx context.Context, picked domain.PickedEvent) (int, map[string]int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
