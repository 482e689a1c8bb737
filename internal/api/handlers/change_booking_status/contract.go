package change_booking_status

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

type PolicyService interface {
	ChangeStatus(ctx context.Context, ref domain.BookingRef, newStatus domain.BookingStatus, actor domain.ActorContext) (domain.Result, error)
	ChangeGroupStatus(ctx context.Context, ref domain.GroupRef, newStatus domain.BookingStatus, actor domain.ActorContext) (domain.Result, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
