package cancel_booking

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

type PolicyService interface {
	Cancel(ctx context.Context, ref domain.BookingRef, actor domain.ActorContext) (domain.Result, error)
	CancelGroup(ctx context.Context, ref domain.GroupRef, actor domain.ActorContext) (domain.Result, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
