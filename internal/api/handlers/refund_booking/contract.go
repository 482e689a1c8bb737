package refund_booking

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

type PolicyService interface {
	Refund(ctx context.Context, ref domain.BookingRef, action string, actor domain.ActorContext) (domain.Result, error)
	RefundGroup(ctx context.Context, ref domain.GroupRef, action string, actor domain.ActorContext) (domain.Result, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
