package change_booking_quantity

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/usecase/change_quantity"
)

type ChangeQuantityUseCase interface {
	Execute(ctx context.Context, req *change_quantity.Request) (*change_quantity.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
