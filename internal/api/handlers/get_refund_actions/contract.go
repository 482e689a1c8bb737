package get_refund_actions

import (
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/refunds"
)

type RefundService interface {
	Resolve(selection refunds.Selection, actor domain.ActorContext) []refunds.Action
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
