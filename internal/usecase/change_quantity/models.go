package change_quantity

import "github.com/m04kA/SMC-ReservationService/internal/domain"

// Request модель запроса на изменение количества мест
type Request struct {
	BookingID int64 // ID бронирования (0, если меняется группа)
	GroupID   int64 // ID группы бронирований (0, если меняется одиночное)
	Quantity  int   // Новое количество мест

	Actor domain.ActorContext
}

// Response результат проверки и применения изменения количества.
// Messages содержит все нарушенные проверки сразу, Availability
// заполняется при нехватке мест
type Response struct {
	Result domain.QuantityResult
}
