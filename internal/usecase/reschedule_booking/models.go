package reschedule_booking

import (
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Request модель запроса на перенос бронирования
type Request struct {
	BookingID  int64          // ID переносимого бронирования
	EventID    int64          // ID целевого события
	EventStart types.DateTime // Начало целевого вхождения
	EventEnd   types.DateTime // Конец целевого вхождения

	Actor domain.ActorContext
}

// Response результат переноса. Бизнес-отказ возвращается в Result со
// стабильным кодом ошибки, на который ветвится вызывающий слой
type Response struct {
	Result domain.Result
}
