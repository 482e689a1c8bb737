package change_quantity

import (
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

// validateRequest проверяет корректность входных данных
func validateRequest(req *Request) error {
	if req.BookingID <= 0 && req.GroupID <= 0 {
		return fmt.Errorf("%w: booking_id or group_id is required", ErrInvalidInput)
	}
	if req.BookingID > 0 && req.GroupID > 0 {
		return fmt.Errorf("%w: booking_id and group_id are mutually exclusive", ErrInvalidInput)
	}
	if req.Quantity < 0 {
		return fmt.Errorf("%w: quantity must be non-negative", ErrInvalidInput)
	}
	return nil
}

// checkQuantity выполняет четыре независимые числовые проверки изменения
// количества и возвращает все нарушения сразу. Нулевые лимиты означают
// отсутствие ограничения и пропускают проверку.
//
// Дельта активной записи считается от текущего количества; неактивная
// заготовка добавляет всё новое количество целиком.
func checkQuantity(
	current int,
	active bool,
	user domain.UserIdentity,
	newQuantity int,
	snapshot domain.PickedAvailability,
	meta domain.ActivityMeta,
) domain.QuantityResult {
	delta := newQuantity
	if active {
		delta = newQuantity - current
	}

	alreadyBooked := snapshot.QuantityBookedBy(user)
	if active && !snapshot.UserHasBooked(user) {
		// Активная запись всегда занимает свои места, даже если срез
		// занятости её не увидел
		alreadyBooked = current
	}

	messages := make(map[string]string)
	var availability *int

	if snapshot.Availability != domain.UnlimitedAvailability && delta > snapshot.Availability {
		messages[domain.MsgQtySupToAvail] = fmt.Sprintf(
			"Недостаточно свободных мест: доступно %d", snapshot.Availability)
		availability = ptr.Ptr(snapshot.Availability)
	}
	if meta.MinBookingsPerUser > 0 && alreadyBooked+delta < meta.MinBookingsPerUser {
		messages[domain.MsgQtyInfToMin] = fmt.Sprintf(
			"Минимальное количество мест на пользователя: %d", meta.MinBookingsPerUser)
	}
	if meta.MaxBookingsPerUser > 0 && alreadyBooked+delta > meta.MaxBookingsPerUser {
		messages[domain.MsgQtySupToMax] = fmt.Sprintf(
			"Максимальное количество мест на пользователя: %d", meta.MaxBookingsPerUser)
	}
	if meta.MaxUsersPerEvent > 0 && !snapshot.UserHasBooked(user) && snapshot.NumberOfUsers() >= meta.MaxUsersPerEvent {
		messages[domain.MsgUsersSupToMax] = fmt.Sprintf(
			"Достигнут лимит участников события: %d", meta.MaxUsersPerEvent)
	}

	if len(messages) > 0 {
		return domain.QuantityResult{
			Status:       domain.ResultFailed,
			Messages:     messages,
			Availability: availability,
		}
	}
	return domain.QuantityResult{Status: domain.ResultSuccess}
}
