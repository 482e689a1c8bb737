package capacity

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Service собирает срез занятости логической единицы бронирования.
// Единица это либо одно вхождение события, либо все вхождения группы:
// доступность единицы равна минимуму по вхождениям, а количество на
// пользователя равно максимуму по вхождениям
type Service struct {
	events EventRepository
	log    Logger
}

// NewService создает новый экземпляр сервиса занятости
func NewService(events EventRepository, log Logger) *Service {
	return &Service{
		events: events,
		log:    log,
	}
}

// Evaluate строит срез занятости по набору выбранных вхождений событий
func (s *Service) Evaluate(ctx context.Context, picked []domain.PickedEvent) (domain.PickedAvailability, error) {
	if len(picked) == 0 {
		return domain.PickedAvailability{}, ErrNoPickedEvents
	}

	snapshot := domain.PickedAvailability{
		BookingsPerUser: make(map[string]int),
	}

	for i, event := range picked {
		rawCapacity, activeByUser, err := s.events.GetCapacityAndActiveBookings(ctx, event)
		if err != nil {
			return domain.PickedAvailability{}, fmt.Errorf("%w: event %d: %v", ErrInternal, event.ID, err)
		}

		booked := 0
		for _, quantity := range activeByUser {
			booked += quantity
		}

		// Нулевая вместимость означает отсутствие лимита на вхождении
		residual := rawCapacity - booked
		if rawCapacity <= 0 {
			residual = domain.UnlimitedAvailability
		}
		if i == 0 || lessAvailable(residual, snapshot.Availability) {
			snapshot.Availability = residual
		}

		for user, quantity := range activeByUser {
			if quantity > snapshot.BookingsPerUser[user] {
				snapshot.BookingsPerUser[user] = quantity
			}
		}
	}

	s.log.Info("Evaluated availability for %d picked event(s): availability=%d, users=%d",
		len(picked), snapshot.Availability, snapshot.NumberOfUsers())

	return snapshot, nil
}

// lessAvailable сравнивает остатки с учетом того, что безлимитный
// остаток больше любого конечного
func lessAvailable(a, b int) bool {
	if a == domain.UnlimitedAvailability {
		return false
	}
	if b == domain.UnlimitedAvailability {
		return true
	}
	return a < b
}
