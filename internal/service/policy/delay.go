package policy

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// changesDeadline вычисляет действующее окно изменений для активности:
// переопределение из метаданных активности, иначе глобальная настройка
func (s *Service) changesDeadline(ctx context.Context, activityID int64) (int64, error) {
	meta, err := s.meta.GetActivityMeta(ctx, activityID)
	if err != nil {
		return 0, fmt.Errorf("%w: get activity meta %d: %v", ErrInternal, activityID, err)
	}
	return ptr.Deref(meta.BookingChangesDeadline, s.settings.BookingChangesDeadline), nil
}

// IsInDelay проверяет, что текущий момент всё ещё внутри окна изменений
// бронирования. Граница включительная: изменение ровно за deadline секунд
// до начала события ещё разрешено
func (s *Service) IsInDelay(ctx context.Context, booking *domain.Booking) (bool, error) {
	if s.overrides.deadlineBypassed(booking.ActivityID) {
		return true, nil
	}
	deadline, err := s.changesDeadline(ctx, booking.ActivityID)
	if err != nil {
		return false, err
	}
	return s.inDelay(booking.EventStart, deadline)
}

// isGroupInDelay проверяет окно изменений группы. Переопределение из
// метаданных категории действует на всю группу, иначе каждый участник
// проверяется по своей активности
func (s *Service) isGroupInDelay(ctx context.Context, group *domain.BookingGroup, members []*domain.Booking) (bool, error) {
	if group.CategoryID > 0 {
		meta, err := s.meta.GetCategoryMeta(ctx, group.CategoryID)
		if err != nil {
			return false, fmt.Errorf("%w: get category meta %d: %v", ErrInternal, group.CategoryID, err)
		}
		if meta.BookingChangesDeadline != nil {
			agg := domain.AggregateGroupBookings(members)
			return s.inDelay(agg.Start, *meta.BookingChangesDeadline)
		}
	}
	for _, b := range members {
		inDelay, err := s.IsInDelay(ctx, b)
		if err != nil {
			return false, err
		}
		if !inDelay {
			return false, nil
		}
	}
	return len(members) > 0, nil
}

func (s *Service) inDelay(eventStart types.DateTime, deadline int64) (bool, error) {
	start, err := eventStart.Time(nil)
	if err != nil {
		return false, fmt.Errorf("%w: invalid event start: %v", ErrInternal, err)
	}
	latest := start.Add(-time.Duration(deadline) * time.Second)
	return !s.clock.Now().After(latest), nil
}
