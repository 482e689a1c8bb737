package reschedule_booking

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Сообщения об отказах переноса для пользователя
const (
	msgUnknownEvent       = "Целевое событие не найдено"
	msgDifferentActivity  = "Перенос возможен только в рамках той же активности"
	msgNotAllowedActivity = "Перенос в эту активность не разрешен"
	msgDifferentForm      = "Целевое событие недоступно на форме исходного бронирования"
	msgNotAllowedCalendar = "Целевой календарь недоступен для переноса"
)

// validateRequest проверяет корректность входных данных
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: booking_id is required", ErrInvalidInput)
	}
	if req.EventID <= 0 {
		return fmt.Errorf("%w: event_id is required", ErrInvalidInput)
	}
	if err := req.EventStart.Validate(); err != nil {
		return fmt.Errorf("%w: event_start: %v", ErrInvalidInput, err)
	}
	if err := req.EventEnd.Validate(); err != nil {
		return fmt.Errorf("%w: event_end: %v", ErrInvalidInput, err)
	}
	if !req.EventStart.Before(req.EventEnd) {
		return fmt.Errorf("%w: event_start must precede event_end", ErrInvalidInput)
	}
	return nil
}

// resolveScope вычисляет действующую зону переноса. Зона берётся из
// метаданных активности, иначе из умолчаний по привилегии актора.
// Для привилегированного актора применяется самая широкая из зоны
// активности и глобальной административной зоны
func (uc *UseCase) resolveScope(meta domain.ActivityMeta, actor domain.ActorContext) string {
	scope := meta.RescheduleScope
	if scope == "" {
		if actor.IsElevated {
			scope = domain.DefaultScopeElevated
		} else {
			scope = domain.DefaultScopeFrontend
		}
	}
	if actor.IsElevated {
		scope = domain.WidenAdminScope(scope, uc.settings.AdminRescheduleScope)
	}
	return scope
}

// checkDestination выполняет упорядоченные проверки допустимости целевого
// события. Порядок и коды ошибок стабильны: вызывающие слои ветвятся по ним
func (uc *UseCase) checkDestination(
	ctx context.Context,
	booking *domain.Booking,
	dest *domain.Event,
	picked domain.PickedEvent,
	scope string,
	meta domain.ActivityMeta,
	actor domain.ActorContext,
) (domain.Result, error) {
	if domain.ScopeRestrictsToSelf(scope) && dest.ActivityID != booking.ActivityID {
		return domain.Failed(domain.ErrCodeRescheduleDifferentActivity, msgDifferentActivity), nil
	}

	if domain.ScopeRestrictsToCustom(scope) && dest.ActivityID != booking.ActivityID {
		allowed := false
		for _, id := range meta.RescheduleActivityIDs {
			if id == dest.ActivityID {
				allowed = true
				break
			}
		}
		if !allowed {
			return domain.Failed(domain.ErrCodeRescheduleNotAllowedActivity, msgNotAllowedActivity), nil
		}
	}

	if domain.ScopeHasBreadthForm(scope) {
		// Бронирование без формы не может совпасть с формой назначения
		if booking.FormID <= 0 {
			return domain.Failed(domain.ErrCodeRescheduleDifferentForm, msgDifferentForm), nil
		}
		available, err := uc.formClient.IsEventAvailableOnForm(ctx, booking.FormID, picked)
		if err != nil {
			return domain.Result{}, fmt.Errorf("%w: check form availability: %v", ErrInternal, err)
		}
		if !available {
			return domain.Failed(domain.ErrCodeRescheduleDifferentForm, msgDifferentForm), nil
		}
		return domain.Success(), nil
	}

	calendars, err := uc.managedCalendars(ctx, booking.FormID, actor)
	if err != nil {
		return domain.Result{}, err
	}
	for _, id := range calendars {
		if id == dest.TemplateID {
			return domain.Success(), nil
		}
	}
	return domain.Failed(domain.ErrCodeRescheduleNotAllowedCalendar, msgNotAllowedCalendar), nil
}

// managedCalendars возвращает календари, относительно которых проверяется
// зона "all": календари привилегированного актора либо автора формы
func (uc *UseCase) managedCalendars(ctx context.Context, formID int64, actor domain.ActorContext) ([]int64, error) {
	userID := actor.User.AccountID
	if !actor.IsElevated || userID <= 0 {
		// Автор определяется по форме; без формы календарей нет
		if formID <= 0 {
			return nil, nil
		}
		form, err := uc.formClient.GetForm(ctx, formID)
		if err != nil {
			return nil, fmt.Errorf("%w: get form %d: %v", ErrInternal, formID, err)
		}
		userID = form.AuthorID
	}
	calendars, err := uc.formClient.GetManagedCalendarIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: get managed calendars for user %d: %v", ErrInternal, userID, err)
	}
	return calendars, nil
}
