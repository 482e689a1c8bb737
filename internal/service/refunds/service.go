package refunds

import (
	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Метки механизмов возврата для пользователя
var actionLabels = map[string][2]string{
	ActionEmail: {
		"Запрос по почте",
		"Отправить запрос на возврат администратору",
	},
}

// Service определяет, какие механизмы возврата доступны для выборки
// бронирований и групп при данных настройках и акторе
type Service struct {
	settings domain.PolicySettings
	log      Logger
}

// NewService создает новый экземпляр сервиса возвратов
func NewService(settings domain.PolicySettings, log Logger) *Service {
	return &Service{
		settings: settings,
		log:      log,
	}
}

// availableIDs возвращает идентификаторы доступных актору механизмов.
// Клиенты получают пересечение с глобальной настройкой, привилегированный
// актор действует напрямую, поэтому клиентский механизм письма убирается
func (s *Service) availableIDs(actor domain.ActorContext) []string {
	possible := []string{ActionEmail}

	available := make([]string, 0, len(possible))
	for _, id := range possible {
		if actor.BypassesCustomerChecks() {
			if id == ActionEmail {
				continue
			}
			available = append(available, id)
			continue
		}
		if contains(s.settings.RefundActionsAfterCancellation, id) {
			available = append(available, id)
		}
	}
	return available
}

// ActionsForBooking возвращает механизмы возврата, доступные для
// одиночного бронирования
func (s *Service) ActionsForBooking(b *domain.Booking, actor domain.ActorContext) []string {
	if b == nil {
		return nil
	}
	return s.availableIDs(actor)
}

// ActionsForGroup возвращает механизмы возврата, доступные для группы
func (s *Service) ActionsForGroup(g *domain.BookingGroup, actor domain.ActorContext) []string {
	if g == nil {
		return nil
	}
	return s.availableIDs(actor)
}

// Resolve возвращает доступные механизмы возврата для выборки с учетом
// числа совместимых записей
func (s *Service) Resolve(selection Selection, actor domain.ActorContext) []Action {
	total := len(selection.BookingIDs) + len(selection.GroupIDs)
	ids := s.availableIDs(actor)

	actions := make([]Action, 0, len(ids))
	for _, id := range ids {
		labels := actionLabels[id]
		// Встроенные механизмы структурно совместимы с любой записью
		actions = append(actions, Action{
			ID:          id,
			Label:       labels[0],
			Description: labels[1],
			BookingIDs:  selection.BookingIDs,
			GroupIDs:    selection.GroupIDs,
			BookingsNb:  total,
			TotalNb:     total,
		})
	}

	s.log.Info("Resolved %d refund action(s) for %d selected record(s)", len(actions), total)
	return actions
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
