package policy

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/booking"
)

// Сообщения об отказах политики для пользователя
const (
	msgBookingNotFound    = "Бронирование не найдено"
	msgGroupNotFound      = "Группа бронирований не найдена"
	msgCancelDisabled     = "Отмена бронирований клиентами отключена"
	msgGroupedBooking     = "Бронирование входит в группу и не может быть изменено отдельно"
	msgOutOfDelay         = "Срок изменения бронирования истёк"
	msgNotOwner           = "Бронирование принадлежит другому пользователю"
	msgInactiveBooking    = "Бронирование уже неактивно"
	msgAlreadyRefunded    = "Возврат по бронированию уже выполнен"
	msgNoRefundActions    = "Для этого бронирования нет доступных способов возврата"
	msgRefundUnavailable  = "Запрошенный способ возврата недоступен"
	msgNotCancelled       = "Возврат возможен только по отменённому бронированию"
	msgRescheduleDisabled = "Перенос бронирований клиентами отключен"
	msgDeliveredDenied    = "Статус «выполнено» устанавливает только администратор"
	msgStatusDenied       = "Переход в этот статус не разрешен"
	msgRoleNotAllowed     = "Активность недоступна для роли пользователя"
	msgEmptyGroup         = "Группа не содержит бронирований"
)

// Service реализует правила авторизации изменений бронирований: отмена,
// возврат, произвольная смена статуса и смена владельца, для одиночных
// бронирований и групп. Решения не выполняют записи; оркестрация
// load -> decide -> mutate собрана в методах Cancel/ChangeStatus/Refund
type Service struct {
	bookings  BookingRepository
	meta      MetaRepository
	refunds   RefundActionsProvider
	registry  *domain.StatusRegistry
	settings  domain.PolicySettings
	overrides *Overrides
	clock     TimeProvider
	log       Logger
}

// NewService создает новый экземпляр сервиса политики
func NewService(
	bookings BookingRepository,
	meta MetaRepository,
	refunds RefundActionsProvider,
	registry *domain.StatusRegistry,
	settings domain.PolicySettings,
	overrides *Overrides,
	clock TimeProvider,
	log Logger,
) *Service {
	return &Service{
		bookings:  bookings,
		meta:      meta,
		refunds:   refunds,
		registry:  registry,
		settings:  settings,
		overrides: overrides,
		clock:     clock,
		log:       log,
	}
}

// ResolveBooking загружает бронирование по ссылке
func (s *Service) ResolveBooking(ctx context.Context, ref domain.BookingRef) (*domain.Booking, error) {
	if b := ref.Booking(); b != nil {
		return b, nil
	}
	b, err := s.bookings.GetByID(ctx, ref.ID())
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("%w: get booking %d: %v", ErrInternal, ref.ID(), err)
	}
	return b, nil
}

// ResolveGroup загружает группу и её участников по ссылке
func (s *Service) ResolveGroup(ctx context.Context, ref domain.GroupRef) (*domain.BookingGroup, []*domain.Booking, error) {
	group := ref.Group()
	members := ref.Members()
	if group == nil {
		var err error
		group, err = s.bookings.GetGroupByID(ctx, ref.ID())
		if err != nil {
			if errors.Is(err, bookingRepo.ErrGroupNotFound) {
				return nil, nil, ErrGroupNotFound
			}
			return nil, nil, fmt.Errorf("%w: get group %d: %v", ErrInternal, ref.ID(), err)
		}
	}
	if members == nil {
		var err error
		members, err = s.bookings.GetGroupBookings(ctx, group.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: get group members %d: %v", ErrInternal, group.ID, err)
		}
	}
	return group, members, nil
}

// CanBeCancelled решает, может ли актор отменить бронирование
func (s *Service) CanBeCancelled(ctx context.Context, b *domain.Booking, actor domain.ActorContext) (domain.Result, error) {
	if b == nil {
		return domain.Failed(domain.ErrCodeBookingNotFound, msgBookingNotFound), nil
	}
	if actor.BypassesCustomerChecks() {
		return domain.Success(), nil
	}

	if !s.settings.AllowCustomersToCancel {
		return domain.Failed(domain.ErrCodeCancelNotAllowed, msgCancelDisabled), nil
	}
	if b.IsGrouped() && !s.overrides.groupedChangeAllowed(b) {
		return domain.Failed(domain.ErrCodeCancelNotAllowed, msgGroupedBooking), nil
	}
	inDelay, err := s.IsInDelay(ctx, b)
	if err != nil {
		return domain.Result{}, err
	}
	if !inDelay {
		return domain.Failed(domain.ErrCodeCancelNotAllowed, msgOutOfDelay), nil
	}
	if !s.overrides.ownerAllowed(actor, b.UserID) {
		return domain.Failed(domain.ErrCodeUserNotAllowed, msgNotOwner), nil
	}
	if !b.Active {
		return domain.Failed(domain.ErrCodeCancelNotAllowed, msgInactiveBooking), nil
	}
	return domain.Success(), nil
}

// CanGroupBeCancelled решает, может ли актор отменить группу. Отказ
// любого участника запрещает операцию целиком
func (s *Service) CanGroupBeCancelled(ctx context.Context, group *domain.BookingGroup, members []*domain.Booking, actor domain.ActorContext) (domain.Result, error) {
	if group == nil {
		return domain.Failed(domain.ErrCodeGroupNotFound, msgGroupNotFound), nil
	}
	if actor.BypassesCustomerChecks() {
		return domain.Success(), nil
	}
	if len(members) == 0 {
		return domain.Failed(domain.ErrCodeGroupNotFound, msgEmptyGroup), nil
	}

	inDelay, err := s.isGroupInDelay(ctx, group, members)
	if err != nil {
		return domain.Result{}, err
	}
	if !inDelay {
		return domain.Failed(domain.ErrCodeCancelNotAllowed, msgOutOfDelay), nil
	}

	for _, member := range members {
		// Участник проверяется в составе группы, а не как одиночное
		// бронирование, поэтому признак группы здесь не запрещает
		single := *member
		single.GroupID = 0
		result, err := s.CanBeCancelled(ctx, &single, actor)
		if err != nil {
			return domain.Result{}, err
		}
		if !result.IsSuccess() {
			return result, nil
		}
	}
	return domain.Success(), nil
}

// CanBeRefunded решает, доступен ли возврат по бронированию. Пустой
// requestedAction означает "любым доступным способом"
func (s *Service) CanBeRefunded(ctx context.Context, b *domain.Booking, actor domain.ActorContext, requestedAction string) (domain.Result, error) {
	if b == nil {
		return domain.Failed(domain.ErrCodeBookingNotFound, msgBookingNotFound), nil
	}
	if b.Status == domain.StatusRefunded {
		return domain.Failed(domain.ErrCodeRefundNotAllowed, msgAlreadyRefunded), nil
	}
	if b.IsGrouped() && !s.overrides.groupedChangeAllowed(b) {
		return domain.Failed(domain.ErrCodeRefundNotAllowed, msgGroupedBooking), nil
	}

	actions := s.refunds.ActionsForBooking(b, actor)
	if actor.IsFrontend && len(actions) == 0 {
		return domain.Failed(domain.ErrCodeRefundNotAllowed, msgNoRefundActions), nil
	}
	if requestedAction != "" && !containsAction(actions, requestedAction) {
		return domain.Failed(domain.ErrCodeRefundNotAllowed, msgRefundUnavailable), nil
	}

	if !actor.BypassesCustomerChecks() {
		if !s.overrides.ownerAllowed(actor, b.UserID) {
			return domain.Failed(domain.ErrCodeUserNotAllowed, msgNotOwner), nil
		}
		if b.Status != domain.StatusCancelled {
			return domain.Failed(domain.ErrCodeRefundNotAllowed, msgNotCancelled), nil
		}
	}
	return domain.Success(), nil
}

// CanGroupBeRefunded решает, доступен ли возврат по группе. Логика
// одиночного возврата применяется к собственному состоянию группы
func (s *Service) CanGroupBeRefunded(ctx context.Context, group *domain.BookingGroup, actor domain.ActorContext, requestedAction string) (domain.Result, error) {
	if group == nil {
		return domain.Failed(domain.ErrCodeGroupNotFound, msgGroupNotFound), nil
	}
	if group.Status == domain.StatusRefunded {
		return domain.Failed(domain.ErrCodeRefundNotAllowed, msgAlreadyRefunded), nil
	}

	actions := s.refunds.ActionsForGroup(group, actor)
	if actor.IsFrontend && len(actions) == 0 {
		return domain.Failed(domain.ErrCodeRefundNotAllowed, msgNoRefundActions), nil
	}
	if requestedAction != "" && !containsAction(actions, requestedAction) {
		return domain.Failed(domain.ErrCodeRefundNotAllowed, msgRefundUnavailable), nil
	}

	if !actor.BypassesCustomerChecks() {
		if !s.overrides.ownerAllowed(actor, group.UserID) {
			return domain.Failed(domain.ErrCodeUserNotAllowed, msgNotOwner), nil
		}
		if group.Status != domain.StatusCancelled {
			return domain.Failed(domain.ErrCodeRefundNotAllowed, msgNotCancelled), nil
		}
	}
	return domain.Success(), nil
}

// CanReschedule решает, может ли актор перенести бронирование на другое
// вхождение события. Допустимость конкретного назначения проверяется
// отдельно на уровне операции переноса
func (s *Service) CanReschedule(ctx context.Context, b *domain.Booking, actor domain.ActorContext) (domain.Result, error) {
	if b == nil {
		return domain.Failed(domain.ErrCodeBookingNotFound, msgBookingNotFound), nil
	}
	if actor.BypassesCustomerChecks() {
		return domain.Success(), nil
	}

	if !s.settings.AllowCustomersToReschedule {
		return domain.Failed(domain.ErrCodeRescheduleNotAllowed, msgRescheduleDisabled), nil
	}
	if !b.Active {
		return domain.Failed(domain.ErrCodeRescheduleNotAllowed, msgInactiveBooking), nil
	}
	if b.IsGrouped() && !s.overrides.groupedChangeAllowed(b) {
		return domain.Failed(domain.ErrCodeRescheduleNotAllowed, msgGroupedBooking), nil
	}
	inDelay, err := s.IsInDelay(ctx, b)
	if err != nil {
		return domain.Result{}, err
	}
	if !inDelay {
		return domain.Failed(domain.ErrCodeRescheduleNotAllowed, msgOutOfDelay), nil
	}
	if !s.overrides.ownerAllowed(actor, b.UserID) {
		return domain.Failed(domain.ErrCodeRescheduleNotAllowed, msgNotOwner), nil
	}
	return domain.Success(), nil
}

// StatusCanBeChangedTo решает, разрешен ли переход бронирования в новый
// статус. Привилегированный актор с привилегированной поверхности минует
// все проверки ниже, включая переход в "выполнено"
func (s *Service) StatusCanBeChangedTo(ctx context.Context, b *domain.Booking, newStatus domain.BookingStatus, actor domain.ActorContext) (domain.Result, error) {
	if !s.registry.IsKnown(newStatus) {
		return domain.Result{}, fmt.Errorf("%w: %q", ErrUnknownStatus, newStatus)
	}
	if b == nil {
		return domain.Failed(domain.ErrCodeBookingNotFound, msgBookingNotFound), nil
	}
	if actor.BypassesCustomerChecks() {
		return domain.Success(), nil
	}

	switch newStatus {
	case domain.StatusCancelled:
		return s.CanBeCancelled(ctx, b, actor)
	case domain.StatusRefunded, domain.StatusRefundRequested:
		return s.CanBeRefunded(ctx, b, actor, "")
	case domain.StatusDelivered:
		return domain.Failed(domain.ErrCodeStatusChangeNotAllowed, msgDeliveredDenied), nil
	}
	return domain.Failed(domain.ErrCodeStatusChangeNotAllowed, msgStatusDenied), nil
}

// GroupStatusCanBeChangedTo решает, разрешен ли переход группы в новый
// статус. Каждый затронутый участник должен пройти проверку отдельно
func (s *Service) GroupStatusCanBeChangedTo(ctx context.Context, group *domain.BookingGroup, members []*domain.Booking, newStatus domain.BookingStatus, actor domain.ActorContext) (domain.Result, error) {
	if !s.registry.IsKnown(newStatus) {
		return domain.Result{}, fmt.Errorf("%w: %q", ErrUnknownStatus, newStatus)
	}
	if group == nil {
		return domain.Failed(domain.ErrCodeGroupNotFound, msgGroupNotFound), nil
	}
	if actor.BypassesCustomerChecks() {
		return domain.Success(), nil
	}

	switch newStatus {
	case domain.StatusCancelled:
		return s.CanGroupBeCancelled(ctx, group, members, actor)
	case domain.StatusRefunded, domain.StatusRefundRequested:
		return s.CanGroupBeRefunded(ctx, group, actor, "")
	case domain.StatusDelivered:
		return domain.Failed(domain.ErrCodeStatusChangeNotAllowed, msgDeliveredDenied), nil
	}
	return domain.Failed(domain.ErrCodeStatusChangeNotAllowed, msgStatusDenied), nil
}

// UserCanBeChanged решает, можно ли переназначить бронирование на
// пользователя с данными ролями: активность может быть ограничена ролью
func (s *Service) UserCanBeChanged(ctx context.Context, b *domain.Booking, newUserRoles []string) (domain.Result, error) {
	if b == nil {
		return domain.Failed(domain.ErrCodeBookingNotFound, msgBookingNotFound), nil
	}
	meta, err := s.meta.GetActivityMeta(ctx, b.ActivityID)
	if err != nil {
		return domain.Result{}, fmt.Errorf("%w: get activity meta %d: %v", ErrInternal, b.ActivityID, err)
	}
	if len(meta.AllowedRoles) == 0 {
		return domain.Success(), nil
	}
	candidate := domain.ActorContext{Roles: newUserRoles}
	if !candidate.HasAnyRole(meta.AllowedRoles) {
		return domain.Failed(domain.ErrCodeUserNotAllowed, msgRoleNotAllowed), nil
	}
	return domain.Success(), nil
}

// Cancel отменяет бронирование: загрузка, решение, запись
func (s *Service) Cancel(ctx context.Context, ref domain.BookingRef, actor domain.ActorContext) (domain.Result, error) {
	b, err := s.ResolveBooking(ctx, ref)
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			return domain.Failed(domain.ErrCodeBookingNotFound, msgBookingNotFound), nil
		}
		return domain.Result{}, err
	}

	result, err := s.CanBeCancelled(ctx, b, actor)
	if err != nil || !result.IsSuccess() {
		return result, err
	}

	if err := s.bookings.UpdateStatus(ctx, b.ID, domain.StatusCancelled, false); err != nil {
		return domain.Result{}, fmt.Errorf("%w: cancel booking %d: %v", ErrInternal, b.ID, err)
	}
	s.log.Info("Booking %d cancelled by user %s", b.ID, actor.User.Key())
	return domain.Success(), nil
}

// CancelGroup отменяет группу и всех её участников
func (s *Service) CancelGroup(ctx context.Context, ref domain.GroupRef, actor domain.ActorContext) (domain.Result, error) {
	group, members, err := s.ResolveGroup(ctx, ref)
	if err != nil {
		if errors.Is(err, ErrGroupNotFound) {
			return domain.Failed(domain.ErrCodeGroupNotFound, msgGroupNotFound), nil
		}
		return domain.Result{}, err
	}

	result, err := s.CanGroupBeCancelled(ctx, group, members, actor)
	if err != nil || !result.IsSuccess() {
		return result, err
	}

	if err := s.bookings.UpdateGroupStatus(ctx, group.ID, domain.StatusCancelled, false); err != nil {
		return domain.Result{}, fmt.Errorf("%w: cancel group %d: %v", ErrInternal, group.ID, err)
	}
	s.log.Info("Booking group %d cancelled by user %s", group.ID, actor.User.Key())
	return domain.Success(), nil
}

// ChangeStatus переводит бронирование в новый статус
func (s *Service) ChangeStatus(ctx context.Context, ref domain.BookingRef, newStatus domain.BookingStatus, actor domain.ActorContext) (domain.Result, error) {
	b, err := s.ResolveBooking(ctx, ref)
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			return domain.Failed(domain.ErrCodeBookingNotFound, msgBookingNotFound), nil
		}
		return domain.Result{}, err
	}

	result, err := s.StatusCanBeChangedTo(ctx, b, newStatus, actor)
	if err != nil || !result.IsSuccess() {
		return result, err
	}

	if b.Status == newStatus {
		return domain.Success(), nil
	}
	if err := s.bookings.UpdateStatus(ctx, b.ID, newStatus, s.registry.IsActive(newStatus)); err != nil {
		return domain.Result{}, fmt.Errorf("%w: update booking %d status: %v", ErrInternal, b.ID, err)
	}
	s.log.Info("Booking %d status changed %s -> %s by user %s", b.ID, b.Status, newStatus, actor.User.Key())
	return domain.Success(), nil
}

// ChangeGroupStatus переводит группу и её участников в новый статус
func (s *Service) ChangeGroupStatus(ctx context.Context, ref domain.GroupRef, newStatus domain.BookingStatus, actor domain.ActorContext) (domain.Result, error) {
	group, members, err := s.ResolveGroup(ctx, ref)
	if err != nil {
		if errors.Is(err, ErrGroupNotFound) {
			return domain.Failed(domain.ErrCodeGroupNotFound, msgGroupNotFound), nil
		}
		return domain.Result{}, err
	}

	result, err := s.GroupStatusCanBeChangedTo(ctx, group, members, newStatus, actor)
	if err != nil || !result.IsSuccess() {
		return result, err
	}

	if group.Status == newStatus {
		return domain.Success(), nil
	}
	if err := s.bookings.UpdateGroupStatus(ctx, group.ID, newStatus, s.registry.IsActive(newStatus)); err != nil {
		return domain.Result{}, fmt.Errorf("%w: update group %d status: %v", ErrInternal, group.ID, err)
	}
	s.log.Info("Booking group %d status changed %s -> %s by user %s", group.ID, group.Status, newStatus, actor.User.Key())
	return domain.Success(), nil
}

// Refund выполняет возврат по бронированию. Для привилегированного
// актора возврат применяется сразу, для клиента создаётся запрос
func (s *Service) Refund(ctx context.Context, ref domain.BookingRef, action string, actor domain.ActorContext) (domain.Result, error) {
	b, err := s.ResolveBooking(ctx, ref)
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			return domain.Failed(domain.ErrCodeBookingNotFound, msgBookingNotFound), nil
		}
		return domain.Result{}, err
	}

	result, err := s.CanBeRefunded(ctx, b, actor, action)
	if err != nil || !result.IsSuccess() {
		return result, err
	}

	newStatus := domain.StatusRefundRequested
	if actor.BypassesCustomerChecks() {
		newStatus = domain.StatusRefunded
	}
	if err := s.bookings.UpdateStatus(ctx, b.ID, newStatus, false); err != nil {
		return domain.Result{}, fmt.Errorf("%w: refund booking %d: %v", ErrInternal, b.ID, err)
	}
	s.log.Info("Booking %d refund (%s) -> %s by user %s", b.ID, action, newStatus, actor.User.Key())
	return domain.Success(), nil
}

// RefundGroup выполняет возврат по группе
func (s *Service) RefundGroup(ctx context.Context, ref domain.GroupRef, action string, actor domain.ActorContext) (domain.Result, error) {
	group, _, err := s.ResolveGroup(ctx, ref)
	if err != nil {
		if errors.Is(err, ErrGroupNotFound) {
			return domain.Failed(domain.ErrCodeGroupNotFound, msgGroupNotFound), nil
		}
		return domain.Result{}, err
	}

	result, err := s.CanGroupBeRefunded(ctx, group, actor, action)
	if err != nil || !result.IsSuccess() {
		return result, err
	}

	newStatus := domain.StatusRefundRequested
	if actor.BypassesCustomerChecks() {
		newStatus = domain.StatusRefunded
	}
	if err := s.bookings.UpdateGroupStatus(ctx, group.ID, newStatus, false); err != nil {
		return domain.Result{}, fmt.Errorf("%w: refund group %d: %v", ErrInternal, group.ID, err)
	}
	s.log.Info("Booking group %d refund (%s) -> %s by user %s", group.ID, action, newStatus, actor.User.Key())
	return domain.Success(), nil
}

func containsAction(actions []string, action string) bool {
	for _, a := range actions {
		if a == action {
			return true
		}
	}
	return false
}
