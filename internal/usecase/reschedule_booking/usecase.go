package reschedule_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/booking"
	eventRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/event"
)

// UseCase use case для переноса бронирования на другое вхождение события.
// Проверки и запись выполняются в одной сериализуемой транзакции
type UseCase struct {
	bookings   BookingRepository
	events     EventRepository
	meta       MetaRepository
	policy     PolicyService
	formClient FormServiceClient
	txManager  TransactionManager
	settings   domain.PolicySettings
	logger     Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookings BookingRepository,
	events EventRepository,
	meta MetaRepository,
	policy PolicyService,
	formClient FormServiceClient,
	txManager TransactionManager,
	settings domain.PolicySettings,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookings:   bookings,
		events:     events,
		meta:       meta,
		policy:     policy,
		formClient: formClient,
		txManager:  txManager,
		settings:   settings,
		logger:     logger,
	}
}

// Execute выполняет use case переноса бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	var result domain.Result
	err := uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		var err error
		result, err = uc.reschedule(ctx, req)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &Response{Result: result}, nil
}

func (uc *UseCase) reschedule(ctx context.Context, req *Request) (domain.Result, error) {
	booking, err := uc.bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("RescheduleBooking: booking id=%d not found", req.BookingID)
			return domain.Failed(domain.ErrCodeBookingNotFound, "Бронирование не найдено"), nil
		}
		uc.logger.Error("RescheduleBooking: failed to get booking id=%d: %v", req.BookingID, err)
		return domain.Result{}, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	result, err := uc.policy.CanReschedule(ctx, booking, req.Actor)
	if err != nil {
		uc.logger.Error("RescheduleBooking: eligibility check failed for booking id=%d: %v", booking.ID, err)
		return domain.Result{}, fmt.Errorf("%w: eligibility check: %v", ErrInternal, err)
	}
	if !result.IsSuccess() {
		uc.logger.Info("RescheduleBooking: booking id=%d rejected: %s", booking.ID, result.Error)
		return result, nil
	}

	dest, err := uc.events.GetByID(ctx, req.EventID)
	if err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			uc.logger.Warn("RescheduleBooking: target event id=%d not found", req.EventID)
			return domain.Failed(domain.ErrCodeRescheduleToUnknownEvent, msgUnknownEvent), nil
		}
		uc.logger.Error("RescheduleBooking: failed to get event id=%d: %v", req.EventID, err)
		return domain.Result{}, fmt.Errorf("%w: failed to get event: %v", ErrInternal, err)
	}

	meta, err := uc.meta.GetActivityMeta(ctx, booking.ActivityID)
	if err != nil {
		uc.logger.Error("RescheduleBooking: failed to get activity meta id=%d: %v", booking.ActivityID, err)
		return domain.Result{}, fmt.Errorf("%w: failed to get activity meta: %v", ErrInternal, err)
	}

	picked := domain.PickedEvent{
		ID:    req.EventID,
		Start: req.EventStart,
		End:   req.EventEnd,
	}
	scope := uc.resolveScope(meta, req.Actor)

	result, err = uc.checkDestination(ctx, booking, dest, picked, scope, meta, req.Actor)
	if err != nil {
		return domain.Result{}, err
	}
	if !result.IsSuccess() {
		uc.logger.Info("RescheduleBooking: booking id=%d destination event=%d rejected: %s",
			booking.ID, req.EventID, result.Error)
		return result, nil
	}

	if err := uc.bookings.Reschedule(ctx, booking.ID, req.EventID, req.EventStart, req.EventEnd); err != nil {
		uc.logger.Error("RescheduleBooking: failed to move booking id=%d: %v", booking.ID, err)
		return domain.Result{}, fmt.Errorf("%w: failed to move booking: %v", ErrInternal, err)
	}

	uc.logger.Info("RescheduleBooking: booking id=%d moved to event=%d start=%s (scope=%s)",
		booking.ID, req.EventID, req.EventStart, scope)
	return domain.Success(), nil
}
