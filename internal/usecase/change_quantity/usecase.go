package change_quantity

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/booking"
)

// UseCase use case для изменения количества мест бронирования или группы.
// Проверка и запись выполняются в одной сериализуемой транзакции, чтобы
// параллельные изменения не перебронировали событие
type UseCase struct {
	bookings  BookingRepository
	meta      MetaRepository
	capacity  CapacityService
	txManager TransactionManager
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookings BookingRepository,
	meta MetaRepository,
	capacity CapacityService,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookings:  bookings,
		meta:      meta,
		capacity:  capacity,
		txManager: txManager,
		logger:    logger,
	}
}

// Execute выполняет use case изменения количества мест
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ChangeQuantity: validation failed: %v", err)
		return nil, err
	}

	var result domain.QuantityResult
	err := uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		var err error
		if req.BookingID > 0 {
			result, err = uc.changeBookingQuantity(ctx, req)
		} else {
			result, err = uc.changeGroupQuantity(ctx, req)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	return &Response{Result: result}, nil
}

func (uc *UseCase) changeBookingQuantity(ctx context.Context, req *Request) (domain.QuantityResult, error) {
	booking, err := uc.bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("ChangeQuantity: booking id=%d not found", req.BookingID)
			return domain.QuantityResult{}, ErrBookingNotFound
		}
		uc.logger.Error("ChangeQuantity: failed to get booking id=%d: %v", req.BookingID, err)
		return domain.QuantityResult{}, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	meta, err := uc.meta.GetActivityMeta(ctx, booking.ActivityID)
	if err != nil {
		uc.logger.Error("ChangeQuantity: failed to get activity meta id=%d: %v", booking.ActivityID, err)
		return domain.QuantityResult{}, fmt.Errorf("%w: failed to get activity meta: %v", ErrInternal, err)
	}

	snapshot, err := uc.capacity.Evaluate(ctx, booking.PickedEvents())
	if err != nil {
		uc.logger.Error("ChangeQuantity: failed to evaluate availability for booking id=%d: %v", booking.ID, err)
		return domain.QuantityResult{}, fmt.Errorf("%w: failed to evaluate availability: %v", ErrInternal, err)
	}

	result := checkQuantity(booking.Quantity, booking.Active, booking.UserID, req.Quantity, snapshot, meta)
	if !result.IsSuccess() {
		uc.logger.Info("ChangeQuantity: booking id=%d change to %d rejected: %d violation(s)",
			booking.ID, req.Quantity, len(result.Messages))
		return result, nil
	}

	if req.Quantity != booking.Quantity {
		if err := uc.bookings.UpdateQuantity(ctx, booking.ID, req.Quantity); err != nil {
			uc.logger.Error("ChangeQuantity: failed to update booking id=%d: %v", booking.ID, err)
			return domain.QuantityResult{}, fmt.Errorf("%w: failed to update quantity: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("ChangeQuantity: booking id=%d quantity %d -> %d by user %s",
		booking.ID, booking.Quantity, req.Quantity, req.Actor.User.Key())
	return result, nil
}

func (uc *UseCase) changeGroupQuantity(ctx context.Context, req *Request) (domain.QuantityResult, error) {
	group, err := uc.bookings.GetGroupByID(ctx, req.GroupID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrGroupNotFound) {
			uc.logger.Warn("ChangeQuantity: group id=%d not found", req.GroupID)
			return domain.QuantityResult{}, ErrGroupNotFound
		}
		uc.logger.Error("ChangeQuantity: failed to get group id=%d: %v", req.GroupID, err)
		return domain.QuantityResult{}, fmt.Errorf("%w: failed to get group: %v", ErrInternal, err)
	}

	members, err := uc.bookings.GetGroupBookings(ctx, group.ID)
	if err != nil {
		uc.logger.Error("ChangeQuantity: failed to get group members id=%d: %v", group.ID, err)
		return domain.QuantityResult{}, fmt.Errorf("%w: failed to get group members: %v", ErrInternal, err)
	}

	meta := domain.ActivityMeta{}
	if group.CategoryID > 0 {
		meta, err = uc.meta.GetCategoryMeta(ctx, group.CategoryID)
		if err != nil {
			uc.logger.Error("ChangeQuantity: failed to get category meta id=%d: %v", group.CategoryID, err)
			return domain.QuantityResult{}, fmt.Errorf("%w: failed to get category meta: %v", ErrInternal, err)
		}
	}

	snapshot, err := uc.capacity.Evaluate(ctx, group.PickedEvents(members))
	if err != nil {
		uc.logger.Error("ChangeQuantity: failed to evaluate availability for group id=%d: %v", group.ID, err)
		return domain.QuantityResult{}, fmt.Errorf("%w: failed to evaluate availability: %v", ErrInternal, err)
	}

	agg := domain.AggregateGroupBookings(members)
	result := checkQuantity(agg.Quantity, agg.Active, group.UserID, req.Quantity, snapshot, meta)
	if !result.IsSuccess() {
		uc.logger.Info("ChangeQuantity: group id=%d change to %d rejected: %d violation(s)",
			group.ID, req.Quantity, len(result.Messages))
		return result, nil
	}

	if req.Quantity != agg.Quantity {
		if err := uc.bookings.UpdateGroupQuantity(ctx, group.ID, req.Quantity); err != nil {
			uc.logger.Error("ChangeQuantity: failed to update group id=%d: %v", group.ID, err)
			return domain.QuantityResult{}, fmt.Errorf("%w: failed to update group quantity: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("ChangeQuantity: group id=%d quantity %d -> %d by user %s",
		group.ID, agg.Quantity, req.Quantity, req.Actor.User.Key())
	return result, nil
}
