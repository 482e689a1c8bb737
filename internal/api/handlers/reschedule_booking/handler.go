package reschedule_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	uc "github.com/m04kA/SMC-ReservationService/internal/usecase/reschedule_booking"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
)

type Handler struct {
	useCase RescheduleUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/reschedule - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req RescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	ucReq := &uc.Request{
		BookingID:  bookingID,
		EventID:    req.EventID,
		EventStart: types.DateTime(req.EventStart),
		EventEnd:   types.DateTime(req.EventEnd),
		Actor:      middleware.ActorFromContext(r.Context()),
	}

	resp, err := h.useCase.Execute(r.Context(), ucReq)
	if err != nil {
		if errors.Is(err, uc.ErrInvalidInput) {
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
		h.logger.Error("PATCH /bookings/{id}/reschedule - Failed to reschedule: booking_id=%d, error=%v",
			bookingID, err)
		handlers.RespondInternalError(w)
		return
	}

	if resp.Result.IsSuccess() {
		h.logger.Info("PATCH /bookings/{id}/reschedule - Booking rescheduled: booking_id=%d, event_id=%d",
			bookingID, req.EventID)
	}
	handlers.RespondResult(w, resp.Result)
}
