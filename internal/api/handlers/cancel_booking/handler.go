package cancel_booking

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgInvalidGroupID   = "некорректный ID группы бронирований"
)

type Handler struct {
	service PolicyService
	logger  Logger
}

func NewHandler(service PolicyService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor := middleware.ActorFromContext(r.Context())

	result, err := h.service.Cancel(r.Context(), domain.ByID(bookingID), actor)
	if err != nil {
		h.logger.Error("PATCH /bookings/{id}/cancel - Failed to cancel booking: booking_id=%d, error=%v",
			bookingID, err)
		handlers.RespondInternalError(w)
		return
	}

	if result.IsSuccess() {
		h.logger.Info("PATCH /bookings/{id}/cancel - Booking cancelled: booking_id=%d, user=%s",
			bookingID, actor.User.Key())
	}
	handlers.RespondResult(w, result)
}

// HandleGroup PATCH /api/v1/booking-groups/{groupId}/cancel
func (h *Handler) HandleGroup(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	groupID, err := strconv.ParseInt(vars["groupId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /booking-groups/{id}/cancel - Invalid group ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidGroupID)
		return
	}

	actor := middleware.ActorFromContext(r.Context())

	result, err := h.service.CancelGroup(r.Context(), domain.GroupByID(groupID), actor)
	if err != nil {
		h.logger.Error("PATCH /booking-groups/{id}/cancel - Failed to cancel group: group_id=%d, error=%v",
			groupID, err)
		handlers.RespondInternalError(w)
		return
	}

	if result.IsSuccess() {
		h.logger.Info("PATCH /booking-groups/{id}/cancel - Group cancelled: group_id=%d, user=%s",
			groupID, actor.User.Key())
	}
	handlers.RespondResult(w, result)
}
