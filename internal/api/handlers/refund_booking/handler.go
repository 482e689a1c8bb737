package refund_booking

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidGroupID     = "некорректный ID группы бронирований"
	msgInvalidRequestBody = "некорректное тело запроса"
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

// Handle POST /api/v1/bookings/{bookingId}/refund
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/refund - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req RefundRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/refund - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	actor := middleware.ActorFromContext(r.Context())

	result, err := h.service.Refund(r.Context(), domain.ByID(bookingID), req.Action, actor)
	if err != nil {
		h.logger.Error("POST /bookings/{id}/refund - Failed to refund booking: booking_id=%d, error=%v",
			bookingID, err)
		handlers.RespondInternalError(w)
		return
	}

	if result.IsSuccess() {
		h.logger.Info("POST /bookings/{id}/refund - Refund processed: booking_id=%d, action=%s, user=%s",
			bookingID, req.Action, actor.User.Key())
	}
	handlers.RespondResult(w, result)
}

// HandleGroup POST /api/v1/booking-groups/{groupId}/refund
func (h *Handler) HandleGroup(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	groupID, err := strconv.ParseInt(vars["groupId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /booking-groups/{id}/refund - Invalid group ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidGroupID)
		return
	}

	var req RefundRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /booking-groups/{id}/refund - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	actor := middleware.ActorFromContext(r.Context())

	result, err := h.service.RefundGroup(r.Context(), domain.GroupByID(groupID), req.Action, actor)
	if err != nil {
		h.logger.Error("POST /booking-groups/{id}/refund - Failed to refund group: group_id=%d, error=%v",
			groupID, err)
		handlers.RespondInternalError(w)
		return
	}

	if result.IsSuccess() {
		h.logger.Info("POST /booking-groups/{id}/refund - Refund processed: group_id=%d, action=%s, user=%s",
			groupID, req.Action, actor.User.Key())
	}
	handlers.RespondResult(w, result)
}
