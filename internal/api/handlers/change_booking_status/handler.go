package change_booking_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/policy"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidGroupID     = "некорректный ID группы бронирований"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnknownStatus      = "неизвестный статус бронирования"
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

// Handle PATCH /api/v1/bookings/{bookingId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req ChangeStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	actor := middleware.ActorFromContext(r.Context())

	result, err := h.service.ChangeStatus(r.Context(), domain.ByID(bookingID), domain.BookingStatus(req.Status), actor)
	if err != nil {
		if errors.Is(err, policy.ErrUnknownStatus) {
			h.logger.Warn("PATCH /bookings/{id}/status - Unknown status %q: booking_id=%d", req.Status, bookingID)
			handlers.RespondBadRequest(w, msgUnknownStatus)
			return
		}
		h.logger.Error("PATCH /bookings/{id}/status - Failed to change status: booking_id=%d, error=%v",
			bookingID, err)
		handlers.RespondInternalError(w)
		return
	}

	if result.IsSuccess() {
		h.logger.Info("PATCH /bookings/{id}/status - Status changed: booking_id=%d, status=%s, user=%s",
			bookingID, req.Status, actor.User.Key())
	}
	handlers.RespondResult(w, result)
}

// HandleGroup PATCH /api/v1/booking-groups/{groupId}/status
func (h *Handler) HandleGroup(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	groupID, err := strconv.ParseInt(vars["groupId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /booking-groups/{id}/status - Invalid group ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidGroupID)
		return
	}

	var req ChangeStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /booking-groups/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	actor := middleware.ActorFromContext(r.Context())

	result, err := h.service.ChangeGroupStatus(r.Context(), domain.GroupByID(groupID), domain.BookingStatus(req.Status), actor)
	if err != nil {
		if errors.Is(err, policy.ErrUnknownStatus) {
			h.logger.Warn("PATCH /booking-groups/{id}/status - Unknown status %q: group_id=%d", req.Status, groupID)
			handlers.RespondBadRequest(w, msgUnknownStatus)
			return
		}
		h.logger.Error("PATCH /booking-groups/{id}/status - Failed to change status: group_id=%d, error=%v",
			groupID, err)
		handlers.RespondInternalError(w)
		return
	}

	if result.IsSuccess() {
		h.logger.Info("PATCH /booking-groups/{id}/status - Status changed: group_id=%d, status=%s, user=%s",
			groupID, req.Status, actor.User.Key())
	}
	handlers.RespondResult(w, result)
}
