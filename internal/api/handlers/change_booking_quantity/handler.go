package change_booking_quantity

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/usecase/change_quantity"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidGroupID     = "некорректный ID группы бронирований"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "бронирование не найдено"
	msgGroupNotFound      = "группа бронирований не найдена"
)

type Handler struct {
	useCase ChangeQuantityUseCase
	logger  Logger
}

func NewHandler(useCase ChangeQuantityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/quantity
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/quantity - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}
	h.execute(w, r, &change_quantity.Request{BookingID: bookingID}, "PATCH /bookings/{id}/quantity")
}

// HandleGroup PATCH /api/v1/booking-groups/{groupId}/quantity
func (h *Handler) HandleGroup(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	groupID, err := strconv.ParseInt(vars["groupId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /booking-groups/{id}/quantity - Invalid group ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidGroupID)
		return
	}
	h.execute(w, r, &change_quantity.Request{GroupID: groupID}, "PATCH /booking-groups/{id}/quantity")
}

func (h *Handler) execute(w http.ResponseWriter, r *http.Request, ucReq *change_quantity.Request, route string) {
	var req ChangeQuantityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	ucReq.Quantity = req.Quantity
	ucReq.Actor = middleware.ActorFromContext(r.Context())

	resp, err := h.useCase.Execute(r.Context(), ucReq)
	if err != nil {
		switch {
		case errors.Is(err, change_quantity.ErrBookingNotFound):
			h.logger.Warn("%s - Booking not found: booking_id=%d", route, ucReq.BookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, change_quantity.ErrGroupNotFound):
			h.logger.Warn("%s - Group not found: group_id=%d", route, ucReq.GroupID)
			handlers.RespondNotFound(w, msgGroupNotFound)

		case errors.Is(err, change_quantity.ErrInvalidInput):
			h.logger.Warn("%s - Invalid input: %v", route, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("%s - Failed to change quantity: error=%v", route, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if resp.Result.IsSuccess() {
		handlers.RespondJSON(w, http.StatusOK, resp.Result)
		return
	}
	handlers.RespondJSON(w, http.StatusConflict, resp.Result)
}
