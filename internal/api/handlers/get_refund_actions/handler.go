package get_refund_actions

import (
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/service/refunds"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgEmptySelection     = "не выбрано ни одного бронирования"
)

type Handler struct {
	service RefundService
	logger  Logger
}

func NewHandler(service RefundService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/refund-actions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req RefundActionsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /refund-actions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if len(req.BookingIDs) == 0 && len(req.GroupIDs) == 0 {
		h.logger.Warn("POST /refund-actions - Empty selection")
		handlers.RespondBadRequest(w, msgEmptySelection)
		return
	}

	actor := middleware.ActorFromContext(r.Context())

	actions := h.service.Resolve(refunds.Selection{
		BookingIDs: req.BookingIDs,
		GroupIDs:   req.GroupIDs,
	}, actor)

	handlers.RespondJSON(w, http.StatusOK, RefundActionsResponse{Actions: actions})
}
