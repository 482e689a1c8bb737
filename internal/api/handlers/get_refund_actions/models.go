package get_refund_actions

import "github.com/m04kA/SMC-ReservationService/internal/service/refunds"

// RefundActionsRequest HTTP request model
type RefundActionsRequest struct {
	BookingIDs []int64 `json:"bookingIds"`
	GroupIDs   []int64 `json:"bookingGroupIds"`
}

// RefundActionsResponse HTTP response model
type RefundActionsResponse struct {
	Actions []refunds.Action `json:"actions"`
}
