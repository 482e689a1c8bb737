package refund_booking

// RefundRequest HTTP request model
type RefundRequest struct {
	Action string `json:"action"`
}
