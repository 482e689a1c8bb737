package change_booking_quantity

// ChangeQuantityRequest HTTP request model
type ChangeQuantityRequest struct {
	Quantity int `json:"quantity"`
}
