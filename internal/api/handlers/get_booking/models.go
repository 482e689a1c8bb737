package get_booking

import "github.com/m04kA/SMC-ReservationService/internal/domain"

// BookingResponse HTTP response model
type BookingResponse struct {
	ID             int64  `json:"id"`
	UserID         string `json:"userId"`
	FormID         int64  `json:"formId,omitempty"`
	OrderID        int64  `json:"orderId,omitempty"`
	GroupID        int64  `json:"groupId,omitempty"`
	ActivityID     int64  `json:"activityId"`
	EventID        int64  `json:"eventId"`
	EventStart     string `json:"eventStart"`
	EventEnd       string `json:"eventEnd"`
	Quantity       int    `json:"quantity"`
	Status         string `json:"status"`
	PaymentStatus  string `json:"paymentStatus"`
	ExpirationDate string `json:"expirationDate,omitempty"`
	CreationDate   string `json:"creationDate,omitempty"`
	Active         bool   `json:"active"`
}

// FromDomain конвертирует доменную модель в HTTP response
func FromDomain(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:             b.ID,
		UserID:         b.UserID.Key(),
		FormID:         b.FormID,
		OrderID:        b.OrderID,
		GroupID:        b.GroupID,
		ActivityID:     b.ActivityID,
		EventID:        b.EventID,
		EventStart:     b.EventStart.String(),
		EventEnd:       b.EventEnd.String(),
		Quantity:       b.Quantity,
		Status:         string(b.Status),
		PaymentStatus:  string(b.PaymentStatus),
		ExpirationDate: b.ExpirationDate.String(),
		CreationDate:   b.CreationDate.String(),
		Active:         b.Active,
	}
}
