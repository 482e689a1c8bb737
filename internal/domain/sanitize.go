package domain

import "github.com/m04kA/SMC-ReservationService/pkg/types"

// RawBooking is an unvalidated booking record as read from storage or an
// external payload, before normalization
type RawBooking struct {
	ID             int64
	UserID         string
	FormID         int64
	OrderID        int64
	GroupID        int64
	ActivityID     int64
	EventID        int64
	EventStart     string
	EventEnd       string
	Quantity       int
	Status         string
	PaymentStatus  string
	ExpirationDate string
	CreationDate   string
	// Active: 0/1, or ActiveUnknown to derive from the status
	Active int
}

// SanitizeBooking normalizes a raw booking record: the owner identity is
// resolved once, unknown statuses fall back to defaults, and the active
// flag is derived from the status registry unless explicitly overridden.
func SanitizeBooking(raw RawBooking, reg *StatusRegistry, defaults Defaults) Booking {
	status := BookingStatus(raw.Status)
	if !reg.IsKnown(status) {
		status = defaults.BookingStatus
	}

	payment := PaymentStatus(raw.PaymentStatus)
	if !reg.IsValidPaymentStatus(payment) {
		payment = defaults.PaymentStatus
	}

	active := raw.Active == 1
	if raw.Active == ActiveUnknown {
		active = reg.IsActive(status)
	}

	return Booking{
		ID:             nonNegativeID(raw.ID),
		UserID:         ParseUserIdentity(raw.UserID),
		FormID:         nullableID(raw.FormID),
		OrderID:        nullableID(raw.OrderID),
		GroupID:        nullableID(raw.GroupID),
		ActivityID:     nonNegativeID(raw.ActivityID),
		EventID:        nonNegativeID(raw.EventID),
		EventStart:     types.SanitizeDateTime(raw.EventStart),
		EventEnd:       types.SanitizeDateTime(raw.EventEnd),
		Quantity:       nonNegativeQuantity(raw.Quantity),
		Status:         status,
		PaymentStatus:  payment,
		ExpirationDate: types.SanitizeDateTime(raw.ExpirationDate),
		CreationDate:   types.SanitizeDateTime(raw.CreationDate),
		Active:         active,
	}
}

// RawBookingGroup is an unvalidated booking group record as read from
// storage, before normalization
type RawBookingGroup struct {
	ID             int64
	UserID         string
	FormID         int64
	OrderID        int64
	EventGroupID   int64
	CategoryID     int64
	GroupDate      string
	Quantity       int
	Status         string
	PaymentStatus  string
	ExpirationDate string
	CreationDate   string
	// Active: 0/1, or ActiveUnknown to derive from the status
	Active int
}

// SanitizeBookingGroup normalizes a raw group record with the same rules
// SanitizeBooking applies to single bookings
func SanitizeBookingGroup(raw RawBookingGroup, reg *StatusRegistry, defaults Defaults) BookingGroup {
	status := BookingStatus(raw.Status)
	if !reg.IsKnown(status) {
		status = defaults.BookingStatus
	}

	payment := PaymentStatus(raw.PaymentStatus)
	if !reg.IsValidPaymentStatus(payment) {
		payment = defaults.PaymentStatus
	}

	active := raw.Active == 1
	if raw.Active == ActiveUnknown {
		active = reg.IsActive(status)
	}

	return BookingGroup{
		ID:             nonNegativeID(raw.ID),
		UserID:         ParseUserIdentity(raw.UserID),
		FormID:         nullableID(raw.FormID),
		OrderID:        nullableID(raw.OrderID),
		EventGroupID:   nullableID(raw.EventGroupID),
		CategoryID:     nonNegativeID(raw.CategoryID),
		GroupDate:      types.SanitizeDateTime(raw.GroupDate),
		Quantity:       nonNegativeQuantity(raw.Quantity),
		Status:         status,
		PaymentStatus:  payment,
		ExpirationDate: types.SanitizeDateTime(raw.ExpirationDate),
		CreationDate:   types.SanitizeDateTime(raw.CreationDate),
		Active:         active,
	}
}

// Defaults are the configured fallback statuses for new or malformed records
type Defaults struct {
	BookingStatus BookingStatus
	PaymentStatus PaymentStatus
}

func nonNegativeID(id int64) int64 {
	if id < 0 {
		return 0
	}
	return id
}

// nullableID keeps the -1 sentinel (explicit NULL) and clamps other negatives
func nullableID(id int64) int64 {
	if id < -1 {
		return 0
	}
	return id
}

func nonNegativeQuantity(q int) int {
	if q < 0 {
		return 0
	}
	return q
}
