package domain

// BookingStatus is the lifecycle state of a booking or booking group
type BookingStatus string

// PaymentStatus is the payment state of a booking or booking group
type PaymentStatus string

// Built-in booking statuses. The active set consumes event capacity.
const (
	StatusDelivered       BookingStatus = "delivered"
	StatusBooked          BookingStatus = "booked"
	StatusPending         BookingStatus = "pending"
	StatusCancelled       BookingStatus = "cancelled"
	StatusRefunded        BookingStatus = "refunded"
	StatusRefundRequested BookingStatus = "refund_requested"
)

// Built-in payment statuses
const (
	PaymentNone PaymentStatus = "none"
	PaymentOwed PaymentStatus = "owed"
	PaymentPaid PaymentStatus = "paid"
)

// ActiveStatuses are the statuses that consume event capacity
var ActiveStatuses = []BookingStatus{StatusDelivered, StatusBooked, StatusPending}

// StatusRegistry is the single source of truth for valid statuses and
// which of them count as active. Extensions register additional statuses
// at startup; the registry is not mutated after wiring.
type StatusRegistry struct {
	known   map[BookingStatus]bool
	active  map[BookingStatus]bool
	payment map[PaymentStatus]bool
}

// NewStatusRegistry builds a registry pre-seeded with the built-in vocabulary
func NewStatusRegistry() *StatusRegistry {
	reg := &StatusRegistry{
		known:   make(map[BookingStatus]bool),
		active:  make(map[BookingStatus]bool),
		payment: make(map[PaymentStatus]bool),
	}
	for _, s := range []BookingStatus{
		StatusDelivered, StatusBooked, StatusPending,
		StatusCancelled, StatusRefunded, StatusRefundRequested,
	} {
		reg.known[s] = true
	}
	for _, s := range ActiveStatuses {
		reg.active[s] = true
	}
	for _, p := range []PaymentStatus{PaymentNone, PaymentOwed, PaymentPaid} {
		reg.payment[p] = true
	}
	return reg
}

// RegisterStatus adds an extension status to the vocabulary
func (r *StatusRegistry) RegisterStatus(status BookingStatus, active bool) {
	r.known[status] = true
	if active {
		r.active[status] = true
	}
}

// IsKnown reports whether the status belongs to the vocabulary
func (r *StatusRegistry) IsKnown(status BookingStatus) bool {
	return r.known[status]
}

// IsActive reports whether the status consumes event capacity
func (r *StatusRegistry) IsActive(status BookingStatus) bool {
	return r.active[status]
}

// IsValidPaymentStatus reports whether the payment status is known
func (r *StatusRegistry) IsValidPaymentStatus(status PaymentStatus) bool {
	return r.payment[status]
}
