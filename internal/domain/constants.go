package domain

// Default values applied when settings are missing or malformed
const (
	DefaultBookingStatus   = StatusPending
	DefaultPaymentStatus   = PaymentOwed
	DefaultChangesDeadline = int64(0) // seconds, 0 = changes allowed until the event starts
)

// ActiveUnknown is the sentinel for an Active flag that has not been set
// explicitly and must be derived from the status
const ActiveUnknown = -1

// RoleAll grants a role-restricted activity to every user
const RoleAll = "all"

// UnlimitedAvailability marks a capacity snapshot with no seat limit
const UnlimitedAvailability = -1
