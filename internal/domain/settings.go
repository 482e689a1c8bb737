package domain

// PolicySettings are the global booking-change settings. They are loaded
// once at startup and injected into the policy layer; per-activity and
// per-category metadata may override the deadline.
type PolicySettings struct {
	// AllowCustomersToCancel enables frontend cancellation
	AllowCustomersToCancel bool
	// AllowCustomersToReschedule enables frontend rescheduling
	AllowCustomersToReschedule bool
	// BookingChangesDeadline is the global change deadline in seconds
	// before the event start. Negative values normalize to 0.
	BookingChangesDeadline int64
	// AdminRescheduleScope is the reschedule scope granted to elevated
	// actors; the widest of this and the activity scope applies
	AdminRescheduleScope string
	// RefundActionsAfterCancellation is the list of refund mechanisms
	// customers may use after cancelling
	RefundActionsAfterCancellation []string

	Defaults Defaults
}

// Sanitized returns a copy with malformed values normalized to safe defaults
func (s PolicySettings) Sanitized() PolicySettings {
	if s.BookingChangesDeadline < 0 {
		s.BookingChangesDeadline = DefaultChangesDeadline
	}
	if sanitizeRescheduleScope(s.AdminRescheduleScope) == "" {
		s.AdminRescheduleScope = DefaultScopeElevated
	}
	if s.Defaults.BookingStatus == "" {
		s.Defaults.BookingStatus = DefaultBookingStatus
	}
	if s.Defaults.PaymentStatus == "" {
		s.Defaults.PaymentStatus = DefaultPaymentStatus
	}
	return s
}

// ActorContext identifies who performs an operation and from which surface
type ActorContext struct {
	// User is the acting user's identity
	User UserIdentity
	// Roles are the acting user's roles, used for role-restricted activities
	Roles []string
	// IsElevated is true when the actor holds the manage-bookings privilege
	IsElevated bool
	// IsFrontend is true when the call originates from a customer-facing
	// surface; elevated actors acting frontend follow customer rules
	IsFrontend bool
}

// BypassesCustomerChecks reports whether customer-facing rules are skipped
func (a ActorContext) BypassesCustomerChecks() bool {
	return a.IsElevated && !a.IsFrontend
}

// HasAnyRole reports whether the actor holds at least one of the given roles
func (a ActorContext) HasAnyRole(roles []string) bool {
	for _, allowed := range roles {
		if allowed == RoleAll {
			return true
		}
		for _, r := range a.Roles {
			if r == allowed {
				return true
			}
		}
	}
	return false
}
