package domain

// Result statuses. Callers branch on Error codes, which are part of the
// public contract and must stay stable.
const (
	ResultSuccess = "success"
	ResultFailed  = "failed"
)

// Stable error codes for policy decisions
const (
	ErrCodeBookingNotFound              = "booking_not_found"
	ErrCodeGroupNotFound                = "booking_group_not_found"
	ErrCodeCancelNotAllowed             = "cancel_not_allowed"
	ErrCodeRefundNotAllowed             = "refund_not_allowed"
	ErrCodeRescheduleNotAllowed         = "reschedule_not_allowed"
	ErrCodeRescheduleToUnknownEvent     = "reschedule_to_unknown_event"
	ErrCodeRescheduleDifferentActivity  = "reschedule_to_different_activity"
	ErrCodeRescheduleNotAllowedActivity = "reschedule_to_not_allowed_activity"
	ErrCodeRescheduleDifferentForm      = "reschedule_to_different_form"
	ErrCodeRescheduleNotAllowedCalendar = "reschedule_to_not_allowed_calendar"
	ErrCodeStatusChangeNotAllowed       = "status_change_not_allowed"
	ErrCodeUserNotAllowed               = "user_not_allowed"
)

// Stable message codes for quantity checks. All violated checks are
// reported together so a UI can show the complete picture.
const (
	MsgQtySupToAvail = "qty_sup_to_avail"
	MsgQtyInfToMin   = "qty_inf_to_min"
	MsgQtySupToMax   = "qty_sup_to_max"
	MsgUsersSupToMax = "users_sup_to_max"
)

// Result is the structured outcome of a policy decision. Business rule
// failures are values, never panics: Status is "failed" with a stable
// Error code and localized Message, or "success".
type Result struct {
	Status  string `json:"status"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// Success returns a neutral success result
func Success() Result {
	return Result{Status: ResultSuccess}
}

// Failed builds a failed result with a stable error code
func Failed(code, message string) Result {
	return Result{Status: ResultFailed, Error: code, Message: message}
}

// IsSuccess reports whether the decision passed
func (r Result) IsSuccess() bool {
	return r.Status == ResultSuccess
}

// QuantityResult is the outcome of a quantity change check. Messages is
// keyed by message code; Availability is set when the availability check
// failed so the caller can render the residual capacity.
type QuantityResult struct {
	Status       string            `json:"status"`
	Messages     map[string]string `json:"messages,omitempty"`
	Availability *int              `json:"availability,omitempty"`
}

// IsSuccess reports whether every quantity check passed
func (r QuantityResult) IsSuccess() bool {
	return r.Status == ResultSuccess
}
