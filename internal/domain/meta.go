package domain

import (
	"strconv"
	"strings"
)

// Metadata keys attached to activities and group categories
const (
	MetaMinBookingsPerUser     = "min_bookings_per_user"
	MetaMaxBookingsPerUser     = "max_bookings_per_user"
	MetaMaxUsersPerEvent       = "max_users_per_event"
	MetaBookingChangesDeadline = "booking_changes_deadline"
	MetaRescheduleScope        = "reschedule_scope"
	MetaRescheduleActivityIDs  = "reschedule_activity_ids"
	MetaAllowedRole            = "allowed_role"
)

// ActivityMeta holds the per-activity (or per group-category) settings the
// policy layer consults. Zero-valued limits mean "unlimited".
type ActivityMeta struct {
	MinBookingsPerUser int
	MaxBookingsPerUser int
	MaxUsersPerEvent   int

	// BookingChangesDeadline overrides the global cancellation delay,
	// in seconds. nil = not set, fall back to the global setting.
	BookingChangesDeadline *int64

	RescheduleScope       string
	RescheduleActivityIDs []int64
	AllowedRoles          []string
}

// ParseActivityMeta builds an ActivityMeta from a raw key-value map.
// Malformed or negative values normalize to safe defaults (0 = unlimited,
// nil = global fallback) rather than failing the request.
func ParseActivityMeta(raw map[string]string) ActivityMeta {
	meta := ActivityMeta{
		MinBookingsPerUser: nonNegativeInt(raw[MetaMinBookingsPerUser]),
		MaxBookingsPerUser: nonNegativeInt(raw[MetaMaxBookingsPerUser]),
		MaxUsersPerEvent:   nonNegativeInt(raw[MetaMaxUsersPerEvent]),
		RescheduleScope:    sanitizeRescheduleScope(raw[MetaRescheduleScope]),
	}

	if v, ok := raw[MetaBookingChangesDeadline]; ok {
		if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil && n >= 0 {
			meta.BookingChangesDeadline = &n
		}
	}

	meta.RescheduleActivityIDs = parseIDList(raw[MetaRescheduleActivityIDs])
	meta.AllowedRoles = parseStringList(raw[MetaAllowedRole])

	return meta
}

func nonNegativeInt(v string) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func sanitizeRescheduleScope(v string) string {
	switch strings.TrimSpace(v) {
	case ScopeFormSelf, ScopeFormCustom, ScopeFormAny, ScopeAllSelf, ScopeAllCustom, ScopeAllAny:
		return strings.TrimSpace(v)
	}
	return ""
}

func parseIDList(v string) []int64 {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		if id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64); err == nil && id > 0 {
			ids = append(ids, id)
		}
	}
	return ids
}

func parseStringList(v string) []string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
