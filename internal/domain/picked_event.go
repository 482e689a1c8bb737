package domain

import "github.com/m04kA/SMC-ReservationService/pkg/types"

// PickedEvent is the resolved (event, occurrence start, occurrence end) tuple
// the capacity math reasons about. It is ephemeral and never persisted.
type PickedEvent struct {
	ID    int64
	Start types.DateTime
	End   types.DateTime

	// GroupID and GroupDate are set when the occurrence was picked as part
	// of an event group
	GroupID   int64
	GroupDate types.DateTime
}

// PickedAvailability is the capacity snapshot of one logical reservation
// unit (a single occurrence, or all occurrences of a group)
type PickedAvailability struct {
	// Availability is the residual capacity of the unit
	Availability int
	// BookingsPerUser is the current active booked quantity per user key
	BookingsPerUser map[string]int
}

// NumberOfUsers returns how many distinct users hold active bookings
func (a PickedAvailability) NumberOfUsers() int {
	return len(a.BookingsPerUser)
}

// QuantityBookedBy returns the active quantity booked by the given user
func (a PickedAvailability) QuantityBookedBy(user UserIdentity) int {
	return a.BookingsPerUser[user.Key()]
}

// UserHasBooked reports whether the user holds any active booking on the unit
func (a PickedAvailability) UserHasBooked(user UserIdentity) bool {
	return a.BookingsPerUser[user.Key()] > 0
}
