package domain

import "github.com/m04kA/SMC-ReservationService/pkg/types"

// BookingGroup represents an aggregate reservation spanning several event
// occurrences. The group is the unit of mutation: member bookings are not
// cancelled or refunded individually while grouped.
type BookingGroup struct {
	ID           int64
	UserID       UserIdentity
	FormID       int64 // 0 = none, -1 = explicit NULL
	OrderID      int64 // 0 = none, -1 = explicit NULL
	EventGroupID int64 // 0 = none, -1 = explicit NULL
	CategoryID   int64

	GroupDate     types.DateTime
	GroupedEvents []PickedEvent

	Quantity      int
	Status        BookingStatus
	PaymentStatus PaymentStatus

	ExpirationDate types.DateTime
	CreationDate   types.DateTime

	Active bool
}

// PickedEvents resolves the group to the picked events it spans.
// Falls back to the member bookings when the grouped events list is empty.
func (g *BookingGroup) PickedEvents(members []*Booking) []PickedEvent {
	if len(g.GroupedEvents) > 0 {
		picked := make([]PickedEvent, len(g.GroupedEvents))
		for i, e := range g.GroupedEvents {
			e.GroupID = g.EventGroupID
			e.GroupDate = g.GroupDate
			picked[i] = e
		}
		return picked
	}
	picked := make([]PickedEvent, 0, len(members))
	for _, b := range members {
		picked = append(picked, PickedEvent{
			ID:        b.EventID,
			Start:     b.EventStart,
			End:       b.EventEnd,
			GroupID:   g.EventGroupID,
			GroupDate: g.GroupDate,
		})
	}
	return picked
}

// GroupAggregate is the effective state of a group derived from its members
type GroupAggregate struct {
	GroupID  int64
	UserID   UserIdentity
	Quantity int
	Active   bool
	Start    types.DateTime
	End      types.DateTime
}

// AggregateGroupBookings derives the group's effective quantity, owner,
// activity flag and time span from its member bookings.
// Quantity is the maximum member quantity: a group books the same quantity
// on every occurrence, but retired members may have been zeroed.
func AggregateGroupBookings(members []*Booking) GroupAggregate {
	agg := GroupAggregate{}
	for _, b := range members {
		if agg.GroupID == 0 && b.GroupID > 0 {
			agg.GroupID = b.GroupID
		}
		if !agg.UserID.IsKnown() && b.UserID.IsKnown() {
			agg.UserID = b.UserID
		}
		if b.Quantity > agg.Quantity {
			agg.Quantity = b.Quantity
		}
		if b.Active {
			agg.Active = true
		}
		if agg.Start.IsZero() || b.EventStart.Before(agg.Start) {
			agg.Start = b.EventStart
		}
		if agg.End.IsZero() || b.EventEnd.After(agg.End) {
			agg.End = b.EventEnd
		}
	}
	return agg
}
