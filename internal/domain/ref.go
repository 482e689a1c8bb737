package domain

// BookingRef refers to a booking either by id or as an already loaded
// record. Public operations resolve it once at the boundary, so internal
// logic always works on a loaded, validated booking.
type BookingRef struct {
	id     int64
	loaded *Booking
}

// ByID builds a reference resolved later through the repository
func ByID(id int64) BookingRef {
	return BookingRef{id: id}
}

// Loaded wraps an already loaded booking
func Loaded(b *Booking) BookingRef {
	return BookingRef{loaded: b}
}

// ID returns the referenced booking id
func (r BookingRef) ID() int64 {
	if r.loaded != nil {
		return r.loaded.ID
	}
	return r.id
}

// Booking returns the loaded record, or nil when the reference is by id
func (r BookingRef) Booking() *Booking {
	return r.loaded
}

// GroupRef refers to a booking group by id or as a loaded record with its
// member bookings
type GroupRef struct {
	id      int64
	loaded  *BookingGroup
	members []*Booking
}

// GroupByID builds a group reference resolved later through the repository
func GroupByID(id int64) GroupRef {
	return GroupRef{id: id}
}

// LoadedGroup wraps an already loaded group and its members
func LoadedGroup(g *BookingGroup, members []*Booking) GroupRef {
	return GroupRef{loaded: g, members: members}
}

// ID returns the referenced group id
func (r GroupRef) ID() int64 {
	if r.loaded != nil {
		return r.loaded.ID
	}
	return r.id
}

// Group returns the loaded record, or nil when the reference is by id
func (r GroupRef) Group() *BookingGroup {
	return r.loaded
}

// Members returns the loaded member bookings
func (r GroupRef) Members() []*Booking {
	return r.members
}
