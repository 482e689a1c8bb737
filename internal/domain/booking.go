package domain

import (
	"strconv"
	"strings"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// UserIdentityKind discriminates the three ways a booking owner can be identified
type UserIdentityKind int

const (
	// UserUnknown is the sentinel for bookings without a resolvable owner
	UserUnknown UserIdentityKind = iota
	// UserAccount is a numeric account id
	UserAccount
	// UserEmail is an accountless booking identified by email
	UserEmail
)

// UserIdentity is the owner of a booking: a numeric account, an email for
// accountless bookings, or unknown. It is resolved once during sanitation
// and never re-derived at use sites.
type UserIdentity struct {
	Kind      UserIdentityKind
	AccountID int64
	Email     string
}

// AccountIdentity builds an account-backed identity
func AccountIdentity(id int64) UserIdentity {
	return UserIdentity{Kind: UserAccount, AccountID: id}
}

// EmailIdentity builds an email-backed identity
func EmailIdentity(email string) UserIdentity {
	return UserIdentity{Kind: UserEmail, Email: email}
}

// ParseUserIdentity resolves a raw user id value: numeric account id first,
// then email, otherwise unknown
func ParseUserIdentity(raw string) UserIdentity {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return UserIdentity{Kind: UserUnknown}
	}
	if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
		return AccountIdentity(id)
	}
	if at := strings.Index(raw, "@"); at > 0 && at < len(raw)-1 && !strings.ContainsAny(raw, " \t") {
		return EmailIdentity(raw)
	}
	return UserIdentity{Kind: UserUnknown}
}

// Key returns a stable map key for per-user capacity accounting
func (u UserIdentity) Key() string {
	switch u.Kind {
	case UserAccount:
		return strconv.FormatInt(u.AccountID, 10)
	case UserEmail:
		return u.Email
	}
	return ""
}

// IsKnown reports whether the identity resolves to an account or an email
func (u UserIdentity) IsKnown() bool {
	return u.Kind != UserUnknown
}

// Equal reports whether two identities refer to the same user
func (u UserIdentity) Equal(other UserIdentity) bool {
	return u.IsKnown() && u.Kind == other.Kind && u.Key() == other.Key()
}

// Booking represents a single reservation of an event occurrence
type Booking struct {
	ID         int64
	UserID     UserIdentity
	FormID     int64 // 0 = none, -1 = explicit NULL
	OrderID    int64 // 0 = none, -1 = explicit NULL
	GroupID    int64 // 0 = none, -1 = explicit NULL
	ActivityID int64
	EventID    int64

	EventStart types.DateTime
	EventEnd   types.DateTime

	Quantity      int
	Status        BookingStatus
	PaymentStatus PaymentStatus

	// ExpirationDate is only set while the booking is a cart/pending placeholder
	ExpirationDate types.DateTime
	CreationDate   types.DateTime

	// Active caches whether the status consumes capacity on the event
	// occurrence. Derived from the status unless explicitly overridden.
	Active bool
}

// IsGrouped reports whether the booking belongs to a booking group
func (b *Booking) IsGrouped() bool {
	return b.GroupID > 0
}

// PickedEvents resolves the booking to the picked events it occupies
func (b *Booking) PickedEvents() []PickedEvent {
	return []PickedEvent{{
		ID:    b.EventID,
		Start: b.EventStart,
		End:   b.EventEnd,
	}}
}
