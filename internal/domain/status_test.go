package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusRegistry_BuiltinVocabulary(t *testing.T) {
	reg := NewStatusRegistry()

	for _, s := range []BookingStatus{
		StatusDelivered, StatusBooked, StatusPending,
		StatusCancelled, StatusRefunded, StatusRefundRequested,
	} {
		assert.True(t, reg.IsKnown(s), "status %s must be known", s)
	}
	assert.False(t, reg.IsKnown(BookingStatus("in_cart")))
}

func TestStatusRegistry_ActiveSet(t *testing.T) {
	reg := NewStatusRegistry()

	assert.True(t, reg.IsActive(StatusDelivered))
	assert.True(t, reg.IsActive(StatusBooked))
	assert.True(t, reg.IsActive(StatusPending))

	assert.False(t, reg.IsActive(StatusCancelled))
	assert.False(t, reg.IsActive(StatusRefunded))
	assert.False(t, reg.IsActive(StatusRefundRequested))
}

func TestStatusRegistry_RegisterExtensionStatus(t *testing.T) {
	reg := NewStatusRegistry()

	reg.RegisterStatus(BookingStatus("in_cart"), true)
	reg.RegisterStatus(BookingStatus("expired"), false)

	assert.True(t, reg.IsKnown(BookingStatus("in_cart")))
	assert.True(t, reg.IsActive(BookingStatus("in_cart")))
	assert.True(t, reg.IsKnown(BookingStatus("expired")))
	assert.False(t, reg.IsActive(BookingStatus("expired")))
}

func TestStatusRegistry_PaymentStatuses(t *testing.T) {
	reg := NewStatusRegistry()

	assert.True(t, reg.IsValidPaymentStatus(PaymentNone))
	assert.True(t, reg.IsValidPaymentStatus(PaymentOwed))
	assert.True(t, reg.IsValidPaymentStatus(PaymentPaid))
	assert.False(t, reg.IsValidPaymentStatus(PaymentStatus("partial")))
}
