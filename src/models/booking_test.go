package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingTransitions(t *testing.T) {
	allowed := []struct{ from, to BookingStatus }{
		{BookingPending, BookingConfirmed},
		{BookingPending, BookingCancelled},
		{BookingConfirmed, BookingCompleted},
		{BookingConfirmed, BookingCancelled},
	}
	for _, tc := range allowed {
		assert.Truef(t, CanTransition(tc.from, tc.to), "%s -> %s should be allowed", tc.from, tc.to)
	}

	denied := []struct{ from, to BookingStatus }{
		{BookingCompleted, BookingCancelled},
		{BookingCompleted, BookingConfirmed},
		{BookingCompleted, BookingPending},
		{BookingCancelled, BookingPending},
		{BookingCancelled, BookingConfirmed},
		{BookingCancelled, BookingCompleted},
		{BookingPending, BookingCompleted},
		{BookingConfirmed, BookingPending},
	}
	for _, tc := range denied {
		assert.Falsef(t, CanTransition(tc.from, tc.to), "%s -> %s should be rejected", tc.from, tc.to)
	}
}

func TestBookingSameStatusIsNoOp(t *testing.T) {
	for _, s := range []BookingStatus{BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted} {
		assert.Truef(t, CanTransition(s, s), "%s -> %s should be an idempotent no-op", s, s)
	}
}

func TestBookingStatusTerminal(t *testing.T) {
	assert.False(t, BookingPending.Terminal())
	assert.False(t, BookingConfirmed.Terminal())
	assert.True(t, BookingCancelled.Terminal())
	assert.True(t, BookingCompleted.Terminal())
}
