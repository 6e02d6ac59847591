package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegister_Idempotent(t *testing.T) {
	assert.NotPanics(t, func() {
		Register()
		Register()
	})
}

func TestCounters(t *testing.T) {
	Register()

	assert.NotPanics(t, func() {
		IncHTTP("bookings")
		IncBookingCreated()
		IncBookingConflict("slot_taken")
		IncBookingCancelled()
		IncSlotPublished()
	})
}
