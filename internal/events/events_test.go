package events

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus_PublishJSON(t *testing.T) {
	bus := NewEventBus()

	var got BookingEventPayload
	bus.Subscribe(EventBookingCreated, func(event *Event) error {
		return json.Unmarshal(event.Payload, &got)
	})

	payload := BookingEventPayload{
		BookingID: 1,
		UserID:    2,
		SlotID:    3,
		TurfID:    4,
		Date:      "2026-09-16",
		StartTime: "10:00",
		EndTime:   "11:00",
		Status:    "confirmed",
	}
	require.NoError(t, bus.PublishJSON(EventBookingCreated, payload))

	assert.Equal(t, payload, got)
}

func TestEventBus_MultipleSubscribers(t *testing.T) {
	bus := NewEventBus()

	var calls int
	handler := func(*Event) error { calls++; return nil }
	bus.Subscribe(EventSlotPublished, handler)
	bus.Subscribe(EventSlotPublished, handler)

	require.NoError(t, bus.PublishJSON(EventSlotPublished, SlotEventPayload{SlotID: 1}))
	assert.Equal(t, 2, calls)
}

func TestEventBus_NoSubscribers(t *testing.T) {
	bus := NewEventBus()
	assert.NoError(t, bus.PublishJSON(EventBookingCancelled, BookingEventPayload{}))
}

func TestEventBus_TypeIsolation(t *testing.T) {
	bus := NewEventBus()

	var created, cancelled int
	bus.Subscribe(EventBookingCreated, func(*Event) error { created++; return nil })
	bus.Subscribe(EventBookingCancelled, func(*Event) error { cancelled++; return nil })

	require.NoError(t, bus.PublishJSON(EventBookingCreated, BookingEventPayload{}))

	assert.Equal(t, 1, created)
	assert.Zero(t, cancelled)
}

func TestEventBus_NilBus(t *testing.T) {
	var bus *EventBus
	assert.NoError(t, bus.PublishJSON(EventBookingCreated, BookingEventPayload{}))
}
