package models

import "time"

type Booking struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	SlotID    int64     `json:"slot_id"`
	Status    string    `json:"status"` // pending, confirmed, cancelled
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookingDetail is a booking enriched with its slot and turf.
type BookingDetail struct {
	Booking Booking `json:"booking"`
	Slot    Slot    `json:"slot"`
	Turf    Turf    `json:"turf"`
}

// TurfBooking is the owner-facing view of a booking on their turf,
// including the player's contact details.
type TurfBooking struct {
	Booking Booking `json:"booking"`
	Slot    Slot    `json:"slot"`
	Player  Contact `json:"player"`
}
