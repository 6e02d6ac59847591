package models

import "time"

type Turf struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	SportType string    `json:"sport_type"`
	OwnerID   int64     `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TurfSearchResult is a turf with its booking-eligible slots and the
// owner's contact details.
type TurfSearchResult struct {
	Turf          Turf    `json:"turf"`
	Owner         Contact `json:"owner"`
	Slots         []*Slot `json:"slots"`
	EligibleSlots int     `json:"eligible_slots"`
}
