package models

import (
	"fmt"
	"time"
)

// Slot is a bookable time window on a turf for one calendar date.
// Date is stored as YYYY-MM-DD, times as HH:MM; the interval is
// half-open, so a slot ending at 11:00 does not touch one starting
// at 11:00.
type Slot struct {
	ID        int64     `json:"id"`
	TurfID    int64     `json:"turf_id"`
	Date      string    `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	IsBooked  bool      `json:"is_booked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TimeRange renders the slot window for user-facing messages.
func (s *Slot) TimeRange() string {
	return fmt.Sprintf("%s to %s on %s", s.StartTime, s.EndTime, s.Date)
}

// SlotWithState is an owner-facing slot view with the derived state:
// booked, expired or available. Expired is computed at read time and
// never persisted.
type SlotWithState struct {
	Slot
	State string `json:"state"`
}
