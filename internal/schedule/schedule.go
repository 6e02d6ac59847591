// Package schedule holds the pure time logic of the booking flow:
// interval overlap, slot expiry classification and the cancellation
// window. Nothing here touches the store.
package schedule

import (
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Overlaps reports whether two half-open time ranges on the same date
// intersect. Times are HH:MM strings, for which lexicographic order
// matches chronological order. Touching endpoints do not count as
// overlap, so 10:00-11:00 and 11:00-12:00 are disjoint while equal
// ranges always overlap.
func Overlaps(startA, endA, startB, endB string) bool {
	return startA < endB && startB < endA
}

// ValidRange reports whether start and end parse as HH:MM and start
// is strictly before end.
func ValidRange(start, end string) bool {
	if _, err := time.Parse(TimeLayout, start); err != nil {
		return false
	}
	if _, err := time.Parse(TimeLayout, end); err != nil {
		return false
	}
	return start < end
}

// ValidDate reports whether date parses as YYYY-MM-DD.
func ValidDate(date string) bool {
	_, err := time.Parse(DateLayout, date)
	return err == nil
}

// FutureDate reports whether date is strictly after now's calendar
// date. Same-day dates are not future.
func FutureDate(date string, now time.Time) bool {
	return date > now.Format(DateLayout)
}

// Expired classifies a slot as passed: its date is before today, or it
// is today and the start time is at or before the current time. The
// classification is read-time only and independent of the booked flag.
func Expired(date, startTime string, now time.Time) bool {
	today := now.Format(DateLayout)
	if date < today {
		return true
	}
	return date == today && startTime <= now.Format(TimeLayout)
}

// SlotStart combines a slot's date and start time into a point in time
// in the given location.
func SlotStart(date, startTime string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+TimeLayout, date+" "+startTime, loc)
}

// CancelAllowed reports whether a cancellation at now is early enough:
// strictly more than cutoffMinutes must remain before slotStart.
// Exactly at the cutoff the cancellation is rejected.
func CancelAllowed(now, slotStart time.Time, cutoffMinutes int) bool {
	return slotStart.Sub(now) > time.Duration(cutoffMinutes)*time.Minute
}
