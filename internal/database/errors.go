package database

import (
	"errors"
	"fmt"

	"turfbook/internal/models"
)

// Sentinel errors for business-rule failures. Anything else coming out
// of this package is a wrapped storage error: the caller may retry it,
// unlike the rule violations below.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrTurfNotFound    = errors.New("turf not found")
	ErrSlotNotFound    = errors.New("slot not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrTeamNotFound    = errors.New("team not found")

	ErrSlotTaken         = errors.New("slot already booked")
	ErrAlreadyCancelled  = errors.New("booking already cancelled")
	ErrEmailTaken        = errors.New("email already registered")
	ErrAlreadyTeamMember = errors.New("already a member of this team")

	ErrPastSlotDate       = errors.New("slots can only be created for future dates")
	ErrInvalidTimeRange   = errors.New("invalid slot time range")
	ErrCancelWindowClosed = fmt.Errorf("cannot cancel booking: cancellation allowed only %d minutes before slot time", models.CancelCutoffMinutes)
	ErrNotOwner           = errors.New("turf is not owned by you")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// OverlapError reports an existing booking whose slot intersects the
// requested one. The message names the conflicting window so the
// caller can react without re-querying.
type OverlapError struct {
	Date      string
	StartTime string
	EndTime   string
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("you already have a booking from %s to %s on %s; cannot book overlapping slots",
		e.StartTime, e.EndTime, e.Date)
}
