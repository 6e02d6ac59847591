package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"turfbook/internal/database"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeServiceError maps business-rule errors onto HTTP statuses.
// Anything unrecognized is a storage or transport failure: the caller
// may retry it, so it surfaces as a 500 without the internal detail.
func writeServiceError(w http.ResponseWriter, err error) {
	var overlapErr *database.OverlapError

	switch {
	case errors.Is(err, database.ErrUserNotFound),
		errors.Is(err, database.ErrTurfNotFound),
		errors.Is(err, database.ErrSlotNotFound),
		errors.Is(err, database.ErrBookingNotFound),
		errors.Is(err, database.ErrTeamNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, database.ErrSlotTaken),
		errors.Is(err, database.ErrAlreadyCancelled),
		errors.Is(err, database.ErrCancelWindowClosed),
		errors.Is(err, database.ErrEmailTaken),
		errors.Is(err, database.ErrAlreadyTeamMember):
		writeError(w, http.StatusConflict, err.Error())
	case errors.As(err, &overlapErr):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, database.ErrNotOwner):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, database.ErrPastSlotDate),
		errors.Is(err, database.ErrInvalidTimeRange):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, database.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}
