package api

import (
	"fmt"
	"net/http"
	"strconv"

	"turfbook/internal/export"
)

func (s *HTTPServer) handleSearchTurfs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	results, err := s.turfs.SearchTurfs(r.Context(), q.Get("location"), q.Get("sport_type"), q.Get("date"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"turfs": results})
}

func (s *HTTPServer) handleListSlots(w http.ResponseWriter, r *http.Request) {
	turfID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || turfID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid turf id")
		return
	}

	slots, err := s.turfs.ListAvailableSlots(r.Context(), turfID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"slots": slots})
}

type addSlotRequest struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func (s *HTTPServer) handleAddSlot(w http.ResponseWriter, r *http.Request) {
	turfID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || turfID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid turf id")
		return
	}

	var req addSlotRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Date == "" || req.StartTime == "" || req.EndTime == "" {
		writeError(w, http.StatusBadRequest, "date, start_time and end_time are required")
		return
	}

	slot, err := s.turfs.AddSlot(r.Context(), turfID, userIDFrom(r.Context()), req.Date, req.StartTime, req.EndTime)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "slot added",
		"slot":    slot,
	})
}

func (s *HTTPServer) handleMyTurf(w http.ResponseWriter, r *http.Request) {
	turf, err := s.turfs.MyTurf(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"turf": turf})
}

func (s *HTTPServer) handleMySlots(w http.ResponseWriter, r *http.Request) {
	slots, err := s.turfs.ListOwnerSlots(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"slots": slots})
}

func (s *HTTPServer) handleTurfBookings(w http.ResponseWriter, r *http.Request) {
	turfID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || turfID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid turf id")
		return
	}

	bookings, err := s.turfs.ListTurfBookings(r.Context(), turfID, userIDFrom(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"bookings": bookings})
}

func (s *HTTPServer) handleExportBookings(w http.ResponseWriter, r *http.Request) {
	turfID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || turfID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid turf id")
		return
	}

	turf, err := s.turfs.MyTurf(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	bookings, err := s.turfs.ListTurfBookings(r.Context(), turfID, userIDFrom(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	file, err := export.BookingsWorkbook(turf.Name, bookings)
	if err != nil {
		s.logger.Error().Err(err).Int64("turf_id", turfID).Msg("build export workbook")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(turf.Name)))
	if err := file.Write(w); err != nil {
		s.logger.Error().Err(err).Int64("turf_id", turfID).Msg("stream export workbook")
	}
}
