package api

import (
	"net/http"
	"strconv"
)

type createTeamRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

func (s *HTTPServer) handleCreateTeam(w http.ResponseWriter, r *http.Request) {
	var req createTeamRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Name == "" || req.Location == "" {
		writeError(w, http.StatusBadRequest, "name and location are required")
		return
	}

	team, err := s.teams.CreateTeam(r.Context(), req.Name, req.Location, userIDFrom(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "team created",
		"team":    team,
	})
}

func (s *HTTPServer) handleMyTeam(w http.ResponseWriter, r *http.Request) {
	team, err := s.teams.MyTeam(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"team": team})
}

func (s *HTTPServer) handleTeamsByLocation(w http.ResponseWriter, r *http.Request) {
	teams, err := s.teams.TeamsByLocation(r.Context(), r.URL.Query().Get("location"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"teams": teams})
}

func (s *HTTPServer) handleJoinTeam(w http.ResponseWriter, r *http.Request) {
	teamID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || teamID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid team id")
		return
	}

	member, err := s.teams.JoinTeam(r.Context(), teamID, userIDFrom(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "joined team",
		"member":  member,
	})
}
