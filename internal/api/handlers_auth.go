package api

import (
	"fmt"
	"net/http"
	"time"

	"turfbook/internal/domain"
	"turfbook/internal/models"
)

type registerRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	Phone     string `json:"phone"`
	TurfName  string `json:"turf_name"`
	Location  string `json:"location"`
	SportType string `json:"sport_type"`
}

func (s *HTTPServer) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "name, email and password are required")
		return
	}
	switch req.Role {
	case "", models.RolePlayer, models.RoleTurfOwner:
	default:
		writeError(w, http.StatusBadRequest, "invalid role")
		return
	}

	user, err := s.users.Register(r.Context(), domain.RegisterInput{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		Role:      req.Role,
		Phone:     req.Phone,
		TurfName:  req.TurfName,
		Location:  req.Location,
		SportType: req.SportType,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "user registered successfully",
		"token":   token,
		"user":    user,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	// Brute-force guard on the login identity, shared across replicas
	// through the state repository.
	key := fmt.Sprintf("login:%s", req.Email)
	window := time.Duration(s.cfg.RateLimitWindow) * time.Second
	if ok, err := s.state.CheckRateLimit(r.Context(), key, s.cfg.RateLimitRequests, window); err == nil && !ok {
		writeError(w, http.StatusTooManyRequests, "too many login attempts")
		return
	}

	user, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "login successful",
		"token":   token,
		"user":    user,
	})
}

func (s *HTTPServer) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := tokenFrom(r.Context())
	if err := s.state.RevokeToken(r.Context(), token, s.tokens.TTL()); err != nil {
		s.logger.Warn().Err(err).Msg("revoke token failed")
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}
