package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"turfbook/internal/auth"
	"turfbook/internal/config"
	"turfbook/internal/domain"
	"turfbook/internal/models"

	"github.com/rs/zerolog"
)

// HTTPServer exposes the booking API.
type HTTPServer struct {
	cfg      config.ServerConfig
	logger   *zerolog.Logger
	users    domain.UserService
	turfs    domain.TurfService
	bookings domain.BookingService
	teams    domain.TeamService
	tokens   *auth.Manager
	state    domain.StateRepository
	limiter  *userLimiter
	server   *http.Server
}

type Services struct {
	Users    domain.UserService
	Turfs    domain.TurfService
	Bookings domain.BookingService
	Teams    domain.TeamService
}

func NewHTTPServer(cfg config.ServerConfig, svc Services, tokens *auth.Manager, state domain.StateRepository, logger *zerolog.Logger) *HTTPServer {
	s := &HTTPServer{
		cfg:      cfg,
		logger:   logger,
		users:    svc.Users,
		turfs:    svc.Turfs,
		bookings: svc.Bookings,
		teams:    svc.Teams,
		tokens:   tokens,
		state:    state,
		limiter:  newUserLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
	}

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/v1/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/v1/auth/logout", s.requireAuth(s.handleLogout))

	mux.HandleFunc("GET /api/v1/turfs/search", s.handleSearchTurfs)
	mux.HandleFunc("GET /api/v1/turfs/{id}/slots", s.handleListSlots)
	mux.HandleFunc("POST /api/v1/turfs/{id}/slots", s.requireRole(models.RoleTurfOwner, s.handleAddSlot))
	mux.HandleFunc("GET /api/v1/turfs/my-turf", s.requireRole(models.RoleTurfOwner, s.handleMyTurf))
	mux.HandleFunc("GET /api/v1/turfs/my-slots", s.requireRole(models.RoleTurfOwner, s.handleMySlots))
	mux.HandleFunc("GET /api/v1/turfs/{id}/bookings", s.requireRole(models.RoleTurfOwner, s.handleTurfBookings))
	mux.HandleFunc("GET /api/v1/turfs/{id}/bookings/export", s.requireRole(models.RoleTurfOwner, s.handleExportBookings))

	mux.HandleFunc("POST /api/v1/bookings", s.requireRole(models.RolePlayer, s.handleCreateBooking))
	mux.HandleFunc("GET /api/v1/bookings", s.requireAuth(s.handleListBookings))
	mux.HandleFunc("PUT /api/v1/bookings/{id}/cancel", s.requireRole(models.RolePlayer, s.handleCancelBooking))

	mux.HandleFunc("POST /api/v1/teams", s.requireRole(models.RolePlayer, s.handleCreateTeam))
	mux.HandleFunc("GET /api/v1/teams/my-team", s.requireRole(models.RolePlayer, s.handleMyTeam))
	mux.HandleFunc("GET /api/v1/teams", s.handleTeamsByLocation)
	mux.HandleFunc("POST /api/v1/teams/{id}/join", s.requireRole(models.RolePlayer, s.handleJoinTeam))

	mux.HandleFunc("GET /healthz", s.handleHealthz)

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.loggingMiddleware(mux),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	return s
}

func (s *HTTPServer) Handler() http.Handler { return s.server.Handler }

func (s *HTTPServer) Start() error {
	s.logger.Info().Str("addr", s.server.Addr).Msg("http api listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *HTTPServer) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
