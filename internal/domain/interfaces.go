package domain

import (
	"context"
	"time"

	"turfbook/internal/models"
)

// Repository is the store contract the services run against. The
// sqlite implementation lives in internal/database.
type Repository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)

	CreateTurf(ctx context.Context, turf *models.Turf) error
	GetTurfByID(ctx context.Context, id int64) (*models.Turf, error)
	GetTurfByOwner(ctx context.Context, ownerID int64) (*models.Turf, error)
	SearchTurfs(ctx context.Context, location, sport string) ([]*models.Turf, error)

	CreateSlot(ctx context.Context, slot *models.Slot) error
	GetSlot(ctx context.Context, id int64) (*models.Slot, error)
	ListAvailableSlots(ctx context.Context, turfID int64, now time.Time) ([]*models.Slot, error)
	ListEligibleSlots(ctx context.Context, turfID int64, now time.Time, date string) ([]*models.Slot, error)
	ListSlotsByTurf(ctx context.Context, turfID int64) ([]*models.Slot, error)

	CreateBookingTx(ctx context.Context, userID, slotID int64) (*models.BookingDetail, error)
	CancelBookingTx(ctx context.Context, bookingID, userID int64) error
	GetBookingForUser(ctx context.Context, bookingID, userID int64) (*models.Booking, *models.Slot, error)
	ListUserBookings(ctx context.Context, userID int64) ([]*models.BookingDetail, error)
	ListTurfBookings(ctx context.Context, turfID int64) ([]*models.TurfBooking, error)

	CreateTeam(ctx context.Context, team *models.Team) error
	GetTeamByID(ctx context.Context, id int64) (*models.Team, error)
	GetTeamByCreator(ctx context.Context, userID int64) (*models.Team, error)
	AddTeamMember(ctx context.Context, member *models.TeamMember) error
	ListTeamMembers(ctx context.Context, teamID int64) ([]*models.TeamMemberDetail, error)
	ListTeamsByLocation(ctx context.Context, location string) ([]*models.Team, error)
}

// StateRepository keeps short-lived request state: rate-limit counters
// and revoked access tokens. Backed by redis with an in-memory
// fallback.
type StateRepository interface {
	CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
	RevokeToken(ctx context.Context, token string, ttl time.Duration) error
	IsTokenRevoked(ctx context.Context, token string) (bool, error)
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

type BookingService interface {
	CreateBooking(ctx context.Context, userID, slotID int64) (*models.BookingDetail, error)
	CancelBooking(ctx context.Context, bookingID, userID int64) error
	ListBookings(ctx context.Context, userID int64) ([]*models.BookingDetail, error)
}

type TurfService interface {
	AddSlot(ctx context.Context, turfID, ownerID int64, date, start, end string) (*models.Slot, error)
	ListAvailableSlots(ctx context.Context, turfID int64) ([]*models.Slot, error)
	SearchTurfs(ctx context.Context, location, sport, date string) ([]*models.TurfSearchResult, error)
	MyTurf(ctx context.Context, ownerID int64) (*models.Turf, error)
	ListOwnerSlots(ctx context.Context, ownerID int64) ([]*models.SlotWithState, error)
	ListTurfBookings(ctx context.Context, turfID, ownerID int64) ([]*models.TurfBooking, error)
}

type TeamService interface {
	CreateTeam(ctx context.Context, name, location string, creatorID int64) (*models.Team, error)
	JoinTeam(ctx context.Context, teamID, userID int64) (*models.TeamMember, error)
	MyTeam(ctx context.Context, userID int64) (*models.TeamDetail, error)
	TeamsByLocation(ctx context.Context, location string) ([]*models.TeamDetail, error)
}

type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
}

// RegisterInput carries registration fields; the turf fields are used
// only when Role is turf_owner.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
	Phone    string

	TurfName  string
	Location  string
	SportType string
}
