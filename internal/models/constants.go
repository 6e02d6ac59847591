package models

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

const (
	RolePlayer    = "player"
	RoleTurfOwner = "turf_owner"
	RoleAdmin     = "admin"
)

const (
	SlotStateAvailable = "available"
	SlotStateBooked    = "booked"
	SlotStateExpired   = "expired"
)

const (
	TeamRoleCaptain = "captain"
	TeamRolePlayer  = "player"
)

const (
	// CancelCutoffMinutes is the minimum lead time before slot start
	// for a cancellation to be accepted.
	CancelCutoffMinutes = 30

	// DefaultTokenTTLMinutes is the access token lifetime.
	DefaultTokenTTLMinutes = 60

	// RateLimitRequests is the per-user request allowance within RateLimitWindow.
	RateLimitRequests = 30

	// RateLimitWindow is the rate limit window in seconds.
	RateLimitWindow = 60

	// NotifyQueueSize is the size of the notification worker queue.
	NotifyQueueSize = 1000
)
