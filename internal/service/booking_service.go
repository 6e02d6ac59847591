package service

import (
	"context"
	"errors"

	"turfbook/internal/database"
	"turfbook/internal/domain"
	"turfbook/internal/events"
	"turfbook/internal/metrics"
	"turfbook/internal/models"
	"turfbook/internal/schedule"

	"github.com/rs/zerolog"
)

// BookingService drives the booking lifecycle. The atomic
// check-then-act sequences live in the repository; this layer adds the
// cancellation deadline policy, events and metrics.
type BookingService struct {
	repo         domain.Repository
	eventBus     domain.EventPublisher
	clock        schedule.Clock
	cancelCutoff int
	logger       *zerolog.Logger
}

func NewBookingService(repo domain.Repository, eventBus domain.EventPublisher, clock schedule.Clock, cancelCutoffMinutes int, logger *zerolog.Logger) *BookingService {
	if cancelCutoffMinutes <= 0 {
		cancelCutoffMinutes = models.CancelCutoffMinutes
	}
	return &BookingService{
		repo:         repo,
		eventBus:     eventBus,
		clock:        clock,
		cancelCutoff: cancelCutoffMinutes,
		logger:       logger,
	}
}

func (s *BookingService) CreateBooking(ctx context.Context, userID, slotID int64) (*models.BookingDetail, error) {
	detail, err := s.repo.CreateBookingTx(ctx, userID, slotID)
	if err != nil {
		var overlapErr *database.OverlapError
		switch {
		case errors.Is(err, database.ErrSlotTaken):
			metrics.IncBookingConflict("slot_taken")
		case errors.As(err, &overlapErr):
			metrics.IncBookingConflict("overlap")
		}
		return nil, err
	}

	metrics.IncBookingCreated()
	s.publishBookingEvent(events.EventBookingCreated, detail.Booking, detail.Slot, detail.Turf.Name)
	return detail, nil
}

func (s *BookingService) CancelBooking(ctx context.Context, bookingID, userID int64) error {
	booking, slot, err := s.repo.GetBookingForUser(ctx, bookingID, userID)
	if err != nil {
		return err
	}
	if booking.Status == models.StatusCancelled {
		return database.ErrAlreadyCancelled
	}

	now := s.clock.Now()
	slotStart, err := schedule.SlotStart(slot.Date, slot.StartTime, now.Location())
	if err != nil {
		return err
	}
	if !schedule.CancelAllowed(now, slotStart, s.cancelCutoff) {
		metrics.IncBookingConflict("cancel_window")
		return database.ErrCancelWindowClosed
	}

	if err := s.repo.CancelBookingTx(ctx, bookingID, userID); err != nil {
		return err
	}

	metrics.IncBookingCancelled()
	booking.Status = models.StatusCancelled
	s.publishBookingEvent(events.EventBookingCancelled, *booking, *slot, "")
	return nil
}

func (s *BookingService) ListBookings(ctx context.Context, userID int64) ([]*models.BookingDetail, error) {
	return s.repo.ListUserBookings(ctx, userID)
}

func (s *BookingService) publishBookingEvent(eventType string, booking models.Booking, slot models.Slot, turfName string) {
	if s.eventBus == nil {
		return
	}

	payload := events.BookingEventPayload{
		BookingID: booking.ID,
		UserID:    booking.UserID,
		SlotID:    slot.ID,
		TurfID:    slot.TurfID,
		TurfName:  turfName,
		Date:      slot.Date,
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
		Status:    booking.Status,
	}

	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("booking_id", booking.ID).Msg("publish event error")
	}
}
