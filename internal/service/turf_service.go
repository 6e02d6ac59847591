package service

import (
	"context"

	"turfbook/internal/database"
	"turfbook/internal/domain"
	"turfbook/internal/events"
	"turfbook/internal/metrics"
	"turfbook/internal/models"
	"turfbook/internal/schedule"

	"github.com/rs/zerolog"
)

type TurfService struct {
	repo     domain.Repository
	eventBus domain.EventPublisher
	clock    schedule.Clock
	logger   *zerolog.Logger
}

func NewTurfService(repo domain.Repository, eventBus domain.EventPublisher, clock schedule.Clock, logger *zerolog.Logger) *TurfService {
	return &TurfService{repo: repo, eventBus: eventBus, clock: clock, logger: logger}
}

// AddSlot publishes a bookable window on the owner's turf. The date
// must be strictly after today; same-day publication is rejected.
func (s *TurfService) AddSlot(ctx context.Context, turfID, ownerID int64, date, start, end string) (*models.Slot, error) {
	turf, err := s.repo.GetTurfByID(ctx, turfID)
	if err != nil {
		return nil, err
	}
	if turf.OwnerID != ownerID {
		return nil, database.ErrNotOwner
	}

	if !schedule.ValidDate(date) || !schedule.ValidRange(start, end) {
		return nil, database.ErrInvalidTimeRange
	}
	if !schedule.FutureDate(date, s.clock.Now()) {
		return nil, database.ErrPastSlotDate
	}

	slot := &models.Slot{TurfID: turfID, Date: date, StartTime: start, EndTime: end}
	if err := s.repo.CreateSlot(ctx, slot); err != nil {
		return nil, err
	}

	metrics.IncSlotPublished()
	if s.eventBus != nil {
		payload := events.SlotEventPayload{
			SlotID:    slot.ID,
			TurfID:    slot.TurfID,
			Date:      slot.Date,
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
		}
		if err := s.eventBus.PublishJSON(events.EventSlotPublished, payload); err != nil {
			s.logger.Error().Err(err).Int64("slot_id", slot.ID).Msg("publish event error")
		}
	}

	return slot, nil
}

func (s *TurfService) ListAvailableSlots(ctx context.Context, turfID int64) ([]*models.Slot, error) {
	if _, err := s.repo.GetTurfByID(ctx, turfID); err != nil {
		return nil, err
	}
	return s.repo.ListAvailableSlots(ctx, turfID, s.clock.Now())
}

// SearchTurfs filters turfs by location and sport and attaches each
// turf's booking-eligible slots, using the same eligibility rule as
// ListAvailableSlots.
func (s *TurfService) SearchTurfs(ctx context.Context, location, sport, date string) ([]*models.TurfSearchResult, error) {
	turfs, err := s.repo.SearchTurfs(ctx, location, sport)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	results := make([]*models.TurfSearchResult, 0, len(turfs))
	for _, turf := range turfs {
		slots, err := s.repo.ListEligibleSlots(ctx, turf.ID, now, date)
		if err != nil {
			return nil, err
		}

		result := &models.TurfSearchResult{Turf: *turf, Slots: slots, EligibleSlots: len(slots)}
		if owner, err := s.repo.GetUserByID(ctx, turf.OwnerID); err == nil {
			result.Owner = owner.Contact()
		}
		results = append(results, result)
	}
	return results, nil
}

func (s *TurfService) MyTurf(ctx context.Context, ownerID int64) (*models.Turf, error) {
	return s.repo.GetTurfByOwner(ctx, ownerID)
}

// ListOwnerSlots returns every slot of the owner's turf with the
// derived state. Booked wins over expired: a past booked slot reads as
// booked.
func (s *TurfService) ListOwnerSlots(ctx context.Context, ownerID int64) ([]*models.SlotWithState, error) {
	turf, err := s.repo.GetTurfByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	slots, err := s.repo.ListSlotsByTurf(ctx, turf.ID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	out := make([]*models.SlotWithState, 0, len(slots))
	for _, slot := range slots {
		state := models.SlotStateAvailable
		switch {
		case slot.IsBooked:
			state = models.SlotStateBooked
		case schedule.Expired(slot.Date, slot.StartTime, now):
			state = models.SlotStateExpired
		}
		out = append(out, &models.SlotWithState{Slot: *slot, State: state})
	}
	return out, nil
}

func (s *TurfService) ListTurfBookings(ctx context.Context, turfID, ownerID int64) ([]*models.TurfBooking, error) {
	turf, err := s.repo.GetTurfByID(ctx, turfID)
	if err != nil {
		return nil, err
	}
	if turf.OwnerID != ownerID {
		return nil, database.ErrNotOwner
	}
	return s.repo.ListTurfBookings(ctx, turfID)
}
