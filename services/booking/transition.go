package booking

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "github.com/renjoshini/hereforyou/database/repository/booking"
	"github.com/renjoshini/hereforyou/models"

	"go.uber.org/zap"
)

// UpdateStatus moves a booking to input.Status on behalf of its customer or
// assigned professional.
func (s *DefaultBookingService) UpdateStatus(ctx context.Context, bookingID, actorID string, input models.StatusUpdateInput) (*models.Booking, error) {
	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	roles, err := s.rolesOf(ctx, booking, actorID)
	if err != nil {
		return nil, err
	}
	if roles == 0 {
		return nil, ErrAccessDenied
	}

	if booking.Status.IsTerminal() {
		return nil, newError(CodeInvalidTransition, "booking is already %s", booking.Status)
	}
	if !input.Status.Valid() || !CanTransition(booking.Status, input.Status, roles) {
		return nil, newError(CodeInvalidTransition, "cannot move booking from %s to %s", booking.Status, input.Status)
	}

	return s.applyTransition(ctx, booking, input.Status, input.Note, actorID, roles)
}

// applyTransition builds the side effects for the target status and writes
// them conditionally on the status that was read.
func (s *DefaultBookingService) applyTransition(
	ctx context.Context,
	booking *models.Booking,
	to models.BookingStatus,
	note, actorID string,
	roles Role,
) (*models.Booking, error) {
	now := s.now()
	change := bookingRepo.TransitionChange{
		To: to,
		Entry: models.TimelineEntry{
			Status:    to,
			Timestamp: now,
			Note:      note,
			UpdatedBy: actorID,
		},
	}
	switch to {
	case models.StatusInProgress:
		change.WorkStarted = &now
	case models.StatusCompleted:
		change.WorkCompleted = &now
		change.CompletedBy = booking.ProfessionalID
	case models.StatusCancelled:
		cancellation := s.Policy.Cancellation(booking, note, actorID, now)
		change.Cancellation = &cancellation
	}

	from := booking.Status
	updated, err := s.Repo.ApplyTransition(ctx, booking.ID, from, change)
	if err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrStatusChanged):
			return nil, newError(CodeInvalidTransition, "booking status changed concurrently")
		case errors.Is(err, bookingRepo.ErrNotFound):
			return nil, newError(CodeNotFound, "booking %s not found", booking.ID)
		}
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}

	s.Logger.Info("Booking status updated",
		zap.String("bookingCode", updated.BookingCode),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
		zap.String("actorID", actorID),
	)

	s.invalidateCalendar(ctx, updated.ProfessionalID)
	s.notifyStatusChange(ctx, updated, roles)

	eventType := EventBookingStatusChanged
	if to == models.StatusCancelled {
		eventType = EventBookingCancelled
	}
	s.publish(ctx, eventType, updated, from, actorID)

	return updated, nil
}
