package booking

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "github.com/renjoshini/hereforyou/database/repository/booking"
	"github.com/renjoshini/hereforyou/models"
)

// UpdateLocation overwrites the professional's last known position on a booking.
func (s *DefaultBookingService) UpdateLocation(ctx context.Context, bookingID, professionalUserID string, latitude, longitude float64) error {
	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	if err := s.requireAssignedProfessional(ctx, booking, professionalUserID); err != nil {
		return err
	}
	if err := validCoordinates(latitude, longitude); err != nil {
		return err
	}

	fix := models.GeoFix{Latitude: latitude, Longitude: longitude, LastUpdated: s.now()}
	if err := s.Repo.UpdateProfessionalLocation(ctx, booking.ID, fix); err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return newError(CodeNotFound, "booking %s not found", bookingID)
		}
		return fmt.Errorf("failed to update location: %w", err)
	}
	return nil
}

// RecordActualCost stores the final bill and derives the platform commission.
func (s *DefaultBookingService) RecordActualCost(ctx context.Context, bookingID, professionalUserID string, input models.ActualCostInput) (*models.Booking, error) {
	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := s.requireAssignedProfessional(ctx, booking, professionalUserID); err != nil {
		return nil, err
	}
	if input.ActualCost < 0 {
		return nil, validationError("invalid cost", map[string]string{"actualCost": "must be at least 0"})
	}
	if err := s.validateStruct(input); err != nil {
		return nil, err
	}
	if booking.Status == models.StatusCancelled {
		return nil, newError(CodeInvalidTransition, "cannot bill a cancelled booking")
	}

	commission := s.Policy.Commission(booking.Commission.Rate, input.ActualCost)
	updated, err := s.Repo.SetActualCost(ctx, booking.ID, input.ActualCost, input.Breakdown, commission)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrStatusChanged) {
			return nil, newError(CodeInvalidTransition, "cannot bill a cancelled booking")
		}
		return nil, fmt.Errorf("failed to record actual cost: %w", err)
	}
	return updated, nil
}
