package booking

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "github.com/renjoshini/hereforyou/database/repository/booking"
	professionalRepo "github.com/renjoshini/hereforyou/database/repository/professional"
	"github.com/renjoshini/hereforyou/models"
)

func (s *DefaultBookingService) loadBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	booking, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, newError(CodeNotFound, "booking %s not found", bookingID)
		}
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	return booking, nil
}

// professionalFor resolves the professional profile owned by a user, or nil
// when the user has none.
func (s *DefaultBookingService) professionalFor(ctx context.Context, userID string) (*models.Professional, error) {
	professional, err := s.ProfessionalRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, professionalRepo.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve professional: %w", err)
	}
	return professional, nil
}

// rolesOf returns how actorID relates to booking. Zero means no access.
func (s *DefaultBookingService) rolesOf(ctx context.Context, booking *models.Booking, actorID string) (Role, error) {
	var roles Role
	if actorID == "" {
		return 0, nil
	}
	if booking.CustomerID == actorID {
		roles |= RoleCustomer
	}
	professional, err := s.professionalFor(ctx, actorID)
	if err != nil {
		return 0, err
	}
	if professional != nil && professional.ID == booking.ProfessionalID {
		roles |= RoleProfessional
	}
	return roles, nil
}

// requireAssignedProfessional fails with AccessDenied unless actorID owns
// the booking's professional profile.
func (s *DefaultBookingService) requireAssignedProfessional(ctx context.Context, booking *models.Booking, actorID string) error {
	professional, err := s.professionalFor(ctx, actorID)
	if err != nil {
		return err
	}
	if professional == nil || professional.ID != booking.ProfessionalID {
		return newError(CodeAccessDenied, "only the assigned professional may do this")
	}
	return nil
}
