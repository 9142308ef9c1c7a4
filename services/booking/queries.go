package booking

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "github.com/renjoshini/hereforyou/database/repository/booking"
	"github.com/renjoshini/hereforyou/models"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 50
)

// GetBooking looks a booking up by booking code or internal id. Only the
// customer and the assigned professional may read it.
func (s *DefaultBookingService) GetBooking(ctx context.Context, ref, actorID string) (*models.Booking, error) {
	booking, err := s.Repo.GetByReference(ctx, ref)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, newError(CodeNotFound, "booking %s not found", ref)
		}
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	roles, err := s.rolesOf(ctx, booking, actorID)
	if err != nil {
		return nil, err
	}
	if roles == 0 {
		return nil, ErrAccessDenied
	}
	return booking, nil
}

// ListCustomerBookings returns a page of the customer's bookings.
func (s *DefaultBookingService) ListCustomerBookings(ctx context.Context, customerID string, filter models.BookingListFilter) (*models.BookingPage, error) {
	filter, err := normaliseFilter(filter)
	if err != nil {
		return nil, err
	}
	bookings, total, err := s.Repo.ListByCustomer(ctx, customerID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return &models.BookingPage{
		Bookings:   bookings,
		Pagination: models.NewPagination(filter.Page, filter.Limit, total),
	}, nil
}

// ListProfessionalBookings returns a page of bookings assigned to the
// caller's professional profile.
func (s *DefaultBookingService) ListProfessionalBookings(ctx context.Context, professionalUserID string, filter models.BookingListFilter) (*models.BookingPage, error) {
	filter, err := normaliseFilter(filter)
	if err != nil {
		return nil, err
	}
	professional, err := s.professionalFor(ctx, professionalUserID)
	if err != nil {
		return nil, err
	}
	if professional == nil {
		return nil, newError(CodeNotFound, "professional profile not found")
	}
	bookings, total, err := s.Repo.ListByProfessional(ctx, professional.ID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return &models.BookingPage{
		Bookings:   bookings,
		Pagination: models.NewPagination(filter.Page, filter.Limit, total),
	}, nil
}

func normaliseFilter(filter models.BookingListFilter) (models.BookingListFilter, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit == 0 {
		filter.Limit = defaultPageLimit
	}
	if filter.Limit < 1 || filter.Limit > maxPageLimit {
		return filter, validationError("invalid limit", map[string]string{
			"limit": fmt.Sprintf("must be between 1 and %d", maxPageLimit),
		})
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return filter, validationError("invalid status", map[string]string{"status": "is not a known status"})
	}
	if filter.Day != "" {
		parsed, err := parseScheduleDate(filter.Day)
		if err != nil {
			return filter, validationError("invalid date", map[string]string{"date": err.Error()})
		}
		filter.Day = parsed.Day.Format("2006-01-02")
	}
	return filter, nil
}
