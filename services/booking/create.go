package booking

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "github.com/renjoshini/hereforyou/database/repository/booking"
	professionalRepo "github.com/renjoshini/hereforyou/database/repository/professional"
	"github.com/renjoshini/hereforyou/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultCurrency = "INR"

// CreateBooking validates the request, checks the professional and the slot,
// and persists a confirmed booking.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, input models.CreateBookingInput) (*models.Booking, error) {
	schedule, err := s.validateCreate(input)
	if err != nil {
		return nil, err
	}

	professional, err := s.ProfessionalRepo.GetByID(ctx, input.ProfessionalID)
	if err != nil {
		if errors.Is(err, professionalRepo.ErrNotFound) {
			return nil, newError(CodeNotFound, "professional %s not found", input.ProfessionalID)
		}
		return nil, fmt.Errorf("failed to load professional: %w", err)
	}
	if !professional.Bookable() {
		return nil, ErrProfessionalUnavailable
	}

	existing, err := s.Repo.FindActiveConflict(ctx, professional.ID, schedule.Date, schedule.TimeSlot.Start)
	if err != nil {
		return nil, fmt.Errorf("failed to check slot: %w", err)
	}
	if existing != nil {
		return nil, ErrSlotConflict
	}

	booking := s.newBooking(input, schedule, professional)

	for attempt := 1; ; attempt++ {
		err = s.Repo.CreateWithStatistics(ctx, booking)
		if err == nil {
			break
		}
		switch {
		case errors.Is(err, bookingRepo.ErrSlotTaken):
			return nil, ErrSlotConflict
		case errors.Is(err, bookingRepo.ErrProfessionalMissing):
			return nil, newError(CodeNotFound, "professional %s not found", professional.ID)
		case errors.Is(err, bookingRepo.ErrDuplicateCode) && attempt < maxCodeAttempts:
			s.Logger.Warn("Booking code collision, regenerating", zap.String("code", booking.BookingCode))
			booking.BookingCode = newBookingCode(s.now())
			continue
		}
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	s.Logger.Info("Booking created",
		zap.String("bookingCode", booking.BookingCode),
		zap.String("customerID", booking.CustomerID),
		zap.String("professionalID", booking.ProfessionalID),
	)

	s.invalidateCalendar(ctx, booking.ProfessionalID)
	s.notifyCreated(ctx, booking, professional)
	s.publish(ctx, EventBookingCreated, booking, "", booking.CustomerID)

	return booking, nil
}

func (s *DefaultBookingService) newBooking(input models.CreateBookingInput, schedule models.Schedule, professional *models.Professional) *models.Booking {
	now := s.now()

	currency := professional.Pricing.Currency
	if currency == "" {
		currency = defaultCurrency
	}
	details := input.ServiceDetails
	if details.Urgency == "" {
		details.Urgency = "normal"
	}
	rate := professional.Pricing.HourlyRate

	return &models.Booking{
		ID:             uuid.New().String(),
		BookingCode:    newBookingCode(now),
		CustomerID:     input.CustomerID,
		ProfessionalID: professional.ID,
		Service:        input.Service,
		ServiceDetails: details,
		Schedule:       schedule,
		Location:       input.Location,
		Contact:        input.Contact,
		Pricing: models.Pricing{
			EstimatedCost: &models.CostRange{Min: rate, Max: rate * 3},
			Currency:      currency,
		},
		Payment: models.Payment{
			Method: input.Payment.Method,
			Status: "pending",
		},
		Status: models.StatusConfirmed,
		Timeline: []models.TimelineEntry{{
			Status:    models.StatusConfirmed,
			Timestamp: now,
			Note:      "Booking confirmed",
			UpdatedBy: input.CustomerID,
		}},
		Commission: models.Commission{Rate: s.Policy.CommissionRate},
		HoldsSlot:  models.StatusConfirmed.HoldsSlot(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
