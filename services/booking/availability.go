package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	professionalRepo "github.com/renjoshini/hereforyou/database/repository/professional"
	"github.com/renjoshini/hereforyou/models"

	"go.uber.org/zap"
)

// GetAvailability returns the professional's rolling calendar of booked and
// free slots, starting today. Results are cached until the next booking
// change for that professional.
func (s *DefaultBookingService) GetAvailability(ctx context.Context, professionalID string) (*models.AvailabilityCalendar, error) {
	if s.Cache != nil {
		if cal, ok := s.Cache.Get(ctx, professionalID); ok {
			return cal, nil
		}
	}

	professional, err := s.ProfessionalRepo.GetByID(ctx, professionalID)
	if err != nil {
		if errors.Is(err, professionalRepo.ErrNotFound) {
			return nil, newError(CodeNotFound, "professional %s not found", professionalID)
		}
		return nil, fmt.Errorf("failed to load professional: %w", err)
	}

	today := dayOf(s.now().In(s.Policy.Location))
	days := s.Policy.AvailabilityDays
	last := today.AddDate(0, 0, days-1)

	dates, err := s.Repo.ActiveScheduleDates(ctx, professionalID, today, last)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}

	cal := buildCalendar(professional, today, days, s.Policy.SlotsPerDay, dates)
	if s.Cache != nil {
		s.Cache.Set(ctx, cal, s.Policy.CalendarTTL)
	}
	return cal, nil
}

// buildCalendar counts slot-holding bookings per day for days consecutive
// days starting at from.
func buildCalendar(professional *models.Professional, from time.Time, days, slotsPerDay int, booked []time.Time) *models.AvailabilityCalendar {
	counts := make(map[string]int, len(booked))
	for _, d := range booked {
		counts[d.UTC().Format("2006-01-02")]++
	}

	cal := &models.AvailabilityCalendar{
		ProfessionalID: professional.ID,
		CompletionRate: professional.CompletionRate(),
		Days:           make([]models.DayAvailability, 0, days),
	}
	for i := 0; i < days; i++ {
		day := from.AddDate(0, 0, i)
		n := counts[day.Format("2006-01-02")]
		free := slotsPerDay - n
		if free < 0 {
			free = 0
		}
		cal.Days = append(cal.Days, models.DayAvailability{
			Date:           day,
			IsAvailable:    n < slotsPerDay,
			BookedSlots:    n,
			AvailableSlots: free,
		})
	}
	return cal
}

func (s *DefaultBookingService) invalidateCalendar(ctx context.Context, professionalID string) {
	if s.Cache == nil {
		return
	}
	s.Cache.Invalidate(ctx, professionalID)
	s.Logger.Debug("Availability cache invalidated", zap.String("professionalID", professionalID))
}
