package booking

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/renjoshini/hereforyou/config"
	"github.com/renjoshini/hereforyou/models"
)

// Policy holds the tunable business rules of the booking lifecycle.
type Policy struct {
	CommissionRate   float64
	RefundCutoff     time.Duration
	Location         *time.Location
	AvailabilityDays int
	SlotsPerDay      int
	CalendarTTL      time.Duration
}

// DefaultPolicy matches the out-of-the-box configuration.
func DefaultPolicy() Policy {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		loc = time.FixedZone("IST", 5*3600+1800)
	}
	return Policy{
		CommissionRate:   15,
		RefundCutoff:     2 * time.Hour,
		Location:         loc,
		AvailabilityDays: 30,
		SlotsPerDay:      8,
		CalendarTTL:      5 * time.Minute,
	}
}

// PolicyFromConfig builds a Policy from the loaded application config,
// falling back to defaults for unset values.
func PolicyFromConfig(cfg config.Config) (Policy, error) {
	p := DefaultPolicy()
	if cfg.CommissionRate > 0 {
		p.CommissionRate = cfg.CommissionRate
	}
	if cfg.RefundCutoffHours > 0 {
		p.RefundCutoff = time.Duration(cfg.RefundCutoffHours * float64(time.Hour))
	}
	if cfg.AvailabilityDays > 0 {
		p.AvailabilityDays = cfg.AvailabilityDays
	}
	if cfg.SlotsPerDay > 0 {
		p.SlotsPerDay = cfg.SlotsPerDay
	}
	if cfg.Timezone != "" {
		loc, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			return p, fmt.Errorf("invalid TIMEZONE %q: %w", cfg.Timezone, err)
		}
		p.Location = loc
	}
	return p, nil
}

// ScheduledAt returns the wall-clock start of the visit: the schedule date
// at timeSlot.start in the policy timezone, or the start of that day when no
// start time was requested.
func (p Policy) ScheduledAt(s models.Schedule) time.Time {
	y, m, d := s.Date.Date()
	hour, minute, ok := parseHHMM(s.TimeSlot.Start)
	if !ok {
		hour, minute = 0, 0
	}
	return time.Date(y, m, d, hour, minute, 0, 0, p.Location)
}

// RefundEligible applies the hard cutoff: strictly more than RefundCutoff
// before the visit.
func (p Policy) RefundEligible(s models.Schedule, now time.Time) bool {
	return p.ScheduledAt(s).Sub(now) > p.RefundCutoff
}

// Cancellation is the single routine that fills the cancellation block,
// whichever path cancelled the booking.
func (p Policy) Cancellation(b *models.Booking, reason, cancelledBy string, now time.Time) models.Cancellation {
	eligible := p.RefundEligible(b.Schedule, now)
	charge := 0.0
	if !eligible && b.Pricing.EstimatedCost != nil {
		charge = b.Pricing.EstimatedCost.Min
	}
	return models.Cancellation{
		Reason:             reason,
		CancelledBy:        cancelledBy,
		CancelledAt:        now,
		RefundEligible:     eligible,
		CancellationCharge: charge,
	}
}

// Commission returns the platform's share of actualCost.
func (p Policy) Commission(rate, actualCost float64) float64 {
	if rate <= 0 {
		rate = p.CommissionRate
	}
	return actualCost * rate / 100
}

// parseHHMM splits a 24h "HH:MM" string.
func parseHHMM(v string) (hour, minute int, ok bool) {
	parts := strings.Split(v, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, 0, false
	}
	return h, m, true
}

// scheduleDate is a parsed schedule date. Day is UTC midnight of the
// calendar day; At is set when the input carried a time of day.
type scheduleDate struct {
	Day time.Time
	At  *time.Time
}

// parseScheduleDate accepts a calendar day or an RFC 3339 timestamp. A
// timestamp at midnight in its own offset counts as a plain calendar day.
func parseScheduleDate(v string) (scheduleDate, error) {
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return scheduleDate{Day: t}, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return scheduleDate{}, fmt.Errorf("date must be YYYY-MM-DD or RFC 3339")
	}
	sd := scheduleDate{Day: dayOf(t)}
	if h, m, s := t.Clock(); h != 0 || m != 0 || s != 0 || t.Nanosecond() != 0 {
		sd.At = &t
	}
	return sd, nil
}

// inLocation resolves the schedule against loc. When the input carried a
// time of day and no explicit start, the visit starts at that instant in
// loc, which may also move the calendar day.
func (sd scheduleDate) inLocation(loc *time.Location, start string) (day time.Time, resolvedStart string) {
	if sd.At == nil || start != "" {
		return sd.Day, start
	}
	local := sd.At.In(loc)
	return dayOf(local), local.Format("15:04")
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
