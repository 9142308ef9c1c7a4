package bookingRepo

import (
	"fmt"
	"time"

	"github.com/renjoshini/hereforyou/models"

	"go.mongodb.org/mongo-driver/bson"
)

const (
	codeIndexName       = "uniq_booking_code"
	activeSlotIndexName = "uniq_active_slot"
)

// slotHoldingFilter matches bookings that still occupy their slot.
func slotHoldingFilter() bson.M {
	return bson.M{"$in": models.SlotHoldingStatuses}
}

// conflictFilter matches a slot-holding booking on the exact same
// professional, date and start time. Overlapping windows with a different
// start are not matched.
func conflictFilter(professionalID string, date time.Time, start string) bson.M {
	return bson.M{
		"professionalId":          professionalID,
		"schedule.date":           date,
		"schedule.timeSlot.start": start,
		"status":                  slotHoldingFilter(),
	}
}

// referenceFilter matches either the booking code or the internal id.
func referenceFilter(ref string) bson.M {
	return bson.M{"$or": bson.A{
		bson.M{"bookingCode": ref},
		bson.M{"id": ref},
	}}
}

// listFilter adds the optional status and day restrictions to base.
func listFilter(base bson.M, filter models.BookingListFilter) (bson.M, error) {
	out := bson.M{}
	for k, v := range base {
		out[k] = v
	}
	if filter.Status != "" {
		out["status"] = filter.Status
	}
	if filter.Day != "" {
		day, err := parseDay(filter.Day)
		if err != nil {
			return nil, err
		}
		out["schedule.date"] = bson.M{
			"$gte": day,
			"$lt":  day.AddDate(0, 0, 1),
		}
	}
	return out, nil
}

// parseDay returns UTC midnight of a "2006-01-02" day or of the calendar
// day of an RFC 3339 timestamp.
func parseDay(v string) (time.Time, error) {
	if day, err := time.Parse("2006-01-02", v); err == nil {
		return day, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day %q: %w", v, err)
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}

// transitionUpdate builds the $set/$push document for a status change.
// A booking only takes its slot in the unique index at creation; leaving a
// slot-holding status releases it for good and no later transition takes it
// back.
func transitionUpdate(change TransitionChange, now time.Time) bson.M {
	set := bson.M{
		"status":    change.To,
		"updatedAt": now,
	}
	if !change.To.HoldsSlot() {
		set["holdsSlot"] = false
	}
	if change.WorkStarted != nil {
		set["tracking.workStarted"] = *change.WorkStarted
	}
	if change.WorkCompleted != nil {
		set["tracking.workCompleted"] = *change.WorkCompleted
	}
	if change.Cancellation != nil {
		set["cancellation"] = *change.Cancellation
	}
	return bson.M{
		"$set":  set,
		"$push": bson.M{"timeline": change.Entry},
	}
}

// skipFor converts a 1-based page into a document offset.
func skipFor(page, limit int) int64 {
	if page < 1 {
		page = 1
	}
	return int64((page - 1) * limit)
}
