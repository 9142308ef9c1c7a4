package booking

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/renjoshini/hereforyou/models"
)

var bookingCodePattern = regexp.MustCompile(`^BK\d+[0-9A-Z]{5}$`)

func TestCreateBooking_OK(t *testing.T) {
	f := newFixture(t)

	b := f.create(t)

	if b.Status != models.StatusConfirmed {
		t.Fatalf("expected status confirmed, got %s", b.Status)
	}
	if !bookingCodePattern.MatchString(b.BookingCode) {
		t.Fatalf("unexpected booking code %q", b.BookingCode)
	}
	if b.Pricing.EstimatedCost == nil {
		t.Fatalf("expected estimated cost")
	}
	if b.Pricing.EstimatedCost.Min != 500 || b.Pricing.EstimatedCost.Max != 1500 {
		t.Fatalf("expected estimate 500..1500, got %+v", *b.Pricing.EstimatedCost)
	}
	if b.Pricing.Currency != "INR" {
		t.Fatalf("expected INR, got %q", b.Pricing.Currency)
	}
	if b.Payment.Status != "pending" {
		t.Fatalf("expected payment pending, got %q", b.Payment.Status)
	}
	if b.ServiceDetails.Urgency != "normal" {
		t.Fatalf("expected default urgency normal, got %q", b.ServiceDetails.Urgency)
	}
	if b.Commission.Rate != 15 {
		t.Fatalf("expected commission rate 15, got %v", b.Commission.Rate)
	}
	if len(b.Timeline) != 1 {
		t.Fatalf("expected one timeline entry, got %d", len(b.Timeline))
	}
	if e := b.Timeline[0]; e.Status != models.StatusConfirmed || e.UpdatedBy != customerID {
		t.Fatalf("unexpected first timeline entry %+v", e)
	}
	want := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	if !b.Schedule.Date.Equal(want) {
		t.Fatalf("expected schedule date %v, got %v", want, b.Schedule.Date)
	}

	if got := f.pros.stats(professionalID).TotalBookings; got != 1 {
		t.Fatalf("expected totalBookings 1, got %d", got)
	}
	f.stored(t, b.ID)
}

func TestCreateBooking_NotifiesBothParties(t *testing.T) {
	f := newFixture(t)

	b := f.create(t)

	confirmed := f.notifier.byType(models.NotificationBookingConfirmed)
	if len(confirmed) != 1 || confirmed[0].Recipient.UserID != customerID {
		t.Fatalf("expected one confirmation to the customer, got %+v", confirmed)
	}
	newBooking := f.notifier.byType(models.NotificationNewBooking)
	if len(newBooking) != 1 || newBooking[0].Recipient.UserID != proUserID {
		t.Fatalf("expected one new-booking notice to the professional, got %+v", newBooking)
	}
	if newBooking[0].Recipient.FCMToken != "device-token" {
		t.Fatalf("expected professional FCM token to be carried")
	}
	if newBooking[0].Data["bookingCode"] != b.BookingCode {
		t.Fatalf("expected booking code in notification data")
	}

	keys := f.publisher.keys()
	if len(keys) != 1 || keys[0] != EventBookingCreated {
		t.Fatalf("expected one %s event, got %v", EventBookingCreated, keys)
	}
	if len(f.cache.invalidated) != 1 || f.cache.invalidated[0] != professionalID {
		t.Fatalf("expected calendar invalidation for %s, got %v", professionalID, f.cache.invalidated)
	}
}

func TestCreateBooking_SideEffectFailuresDoNotFail(t *testing.T) {
	f := newFixture(t)
	f.notifier.err = errors.New("queue down")
	f.publisher.err = errors.New("broker down")

	b := f.create(t)

	if b.Status != models.StatusConfirmed {
		t.Fatalf("expected confirmed booking despite notifier failure")
	}
}

func TestCreateBooking_SlotConflict(t *testing.T) {
	f := newFixture(t)
	f.create(t)

	input := validInput()
	input.CustomerID = otherUserID
	_, err := f.svc.CreateBooking(context.Background(), input)
	assertCode(t, err, ErrSlotConflict)

	if got := f.pros.stats(professionalID).TotalBookings; got != 1 {
		t.Fatalf("expected totalBookings to stay 1, got %d", got)
	}
}

func TestCreateBooking_SlotConflictAcrossDateFormats(t *testing.T) {
	f := newFixture(t)
	f.create(t)

	input := validInput()
	input.CustomerID = otherUserID
	input.Schedule.Date = "2025-03-10T18:30:00Z"
	_, err := f.svc.CreateBooking(context.Background(), input)
	assertCode(t, err, ErrSlotConflict)
}

func TestCreateBooking_RepoRaceMapsToSlotConflict(t *testing.T) {
	f := newFixture(t)
	f.create(t)
	// The competing booking commits after the fast-path lookup.
	f.bookings.hideConflicts = true

	input := validInput()
	input.CustomerID = otherUserID
	_, err := f.svc.CreateBooking(context.Background(), input)
	assertCode(t, err, ErrSlotConflict)
}

func TestCreateBooking_DifferentStartTimeAllowed(t *testing.T) {
	f := newFixture(t)
	f.create(t)

	b := f.create(t, func(in *models.CreateBookingInput) {
		in.Schedule.TimeSlot = models.TimeSlot{Start: "14:00", End: "15:00"}
	})
	if b.Status != models.StatusConfirmed {
		t.Fatalf("expected second booking to be confirmed")
	}
}

func TestCreateBooking_CancelledSlotIsReusable(t *testing.T) {
	f := newFixture(t)
	first := f.create(t)
	if _, err := f.svc.CancelBooking(context.Background(), first.ID, customerID, "changed plans"); err != nil {
		t.Fatalf("CancelBooking: %v", err)
	}

	f.create(t)
}

func TestCreateBooking_RetriesOnDuplicateCode(t *testing.T) {
	f := newFixture(t)
	f.bookings.duplicateCodes = 2

	f.create(t)
}

func TestCreateBooking_GivesUpAfterRepeatedDuplicateCodes(t *testing.T) {
	f := newFixture(t)
	f.bookings.duplicateCodes = maxCodeAttempts

	_, err := f.svc.CreateBooking(context.Background(), validInput())
	if err == nil {
		t.Fatalf("expected error after %d code collisions", maxCodeAttempts)
	}
	var be *BookingError
	if errors.As(err, &be) {
		t.Fatalf("expected an internal error, got %v", be)
	}
}

func TestCreateBooking_ProfessionalNotFound(t *testing.T) {
	f := newFixture(t)

	input := validInput()
	input.ProfessionalID = "missing"
	_, err := f.svc.CreateBooking(context.Background(), input)
	assertCode(t, err, ErrNotFound)
}

func TestCreateBooking_ProfessionalUnavailable(t *testing.T) {
	for name, mutate := range map[string]func(p *models.Professional){
		"inactive":    func(p *models.Professional) { p.IsActive = false },
		"unavailable": func(p *models.Professional) { p.Availability.IsAvailable = false },
	} {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			mutate(f.pros.byID[professionalID])

			_, err := f.svc.CreateBooking(context.Background(), validInput())
			assertCode(t, err, ErrProfessionalUnavailable)
		})
	}
}

func TestCreateBooking_Validation(t *testing.T) {
	cases := map[string]struct {
		mutate func(*models.CreateBookingInput)
		field  string
	}{
		"bad phone": {
			mutate: func(in *models.CreateBookingInput) { in.Contact.Phone = "12345" },
			field:  "contact.phone",
		},
		"phone starting with 5": {
			mutate: func(in *models.CreateBookingInput) { in.Contact.Phone = "5876543210" },
			field:  "contact.phone",
		},
		"missing address": {
			mutate: func(in *models.CreateBookingInput) { in.Location.Address = "" },
			field:  "location.address",
		},
		"unknown service": {
			mutate: func(in *models.CreateBookingInput) { in.Service = "astrology" },
			field:  "service",
		},
		"bad payment method": {
			mutate: func(in *models.CreateBookingInput) { in.Payment.Method = "cheque" },
			field:  "payment.method",
		},
		"bad urgency": {
			mutate: func(in *models.CreateBookingInput) { in.ServiceDetails.Urgency = "whenever" },
			field:  "serviceDetails.urgency",
		},
		"bad start time": {
			mutate: func(in *models.CreateBookingInput) { in.Schedule.TimeSlot.Start = "25:00" },
			field:  "schedule.timeSlot.start",
		},
		"missing date": {
			mutate: func(in *models.CreateBookingInput) { in.Schedule.Date = "" },
			field:  "schedule.date",
		},
		"unparseable date": {
			mutate: func(in *models.CreateBookingInput) { in.Schedule.Date = "10/03/2025" },
			field:  "schedule.date",
		},
		"end before start": {
			mutate: func(in *models.CreateBookingInput) { in.Schedule.TimeSlot.End = "10:00" },
			field:  "schedule.timeSlot.end",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			input := validInput()
			tc.mutate(&input)

			_, err := f.svc.CreateBooking(context.Background(), input)
			assertCode(t, err, ErrValidation)

			var be *BookingError
			if !errors.As(err, &be) {
				t.Fatalf("expected *BookingError, got %T", err)
			}
			if _, ok := be.Details[tc.field]; !ok {
				t.Fatalf("expected detail for %q, got %v", tc.field, be.Details)
			}
			if len(f.bookings.bookings) != 0 {
				t.Fatalf("expected nothing persisted")
			}
		})
	}
}

func TestNewBookingCode_Format(t *testing.T) {
	now := time.UnixMilli(1741593600000)
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code := newBookingCode(now)
		if !bookingCodePattern.MatchString(code) {
			t.Fatalf("unexpected code %q", code)
		}
		if code[:15] != "BK1741593600000" {
			t.Fatalf("expected millis prefix, got %q", code)
		}
		seen[code] = true
	}
	if len(seen) < 2 {
		t.Fatalf("expected random suffixes to vary")
	}
}
