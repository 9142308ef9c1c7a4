package booking

import (
	"testing"
	"time"

	"github.com/renjoshini/hereforyou/config"
	"github.com/renjoshini/hereforyou/models"
)

func TestPolicy_ScheduledAtUsesPolicyTimezone(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	p := Policy{Location: ist, RefundCutoff: 2 * time.Hour}
	s := models.Schedule{
		Date:     time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		TimeSlot: models.TimeSlot{Start: "11:00"},
	}

	got := p.ScheduledAt(s)
	want := time.Date(2025, 3, 10, 5, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	// 03:00 UTC is 08:30 IST, two and a half hours ahead of the visit.
	if !p.RefundEligible(s, time.Date(2025, 3, 10, 3, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected refund eligibility at 08:30 IST")
	}
	if p.RefundEligible(s, time.Date(2025, 3, 10, 4, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected no refund at 09:30 IST")
	}
}

func TestPolicy_ScheduledAtWithoutStart(t *testing.T) {
	p := Policy{Location: time.UTC}
	s := models.Schedule{Date: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)}

	if got := p.ScheduledAt(s); !got.Equal(s.Date) {
		t.Fatalf("expected start of day, got %v", got)
	}
}

func TestPolicy_CancellationWithoutEstimate(t *testing.T) {
	p := Policy{Location: time.UTC, RefundCutoff: 2 * time.Hour}
	b := &models.Booking{Schedule: models.Schedule{
		Date:     time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		TimeSlot: models.TimeSlot{Start: "09:00"},
	}}

	c := p.Cancellation(b, "late", "u1", testNow)
	if c.RefundEligible || c.CancellationCharge != 0 {
		t.Fatalf("expected ineligible with zero charge, got %+v", c)
	}
}

func TestPolicy_Commission(t *testing.T) {
	p := Policy{CommissionRate: 15}

	if got := p.Commission(15, 1000); got != 150 {
		t.Fatalf("expected 150, got %v", got)
	}
	if got := p.Commission(10, 1000); got != 100 {
		t.Fatalf("expected booking rate to win, got %v", got)
	}
	if got := p.Commission(0, 200); got != 30 {
		t.Fatalf("expected policy rate fallback, got %v", got)
	}
	if got := p.Commission(15, 0); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}

func TestPolicyFromConfig(t *testing.T) {
	p, err := PolicyFromConfig(config.Config{
		CommissionRate:    12.5,
		RefundCutoffHours: 4,
		AvailabilityDays:  14,
		SlotsPerDay:       6,
		Timezone:          "UTC",
	})
	if err != nil {
		t.Fatalf("PolicyFromConfig: %v", err)
	}
	if p.CommissionRate != 12.5 || p.RefundCutoff != 4*time.Hour || p.AvailabilityDays != 14 || p.SlotsPerDay != 6 {
		t.Fatalf("unexpected policy %+v", p)
	}
	if p.Location != time.UTC {
		t.Fatalf("expected UTC, got %v", p.Location)
	}

	def, err := PolicyFromConfig(config.Config{})
	if err != nil {
		t.Fatalf("PolicyFromConfig: %v", err)
	}
	if def.CommissionRate != 15 || def.RefundCutoff != 2*time.Hour || def.AvailabilityDays != 30 || def.SlotsPerDay != 8 {
		t.Fatalf("unexpected defaults %+v", def)
	}

	if _, err := PolicyFromConfig(config.Config{Timezone: "Mars/Olympus"}); err == nil {
		t.Fatalf("expected error for unknown timezone")
	}
}

func TestParseHHMM(t *testing.T) {
	valid := map[string][2]int{"00:00": {0, 0}, "09:30": {9, 30}, "23:59": {23, 59}}
	for in, want := range valid {
		h, m, ok := parseHHMM(in)
		if !ok || h != want[0] || m != want[1] {
			t.Fatalf("parseHHMM(%q) = %d, %d, %v", in, h, m, ok)
		}
	}
	for _, in := range []string{"", "9:30", "24:00", "12:60", "12-30", "ab:cd", "12:30:00"} {
		if _, _, ok := parseHHMM(in); ok {
			t.Fatalf("expected %q to be rejected", in)
		}
	}
}

func TestParseScheduleDate(t *testing.T) {
	want := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		in      string
		hasTime bool
	}{
		{"2025-03-10", false},
		{"2025-03-10T00:00:00Z", false},
		{"2025-03-10T00:00:00+05:30", false},
		{"2025-03-10T23:15:00Z", true},
	}
	for _, tc := range cases {
		got, err := parseScheduleDate(tc.in)
		if err != nil {
			t.Fatalf("parseScheduleDate(%q): %v", tc.in, err)
		}
		if !got.Day.Equal(want) {
			t.Fatalf("parseScheduleDate(%q).Day = %v, want %v", tc.in, got.Day, want)
		}
		if (got.At != nil) != tc.hasTime {
			t.Fatalf("parseScheduleDate(%q).At = %v, want time=%v", tc.in, got.At, tc.hasTime)
		}
	}
	if _, err := parseScheduleDate("March 10"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestScheduleDate_InLocation(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	sd, err := parseScheduleDate("2025-03-10T23:15:00Z")
	if err != nil {
		t.Fatalf("parseScheduleDate: %v", err)
	}

	day, start := sd.inLocation(time.UTC, "")
	if !day.Equal(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)) || start != "23:15" {
		t.Fatalf("UTC: got %v %q", day, start)
	}

	day, start = sd.inLocation(ist, "")
	if !day.Equal(time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)) || start != "04:45" {
		t.Fatalf("IST: got %v %q", day, start)
	}

	day, start = sd.inLocation(ist, "09:00")
	if !day.Equal(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)) || start != "09:00" {
		t.Fatalf("explicit start must win: got %v %q", day, start)
	}
}
