package models

import "time"

// Professional is a service provider profile owned by a user account.
type Professional struct {
	ID           string                 `bson:"id" json:"id"`
	UserID       string                 `bson:"userId" json:"userId"`
	Services     []ServiceCategory      `bson:"services" json:"services"`
	Pricing      ProfessionalPricing    `bson:"pricing" json:"pricing"`
	Availability ProfessionalSchedule   `bson:"availability" json:"availability"`
	Location     ProfessionalLocation   `bson:"location" json:"location"`
	Statistics   ProfessionalStatistics `bson:"statistics" json:"statistics"`
	IsActive     bool                   `bson:"isActive" json:"isActive"`
	JoinedAt     time.Time              `bson:"joinedAt" json:"joinedAt"`
	UpdatedAt    time.Time              `bson:"updatedAt" json:"updatedAt"`
}

type ProfessionalPricing struct {
	HourlyRate    float64 `bson:"hourlyRate" json:"hourlyRate"`
	MinimumCharge float64 `bson:"minimumCharge" json:"minimumCharge"`
	Currency      string  `bson:"currency" json:"currency"`
}

type WorkingHours struct {
	Start string `bson:"start" json:"start"`
	End   string `bson:"end" json:"end"`
}

type ProfessionalSchedule struct {
	WorkingDays  []string     `bson:"workingDays" json:"workingDays"`
	WorkingHours WorkingHours `bson:"workingHours" json:"workingHours"`
	IsAvailable  bool         `bson:"isAvailable" json:"isAvailable"`
}

type ProfessionalLocation struct {
	City          string       `bson:"city" json:"city"`
	Areas         []string     `bson:"areas,omitempty" json:"areas,omitempty"`
	Coordinates   *Coordinates `bson:"coordinates,omitempty" json:"coordinates,omitempty"`
	ServiceRadius float64      `bson:"serviceRadius" json:"serviceRadius"`
}

type ProfessionalStatistics struct {
	TotalBookings     int     `bson:"totalBookings" json:"totalBookings"`
	CompletedBookings int     `bson:"completedBookings" json:"completedBookings"`
	CancelledBookings int     `bson:"cancelledBookings" json:"cancelledBookings"`
	TotalEarnings     float64 `bson:"totalEarnings" json:"totalEarnings"`
}

// Bookable reports whether the professional currently accepts bookings.
func (p *Professional) Bookable() bool {
	return p.IsActive && p.Availability.IsAvailable
}

// CompletionRate returns completed bookings as a percentage of all bookings.
func (p *Professional) CompletionRate() float64 {
	if p.Statistics.TotalBookings == 0 {
		return 0
	}
	return float64(p.Statistics.CompletedBookings) / float64(p.Statistics.TotalBookings) * 100
}
