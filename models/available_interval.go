package models

import "time"

// DayAvailability summarises a professional's load on one calendar day.
type DayAvailability struct {
	Date           time.Time `json:"date"`
	IsAvailable    bool      `json:"isAvailable"`
	BookedSlots    int       `json:"bookedSlots"`
	AvailableSlots int       `json:"availableSlots"`
}

// AvailabilityCalendar is the rolling calendar returned for a professional.
type AvailabilityCalendar struct {
	ProfessionalID string            `json:"professionalId"`
	CompletionRate float64           `json:"completionRate"`
	Days           []DayAvailability `json:"days"`
}
