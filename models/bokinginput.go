package models

// CreateBookingInput carries everything a customer supplies when booking.
type CreateBookingInput struct {
	CustomerID     string          `json:"-" validate:"required"`
	ProfessionalID string          `json:"professional" binding:"required" validate:"required"`
	Service        ServiceCategory `json:"service" binding:"required" validate:"required,servicecategory"`
	ServiceDetails ServiceDetails  `json:"serviceDetails"`
	Schedule       ScheduleInput   `json:"schedule"`
	Location       BookingLocation `json:"location"`
	Contact        Contact         `json:"contact"`
	Payment        PaymentInput    `json:"payment"`
}

// ScheduleInput is the requested visit. Date accepts "2006-01-02" or RFC 3339.
type ScheduleInput struct {
	Date       string   `json:"date" validate:"required"`
	TimeSlot   TimeSlot `json:"timeSlot"`
	IsFlexible bool     `json:"isFlexible"`
}

type PaymentInput struct {
	Method PaymentMethod `json:"method" binding:"required" validate:"required,oneof=cash upi card wallet"`
}

// StatusUpdateInput is the body of a status transition request.
type StatusUpdateInput struct {
	Status BookingStatus `json:"status" binding:"required"`
	Note   string        `json:"note"`
}

// CancelInput is the body of a customer cancellation request.
type CancelInput struct {
	Reason string `json:"reason" binding:"required"`
}

// LocationInput is a professional's live position.
type LocationInput struct {
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
}

// ActualCostInput records the final bill for a booking.
type ActualCostInput struct {
	ActualCost float64    `json:"actualCost" binding:"gte=0"`
	Breakdown  []CostItem `json:"breakdown" validate:"dive"`
}

// BookingListFilter narrows a booking listing.
type BookingListFilter struct {
	Status BookingStatus
	// Day restricts results to bookings scheduled on this calendar day when non-empty ("2006-01-02").
	Day   string
	Page  int
	Limit int
}
