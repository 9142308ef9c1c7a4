package models

import "time"

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	StatusPending     BookingStatus = "pending"
	StatusConfirmed   BookingStatus = "confirmed"
	StatusAssigned    BookingStatus = "assigned"
	StatusInProgress  BookingStatus = "in-progress"
	StatusCompleted   BookingStatus = "completed"
	StatusCancelled   BookingStatus = "cancelled"
	StatusRescheduled BookingStatus = "rescheduled"
)

// IsTerminal reports whether no further transition is permitted.
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// HoldsSlot reports whether a booking in this status blocks its time slot
// for other customers.
func (s BookingStatus) HoldsSlot() bool {
	return s == StatusConfirmed || s == StatusInProgress
}

// Valid reports whether s is a known status.
func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusAssigned, StatusInProgress,
		StatusCompleted, StatusCancelled, StatusRescheduled:
		return true
	}
	return false
}

// SlotHoldingStatuses lists the statuses that occupy a professional's slot.
var SlotHoldingStatuses = []BookingStatus{StatusConfirmed, StatusInProgress}

// Booking represents a customer's booking of a professional.
type Booking struct {
	ID             string          `bson:"id" json:"id"`
	BookingCode    string          `bson:"bookingCode" json:"bookingCode"`
	CustomerID     string          `bson:"customerId" json:"customerId"`
	ProfessionalID string          `bson:"professionalId" json:"professionalId"`
	Service        ServiceCategory `bson:"service" json:"service"`
	ServiceDetails ServiceDetails  `bson:"serviceDetails" json:"serviceDetails"`
	Schedule       Schedule        `bson:"schedule" json:"schedule"`
	Location       BookingLocation `bson:"location" json:"location"`
	Contact        Contact         `bson:"contact" json:"contact"`
	Pricing        Pricing         `bson:"pricing" json:"pricing"`
	Payment        Payment         `bson:"payment" json:"payment"`
	Status         BookingStatus   `bson:"status" json:"status"`
	Timeline       []TimelineEntry `bson:"timeline" json:"timeline"`
	Tracking       Tracking        `bson:"tracking" json:"tracking"`
	Cancellation   *Cancellation   `bson:"cancellation,omitempty" json:"cancellation,omitempty"`
	Commission     Commission      `bson:"commission" json:"commission"`
	// HoldsSlot is set at creation and cleared once the booking leaves a
	// slot-holding status. It backs the partial unique index on the slot.
	HoldsSlot bool      `bson:"holdsSlot" json:"-"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

type ServiceDetails struct {
	Type                string  `bson:"type,omitempty" json:"type,omitempty"`
	Description         string  `bson:"description,omitempty" json:"description,omitempty"`
	Urgency             string  `bson:"urgency,omitempty" json:"urgency,omitempty" validate:"omitempty,oneof=normal urgent emergency"`
	EstimatedDuration   float64 `bson:"estimatedDuration,omitempty" json:"estimatedDuration,omitempty" validate:"gte=0"`
	SpecialInstructions string  `bson:"specialInstructions,omitempty" json:"specialInstructions,omitempty"`
}

// TimeSlot is a wall-clock window within the scheduled day, in "HH:MM".
type TimeSlot struct {
	Start string `bson:"start" json:"start" validate:"omitempty,hhmm"`
	End   string `bson:"end,omitempty" json:"end,omitempty" validate:"omitempty,hhmm"`
}

type Schedule struct {
	Date       time.Time `bson:"date" json:"date" validate:"required"`
	TimeSlot   TimeSlot  `bson:"timeSlot" json:"timeSlot"`
	IsFlexible bool      `bson:"isFlexible" json:"isFlexible"`
}

type Coordinates struct {
	Latitude  float64 `bson:"latitude" json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `bson:"longitude" json:"longitude" validate:"gte=-180,lte=180"`
}

type BookingLocation struct {
	Address     string       `bson:"address" json:"address" validate:"required"`
	City        string       `bson:"city,omitempty" json:"city,omitempty"`
	Pincode     string       `bson:"pincode,omitempty" json:"pincode,omitempty"`
	Coordinates *Coordinates `bson:"coordinates,omitempty" json:"coordinates,omitempty"`
	Landmarks   string       `bson:"landmarks,omitempty" json:"landmarks,omitempty"`
}

type Contact struct {
	Name           string `bson:"name" json:"name" validate:"required"`
	Phone          string `bson:"phone" json:"phone" validate:"required,indianphone"`
	AlternatePhone string `bson:"alternatePhone,omitempty" json:"alternatePhone,omitempty" validate:"omitempty,indianphone"`
}

type CostRange struct {
	Min float64 `bson:"min" json:"min"`
	Max float64 `bson:"max" json:"max"`
}

type CostItem struct {
	Item string  `bson:"item" json:"item" validate:"required"`
	Cost float64 `bson:"cost" json:"cost" validate:"gte=0"`
}

type Pricing struct {
	EstimatedCost *CostRange `bson:"estimatedCost,omitempty" json:"estimatedCost,omitempty"`
	ActualCost    *float64   `bson:"actualCost,omitempty" json:"actualCost,omitempty"`
	Breakdown     []CostItem `bson:"breakdown,omitempty" json:"breakdown,omitempty"`
	Currency      string     `bson:"currency" json:"currency"`
}

type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentUPI    PaymentMethod = "upi"
	PaymentCard   PaymentMethod = "card"
	PaymentWallet PaymentMethod = "wallet"
)

type Payment struct {
	Method        PaymentMethod `bson:"method" json:"method" validate:"required,oneof=cash upi card wallet"`
	Status        string        `bson:"status" json:"status"`
	TransactionID string        `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	PaidAt        *time.Time    `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
	RefundAmount  float64       `bson:"refundAmount,omitempty" json:"refundAmount,omitempty"`
	RefundReason  string        `bson:"refundReason,omitempty" json:"refundReason,omitempty"`
}

// TimelineEntry is one row of the append-only audit trail.
type TimelineEntry struct {
	Status    BookingStatus `bson:"status" json:"status"`
	Timestamp time.Time     `bson:"timestamp" json:"timestamp"`
	Note      string        `bson:"note,omitempty" json:"note,omitempty"`
	UpdatedBy string        `bson:"updatedBy" json:"updatedBy"`
}

type GeoFix struct {
	Latitude    float64   `bson:"latitude" json:"latitude"`
	Longitude   float64   `bson:"longitude" json:"longitude"`
	LastUpdated time.Time `bson:"lastUpdated" json:"lastUpdated"`
}

type Tracking struct {
	ProfessionalLocation *GeoFix    `bson:"professionalLocation,omitempty" json:"professionalLocation,omitempty"`
	EstimatedArrival     *time.Time `bson:"estimatedArrival,omitempty" json:"estimatedArrival,omitempty"`
	ActualArrival        *time.Time `bson:"actualArrival,omitempty" json:"actualArrival,omitempty"`
	WorkStarted          *time.Time `bson:"workStarted,omitempty" json:"workStarted,omitempty"`
	WorkCompleted        *time.Time `bson:"workCompleted,omitempty" json:"workCompleted,omitempty"`
}

type Cancellation struct {
	Reason             string    `bson:"reason" json:"reason"`
	CancelledBy        string    `bson:"cancelledBy" json:"cancelledBy"`
	CancelledAt        time.Time `bson:"cancelledAt" json:"cancelledAt"`
	RefundEligible     bool      `bson:"refundEligible" json:"refundEligible"`
	CancellationCharge float64   `bson:"cancellationCharge" json:"cancellationCharge"`
}

type Commission struct {
	Rate   float64  `bson:"rate" json:"rate"`
	Amount *float64 `bson:"amount,omitempty" json:"amount,omitempty"`
}

// CancellationResult is returned to the customer after a cancellation.
type CancellationResult struct {
	BookingCode        string  `json:"bookingId"`
	RefundEligible     bool    `json:"refundEligible"`
	CancellationCharge float64 `json:"cancellationCharges"`
}
