package bookingRepo

import (
	"context"
	"errors"
	"time"

	"github.com/renjoshini/hereforyou/models"
)

var (
	// ErrNotFound is returned when no booking matches the lookup.
	ErrNotFound = errors.New("booking not found")
	// ErrSlotTaken is returned when another slot-holding booking already exists
	// for the same professional, date and start time.
	ErrSlotTaken = errors.New("time slot is already booked")
	// ErrStatusChanged is returned when a conditional update lost a race with
	// another writer.
	ErrStatusChanged = errors.New("booking status changed concurrently")
	// ErrDuplicateCode is returned when the booking code collides with an existing one.
	ErrDuplicateCode = errors.New("booking code already exists")
)

// TransitionChange describes one status change and its side effects.
type TransitionChange struct {
	To            models.BookingStatus
	Entry         models.TimelineEntry
	WorkStarted   *time.Time
	WorkCompleted *time.Time
	Cancellation  *models.Cancellation
	// CompletedBy, when set, is the professional whose completedBookings
	// counter is incremented in the same transaction.
	CompletedBy string
}

// BookingRepository defines the data access methods used by the booking lifecycle.
type BookingRepository interface {
	// CreateWithStatistics checks the slot, inserts the booking and increments
	// the professional's totalBookings inside one transaction.
	CreateWithStatistics(ctx context.Context, booking *models.Booking) error
	// GetByID retrieves a booking by its internal ID.
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// GetByReference retrieves a booking by booking code or internal ID.
	GetByReference(ctx context.Context, ref string) (*models.Booking, error)
	// FindActiveConflict returns a slot-holding booking for the same slot, or nil.
	FindActiveConflict(ctx context.Context, professionalID string, date time.Time, start string) (*models.Booking, error)
	// ApplyTransition applies change if the booking is still in status from.
	ApplyTransition(ctx context.Context, bookingID string, from models.BookingStatus, change TransitionChange) (*models.Booking, error)
	// UpdateProfessionalLocation overwrites the tracked professional location.
	UpdateProfessionalLocation(ctx context.Context, bookingID string, fix models.GeoFix) error
	// SetActualCost records the final cost, breakdown and commission amount.
	SetActualCost(ctx context.Context, bookingID string, actualCost float64, breakdown []models.CostItem, commission float64) (*models.Booking, error)
	// ListByCustomer returns a page of a customer's bookings, newest first.
	ListByCustomer(ctx context.Context, customerID string, filter models.BookingListFilter) ([]models.Booking, int64, error)
	// ListByProfessional returns a page of a professional's bookings by schedule date.
	ListByProfessional(ctx context.Context, professionalID string, filter models.BookingListFilter) ([]models.Booking, int64, error)
	// ActiveScheduleDates returns the schedule dates of slot-holding bookings in [from, to].
	ActiveScheduleDates(ctx context.Context, professionalID string, from, to time.Time) ([]time.Time, error)
}
