package booking

import (
	"context"
	"time"

	bookingRepo "github.com/renjoshini/hereforyou/database/repository/booking"
	professionalRepo "github.com/renjoshini/hereforyou/database/repository/professional"
	userRepo "github.com/renjoshini/hereforyou/database/repository/user"
	"github.com/renjoshini/hereforyou/models"
	"github.com/renjoshini/hereforyou/services/events"
	"github.com/renjoshini/hereforyou/services/notification"
	"github.com/renjoshini/hereforyou/utils"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// BookingService is the booking lifecycle: creation with conflict
// detection, status transitions, cancellation and live tracking.
type BookingService interface {
	CreateBooking(ctx context.Context, input models.CreateBookingInput) (*models.Booking, error)
	UpdateStatus(ctx context.Context, bookingID, actorID string, input models.StatusUpdateInput) (*models.Booking, error)
	CancelBooking(ctx context.Context, bookingID, customerID, reason string) (*models.CancellationResult, error)
	UpdateLocation(ctx context.Context, bookingID, professionalUserID string, latitude, longitude float64) error
	RecordActualCost(ctx context.Context, bookingID, professionalUserID string, input models.ActualCostInput) (*models.Booking, error)

	GetBooking(ctx context.Context, ref, actorID string) (*models.Booking, error)
	ListCustomerBookings(ctx context.Context, customerID string, filter models.BookingListFilter) (*models.BookingPage, error)
	ListProfessionalBookings(ctx context.Context, professionalUserID string, filter models.BookingListFilter) (*models.BookingPage, error)
	GetAvailability(ctx context.Context, professionalID string) (*models.AvailabilityCalendar, error)
}

// AvailabilityCache stores computed availability calendars per professional.
type AvailabilityCache interface {
	Get(ctx context.Context, professionalID string) (*models.AvailabilityCalendar, bool)
	Set(ctx context.Context, calendar *models.AvailabilityCalendar, ttl time.Duration)
	Invalidate(ctx context.Context, professionalID string)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo             bookingRepo.BookingRepository
	ProfessionalRepo professionalRepo.ProfessionalRepository
	UserRepo         userRepo.UserRepository
	Notifier         notification.Notifier
	Events           events.Publisher
	Cache            AvailabilityCache
	Policy           Policy
	Logger           *zap.Logger
	// Now is the clock; tests pin it.
	Now func() time.Time

	validate *validator.Validate
}

// NewBookingService wires a DefaultBookingService. Notifier, Events and Cache
// may be nil, in which case that side effect is skipped.
func NewBookingService(
	repo bookingRepo.BookingRepository,
	professionals professionalRepo.ProfessionalRepository,
	users userRepo.UserRepository,
	notifier notification.Notifier,
	publisher events.Publisher,
	cache AvailabilityCache,
	policy Policy,
) *DefaultBookingService {
	return &DefaultBookingService{
		Repo:             repo,
		ProfessionalRepo: professionals,
		UserRepo:         users,
		Notifier:         notifier,
		Events:           publisher,
		Cache:            cache,
		Policy:           policy,
		Logger:           utils.GetLogger(),
		Now:              time.Now,
		validate:         newValidator(),
	}
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
