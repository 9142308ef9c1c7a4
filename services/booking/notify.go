package booking

import (
	"context"
	"fmt"

	"github.com/renjoshini/hereforyou/models"
	"github.com/renjoshini/hereforyou/services/events"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Routing keys for lifecycle events.
const (
	EventBookingCreated       = "booking.created"
	EventBookingStatusChanged = "booking.status_changed"
	EventBookingCancelled     = "booking.cancelled"
)

const scheduleDateLayout = "Mon, 02 Jan 2006"

// notifyCreated tells the customer the booking is confirmed and the
// professional that a new booking arrived.
func (s *DefaultBookingService) notifyCreated(ctx context.Context, b *models.Booking, professional *models.Professional) {
	customer := s.customerRecipient(b)
	date := b.Schedule.Date.Format(scheduleDateLayout)

	s.send(ctx, models.Notification{
		Type:      models.NotificationBookingConfirmed,
		Recipient: customer,
		Title:     "Booking Confirmed - HereForYou",
		Body:      fmt.Sprintf("Your booking %s has been confirmed for %s", b.BookingCode, date),
		Data:      bookingData(b),
	})

	if pro, ok := s.userRecipient(professional.UserID); ok {
		s.send(ctx, models.Notification{
			Type:      models.NotificationNewBooking,
			Recipient: pro,
			Title:     "New Booking Received",
			Body: fmt.Sprintf("New booking received! Booking ID: %s. Date: %s. Customer: %s",
				b.BookingCode, date, customer.Name),
			Data: bookingData(b),
		})
	}
}

// notifyStatusChange informs the counter-party: the customer when the
// professional acted, the professional when the customer cancelled.
func (s *DefaultBookingService) notifyStatusChange(ctx context.Context, b *models.Booking, roles Role) {
	body := fmt.Sprintf("Booking %s status updated to: %s", b.BookingCode, b.Status)

	switch {
	case roles.has(RoleProfessional):
		s.send(ctx, models.Notification{
			Type:      models.NotificationStatusUpdated,
			Recipient: s.customerRecipient(b),
			Title:     "Booking Update",
			Body:      body,
			Data:      bookingData(b),
		})
	case roles.has(RoleCustomer) && b.Status == models.StatusCancelled:
		professional, err := s.ProfessionalRepo.GetByID(ctx, b.ProfessionalID)
		if err != nil {
			s.Logger.Warn("Could not resolve professional for notification",
				zap.String("professionalID", b.ProfessionalID), zap.Error(err))
			return
		}
		if pro, ok := s.userRecipient(professional.UserID); ok {
			s.send(ctx, models.Notification{
				Type:      models.NotificationBookingCancelled,
				Recipient: pro,
				Title:     "Booking Cancelled",
				Body:      body,
				Data:      bookingData(b),
			})
		}
	}
}

// customerRecipient prefers the account's details and falls back to the
// booking contact.
func (s *DefaultBookingService) customerRecipient(b *models.Booking) models.Recipient {
	if r, ok := s.userRecipient(b.CustomerID); ok {
		if r.Phone == "" {
			r.Phone = b.Contact.Phone
		}
		if r.Name == "" {
			r.Name = b.Contact.Name
		}
		return r
	}
	return models.Recipient{UserID: b.CustomerID, Name: b.Contact.Name, Phone: b.Contact.Phone}
}

func (s *DefaultBookingService) userRecipient(userID string) (models.Recipient, bool) {
	if s.UserRepo == nil || userID == "" {
		return models.Recipient{}, false
	}
	u, err := s.UserRepo.GetByID(userID)
	if err != nil {
		s.Logger.Warn("Could not resolve notification recipient", zap.String("userID", userID), zap.Error(err))
		return models.Recipient{}, false
	}
	return models.Recipient{
		UserID:   u.ID,
		Name:     u.Name,
		Phone:    u.Phone,
		Email:    u.Email,
		FCMToken: u.FCMToken,
	}, true
}

// send hands n to the notifier. Failures are logged, never returned: the
// booking change has already been committed.
func (s *DefaultBookingService) send(ctx context.Context, n models.Notification) {
	if s.Notifier == nil {
		return
	}
	n.ID = uuid.New().String()
	n.CreatedAt = s.now()
	if err := s.Notifier.Notify(ctx, n); err != nil {
		s.Logger.Error("Failed to queue notification",
			zap.String("type", n.Type),
			zap.String("recipient", n.Recipient.UserID),
			zap.Error(err),
		)
	}
}

func (s *DefaultBookingService) publish(ctx context.Context, routingKey string, b *models.Booking, previous models.BookingStatus, actorID string) {
	if s.Events == nil {
		return
	}
	event := events.BookingEvent{
		Type:           routingKey,
		BookingID:      b.ID,
		BookingCode:    b.BookingCode,
		CustomerID:     b.CustomerID,
		ProfessionalID: b.ProfessionalID,
		Status:         string(b.Status),
		PreviousStatus: string(previous),
		ActorID:        actorID,
		OccurredAt:     s.now(),
	}
	if err := s.Events.Publish(ctx, routingKey, event); err != nil {
		s.Logger.Error("Failed to publish booking event",
			zap.String("routingKey", routingKey),
			zap.String("bookingCode", b.BookingCode),
			zap.Error(err),
		)
	}
}

func bookingData(b *models.Booking) map[string]string {
	return map[string]string{
		"bookingId":   b.ID,
		"bookingCode": b.BookingCode,
		"status":      string(b.Status),
		"type":        "booking",
	}
}
