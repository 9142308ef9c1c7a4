package models

import "time"

// Recipient identifies where a notification should be delivered.
type Recipient struct {
	UserID   string `json:"userId"`
	Name     string `json:"name,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
	FCMToken string `json:"fcmToken,omitempty"`
}

// Notification is a message queued for delivery to a recipient.
type Notification struct {
	ID        string            `json:"id"`
	Type      string            `json:"type"`
	Recipient Recipient         `json:"recipient"`
	Title     string            `json:"title"`
	Body      string            `json:"body"`
	Data      map[string]string `json:"data,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
}

const (
	NotificationBookingConfirmed = "booking_confirmed"
	NotificationNewBooking       = "new_booking"
	NotificationStatusUpdated    = "booking_status_updated"
	NotificationBookingCancelled = "booking_cancelled"
)
