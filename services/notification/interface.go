package notification

import (
	"context"

	"github.com/renjoshini/hereforyou/models"
)

// Notifier accepts a notification for delivery. Implementations must not
// block on the delivery channel itself.
type Notifier interface {
	Notify(ctx context.Context, n models.Notification) error
}

// Sender delivers a notification over one channel (push, SMS, ...).
type Sender interface {
	Channel() string
	Send(ctx context.Context, n models.Notification) error
}
