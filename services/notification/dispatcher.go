package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/renjoshini/hereforyou/models"
	"github.com/renjoshini/hereforyou/utils"

	"go.uber.org/zap"
)

// ErrNoChannel is returned when a recipient has no usable contact.
var ErrNoChannel = errors.New("recipient has no delivery channel")

// Dispatcher picks a channel per notification: push when the recipient has a
// device token, SMS otherwise.
type Dispatcher struct {
	Push   Sender
	SMS    Sender
	logger *zap.Logger
}

func NewDispatcher(push, sms Sender) *Dispatcher {
	return &Dispatcher{Push: push, SMS: sms, logger: utils.GetLogger()}
}

// Deliver sends n synchronously. A failed push falls back to SMS.
func (d *Dispatcher) Deliver(ctx context.Context, n models.Notification) error {
	if n.Recipient.FCMToken != "" && d.Push != nil {
		err := d.Push.Send(ctx, n)
		if err == nil {
			return nil
		}
		d.logger.Warn("Push delivery failed, falling back to SMS",
			zap.String("notificationID", n.ID), zap.Error(err))
		if n.Recipient.Phone == "" {
			return fmt.Errorf("push delivery failed: %w", err)
		}
	}
	if n.Recipient.Phone != "" && d.SMS != nil {
		return d.SMS.Send(ctx, n)
	}
	return ErrNoChannel
}
