package notification

import (
	"context"
	"fmt"

	"github.com/renjoshini/hereforyou/models"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// MessageSender is the subset of *messaging.Client used for push delivery.
type MessageSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// FCMSender delivers push notifications through Firebase Cloud Messaging.
type FCMSender struct {
	client MessageSender
}

func NewFCMSender(client MessageSender) *FCMSender {
	return &FCMSender{client: client}
}

func (s *FCMSender) Channel() string { return "push" }

func (s *FCMSender) Send(ctx context.Context, n models.Notification) error {
	data := make(map[string]string, len(n.Data)+1)
	for k, v := range n.Data {
		data[k] = v
	}
	data["notificationType"] = n.Type

	msg := &messaging.Message{
		Token: n.Recipient.FCMToken,
		Notification: &messaging.Notification{
			Title: n.Title,
			Body:  n.Body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "bookings",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{Sound: "default"},
			},
		},
	}
	if _, err := s.client.Send(ctx, msg); err != nil {
		return fmt.Errorf("fcm send to %s: %w", n.Recipient.UserID, err)
	}
	return nil
}

// LogSMSSender records SMS messages in the log instead of calling a gateway.
type LogSMSSender struct {
	logger *zap.Logger
}

func NewLogSMSSender(logger *zap.Logger) *LogSMSSender {
	return &LogSMSSender{logger: logger}
}

func (s *LogSMSSender) Channel() string { return "sms" }

func (s *LogSMSSender) Send(_ context.Context, n models.Notification) error {
	s.logger.Info("SMS sent",
		zap.String("to", n.Recipient.Phone),
		zap.String("type", n.Type),
		zap.String("message", n.Body),
	)
	return nil
}
