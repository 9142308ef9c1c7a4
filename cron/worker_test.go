package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/renjoshini/hereforyou/models"
	"github.com/renjoshini/hereforyou/services/notification"
	"github.com/renjoshini/hereforyou/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

type stubDeliverer struct {
	err       error
	delivered []models.Notification
}

func (s *stubDeliverer) Deliver(_ context.Context, n models.Notification) error {
	s.delivered = append(s.delivered, n)
	return s.err
}

func notificationTask(t *testing.T) *asynq.Task {
	t.Helper()
	task, _, err := tasks.NewNotificationTask(models.Notification{
		ID:        "n1",
		Type:      models.NotificationNewBooking,
		Recipient: models.Recipient{UserID: "u1", Phone: "9876543210"},
		Body:      "New booking received!",
	})
	if err != nil {
		t.Fatalf("NewNotificationTask: %v", err)
	}
	return task
}

func TestHandleNotificationTask_Delivers(t *testing.T) {
	d := &stubDeliverer{}

	if err := HandleNotificationTask(d)(context.Background(), notificationTask(t)); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if len(d.delivered) != 1 || d.delivered[0].ID != "n1" {
		t.Fatalf("unexpected deliveries %+v", d.delivered)
	}
}

func TestHandleNotificationTask_BadPayloadSkipsRetry(t *testing.T) {
	d := &stubDeliverer{}
	task := asynq.NewTask(tasks.TypeSendNotification, []byte("{not json"))

	err := HandleNotificationTask(d)(context.Background(), task)
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected SkipRetry, got %v", err)
	}
	if len(d.delivered) != 0 {
		t.Fatalf("expected no delivery")
	}
}

func TestHandleNotificationTask_NoChannelSkipsRetry(t *testing.T) {
	d := &stubDeliverer{err: notification.ErrNoChannel}

	err := HandleNotificationTask(d)(context.Background(), notificationTask(t))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected SkipRetry, got %v", err)
	}
}

func TestHandleNotificationTask_TransientErrorRetries(t *testing.T) {
	sendErr := errors.New("gateway timeout")
	d := &stubDeliverer{err: sendErr}

	err := HandleNotificationTask(d)(context.Background(), notificationTask(t))
	if !errors.Is(err, sendErr) {
		t.Fatalf("expected delivery error, got %v", err)
	}
	if errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected transient errors to be retried")
	}
}

func TestMonitorRedisConnection_StopsOnCancel(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		monitorRedisConnection(ctx, client, 10*time.Millisecond)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("monitor did not stop after cancel")
	}
	if err := client.Ping(context.Background()).Err(); !errors.Is(err, redis.ErrClosed) {
		t.Fatalf("expected the monitor to close its client, got %v", err)
	}
}
