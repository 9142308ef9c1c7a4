package cron

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/renjoshini/hereforyou/config"
	"github.com/renjoshini/hereforyou/models"
	"github.com/renjoshini/hereforyou/services/notification"
	"github.com/renjoshini/hereforyou/services/tasks"
	"github.com/renjoshini/hereforyou/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Deliverer sends one notification synchronously.
type Deliverer interface {
	Deliver(ctx context.Context, n models.Notification) error
}

// QueueRedisOpt returns the asynq connection settings for the notification queue.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitNotificationWorker runs the notification worker in the background and
// returns the server so the caller can shut it down. The queue Redis monitor
// stops when ctx is cancelled.
func InitNotificationWorker(ctx context.Context, deliverer Deliverer) *asynq.Server {
	logger := utils.GetLogger()

	concurrency := config.AppConfig.NotificationConcurrency
	if concurrency <= 0 {
		concurrency = 10
	}
	srv := asynq.NewServer(
		QueueRedisOpt(),
		asynq.Config{
			Concurrency: concurrency,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendNotification, HandleNotificationTask(deliverer))

	monitor := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	go monitorRedisConnection(ctx, monitor, 10*time.Second)

	go func() {
		logger.Info("Starting notification worker", zap.Int("concurrency", concurrency))
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Start(mux)
			if err == nil {
				return
			}
			logger.Error("Notification worker failed to start",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Fatal("Notification worker: max retry attempts reached")
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()

	return srv
}

// HandleNotificationTask decodes a notification task and delivers it.
// Undecodable payloads and recipients without a channel are not retried.
func HandleNotificationTask(deliverer Deliverer) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()

		n, err := tasks.ParseNotificationTask(task)
		if err != nil {
			logger.Error("Invalid notification payload", zap.Error(err))
			return fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
		}

		if err := deliverer.Deliver(ctx, n); err != nil {
			if errors.Is(err, notification.ErrNoChannel) {
				logger.Warn("Dropping notification without channel",
					zap.String("notificationID", n.ID), zap.String("recipient", n.Recipient.UserID))
				return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
			}
			logger.Error("Failed to deliver notification",
				zap.String("notificationID", n.ID), zap.String("type", n.Type), zap.Error(err))
			return err
		}

		logger.Debug("Notification delivered", zap.String("notificationID", n.ID), zap.String("type", n.Type))
		return nil
	}
}

// monitorRedisConnection pings the queue Redis every interval until ctx is
// cancelled, then closes the client.
func monitorRedisConnection(ctx context.Context, client *redis.Client, every time.Duration) {
	logger := utils.GetLogger()
	defer func() {
		if err := client.Close(); err != nil {
			logger.Warn("Failed to close queue Redis monitor", zap.Error(err))
		}
	}()

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := client.Ping(ctx).Err(); err != nil && ctx.Err() == nil {
				logger.Warn("Notification queue Redis connection lost", zap.Error(err))
			}
		}
	}
}
