package tasks

import (
	"encoding/json"
	"time"

	"github.com/renjoshini/hereforyou/models"

	"github.com/hibiken/asynq"
)

const TypeSendNotification = "notification:send"

// NewNotificationTask wraps n for the notification worker. Delivery is
// retried by asynq; the task expires after a day.
func NewNotificationTask(n models.Notification) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(n)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendNotification, b)
	opts := []asynq.Option{
		asynq.MaxRetry(5),
		asynq.Timeout(30 * time.Second),
		asynq.Retention(24 * time.Hour),
	}
	return task, opts, nil
}

// ParseNotificationTask decodes the payload produced by NewNotificationTask.
func ParseNotificationTask(task *asynq.Task) (models.Notification, error) {
	var n models.Notification
	err := json.Unmarshal(task.Payload(), &n)
	return n, err
}
