package notification

import (
	"context"
	"fmt"

	"github.com/renjoshini/hereforyou/models"
	"github.com/renjoshini/hereforyou/services/tasks"

	"github.com/hibiken/asynq"
)

// TaskEnqueuer is the subset of *asynq.Client used by QueueNotifier.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// QueueNotifier hands notifications to the asynq worker.
type QueueNotifier struct {
	client TaskEnqueuer
}

func NewQueueNotifier(client TaskEnqueuer) *QueueNotifier {
	return &QueueNotifier{client: client}
}

func (q *QueueNotifier) Notify(ctx context.Context, n models.Notification) error {
	task, opts, err := tasks.NewNotificationTask(n)
	if err != nil {
		return fmt.Errorf("build notification task: %w", err)
	}
	if _, err := q.client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("enqueue notification %s: %w", n.ID, err)
	}
	return nil
}
