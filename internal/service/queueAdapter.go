package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/wtchen/clubroll/pkg/queue"
)

// QueueAdapter adapts queue.Queue to the TaskPublisher interface.
type QueueAdapter struct {
	queue queue.Queue
}

// NewQueueAdapter creates a new adapter for the queue.
func NewQueueAdapter(q queue.Queue) *QueueAdapter {
	return &QueueAdapter{queue: q}
}

func (a *QueueAdapter) PublishTask(ctx context.Context, taskType string, data map[string]interface{}) error {
	if a.queue == nil {
		return nil // queue not configured, announcement skipped
	}

	return a.queue.Publish(ctx, &queue.Task{
		ID:   uuid.NewString(),
		Type: taskType,
		Data: data,
	})
}
