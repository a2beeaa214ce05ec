package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	defaultMaxRetries   = 3
	defaultBaseDelay    = 5 * time.Second
	defaultQueueTimeout = 5 * time.Second
)

// RedisQueue implements Queue on top of Redis lists. Tasks move
// atomically from the main list to a processing list while a handler
// runs; tasks that exhaust their retries land on the dead-letter list
// for manual inspection.
type RedisQueue struct {
	client          *redis.Client
	mainQueue       string
	processingQueue string
	dlq             string
	maxRetries      int
	baseDelay       time.Duration
	queueTimeout    time.Duration
	stopChan        chan struct{}
}

// RedisQueueConfig contains configuration for RedisQueue.
type RedisQueueConfig struct {
	MainQueue    string
	DLQ          string
	MaxRetries   int
	BaseDelay    time.Duration
	QueueTimeout time.Duration
}

// DefaultRedisQueueConfig returns default configuration.
func DefaultRedisQueueConfig() *RedisQueueConfig {
	return &RedisQueueConfig{
		MainQueue:    "clubroll:tasks",
		DLQ:          "clubroll:dlq",
		MaxRetries:   defaultMaxRetries,
		BaseDelay:    defaultBaseDelay,
		QueueTimeout: defaultQueueTimeout,
	}
}

// NewRedisQueue creates a new RedisQueue instance on an existing client.
func NewRedisQueue(client *redis.Client, cfg *RedisQueueConfig) (*RedisQueue, error) {
	if cfg == nil {
		cfg = DefaultRedisQueueConfig()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	q := &RedisQueue{
		client:          client,
		mainQueue:       cfg.MainQueue,
		processingQueue: cfg.MainQueue + ":processing",
		dlq:             cfg.DLQ,
		maxRetries:      cfg.MaxRetries,
		baseDelay:       cfg.BaseDelay,
		queueTimeout:    cfg.QueueTimeout,
		stopChan:        make(chan struct{}),
	}

	logrus.Infof("RedisQueue initialized: main=%s, dlq=%s", q.mainQueue, q.dlq)
	return q, nil
}

// Publish sends a task to the queue.
func (r *RedisQueue) Publish(ctx context.Context, task *Task) error {
	if task == nil {
		return fmt.Errorf("task cannot be nil")
	}
	if err := task.Validate(); err != nil {
		return fmt.Errorf("invalid task: %w", err)
	}
	if task.MaxRetries <= 0 {
		task.MaxRetries = r.maxRetries
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now()
	}

	taskData, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}

	if err := r.client.LPush(ctx, r.mainQueue, taskData).Err(); err != nil {
		return fmt.Errorf("failed to publish task: %w", err)
	}

	logrus.Debugf("Task %s published to %s", task.ID, r.mainQueue)
	return nil
}

// Subscribe consumes tasks until the context is canceled or Close is
// called. It blocks the calling goroutine.
func (r *RedisQueue) Subscribe(ctx context.Context, handler func(*Task) error) error {
	if handler == nil {
		return fmt.Errorf("handler cannot be nil")
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-r.stopChan:
			return nil
		default:
			if err := r.processOne(ctx, handler); err != nil {
				logrus.Errorf("Queue processing error: %v", err)
				time.Sleep(time.Second)
			}
		}
	}
}

func (r *RedisQueue) processOne(ctx context.Context, handler func(*Task) error) error {
	taskData, err := r.client.BLMove(ctx, r.mainQueue, r.processingQueue, "right", "left", r.queueTimeout).Result()
	if err == redis.Nil {
		return nil // timeout, no tasks
	}
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("failed to move task to processing queue: %w", err)
	}

	var task Task
	if err := json.Unmarshal([]byte(taskData), &task); err != nil {
		logrus.Errorf("Failed to unmarshal task, moving to DLQ: %v", err)
		r.moveToDLQ(ctx, taskData)
	} else if err := r.executeWithRetry(ctx, &task, handler); err != nil {
		logrus.Errorf("Task %s failed after %d attempts, moving to DLQ: %v", task.ID, task.Attempts, err)
		r.moveToDLQ(ctx, taskData)
	}

	// remove from processing regardless of outcome
	if err := r.client.LRem(ctx, r.processingQueue, 1, taskData).Err(); err != nil {
		logrus.Errorf("Failed to remove task from processing queue: %v", err)
	}

	return nil
}

func (r *RedisQueue) executeWithRetry(ctx context.Context, task *Task, handler func(*Task) error) error {
	for {
		task.Attempts++

		err := handler(task)
		if err == nil {
			return nil
		}
		if task.Attempts >= task.MaxRetries {
			return err
		}

		delay := r.baseDelay * time.Duration(1<<(task.Attempts-1))
		logrus.Warnf("Task %s failed (attempt %d/%d), retrying in %v: %v",
			task.ID, task.Attempts, task.MaxRetries, delay, err)

		select {
		case <-ctx.Done():
			return err
		case <-time.After(delay):
		}
	}
}

func (r *RedisQueue) moveToDLQ(ctx context.Context, taskData string) {
	if err := r.client.LPush(ctx, r.dlq, taskData).Err(); err != nil {
		logrus.Errorf("Failed to move task to DLQ: %v", err)
	}
}

// Close stops the subscriber loops.
func (r *RedisQueue) Close() error {
	close(r.stopChan)
	return nil
}
