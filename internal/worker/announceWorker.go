package worker

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/wtchen/clubroll/internal/service"
	"github.com/wtchen/clubroll/pkg/queue"
)

// Pusher sends a text message to a user or group id.
type Pusher interface {
	PushText(ctx context.Context, to, text string) error
}

// AnnounceWorker consumes announce tasks and pushes the published event
// to the member group. Delivery failures are retried by the queue and
// eventually dead-lettered.
type AnnounceWorker struct {
	queue         queue.Queue
	eventService  service.EventService
	bot           Pusher
	targetGroupID string
}

func NewAnnounceWorker(q queue.Queue, eventService service.EventService, bot Pusher, targetGroupID string) *AnnounceWorker {
	return &AnnounceWorker{
		queue:         q,
		eventService:  eventService,
		bot:           bot,
		targetGroupID: targetGroupID,
	}
}

// Start blocks consuming the queue until ctx is canceled.
func (w *AnnounceWorker) Start(ctx context.Context) {
	logrus.Info("Announce worker started")

	if err := w.queue.Subscribe(ctx, func(task *queue.Task) error {
		return w.handleTask(ctx, task)
	}); err != nil {
		logrus.Errorf("Announce worker subscriber error: %v", err)
	}

	logrus.Info("Announce worker stopped")
}

func (w *AnnounceWorker) handleTask(ctx context.Context, task *queue.Task) error {
	if task.Type != service.TaskTypeAnnounceEvent {
		logrus.Warnf("Announce worker ignoring task type %s", task.Type)
		return nil
	}
	if w.targetGroupID == "" {
		logrus.Warn("No target group configured, dropping announcement")
		return nil
	}

	eventID := task.GetString("event_id")
	event, err := w.eventService.Get(ctx, eventID)
	if err != nil {
		return fmt.Errorf("failed to load event %s: %w", eventID, err)
	}

	text := fmt.Sprintf("📢 %s\n%s %s @ %s", event.Title, event.EventDate, event.EventTime, event.Location)
	if err := w.bot.PushText(ctx, w.targetGroupID, text); err != nil {
		return fmt.Errorf("failed to push announcement for event %s: %w", eventID, err)
	}

	logrus.WithField("event_id", eventID).Info("Event announced to group")
	return nil
}
