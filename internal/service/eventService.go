package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/wtchen/clubroll/internal/database"
	"github.com/wtchen/clubroll/internal/entity"
)

// TaskTypeAnnounceEvent asks the announce worker to push the published
// event to the member group.
const TaskTypeAnnounceEvent = "announce_event"

// CreateEventRequest represents the data needed to create a draft event.
// A caller-supplied status is deliberately not accepted: new events are
// always drafts.
type CreateEventRequest struct {
	Type        string `json:"type" binding:"required,max=64"`
	Title       string `json:"title" binding:"required,max=255"`
	EventDate   string `json:"event_date" binding:"required"`
	EventTime   string `json:"event_time" binding:"required"`
	Location    string `json:"location" binding:"required,max=255"`
	TalkTitle   string `json:"talk_title"`
	Speaker     string `json:"speaker"`
	Description string `json:"description" binding:"max=1000"`
}

type eventService struct {
	eventRepo database.EventRepository
	publisher TaskPublisher
}

// NewEventService creates a new instance of EventService. publisher may
// be nil, in which case publishing skips the group announcement.
func NewEventService(eventRepo database.EventRepository, publisher TaskPublisher) EventService {
	return &eventService{
		eventRepo: eventRepo,
		publisher: publisher,
	}
}

func validateEventDate(date string) error {
	if _, err := time.Parse(entity.EventDateLayout, date); err != nil {
		return entity.ErrInvalidEventDate
	}
	return nil
}

func validateEventTime(t string) error {
	if _, err := time.Parse(entity.EventTimeLayout, t); err != nil {
		return entity.ErrInvalidEventTime
	}
	return nil
}

func (s *eventService) CreateDraft(ctx context.Context, req *CreateEventRequest) (*entity.Event, error) {
	if err := validateEventDate(req.EventDate); err != nil {
		return nil, err
	}
	if err := validateEventTime(req.EventTime); err != nil {
		return nil, err
	}

	event := &entity.Event{
		ID:          uuid.NewString(),
		Type:        req.Type,
		Title:       req.Title,
		EventDate:   req.EventDate,
		EventTime:   req.EventTime,
		Location:    req.Location,
		TalkTitle:   req.TalkTitle,
		Speaker:     req.Speaker,
		Description: req.Description,
		Status:      entity.EventStatusDraft,
		CreatedAt:   time.Now(),
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"event_id":   event.ID,
		"event_date": event.EventDate,
	}).Info("Draft event created")

	return event, nil
}

func (s *eventService) Edit(ctx context.Context, id string, req *entity.EventUpdateRequest) (*entity.Event, error) {
	if req.EventDate != nil {
		if err := validateEventDate(*req.EventDate); err != nil {
			return nil, err
		}
	}
	if req.EventTime != nil {
		if err := validateEventTime(*req.EventTime); err != nil {
			return nil, err
		}
	}

	event, err := s.eventRepo.UpdateFields(ctx, id, req)
	if err != nil {
		return nil, err
	}
	return event, nil
}

func (s *eventService) Get(ctx context.Context, id string) (*entity.Event, error) {
	return s.eventRepo.GetByID(ctx, id)
}

func (s *eventService) ListDrafts(ctx context.Context) ([]entity.Event, error) {
	drafts, err := s.eventRepo.ScanByStatus(ctx, entity.EventStatusDraft)
	if err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}
	return drafts, nil
}

// NextDueDraft picks the draft with the earliest (date, time) pair among
// drafts dated today or later. The scan is already ordered, so the first
// hit wins.
func (s *eventService) NextDueDraft(ctx context.Context) (*entity.Event, error) {
	drafts, err := s.eventRepo.ScanByStatus(ctx, entity.EventStatusDraft)
	if err != nil {
		return nil, fmt.Errorf("failed to scan drafts: %w", err)
	}

	today := time.Now().Format(entity.EventDateLayout)
	for i := range drafts {
		if drafts[i].EventDate >= today {
			return &drafts[i], nil
		}
	}

	return nil, nil
}

func (s *eventService) Publish(ctx context.Context, id string) (*entity.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.Status != entity.EventStatusDraft {
		return nil, entity.ErrEventNotDraft
	}

	if err := s.eventRepo.SetStatus(ctx, id, entity.EventStatusPublished); err != nil {
		return nil, fmt.Errorf("failed to publish event: %w", err)
	}
	event.Status = entity.EventStatusPublished

	if s.publisher != nil {
		err := s.publisher.PublishTask(ctx, TaskTypeAnnounceEvent, map[string]interface{}{
			"event_id": event.ID,
		})
		if err != nil {
			// The event is published either way; the announcement can
			// be resent by hand.
			logrus.Errorf("Failed to enqueue announce task for event %s: %v", event.ID, err)
		}
	}

	logrus.WithField("event_id", event.ID).Info("Event published")
	return event, nil
}
