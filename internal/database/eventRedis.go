package database

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/wtchen/clubroll/internal/entity"
)

// event:<id>               JSON document
// events:status:<STATUS>   set of event ids per lifecycle status
type EventRepositoryRedis struct {
	client *redis.Client
}

func NewEventRepository(client *redis.Client) *EventRepositoryRedis {
	return &EventRepositoryRedis{client: client}
}

func eventKey(id string) string {
	return fmt.Sprintf("event:%s", id)
}

func eventStatusKey(status entity.EventStatus) string {
	return fmt.Sprintf("events:status:%s", status)
}

func (r *EventRepositoryRedis) Create(ctx context.Context, event *entity.Event) error {
	if err := r.client.Set(ctx, eventKey(event.ID), event, 0).Err(); err != nil {
		return fmt.Errorf("failed to save event: %w", err)
	}

	if err := r.client.SAdd(ctx, eventStatusKey(event.Status), event.ID).Err(); err != nil {
		return fmt.Errorf("failed to index event: %w", err)
	}

	return nil
}

func (r *EventRepositoryRedis) GetByID(ctx context.Context, id string) (*entity.Event, error) {
	data, err := r.client.Get(ctx, eventKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, entity.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	var event entity.Event
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, fmt.Errorf("failed to decode event: %w", err)
	}

	return &event, nil
}

// UpdateFields merges only the non-nil fields of req into the stored
// event; nil means "do not change", an explicit empty string clears.
func (r *EventRepositoryRedis) UpdateFields(ctx context.Context, id string, req *entity.EventUpdateRequest) (*entity.Event, error) {
	event, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Type != nil {
		event.Type = *req.Type
	}
	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.EventDate != nil {
		event.EventDate = *req.EventDate
	}
	if req.EventTime != nil {
		event.EventTime = *req.EventTime
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.TalkTitle != nil {
		event.TalkTitle = *req.TalkTitle
	}
	if req.Speaker != nil {
		event.Speaker = *req.Speaker
	}
	if req.Description != nil {
		event.Description = *req.Description
	}

	if err := r.client.Set(ctx, eventKey(id), event, 0).Err(); err != nil {
		return nil, fmt.Errorf("failed to save event: %w", err)
	}

	return event, nil
}

// SetStatus moves the event between the per-status index sets.
func (r *EventRepositoryRedis) SetStatus(ctx context.Context, id string, status entity.EventStatus) error {
	event, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	previous := event.Status
	event.Status = status

	if err := r.client.Set(ctx, eventKey(id), event, 0).Err(); err != nil {
		return fmt.Errorf("failed to save event: %w", err)
	}

	if previous != status {
		if err := r.client.SMove(ctx, eventStatusKey(previous), eventStatusKey(status), id).Err(); err != nil {
			return fmt.Errorf("failed to reindex event: %w", err)
		}
	}

	return nil
}

// ScanByStatus returns all events with the given status ordered by
// (date, time) ascending. Dates and times are ISO formatted strings, so
// plain string comparison is chronological.
func (r *EventRepositoryRedis) ScanByStatus(ctx context.Context, status entity.EventStatus) ([]entity.Event, error) {
	ids, err := r.client.SMembers(ctx, eventStatusKey(status)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to scan event index: %w", err)
	}

	events := make([]entity.Event, 0, len(ids))
	for _, id := range ids {
		event, err := r.GetByID(ctx, id)
		if err != nil {
			if err == entity.ErrEventNotFound {
				continue
			}
			return nil, err
		}
		events = append(events, *event)
	}

	sort.Slice(events, func(i, j int) bool {
		if events[i].EventDate != events[j].EventDate {
			return events[i].EventDate < events[j].EventDate
		}
		if events[i].EventTime != events[j].EventTime {
			return events[i].EventTime < events[j].EventTime
		}
		return events[i].ID < events[j].ID
	})

	return events, nil
}
