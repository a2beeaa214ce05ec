package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wtchen/clubroll/internal/entity"
)

func strPtr(s string) *string { return &s }

func TestCreateDraftForcesDraftStatus(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewEventService(repo, nil)

	event, err := svc.CreateDraft(context.Background(), &CreateEventRequest{
		Type:      "例會",
		Title:     "Monthly Meeting",
		EventDate: "2999-01-15",
		EventTime: "19:00",
		Location:  "Clubhouse",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, entity.EventStatusDraft, event.Status)
	assert.Equal(t, entity.EventStatusDraft, repo.events[event.ID].Status)
}

func TestCreateDraftValidatesDateAndTime(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		time    string
		wantErr error
	}{
		{name: "non ISO date", date: "15/01/2999", time: "19:00", wantErr: entity.ErrInvalidEventDate},
		{name: "date without padding", date: "2999-1-5", time: "19:00", wantErr: entity.ErrInvalidEventDate},
		{name: "bad time", date: "2999-01-15", time: "7pm", wantErr: entity.ErrInvalidEventTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewEventService(newFakeEventRepo(), nil)
			_, err := svc.CreateDraft(context.Background(), &CreateEventRequest{
				Type:      "例會",
				Title:     "T",
				EventDate: tt.date,
				EventTime: tt.time,
				Location:  "L",
			})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestEditMergesOnlyProvidedFields(t *testing.T) {
	repo := newFakeEventRepo()
	repo.events["e1"] = entity.Event{
		ID:        "e1",
		Type:      "例會",
		Title:     "Original",
		EventDate: "2999-01-15",
		EventTime: "19:00",
		Location:  "Clubhouse",
		Speaker:   "Dr. Wu",
		Status:    entity.EventStatusDraft,
	}
	svc := NewEventService(repo, nil)

	event, err := svc.Edit(context.Background(), "e1", &entity.EventUpdateRequest{
		Title:   strPtr("Updated"),
		Speaker: strPtr(""), // explicit empty clears the field
	})
	require.NoError(t, err)

	assert.Equal(t, "Updated", event.Title)
	assert.Equal(t, "", event.Speaker)
	// untouched fields survive
	assert.Equal(t, "2999-01-15", event.EventDate)
	assert.Equal(t, "Clubhouse", event.Location)
}

func TestNextDueDraftSelection(t *testing.T) {
	repo := newFakeEventRepo()
	repo.events["past"] = entity.Event{
		ID: "past", EventDate: "2000-01-01", EventTime: "10:00", Status: entity.EventStatusDraft,
	}
	repo.events["later"] = entity.Event{
		ID: "later", EventDate: "2999-02-01", EventTime: "09:00", Status: entity.EventStatusDraft,
	}
	repo.events["sooner-evening"] = entity.Event{
		ID: "sooner-evening", EventDate: "2999-01-15", EventTime: "19:00", Status: entity.EventStatusDraft,
	}
	repo.events["sooner-morning"] = entity.Event{
		ID: "sooner-morning", EventDate: "2999-01-15", EventTime: "09:00", Status: entity.EventStatusDraft,
	}
	repo.events["published"] = entity.Event{
		ID: "published", EventDate: "2999-01-10", EventTime: "09:00", Status: entity.EventStatusPublished,
	}
	svc := NewEventService(repo, nil)

	event, err := svc.NextDueDraft(context.Background())
	require.NoError(t, err)
	require.NotNil(t, event)

	// past drafts are skipped; date ties break on time ascending
	assert.Equal(t, "sooner-morning", event.ID)
}

func TestNextDueDraftNoneDue(t *testing.T) {
	repo := newFakeEventRepo()
	repo.events["past"] = entity.Event{
		ID: "past", EventDate: "2000-01-01", EventTime: "10:00", Status: entity.EventStatusDraft,
	}
	svc := NewEventService(repo, nil)

	event, err := svc.NextDueDraft(context.Background())
	require.NoError(t, err)
	assert.Nil(t, event)
}

func TestPublishTransitionsAndAnnounces(t *testing.T) {
	repo := newFakeEventRepo()
	repo.events["e1"] = entity.Event{ID: "e1", Status: entity.EventStatusDraft}
	publisher := &fakePublisher{}
	svc := NewEventService(repo, publisher)

	event, err := svc.Publish(context.Background(), "e1")
	require.NoError(t, err)

	assert.Equal(t, entity.EventStatusPublished, event.Status)
	assert.Equal(t, entity.EventStatusPublished, repo.events["e1"].Status)
	require.Len(t, publisher.tasks, 1)
	assert.Equal(t, TaskTypeAnnounceEvent, publisher.tasks[0].taskType)
	assert.Equal(t, "e1", publisher.tasks[0].data["event_id"])
}

func TestPublishRejectsNonDraft(t *testing.T) {
	repo := newFakeEventRepo()
	repo.events["e1"] = entity.Event{ID: "e1", Status: entity.EventStatusPublished}
	svc := NewEventService(repo, nil)

	_, err := svc.Publish(context.Background(), "e1")
	assert.ErrorIs(t, err, entity.ErrEventNotDraft)
}
