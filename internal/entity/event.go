package entity

import (
	"encoding/json"
	"time"
)

type EventStatus string

const (
	EventStatusDraft     EventStatus = "DRAFT"
	EventStatusPublished EventStatus = "PUBLISHED"
	EventStatusFinished  EventStatus = "FINISHED"
	EventStatusCanceled  EventStatus = "CANCELED"
)

// Event date and time are stored as "YYYY-MM-DD" and "HH:MM" strings so that
// lexicographic ordering equals chronological ordering. Every write path must
// keep that invariant.
const (
	EventDateLayout = "2006-01-02"
	EventTimeLayout = "15:04"
)

type Event struct {
	ID          string      `json:"id"`
	Type        string      `json:"type"`
	Title       string      `json:"title"`
	EventDate   string      `json:"event_date"`
	EventTime   string      `json:"event_time"`
	Location    string      `json:"location"`
	TalkTitle   string      `json:"talk_title,omitempty"`
	Speaker     string      `json:"speaker,omitempty"`
	Description string      `json:"description,omitempty"`
	Status      EventStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
}

type EventUpdateRequest struct {
	Type        *string `json:"type,omitempty"`
	Title       *string `json:"title,omitempty"`
	EventDate   *string `json:"event_date,omitempty"`
	EventTime   *string `json:"event_time,omitempty"`
	Location    *string `json:"location,omitempty"`
	TalkTitle   *string `json:"talk_title,omitempty"`
	Speaker     *string `json:"speaker,omitempty"`
	Description *string `json:"description,omitempty"`
}

// For Redis serialization
func (e *Event) MarshalBinary() ([]byte, error) {
	return json.Marshal(e)
}

func (e *Event) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, e)
}
