package entity

import (
	"encoding/json"
	"time"
)

type ResponseStatus string

const (
	ResponseStatusGoing    ResponseStatus = "GOING"
	ResponseStatusNotGoing ResponseStatus = "NOT_GOING"
)

// Guest is a named accompanying person. Adults and Kids stay pointers so
// that an absent field can be told apart from an explicit zero: a guest
// entry without an adults count stands for one adult, without a kids
// count for no kids.
type Guest struct {
	Name   string `json:"name"`
	Adults *int   `json:"adults,omitempty"`
	Kids   *int   `json:"kids,omitempty"`
}

// AdultCount applies the one-adult default for an absent field.
func (g *Guest) AdultCount() int {
	if g.Adults == nil {
		return 1
	}
	return *g.Adults
}

func (g *Guest) KidCount() int {
	if g.Kids == nil {
		return 0
	}
	return *g.Kids
}

// Response is one member's attendance decision for one event, keyed by the
// member id inside the event's response collection. An upsert overwrites
// the previous decision for the same (event, member) pair.
type Response struct {
	UserID       string         `json:"user_id"`
	UserName     string         `json:"user_name"`
	Status       ResponseStatus `json:"status"`
	FamilyAdults int            `json:"family_adults"`
	FamilyKids   int            `json:"family_kids"`
	Guests       []Guest        `json:"guests"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// For Redis serialization
func (r *Response) MarshalBinary() ([]byte, error) {
	return json.Marshal(r)
}

func (r *Response) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, r)
}
