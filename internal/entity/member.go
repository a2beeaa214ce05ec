package entity

import "encoding/json"

type MemberStatus string

const (
	MemberStatusActive   MemberStatus = "ACTIVE"
	MemberStatusInactive MemberStatus = "INACTIVE"
	MemberStatusLeave    MemberStatus = "LEAVE"
)

// Member is one tracked person. LineID is the stable platform identity and
// doubles as the document key; a member is never hard-deleted, status moves
// to INACTIVE instead.
type Member struct {
	LineID      string       `json:"line_id"`
	DisplayName string       `json:"display_name"`
	ClubName    string       `json:"club_name,omitempty"`
	IsAdmin     bool         `json:"is_admin"`
	Status      MemberStatus `json:"status"`
	SortOrder   int          `json:"sort_order"`
}

// ResolvedName prefers the admin-assigned club nickname over the
// platform display name.
func (m *Member) ResolvedName() string {
	if m.ClubName != "" {
		return m.ClubName
	}
	return m.DisplayName
}

type MemberUpdateRequest struct {
	ClubName  *string       `json:"club_name,omitempty"`
	Status    *MemberStatus `json:"status,omitempty"`
	SortOrder *int          `json:"sort_order,omitempty"`
	IsAdmin   *bool         `json:"is_admin,omitempty"`
}

// For Redis serialization
func (m *Member) MarshalBinary() ([]byte, error) {
	return json.Marshal(m)
}

func (m *Member) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, m)
}
