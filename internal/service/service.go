package service

import (
	"context"

	"github.com/wtchen/clubroll/internal/entity"
	"github.com/wtchen/clubroll/internal/pkg/attendance"
)

type RegistrationService interface {
	// First-contact upsert: creates the member at the end of the sort
	// order, or refreshes only the platform display name.
	RegisterOrRefresh(ctx context.Context, userID, displayName string) (*entity.Member, error)
	PromoteIfCodeMatches(ctx context.Context, memberID, code string) (bool, error)

	// Admin roster management
	ListMembers(ctx context.Context) ([]entity.Member, error)
	GetMember(ctx context.Context, memberID string) (*entity.Member, error)
	UpdateMember(ctx context.Context, memberID string, req *entity.MemberUpdateRequest) (*entity.Member, error)
}

type EventService interface {
	CreateDraft(ctx context.Context, req *CreateEventRequest) (*entity.Event, error)
	Edit(ctx context.Context, id string, req *entity.EventUpdateRequest) (*entity.Event, error)
	Get(ctx context.Context, id string) (*entity.Event, error)
	ListDrafts(ctx context.Context) ([]entity.Event, error)
	// NextDueDraft returns (nil, nil) when no draft is due today or later.
	NextDueDraft(ctx context.Context) (*entity.Event, error)
	Publish(ctx context.Context, id string) (*entity.Event, error)
}

type AttendanceService interface {
	SubmitResponse(ctx context.Context, eventID, memberID string, req *SubmitResponseRequest) (*entity.Response, error)
	EventStatistics(ctx context.Context, eventID string) (*attendance.Summary, error)
}

// TaskPublisher decouples services from the queue implementation.
type TaskPublisher interface {
	PublishTask(ctx context.Context, taskType string, data map[string]interface{}) error
}
