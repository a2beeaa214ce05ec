package database

import (
	"context"

	"github.com/wtchen/clubroll/internal/entity"
)

type MemberRepository interface {
	GetByID(ctx context.Context, lineID string) (*entity.Member, error)
	Upsert(ctx context.Context, member *entity.Member) error
	UpdateDisplayName(ctx context.Context, lineID, displayName string) error
	UpdateFields(ctx context.Context, lineID string, req *entity.MemberUpdateRequest) (*entity.Member, error)
	SetAdmin(ctx context.Context, lineID string, isAdmin bool) error
	Scan(ctx context.Context, statuses []entity.MemberStatus) ([]entity.Member, error)
	MaxSortOrder(ctx context.Context) (int, bool, error)
}

type EventRepository interface {
	Create(ctx context.Context, event *entity.Event) error
	GetByID(ctx context.Context, id string) (*entity.Event, error)
	UpdateFields(ctx context.Context, id string, req *entity.EventUpdateRequest) (*entity.Event, error)
	SetStatus(ctx context.Context, id string, status entity.EventStatus) error
	ScanByStatus(ctx context.Context, status entity.EventStatus) ([]entity.Event, error)
}

type ResponseRepository interface {
	Get(ctx context.Context, eventID, userID string) (*entity.Response, error)
	Upsert(ctx context.Context, eventID string, response *entity.Response) error
	Scan(ctx context.Context, eventID string) (map[string]entity.Response, error)
}
