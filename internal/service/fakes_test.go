package service

import (
	"context"
	"sort"

	"github.com/wtchen/clubroll/internal/entity"
)

// In-memory repositories backing the service tests.

type fakeMemberRepo struct {
	members map[string]entity.Member
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{members: map[string]entity.Member{}}
}

func (r *fakeMemberRepo) GetByID(_ context.Context, lineID string) (*entity.Member, error) {
	m, ok := r.members[lineID]
	if !ok {
		return nil, entity.ErrMemberNotFound
	}
	copy := m
	return &copy, nil
}

func (r *fakeMemberRepo) Upsert(_ context.Context, member *entity.Member) error {
	r.members[member.LineID] = *member
	return nil
}

func (r *fakeMemberRepo) UpdateDisplayName(ctx context.Context, lineID, displayName string) error {
	m, ok := r.members[lineID]
	if !ok {
		return entity.ErrMemberNotFound
	}
	m.DisplayName = displayName
	r.members[lineID] = m
	return nil
}

func (r *fakeMemberRepo) UpdateFields(ctx context.Context, lineID string, req *entity.MemberUpdateRequest) (*entity.Member, error) {
	m, ok := r.members[lineID]
	if !ok {
		return nil, entity.ErrMemberNotFound
	}
	if req.ClubName != nil {
		m.ClubName = *req.ClubName
	}
	if req.Status != nil {
		m.Status = *req.Status
	}
	if req.SortOrder != nil {
		m.SortOrder = *req.SortOrder
	}
	if req.IsAdmin != nil {
		m.IsAdmin = *req.IsAdmin
	}
	r.members[lineID] = m
	copy := m
	return &copy, nil
}

func (r *fakeMemberRepo) SetAdmin(_ context.Context, lineID string, isAdmin bool) error {
	m, ok := r.members[lineID]
	if !ok {
		return entity.ErrMemberNotFound
	}
	m.IsAdmin = isAdmin
	r.members[lineID] = m
	return nil
}

func (r *fakeMemberRepo) Scan(_ context.Context, statuses []entity.MemberStatus) ([]entity.Member, error) {
	wanted := map[entity.MemberStatus]bool{}
	for _, s := range statuses {
		wanted[s] = true
	}

	var out []entity.Member
	for _, m := range r.members {
		if len(statuses) == 0 || wanted[m.Status] {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].LineID < out[j].LineID
	})
	return out, nil
}

func (r *fakeMemberRepo) MaxSortOrder(_ context.Context) (int, bool, error) {
	if len(r.members) == 0 {
		return 0, false, nil
	}
	max := 0
	for _, m := range r.members {
		if m.SortOrder > max {
			max = m.SortOrder
		}
	}
	return max, true, nil
}

type fakeEventRepo struct {
	events map[string]entity.Event
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: map[string]entity.Event{}}
}

func (r *fakeEventRepo) Create(_ context.Context, event *entity.Event) error {
	r.events[event.ID] = *event
	return nil
}

func (r *fakeEventRepo) GetByID(_ context.Context, id string) (*entity.Event, error) {
	e, ok := r.events[id]
	if !ok {
		return nil, entity.ErrEventNotFound
	}
	copy := e
	return &copy, nil
}

func (r *fakeEventRepo) UpdateFields(_ context.Context, id string, req *entity.EventUpdateRequest) (*entity.Event, error) {
	e, ok := r.events[id]
	if !ok {
		return nil, entity.ErrEventNotFound
	}
	if req.Type != nil {
		e.Type = *req.Type
	}
	if req.Title != nil {
		e.Title = *req.Title
	}
	if req.EventDate != nil {
		e.EventDate = *req.EventDate
	}
	if req.EventTime != nil {
		e.EventTime = *req.EventTime
	}
	if req.Location != nil {
		e.Location = *req.Location
	}
	if req.TalkTitle != nil {
		e.TalkTitle = *req.TalkTitle
	}
	if req.Speaker != nil {
		e.Speaker = *req.Speaker
	}
	if req.Description != nil {
		e.Description = *req.Description
	}
	r.events[id] = e
	copy := e
	return &copy, nil
}

func (r *fakeEventRepo) SetStatus(_ context.Context, id string, status entity.EventStatus) error {
	e, ok := r.events[id]
	if !ok {
		return entity.ErrEventNotFound
	}
	e.Status = status
	r.events[id] = e
	return nil
}

func (r *fakeEventRepo) ScanByStatus(_ context.Context, status entity.EventStatus) ([]entity.Event, error) {
	var out []entity.Event
	for _, e := range r.events {
		if e.Status == status {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].EventDate != out[j].EventDate {
			return out[i].EventDate < out[j].EventDate
		}
		if out[i].EventTime != out[j].EventTime {
			return out[i].EventTime < out[j].EventTime
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

type fakeResponseRepo struct {
	responses map[string]map[string]entity.Response
}

func newFakeResponseRepo() *fakeResponseRepo {
	return &fakeResponseRepo{responses: map[string]map[string]entity.Response{}}
}

func (r *fakeResponseRepo) Get(_ context.Context, eventID, userID string) (*entity.Response, error) {
	resp, ok := r.responses[eventID][userID]
	if !ok {
		return nil, entity.ErrResponseNotFound
	}
	copy := resp
	return &copy, nil
}

func (r *fakeResponseRepo) Upsert(_ context.Context, eventID string, response *entity.Response) error {
	if r.responses[eventID] == nil {
		r.responses[eventID] = map[string]entity.Response{}
	}
	r.responses[eventID][response.UserID] = *response
	return nil
}

func (r *fakeResponseRepo) Scan(_ context.Context, eventID string) (map[string]entity.Response, error) {
	out := map[string]entity.Response{}
	for id, resp := range r.responses[eventID] {
		out[id] = resp
	}
	return out, nil
}

type fakePublisher struct {
	tasks []publishedTask
}

type publishedTask struct {
	taskType string
	data     map[string]interface{}
}

func (p *fakePublisher) PublishTask(_ context.Context, taskType string, data map[string]interface{}) error {
	p.tasks = append(p.tasks, publishedTask{taskType: taskType, data: data})
	return nil
}
