package service

import (
	"context"
	"fmt"
	"time"

	"github.com/wtchen/clubroll/internal/database"
	"github.com/wtchen/clubroll/internal/entity"
	"github.com/wtchen/clubroll/internal/pkg/attendance"
)

// SubmitResponseRequest carries a member's attendance decision for one
// event, submitted either from a chat postback or the member LIFF page.
type SubmitResponseRequest struct {
	Status       entity.ResponseStatus `json:"status" binding:"required"`
	FamilyAdults int                   `json:"family_adults" binding:"min=0"`
	FamilyKids   int                   `json:"family_kids" binding:"min=0"`
	Guests       []entity.Guest        `json:"guests"`
}

type attendanceService struct {
	memberRepo   database.MemberRepository
	eventRepo    database.EventRepository
	responseRepo database.ResponseRepository
}

// NewAttendanceService creates a new instance of AttendanceService.
func NewAttendanceService(
	memberRepo database.MemberRepository,
	eventRepo database.EventRepository,
	responseRepo database.ResponseRepository,
) AttendanceService {
	return &attendanceService{
		memberRepo:   memberRepo,
		eventRepo:    eventRepo,
		responseRepo: responseRepo,
	}
}

// SubmitResponse upserts the member's decision, overwriting any earlier
// one for the same event. The member's resolved name is denormalized
// onto the response at submission time.
func (s *attendanceService) SubmitResponse(ctx context.Context, eventID, memberID string, req *SubmitResponseRequest) (*entity.Response, error) {
	if req.Status != entity.ResponseStatusGoing && req.Status != entity.ResponseStatusNotGoing {
		return nil, entity.ErrInvalidResponseStatus
	}

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}

	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	response := &entity.Response{
		UserID:       memberID,
		UserName:     member.ResolvedName(),
		Status:       req.Status,
		FamilyAdults: req.FamilyAdults,
		FamilyKids:   req.FamilyKids,
		Guests:       req.Guests,
		UpdatedAt:    time.Now(),
	}
	if response.Guests == nil {
		response.Guests = []entity.Guest{}
	}

	if err := s.responseRepo.Upsert(ctx, eventID, response); err != nil {
		return nil, fmt.Errorf("failed to save response: %w", err)
	}

	return response, nil
}

// EventStatistics assembles the roster and response snapshots and runs
// the classifier over them. The two reads are not transactional; the
// summary may trail a concurrent update by one round trip.
func (s *attendanceService) EventStatistics(ctx context.Context, eventID string) (*attendance.Summary, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}

	roster, err := s.memberRepo.Scan(ctx, []entity.MemberStatus{
		entity.MemberStatusActive,
		entity.MemberStatusLeave,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}

	responses, err := s.responseRepo.Scan(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to load responses: %w", err)
	}

	return attendance.Classify(roster, responses), nil
}
