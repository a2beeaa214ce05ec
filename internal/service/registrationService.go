package service

import (
	"context"
	"crypto/subtle"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/wtchen/clubroll/internal/database"
	"github.com/wtchen/clubroll/internal/entity"
)

type registrationService struct {
	memberRepo database.MemberRepository
	setupCode  string
}

// NewRegistrationService creates a new instance of RegistrationService.
// setupCode is the fixed admin promotion secret; there is no lockout or
// rate limiting on it.
func NewRegistrationService(memberRepo database.MemberRepository, setupCode string) RegistrationService {
	return &registrationService{
		memberRepo: memberRepo,
		setupCode:  setupCode,
	}
}

func (s *registrationService) RegisterOrRefresh(ctx context.Context, userID, displayName string) (*entity.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, userID)
	if err == nil {
		// Known member: refresh the platform name only, the club
		// nickname and everything admin-managed stays untouched.
		if member.DisplayName != displayName {
			if err := s.memberRepo.UpdateDisplayName(ctx, userID, displayName); err != nil {
				return nil, fmt.Errorf("failed to refresh member: %w", err)
			}
			member.DisplayName = displayName
		}
		return member, nil
	}
	if err != entity.ErrMemberNotFound {
		return nil, fmt.Errorf("failed to look up member: %w", err)
	}

	// New member appends at the end of the sort order. An empty roster
	// has no maximum and the first member gets order 0.
	sortOrder := 0
	maxOrder, ok, err := s.memberRepo.MaxSortOrder(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read max sort order: %w", err)
	}
	if ok {
		sortOrder = maxOrder + 1
	}

	member = &entity.Member{
		LineID:      userID,
		DisplayName: displayName,
		Status:      entity.MemberStatusActive,
		SortOrder:   sortOrder,
	}
	if err := s.memberRepo.Upsert(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to create member: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"member_id":  userID,
		"sort_order": sortOrder,
	}).Info("Registered new member")

	return member, nil
}

func (s *registrationService) PromoteIfCodeMatches(ctx context.Context, memberID, code string) (bool, error) {
	if subtle.ConstantTimeCompare([]byte(code), []byte(s.setupCode)) != 1 {
		return false, nil
	}

	if err := s.memberRepo.SetAdmin(ctx, memberID, true); err != nil {
		return false, fmt.Errorf("failed to promote member: %w", err)
	}

	logrus.WithField("member_id", memberID).Info("Member promoted to admin")
	return true, nil
}

func (s *registrationService) ListMembers(ctx context.Context) ([]entity.Member, error) {
	members, err := s.memberRepo.Scan(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

func (s *registrationService) GetMember(ctx context.Context, memberID string) (*entity.Member, error) {
	return s.memberRepo.GetByID(ctx, memberID)
}

func (s *registrationService) UpdateMember(ctx context.Context, memberID string, req *entity.MemberUpdateRequest) (*entity.Member, error) {
	member, err := s.memberRepo.UpdateFields(ctx, memberID, req)
	if err != nil {
		return nil, err
	}
	return member, nil
}
