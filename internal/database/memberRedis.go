package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/wtchen/clubroll/internal/entity"
)

// member:<line_id>  JSON document
// members:sort      zset, score = sort_order, member = line_id
//
// The zset orders by score and then lexicographically by member, which
// gives a deterministic id tie-break when two members share a sort order.
const memberSortIndex = "members:sort"

type MemberRepositoryRedis struct {
	client *redis.Client
}

func NewMemberRepository(client *redis.Client) *MemberRepositoryRedis {
	return &MemberRepositoryRedis{client: client}
}

func memberKey(lineID string) string {
	return fmt.Sprintf("member:%s", lineID)
}

func (r *MemberRepositoryRedis) GetByID(ctx context.Context, lineID string) (*entity.Member, error) {
	data, err := r.client.Get(ctx, memberKey(lineID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, entity.ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	var member entity.Member
	if err := json.Unmarshal(data, &member); err != nil {
		return nil, fmt.Errorf("failed to decode member: %w", err)
	}

	return &member, nil
}

func (r *MemberRepositoryRedis) Upsert(ctx context.Context, member *entity.Member) error {
	if err := r.client.Set(ctx, memberKey(member.LineID), member, 0).Err(); err != nil {
		return fmt.Errorf("failed to save member: %w", err)
	}

	err := r.client.ZAdd(ctx, memberSortIndex, redis.Z{
		Score:  float64(member.SortOrder),
		Member: member.LineID,
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to index member: %w", err)
	}

	return nil
}

func (r *MemberRepositoryRedis) UpdateDisplayName(ctx context.Context, lineID, displayName string) error {
	member, err := r.GetByID(ctx, lineID)
	if err != nil {
		return err
	}

	member.DisplayName = displayName
	return r.Upsert(ctx, member)
}

// UpdateFields merges only the non-nil fields of req into the stored
// member. Last write wins on concurrent updates.
func (r *MemberRepositoryRedis) UpdateFields(ctx context.Context, lineID string, req *entity.MemberUpdateRequest) (*entity.Member, error) {
	member, err := r.GetByID(ctx, lineID)
	if err != nil {
		return nil, err
	}

	if req.ClubName != nil {
		member.ClubName = *req.ClubName
	}
	if req.Status != nil {
		member.Status = *req.Status
	}
	if req.SortOrder != nil {
		member.SortOrder = *req.SortOrder
	}
	if req.IsAdmin != nil {
		member.IsAdmin = *req.IsAdmin
	}

	if err := r.Upsert(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

func (r *MemberRepositoryRedis) SetAdmin(ctx context.Context, lineID string, isAdmin bool) error {
	member, err := r.GetByID(ctx, lineID)
	if err != nil {
		return err
	}

	member.IsAdmin = isAdmin
	return r.Upsert(ctx, member)
}

// Scan returns members with one of the given statuses, ordered by sort
// order ascending. An empty statuses slice returns the full roster.
func (r *MemberRepositoryRedis) Scan(ctx context.Context, statuses []entity.MemberStatus) ([]entity.Member, error) {
	ids, err := r.client.ZRange(ctx, memberSortIndex, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to scan member index: %w", err)
	}

	wanted := make(map[entity.MemberStatus]bool, len(statuses))
	for _, s := range statuses {
		wanted[s] = true
	}

	members := make([]entity.Member, 0, len(ids))
	for _, id := range ids {
		member, err := r.GetByID(ctx, id)
		if err != nil {
			if err == entity.ErrMemberNotFound {
				// index entry without a document, skip
				continue
			}
			return nil, err
		}
		if len(statuses) == 0 || wanted[member.Status] {
			members = append(members, *member)
		}
	}

	return members, nil
}

// MaxSortOrder returns the highest sort order on the roster; ok is false
// when the roster is empty.
func (r *MemberRepositoryRedis) MaxSortOrder(ctx context.Context) (int, bool, error) {
	top, err := r.client.ZRevRangeWithScores(ctx, memberSortIndex, 0, 0).Result()
	if err != nil {
		return 0, false, fmt.Errorf("failed to read member index: %w", err)
	}
	if len(top) == 0 {
		return 0, false, nil
	}
	return int(top[0].Score), true, nil
}
