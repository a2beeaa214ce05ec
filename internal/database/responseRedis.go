package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/wtchen/clubroll/internal/entity"
)

// event:<id>:responses  hash, field = member id, value = JSON document
//
// Responses belong to their event; the hash lives and dies with it.
type ResponseRepositoryRedis struct {
	client *redis.Client
}

func NewResponseRepository(client *redis.Client) *ResponseRepositoryRedis {
	return &ResponseRepositoryRedis{client: client}
}

func responsesKey(eventID string) string {
	return fmt.Sprintf("event:%s:responses", eventID)
}

func (r *ResponseRepositoryRedis) Get(ctx context.Context, eventID, userID string) (*entity.Response, error) {
	data, err := r.client.HGet(ctx, responsesKey(eventID), userID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, entity.ErrResponseNotFound
		}
		return nil, fmt.Errorf("failed to get response: %w", err)
	}

	var response entity.Response
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &response, nil
}

// Upsert overwrites any previous response by the same member for the
// same event.
func (r *ResponseRepositoryRedis) Upsert(ctx context.Context, eventID string, response *entity.Response) error {
	if err := r.client.HSet(ctx, responsesKey(eventID), response.UserID, response).Err(); err != nil {
		return fmt.Errorf("failed to save response: %w", err)
	}
	return nil
}

// Scan returns every response recorded for the event keyed by member id.
func (r *ResponseRepositoryRedis) Scan(ctx context.Context, eventID string) (map[string]entity.Response, error) {
	raw, err := r.client.HGetAll(ctx, responsesKey(eventID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to scan responses: %w", err)
	}

	responses := make(map[string]entity.Response, len(raw))
	for userID, data := range raw {
		var response entity.Response
		if err := json.Unmarshal([]byte(data), &response); err != nil {
			return nil, fmt.Errorf("failed to decode response for %s: %w", userID, err)
		}
		responses[userID] = response
	}

	return responses, nil
}
