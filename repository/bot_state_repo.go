package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/yeabsiraa/ragbot-be/types"
)

// BotStateRepo is the external key-value state of a bot: last refresh
// timestamps, per-bot prompt overrides and per-session conversation
// memory. All writes are last-write-wins; concurrent sessions on the
// same key overwrite each other.
type BotStateRepo interface {
	SetLastRefresh(ctx context.Context, userID, botID, kbID string, ts time.Time) error
	GetLastRefresh(ctx context.Context, userID, botID, kbID string) (time.Time, error)

	SetPromptTemplate(ctx context.Context, userID, botID, template string) error
	// GetPromptTemplate returns "" when no override is stored.
	GetPromptTemplate(ctx context.Context, userID, botID string) (string, error)

	// LoadMemory returns nil for a session with no history yet.
	LoadMemory(ctx context.Context, userID, botID, kbID, sessionID string) ([]types.Message, error)
	SaveMemory(ctx context.Context, userID, botID, kbID, sessionID string, messages []types.Message) error
}

type botStateRepo struct {
	client *redis.Client
}

func NewBotStateRepo(client *redis.Client) BotStateRepo {
	return &botStateRepo{
		client: client,
	}
}

func lastRefreshKey(userID, botID, kbID string) string {
	return fmt.Sprintf("last_refresh:%s:%s:%s", userID, botID, kbID)
}

func promptTemplateKey(userID, botID string) string {
	return fmt.Sprintf("prompt_template:%s:%s", userID, botID)
}

func memoryKey(userID, botID, kbID, sessionID string) string {
	return fmt.Sprintf("memory:%s:%s:%s:%s", userID, botID, kbID, sessionID)
}

func (r *botStateRepo) SetLastRefresh(ctx context.Context, userID, botID, kbID string, ts time.Time) error {
	return r.client.Set(ctx, lastRefreshKey(userID, botID, kbID), fmt.Sprintf("%d", ts.Unix()), 0).Err()
}

func (r *botStateRepo) GetLastRefresh(ctx context.Context, userID, botID, kbID string) (time.Time, error) {
	unix, err := r.client.Get(ctx, lastRefreshKey(userID, botID, kbID)).Int64()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(unix, 0), nil
}

func (r *botStateRepo) SetPromptTemplate(ctx context.Context, userID, botID, template string) error {
	return r.client.Set(ctx, promptTemplateKey(userID, botID), template, 0).Err()
}

func (r *botStateRepo) GetPromptTemplate(ctx context.Context, userID, botID string) (string, error) {
	template, err := r.client.Get(ctx, promptTemplateKey(userID, botID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return template, nil
}

func (r *botStateRepo) LoadMemory(ctx context.Context, userID, botID, kbID, sessionID string) ([]types.Message, error) {
	data, err := r.client.Get(ctx, memoryKey(userID, botID, kbID, sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var messages []types.Message
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil, fmt.Errorf("failed to decode session memory: %w", err)
	}
	return messages, nil
}

func (r *botStateRepo) SaveMemory(ctx context.Context, userID, botID, kbID, sessionID string, messages []types.Message) error {
	data, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("failed to encode session memory: %w", err)
	}
	return r.client.Set(ctx, memoryKey(userID, botID, kbID, sessionID), data, 0).Err()
}
