package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists session history in a Redis list per session, trimmed
// to the configured cap on every append.
type RedisStore struct {
	client *redis.Client
	max    int64
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore wraps an existing Redis client. A non-positive max falls
// back to DefaultMaxMessages.
func NewRedisStore(client *redis.Client, max int) *RedisStore {
	if max <= 0 {
		max = DefaultMaxMessages
	}
	return &RedisStore{client: client, max: int64(max)}
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}

// Append pushes a message onto the session list and trims to the cap.
func (s *RedisStore) Append(ctx context.Context, sessionID string, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encoding message: %w", err)
	}

	key := sessionKey(sessionID)
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, key, payload)
	pipe.LTrim(ctx, key, -s.max, -1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("appending session message: %w", err)
	}
	return nil
}

// History returns the session's messages, oldest first.
func (s *RedisStore) History(ctx context.Context, sessionID string) ([]Message, error) {
	raw, err := s.client.LRange(ctx, sessionKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("reading session history: %w", err)
	}

	messages := make([]Message, 0, len(raw))
	for _, item := range raw {
		var msg Message
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			return nil, fmt.Errorf("decoding session message: %w", err)
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

// Clear deletes the session list.
func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}
