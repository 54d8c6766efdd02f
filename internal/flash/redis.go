package flash

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Put(ctx context.Context, userID string, notice Notice) error {
	payload, err := json.Marshal(notice)
	if err != nil {
		return fmt.Errorf("ошибка сериализации уведомления: %w", err)
	}

	if err := s.client.Set(ctx, key(userID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("ошибка сохранения уведомления: %w", err)
	}
	return nil
}

func (s *RedisStore) Take(ctx context.Context, userID string) (*Notice, error) {
	payload, err := s.client.GetDel(ctx, key(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения уведомления: %w", err)
	}

	var notice Notice
	if err := json.Unmarshal(payload, &notice); err != nil {
		return nil, fmt.Errorf("ошибка разбора уведомления: %w", err)
	}
	return &notice, nil
}
