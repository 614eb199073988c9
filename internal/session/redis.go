package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"shop-service/internal/model"
)

// RedisStore keeps carts in redis so sessions survive process restarts.
// Each cart is stored JSON-encoded under cart:<session key> with a TTL, so
// abandoned carts age out on their own.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func cartKey(key string) string {
	return fmt.Sprintf("cart:%s", key)
}

func (s *RedisStore) Get(ctx context.Context, key string) (model.Cart, error) {
	val, err := s.client.Get(ctx, cartKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return model.Cart{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	var cart model.Cart
	if err := json.Unmarshal([]byte(val), &cart); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return cart, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, cart model.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.client.Set(ctx, cartKey(key), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, cartKey(key)).Err(); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}
