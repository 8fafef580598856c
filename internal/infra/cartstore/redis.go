// Package cartstore はカートをRedisにJSONで保存する。
package cartstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

const keyPrefix = "cart:"

// URLから接続してPingまで確認
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second
	opts.DialTimeout = 5 * time.Second

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, cartID string) (model.Cart, error) {
	raw, err := s.client.Get(ctx, keyPrefix+cartID).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.Cart{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Cart{}, err
	}

	var c model.Cart
	if err := json.Unmarshal(raw, &c); err != nil {
		return model.Cart{}, fmt.Errorf("decode cart %s: %w", cartID, err)
	}
	c.ID = cartID
	return c, nil
}

// 保存のたびにTTLを延長
func (s *RedisStore) Save(ctx context.Context, c model.Cart) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, keyPrefix+c.ID, raw, s.ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, cartID string) error {
	return s.client.Del(ctx, keyPrefix+cartID).Err()
}
