package otp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const redisKeyPrefix = "salongo:otp:"

// RedisStore shares pending verifications across API instances.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// NewRedisClient parses url and checks the connection.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	return client, nil
}

func (s *RedisStore) Save(ctx context.Context, p Pending, ttl time.Duration) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal pending otp: %w", err)
	}
	return s.client.Set(ctx, redisKeyPrefix+p.ID, payload, ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, id string) (Pending, error) {
	raw, err := s.client.Get(ctx, redisKeyPrefix+id).Bytes()
	return decodePending(raw, err)
}

func (s *RedisStore) Take(ctx context.Context, id string) (Pending, error) {
	raw, err := s.client.GetDel(ctx, redisKeyPrefix+id).Bytes()
	return decodePending(raw, err)
}

// RecordFailure rewrites the entry under WATCH so concurrent wrong codes
// are all counted.
func (s *RedisStore) RecordFailure(ctx context.Context, id string, limit int) (int, error) {
	key := redisKeyPrefix + id

	var left int
	update := func(tx *redis.Tx) error {
		p, err := decodePending(tx.Get(ctx, key).Bytes())
		if err != nil {
			return err
		}

		p.Attempts++
		left = limit - p.Attempts

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if left <= 0 {
				pipe.Del(ctx, key)
				return nil
			}
			payload, err := json.Marshal(p)
			if err != nil {
				return fmt.Errorf("marshal pending otp: %w", err)
			}
			pipe.Set(ctx, key, payload, redis.KeepTTL)
			return nil
		})
		return err
	}

	for i := 0; i < 5; i++ {
		err := s.client.Watch(ctx, update, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return 0, err
		}
		if left < 0 {
			left = 0
		}
		return left, nil
	}
	return 0, fmt.Errorf("record otp failure: %w", redis.TxFailedErr)
}

func decodePending(raw []byte, err error) (Pending, error) {
	if errors.Is(err, redis.Nil) {
		return Pending{}, ErrNotFound
	}
	if err != nil {
		return Pending{}, err
	}

	var p Pending
	if err := json.Unmarshal(raw, &p); err != nil {
		return Pending{}, fmt.Errorf("decode pending otp: %w", err)
	}
	return p, nil
}
