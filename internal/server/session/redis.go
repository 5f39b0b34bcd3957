package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/siteback/internal/common"
	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "site:session:"

// RedisStore keeps sessions in Redis so they survive restarts and can be
// shared between instances. Expiry is delegated to Redis key TTLs.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

type RedisOption func(*RedisStore)

func WithPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		s.prefix = prefix
	}
}

func NewRedisStore(client *redis.Client, ttl time.Duration, opts ...RedisOption) *RedisStore {
	s := &RedisStore{client: client, prefix: defaultRedisPrefix, ttl: ttl}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewRedisClient connects and pings Redis.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

func (s *RedisStore) key(token string) string {
	return s.prefix + token
}

func (s *RedisStore) Create(ctx context.Context, accountID int64) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}

	data, err := json.Marshal(Session{AccountID: accountID, CreatedAt: time.Now().UTC()})
	if err != nil {
		return "", fmt.Errorf("session: marshal: %w", err)
	}

	// A zero ttl means the key never expires.
	ok, err := s.client.SetNX(ctx, s.key(token), data, s.ttl).Result()
	if err != nil {
		return "", fmt.Errorf("redis error: %w", err)
	}
	if !ok {
		return "", errors.New("session: token collision")
	}
	return token, nil
}

func (s *RedisStore) Resolve(ctx context.Context, token string) (int64, error) {
	val, err := s.client.Get(ctx, s.key(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return 0, common.ErrorNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("redis error: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(val, &sess); err != nil {
		return 0, fmt.Errorf("session: unmarshal: %w", err)
	}
	return sess.AccountID, nil
}

func (s *RedisStore) Destroy(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.key(token)).Err(); err != nil {
		return fmt.Errorf("redis error: %w", err)
	}
	return nil
}

// Sweep is a no-op: Redis evicts expired keys on its own.
func (s *RedisStore) Sweep(ctx context.Context) (int, error) {
	return 0, nil
}

func (s *RedisStore) Len(ctx context.Context) (int, error) {
	n := 0
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		n++
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("redis error: %w", err)
	}
	return n, nil
}
