package snapshot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const defaultSnapshotTTL = 24 * time.Hour

// RedisSink publishes snapshots as PNG blobs under draftchess:snap:<session>:<n>
// and keeps a per-session list of keys, newest last.
type RedisSink struct {
	rdb     *redis.Client
	session string
	ttl     time.Duration
}

// NewRedisSink connects to redisURL and pings it.
func NewRedisSink(ctx context.Context, redisURL string, ttl time.Duration) (*RedisSink, error) {
	if strings.TrimSpace(redisURL) == "" {
		return nil, fmt.Errorf("redis url required for snapshot sink")
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return newRedisSink(rdb, ttl), nil
}

func newRedisSink(rdb *redis.Client, ttl time.Duration) *RedisSink {
	if ttl <= 0 {
		ttl = defaultSnapshotTTL
	}
	return &RedisSink{rdb: rdb, session: uuid.NewString(), ttl: ttl}
}

func (s *RedisSink) Session() string { return s.session }

func (s *RedisSink) keyIndex() string { return "draftchess:snap:" + s.session }
func (s *RedisSink) keyImage(n int64) string { return fmt.Sprintf("%s:%d", s.keyIndex(), n) }

func (s *RedisSink) Store(ctx context.Context, image []byte) (string, error) {
	n, err := s.rdb.Incr(ctx, s.keyIndex()+":seq").Result()
	if err != nil {
		return "", fmt.Errorf("next snapshot id: %w", err)
	}
	key := s.keyImage(n)

	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, key, image, s.ttl)
	pipe.RPush(ctx, s.keyIndex(), key)
	pipe.Expire(ctx, s.keyIndex(), s.ttl)
	pipe.Expire(ctx, s.keyIndex()+":seq", s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("store snapshot: %w", err)
	}
	return "redis://" + key, nil
}

// Keys lists this session's snapshot keys in store order.
func (s *RedisSink) Keys(ctx context.Context) ([]string, error) {
	return s.rdb.LRange(ctx, s.keyIndex(), 0, -1).Result()
}

// Load returns the image stored under key, or nil when it has expired.
func (s *RedisSink) Load(ctx context.Context, key string) ([]byte, error) {
	raw, err := s.rdb.Get(ctx, strings.TrimPrefix(key, "redis://")).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return raw, err
}

func (s *RedisSink) Close() error { return s.rdb.Close() }
