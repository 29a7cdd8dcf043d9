package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"catalogo-tienda/logx"
)

// RedisStore is a PageStore shared between instances. Each page lives under
// its own key so a download reads a single PNG.
type RedisStore struct {
	rdb redis.Cmdable
	ttl time.Duration
}

// NewRedisClient parses a redis:// URL and checks the connection
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second
	opts.DialTimeout = 5 * time.Second

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

// NewRedisStore creates a store over any redis client
func NewRedisStore(rdb redis.Cmdable, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultPageTTL
	}
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) sessionKey(session string) string {
	return fmt.Sprintf("catalog:png:%s", session)
}

func (s *RedisStore) pageKey(session string, page int) string {
	return fmt.Sprintf("catalog:png:%s:%d", session, page)
}

// Put implements PageStore. The session key stores the page count so a
// missing page can be told apart from an expired session.
func (s *RedisStore) Put(ctx context.Context, session string, pages map[int][]byte) error {
	if session == "" {
		return fmt.Errorf("session id is required")
	}
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for n, data := range pages {
			pipe.Set(ctx, s.pageKey(session, n), data, s.ttl)
		}
		pipe.Set(ctx, s.sessionKey(session), len(pages), s.ttl)
		return nil
	})
	if err != nil {
		logx.Error().Err(err).Str("session", session).Msg("failed to store PNG pages in redis")
		return fmt.Errorf("store pages: %w", err)
	}
	return nil
}

// Get implements PageStore
func (s *RedisStore) Get(ctx context.Context, session string, page int) ([]byte, error) {
	data, err := s.rdb.Get(ctx, s.pageKey(session, page)).Bytes()
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, redis.Nil) {
		logx.Error().Err(err).Str("session", session).Int("page", page).Msg("failed to load PNG page from redis")
		return nil, fmt.Errorf("load page: %w", err)
	}

	count, err := s.rdb.Get(ctx, s.sessionKey(session)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return nil, fmt.Errorf("%w: %d of %s", ErrPageNotFound, page, count)
}

var _ PageStore = (*RedisStore)(nil)
