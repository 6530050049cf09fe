package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "lesson:content:"

// Entry is everything the content read path returns, so a hit needs no database row.
type Entry struct {
	LessonId      uuid.UUID  `json:"lesson_id"`
	Title         string     `json:"title"`
	Level         string     `json:"level"`
	Content       string     `json:"content"`
	ContentStatus string     `json:"content_status"`
	GeneratedAt   *time.Time `json:"generated_at,omitempty"`
}

// RenderCache keeps the rendered content of a lesson in redis so reads skip the database.
type RenderCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRenderCache(rdb *redis.Client, ttl time.Duration) *RenderCache {
	return &RenderCache{rdb: rdb, ttl: ttl}
}

func Key(lessonId uuid.UUID) string {
	return keyPrefix + lessonId.String()
}

// Get returns (nil, false, nil) on a miss. An entry that no longer decodes is dropped and
// reported as a miss.
func (c *RenderCache) Get(ctx context.Context, lessonId uuid.UUID) (*Entry, bool, error) {
	raw, err := c.rdb.Get(ctx, Key(lessonId)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("render cache get: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		_ = c.rdb.Del(ctx, Key(lessonId)).Err()
		return nil, false, nil
	}
	return &entry, true, nil
}

func (c *RenderCache) Set(ctx context.Context, entry *Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("render cache encode: %w", err)
	}
	if err := c.rdb.Set(ctx, Key(entry.LessonId), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("render cache set: %w", err)
	}
	return nil
}

func (c *RenderCache) Invalidate(ctx context.Context, lessonId uuid.UUID) error {
	if err := c.rdb.Del(ctx, Key(lessonId)).Err(); err != nil {
		return fmt.Errorf("render cache invalidate: %w", err)
	}
	return nil
}

// NewRedisClient parses url, falling back to using it as a plain address.
func NewRedisClient(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		opt = &redis.Options{Addr: url}
	}
	return redis.NewClient(opt)
}
