package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-bookmarks-api/internal/domain/entity"
	"github.com/oksasatya/go-bookmarks-api/pkg/helpers"
)

// BookmarkCache keeps each owner's bookmark list under bookmarks:user:<id>.
// Every invalidation bumps bookmarks:user:<id>:gen; a fill only lands when
// the generation it started from is still current.
type BookmarkCache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewBookmarkCache(rdb redis.Cmdable, ttl time.Duration) *BookmarkCache {
	return &BookmarkCache{rdb: rdb, ttl: ttl}
}

func listKey(ownerID string) string { return "bookmarks:user:" + ownerID }
func genKey(ownerID string) string  { return "bookmarks:user:" + ownerID + ":gen" }

// setIfGeneration writes KEYS[1] only when KEYS[2] still holds ARGV[1].
// A missing generation key counts as 0.
var setIfGeneration = redis.NewScript(`
local gen = redis.call("GET", KEYS[2])
if not gen then gen = "0" end
if gen ~= ARGV[1] then
  return 0
end
redis.call("SET", KEYS[1], ARGV[2], "PX", ARGV[3])
return 1
`)

// GetList reports false on a miss.
func (c *BookmarkCache) GetList(ctx context.Context, ownerID string) ([]entity.Bookmark, bool, error) {
	var list []entity.Bookmark
	ok, err := helpers.RedisGetJSON(ctx, c.rdb, listKey(ownerID), &list)
	if err != nil || !ok {
		return nil, false, err
	}
	if list == nil {
		list = []entity.Bookmark{}
	}
	return list, true, nil
}

// Generation returns the owner's current invalidation counter.
func (c *BookmarkCache) Generation(ctx context.Context, ownerID string) (int64, error) {
	gen, err := c.rdb.Get(ctx, genKey(ownerID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// SetList stores list if no invalidation happened since gen was read.
// It reports whether the list was stored.
func (c *BookmarkCache) SetList(ctx context.Context, ownerID string, gen int64, list []entity.Bookmark) (bool, error) {
	raw, err := json.Marshal(list)
	if err != nil {
		return false, fmt.Errorf("marshal bookmarks: %w", err)
	}
	stored, err := setIfGeneration.Run(ctx, c.rdb,
		[]string{listKey(ownerID), genKey(ownerID)},
		gen, raw, c.ttl.Milliseconds(),
	).Int()
	if err != nil {
		return false, err
	}
	return stored == 1, nil
}

// Invalidate drops the cached list and bumps the generation so fills that
// read the store before this call are discarded.
func (c *BookmarkCache) Invalidate(ctx context.Context, ownerID string) error {
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genKey(ownerID))
		pipe.Del(ctx, listKey(ownerID))
		return nil
	})
	return err
}

func (c *BookmarkCache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}
