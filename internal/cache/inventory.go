package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const AnonymousFeedKeyPrefix = "feed:anon:%d:%d"

// AnonymousFeedKey is keyed by page and page size so a size change never serves stale shapes.
func AnonymousFeedKey(page, limit int) string {
	return fmt.Sprintf(AnonymousFeedKeyPrefix, page, limit)
}

// Invalidate deletes keys on rdb, ignoring a nil client.
func Invalidate(ctx context.Context, rdb *redis.Client, keys ...string) {
	if rdb == nil || len(keys) == 0 {
		return
	}
	rdb.Del(ctx, keys...)
}

// InvalidateAnonymousFeed drops the first cached pages of the anonymous feed.
func InvalidateAnonymousFeed(ctx context.Context, rdb *redis.Client, limit int) {
	Invalidate(ctx, rdb, AnonymousFeedKey(1, limit))
}
