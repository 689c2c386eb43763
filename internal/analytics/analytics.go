// Package analytics counts create/update/import/export events.
// Fire-and-forget: a failing tracker never affects the caller's outcome.
package analytics

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

type Tracker interface {
	// Add bumps a named counter by n. Must never return an error to the
	// caller's flow; failures are the tracker's problem.
	Add(ctx context.Context, event string, n int)
}

// RedisTracker keeps counters under pos:stats:<event>.
type RedisTracker struct {
	rdb *redis.Client
}

func NewRedisTracker(rdb *redis.Client) *RedisTracker { return &RedisTracker{rdb: rdb} }

func (t *RedisTracker) Add(ctx context.Context, event string, n int) {
	if n == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()
	if err := t.rdb.IncrBy(ctx, "pos:stats:"+event, int64(n)).Err(); err != nil {
		log.Printf("analytics: %s: %v", event, err)
	}
}

// Noop is used in tests and when Redis is not configured.
type Noop struct{}

func (Noop) Add(context.Context, string, int) {}
