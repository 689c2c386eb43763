package analytics

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestRedisTracker_Add(t *testing.T) {
	mr := miniredis.RunT(t)
	defer mr.Close()
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	tr := NewRedisTracker(rdb)

	ctx := context.Background()
	tr.Add(ctx, "employee_created", 1)
	tr.Add(ctx, "employee_created", 2)

	v, err := mr.Get("pos:stats:employee_created")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if v != "3" {
		t.Fatalf("counter = %q, want 3", v)
	}
}

func TestRedisTracker_ZeroIsNoop(t *testing.T) {
	mr := miniredis.RunT(t)
	defer mr.Close()
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	tr := NewRedisTracker(rdb)

	tr.Add(context.Background(), "noop_event", 0)
	if mr.Exists("pos:stats:noop_event") {
		t.Fatal("zero increment must not touch redis")
	}
}

func TestRedisTracker_SurvivesCancelledContext(t *testing.T) {
	mr := miniredis.RunT(t)
	defer mr.Close()
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	tr := NewRedisTracker(rdb)

	// Counting happens after the request finished; a dead request
	// context must not lose the event.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	tr.Add(ctx, "late_event", 1)

	v, err := mr.Get("pos:stats:late_event")
	if err != nil || v != "1" {
		t.Fatalf("counter = %q err=%v", v, err)
	}
}
