package redis

import (
	"context"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
)

func TestCacheSetGet(t *testing.T) {
	client, _ := newTestRedisClient(t)
	cache := NewCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "metrics", []byte(`{"purchases":50}`), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := cache.Get(ctx, "metrics")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `{"purchases":50}` {
		t.Fatalf("unexpected value %q", got)
	}
}

func TestCacheGetMissing(t *testing.T) {
	client, _ := newTestRedisClient(t)
	cache := NewCache(client)

	_, err := cache.Get(context.Background(), "absent")
	if err != redislib.Nil {
		t.Fatalf("expected redis.Nil, got %v", err)
	}
}

func TestCacheExpiry(t *testing.T) {
	client, mr := newTestRedisClient(t)
	cache := NewCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "metrics", []byte("x"), 30*time.Second); err != nil {
		t.Fatalf("set: %v", err)
	}

	mr.FastForward(31 * time.Second)

	if _, err := cache.Get(ctx, "metrics"); err != redislib.Nil {
		t.Fatalf("expected redis.Nil after expiry, got %v", err)
	}
}

func TestCacheDelete(t *testing.T) {
	client, _ := newTestRedisClient(t)
	cache := NewCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "metrics", []byte("x"), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := cache.Delete(ctx, "metrics"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := cache.Get(ctx, "metrics"); err != redislib.Nil {
		t.Fatalf("expected redis.Nil after delete, got %v", err)
	}
}
