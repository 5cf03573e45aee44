package kv

import (
	"context"
	"errors"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

type fakeRedis struct {
	data   map[string]string
	ttl    time.Duration
	setErr error
}

func (f *fakeRedis) Get(ctx context.Context, key string) *goredis.StringCmd {
	val, ok := f.data[key]
	if !ok {
		return goredis.NewStringResult("", goredis.Nil)
	}
	return goredis.NewStringResult(val, nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.StatusCmd {
	if f.setErr != nil {
		return goredis.NewStatusResult("", f.setErr)
	}
	f.data[key] = string(value.([]byte))
	f.ttl = expiration
	return goredis.NewStatusResult("OK", nil)
}

func TestRedisStoreRoundTrip(t *testing.T) {
	fake := &fakeRedis{data: map[string]string{}}
	store := &RedisStore{rdb: fake}
	ctx := context.Background()

	if _, err := store.Get(ctx, "internships"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := store.Set(ctx, "internships", []byte(`[]`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if fake.ttl != 0 {
		t.Fatalf("expected no expiry, got %s", fake.ttl)
	}
	got, err := store.Get(ctx, "internships")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "[]" {
		t.Fatalf("unexpected value %q", got)
	}
}

func TestRedisStoreSetError(t *testing.T) {
	boom := errors.New("connection refused")
	store := &RedisStore{rdb: &fakeRedis{data: map[string]string{}, setErr: boom}}
	if err := store.Set(context.Background(), "internships", []byte("[]")); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestDialRedisRejectsBadURL(t *testing.T) {
	if _, err := DialRedis(context.Background(), "not-a-url"); err == nil {
		t.Fatalf("expected parse error")
	}
}
