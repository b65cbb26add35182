package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	return NewRedisStore(client), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	sess := Session{
		SessionID: "sid-1",
		UserID:    "user-1",
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}

	if err := store.Create(ctx, sess); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if ttl := mr.TTL("session:sid-1"); ttl <= 0 {
		t.Fatalf("expected key TTL, got %v", ttl)
	}

	got, err := store.Get(ctx, "sid-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil {
		t.Fatal("expected session, got nil")
	}
	if got.UserID != "user-1" || got.SessionID != "sid-1" {
		t.Fatalf("unexpected session: %+v", got)
	}
	if !got.CreatedAt.Equal(now) {
		t.Fatalf("created_at lost on round trip: %v", got.CreatedAt)
	}
}

func TestRedisStoreGetMissing(t *testing.T) {
	store, _ := newTestStore(t)

	got, err := store.Get(context.Background(), "nope")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing session, got %+v", got)
	}
}

func TestRedisStoreDelete(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	sess := Session{
		SessionID: "sid-1",
		UserID:    "user-1",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	if err := store.Create(ctx, sess); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := store.Delete(ctx, "sid-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	got, err := store.Get(ctx, "sid-1")
	if err != nil || got != nil {
		t.Fatalf("expected session gone, got %+v err %v", got, err)
	}
}

func TestRedisStoreCreateRejectsBadInput(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Create(ctx, Session{UserID: "u", ExpiresAt: time.Now().Add(time.Hour)}); err == nil {
		t.Fatal("expected error for missing session id")
	}
	if err := store.Create(ctx, Session{SessionID: "s", UserID: "u", ExpiresAt: time.Now().Add(-time.Hour)}); err == nil {
		t.Fatal("expected error for past expiry")
	}
}
