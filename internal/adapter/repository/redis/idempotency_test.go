package redis

import (
	"context"
	"testing"
	"time"
)

func TestIdempotencyStoreCheckAndSet(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	exists, _, err := store.CheckAndSet(ctx, "trade-1", nil, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exists {
		t.Fatal("expected key to be new")
	}

	if err := store.Update(ctx, "trade-1", []byte(`{"success":true}`), time.Minute); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	exists, cached, err := store.CheckAndSet(ctx, "trade-1", nil, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exists {
		t.Fatal("expected key to exist after update")
	}
	if string(cached) != `{"success":true}` {
		t.Fatalf("unexpected cached response: %s", cached)
	}
}

func TestIdempotencyStoreConcurrentFirstRequestWins(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	if _, _, err := store.CheckAndSet(ctx, "trade-2", nil, time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A second request with the same key sees the processing marker.
	exists, cached, err := store.CheckAndSet(ctx, "trade-2", nil, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exists {
		t.Fatal("expected second request to observe existing key")
	}
	if string(cached) != "processing" {
		t.Fatalf("expected processing marker, got %s", cached)
	}
}
