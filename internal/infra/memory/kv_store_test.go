package memory

import (
	"context"
	"errors"
	"testing"

	"career-guidance-service/internal/domain"
)

func TestKVStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewKVStore()

	if _, err := store.Get(ctx, "recommendedStream"); !errors.Is(err, domain.ErrKeyNotFound) {
		t.Fatalf("expected miss, got %v", err)
	}
	if err := store.Put(ctx, "recommendedStream", "IT"); err != nil {
		t.Fatalf("put: %v", err)
	}
	v, err := store.Get(ctx, "recommendedStream")
	if err != nil || v != "IT" {
		t.Fatalf("expected IT, got %q (%v)", v, err)
	}

	if err := store.Delete(ctx, "recommendedStream"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, "recommendedStream"); !errors.Is(err, domain.ErrKeyNotFound) {
		t.Fatalf("expected key removed, got %v", err)
	}
}
