package app_test

import (
	"context"
	"testing"

	"career-guidance-service/internal/app"
	"career-guidance-service/internal/domain"
)

func TestRecommendationStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := newRawKV()

	for _, s := range domain.Streams() {
		app.NewRecommendationStore(kv, "").Set(ctx, domain.Recommend(s))

		fresh := app.NewRecommendationStore(kv, "")
		if got := fresh.Get(ctx); got != domain.Recommend(s) {
			t.Fatalf("expected %s after reload, got %s", s, got)
		}
	}
	if v, _ := kv.Value(app.DefaultRecommendationKey); v != "IT" {
		t.Fatalf("expected bare tag persisted, got %q", v)
	}
}

func TestRecommendationStoreDefaultsToNone(t *testing.T) {
	store := app.NewRecommendationStore(newRawKV(), "")
	if got := store.Get(context.Background()); !got.IsNone() {
		t.Fatalf("expected none, got %s", got)
	}
}

func TestRecommendationStoreFailsOpenOnCorruptValue(t *testing.T) {
	ctx := context.Background()
	for _, raw := range []string{"Law", "", "engineering", `{"stream":"IT"}`, "null"} {
		kv := newRawKV()
		_ = kv.Put(ctx, app.DefaultRecommendationKey, raw)

		store := app.NewRecommendationStore(kv, "")
		if got := store.Get(ctx); !got.IsNone() {
			t.Fatalf("%q: expected none, got %s", raw, got)
		}
		if _, ok := kv.Value(app.DefaultRecommendationKey); ok {
			t.Fatalf("%q: expected corrupt value removed", raw)
		}
	}
}

func TestRecommendationStoreAcceptsJSONEncodedTag(t *testing.T) {
	ctx := context.Background()
	kv := newRawKV()
	_ = kv.Put(ctx, app.DefaultRecommendationKey, `"Medicine"`)

	if got := app.NewRecommendationStore(kv, "").Get(ctx); got != domain.Recommend(domain.Medicine) {
		t.Fatalf("expected Medicine, got %s", got)
	}
}

func TestRecommendationStoreNoneRemovesKey(t *testing.T) {
	ctx := context.Background()
	kv := newRawKV()
	store := app.NewRecommendationStore(kv, "custom")

	store.Set(ctx, domain.Recommend(domain.Arts))
	if v, _ := kv.Value("custom"); v != "Arts" {
		t.Fatalf("expected Arts under custom key, got %q", v)
	}
	store.Set(ctx, domain.NoRecommendation)
	if _, ok := kv.Value("custom"); ok {
		t.Fatalf("expected key deleted")
	}
	if got := store.Get(ctx); !got.IsNone() {
		t.Fatalf("expected none, got %s", got)
	}
}

func TestRecommendationStoreSurvivesBackendFailure(t *testing.T) {
	ctx := context.Background()
	store := app.NewRecommendationStore(failingKV{}, "")

	if got := store.Get(ctx); !got.IsNone() {
		t.Fatalf("expected none from failing backend, got %s", got)
	}

	var seen []domain.Recommendation
	store.Subscribe(func(rec domain.Recommendation) { seen = append(seen, rec) })
	store.Set(ctx, domain.Recommend(domain.Commerce))

	if got := store.Get(ctx); got != domain.Recommend(domain.Commerce) {
		t.Fatalf("expected in-memory Commerce despite write failure, got %s", got)
	}
	if len(seen) != 1 {
		t.Fatalf("expected subscriber notified, got %v", seen)
	}
}

func TestRecommendationStoreSubscribe(t *testing.T) {
	ctx := context.Background()
	store := app.NewRecommendationStore(newRawKV(), "")

	var order []string
	var got []domain.Recommendation
	unsubA := store.Subscribe(func(rec domain.Recommendation) {
		order = append(order, "a")
		got = append(got, rec)
	})
	unsubB := store.Subscribe(func(domain.Recommendation) { order = append(order, "b") })

	store.Set(ctx, domain.Recommend(domain.IT))
	unsubB()
	unsubB()
	store.Set(ctx, domain.NoRecommendation)
	unsubA()
	store.Set(ctx, domain.Recommend(domain.Arts))

	if len(order) != 3 || order[0] != "a" || order[1] != "b" || order[2] != "a" {
		t.Fatalf("unexpected notification order %v", order)
	}
	if len(got) != 2 || got[0] != domain.Recommend(domain.IT) || !got[1].IsNone() {
		t.Fatalf("unexpected values %v", got)
	}
}
