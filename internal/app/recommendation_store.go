package app

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"career-guidance-service/internal/domain"
	"career-guidance-service/internal/logging"
	"career-guidance-service/internal/metrics"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// DefaultRecommendationKey is the durable key holding the recommended stream.
const DefaultRecommendationKey = "recommendedStream"

// KeyValueStore abstracts durable string storage (Badger, Redis, in-memory).
// Get returns domain.ErrKeyNotFound on a miss.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// RecommendationSource is the read side of the store handed to catalog views.
type RecommendationSource interface {
	Get(ctx context.Context) domain.Recommendation
	Subscribe(fn func(domain.Recommendation)) (unsubscribe func())
}

// RecommendationPublisher is the write side handed to the quiz engine.
type RecommendationPublisher interface {
	Set(ctx context.Context, rec domain.Recommendation)
}

// RecommendationStore holds the single current recommendation for a profile,
// writes it through to durable storage and notifies subscribers synchronously.
type RecommendationStore struct {
	kv  KeyValueStore
	key string
	log zerolog.Logger

	// writeMu serializes Set so subscribers observe writes in order.
	writeMu sync.Mutex

	mu          sync.RWMutex
	loaded      bool
	current     domain.Recommendation
	nextID      uint64
	subscribers map[uint64]func(domain.Recommendation)
}

// NewRecommendationStore creates a store over kv. An empty key uses DefaultRecommendationKey.
func NewRecommendationStore(kv KeyValueStore, key string) *RecommendationStore {
	if key == "" {
		key = DefaultRecommendationKey
	}
	return &RecommendationStore{
		kv:          kv,
		key:         key,
		log:         logging.With("recommendation_store"),
		subscribers: make(map[uint64]func(domain.Recommendation)),
	}
}

// Get returns the current recommendation. The first call loads the durable
// value; anything outside the stream catalog reads as none.
func (s *RecommendationStore) Get(ctx context.Context) domain.Recommendation {
	s.mu.RLock()
	if s.loaded {
		rec := s.current
		s.mu.RUnlock()
		return rec
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		s.current = s.loadLocked(ctx)
		s.loaded = true
	}
	return s.current
}

func (s *RecommendationStore) loadLocked(ctx context.Context) domain.Recommendation {
	raw, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, domain.ErrKeyNotFound) {
		return domain.NoRecommendation
	}
	if err != nil {
		metrics.RecommendationPersistErrors.WithLabelValues("get").Inc()
		s.log.Warn().Err(err).Str("key", s.key).Msg("read persisted recommendation failed")
		return domain.NoRecommendation
	}

	rec, ok := decodeRecommendation(raw)
	if !ok {
		metrics.RecommendationCorruptValues.Inc()
		s.log.Debug().Str("key", s.key).Str("value", raw).Msg("discarding persisted recommendation outside stream catalog")
		if err := s.kv.Delete(ctx, s.key); err != nil {
			s.log.Warn().Err(err).Str("key", s.key).Msg("remove corrupt recommendation failed")
		}
	}
	return rec
}

// Set replaces the recommendation, notifies subscribers, then writes through.
// Setting none removes the durable entry. Storage failures are logged, never returned.
// Subscribers must not call Set.
func (s *RecommendationStore) Set(ctx context.Context, rec domain.Recommendation) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	s.current = rec
	s.loaded = true
	subs := s.subscribersLocked()
	s.mu.Unlock()

	for _, fn := range subs {
		fn(rec)
	}

	metrics.RecommendationUpdates.WithLabelValues(metrics.StreamLabel(rec.String())).Inc()
	s.persist(ctx, rec)
}

func (s *RecommendationStore) persist(ctx context.Context, rec domain.Recommendation) {
	stream, ok := rec.Stream()
	if !ok {
		if err := s.kv.Delete(ctx, s.key); err != nil {
			metrics.RecommendationPersistErrors.WithLabelValues("delete").Inc()
			s.log.Warn().Err(err).Str("key", s.key).Msg("remove persisted recommendation failed")
		}
		return
	}
	if err := s.kv.Put(ctx, s.key, string(stream)); err != nil {
		metrics.RecommendationPersistErrors.WithLabelValues("put").Inc()
		s.log.Warn().Err(err).Str("key", s.key).Str("stream", string(stream)).Msg("persist recommendation failed")
	}
}

// Subscribe registers fn for every Set. The returned function is idempotent.
func (s *RecommendationStore) Subscribe(fn func(domain.Recommendation)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subscribers, id)
			s.mu.Unlock()
		})
	}
}

func (s *RecommendationStore) subscribersLocked() []func(domain.Recommendation) {
	ids := make([]uint64, 0, len(s.subscribers))
	for id := range s.subscribers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]func(domain.Recommendation), 0, len(ids))
	for _, id := range ids {
		out = append(out, s.subscribers[id])
	}
	return out
}

// decodeRecommendation accepts a bare stream tag or a JSON-encoded one.
// Anything else is reported as invalid and reads as none.
func decodeRecommendation(raw string) (domain.Recommendation, bool) {
	if s, ok := domain.ParseStream(raw); ok {
		return domain.Recommend(s), true
	}
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, `"`) {
		var tag string
		if err := json.Unmarshal([]byte(trimmed), &tag); err == nil {
			if s, ok := domain.ParseStream(tag); ok {
				return domain.Recommend(s), true
			}
		}
	}
	return domain.NoRecommendation, false
}
