package app

import (
	"context"
	"strings"
	"sync"

	"career-guidance-service/internal/domain"
	"career-guidance-service/internal/metrics"
)

// TextMatcher reports whether an entry matches a lower-cased, non-empty query.
type TextMatcher[T domain.CatalogEntry] func(entry T, query string) bool

// CatalogSnapshot is the visible subset of a catalog plus the inputs it was derived from.
type CatalogSnapshot[T domain.CatalogEntry] struct {
	View           string                `json:"view"`
	Recommendation domain.Recommendation `json:"recommendation"`
	// Filter is the effective stream filter; empty means all entries.
	Filter       domain.Stream `json:"filter"`
	Personalized bool          `json:"personalized"`
	Query        string        `json:"query"`
	Entries      []T           `json:"entries"`
}

// StreamFilter returns the effective stream filter for a recommendation,
// override flag and explicit selection. The bool is false for "no stream filter".
func StreamFilter(rec domain.Recommendation, overridden bool, explicit domain.Stream) (domain.Stream, bool) {
	if explicit != "" {
		return explicit, true
	}
	if overridden {
		return "", false
	}
	return rec.Stream()
}

// FilterByStream keeps entries tagged with stream. ok=false passes everything through.
func FilterByStream[T domain.CatalogEntry](entries []T, stream domain.Stream, ok bool) []T {
	out := make([]T, 0, len(entries))
	for _, e := range entries {
		if !ok || hasStream(e, stream) {
			out = append(out, e)
		}
	}
	return out
}

// ApplyTextQuery keeps entries matching a case-insensitive query. An empty
// query or a nil matcher passes everything through.
func ApplyTextQuery[T domain.CatalogEntry](entries []T, query string, match TextMatcher[T]) []T {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || match == nil {
		return entries
	}
	out := make([]T, 0, len(entries))
	for _, e := range entries {
		if match(e, q) {
			out = append(out, e)
		}
	}
	return out
}

func hasStream[T domain.CatalogEntry](e T, stream domain.Stream) bool {
	for _, s := range e.StreamTags() {
		if s == stream {
			return true
		}
	}
	return false
}

// MatchCollege matches name or state.
func MatchCollege(c domain.College, query string) bool {
	return strings.Contains(strings.ToLower(c.Name), query) ||
		strings.Contains(strings.ToLower(c.State), query)
}

// CatalogView narrows a static catalog to the current recommendation, with a
// free-text query layered on top and a user override back to all entries.
//
// The view never caches the recommendation: every snapshot reads the store, and
// the store subscription only signals that a recompute is due.
type CatalogView[T domain.CatalogEntry] struct {
	name    string
	entries []T
	match   TextMatcher[T]
	source  RecommendationSource

	mu          sync.Mutex
	overridden  bool
	explicit    domain.Stream
	query       string
	watchers    map[chan CatalogSnapshot[T]]struct{}
	unsubscribe func()
	done        chan struct{}
	closeOnce   sync.Once
}

// NewCatalogView mounts a view over entries. Close unmounts it.
func NewCatalogView[T domain.CatalogEntry](name string, entries []T, match TextMatcher[T], source RecommendationSource) *CatalogView[T] {
	v := &CatalogView[T]{
		name:     name,
		entries:  entries,
		match:    match,
		source:   source,
		watchers: make(map[chan CatalogSnapshot[T]]struct{}),
		done:     make(chan struct{}),
	}
	v.unsubscribe = source.Subscribe(func(domain.Recommendation) {
		v.broadcast(context.Background())
	})
	return v
}

// NewCourseView mounts a course view. Courses have no text filter; only the stream selector applies.
func NewCourseView(courses []domain.Course, source RecommendationSource) *CatalogView[domain.Course] {
	return NewCatalogView[domain.Course]("courses", courses, nil, source)
}

// NewCollegeView mounts a college view with name/state text search.
func NewCollegeView(colleges []domain.College, source RecommendationSource) *CatalogView[domain.College] {
	return NewCatalogView[domain.College]("colleges", colleges, MatchCollege, source)
}

// EffectiveFilter returns the stream currently applied; false means no stream filter.
func (v *CatalogView[T]) EffectiveFilter(ctx context.Context) (domain.Stream, bool) {
	rec := v.source.Get(ctx)
	v.mu.Lock()
	defer v.mu.Unlock()
	return StreamFilter(rec, v.overridden, v.explicit)
}

// Clear drops the recommendation filter until the view is remounted.
func (v *CatalogView[T]) Clear(ctx context.Context) {
	v.mu.Lock()
	v.overridden = true
	v.explicit = ""
	v.mu.Unlock()
	v.broadcast(ctx)
}

// SelectStream applies an explicit stream. domain.AllStreams behaves like Clear.
// Unknown values are ignored and reported as false.
func (v *CatalogView[T]) SelectStream(ctx context.Context, raw string) bool {
	if raw == domain.AllStreams {
		v.Clear(ctx)
		return true
	}
	s, ok := domain.ParseStream(raw)
	if !ok {
		return false
	}
	v.mu.Lock()
	v.overridden = true
	v.explicit = s
	v.mu.Unlock()
	v.broadcast(ctx)
	return true
}

// SetQuery replaces the free-text query.
func (v *CatalogView[T]) SetQuery(ctx context.Context, query string) {
	v.mu.Lock()
	v.query = query
	v.mu.Unlock()
	v.broadcast(ctx)
}

// Snapshot recomputes the visible subset from the catalog, the current
// recommendation, the override state and the query.
func (v *CatalogView[T]) Snapshot(ctx context.Context) CatalogSnapshot[T] {
	rec := v.source.Get(ctx)
	v.mu.Lock()
	overridden, explicit, query := v.overridden, v.explicit, v.query
	v.mu.Unlock()
	return v.compute(rec, overridden, explicit, query)
}

func (v *CatalogView[T]) compute(rec domain.Recommendation, overridden bool, explicit domain.Stream, query string) CatalogSnapshot[T] {
	metrics.CatalogRecomputes.WithLabelValues(v.name).Inc()
	return deriveSnapshot(v.name, v.entries, v.match, rec, overridden, explicit, query)
}

// deriveSnapshot is a pure function of (catalog, recommendation, override, query).
func deriveSnapshot[T domain.CatalogEntry](name string, entries []T, match TextMatcher[T], rec domain.Recommendation, overridden bool, explicit domain.Stream, query string) CatalogSnapshot[T] {
	stream, ok := StreamFilter(rec, overridden, explicit)
	return CatalogSnapshot[T]{
		View:           name,
		Recommendation: rec,
		Filter:         stream,
		Personalized:   ok && !overridden,
		Query:          query,
		Entries:        ApplyTextQuery(FilterByStream(entries, stream, ok), query, match),
	}
}

// Watch returns a channel receiving the current snapshot and every recompute.
// Slow readers only see the latest snapshot. The channel closes when ctx is
// done or the view is closed.
func (v *CatalogView[T]) Watch(ctx context.Context) <-chan CatalogSnapshot[T] {
	ch := make(chan CatalogSnapshot[T], 1)

	v.mu.Lock()
	v.watchers[ch] = struct{}{}
	v.mu.Unlock()

	v.broadcast(ctx)

	go func() {
		select {
		case <-ctx.Done():
		case <-v.done:
		}
		v.mu.Lock()
		if _, ok := v.watchers[ch]; ok {
			delete(v.watchers, ch)
			close(ch)
		}
		v.mu.Unlock()
	}()
	return ch
}

// Close unsubscribes from the store and closes all watch channels.
func (v *CatalogView[T]) Close() {
	v.closeOnce.Do(func() {
		v.unsubscribe()
		close(v.done)
	})
	v.mu.Lock()
	defer v.mu.Unlock()
	for ch := range v.watchers {
		delete(v.watchers, ch)
		close(ch)
	}
}

func (v *CatalogView[T]) broadcast(ctx context.Context) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.watchers) == 0 {
		return
	}
	// read under v.mu so concurrent recomputes cannot publish out of order
	rec := v.source.Get(ctx)
	snap := v.compute(rec, v.overridden, v.explicit, v.query)
	for ch := range v.watchers {
		select {
		case ch <- snap:
		default:
			// drop the stale snapshot so a slow reader never blocks the store
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
}
