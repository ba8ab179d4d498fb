package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"career-guidance-service/internal/domain"
	"career-guidance-service/internal/metrics"
	"golang.org/x/sync/singleflight"
)

// ContentLoader fetches quiz and catalog content from a backing store (e.g., Postgres).
type ContentLoader interface {
	LoadQuiz(ctx context.Context, quizID string) (domain.Quiz, error)
	LoadCourses(ctx context.Context) ([]domain.Course, error)
	LoadColleges(ctx context.Context) ([]domain.College, error)
}

const (
	coursesKey  = "courses"
	collegesKey = "colleges"
)

// ContentRepository caches content with TTL to avoid repeated loader hits.
// Content is validated once on load; invalid content is never cached.
type ContentRepository struct {
	loader ContentLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand
	rndMu  sync.Mutex

	mu    sync.RWMutex
	cache map[string]cachedContent
}

type cachedContent struct {
	value     any
	expiresAt time.Time
}

func NewContentRepository(loader ContentLoader, ttl time.Duration) *ContentRepository {
	return &ContentRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedContent),
	}
}

func (r *ContentRepository) GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	v, err := r.get(ctx, "quiz:"+quizID, func(ctx context.Context) (any, error) {
		quiz, err := r.loader.LoadQuiz(ctx, quizID)
		if err != nil {
			return nil, err
		}
		if err := domain.ValidateQuiz(quiz); err != nil {
			return nil, err
		}
		return quiz, nil
	})
	if err != nil {
		return domain.Quiz{}, err
	}
	return v.(domain.Quiz), nil
}

func (r *ContentRepository) GetCourses(ctx context.Context) ([]domain.Course, error) {
	v, err := r.get(ctx, coursesKey, func(ctx context.Context) (any, error) {
		courses, err := r.loader.LoadCourses(ctx)
		if err != nil {
			return nil, err
		}
		if err := domain.ValidateCourses(courses); err != nil {
			return nil, err
		}
		return courses, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Course), nil
}

func (r *ContentRepository) GetColleges(ctx context.Context) ([]domain.College, error) {
	v, err := r.get(ctx, collegesKey, func(ctx context.Context) (any, error) {
		colleges, err := r.loader.LoadColleges(ctx)
		if err != nil {
			return nil, err
		}
		if err := domain.ValidateColleges(colleges); err != nil {
			return nil, err
		}
		return colleges, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.College), nil
}

func (r *ContentRepository) get(ctx context.Context, key string, load func(context.Context) (any, error)) (any, error) {
	now := r.clock()

	r.mu.RLock()
	if entry, ok := r.cache[key]; ok && entry.expiresAt.After(now) {
		r.mu.RUnlock()
		metrics.ContentCacheHits.WithLabelValues("memory").Inc()
		return entry.value, nil
	}
	r.mu.RUnlock()

	result, err, _ := r.sf.Do(key, func() (interface{}, error) {
		now := r.clock()
		r.mu.RLock()
		if entry, ok := r.cache[key]; ok && entry.expiresAt.After(now) {
			r.mu.RUnlock()
			return entry.value, nil
		}
		r.mu.RUnlock()

		metrics.ContentCacheMisses.WithLabelValues("memory").Inc()
		value, err := load(ctx)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.cache[key] = cachedContent{
			value:     value,
			expiresAt: now.Add(r.ttlWithJitter()),
		}
		r.mu.Unlock()
		return value, nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// StaticContentLoader is a loader backed by in-memory content (useful for tests/demos).
type StaticContentLoader struct {
	quizzes  map[string]domain.Quiz
	courses  []domain.Course
	colleges []domain.College
}

func NewStaticContentLoader(quizzes map[string]domain.Quiz, courses []domain.Course, colleges []domain.College) *StaticContentLoader {
	return &StaticContentLoader{quizzes: quizzes, courses: courses, colleges: colleges}
}

// NewReferenceContentLoader serves the built-in aptitude quiz and catalogs.
func NewReferenceContentLoader() *StaticContentLoader {
	quiz := ReferenceQuiz()
	return NewStaticContentLoader(map[string]domain.Quiz{quiz.ID: quiz}, ReferenceCourses(), ReferenceColleges())
}

func (l *StaticContentLoader) LoadQuiz(_ context.Context, quizID string) (domain.Quiz, error) {
	if quiz, ok := l.quizzes[quizID]; ok {
		return quiz, nil
	}
	return domain.Quiz{}, domain.ErrQuizNotFound
}

func (l *StaticContentLoader) LoadCourses(_ context.Context) ([]domain.Course, error) {
	return l.courses, nil
}

func (l *StaticContentLoader) LoadColleges(_ context.Context) ([]domain.College, error) {
	return l.colleges, nil
}

func (r *ContentRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	r.rndMu.Lock()
	defer r.rndMu.Unlock()
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
