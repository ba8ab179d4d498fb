package redis

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"career-guidance-service/internal/domain"
	"career-guidance-service/internal/metrics"
	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// ContentLoader fetches quiz and catalog content from a backing store (e.g., Postgres).
type ContentLoader interface {
	LoadQuiz(ctx context.Context, quizID string) (domain.Quiz, error)
	LoadCourses(ctx context.Context) ([]domain.Course, error)
	LoadColleges(ctx context.Context) ([]domain.College, error)
}

// ContentRepository caches validated content in Redis as JSON and falls back to a loader on miss.
// Keys:
//
//	career:content:quiz:{quizID}
//	career:content:courses
//	career:content:colleges
type ContentRepository struct {
	client *redis.Client
	loader ContentLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
	rndMu  sync.Mutex
}

func NewContentRepository(client *redis.Client, loader ContentLoader, ttl time.Duration) *ContentRepository {
	return &ContentRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *ContentRepository) GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	var quiz domain.Quiz
	err := r.get(ctx, "career:content:quiz:"+quizID, &quiz, func(ctx context.Context) (any, error) {
		q, err := r.loader.LoadQuiz(ctx, quizID)
		if err != nil {
			return nil, err
		}
		return q, domain.ValidateQuiz(q)
	})
	return quiz, err
}

func (r *ContentRepository) GetCourses(ctx context.Context) ([]domain.Course, error) {
	var courses []domain.Course
	err := r.get(ctx, "career:content:courses", &courses, func(ctx context.Context) (any, error) {
		c, err := r.loader.LoadCourses(ctx)
		if err != nil {
			return nil, err
		}
		return c, domain.ValidateCourses(c)
	})
	return courses, err
}

func (r *ContentRepository) GetColleges(ctx context.Context) ([]domain.College, error) {
	var colleges []domain.College
	err := r.get(ctx, "career:content:colleges", &colleges, func(ctx context.Context) (any, error) {
		c, err := r.loader.LoadColleges(ctx)
		if err != nil {
			return nil, err
		}
		return c, domain.ValidateColleges(c)
	})
	return colleges, err
}

// get decodes the cached blob at key into out, loading and caching it on a miss.
func (r *ContentRepository) get(ctx context.Context, key string, out any, load func(context.Context) (any, error)) error {
	if raw, err := r.client.Get(ctx, key).Bytes(); err == nil {
		if err := json.Unmarshal(raw, out); err == nil {
			metrics.ContentCacheHits.WithLabelValues("redis").Inc()
			return nil
		}
	}

	result, err, _ := r.sf.Do(key, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if raw, err := r.client.Get(ctx, key).Bytes(); err == nil {
			return raw, nil
		}

		metrics.ContentCacheMisses.WithLabelValues("redis").Inc()
		value, err := load(ctx)
		if err != nil {
			return nil, err
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		// best-effort fill; the loaded value is still served if Redis is unavailable
		_ = r.client.Set(ctx, key, raw, r.ttlWithJitter()).Err()
		return raw, nil
	})
	if err != nil {
		return err
	}
	return json.Unmarshal(result.([]byte), out)
}

func (r *ContentRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	r.rndMu.Lock()
	defer r.rndMu.Unlock()
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
