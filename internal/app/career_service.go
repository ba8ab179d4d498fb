package app

import (
	"context"
	"fmt"
	"time"

	"career-guidance-service/internal/domain"
)

// QuizRepository loads quiz definitions (from cache/backing store).
type QuizRepository interface {
	GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error)
}

// CatalogRepository loads the static course and college catalogs.
type CatalogRepository interface {
	GetCourses(ctx context.Context) ([]domain.Course, error)
	GetColleges(ctx context.Context) ([]domain.College, error)
}

// ContentRepository is everything the service reads but never writes.
type ContentRepository interface {
	QuizRepository
	CatalogRepository
}

// CatalogQuery is a stateless catalog request. Stream is empty for the
// recommendation default, domain.AllStreams for everything, or a stream tag.
type CatalogQuery struct {
	Stream string
	Text   string
}

// CareerService wires quiz attempts and catalog views to a single recommendation store.
type CareerService struct {
	content   ContentRepository
	store     *RecommendationStore
	scheduler Scheduler
	delay     time.Duration
}

func NewCareerService(content ContentRepository, store *RecommendationStore, scheduler Scheduler, delay time.Duration) *CareerService {
	if scheduler == nil {
		scheduler = RealScheduler{}
	}
	return &CareerService{content: content, store: store, scheduler: scheduler, delay: delay}
}

// Quiz returns the validated quiz definition.
func (s *CareerService) Quiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	return s.content.GetQuiz(ctx, quizID)
}

// NewQuiz mounts a quiz attempt for quizID. The caller must Close the engine.
func (s *CareerService) NewQuiz(ctx context.Context, quizID string, cb QuizCallbacks) (*QuizEngine, error) {
	quiz, err := s.content.GetQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	return NewQuizEngine(quiz, s.store,
		WithScheduler(s.scheduler),
		WithAdvanceDelay(s.delay),
		WithCallbacks(cb),
	), nil
}

// CourseView mounts a course view. The caller must Close it.
func (s *CareerService) CourseView(ctx context.Context) (*CatalogView[domain.Course], error) {
	courses, err := s.content.GetCourses(ctx)
	if err != nil {
		return nil, err
	}
	return NewCourseView(courses, s.store), nil
}

// CollegeView mounts a college view. The caller must Close it.
func (s *CareerService) CollegeView(ctx context.Context) (*CatalogView[domain.College], error) {
	colleges, err := s.content.GetColleges(ctx)
	if err != nil {
		return nil, err
	}
	return NewCollegeView(colleges, s.store), nil
}

// Recommendation returns the current recommendation.
func (s *CareerService) Recommendation(ctx context.Context) domain.Recommendation {
	return s.store.Get(ctx)
}

// ClearRecommendation resets the recommendation to none.
func (s *CareerService) ClearRecommendation(ctx context.Context) {
	s.store.Set(ctx, domain.NoRecommendation)
}

// ListCourses filters the course catalog without mounting a view.
func (s *CareerService) ListCourses(ctx context.Context, q CatalogQuery) (CatalogSnapshot[domain.Course], error) {
	courses, err := s.content.GetCourses(ctx)
	if err != nil {
		return CatalogSnapshot[domain.Course]{}, err
	}
	return listCatalog(ctx, s.store, "courses", courses, nil, q)
}

// ListColleges filters the college directory without mounting a view.
func (s *CareerService) ListColleges(ctx context.Context, q CatalogQuery) (CatalogSnapshot[domain.College], error) {
	colleges, err := s.content.GetColleges(ctx)
	if err != nil {
		return CatalogSnapshot[domain.College]{}, err
	}
	return listCatalog(ctx, s.store, "colleges", colleges, MatchCollege, q)
}

func listCatalog[T domain.CatalogEntry](ctx context.Context, source RecommendationSource, name string, entries []T, match TextMatcher[T], q CatalogQuery) (CatalogSnapshot[T], error) {
	var (
		overridden bool
		explicit   domain.Stream
	)
	switch q.Stream {
	case "":
	case domain.AllStreams:
		overridden = true
	default:
		stream, ok := domain.ParseStream(q.Stream)
		if !ok {
			return CatalogSnapshot[T]{}, fmt.Errorf("%w: %q", domain.ErrUnknownStream, q.Stream)
		}
		overridden, explicit = true, stream
	}

	return deriveSnapshot(name, entries, match, source.Get(ctx), overridden, explicit, q.Text), nil
}
