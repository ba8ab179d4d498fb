package app_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"career-guidance-service/internal/app"
	"career-guidance-service/internal/domain"
)

// manualScheduler records timers and fires them only when a test asks.
type manualScheduler struct {
	mu     sync.Mutex
	timers []*manualTimer
}

type manualTimer struct {
	mu      sync.Mutex
	delay   time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) app.Timer {
	t := &manualTimer{delay: d, f: f}
	s.mu.Lock()
	s.timers = append(s.timers, t)
	s.mu.Unlock()
	return t
}

func (t *manualTimer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// FireActive runs every timer that is neither stopped nor fired.
func (s *manualScheduler) FireActive() int {
	s.mu.Lock()
	timers := append([]*manualTimer(nil), s.timers...)
	s.mu.Unlock()

	n := 0
	for _, t := range timers {
		t.mu.Lock()
		run := !t.stopped && !t.fired
		if run {
			t.fired = true
		}
		t.mu.Unlock()
		if run {
			t.f()
			n++
		}
	}
	return n
}

// ForceFire runs timer i even if it was stopped, as a timer that had already
// been dequeued by the runtime would.
func (s *manualScheduler) ForceFire(i int) {
	s.mu.Lock()
	t := s.timers[i]
	s.mu.Unlock()
	t.f()
}

func (s *manualScheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// recordingPublisher captures every published recommendation.
type recordingPublisher struct {
	mu   sync.Mutex
	sets []domain.Recommendation
}

func (p *recordingPublisher) Set(_ context.Context, rec domain.Recommendation) {
	p.mu.Lock()
	p.sets = append(p.sets, rec)
	p.mu.Unlock()
}

func (p *recordingPublisher) Last() (domain.Recommendation, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.sets) == 0 {
		return domain.NoRecommendation, false
	}
	return p.sets[len(p.sets)-1], true
}

func (p *recordingPublisher) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.sets)
}

var errBackend = errors.New("backend unavailable")

// failingKV fails every operation.
type failingKV struct{}

func (failingKV) Get(context.Context, string) (string, error) { return "", errBackend }
func (failingKV) Put(context.Context, string, string) error   { return errBackend }
func (failingKV) Delete(context.Context, string) error        { return errBackend }

// rawKV is a map-backed store tests can seed with arbitrary values.
type rawKV struct {
	mu      sync.Mutex
	values  map[string]string
	deletes int
}

func newRawKV() *rawKV {
	return &rawKV{values: make(map[string]string)}
}

func (k *rawKV) Get(_ context.Context, key string) (string, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	v, ok := k.values[key]
	if !ok {
		return "", domain.ErrKeyNotFound
	}
	return v, nil
}

func (k *rawKV) Put(_ context.Context, key, value string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.values[key] = value
	return nil
}

func (k *rawKV) Delete(_ context.Context, key string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.values, key)
	k.deletes++
	return nil
}

func (k *rawKV) Value(key string) (string, bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	v, ok := k.values[key]
	return v, ok
}

func engineeringOnlyQuiz() domain.Quiz {
	questions := make([]domain.Question, 6)
	for i := range questions {
		questions[i] = domain.Question{
			ID:   i + 1,
			Text: "Pick one",
			Options: []domain.Option{
				{Label: "Build", Weights: map[domain.Stream]int{domain.Engineering: 2}},
				{Label: "Heal", Weights: map[domain.Stream]int{domain.Medicine: 2, domain.Arts: 1}},
			},
		}
	}
	return domain.Quiz{ID: "engineering-only", Questions: questions}
}

// gatedPublisher blocks the first non-none Set until release is closed.
type gatedPublisher struct {
	next    app.RecommendationPublisher
	reached chan struct{}
	release chan struct{}
	once    sync.Once
}

func newGatedPublisher(next app.RecommendationPublisher) *gatedPublisher {
	return &gatedPublisher{next: next, reached: make(chan struct{}), release: make(chan struct{})}
}

func (g *gatedPublisher) Set(ctx context.Context, rec domain.Recommendation) {
	if !rec.IsNone() {
		gated := false
		g.once.Do(func() { gated = true })
		if gated {
			close(g.reached)
			<-g.release
		}
	}
	g.next.Set(ctx, rec)
}
