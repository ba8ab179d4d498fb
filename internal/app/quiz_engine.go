package app

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"career-guidance-service/internal/domain"
	"career-guidance-service/internal/logging"
	"career-guidance-service/internal/metrics"
	"github.com/rs/zerolog"
)

// DefaultAdvanceDelay is the pause between a selection and the next question.
const DefaultAdvanceDelay = 450 * time.Millisecond

// QuizCallbacks lets the shell react to engine transitions. The engine never navigates itself.
// Callbacks run without engine locks held and may be invoked from a timer goroutine.
type QuizCallbacks struct {
	OnChange         func(domain.QuizState)
	OnComplete       func(domain.Recommendation)
	OnExploreCourses func()
	OnBrowseColleges func()
}

// QuizOption configures a QuizEngine.
type QuizOption func(*QuizEngine)

// WithScheduler replaces the timer source used for auto-advance.
func WithScheduler(s Scheduler) QuizOption {
	return func(e *QuizEngine) { e.scheduler = s }
}

// WithAdvanceDelay sets the auto-advance delay.
func WithAdvanceDelay(d time.Duration) QuizOption {
	return func(e *QuizEngine) {
		if d >= 0 {
			e.delay = d
		}
	}
}

// WithCallbacks installs shell callbacks.
func WithCallbacks(cb QuizCallbacks) QuizOption {
	return func(e *QuizEngine) { e.callbacks = cb }
}

type pendingAdvance struct {
	timer Timer
	index int
	seq   uint64
}

// QuizEngine drives one attempt through a quiz, accumulates a ScoreBoard and
// publishes the winning stream on completion.
//
// States are Answering(i) for 0 <= i < N and Complete (i == N). At most one
// auto-advance is armed at a time and every transition cancels it first.
type QuizEngine struct {
	quiz      domain.Quiz
	publisher RecommendationPublisher
	scheduler Scheduler
	delay     time.Duration
	callbacks QuizCallbacks
	log       zerolog.Logger

	// publishMu orders a transition with its publish. It is taken before mu.
	publishMu sync.Mutex

	mu       sync.Mutex
	index    int
	scores   domain.ScoreBoard
	selected *int
	pending  *pendingAdvance
	seq      uint64
	closed   bool
}

// NewQuizEngine creates an engine positioned at the first question. It does not
// touch the published recommendation; call Start for an explicit retake.
func NewQuizEngine(quiz domain.Quiz, publisher RecommendationPublisher, opts ...QuizOption) *QuizEngine {
	e := &QuizEngine{
		quiz:      quiz,
		publisher: publisher,
		scheduler: RealScheduler{},
		delay:     DefaultAdvanceDelay,
		log:       logging.With("quiz_engine").With().Str("quiz_id", quiz.ID).Logger(),
		scores:    domain.NewScoreBoard(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start resets the attempt to the first question with an all-zero board and
// clears the published recommendation so a stale one cannot leak into catalogs.
func (e *QuizEngine) Start(ctx context.Context) {
	e.publishMu.Lock()
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		e.publishMu.Unlock()
		return
	}
	e.cancelPendingLocked()
	e.index = 0
	e.scores = domain.NewScoreBoard()
	e.selected = nil
	state := e.stateLocked()
	e.mu.Unlock()

	metrics.QuizRestarts.Inc()
	e.publisher.Set(ctx, domain.NoRecommendation)
	e.publishMu.Unlock()
	e.emit(state)
}

// SelectOption accumulates the option's weights into the board and arms the
// auto-advance. It is a no-op once the quiz is complete. A second selection
// before the advance fires is rejected with domain.ErrAdvancePending.
func (e *QuizEngine) SelectOption(ctx context.Context, option int) error {
	e.mu.Lock()
	if e.closed || e.index >= len(e.quiz.Questions) {
		e.mu.Unlock()
		return nil
	}
	q := e.quiz.Questions[e.index]
	if option < 0 || option >= len(q.Options) {
		e.mu.Unlock()
		return fmt.Errorf("%w: %d (question %d has %d options)", domain.ErrInvalidOption, option, q.ID, len(q.Options))
	}
	if e.pending != nil {
		e.mu.Unlock()
		return domain.ErrAdvancePending
	}

	e.scores.Add(q.Options[option].Weights)
	selected := option
	e.selected = &selected
	e.armLocked(ctx)
	state := e.stateLocked()
	e.mu.Unlock()

	metrics.QuizAnswers.Inc()
	e.emit(state)
	return nil
}

// GoBack returns to the previous question. Weights already accumulated are
// kept, so answering again adds to the board rather than replacing the earlier answer.
func (e *QuizEngine) GoBack() bool {
	e.mu.Lock()
	if e.closed || e.index == 0 || e.index >= len(e.quiz.Questions) {
		e.mu.Unlock()
		return false
	}
	e.cancelPendingLocked()
	e.index--
	e.selected = nil
	state := e.stateLocked()
	e.mu.Unlock()

	e.emit(state)
	return true
}

// GoForward advances immediately once the current question has a selection,
// cancelling the armed auto-advance.
func (e *QuizEngine) GoForward(ctx context.Context) bool {
	e.publishMu.Lock()
	e.mu.Lock()
	if e.closed || e.index >= len(e.quiz.Questions) || e.selected == nil {
		e.mu.Unlock()
		e.publishMu.Unlock()
		return false
	}
	e.cancelPendingLocked()
	e.advanceAndNotify(ctx)
	return true
}

// IsComplete reports whether every question has been answered. Once it
// returns true the recommendation has been published.
func (e *QuizEngine) IsComplete() bool {
	e.publishMu.Lock()
	defer e.publishMu.Unlock()
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.index >= len(e.quiz.Questions)
}

// State returns a snapshot of the attempt.
func (e *QuizEngine) State() domain.QuizState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stateLocked()
}

// ExploreCourses forwards to the shell once the quiz is complete.
func (e *QuizEngine) ExploreCourses() bool {
	if !e.IsComplete() || e.callbacks.OnExploreCourses == nil {
		return false
	}
	e.callbacks.OnExploreCourses()
	return true
}

// BrowseColleges forwards to the shell once the quiz is complete.
func (e *QuizEngine) BrowseColleges() bool {
	if !e.IsComplete() || e.callbacks.OnBrowseColleges == nil {
		return false
	}
	e.callbacks.OnBrowseColleges()
	return true
}

// Close cancels any armed advance. Later operations are no-ops.
func (e *QuizEngine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelPendingLocked()
	e.closed = true
}

func (e *QuizEngine) armLocked(ctx context.Context) {
	e.cancelPendingLocked()
	e.seq++
	seq, index := e.seq, e.index
	detached := context.WithoutCancel(ctx)
	timer := e.scheduler.AfterFunc(e.delay, func() {
		e.fireAdvance(detached, seq, index)
	})
	e.pending = &pendingAdvance{timer: timer, index: index, seq: seq}
}

func (e *QuizEngine) cancelPendingLocked() {
	if e.pending == nil {
		return
	}
	e.pending.timer.Stop()
	e.pending = nil
}

func (e *QuizEngine) fireAdvance(ctx context.Context, seq uint64, index int) {
	e.publishMu.Lock()
	e.mu.Lock()
	if e.closed || e.pending == nil || e.pending.seq != seq || e.index != index {
		e.mu.Unlock()
		e.publishMu.Unlock()
		metrics.StaleAdvances.Inc()
		e.log.Debug().Int("armed_index", index).Uint64("seq", seq).Msg("discarding stale auto-advance")
		return
	}
	e.pending = nil
	e.advanceAndNotify(ctx)
}

// advanceAndNotify must be called with e.publishMu and e.mu held; it releases
// both. The completion publish happens before publishMu is released so a
// concurrent Start cannot be overtaken by it.
func (e *QuizEngine) advanceAndNotify(ctx context.Context) {
	e.index++
	e.selected = nil
	complete := e.index >= len(e.quiz.Questions)
	state := e.stateLocked()
	e.mu.Unlock()

	if !complete {
		e.publishMu.Unlock()
		e.emit(state)
		return
	}

	rec := state.Recommendation
	metrics.QuizCompletions.WithLabelValues(metrics.StreamLabel(rec.String())).Inc()
	e.log.Info().Str("stream", rec.String()).Interface("scores", state.Scores).Msg("quiz complete")
	e.publisher.Set(ctx, rec)
	e.publishMu.Unlock()

	e.emit(state)
	if e.callbacks.OnComplete != nil {
		e.callbacks.OnComplete(rec)
	}
}

func (e *QuizEngine) emit(state domain.QuizState) {
	if e.callbacks.OnChange != nil {
		e.callbacks.OnChange(state)
	}
}

func (e *QuizEngine) stateLocked() domain.QuizState {
	total := len(e.quiz.Questions)
	answered := e.index
	if answered > total {
		answered = total
	}
	state := domain.QuizState{
		QuizID:   e.quiz.ID,
		Index:    e.index,
		Total:    total,
		Answered: answered,
		Complete: e.index >= total,
		Scores:   e.scores.Clone(),
	}
	if total > 0 {
		state.Percent = int(math.Round(float64(answered) / float64(total) * 100))
	} else {
		state.Percent = 100
	}
	if e.selected != nil {
		selected := *e.selected
		state.Selected = &selected
	}
	if state.Complete {
		state.Recommendation = domain.Recommend(ComputeRecommendation(e.scores))
	} else {
		q := e.quiz.Questions[e.index]
		state.Question = &q
	}
	return state
}

// ComputeRecommendation returns the stream with the highest score. Ties go to
// the stream declared first in the catalog.
func ComputeRecommendation(scores domain.ScoreBoard) domain.Stream {
	streams := domain.Streams()
	best := streams[0]
	for _, s := range streams[1:] {
		if scores[s] > scores[best] {
			best = s
		}
	}
	return best
}
