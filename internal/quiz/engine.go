package quiz

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// Engine builds sessions from a question pool and seals their summaries.
// It holds no session state of its own; sessions are passed in and out
// explicitly and live in the caller's Registry.
type Engine struct {
	shuffler *Shuffler
	now      func() time.Time
}

type EngineOption func(*Engine)

// WithRandSource replaces the engine's randomness source, for deterministic
// tests.
func WithRandSource(src rand.Source) EngineOption {
	return func(e *Engine) { e.shuffler = NewShuffler(src) }
}

// WithClock replaces the engine's clock.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) { e.now = now }
}

func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		shuffler: NewShuffler(nil),
		now:      time.Now,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// BuildSession draws count distinct questions from pool (after applying
// filter, if any), shuffles the draw and each question's options, and
// returns a new active session over the resulting snapshots. The pool is
// never mutated. A filtered pool smaller than count fails with
// ErrInsufficientQuestions so the caller can retry with a smaller count.
func (e *Engine) BuildSession(pool []Question, count int, filter func(Question) bool) (*Session, error) {
	if count < 1 {
		return nil, fmt.Errorf("question count must be at least 1, got %d", count)
	}

	filtered := make([]Question, 0, len(pool))
	seen := make(map[string]struct{}, len(pool))
	for _, q := range pool {
		if _, dup := seen[q.ID]; dup {
			continue
		}
		if filter != nil && !filter(q) {
			continue
		}
		seen[q.ID] = struct{}{}
		filtered = append(filtered, q)
	}
	if len(filtered) < count {
		return nil, fmt.Errorf("requested %d questions, pool has %d: %w", count, len(filtered), ErrInsufficientQuestions)
	}

	selected := e.shuffler.Sample(filtered, count)
	selected = e.shuffler.ShuffleQuestions(selected)
	for i, q := range selected {
		// ShuffleOptions deep-copies, detaching the session from the pool.
		selected[i] = e.shuffler.ShuffleOptions(q)
	}
	return newSession(uuid.NewString(), selected, e.now), nil
}

// Summary is the sealed outcome of a completed session.
type Summary struct {
	SessionID string        `json:"session_id"`
	Score     float64       `json:"score"`
	Answered  int           `json:"answered"`
	Total     int           `json:"total"`
	Correct   int           `json:"correct"`
	Duration  time.Duration `json:"duration"`
	Abandoned bool          `json:"abandoned"`
}

// Finalize computes the summary of a completed session. The caller persists
// the summary and the session record; the engine writes nothing itself.
func (e *Engine) Finalize(s *Session) (Summary, error) {
	if !s.Completed() {
		return Summary{}, ErrSessionNotComplete
	}
	answered, total := s.Progress()
	correct := 0
	for _, a := range s.Answers() {
		if a.FullyCorrect {
			correct++
		}
	}
	score, _ := s.Score()
	ended, _ := s.EndedAt()
	return Summary{
		SessionID: s.ID(),
		Score:     score,
		Answered:  answered,
		Total:     total,
		Correct:   correct,
		Duration:  ended.Sub(s.StartedAt()),
		Abandoned: s.Abandoned(),
	}, nil
}
