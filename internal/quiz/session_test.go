package quiz_test

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/quizforge/quizforge/internal/quiz"
)

// buildSession drains the pool into a session through the engine, with a
// fixed seed and a ticking fake clock.
func buildSession(t *testing.T, pool []quiz.Question, count int) (*quiz.Engine, *quiz.Session) {
	t.Helper()
	tick := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	eng := quiz.NewEngine(
		quiz.WithRandSource(rand.NewSource(11)),
		quiz.WithClock(func() time.Time {
			tick = tick.Add(30 * time.Second)
			return tick
		}),
	)
	s, err := eng.BuildSession(pool, count, nil)
	if err != nil {
		t.Fatalf("build session: %v", err)
	}
	return eng, s
}

// answerCurrent submits the correct answer for the current question.
func answerCurrent(t *testing.T, s *quiz.Session) quiz.Evaluation {
	t.Helper()
	q, err := s.CurrentQuestion()
	if err != nil {
		t.Fatalf("current question: %v", err)
	}
	ev, err := s.SubmitAnswer(quiz.NewSelection(q.CorrectOptionIDs()...))
	if err != nil {
		t.Fatalf("submit answer: %v", err)
	}
	return ev
}

func TestSessionRunsToCompletion(t *testing.T) {
	pool := questionPool(t, 5)
	_, s := buildSession(t, pool, 5)

	if s.Completed() {
		t.Fatalf("fresh session must be active")
	}
	for i := 0; i < 5; i++ {
		answered, total := s.Progress()
		if answered != i || total != 5 {
			t.Fatalf("progress %d/%d, want %d/5", answered, total, i)
		}
		ev := answerCurrent(t, s)
		if !ev.FullyCorrect {
			t.Fatalf("correct answer scored incorrect at %d", i)
		}
	}
	if !s.Completed() {
		t.Fatalf("session should be completed after %d answers", 5)
	}
	score, ok := s.Score()
	if !ok || score != 100 {
		t.Fatalf("score=%v ok=%v, want 100", score, ok)
	}
	if _, ok := s.EndedAt(); !ok {
		t.Fatalf("ended_at not set on completion")
	}
}

func TestSessionReadOnlyOpsAreIdempotent(t *testing.T) {
	_, s := buildSession(t, questionPool(t, 3), 3)

	q1, err := s.CurrentQuestion()
	if err != nil {
		t.Fatalf("current question: %v", err)
	}
	for i := 0; i < 5; i++ {
		q2, err := s.CurrentQuestion()
		if err != nil || q2.ID != q1.ID {
			t.Fatalf("current question changed without submit: %v %v", q2.ID, err)
		}
		a, tot := s.Progress()
		if a != 0 || tot != 3 {
			t.Fatalf("progress drifted to %d/%d", a, tot)
		}
	}
}

func TestSessionScoreAggregation(t *testing.T) {
	single := singleChoiceQ(t)
	multi := multiSelectQ(t)
	eng := quiz.NewEngine(quiz.WithRandSource(rand.NewSource(13)))
	s, err := eng.BuildSession([]quiz.Question{single, multi}, 2, nil)
	if err != nil {
		t.Fatalf("build session: %v", err)
	}

	for i := 0; i < 2; i++ {
		q, err := s.CurrentQuestion()
		if err != nil {
			t.Fatalf("current question: %v", err)
		}
		var sel quiz.Selection
		if q.Type == quiz.TypeSingleChoice {
			sel = quiz.NewSelection(q.CorrectOptionIDs()...) // 1.0
		} else {
			sel = quiz.NewSelection("A") // 0.75: one correct missed
		}
		if _, err := s.SubmitAnswer(sel); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}
	score, ok := s.Score()
	if !ok {
		t.Fatalf("expected completed session")
	}
	if !almostEqual(score, 87.5) {
		t.Fatalf("score=%v, want 87.5", score)
	}
}

func TestSessionRejectsOpsAfterCompletion(t *testing.T) {
	_, s := buildSession(t, questionPool(t, 2), 2)
	answerCurrent(t, s)
	answerCurrent(t, s)

	if _, err := s.CurrentQuestion(); !errors.Is(err, quiz.ErrSessionCompleted) {
		t.Fatalf("current question after completion: %v", err)
	}
	if _, err := s.SubmitAnswer(quiz.NewSelection("x")); !errors.Is(err, quiz.ErrSessionCompleted) {
		t.Fatalf("submit after completion: %v", err)
	}
	if err := s.Abandon(); !errors.Is(err, quiz.ErrSessionCompleted) {
		t.Fatalf("abandon after completion: %v", err)
	}
}

func TestSessionInvalidSubmissionLeavesStateUntouched(t *testing.T) {
	_, s := buildSession(t, questionPool(t, 3), 3)
	before, _ := s.Progress()

	_, err := s.SubmitAnswer(quiz.NewSelection("not-an-option"))
	if !errors.Is(err, quiz.ErrInvalidSubmission) {
		t.Fatalf("expected ErrInvalidSubmission, got %v", err)
	}
	after, _ := s.Progress()
	if before != after {
		t.Fatalf("invalid submission advanced the session: %d -> %d", before, after)
	}
	// The same question can still be answered.
	answerCurrent(t, s)
}

func TestSessionAbandonScoresAnsweredOnly(t *testing.T) {
	eng, s := buildSession(t, questionPool(t, 5), 5)

	// Answer 2 of 5 correctly, then abandon.
	answerCurrent(t, s)
	answerCurrent(t, s)
	if err := s.Abandon(); err != nil {
		t.Fatalf("abandon: %v", err)
	}
	if !s.Completed() || !s.Abandoned() {
		t.Fatalf("abandoned session should be completed+abandoned")
	}

	sum, err := eng.Finalize(s)
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if sum.Answered != 2 || sum.Total != 5 {
		t.Fatalf("summary counts %d/%d, want 2/5", sum.Answered, sum.Total)
	}
	// Scored over the two answered questions, not zero-filled to five.
	if !almostEqual(sum.Score, 100) {
		t.Fatalf("score=%v, want 100 over answered questions", sum.Score)
	}
	if !sum.Abandoned {
		t.Fatalf("summary must flag the abandoned run")
	}
}

func TestSessionAbandonWithNoAnswers(t *testing.T) {
	_, s := buildSession(t, questionPool(t, 3), 3)
	if err := s.Abandon(); err != nil {
		t.Fatalf("abandon: %v", err)
	}
	score, ok := s.Score()
	if !ok || score != 0 {
		t.Fatalf("score=%v ok=%v, want 0", score, ok)
	}
}

func TestSessionRecordSnapshot(t *testing.T) {
	_, s := buildSession(t, questionPool(t, 2), 2)
	answerCurrent(t, s)
	answerCurrent(t, s)

	rec := s.Record()
	if rec.ID != s.ID() || rec.Total != 2 || rec.Answered != 2 {
		t.Fatalf("bad record: %+v", rec)
	}
	if len(rec.Questions) != 2 || len(rec.Answers) != 2 {
		t.Fatalf("record missing snapshots: %+v", rec)
	}
	if rec.EndedAt.Before(rec.StartedAt) {
		t.Fatalf("ended_at before started_at")
	}
}
