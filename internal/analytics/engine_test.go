package analytics_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/quizforge/quizforge/internal/analytics"
	"github.com/quizforge/quizforge/internal/history"
	"github.com/quizforge/quizforge/internal/quiz"
)

type fakeStore struct {
	recs []quiz.SessionRecord
}

func (f *fakeStore) SaveSession(_ context.Context, rec quiz.SessionRecord) error {
	f.recs = append(f.recs, rec)
	return nil
}

func (f *fakeStore) GetSession(_ context.Context, id string) (quiz.SessionRecord, error) {
	for _, r := range f.recs {
		if r.ID == id {
			return r, nil
		}
	}
	return quiz.SessionRecord{}, history.ErrRecordNotFound
}

func (f *fakeStore) ListSessions(_ context.Context, opts history.ListOpts) ([]quiz.SessionRecord, error) {
	var out []quiz.SessionRecord
	for _, r := range f.recs {
		if r.Abandoned && !opts.IncludeAbandoned {
			continue
		}
		if !opts.Since.IsZero() && r.StartedAt.Before(opts.Since) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func question(id, text string, tags ...string) quiz.Question {
	return quiz.Question{
		ID:   id,
		Text: text,
		Type: quiz.TypeSingleChoice,
		Options: []quiz.Option{
			{ID: id + "-a", Text: "right", IsCorrect: true},
			{ID: id + "-b", Text: "wrong"},
		},
		Tags: tags,
	}
}

func answer(questionID string, correct bool) quiz.Answer {
	score := 0.0
	if correct {
		score = 1.0
	}
	return quiz.Answer{QuestionID: questionID, FullyCorrect: correct, PartialScore: score}
}

func seededStore() *fakeStore {
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	qGeo := question("q-geo", "Capital of France?", "geography")
	qSci := question("q-sci", "Boiling point of water?", "science")
	return &fakeStore{recs: []quiz.SessionRecord{
		{
			ID:        "s1",
			Questions: []quiz.Question{qGeo, qSci},
			Answers:   []quiz.Answer{answer("q-geo", true), answer("q-sci", true)},
			Score:     100, Answered: 2, Total: 2,
			StartedAt: base, EndedAt: base.Add(60 * time.Second),
		},
		{
			ID:        "s2",
			Questions: []quiz.Question{qGeo, qSci},
			Answers:   []quiz.Answer{answer("q-geo", true), answer("q-sci", false)},
			Score:     50, Answered: 2, Total: 2,
			StartedAt: base.Add(time.Hour), EndedAt: base.Add(time.Hour + 120*time.Second),
		},
		{
			ID:        "s3",
			Questions: []quiz.Question{qGeo, qSci},
			Answers:   []quiz.Answer{answer("q-sci", false)},
			Score:     0, Answered: 1, Total: 2,
			StartedAt: base.Add(2 * time.Hour), EndedAt: base.Add(2*time.Hour + 10*time.Second),
			Abandoned: true,
		},
	}}
}

func TestOverview(t *testing.T) {
	eng := analytics.NewEngine(seededStore())

	ov, err := eng.Overview(context.Background(), time.Time{})
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if ov.TotalSessions != 3 || ov.CompletedSessions != 2 || ov.AbandonedSessions != 1 {
		t.Fatalf("counts = %+v", ov)
	}
	if math.Abs(ov.AverageScore-75) > 1e-9 {
		t.Fatalf("average score = %v, want 75 (abandoned run excluded)", ov.AverageScore)
	}
	if math.Abs(ov.AverageDurationS-90) > 1e-9 {
		t.Fatalf("average duration = %v, want 90", ov.AverageDurationS)
	}
	if ov.ScoreDistribution["90-100"] != 1 || ov.ScoreDistribution["50-69"] != 1 {
		t.Fatalf("distribution = %+v", ov.ScoreDistribution)
	}
}

func TestOverviewSince(t *testing.T) {
	eng := analytics.NewEngine(seededStore())

	since := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	ov, err := eng.Overview(context.Background(), since)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if ov.TotalSessions != 2 {
		t.Fatalf("total since = %d, want 2", ov.TotalSessions)
	}
}

func TestTagPerformance(t *testing.T) {
	eng := analytics.NewEngine(seededStore())

	stats, err := eng.TagPerformance(context.Background())
	if err != nil {
		t.Fatalf("tag performance: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("stats = %+v", stats)
	}
	// Sorted by tag name: geography then science.
	geo, sci := stats[0], stats[1]
	if geo.Tag != "geography" || geo.Answered != 2 || geo.Correct != 2 {
		t.Fatalf("geography = %+v", geo)
	}
	// science: answered in all three runs, correct only once.
	if sci.Tag != "science" || sci.Answered != 3 || sci.Correct != 1 {
		t.Fatalf("science = %+v", sci)
	}
	if math.Abs(sci.Accuracy-1.0/3.0) > 1e-9 {
		t.Fatalf("science accuracy = %v", sci.Accuracy)
	}
}

func TestHardestQuestions(t *testing.T) {
	eng := analytics.NewEngine(seededStore())

	stats, err := eng.HardestQuestions(context.Background(), 10, 1)
	if err != nil {
		t.Fatalf("hardest: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("stats = %+v", stats)
	}
	if stats[0].QuestionID != "q-sci" {
		t.Fatalf("hardest first = %s, want q-sci", stats[0].QuestionID)
	}

	// minAnswers above any sample count filters everything out.
	none, err := eng.HardestQuestions(context.Background(), 10, 5)
	if err != nil {
		t.Fatalf("hardest filtered: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("filtered = %+v, want empty", none)
	}

	one, err := eng.HardestQuestions(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("hardest limited: %v", err)
	}
	if len(one) != 1 {
		t.Fatalf("limit 1 = %d", len(one))
	}
}
