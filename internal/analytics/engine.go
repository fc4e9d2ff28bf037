package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/quizforge/quizforge/internal/history"
	"github.com/quizforge/quizforge/internal/quiz"
)

// Engine derives read-side metrics from stored session records. It never
// mutates anything.
type Engine struct {
	store history.Store
}

func NewEngine(store history.Store) *Engine {
	return &Engine{store: store}
}

// Overview aggregates all stored sessions. Average score and duration cover
// completed runs only; abandoned runs are counted but excluded from the
// averages so they cannot drag down full-quiz statistics.
type Overview struct {
	TotalSessions     int            `json:"total_sessions"`
	CompletedSessions int            `json:"completed_sessions"`
	AbandonedSessions int            `json:"abandoned_sessions"`
	AverageScore      float64        `json:"average_score"`
	AverageDurationS  float64        `json:"average_duration_seconds"`
	ScoreDistribution map[string]int `json:"score_distribution"`
}

func (e *Engine) Overview(ctx context.Context, since time.Time) (Overview, error) {
	recs, err := e.store.ListSessions(ctx, history.ListOpts{IncludeAbandoned: true, Since: since})
	if err != nil {
		return Overview{}, err
	}
	ov := Overview{
		TotalSessions:     len(recs),
		ScoreDistribution: map[string]int{"0-49": 0, "50-69": 0, "70-89": 0, "90-100": 0},
	}
	var scoreSum, durSum float64
	for _, r := range recs {
		if r.Abandoned {
			ov.AbandonedSessions++
			continue
		}
		ov.CompletedSessions++
		scoreSum += r.Score
		durSum += r.EndedAt.Sub(r.StartedAt).Seconds()
		ov.ScoreDistribution[bucket(r.Score)]++
	}
	if ov.CompletedSessions > 0 {
		ov.AverageScore = scoreSum / float64(ov.CompletedSessions)
		ov.AverageDurationS = durSum / float64(ov.CompletedSessions)
	}
	return ov, nil
}

func bucket(score float64) string {
	switch {
	case score < 50:
		return "0-49"
	case score < 70:
		return "50-69"
	case score < 90:
		return "70-89"
	default:
		return "90-100"
	}
}

// TagStat is the answer accuracy for one tag, over every recorded answer to
// a question carrying that tag.
type TagStat struct {
	Tag      string  `json:"tag"`
	Answered int     `json:"answered"`
	Correct  int     `json:"correct"`
	Accuracy float64 `json:"accuracy"`
}

// TagPerformance computes per-tag accuracy across all sessions, abandoned
// included (an answered question counts regardless of how its run ended).
func (e *Engine) TagPerformance(ctx context.Context) ([]TagStat, error) {
	recs, err := e.store.ListSessions(ctx, history.ListOpts{IncludeAbandoned: true})
	if err != nil {
		return nil, err
	}
	byTag := map[string]*TagStat{}
	for _, r := range recs {
		questions := indexQuestions(r.Questions)
		for _, a := range r.Answers {
			q, ok := questions[a.QuestionID]
			if !ok {
				continue
			}
			for _, tag := range q.Tags {
				st := byTag[tag]
				if st == nil {
					st = &TagStat{Tag: tag}
					byTag[tag] = st
				}
				st.Answered++
				if a.FullyCorrect {
					st.Correct++
				}
			}
		}
	}
	out := make([]TagStat, 0, len(byTag))
	for _, st := range byTag {
		st.Accuracy = float64(st.Correct) / float64(st.Answered)
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tag < out[j].Tag })
	return out, nil
}

// QuestionStat ranks questions by how often they are missed.
type QuestionStat struct {
	QuestionID string  `json:"question_id"`
	Text       string  `json:"text"`
	Answered   int     `json:"answered"`
	Correct    int     `json:"correct"`
	Accuracy   float64 `json:"accuracy"`
}

// HardestQuestions returns up to limit questions with the lowest full-credit
// accuracy, requiring at least minAnswers samples.
func (e *Engine) HardestQuestions(ctx context.Context, limit, minAnswers int) ([]QuestionStat, error) {
	recs, err := e.store.ListSessions(ctx, history.ListOpts{IncludeAbandoned: true})
	if err != nil {
		return nil, err
	}
	byID := map[string]*QuestionStat{}
	for _, r := range recs {
		questions := indexQuestions(r.Questions)
		for _, a := range r.Answers {
			q, ok := questions[a.QuestionID]
			if !ok {
				continue
			}
			st := byID[q.ID]
			if st == nil {
				st = &QuestionStat{QuestionID: q.ID, Text: q.Text}
				byID[q.ID] = st
			}
			st.Answered++
			if a.FullyCorrect {
				st.Correct++
			}
		}
	}
	var out []QuestionStat
	for _, st := range byID {
		if st.Answered < minAnswers {
			continue
		}
		st.Accuracy = float64(st.Correct) / float64(st.Answered)
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Accuracy != out[j].Accuracy {
			return out[i].Accuracy < out[j].Accuracy
		}
		return out[i].QuestionID < out[j].QuestionID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func indexQuestions(qs []quiz.Question) map[string]quiz.Question {
	m := make(map[string]quiz.Question, len(qs))
	for _, q := range qs {
		m[q.ID] = q
	}
	return m
}
