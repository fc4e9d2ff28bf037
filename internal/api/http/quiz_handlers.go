package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/quizforge/quizforge/internal/bank"
	"github.com/quizforge/quizforge/internal/history"
	"github.com/quizforge/quizforge/internal/quiz"
)

// QuizDeps bundles everything the session endpoints need. The registry holds
// live sessions; completed runs move to history and leave the registry.
type QuizDeps struct {
	Bank     bank.Store
	History  history.Store
	Engine   *quiz.Engine
	Registry *quiz.Registry
	Log      *zap.Logger
	// DefaultCount is the question count used when a start request omits one.
	DefaultCount int
}

type startRequest struct {
	Count int      `json:"count"`
	Tags  []string `json:"tags"`
	Types []string `json:"types"`
	Q     string   `json:"q"`
}

// POST /quiz/sessions
func StartQuizHandler(d QuizDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req startRequest
		if r.Body != nil {
			// An empty body starts a default-sized session over the whole bank.
			_ = json.NewDecoder(r.Body).Decode(&req)
		}
		if req.Count == 0 {
			req.Count = d.DefaultCount
		}

		pool, err := d.Bank.ListQuestions(r.Context(), bank.ListOpts{})
		if err != nil {
			writeErr(w, err)
			return
		}

		var filters []bank.Filter
		if len(req.Tags) > 0 {
			filters = append(filters, bank.ByTags(req.Tags...))
		}
		if len(req.Types) > 0 {
			types := make([]quiz.QuestionType, len(req.Types))
			for i, t := range req.Types {
				types[i] = quiz.QuestionType(t)
			}
			filters = append(filters, bank.ByTypes(types...))
		}
		if req.Q != "" {
			filters = append(filters, bank.TextSearch(req.Q))
		}

		s, err := d.Engine.BuildSession(pool, req.Count, bank.And(filters...))
		if err != nil {
			writeErr(w, err)
			return
		}
		d.Registry.Put(s)

		drawn := s.Questions()
		ids := make([]string, len(drawn))
		for i, q := range drawn {
			ids[i] = q.ID
		}
		if err := d.Bank.IncrementUsage(r.Context(), ids...); err != nil {
			d.Log.Warn("usage counter update failed", zap.Error(err))
		}

		first, _ := s.CurrentQuestion()
		answered, total := s.Progress()
		writeJSON(w, http.StatusCreated, map[string]any{
			"session_id": s.ID(),
			"total":      total,
			"answered":   answered,
			"question":   viewOf(first),
		})
	}
}

// GET /quiz/sessions/{sessionID}/question
func CurrentQuestionHandler(d QuizDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		var view questionView
		var answered, total int
		err := d.Registry.Do(id, func(s *quiz.Session) error {
			q, err := s.CurrentQuestion()
			if err != nil {
				return err
			}
			view = viewOf(q)
			answered, total = s.Progress()
			return nil
		})
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"question": view,
			"answered": answered,
			"total":    total,
		})
	}
}

type answerRequest struct {
	SelectedOptionIDs []string `json:"selected_option_ids"`
}

type answerResponse struct {
	IsCorrect        bool     `json:"is_correct"`
	PartialScore     float64  `json:"partial_score"`
	CorrectOptionIDs []string `json:"correct_option_ids"`
	Completed        bool     `json:"completed"`
	Answered         int      `json:"answered"`
	Total            int      `json:"total"`
	Score            *float64 `json:"score,omitempty"`
}

// POST /quiz/sessions/{sessionID}/answers
func SubmitAnswerHandler(d QuizDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req answerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		id := chi.URLParam(r, "sessionID")

		var resp answerResponse
		err := d.Registry.Do(id, func(s *quiz.Session) error {
			q, err := s.CurrentQuestion()
			if err != nil {
				return err
			}
			eval, err := s.SubmitAnswer(quiz.NewSelection(req.SelectedOptionIDs...))
			if err != nil {
				return err
			}
			resp.IsCorrect = eval.FullyCorrect
			resp.PartialScore = eval.PartialScore
			resp.CorrectOptionIDs = q.CorrectOptionIDs()
			resp.Completed = s.Completed()
			resp.Answered, resp.Total = s.Progress()
			if s.Completed() {
				return d.sealSession(r.Context(), s, &resp)
			}
			return nil
		})
		if err != nil {
			writeErr(w, err)
			return
		}
		if resp.Completed {
			d.Registry.Remove(id)
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func (d QuizDeps) sealSession(ctx context.Context, s *quiz.Session, resp *answerResponse) error {
	sum, err := d.Engine.Finalize(s)
	if err != nil {
		return err
	}
	resp.Score = &sum.Score
	if err := d.History.SaveSession(ctx, s.Record()); err != nil {
		// The taker already has the result; losing the history row is
		// recoverable, failing the submission is not.
		d.Log.Error("session persist failed", zap.String("session_id", s.ID()), zap.Error(err))
	}
	return nil
}

// POST /quiz/sessions/{sessionID}/abandon
func AbandonQuizHandler(d QuizDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		var sum quiz.Summary
		err := d.Registry.Do(id, func(s *quiz.Session) error {
			if err := s.Abandon(); err != nil {
				return err
			}
			var err error
			sum, err = d.Engine.Finalize(s)
			if err != nil {
				return err
			}
			if err := d.History.SaveSession(r.Context(), s.Record()); err != nil {
				d.Log.Error("session persist failed", zap.String("session_id", s.ID()), zap.Error(err))
			}
			return nil
		})
		if err != nil {
			writeErr(w, err)
			return
		}
		d.Registry.Remove(id)
		writeJSON(w, http.StatusOK, sum)
	}
}

// GET /quiz/sessions/{sessionID}/progress
func QuizProgressHandler(d QuizDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		var answered, total int
		err := d.Registry.Do(id, func(s *quiz.Session) error {
			answered, total = s.Progress()
			return nil
		})
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"answered": answered, "total": total})
	}
}

// GET /quiz/results/{sessionID}
func QuizResultHandler(d QuizDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := d.History.GetSession(r.Context(), chi.URLParam(r, "sessionID"))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

// GET /quiz/results
func ListResultsHandler(d QuizDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts := history.ListOpts{
			IncludeAbandoned: r.URL.Query().Get("include_abandoned") == "true",
			Limit:            parseIntDefault(r.URL.Query().Get("limit"), 50),
			Offset:           parseIntDefault(r.URL.Query().Get("offset"), 0),
		}
		recs, err := d.History.ListSessions(r.Context(), opts)
		if err != nil {
			writeErr(w, err)
			return
		}
		type item struct {
			ID        string  `json:"id"`
			Score     float64 `json:"score"`
			Answered  int     `json:"answered"`
			Total     int     `json:"total"`
			StartedAt int64   `json:"started_at"`
			EndedAt   int64   `json:"ended_at"`
			Abandoned bool    `json:"abandoned"`
		}
		items := make([]item, 0, len(recs))
		for _, rec := range recs {
			items = append(items, item{
				ID:        rec.ID,
				Score:     rec.Score,
				Answered:  rec.Answered,
				Total:     rec.Total,
				StartedAt: rec.StartedAt.Unix(),
				EndedAt:   rec.EndedAt.Unix(),
				Abandoned: rec.Abandoned,
			})
		}
		writeJSON(w, http.StatusOK, map[string]any{"results": items})
	}
}
