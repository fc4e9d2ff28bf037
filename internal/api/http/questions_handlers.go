package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/quizforge/quizforge/internal/bank"
	"github.com/quizforge/quizforge/internal/quiz"
)

type questionRequest struct {
	Text    string        `json:"question_text"`
	Type    string        `json:"question_type"`
	Options []quiz.Option `json:"options"`
	Tags    []string      `json:"tags"`
}

func CreateQuestionHandler(store bank.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req questionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		q, err := quiz.NewQuestion(req.Text, quiz.QuestionType(req.Type), req.Options, req.Tags)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := store.PutQuestion(r.Context(), q); err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, q)
	}
}

func GetQuestionHandler(store bank.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := store.GetQuestion(r.Context(), chi.URLParam(r, "questionID"))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, q)
	}
}

// GET /questions?q=...&type=...&tag=...&limit=50&offset=0
func ListQuestionsHandler(store bank.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts := bank.ListOpts{
			Q:      strings.TrimSpace(r.URL.Query().Get("q")),
			Type:   quiz.QuestionType(strings.TrimSpace(r.URL.Query().Get("type"))),
			Tag:    strings.TrimSpace(r.URL.Query().Get("tag")),
			Limit:  parseIntDefault(r.URL.Query().Get("limit"), 50),
			Offset: parseIntDefault(r.URL.Query().Get("offset"), 0),
		}
		list, err := store.ListQuestions(r.Context(), opts)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"questions": list,
			"limit":     opts.Limit,
			"offset":    opts.Offset,
		})
	}
}

func UpdateQuestionHandler(store bank.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "questionID")
		existing, err := store.GetQuestion(r.Context(), id)
		if err != nil {
			writeErr(w, err)
			return
		}
		var req questionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if req.Text != "" {
			existing.Text = req.Text
		}
		if req.Type != "" {
			existing.Type = quiz.QuestionType(req.Type)
		}
		if req.Options != nil {
			existing.Options = req.Options
		}
		if req.Tags != nil {
			existing.Tags = req.Tags
		}
		if err := existing.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := store.PutQuestion(r.Context(), existing); err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, existing)
	}
}

func DeleteQuestionHandler(store bank.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.DeleteQuestion(r.Context(), chi.URLParam(r, "questionID")); err != nil {
			writeErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
