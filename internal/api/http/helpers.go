package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/quizforge/quizforge/internal/bank"
	"github.com/quizforge/quizforge/internal/history"
	"github.com/quizforge/quizforge/internal/quiz"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeErr translates core errors into status codes; the core itself knows
// nothing about HTTP.
func writeErr(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), errStatus(err))
}

func errStatus(err error) int {
	switch {
	case errors.Is(err, quiz.ErrSessionNotFound),
		errors.Is(err, bank.ErrQuestionNotFound),
		errors.Is(err, bank.ErrTagNotFound),
		errors.Is(err, history.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, quiz.ErrInsufficientQuestions):
		return http.StatusUnprocessableEntity
	case errors.Is(err, quiz.ErrSessionCompleted),
		errors.Is(err, quiz.ErrDuplicateAnswer),
		errors.Is(err, quiz.ErrSessionNotComplete),
		errors.Is(err, bank.ErrTagNameTaken),
		errors.Is(err, bank.ErrTagCycle):
		return http.StatusConflict
	case errors.Is(err, quiz.ErrInvalidSubmission):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil && v >= 0 {
		return v
	}
	return def
}

// optionView and questionView are what quiz takers see: correctness flags
// stay server-side until the answer is submitted.
type optionView struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type questionView struct {
	ID      string       `json:"id"`
	Text    string       `json:"text"`
	Type    string       `json:"type"`
	Options []optionView `json:"options"`
}

func viewOf(q quiz.Question) questionView {
	v := questionView{ID: q.ID, Text: q.Text, Type: string(q.Type)}
	for _, o := range q.Options {
		v.Options = append(v.Options, optionView{ID: o.ID, Text: o.Text})
	}
	return v
}
