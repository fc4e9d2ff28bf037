package http

import (
	"net/http"
	"time"

	"github.com/quizforge/quizforge/internal/analytics"
)

// GET /analytics/overview?since=2025-01-01
func AnalyticsOverviewHandler(eng *analytics.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var since time.Time
		if raw := r.URL.Query().Get("since"); raw != "" {
			t, err := time.Parse("2006-01-02", raw)
			if err != nil {
				http.Error(w, "since must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			since = t
		}
		ov, err := eng.Overview(r.Context(), since)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ov)
	}
}

// GET /analytics/tags
func TagPerformanceHandler(eng *analytics.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := eng.TagPerformance(r.Context())
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"tags": stats})
	}
}

// GET /analytics/hardest?limit=10&min_answers=3
func HardestQuestionsHandler(eng *analytics.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := parseIntDefault(r.URL.Query().Get("limit"), 10)
		minAnswers := parseIntDefault(r.URL.Query().Get("min_answers"), 1)
		stats, err := eng.HardestQuestions(r.Context(), limit, minAnswers)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"questions": stats})
	}
}
