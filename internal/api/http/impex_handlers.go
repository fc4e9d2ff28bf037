package http

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/quizforge/quizforge/internal/bank"
	"github.com/quizforge/quizforge/internal/impex"
	"github.com/quizforge/quizforge/internal/ocr"
	"github.com/quizforge/quizforge/internal/quiz"
)

// POST /bank/import?format=json|csv
func ImportHandler(store bank.Store, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		format := r.URL.Query().Get("format")
		if format == "" {
			format = "json"
		}

		var (
			questions []quiz.Question
			rep       impex.Report
		)
		switch format {
		case "json":
			qs, tags, report, err := impex.ImportJSON(r.Body)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			rep = report
			for _, t := range tags {
				if _, err := store.CreateTag(r.Context(), t); err != nil {
					if errors.Is(err, bank.ErrTagNameTaken) {
						continue
					}
					writeErr(w, err)
					return
				}
			}
			for _, q := range qs {
				questions = append(questions, q)
			}
		case "csv":
			qs, report, err := impex.ImportCSV(r.Body)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			rep = report
			for _, q := range qs {
				questions = append(questions, q)
			}
		default:
			http.Error(w, "format must be json or csv", http.StatusBadRequest)
			return
		}

		for _, q := range questions {
			if err := store.PutQuestion(r.Context(), q); err != nil {
				writeErr(w, err)
				return
			}
		}
		log.Info("import finished", zap.String("format", format),
			zap.Int("imported", rep.Imported), zap.Int("skipped", rep.Skipped))
		writeJSON(w, http.StatusOK, rep)
	}
}

// GET /bank/export?format=json|csv
func ExportHandler(store bank.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		questions, err := store.ListQuestions(r.Context(), bank.ListOpts{})
		if err != nil {
			writeErr(w, err)
			return
		}
		switch format := r.URL.Query().Get("format"); format {
		case "csv":
			w.Header().Set("Content-Type", "text/csv")
			w.Header().Set("Content-Disposition", `attachment; filename="questions.csv"`)
			if err := impex.ExportCSV(w, questions); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
		case "", "json":
			tags, err := store.ListTags(r.Context(), "")
			if err != nil {
				writeErr(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Content-Disposition", `attachment; filename="questions.json"`)
			if err := impex.ExportJSON(w, questions, tags); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
		default:
			http.Error(w, "format must be json or csv", http.StatusBadRequest)
		}
	}
}

// POST /bank/scan: multipart image upload, returns question drafts for the
// author to complete. Nothing is written to the bank.
func ScanHandler(extractor *ocr.Tesseract, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(16 << 20); err != nil {
			http.Error(w, "multipart form required", http.StatusBadRequest)
			return
		}
		file, _, err := r.FormFile("image")
		if err != nil {
			http.Error(w, "image field required", http.StatusBadRequest)
			return
		}
		defer file.Close()

		text, err := extractor.Extract(r.Context(), file)
		if err != nil {
			log.Warn("ocr failed", zap.Error(err))
			http.Error(w, "text extraction failed", http.StatusUnprocessableEntity)
			return
		}
		drafts := ocr.ParseDrafts(text)
		writeJSON(w, http.StatusOK, map[string]any{"drafts": drafts, "raw_text": text})
	}
}
