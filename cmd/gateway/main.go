package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/quizforge/quizforge/internal/analytics"
	api "github.com/quizforge/quizforge/internal/api/http"
	auth "github.com/quizforge/quizforge/internal/auth/middleware"
	"github.com/quizforge/quizforge/internal/bank"
	"github.com/quizforge/quizforge/internal/config"
	"github.com/quizforge/quizforge/internal/db"
	"github.com/quizforge/quizforge/internal/history"
	"github.com/quizforge/quizforge/internal/ocr"
	"github.com/quizforge/quizforge/internal/quiz"
)

func main() {
	cfg := config.FromEnv()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}

	bankStore := bank.NewSQLStore(dbh)
	historyStore := history.NewSQLStore(dbh)

	deps := api.QuizDeps{
		Bank:         bankStore,
		History:      historyStore,
		Engine:       quiz.NewEngine(),
		Registry:     quiz.NewRegistry(),
		Log:          logger,
		DefaultCount: cfg.DefaultQuizSize,
	}
	stats := analytics.NewEngine(historyStore)
	scanner := ocr.NewTesseract()

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, api.RequestLogger(logger), middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	authSvc := auth.NewAuthService(cfg.AuthSecret, cfg.AdminUser, cfg.AdminPassHash)
	if cfg.EnableAuth {
		r.Post("/auth/login", auth.LoginHandler(authSvc))
	}

	r.Group(func(pr chi.Router) {
		if cfg.EnableAuth {
			pr.Use(auth.JWTMiddleware(authSvc))
		}

		pr.Route("/questions", func(qr chi.Router) {
			qr.Post("/", api.CreateQuestionHandler(bankStore))
			qr.Get("/", api.ListQuestionsHandler(bankStore))
			qr.Get("/{questionID}", api.GetQuestionHandler(bankStore))
			qr.Put("/{questionID}", api.UpdateQuestionHandler(bankStore))
			qr.Delete("/{questionID}", api.DeleteQuestionHandler(bankStore))
		})

		pr.Route("/tags", func(tr chi.Router) {
			tr.Post("/", api.CreateTagHandler(bankStore))
			tr.Get("/", api.ListTagsHandler(bankStore))
			tr.Get("/{tagID}", api.GetTagHandler(bankStore))
			tr.Put("/{tagID}", api.UpdateTagHandler(bankStore))
			tr.Delete("/{tagID}", api.DeleteTagHandler(bankStore))
			tr.Get("/{tagID}/children", api.ChildTagsHandler(bankStore))
		})

		pr.Route("/quiz", func(sr chi.Router) {
			sr.Post("/sessions", api.StartQuizHandler(deps))
			sr.Get("/sessions/{sessionID}/question", api.CurrentQuestionHandler(deps))
			sr.Post("/sessions/{sessionID}/answers", api.SubmitAnswerHandler(deps))
			sr.Post("/sessions/{sessionID}/abandon", api.AbandonQuizHandler(deps))
			sr.Get("/sessions/{sessionID}/progress", api.QuizProgressHandler(deps))
			sr.Get("/results", api.ListResultsHandler(deps))
			sr.Get("/results/{sessionID}", api.QuizResultHandler(deps))
		})

		pr.Route("/analytics", func(ar chi.Router) {
			ar.Get("/overview", api.AnalyticsOverviewHandler(stats))
			ar.Get("/tags", api.TagPerformanceHandler(stats))
			ar.Get("/hardest", api.HardestQuestionsHandler(stats))
		})

		pr.Route("/bank", func(br chi.Router) {
			br.Post("/import", api.ImportHandler(bankStore, logger))
			br.Get("/export", api.ExportHandler(bankStore))
			br.Post("/scan", api.ScanHandler(scanner, logger))
		})
	})

	logger.Info("gateway listening", zap.String("addr", cfg.HTTPAddr))
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
