package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/quizforge/quizforge/internal/bank"
	"github.com/quizforge/quizforge/internal/config"
	"github.com/quizforge/quizforge/internal/db"
	"github.com/quizforge/quizforge/internal/quiz"
)

// seed loads a small starter bank so a fresh install has something to quiz on.
func main() {
	var (
		driver = flag.String("driver", "", "db driver (defaults to config)")
		dsn    = flag.String("dsn", "", "db dsn (defaults to config)")
	)
	flag.Parse()

	cfg := config.FromEnv()
	if *driver == "" {
		*driver = cfg.DBDriver
	}
	if *dsn == "" {
		*dsn = cfg.DBDSN
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(*driver), *dsn)
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	store := bank.NewSQLStore(dbh)

	for _, spec := range []struct{ name, desc, color string }{
		{"geography", "Capitals, rivers, borders", "#2E86AB"},
		{"science", "Physics, chemistry, biology", "#A23B72"},
		{"go", "The Go programming language", "#00ADD8"},
	} {
		t, err := bank.NewTag(spec.name, spec.desc, spec.color, "")
		if err != nil {
			log.Fatalf("tag %s: %v", spec.name, err)
		}
		if _, err := store.CreateTag(ctx, t); err != nil {
			log.Printf("tag %s skipped: %v", spec.name, err)
		}
	}

	questions := []struct {
		text    string
		typ     quiz.QuestionType
		options []quiz.Option
		tags    []string
	}{
		{
			"What is the capital of France?", quiz.TypeSingleChoice,
			[]quiz.Option{{Text: "Paris", IsCorrect: true}, {Text: "Lyon"}, {Text: "Marseille"}, {Text: "Nice"}},
			[]string{"geography"},
		},
		{
			"Which river is the longest in the world?", quiz.TypeSingleChoice,
			[]quiz.Option{{Text: "Amazon"}, {Text: "Nile", IsCorrect: true}, {Text: "Yangtze"}, {Text: "Mississippi"}},
			[]string{"geography"},
		},
		{
			"Water boils at 100 degrees Celsius at sea level.", quiz.TypeTrueFalse,
			[]quiz.Option{{Text: "True", IsCorrect: true}, {Text: "False"}},
			[]string{"science"},
		},
		{
			"Which of these are noble gases?", quiz.TypeMultiSelect,
			[]quiz.Option{{Text: "Helium", IsCorrect: true}, {Text: "Oxygen"}, {Text: "Neon", IsCorrect: true}, {Text: "Nitrogen"}},
			[]string{"science"},
		},
		{
			"Which of these are built into Go without importing a package?", quiz.TypeMultiSelect,
			[]quiz.Option{{Text: "append", IsCorrect: true}, {Text: "make", IsCorrect: true}, {Text: "Println"}, {Text: "Sprintf"}},
			[]string{"go"},
		},
		{
			"A nil map can be written to without panicking.", quiz.TypeTrueFalse,
			[]quiz.Option{{Text: "True"}, {Text: "False", IsCorrect: true}},
			[]string{"go"},
		},
	}
	for _, spec := range questions {
		q, err := quiz.NewQuestion(spec.text, spec.typ, spec.options, spec.tags)
		if err != nil {
			log.Fatalf("question %q: %v", spec.text, err)
		}
		if err := store.PutQuestion(ctx, q); err != nil {
			log.Fatalf("put %q: %v", spec.text, err)
		}
	}
	log.Printf("seeded %d questions", len(questions))
}
