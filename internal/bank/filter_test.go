package bank_test

import (
	"testing"

	"github.com/quizforge/quizforge/internal/bank"
	"github.com/quizforge/quizforge/internal/quiz"
)

func TestFilters(t *testing.T) {
	q := quiz.Question{
		ID:   "q1",
		Text: "Which river is the longest?",
		Type: quiz.TypeSingleChoice,
		Tags: []string{"geography", "rivers"},
	}

	cases := []struct {
		name   string
		filter bank.Filter
		want   bool
	}{
		{"tag match", bank.ByTags("rivers"), true},
		{"tag match any", bank.ByTags("history", "geography"), true},
		{"tag miss", bank.ByTags("science"), false},
		{"type match", bank.ByTypes(quiz.TypeSingleChoice, quiz.TypeTrueFalse), true},
		{"type miss", bank.ByTypes(quiz.TypeMultiSelect), false},
		{"text match case-insensitive", bank.TextSearch("RIVER"), true},
		{"text miss", bank.TextSearch("ocean"), false},
		{"and all pass", bank.And(bank.ByTags("rivers"), bank.TextSearch("longest")), true},
		{"and one fails", bank.And(bank.ByTags("rivers"), bank.TextSearch("ocean")), false},
		{"empty and keeps everything", bank.And(), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.filter(q); got != tc.want {
				t.Fatalf("filter = %v, want %v", got, tc.want)
			}
		})
	}
}
