package bank

import (
	"strings"

	"github.com/quizforge/quizforge/internal/quiz"
)

// Filter is a predicate over questions, composed by the hosting layer and
// handed opaquely to Engine.BuildSession.
type Filter func(quiz.Question) bool

// ByTags keeps questions carrying at least one of the given tag names.
func ByTags(names ...string) Filter {
	want := make(map[string]struct{}, len(names))
	for _, n := range names {
		want[n] = struct{}{}
	}
	return func(q quiz.Question) bool {
		for _, t := range q.Tags {
			if _, ok := want[t]; ok {
				return true
			}
		}
		return false
	}
}

// ByTypes keeps questions of any of the given types.
func ByTypes(types ...quiz.QuestionType) Filter {
	return func(q quiz.Question) bool {
		for _, t := range types {
			if q.Type == t {
				return true
			}
		}
		return false
	}
}

// TextSearch keeps questions whose text contains the term, case-insensitive.
func TextSearch(term string) Filter {
	term = strings.ToLower(term)
	return func(q quiz.Question) bool {
		return strings.Contains(strings.ToLower(q.Text), term)
	}
}

// And combines filters conjunctively. With no arguments it keeps everything.
func And(filters ...Filter) Filter {
	return func(q quiz.Question) bool {
		for _, f := range filters {
			if !f(q) {
				return false
			}
		}
		return true
	}
}
