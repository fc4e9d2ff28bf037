package quiz

import (
	"fmt"
	"sort"
)

// Selection is the normalized form of a submitted answer: a set of option
// ids. Single-choice submissions are just sets of size one, which keeps the
// scoring logic free of per-type shape switching.
type Selection map[string]struct{}

func NewSelection(ids ...string) Selection {
	s := make(Selection, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// IDs returns the selected option ids in sorted order.
func (s Selection) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Evaluation is the outcome of scoring one submission.
type Evaluation struct {
	FullyCorrect bool    `json:"fully_correct"`
	PartialScore float64 `json:"partial_score"` // in [0,1]
}

// Evaluate scores selected against q's correct-option set. Pure function,
// no side effects.
//
// single_choice / true_false: fully correct iff exactly one option is
// selected and it is the correct one; zero or multiple selections score 0.
//
// multi_select: partial credit is the fraction of options the user classified
// correctly, rewarding both correctly-selected-correct options and
// correctly-left-unselected-incorrect ones.
//
// A selection referencing an option id the question does not have is a
// caller bug and returns ErrInvalidSubmission rather than a zero score.
func Evaluate(q Question, selected Selection) (Evaluation, error) {
	for id := range selected {
		if _, ok := q.optionByID(id); !ok {
			return Evaluation{}, fmt.Errorf("question %s, option %q: %w", q.ID, id, ErrInvalidSubmission)
		}
	}

	switch q.Type {
	case TypeMultiSelect:
		agree := 0
		allCorrect := true
		for _, o := range q.Options {
			_, picked := selected[o.ID]
			if picked == o.IsCorrect {
				agree++
			} else {
				allCorrect = false
			}
		}
		return Evaluation{
			FullyCorrect: allCorrect,
			PartialScore: float64(agree) / float64(len(q.Options)),
		}, nil
	default:
		if len(selected) != 1 {
			return Evaluation{}, nil
		}
		for id := range selected {
			if o, _ := q.optionByID(id); o.IsCorrect {
				return Evaluation{FullyCorrect: true, PartialScore: 1}, nil
			}
		}
		return Evaluation{}, nil
	}
}
