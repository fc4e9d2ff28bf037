package quiz

import (
	"fmt"

	"github.com/google/uuid"
)

type QuestionType string

const (
	TypeSingleChoice QuestionType = "single_choice"
	TypeTrueFalse    QuestionType = "true_false"
	TypeMultiSelect  QuestionType = "multi_select"
)

func (t QuestionType) Valid() bool {
	switch t {
	case TypeSingleChoice, TypeTrueFalse, TypeMultiSelect:
		return true
	}
	return false
}

type Option struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// Question is a quiz item. Instances handed to a Session are snapshots:
// the engine copies them at build time so later bank edits never reach a
// running or finished session.
type Question struct {
	ID      string       `json:"id"`
	Text    string       `json:"text"`
	Type    QuestionType `json:"type"`
	Options []Option     `json:"options"`
	Tags    []string     `json:"tags,omitempty"`
}

// NewQuestion validates and builds a Question, generating an ID when none is
// given. Options without IDs get one assigned.
func NewQuestion(text string, typ QuestionType, options []Option, tags []string) (Question, error) {
	q := Question{
		ID:      uuid.NewString(),
		Text:    text,
		Type:    typ,
		Options: make([]Option, len(options)),
		Tags:    append([]string(nil), tags...),
	}
	copy(q.Options, options)
	for i := range q.Options {
		if q.Options[i].ID == "" {
			q.Options[i].ID = uuid.NewString()
		}
	}
	if err := q.Validate(); err != nil {
		return Question{}, err
	}
	return q, nil
}

// Validate checks the structural invariants of a question.
func (q Question) Validate() error {
	if q.Text == "" {
		return fmt.Errorf("question %s: empty text", q.ID)
	}
	if !q.Type.Valid() {
		return fmt.Errorf("question %s: unknown type %q", q.ID, q.Type)
	}
	if len(q.Options) < 2 {
		return fmt.Errorf("question %s: need at least 2 options, got %d", q.ID, len(q.Options))
	}
	seen := make(map[string]struct{}, len(q.Options))
	correct := 0
	for _, o := range q.Options {
		if o.ID == "" {
			return fmt.Errorf("question %s: option with empty id", q.ID)
		}
		if _, dup := seen[o.ID]; dup {
			return fmt.Errorf("question %s: duplicate option id %q", q.ID, o.ID)
		}
		seen[o.ID] = struct{}{}
		if o.IsCorrect {
			correct++
		}
	}
	switch q.Type {
	case TypeSingleChoice, TypeTrueFalse:
		if correct != 1 {
			return fmt.Errorf("question %s: %s must have exactly one correct option, got %d", q.ID, q.Type, correct)
		}
	case TypeMultiSelect:
		if correct == 0 {
			return fmt.Errorf("question %s: multi_select needs at least one correct option", q.ID)
		}
	}
	return nil
}

// Clone returns a deep copy.
func (q Question) Clone() Question {
	cp := q
	cp.Options = make([]Option, len(q.Options))
	copy(cp.Options, q.Options)
	cp.Tags = append([]string(nil), q.Tags...)
	return cp
}

// CorrectOptionIDs returns the ids of the options marked correct, in option
// order.
func (q Question) CorrectOptionIDs() []string {
	var ids []string
	for _, o := range q.Options {
		if o.IsCorrect {
			ids = append(ids, o.ID)
		}
	}
	return ids
}

func (q Question) optionByID(id string) (Option, bool) {
	for _, o := range q.Options {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}
