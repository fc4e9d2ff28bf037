package bank

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/google/uuid"
	"github.com/quizforge/quizforge/internal/quiz"
)

var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrTagNotFound      = errors.New("tag not found")
	ErrTagNameTaken     = errors.New("tag name already in use")
	ErrTagCycle         = errors.New("tag hierarchy cycle")
)

// Tag organizes questions. Tags form a hierarchy via ParentID.
type Tag struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
	ParentID    string `json:"parent_id,omitempty"`
	UsageCount  int    `json:"usage_count"`
	CreatedAt   int64  `json:"created_at,omitempty"`
}

var (
	tagNameRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	colorRe   = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
)

// NewTag validates and builds a Tag, generating an ID when none is given.
func NewTag(name, description, color, parentID string) (Tag, error) {
	t := Tag{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Color:       color,
		ParentID:    parentID,
	}
	if err := t.Validate(); err != nil {
		return Tag{}, err
	}
	return t, nil
}

func (t Tag) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("tag: empty name")
	}
	if len(t.Name) > 20 {
		return fmt.Errorf("tag %q: name exceeds 20 characters", t.Name)
	}
	if !tagNameRe.MatchString(t.Name) {
		return fmt.Errorf("tag %q: name may only contain alphanumerics, hyphens, underscores", t.Name)
	}
	if len(t.Description) > 100 {
		return fmt.Errorf("tag %q: description exceeds 100 characters", t.Name)
	}
	if t.Color != "" && !colorRe.MatchString(t.Color) {
		return fmt.Errorf("tag %q: color must be a hex code like #FF0000", t.Name)
	}
	if t.ParentID != "" && t.ParentID == t.ID {
		return fmt.Errorf("tag %q: cannot be its own parent", t.Name)
	}
	return nil
}

type ListOpts struct {
	Q      string // substring match on question text
	Type   quiz.QuestionType
	Tag    string
	Limit  int
	Offset int
}

// Store is the question bank: validated questions and tags, persisted. The
// quiz engine reads pools from here and never writes back.
type Store interface {
	PutQuestion(ctx context.Context, q quiz.Question) error
	GetQuestion(ctx context.Context, id string) (quiz.Question, error)
	ListQuestions(ctx context.Context, opts ListOpts) ([]quiz.Question, error)
	DeleteQuestion(ctx context.Context, id string) error
	// IncrementUsage bumps per-question usage counters after a session draw.
	IncrementUsage(ctx context.Context, ids ...string) error

	CreateTag(ctx context.Context, t Tag) (Tag, error)
	GetTag(ctx context.Context, id string) (Tag, error)
	GetTagByName(ctx context.Context, name string) (Tag, error)
	ListTags(ctx context.Context, q string) ([]Tag, error)
	UpdateTag(ctx context.Context, t Tag) error
	DeleteTag(ctx context.Context, id string) error
	ChildTags(ctx context.Context, parentID string) ([]Tag, error)
}
