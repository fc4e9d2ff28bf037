package bank

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/quizforge/quizforge/internal/quiz"
)

// SQLStore persists the bank in the questions/tags tables. Options and tag
// names live in JSON text columns, same scheme for sqlite and postgres.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) PutQuestion(ctx context.Context, q quiz.Question) error {
	if err := q.Validate(); err != nil {
		return err
	}
	oj, err := json.Marshal(q.Options)
	if err != nil {
		return err
	}
	tj, err := json.Marshal(q.Tags)
	if err != nil {
		return err
	}
	now := time.Now().Unix()
	_, err = s.db.ExecContext(ctx, `INSERT INTO questions (id,question_text,question_type,options_json,tags_json,usage_count,created_at,updated_at)
		VALUES ($1,$2,$3,$4,$5,0,$6,$6)
		ON CONFLICT (id) DO UPDATE SET question_text=EXCLUDED.question_text, question_type=EXCLUDED.question_type,
			options_json=EXCLUDED.options_json, tags_json=EXCLUDED.tags_json, updated_at=EXCLUDED.updated_at`,
		q.ID, q.Text, string(q.Type), string(oj), string(tj), now)
	return err
}

func (s *SQLStore) GetQuestion(ctx context.Context, id string) (quiz.Question, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,question_text,question_type,options_json,tags_json FROM questions WHERE id=$1`, id)
	return scanQuestion(row)
}

func (s *SQLStore) ListQuestions(ctx context.Context, opts ListOpts) ([]quiz.Question, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if opts.Q != "" {
		add(`question_text LIKE $%d`, "%"+opts.Q+"%")
	}
	if opts.Type != "" {
		add(`question_type = $%d`, string(opts.Type))
	}
	if opts.Tag != "" {
		// tags_json is a JSON array of strings; exact-name containment.
		add(`tags_json LIKE $%d`, `%"`+opts.Tag+`"%`)
	}
	query := `SELECT id,question_text,question_type,options_json,tags_json FROM questions`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ORDER BY created_at DESC, id`
	if opts.Limit > 0 {
		args = append(args, opts.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}
	if opts.Offset > 0 {
		args = append(args, opts.Offset)
		query += fmt.Sprintf(` OFFSET $%d`, len(args))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []quiz.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (s *SQLStore) DeleteQuestion(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM questions WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrQuestionNotFound
	}
	return nil
}

func (s *SQLStore) IncrementUsage(ctx context.Context, ids ...string) error {
	for _, id := range ids {
		if _, err := s.db.ExecContext(ctx, `UPDATE questions SET usage_count=usage_count+1 WHERE id=$1`, id); err != nil {
			return err
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuestion(row rowScanner) (quiz.Question, error) {
	var (
		q      quiz.Question
		typ    string
		oj, tj string
	)
	if err := row.Scan(&q.ID, &q.Text, &typ, &oj, &tj); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return quiz.Question{}, ErrQuestionNotFound
		}
		return quiz.Question{}, err
	}
	q.Type = quiz.QuestionType(typ)
	if err := json.Unmarshal([]byte(oj), &q.Options); err != nil {
		return quiz.Question{}, err
	}
	if err := json.Unmarshal([]byte(tj), &q.Tags); err != nil {
		return quiz.Question{}, err
	}
	return q, nil
}

// --- tags ---

func (s *SQLStore) CreateTag(ctx context.Context, t Tag) (Tag, error) {
	if err := t.Validate(); err != nil {
		return Tag{}, err
	}
	if _, err := s.GetTagByName(ctx, t.Name); err == nil {
		return Tag{}, ErrTagNameTaken
	} else if !errors.Is(err, ErrTagNotFound) {
		return Tag{}, err
	}
	if t.ParentID != "" {
		if _, err := s.GetTag(ctx, t.ParentID); err != nil {
			return Tag{}, fmt.Errorf("parent: %w", err)
		}
	}
	t.CreatedAt = time.Now().Unix()
	_, err := s.db.ExecContext(ctx, `INSERT INTO tags (id,name,description,color,parent_id,usage_count,created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		t.ID, t.Name, t.Description, t.Color, nullable(t.ParentID), t.UsageCount, t.CreatedAt)
	if err != nil {
		return Tag{}, err
	}
	return t, nil
}

func (s *SQLStore) GetTag(ctx context.Context, id string) (Tag, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,name,description,color,parent_id,usage_count,created_at FROM tags WHERE id=$1`, id)
	return scanTag(row)
}

func (s *SQLStore) GetTagByName(ctx context.Context, name string) (Tag, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,name,description,color,parent_id,usage_count,created_at FROM tags WHERE name=$1`, name)
	return scanTag(row)
}

func (s *SQLStore) ListTags(ctx context.Context, q string) ([]Tag, error) {
	query := `SELECT id,name,description,color,parent_id,usage_count,created_at FROM tags`
	var args []any
	if q != "" {
		query += ` WHERE name LIKE $1`
		args = append(args, "%"+q+"%")
	}
	query += ` ORDER BY name`
	return s.queryTags(ctx, query, args...)
}

func (s *SQLStore) UpdateTag(ctx context.Context, t Tag) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if t.ParentID != "" {
		if err := s.checkNoCycle(ctx, t.ID, t.ParentID); err != nil {
			return err
		}
	}
	res, err := s.db.ExecContext(ctx, `UPDATE tags SET name=$1, description=$2, color=$3, parent_id=$4, usage_count=$5 WHERE id=$6`,
		t.Name, t.Description, t.Color, nullable(t.ParentID), t.UsageCount, t.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTagNotFound
	}
	return nil
}

func (s *SQLStore) DeleteTag(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tags WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTagNotFound
	}
	return nil
}

func (s *SQLStore) ChildTags(ctx context.Context, parentID string) ([]Tag, error) {
	return s.queryTags(ctx, `SELECT id,name,description,color,parent_id,usage_count,created_at FROM tags WHERE parent_id=$1 ORDER BY name`, parentID)
}

// checkNoCycle walks up from parentID; finding id on the way means the
// reparenting would close a loop.
func (s *SQLStore) checkNoCycle(ctx context.Context, id, parentID string) error {
	cur := parentID
	for cur != "" {
		if cur == id {
			return ErrTagCycle
		}
		t, err := s.GetTag(ctx, cur)
		if err != nil {
			if errors.Is(err, ErrTagNotFound) {
				return fmt.Errorf("parent: %w", err)
			}
			return err
		}
		cur = t.ParentID
	}
	return nil
}

func (s *SQLStore) queryTags(ctx context.Context, query string, args ...any) ([]Tag, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func scanTag(row rowScanner) (Tag, error) {
	var (
		t      Tag
		parent sql.NullString
	)
	if err := row.Scan(&t.ID, &t.Name, &t.Description, &t.Color, &parent, &t.UsageCount, &t.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Tag{}, ErrTagNotFound
		}
		return Tag{}, err
	}
	t.ParentID = parent.String
	return t, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
