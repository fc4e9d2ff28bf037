package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/quizforge/quizforge/internal/quiz"
)

var ErrRecordNotFound = errors.New("session record not found")

type ListOpts struct {
	// IncludeAbandoned keeps abandoned runs in the listing; analytics that
	// compute full-quiz averages leave it false.
	IncludeAbandoned bool
	Since            time.Time
	Limit            int
	Offset           int
}

// Store persists finished sessions. The quiz core never writes here itself;
// the hosting layer calls SaveSession after finalize or abandon.
type Store interface {
	SaveSession(ctx context.Context, rec quiz.SessionRecord) error
	GetSession(ctx context.Context, id string) (quiz.SessionRecord, error)
	ListSessions(ctx context.Context, opts ListOpts) ([]quiz.SessionRecord, error)
}

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) SaveSession(ctx context.Context, rec quiz.SessionRecord) error {
	qj, err := json.Marshal(rec.Questions)
	if err != nil {
		return err
	}
	aj, err := json.Marshal(rec.Answers)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO quiz_sessions (id,questions_json,answers_json,score,answered,total,abandoned,started_at,ended_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		rec.ID, string(qj), string(aj), rec.Score, rec.Answered, rec.Total, rec.Abandoned,
		rec.StartedAt.Unix(), rec.EndedAt.Unix())
	return err
}

func (s *SQLStore) GetSession(ctx context.Context, id string) (quiz.SessionRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,questions_json,answers_json,score,answered,total,abandoned,started_at,ended_at
		FROM quiz_sessions WHERE id=$1`, id)
	return scanRecord(row)
}

func (s *SQLStore) ListSessions(ctx context.Context, opts ListOpts) ([]quiz.SessionRecord, error) {
	query := `SELECT id,questions_json,answers_json,score,answered,total,abandoned,started_at,ended_at FROM quiz_sessions`
	var (
		where []string
		args  []any
	)
	if !opts.IncludeAbandoned {
		where = append(where, `NOT abandoned`)
	}
	if !opts.Since.IsZero() {
		args = append(args, opts.Since.Unix())
		where = append(where, fmt.Sprintf(`started_at >= $%d`, len(args)))
	}
	for i, w := range where {
		if i == 0 {
			query += ` WHERE ` + w
		} else {
			query += ` AND ` + w
		}
	}
	query += ` ORDER BY started_at DESC, id`
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

	var out []quiz.SessionRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (quiz.SessionRecord, error) {
	var (
		rec            quiz.SessionRecord
		qj, aj         string
		started, ended int64
	)
	if err := row.Scan(&rec.ID, &qj, &aj, &rec.Score, &rec.Answered, &rec.Total, &rec.Abandoned, &started, &ended); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return quiz.SessionRecord{}, ErrRecordNotFound
		}
		return quiz.SessionRecord{}, err
	}
	if err := json.Unmarshal([]byte(qj), &rec.Questions); err != nil {
		return quiz.SessionRecord{}, err
	}
	if err := json.Unmarshal([]byte(aj), &rec.Answers); err != nil {
		return quiz.SessionRecord{}, err
	}
	rec.StartedAt = time.Unix(started, 0).UTC()
	rec.EndedAt = time.Unix(ended, 0).UTC()
	return rec, nil
}
