package quiz

import (
	"time"
)

// Answer is one recorded submission, owned by its session.
type Answer struct {
	QuestionID        string    `json:"question_id"`
	SelectedOptionIDs []string  `json:"selected_option_ids"`
	SubmittedAt       time.Time `json:"submitted_at"`
	FullyCorrect      bool      `json:"is_correct"`
	PartialScore      float64   `json:"partial_score"`
}

// Session is one run of a quiz: a fixed, pre-randomized question order, a
// monotonically advancing cursor, and the answers recorded so far. A session
// is active until every question is answered or it is abandoned; after that
// it is completed and cannot be reopened. Sessions are not safe for
// concurrent use; the hosting layer serializes access (see Registry.Do).
type Session struct {
	id        string
	questions []Question
	current   int
	answers   []Answer
	answered  map[string]struct{}
	startedAt time.Time
	endedAt   time.Time
	score     float64
	completed bool
	abandoned bool
	now       func() time.Time
}

func newSession(id string, questions []Question, now func() time.Time) *Session {
	return &Session{
		id:        id,
		questions: questions,
		answered:  make(map[string]struct{}, len(questions)),
		startedAt: now(),
		now:       now,
	}
}

func (s *Session) ID() string           { return s.id }
func (s *Session) Completed() bool      { return s.completed }
func (s *Session) Abandoned() bool      { return s.abandoned }
func (s *Session) StartedAt() time.Time { return s.startedAt }

// EndedAt reports the completion time; ok is false while active.
func (s *Session) EndedAt() (time.Time, bool) { return s.endedAt, s.completed }

// Score reports the final percentage; ok is false while active.
func (s *Session) Score() (float64, bool) { return s.score, s.completed }

// CurrentQuestion returns the question at the cursor. Repeated calls without
// an intervening SubmitAnswer return the same question.
func (s *Session) CurrentQuestion() (Question, error) {
	if s.completed {
		return Question{}, ErrSessionCompleted
	}
	return s.questions[s.current], nil
}

// SubmitAnswer evaluates selected against the current question, records the
// submission, and advances the cursor. Answering the last question completes
// the session: the score is computed and the end time set. An invalid
// submission leaves the session untouched.
func (s *Session) SubmitAnswer(selected Selection) (Evaluation, error) {
	if s.completed {
		return Evaluation{}, ErrSessionCompleted
	}
	q := s.questions[s.current]
	if _, dup := s.answered[q.ID]; dup {
		return Evaluation{}, ErrDuplicateAnswer
	}
	eval, err := Evaluate(q, selected)
	if err != nil {
		return Evaluation{}, err
	}
	s.answers = append(s.answers, Answer{
		QuestionID:        q.ID,
		SelectedOptionIDs: selected.IDs(),
		SubmittedAt:       s.now(),
		FullyCorrect:      eval.FullyCorrect,
		PartialScore:      eval.PartialScore,
	})
	s.answered[q.ID] = struct{}{}
	s.current++
	if s.current == len(s.questions) {
		s.complete(len(s.questions))
	}
	return eval, nil
}

// Progress reports answered and total counts; valid in any state.
func (s *Session) Progress() (answered, total int) {
	return len(s.answers), len(s.questions)
}

// Abandon completes the session early. The score covers only the questions
// answered so far, so downstream analytics can keep abandoned runs out of
// full-quiz averages via the abandoned flag.
func (s *Session) Abandon() error {
	if s.completed {
		return ErrSessionCompleted
	}
	s.abandoned = true
	s.complete(len(s.answers))
	return nil
}

// complete seals the session, averaging per-question contributions over n.
// Every question weighs the same: single/true-false contribute 0 or 1 and
// multi-select contributes its partial score.
func (s *Session) complete(n int) {
	sum := 0.0
	for _, a := range s.answers {
		sum += a.PartialScore
	}
	if n > 0 {
		s.score = sum / float64(n) * 100
	}
	s.endedAt = s.now()
	s.completed = true
}

// Questions returns a copy of the session's question snapshots.
func (s *Session) Questions() []Question {
	out := make([]Question, len(s.questions))
	for i, q := range s.questions {
		out[i] = q.Clone()
	}
	return out
}

// Answers returns a copy of the recorded answers in submission order.
func (s *Session) Answers() []Answer {
	return append([]Answer(nil), s.answers...)
}

// SessionRecord is the serializable snapshot of a finished session, handed
// to the persistence layer after finalize or abandon.
type SessionRecord struct {
	ID        string     `json:"id"`
	Questions []Question `json:"questions"`
	Answers   []Answer   `json:"answers"`
	Score     float64    `json:"score"`
	Answered  int        `json:"answered"`
	Total     int        `json:"total"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   time.Time  `json:"ended_at"`
	Abandoned bool       `json:"abandoned"`
}

// Record snapshots the session for persistence.
func (s *Session) Record() SessionRecord {
	return SessionRecord{
		ID:        s.id,
		Questions: s.Questions(),
		Answers:   s.Answers(),
		Score:     s.score,
		Answered:  len(s.answers),
		Total:     len(s.questions),
		StartedAt: s.startedAt,
		EndedAt:   s.endedAt,
		Abandoned: s.abandoned,
	}
}
