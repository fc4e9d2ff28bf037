package impex

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/quizforge/quizforge/internal/bank"
	"github.com/quizforge/quizforge/internal/quiz"
)

// Report summarizes one import run. Rows that fail validation are skipped
// and reported, never silently dropped.
type Report struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

type document struct {
	Questions []questionDoc `json:"questions"`
	Tags      []bank.Tag    `json:"tags,omitempty"`
}

type questionDoc struct {
	Text    string        `json:"question_text"`
	Type    string        `json:"question_type"`
	Options []quiz.Option `json:"options"`
	Tags    []string      `json:"tags"`
}

// ImportJSON reads a {"questions": [...], "tags": [...]} document and
// returns the valid questions and tags plus a per-row report.
func ImportJSON(r io.Reader) ([]quiz.Question, []bank.Tag, Report, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, nil, Report{}, fmt.Errorf("decode json: %w", err)
	}

	var (
		rep       Report
		questions []quiz.Question
		tags      []bank.Tag
	)
	for i, qd := range doc.Questions {
		q, err := quiz.NewQuestion(qd.Text, quiz.QuestionType(qd.Type), qd.Options, qd.Tags)
		if err != nil {
			rep.Skipped++
			rep.Errors = append(rep.Errors, fmt.Sprintf("question %d: %v", i+1, err))
			continue
		}
		questions = append(questions, q)
		rep.Imported++
	}
	for i, t := range doc.Tags {
		nt, err := bank.NewTag(t.Name, t.Description, t.Color, t.ParentID)
		if err != nil {
			rep.Skipped++
			rep.Errors = append(rep.Errors, fmt.Sprintf("tag %d: %v", i+1, err))
			continue
		}
		tags = append(tags, nt)
	}
	return questions, tags, rep, nil
}

// CSV layout: question_text,question_type,options,tags. Options are
// semicolon-separated "text|1" pairs (1 marks a correct option); tags are
// semicolon-separated names.
var csvHeader = []string{"question_text", "question_type", "options", "tags"}

func ImportCSV(r io.Reader) ([]quiz.Question, Report, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)

	header, err := cr.Read()
	if err != nil {
		return nil, Report{}, fmt.Errorf("read csv header: %w", err)
	}
	for i, want := range csvHeader {
		if strings.TrimSpace(header[i]) != want {
			return nil, Report{}, fmt.Errorf("csv column %d is %q, want %q", i+1, header[i], want)
		}
	}

	var (
		rep       Report
		questions []quiz.Question
		line      = 1
	)
	for {
		row, err := cr.Read()
		line++
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, Report{}, fmt.Errorf("read csv line %d: %w", line, err)
		}
		q, err := csvRowToQuestion(row)
		if err != nil {
			rep.Skipped++
			rep.Errors = append(rep.Errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		questions = append(questions, q)
		rep.Imported++
	}
	return questions, rep, nil
}

func csvRowToQuestion(row []string) (quiz.Question, error) {
	var options []quiz.Option
	for _, part := range strings.Split(row[2], ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		text, marker, _ := strings.Cut(part, "|")
		options = append(options, quiz.Option{
			Text:      strings.TrimSpace(text),
			IsCorrect: strings.TrimSpace(marker) == "1",
		})
	}
	var tags []string
	for _, t := range strings.Split(row[3], ";") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return quiz.NewQuestion(strings.TrimSpace(row[0]), quiz.QuestionType(strings.TrimSpace(row[1])), options, tags)
}
