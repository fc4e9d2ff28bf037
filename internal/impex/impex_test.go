package impex_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/quizforge/quizforge/internal/bank"
	"github.com/quizforge/quizforge/internal/impex"
	"github.com/quizforge/quizforge/internal/quiz"
)

const sampleJSON = `{
  "questions": [
    {
      "question_text": "What is the capital of France?",
      "question_type": "single_choice",
      "options": [
        {"text": "Paris", "is_correct": true},
        {"text": "Lyon"}
      ],
      "tags": ["geography"]
    },
    {
      "question_text": "",
      "question_type": "single_choice",
      "options": [{"text": "a", "is_correct": true}, {"text": "b"}]
    }
  ],
  "tags": [
    {"name": "geography", "color": "#2E86AB"}
  ]
}`

func TestImportJSON(t *testing.T) {
	questions, tags, rep, err := impex.ImportJSON(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if rep.Imported != 1 || rep.Skipped != 1 {
		t.Fatalf("report = %+v", rep)
	}
	if len(rep.Errors) != 1 || !strings.Contains(rep.Errors[0], "question 2") {
		t.Fatalf("errors = %v", rep.Errors)
	}
	if len(questions) != 1 || questions[0].Text != "What is the capital of France?" {
		t.Fatalf("questions = %+v", questions)
	}
	if questions[0].ID == "" || questions[0].Options[0].ID == "" {
		t.Fatal("ids not generated")
	}
	if len(tags) != 1 || tags[0].Name != "geography" {
		t.Fatalf("tags = %+v", tags)
	}
}

func TestImportJSONMalformed(t *testing.T) {
	if _, _, _, err := impex.ImportJSON(strings.NewReader("{not json")); err == nil {
		t.Fatal("malformed json accepted")
	}
}

const sampleCSV = `question_text,question_type,options,tags
What is the capital of France?,single_choice,Paris|1;Lyon|0;Nice|0,geography
Which are noble gases?,multi_select,Helium|1;Oxygen|0;Neon|1,science;chemistry
,single_choice,a|1;b|0,
`

func TestImportCSV(t *testing.T) {
	questions, rep, err := impex.ImportCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if rep.Imported != 2 || rep.Skipped != 1 {
		t.Fatalf("report = %+v", rep)
	}
	if len(questions) != 2 {
		t.Fatalf("questions = %d", len(questions))
	}

	multi := questions[1]
	if multi.Type != quiz.TypeMultiSelect {
		t.Fatalf("type = %s", multi.Type)
	}
	if len(multi.CorrectOptionIDs()) != 2 {
		t.Fatalf("correct options = %v", multi.CorrectOptionIDs())
	}
	if len(multi.Tags) != 2 {
		t.Fatalf("tags = %v", multi.Tags)
	}
}

func TestImportCSVBadHeader(t *testing.T) {
	csv := "text,type,options,tags\nfoo,single_choice,a|1;b|0,\n"
	if _, _, err := impex.ImportCSV(strings.NewReader(csv)); err == nil {
		t.Fatal("wrong header accepted")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	q, err := quiz.NewQuestion("Which are noble gases?", quiz.TypeMultiSelect,
		[]quiz.Option{{Text: "Helium", IsCorrect: true}, {Text: "Oxygen"}, {Text: "Neon", IsCorrect: true}},
		[]string{"science"})
	if err != nil {
		t.Fatalf("new question: %v", err)
	}
	tag, err := bank.NewTag("science", "Natural sciences", "#A23B72", "")
	if err != nil {
		t.Fatalf("new tag: %v", err)
	}

	var buf bytes.Buffer
	if err := impex.ExportJSON(&buf, []quiz.Question{q}, []bank.Tag{tag}); err != nil {
		t.Fatalf("export: %v", err)
	}

	questions, tags, rep, err := impex.ImportJSON(&buf)
	if err != nil {
		t.Fatalf("reimport: %v", err)
	}
	if rep.Imported != 1 || len(tags) != 1 {
		t.Fatalf("report = %+v, tags = %d", rep, len(tags))
	}
	got := questions[0]
	if got.Text != q.Text || got.Type != q.Type || len(got.Options) != 3 {
		t.Fatalf("got %+v", got)
	}
	if len(got.CorrectOptionIDs()) != 2 {
		t.Fatalf("correctness lost: %v", got.CorrectOptionIDs())
	}
}

func TestCSVRoundTrip(t *testing.T) {
	q, err := quiz.NewQuestion("Water boils at 100C at sea level.", quiz.TypeTrueFalse,
		[]quiz.Option{{Text: "True", IsCorrect: true}, {Text: "False"}}, []string{"science"})
	if err != nil {
		t.Fatalf("new question: %v", err)
	}

	var buf bytes.Buffer
	if err := impex.ExportCSV(&buf, []quiz.Question{q}); err != nil {
		t.Fatalf("export: %v", err)
	}
	questions, rep, err := impex.ImportCSV(&buf)
	if err != nil {
		t.Fatalf("reimport: %v", err)
	}
	if rep.Imported != 1 || questions[0].Text != q.Text {
		t.Fatalf("round trip lost data: %+v", questions)
	}
}

func TestExportCSVRejectsDelimiterInOptionText(t *testing.T) {
	q := quiz.Question{
		ID:   "q1",
		Text: "Tricky?",
		Type: quiz.TypeSingleChoice,
		Options: []quiz.Option{
			{ID: "a", Text: "yes; definitely", IsCorrect: true},
			{ID: "b", Text: "no"},
		},
	}
	if err := impex.ExportCSV(&bytes.Buffer{}, []quiz.Question{q}); err == nil {
		t.Fatal("option text with delimiter accepted")
	}
}
