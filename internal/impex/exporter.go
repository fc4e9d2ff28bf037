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

// ExportJSON writes questions and tags as one document in the same layout
// ImportJSON reads.
func ExportJSON(w io.Writer, questions []quiz.Question, tags []bank.Tag) error {
	doc := document{Tags: tags}
	for _, q := range questions {
		doc.Questions = append(doc.Questions, questionDoc{
			Text:    q.Text,
			Type:    string(q.Type),
			Options: q.Options,
			Tags:    q.Tags,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// ExportCSV writes questions in the layout ImportCSV reads.
func ExportCSV(w io.Writer, questions []quiz.Question) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, q := range questions {
		opts := make([]string, 0, len(q.Options))
		for _, o := range q.Options {
			marker := "0"
			if o.IsCorrect {
				marker = "1"
			}
			if strings.ContainsAny(o.Text, "|;") {
				return fmt.Errorf("question %s: option text %q cannot contain '|' or ';' in csv export", q.ID, o.Text)
			}
			opts = append(opts, o.Text+"|"+marker)
		}
		row := []string{q.Text, string(q.Type), strings.Join(opts, ";"), strings.Join(q.Tags, ";")}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
