package ocr

import "strings"

// Draft is a question candidate recovered from scanned text. Correctness of
// the options is unknown; the author completes the draft before it enters
// the bank.
type Draft struct {
	Text    string   `json:"question_text"`
	Options []string `json:"options"`
}

var questionStarters = []string{"What", "Which", "How", "When", "Where", "Why", "Who"}

// ParseDrafts recovers question drafts from free text. A line ending in '?'
// or opening with an interrogative starts a question; lines led by a bullet
// or an "A."-style label become its options.
func ParseDrafts(text string) []Draft {
	var (
		drafts []Draft
		cur    *Draft
	)
	flush := func() {
		if cur != nil && cur.Text != "" {
			drafts = append(drafts, *cur)
		}
		cur = nil
	}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		switch {
		case looksLikeQuestion(line):
			flush()
			cur = &Draft{Text: line}
		case cur != nil && looksLikeOption(line):
			if opt := trimOptionMarker(line); opt != "" {
				cur.Options = append(cur.Options, opt)
			}
		}
	}
	flush()
	return drafts
}

func looksLikeQuestion(line string) bool {
	if strings.HasSuffix(line, "?") {
		return true
	}
	for _, s := range questionStarters {
		if strings.HasPrefix(line, s) {
			return true
		}
	}
	return false
}

func looksLikeOption(line string) bool {
	if strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*") || strings.HasPrefix(line, "•") {
		return true
	}
	return len(line) > 2 && line[1] == '.' && line[0] >= 'A' && line[0] <= 'Z'
}

func trimOptionMarker(line string) string {
	line = strings.TrimLeft(line, "-*• ")
	if len(line) > 2 && line[1] == '.' && line[0] >= 'A' && line[0] <= 'Z' {
		line = line[2:]
	}
	return strings.TrimSpace(line)
}
