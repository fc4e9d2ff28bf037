package ocr

import "testing"

func TestParseDrafts(t *testing.T) {
	text := `Chapter 3 Review

What is the capital of France?
- Paris
- Lyon
- Marseille

Which gas do plants absorb?
A. Oxygen
B. Carbon dioxide
C. Nitrogen

ignored prose between questions

How many continents are there
* Five
* Six
* Seven
`
	drafts := ParseDrafts(text)
	if len(drafts) != 3 {
		t.Fatalf("drafts = %d, want 3: %+v", len(drafts), drafts)
	}

	if drafts[0].Text != "What is the capital of France?" {
		t.Fatalf("draft 0 text = %q", drafts[0].Text)
	}
	if len(drafts[0].Options) != 3 || drafts[0].Options[0] != "Paris" {
		t.Fatalf("draft 0 options = %v", drafts[0].Options)
	}

	if len(drafts[1].Options) != 3 || drafts[1].Options[1] != "Carbon dioxide" {
		t.Fatalf("draft 1 options = %v", drafts[1].Options)
	}

	// Interrogative opener counts even without a question mark.
	if drafts[2].Text != "How many continents are there" {
		t.Fatalf("draft 2 text = %q", drafts[2].Text)
	}
}

func TestParseDraftsIgnoresStrayBullets(t *testing.T) {
	drafts := ParseDrafts("- orphan option\n- another\n")
	if len(drafts) != 0 {
		t.Fatalf("drafts = %+v, want none", drafts)
	}
}

func TestParseDraftsEmptyInput(t *testing.T) {
	if drafts := ParseDrafts(""); len(drafts) != 0 {
		t.Fatalf("drafts = %+v", drafts)
	}
}
