package corpus

import (
	"testing"

	"github.com/phrasemine/corpusminer/pkg/dictionary"
)

func TestCorpusInvariantFilePathsMatchesDocs(t *testing.T) {
	c := &Corpus{
		Dict:       dictionary.New(),
		Docs:       []Document{{1, 2}, {3}},
		FilePaths:  []string{"a.txt", "b.txt"},
		DocLengths: []uint32{2, 1},
		InMemory:   true,
	}
	if err := c.checkInvariants(); err != nil {
		t.Fatalf("checkInvariants: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
}

func TestCorpusInvariantViolationDetected(t *testing.T) {
	c := &Corpus{
		FilePaths:  []string{"a.txt", "b.txt"},
		DocLengths: []uint32{1},
	}
	if err := c.checkInvariants(); err == nil {
		t.Fatal("expected invariant violation to be detected")
	}
}

func TestDocOutOfRangeInMemory(t *testing.T) {
	c := &Corpus{InMemory: true, FilePaths: []string{"a.txt"}, Docs: []Document{{1}}}
	if _, err := c.Doc(5); err == nil {
		t.Fatal("expected out-of-range Doc to error")
	}
}
