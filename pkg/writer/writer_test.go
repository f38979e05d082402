package writer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/phrasemine/corpusminer/pkg/dictionary"
	"github.com/phrasemine/corpusminer/pkg/miner"
)

func TestWriteBasicFormat(t *testing.T) {
	dict := dictionary.New()
	the := dict.Intern("the")
	quick := dict.Intern("quick")
	brown := dict.Intern("brown")

	phrases := []miner.Phrase{
		{
			Tokens:  []uint32{the, quick, brown},
			Support: 2,
			Occs:    []miner.Occurrence{{DocID: 0}, {DocID: 1}},
		},
	}
	filePaths := []string{"d0.txt", "d1.txt"}

	var buf bytes.Buffer
	if err := Write(&buf, phrases, dict, filePaths); err != nil {
		t.Fatalf("Write: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if lines[0] != "phrase,freq,length,example_files" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	want := `"the quick brown",2,3,"d0.txt|d1.txt"`
	if lines[1] != want {
		t.Fatalf("got %q, want %q", lines[1], want)
	}
}

func TestExampleFilesTruncatesAtTwoWithEllipsis(t *testing.T) {
	p := miner.Phrase{
		Occs: []miner.Occurrence{{DocID: 0}, {DocID: 1}, {DocID: 2}},
	}
	got := exampleFiles(p, []string{"a.txt", "b.txt", "c.txt"})
	want := "a.txt|b.txt..."
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestExampleFilesNoEllipsisForExactlyTwo(t *testing.T) {
	p := miner.Phrase{
		Occs: []miner.Occurrence{{DocID: 0}, {DocID: 1}},
	}
	got := exampleFiles(p, []string{"a.txt", "b.txt"})
	want := "a.txt|b.txt"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSortBySupportThenLength(t *testing.T) {
	phrases := []miner.Phrase{
		{Tokens: []uint32{1}, Support: 2},
		{Tokens: []uint32{1, 2, 3}, Support: 5},
		{Tokens: []uint32{1, 2}, Support: 5},
	}
	SortBySupportThenLength(phrases)
	if phrases[0].Support != 5 || len(phrases[0].Tokens) != 3 {
		t.Errorf("expected highest support+length first, got %+v", phrases[0])
	}
	if phrases[1].Support != 5 || len(phrases[1].Tokens) != 2 {
		t.Errorf("expected second entry support=5 length=2, got %+v", phrases[1])
	}
	if phrases[2].Support != 2 {
		t.Errorf("expected lowest support last, got %+v", phrases[2])
	}
}
