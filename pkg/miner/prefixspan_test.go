package miner

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phrasemine/corpusminer/pkg/corpus"
)

func buildCorpusPS(t *testing.T, docs map[string]string) *corpus.Corpus {
	t.Helper()
	dir := t.TempDir()
	for name, content := range docs {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	c, err := corpus.LoadDirectory(context.Background(), dir, corpus.LoadOptions{Sampling: 1.0, InMemory: true})
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	return c
}

func phraseWords(c *corpus.Corpus, p Phrase) []string {
	words := make([]string, len(p.Tokens))
	for i, id := range p.Tokens {
		words[i] = c.Dict.WordOf(id)
	}
	return words
}

// TestPrefixSpanScenario2 mines CLOSED mode over two documents sharing
// "the quick brown" with divergent fourth words. "the" and "the quick"
// are suppressed (an extension of equal support exists); only
// "the quick brown" survives closure.
func TestPrefixSpanScenario2(t *testing.T) {
	c := buildCorpusPS(t, map[string]string{
		"d0.txt": "the quick brown fox",
		"d1.txt": "the quick brown dog",
	})

	phrases, err := RunPrefixSpan(c, 2, 1, ModeClosed, nil)
	if err != nil {
		t.Fatalf("RunPrefixSpan: %v", err)
	}
	if len(phrases) != 1 {
		t.Fatalf("expected exactly 1 closed pattern, got %d: %+v", len(phrases), phrases)
	}
	got := phraseWords(c, phrases[0])
	want := []string{"the", "quick", "brown"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

// TestPrefixSpanScenario3 mines ALL mode over five copies of "a a a" with
// minLength 2. Prefixes shorter than the minimum length are suppressed;
// "a a" and "a a a" are emitted, "a a a a" never exists since no document
// is long enough.
func TestPrefixSpanScenario3(t *testing.T) {
	docs := map[string]string{}
	for i := 0; i < 5; i++ {
		docs[string(rune('a'+i))+".txt"] = "a a a"
	}
	c := buildCorpusPS(t, docs)

	phrases, err := RunPrefixSpan(c, 2, 2, ModeAll, nil)
	if err != nil {
		t.Fatalf("RunPrefixSpan: %v", err)
	}
	if len(phrases) != 2 {
		t.Fatalf("expected 2 patterns (a a, a a a), got %d: %+v", len(phrases), phrases)
	}
	lengths := map[int]bool{}
	for _, p := range phrases {
		lengths[len(p.Tokens)] = true
		if p.Support != 5 {
			t.Errorf("phrase %v support = %d, want 5", phraseWords(c, p), p.Support)
		}
	}
	if !lengths[2] || !lengths[3] {
		t.Fatalf("expected lengths {2,3}, got %v", lengths)
	}
}

// TestPrefixSpanMaximalSuppressesNonMaximal: "the", "the quick" and "quick"
// have a frequent one-token extension and are suppressed; "the quick
// brown", "quick brown" and "brown" have none and are emitted.
func TestPrefixSpanMaximalSuppressesNonMaximal(t *testing.T) {
	c := buildCorpusPS(t, map[string]string{
		"d0.txt": "the quick brown fox",
		"d1.txt": "the quick brown dog",
	})
	phrases, err := RunPrefixSpan(c, 2, 1, ModeMaximal, nil)
	if err != nil {
		t.Fatalf("RunPrefixSpan: %v", err)
	}
	if len(phrases) != 3 {
		t.Fatalf("expected 3 maximal patterns, got %d: %+v", len(phrases), phrases)
	}
	got := map[string]bool{}
	for _, p := range phrases {
		got[strings.Join(phraseWords(c, p), " ")] = true
	}
	for _, want := range []string{"the quick brown", "quick brown", "brown"} {
		if !got[want] {
			t.Errorf("missing maximal pattern %q, got %v", want, got)
		}
	}
}

func TestPrefixSpanEmptyCorpus(t *testing.T) {
	c := buildCorpusPS(t, map[string]string{})
	phrases, err := RunPrefixSpan(c, 1, 1, ModeAll, nil)
	if err != nil {
		t.Fatalf("RunPrefixSpan: %v", err)
	}
	if len(phrases) != 0 {
		t.Fatalf("expected no phrases from empty corpus, got %d", len(phrases))
	}
}

func TestParseModeRoundTrip(t *testing.T) {
	for _, name := range []string{"all", "closed", "maximal"} {
		m, err := ParseMode(name)
		if err != nil {
			t.Fatalf("ParseMode(%q): %v", name, err)
		}
		if m.String() != name {
			t.Errorf("ParseMode(%q).String() = %q", name, m.String())
		}
	}
	if _, err := ParseMode("bogus"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}
