package miner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/phrasemine/corpusminer/pkg/corpus"
)

func buildInMemCorpus(t *testing.T, docs map[string]string) *corpus.Corpus {
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

// TestGreedyScenario1 mines two documents sharing a 3-gram prefix with
// divergent fourth words, neither of which meets the support threshold,
// so extension stops at length 3.
func TestGreedyScenario1(t *testing.T) {
	c := buildInMemCorpus(t, map[string]string{
		"d0.txt": "the quick brown fox",
		"d1.txt": "the quick brown dog",
	})

	phrases, err := RunGreedy(c, 2, 3, nil)
	if err != nil {
		t.Fatalf("RunGreedy: %v", err)
	}
	if len(phrases) != 1 {
		t.Fatalf("expected 1 phrase, got %d: %+v", len(phrases), phrases)
	}
	p := phrases[0]
	if p.Support != 2 {
		t.Errorf("support = %d, want 2", p.Support)
	}
	if len(p.Tokens) != 3 {
		t.Errorf("length = %d, want 3 (extension should not have succeeded)", len(p.Tokens))
	}
	words := make([]string, len(p.Tokens))
	for i, id := range p.Tokens {
		words[i] = c.Dict.WordOf(id)
	}
	want := []string{"the", "quick", "brown"}
	for i := range want {
		if words[i] != want[i] {
			t.Errorf("token %d = %q, want %q", i, words[i], want[i])
		}
	}
}

func TestGreedyRespectsSupportThreshold(t *testing.T) {
	c := buildInMemCorpus(t, map[string]string{
		"d0.txt": "alpha beta gamma delta",
	})
	// A single document can never reach support 2.
	phrases, err := RunGreedy(c, 2, 2, nil)
	if err != nil {
		t.Fatalf("RunGreedy: %v", err)
	}
	if len(phrases) != 0 {
		t.Fatalf("expected no phrases when support threshold unreachable, got %d", len(phrases))
	}
}

func TestGreedyDocShorterThanNgramsContributesNoSeeds(t *testing.T) {
	c := buildInMemCorpus(t, map[string]string{
		"short.txt": "a b",
		"long.txt":  "a b c d e",
	})
	phrases, err := RunGreedy(c, 1, 5, nil)
	if err != nil {
		t.Fatalf("RunGreedy: %v", err)
	}
	// short.txt has only 2 tokens, can't seed a 5-gram; long.txt has exactly 5.
	if len(phrases) != 1 {
		t.Fatalf("expected exactly 1 seed from the 5-token doc, got %d", len(phrases))
	}
}

func TestGreedyCancellationStopsEarly(t *testing.T) {
	c := buildInMemCorpus(t, map[string]string{
		"d0.txt": "the quick brown fox",
		"d1.txt": "the quick brown dog",
	})
	canceler := NewCanceler()
	canceler.Cancel()
	phrases, err := RunGreedy(c, 2, 3, canceler)
	if err != nil {
		t.Fatalf("RunGreedy: %v", err)
	}
	if len(phrases) != 0 {
		t.Fatalf("expected mining to stop immediately once cancelled, got %d phrases", len(phrases))
	}
}

func TestGreedyEveryPhraseInvariants(t *testing.T) {
	c := buildInMemCorpus(t, map[string]string{
		"d0.txt": "the quick brown fox jumps over",
		"d1.txt": "the quick brown dog jumps over",
		"d2.txt": "the quick brown cat jumps over",
	})
	minDocs, ngrams := 3, 2
	phrases, err := RunGreedy(c, minDocs, ngrams, nil)
	if err != nil {
		t.Fatalf("RunGreedy: %v", err)
	}
	for _, p := range phrases {
		if p.Support < uint32(minDocs) {
			t.Errorf("phrase support %d < minDocs %d", p.Support, minDocs)
		}
		if len(p.Tokens) < ngrams {
			t.Errorf("phrase length %d < ngrams %d", len(p.Tokens), ngrams)
		}
		distinct := map[uint32]struct{}{}
		for _, o := range p.Occs {
			distinct[o.DocID] = struct{}{}
		}
		if uint32(len(distinct)) != p.Support {
			t.Errorf("reported support %d != distinct doc count %d", p.Support, len(distinct))
		}
		for _, o := range p.Occs {
			doc, err := c.Doc(o.DocID)
			if err != nil {
				t.Fatalf("Doc: %v", err)
			}
			if int(o.Pos)+len(p.Tokens) > len(doc) {
				t.Errorf("occurrence (%d,%d) length %d exceeds doc bounds %d", o.DocID, o.Pos, len(p.Tokens), len(doc))
				continue
			}
			for i, tok := range p.Tokens {
				if doc[int(o.Pos)+i] != tok {
					t.Errorf("occurrence (%d,%d) token %d mismatch", o.DocID, o.Pos, i)
				}
			}
		}
	}
}
