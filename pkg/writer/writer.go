// Package writer emits mined phrases as CSV, the single output format
// shared by both mining strategies.
package writer

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/phrasemine/corpusminer/pkg/dictionary"
	"github.com/phrasemine/corpusminer/pkg/miner"
)

// SortBySupportThenLength reorders phrases by support descending, then
// length descending. The greedy miner's output is left in its own
// insertion order (already roughly support-descending from its candidate
// sort) and should not be passed through this function.
func SortBySupportThenLength(phrases []miner.Phrase) {
	sort.SliceStable(phrases, func(i, j int) bool {
		if phrases[i].Support != phrases[j].Support {
			return phrases[i].Support > phrases[j].Support
		}
		return len(phrases[i].Tokens) > len(phrases[j].Tokens)
	})
}

// Write streams phrases to w as CSV with header
// "phrase,freq,length,example_files". filePaths is the corpus's source
// identifier sequence, indexed by doc_id.
func Write(w io.Writer, phrases []miner.Phrase, dict *dictionary.Dictionary, filePaths []string) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString("phrase,freq,length,example_files\n"); err != nil {
		return err
	}
	for _, p := range phrases {
		if err := writeRow(bw, p, dict, filePaths); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeRow(bw *bufio.Writer, p miner.Phrase, dict *dictionary.Dictionary, filePaths []string) error {
	words := make([]string, len(p.Tokens))
	for i, id := range p.Tokens {
		words[i] = dict.WordOf(id)
	}
	phrase := strings.Join(words, " ")

	examples := exampleFiles(p, filePaths)

	_, err := fmt.Fprintf(bw, "\"%s\",%d,%d,\"%s\"\n", phrase, p.Support, len(p.Tokens), examples)
	return err
}

// exampleFiles formats up to two distinct source identifiers separated by
// '|', appending a literal "..." when more than two distinct documents
// back the phrase.
func exampleFiles(p miner.Phrase, filePaths []string) string {
	seen := make(map[uint32]struct{})
	var ordered []uint32
	for _, o := range p.Occs {
		if _, ok := seen[o.DocID]; ok {
			continue
		}
		seen[o.DocID] = struct{}{}
		ordered = append(ordered, o.DocID)
	}

	var names []string
	for _, d := range ordered {
		if int(d) >= len(filePaths) {
			continue
		}
		names = append(names, filePaths[d])
		if len(names) >= 2 {
			break
		}
	}

	out := strings.Join(names, "|")
	if len(ordered) > 2 {
		out += "..."
	}
	return out
}
