package miner

import (
	"github.com/charmbracelet/log"
	"github.com/phrasemine/corpusminer/pkg/corpus"
)

// RunPrefixSpan mines contiguous patterns with a depth-first search over
// projected position lists, filtering output to ALL, CLOSED, or MAXIMAL
// patterns. Extension support is counted by exploiting projected-database
// ordering (appending a doc_id to a token's bucket only when it differs
// from that bucket's last entry), which keeps the counting state local to
// each call rather than shared across recursion.
func RunPrefixSpan(c *corpus.Corpus, minDocs, minLength int, mode Mode, cancel *Canceler) ([]Phrase, error) {
	if c.Len() == 0 {
		return nil, nil
	}

	var initial []Projection
	initialDocs := make(map[uint32]struct{})
	for d := 0; d < c.Len(); d++ {
		doc, err := c.Doc(uint32(d))
		if err != nil {
			return nil, err
		}
		if len(doc) == 0 {
			continue
		}
		initialDocs[uint32(d)] = struct{}{}
		for j := range doc {
			initial = append(initial, Projection{DocID: uint32(d), Pos: uint32(j), Origin: uint32(j)})
		}
	}

	e := &prefixSpanEngine{
		corpus:    c,
		minDocs:   uint32(minDocs),
		minLength: uint32(minLength),
		mode:      mode,
		cancel:    cancel,
	}
	e.mineRecursive(initial, nil, uint32(len(initialDocs)))
	log.Debugf("prefixspan: found %d patterns", len(e.results))
	return e.results, nil
}

type prefixSpanEngine struct {
	corpus    *corpus.Corpus
	minDocs   uint32
	minLength uint32
	mode      Mode
	cancel    *Canceler
	results   []Phrase
}

// itemSupport accumulates the distinct doc_ids observed for one candidate
// extension token, relying on db being scanned in a fixed order so that a
// doc_id is only pushed when it differs from the last one pushed.
type itemSupport struct {
	docIDs []uint32
}

func (e *prefixSpanEngine) mineRecursive(db []Projection, prefix []uint32, support uint32) {
	if e.cancel.Cancelled() {
		return
	}

	itemSupports := make(map[uint32]*itemSupport)
	for _, proj := range db {
		doc, err := e.corpus.Doc(proj.DocID)
		if err != nil {
			log.Errorf("prefixspan: read doc %d: %v", proj.DocID, err)
			continue
		}
		if int(proj.Pos) >= len(doc) {
			continue
		}
		token := doc[proj.Pos]
		is, ok := itemSupports[token]
		if !ok {
			is = &itemSupport{}
			itemSupports[token] = is
		}
		if len(is.docIDs) == 0 || is.docIDs[len(is.docIDs)-1] != proj.DocID {
			is.docIDs = append(is.docIDs, proj.DocID)
		}
	}

	hasFrequentExtension := false
	hasExtensionWithSameSupport := false
	for _, is := range itemSupports {
		s := uint32(len(is.docIDs))
		if s >= e.minDocs {
			hasFrequentExtension = true
			if s == support {
				hasExtensionWithSameSupport = true
			}
		}
	}

	shouldOutput := false
	if uint32(len(prefix)) >= e.minLength {
		switch e.mode {
		case ModeAll:
			shouldOutput = true
		case ModeMaximal:
			shouldOutput = !hasFrequentExtension
		case ModeClosed:
			shouldOutput = !hasExtensionWithSameSupport
		}
	}

	if shouldOutput {
		uniqueDocs := make(map[uint32]struct{})
		for _, proj := range db {
			uniqueDocs[proj.DocID] = struct{}{}
		}
		occs := make([]Occurrence, 0, len(uniqueDocs))
		for d := range uniqueDocs {
			occs = append(occs, Occurrence{DocID: d})
		}
		tokens := make([]uint32, len(prefix))
		copy(tokens, prefix)
		e.results = append(e.results, Phrase{Tokens: tokens, Support: support, Occs: occs})
	}

	for token, is := range itemSupports {
		s := uint32(len(is.docIDs))
		if s < e.minDocs {
			continue
		}

		nextDB := make([]Projection, 0, len(db))
		for _, proj := range db {
			doc, err := e.corpus.Doc(proj.DocID)
			if err != nil {
				continue
			}
			if int(proj.Pos) >= len(doc) || doc[proj.Pos] != token {
				continue
			}
			// A projection may land one past the end of its document: it
			// still backs the new prefix's occurrences, and the counting
			// loop above skips it when looking for extensions.
			nextDB = append(nextDB, Projection{DocID: proj.DocID, Pos: proj.Pos + 1, Origin: proj.Origin})
		}

		if len(nextDB) == 0 {
			continue
		}

		prefix = append(prefix, token)
		e.mineRecursive(nextDB, prefix, s)
		prefix = prefix[:len(prefix)-1]
	}
}
