// Package corpus implements the integer-encoded, in-memory (or on-disk
// spilled) document collection that both miners operate over, plus the
// two loaders that build it: a directory walker and a CSV reader.
package corpus

import (
	"fmt"

	"github.com/phrasemine/corpusminer/pkg/dictionary"
)

// Document is a dense, ordered sequence of token IDs. Position indices are
// 0-based. A document with zero tokens is retained (it contributes no
// pattern of length >= 1, but it still occupies a doc_id and a file path).
type Document []uint32

// Corpus is the frozen result of loading: an ordered sequence of documents,
// a parallel sequence of source identifiers, and the dictionary that was
// built while encoding them. Once Load returns, nothing in Corpus is
// mutated again for the lifetime of a mining run.
type Corpus struct {
	Dict       *dictionary.Dictionary
	Docs       []Document // nil entries when InMemory is false; fetch via Doc()
	FilePaths  []string
	DocLengths []uint32
	InMemory   bool

	onDisk *onDiskStore // nil when InMemory
}

// Len returns the number of documents in the corpus.
func (c *Corpus) Len() int {
	return len(c.FilePaths)
}

// Doc returns the encoded document at docID, transparently reading it from
// the on-disk store (through the bounded cache) when the corpus was loaded
// in on-disk mode.
func (c *Corpus) Doc(docID uint32) (Document, error) {
	if c.InMemory {
		if int(docID) >= len(c.Docs) {
			return nil, fmt.Errorf("corpus: doc id %d out of range (len %d)", docID, len(c.Docs))
		}
		return c.Docs[docID], nil
	}
	if c.onDisk == nil {
		return nil, fmt.Errorf("corpus: on-disk store not initialized")
	}
	return c.onDisk.Read(docID)
}

// LoadAll forces the entire corpus into memory from the on-disk store. The
// CLI calls it before running the PrefixSpan miner in on-disk mode, so the
// recursion reads every document from memory rather than through the
// bounded cache.
func (c *Corpus) LoadAll() error {
	if c.InMemory {
		return nil
	}
	if c.onDisk == nil {
		return fmt.Errorf("corpus: on-disk store not initialized")
	}
	docs := make([]Document, c.Len())
	for i := range docs {
		doc, err := c.onDisk.Read(uint32(i))
		if err != nil {
			return fmt.Errorf("corpus: load_all_from_bin: %w", err)
		}
		docs[i] = doc
	}
	c.Docs = docs
	c.InMemory = true
	return nil
}

// Invariants. Checked once at the end of loading and by tests; not called
// on the hot path.
func (c *Corpus) checkInvariants() error {
	if len(c.FilePaths) != len(c.DocLengths) {
		return fmt.Errorf("corpus: |file_paths|=%d != |doc_lengths|=%d", len(c.FilePaths), len(c.DocLengths))
	}
	if c.InMemory && len(c.Docs) != len(c.FilePaths) {
		return fmt.Errorf("corpus: |docs|=%d != |file_paths|=%d", len(c.Docs), len(c.FilePaths))
	}
	return nil
}
