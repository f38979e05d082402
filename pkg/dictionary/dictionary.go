// Package dictionary maintains the bijection between token strings and
// dense 32-bit token IDs used throughout the mining pipeline, plus the
// per-ID document-frequency counters computed during loading.
//
// The forward map (word -> ID) is backed by a patricia trie; the inverse
// map (ID -> word) is a plain slice since IDs are assigned densely in
// [0, size).
package dictionary

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Dictionary is the read-write store used during corpus loading. After
// loading completes it is treated as frozen: no caller mutates it again
// for the lifetime of a mining run.
type Dictionary struct {
	trie     *patricia.Trie
	idToWord []string
	df       []uint32
	lastSeen []uint32 // lastSeen[id] == docID+1 once id has been counted for docID
}

// New returns an empty Dictionary.
func New() *Dictionary {
	return &Dictionary{
		trie: patricia.NewTrie(),
	}
}

// Intern returns the existing ID for word, or assigns and returns a new one
// equal to the dictionary's size at the time of assignment. IDs are
// assigned in first-seen order and never reused or reordered.
func (d *Dictionary) Intern(word string) uint32 {
	if item := d.trie.Get(patricia.Prefix(word)); item != nil {
		return item.(uint32)
	}
	id := uint32(len(d.idToWord))
	d.trie.Insert(patricia.Prefix(word), id)
	d.idToWord = append(d.idToWord, word)
	d.df = append(d.df, 0)
	d.lastSeen = append(d.lastSeen, 0)
	return id
}

// Lookup returns the ID for word without assigning a new one.
func (d *Dictionary) Lookup(word string) (uint32, bool) {
	item := d.trie.Get(patricia.Prefix(word))
	if item == nil {
		return 0, false
	}
	return item.(uint32), true
}

// WordOf returns the string for id. The caller must ensure id was already
// assigned; out-of-range IDs are a programmer error, not a data error.
func (d *Dictionary) WordOf(id uint32) string {
	if int(id) >= len(d.idToWord) {
		log.Errorf("dictionary: WordOf called with unassigned id %d (size %d)", id, len(d.idToWord))
		return ""
	}
	return d.idToWord[id]
}

// Size returns the number of distinct tokens interned so far.
func (d *Dictionary) Size() int {
	return len(d.idToWord)
}

// DF returns the document frequency of id: the number of distinct
// documents in which it has been seen at least once.
func (d *Dictionary) DF(id uint32) uint32 {
	if int(id) >= len(d.df) {
		return 0
	}
	return d.df[id]
}

// BumpDF increments the document-frequency counter for id at most once per
// (id, docID) pair, using a parallel "last seen doc" marker. lastSeen
// stores docID+1 so the zero value means "never seen", distinguishing it
// from docID == 0.
func (d *Dictionary) BumpDF(id uint32, docID uint32) {
	if int(id) >= len(d.lastSeen) {
		log.Errorf("dictionary: BumpDF called with unassigned id %d", id)
		return
	}
	marker := docID + 1
	if d.lastSeen[id] != marker {
		d.df[id]++
		d.lastSeen[id] = marker
	}
}

// Validate checks the invariant that every assigned ID round-trips through
// the forward map. Only tests call it.
func (d *Dictionary) Validate() error {
	for id, word := range d.idToWord {
		got, ok := d.Lookup(word)
		if !ok || got != uint32(id) {
			return fmt.Errorf("dictionary: broken invariant for id %d (word %q): lookup=%d ok=%v", id, word, got, ok)
		}
	}
	return nil
}
