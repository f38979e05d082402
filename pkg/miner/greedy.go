package miner

import (
	"sort"

	"github.com/charmbracelet/log"
	"github.com/phrasemine/corpusminer/pkg/corpus"
)

// seedKey is a fixed-length ngram used as a map key. Go map keys must be
// comparable, so candidate ngrams are collected into arrays sized to the
// caller's ngrams parameter via a string-encoded key instead of a slice.
type seedKey string

func encodeSeed(ids []uint32) seedKey {
	b := make([]byte, 4*len(ids))
	for i, id := range ids {
		b[4*i] = byte(id)
		b[4*i+1] = byte(id >> 8)
		b[4*i+2] = byte(id >> 16)
		b[4*i+3] = byte(id >> 24)
	}
	return seedKey(b)
}

// RunGreedy implements the seed-and-extend "max-phrase" miner of spec
// section 4.D: gather all ngrams-grams, filter by support >= minDocs, sort
// by support descending, then greedily extend each surviving candidate with
// its highest-support contiguous successor, marking consumed positions so
// later candidates skip work already claimed.
func RunGreedy(c *corpus.Corpus, minDocs, ngrams int, cancel *Canceler) ([]Phrase, error) {
	log.Debugf("greedy: gathering %d-gram seeds", ngrams)
	seeds := make(map[seedKey][]Occurrence)
	for d := 0; d < c.Len(); d++ {
		doc, err := c.Doc(uint32(d))
		if err != nil {
			return nil, err
		}
		if len(doc) < ngrams {
			continue
		}
		for p := 0; p <= len(doc)-ngrams; p++ {
			key := encodeSeed(doc[p : p+ngrams])
			seeds[key] = append(seeds[key], Occurrence{DocID: uint32(d), Pos: uint32(p)})
		}
	}

	candidates := make([]Phrase, 0, len(seeds))
	for key, occs := range seeds {
		support := distinctDocSupport(occs)
		if support >= uint32(minDocs) {
			tokens := decodeSeed(key, ngrams)
			candidates = append(candidates, Phrase{Tokens: tokens, Support: support, Occs: occs})
		}
	}
	seeds = nil
	log.Debugf("greedy: %d candidates pass support filter", len(candidates))

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Support > candidates[j].Support
	})

	processed := make([][]bool, c.Len())
	for d := 0; d < c.Len(); d++ {
		doc, err := c.Doc(uint32(d))
		if err != nil {
			return nil, err
		}
		processed[d] = make([]bool, len(doc))
	}

	var final []Phrase
	for idx := range candidates {
		if cancel.Cancelled() {
			log.Debug("greedy: cancellation observed, stopping expansion")
			break
		}

		cand := &candidates[idx]
		if allProcessed(processed, cand.Occs) {
			continue
		}

		if err := extend(c, cand, minDocs, processed); err != nil {
			return nil, err
		}

		markProcessed(processed, cand.Occs, len(cand.Tokens))
		final = append(final, *cand)

		if len(final)%1000 == 0 {
			log.Debugf("greedy: progress %d/%d candidates checked, %d mined", idx, len(candidates), len(final))
		}
	}

	return final, nil
}

func decodeSeed(key seedKey, n int) []uint32 {
	b := []byte(key)
	tokens := make([]uint32, n)
	for i := 0; i < n; i++ {
		tokens[i] = uint32(b[4*i]) | uint32(b[4*i+1])<<8 | uint32(b[4*i+2])<<16 | uint32(b[4*i+3])<<24
	}
	return tokens
}

func distinctDocSupport(occs []Occurrence) uint32 {
	seen := make(map[uint32]struct{}, len(occs))
	for _, o := range occs {
		seen[o.DocID] = struct{}{}
	}
	return uint32(len(seen))
}

// allProcessed reports whether every occurrence of cand is already marked
// consumed, in which case the candidate contributes nothing new.
func allProcessed(processed [][]bool, occs []Occurrence) bool {
	for _, o := range occs {
		if !processed[o.DocID][o.Pos] {
			return false
		}
	}
	return true
}

// extend greedily grows cand in place by repeatedly picking the contiguous
// successor token with the highest distinct-document support, stopping once
// no successor reaches minDocs. Ties pick the last-scanned bucket.
func extend(c *corpus.Corpus, cand *Phrase, minDocs int, processed [][]bool) error {
	for {
		k := uint32(len(cand.Tokens))
		buckets := make(map[uint32][]Occurrence)
		for _, o := range cand.Occs {
			doc, err := c.Doc(o.DocID)
			if err != nil {
				return err
			}
			np := o.Pos + k
			if int(np) < len(doc) {
				buckets[doc[np]] = append(buckets[doc[np]], o)
			}
		}

		var bestWord uint32
		var bestOccs []Occurrence
		var maxSupport uint32
		for word, occs := range buckets {
			support := distinctDocSupport(occs)
			if support >= uint32(minDocs) && support >= maxSupport {
				maxSupport = support
				bestWord = word
				bestOccs = occs
			}
		}

		if maxSupport == 0 {
			return nil
		}
		cand.Tokens = append(cand.Tokens, bestWord)
		cand.Occs = bestOccs
		cand.Support = maxSupport
	}
}

func markProcessed(processed [][]bool, occs []Occurrence, length int) {
	for _, o := range occs {
		for i := 0; i < length; i++ {
			p := int(o.Pos) + i
			if p < len(processed[o.DocID]) {
				processed[o.DocID][p] = true
			}
		}
	}
}
