// Package miner implements the two mining strategies that operate over an
// encoded corpus.Corpus: the greedy seed-and-extend max-phrase miner and the
// contiguous PrefixSpan miner.
package miner

import "strings"

// Occurrence locates one contiguous match of a pattern in the corpus: the
// document it occurs in and the starting position within that document.
type Occurrence struct {
	DocID uint32
	Pos   uint32
}

// Projection is PrefixSpan's richer occurrence: it additionally remembers
// the pattern's starting position in DocID so a projected database entry
// can be traced back to its seed, even though the final emitted Phrase
// occurrences only need DocID.
type Projection struct {
	DocID  uint32
	Pos    uint32
	Origin uint32
}

// Phrase is a mined result: a sequence of token IDs together with its
// support (the count of distinct documents it occurs in) and the
// occurrences that support it.
type Phrase struct {
	Tokens  []uint32
	Support uint32
	Occs    []Occurrence
}

// Mode selects PrefixSpan's output filter.
type Mode int

const (
	ModeAll Mode = iota
	ModeClosed
	ModeMaximal
)

func (m Mode) String() string {
	switch m {
	case ModeAll:
		return "all"
	case ModeClosed:
		return "closed"
	case ModeMaximal:
		return "maximal"
	default:
		return "unknown"
	}
}

// ParseMode parses a mode name case-insensitively, defaulting callers to an
// error rather than silently picking a mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "all":
		return ModeAll, nil
	case "closed":
		return ModeClosed, nil
	case "maximal":
		return ModeMaximal, nil
	default:
		return ModeAll, errUnknownMode(s)
	}
}

type errUnknownMode string

func (e errUnknownMode) Error() string {
	return "miner: unknown mode " + string(e)
}
