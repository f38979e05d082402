package corpus

import (
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/phrasemine/corpusminer/pkg/dictionary"
	"github.com/phrasemine/corpusminer/pkg/tokenizer"
)

// LoadOptions configures a Corpus load: directory-walk and CSV parameters,
// the parallel-tokenization worker cap, and the in-memory/on-disk split.
type LoadOptions struct {
	Sampling   float64 // fraction of input documents to retain, [0,1]
	Mask       string  // file mask for directory mode; ignored for CSV mode
	CSVDelim   byte    // delimiter for CSV mode
	Threads    int     // worker cap for Phase I; 0 = implementation default
	InMemory   bool    // force full in-memory corpus
	Preload    bool    // populate the on-disk cache during load
	CacheSize  int     // max entries in the on-disk doc cache
	BinPath    string  // corpus.bin path when !InMemory
	RandSource *rand.Rand // optional seed override for deterministic tests
}

func (o LoadOptions) rng() *rand.Rand {
	if o.RandSource != nil {
		return o.RandSource
	}
	return rand.New(rand.NewSource(rand.Int63()))
}

// rawInput is one unencoded input unit: either a file's bytes (directory
// mode) or a pseudo-document string (CSV mode), paired with the source
// identifier it will be recorded under.
type rawInput struct {
	sourceID string
	bytes    []byte // directory mode
	text     string // CSV mode
	isText   bool
}

// LoadDirectory walks root recursively, keeps files matching the given
// mask, shuffles and truncates by sampling rate, then runs the shared
// Phase I/II pipeline over the surviving files.
func LoadDirectory(ctx context.Context, root string, opts LoadOptions) (*Corpus, error) {
	log.Debugf("corpus: scanning directory %s (mask=%q)", root, opts.Mask)
	var paths []string
	err := filepath.Walk(root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			log.Warnf("corpus: walk error at %s: %v", p, err)
			return nil
		}
		if info.IsDir() {
			return nil
		}
		if matchesMask(p, opts.Mask) {
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	total := len(paths)
	opts.rng().Shuffle(len(paths), func(i, j int) { paths[i], paths[j] = paths[j], paths[i] })
	paths = truncateBySampling(paths, opts.Sampling)
	log.Infof("corpus: found %d files, processing %d (sampling %.1f%%)", total, len(paths), opts.Sampling*100)

	inputs := make([]rawInput, len(paths))
	for i, p := range paths {
		inputs[i] = rawInput{sourceID: p}
	}

	return loadPipeline(ctx, inputs, opts, func(in rawInput) []byte {
		data, err := os.ReadFile(in.sourceID)
		if err != nil {
			log.Warnf("corpus: skipping unreadable file %s: %v", in.sourceID, err)
			return nil
		}
		return data
	})
}

// matchesMask supports three shapes: empty or "*" matches everything,
// "*.ext" matches by extension, anything else is an exact filename match.
func matchesMask(path, mask string) bool {
	if mask == "" || mask == "*" {
		return true
	}
	if strings.HasPrefix(mask, "*.") {
		return filepath.Ext(path) == mask[1:]
	}
	return filepath.Base(path) == mask
}

func truncateBySampling(items []string, sampling float64) []string {
	n := int(float64(len(items)) * sampling)
	if n > len(items) {
		n = len(items)
	}
	if n < 0 {
		n = 0
	}
	return items[:n]
}

// LoadCSV parses path as CSV: each row's fields are concatenated with
// single spaces into one pseudo-document string, and source identifiers
// are synthetic row_<i> names assigned after sampling.
func LoadCSV(ctx context.Context, path string, opts LoadOptions) (*Corpus, error) {
	log.Debugf("corpus: loading CSV %s (delim=%q)", path, opts.CSVDelim)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	rows := scanCSVRows(data, opts.CSVDelim)
	if opts.Sampling < 1.0 {
		opts.rng().Shuffle(len(rows), func(i, j int) { rows[i], rows[j] = rows[j], rows[i] })
		n := int(float64(len(rows)) * opts.Sampling)
		if n > len(rows) {
			n = len(rows)
		}
		rows = rows[:n]
	}

	inputs := make([]rawInput, len(rows))
	for i, r := range rows {
		inputs[i] = rawInput{sourceID: "row_" + strconv.Itoa(i), text: r, isText: true}
	}

	return loadPipeline(ctx, inputs, opts, func(in rawInput) []byte {
		return []byte(in.text)
	})
}

// loadPipeline runs Phase I (parallel tokenization) and Phase II
// (sequential dictionary-building encoding) shared by both loaders.
func loadPipeline(ctx context.Context, inputs []rawInput, opts LoadOptions, fetch func(rawInput) []byte) (*Corpus, error) {
	n := len(inputs)
	rawDocs := make([][]string, n)

	log.Debug("corpus: phase I, parallel tokenization")
	eg, egCtx := errgroup.WithContext(ctx)
	if opts.Threads > 0 {
		eg.SetLimit(opts.Threads)
	}
	for i := 0; i < n; i++ {
		i := i
		eg.Go(func() error {
			select {
			case <-egCtx.Done():
				return egCtx.Err()
			default:
			}
			raw := fetch(inputs[i])
			if raw == nil {
				return nil
			}
			rawDocs[i] = tokenizer.Tokenize(raw)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	log.Debug("corpus: phase II, sequential dictionary build and encoding")
	dict := dictionary.New()
	filePaths := make([]string, n)
	docLengths := make([]uint32, n)

	var docs []Document
	var bw *binWriter
	var offsets []int64
	if opts.InMemory {
		docs = make([]Document, n)
	} else {
		var err error
		bw, err = newBinWriter(opts.BinPath)
		if err != nil {
			return nil, err
		}
		offsets = make([]int64, n)
	}

	for i := 0; i < n; i++ {
		filePaths[i] = inputs[i].sourceID
		words := rawDocs[i]
		encoded := make(Document, len(words))
		for j, w := range words {
			id := dict.Intern(w)
			encoded[j] = id
			dict.BumpDF(id, uint32(i))
		}
		docLengths[i] = uint32(len(encoded))
		rawDocs[i] = nil

		if opts.InMemory {
			docs[i] = encoded
		} else {
			off, err := bw.Append(encoded)
			if err != nil {
				return nil, err
			}
			offsets[i] = off
		}
	}

	c := &Corpus{
		Dict:       dict,
		FilePaths:  filePaths,
		DocLengths: docLengths,
		InMemory:   opts.InMemory,
	}

	if opts.InMemory {
		c.Docs = docs
		return c, c.checkInvariants()
	}

	if err := bw.Close(); err != nil {
		return nil, err
	}
	store, err := newOnDiskStore(opts.BinPath, offsets, docLengths, opts.CacheSize)
	if err != nil {
		return nil, err
	}
	if opts.Preload {
		if err := store.Preload(); err != nil {
			return nil, err
		}
	}
	c.onDisk = store
	return c, c.checkInvariants()
}
