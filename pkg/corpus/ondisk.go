package corpus

import (
	"encoding/binary"
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

// onDiskStore backs a Corpus loaded in on-disk mode: documents live in a
// flat corpus.bin file addressed by a parallel offsets/lengths table, with
// a bounded FIFO-eviction cache in front of random-access reads.
type onDiskStore struct {
	path    string
	offsets []int64
	lengths []uint32

	mu       sync.Mutex
	file     *os.File
	cache    map[uint32]Document
	order    []uint32 // insertion order, oldest first; capacity-bounded FIFO eviction
	capacity int
}

func newOnDiskStore(path string, offsets []int64, lengths []uint32, capacity int) (*onDiskStore, error) {
	if err := ValidateBinFile(path, offsets, lengths); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("corpus: open %s: %w", path, err)
	}
	if capacity <= 0 {
		capacity = 1000
	}
	return &onDiskStore{
		path:     path,
		offsets:  offsets,
		lengths:  lengths,
		file:     f,
		cache:    make(map[uint32]Document, capacity),
		capacity: capacity,
	}, nil
}

// Close releases the underlying file handle.
func (s *onDiskStore) Close() error {
	return s.file.Close()
}

// Preload reads every document into the cache up to its capacity. Once
// the cache is full, remaining documents are left to be faulted in by
// Read on first access.
func (s *onDiskStore) Preload() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for d := range s.lengths {
		if len(s.cache) >= s.capacity {
			log.Debugf("corpus: preload stopped at capacity %d of %d documents", s.capacity, len(s.lengths))
			break
		}
		doc, err := s.readLocked(uint32(d))
		if err != nil {
			return err
		}
		s.cache[uint32(d)] = doc
		s.order = append(s.order, uint32(d))
	}
	return nil
}

// Read returns document docID, serving from the bounded cache when present
// and otherwise reading it from disk and inserting it, evicting the oldest
// cached entry if the cache is already at capacity.
func (s *onDiskStore) Read(docID uint32) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if doc, ok := s.cache[docID]; ok {
		return doc, nil
	}

	doc, err := s.readLocked(docID)
	if err != nil {
		return nil, err
	}

	if len(s.cache) >= s.capacity && s.capacity > 0 {
		evict := s.order[0]
		s.order = s.order[1:]
		delete(s.cache, evict)
	}
	s.cache[docID] = doc
	s.order = append(s.order, docID)
	return doc, nil
}

func (s *onDiskStore) readLocked(docID uint32) (Document, error) {
	if int(docID) >= len(s.lengths) {
		return nil, fmt.Errorf("corpus: doc id %d out of range", docID)
	}
	n := s.lengths[docID]
	buf := make([]byte, 4*n)
	if n > 0 {
		if _, err := s.file.ReadAt(buf, s.offsets[docID]); err != nil {
			return nil, fmt.Errorf("corpus: read doc %d: %w", docID, err)
		}
	}
	doc := make(Document, n)
	for i := uint32(0); i < n; i++ {
		doc[i] = binary.LittleEndian.Uint32(buf[4*i:])
	}
	return doc, nil
}

// binWriter appends documents to corpus.bin sequentially during Phase II of
// loading, recording each document's starting byte offset as it goes.
type binWriter struct {
	file    *os.File
	offsets []int64
	cur     int64
}

func newBinWriter(path string) (*binWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("corpus: create %s: %w", path, err)
	}
	return &binWriter{file: f}, nil
}

// Append writes doc's token IDs as little-endian uint32s and returns the
// byte offset it was written at, to be stored in doc_offsets[d].
func (w *binWriter) Append(doc Document) (int64, error) {
	offset := w.cur
	w.offsets = append(w.offsets, offset)
	buf := make([]byte, 4*len(doc))
	for i, id := range doc {
		binary.LittleEndian.PutUint32(buf[4*i:], id)
	}
	n, err := w.file.Write(buf)
	if err != nil {
		return 0, fmt.Errorf("corpus: write doc: %w", err)
	}
	w.cur += int64(n)
	return offset, nil
}

func (w *binWriter) Close() error {
	return w.file.Close()
}
