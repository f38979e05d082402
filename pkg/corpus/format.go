package corpus

import (
	"fmt"
	"os"
)

// binFormatInfo describes the single on-disk format this package writes:
// a flat concatenation of little-endian uint32 token-ID streams with no
// header, footer, or checksum.
type binFormatInfo struct {
	Description string
	MinSize     int64
}

var corpusBinFormat = binFormatInfo{
	Description: "Concatenated uint32 token-ID corpus",
	MinSize:     0, // an all-empty-document corpus is a legal zero-byte file
}

// ValidateBinFile checks that path exists, is a regular file, and is large
// enough to hold the byte range implied by offsets/lengths, catching a
// truncated or mismatched corpus.bin before the miners start reading from
// it under the assumption that every offset is valid.
func ValidateBinFile(path string, offsets []int64, lengths []uint32) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("corpus: stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("corpus: %s is a directory, want %s", path, corpusBinFormat.Description)
	}
	if info.Size() < corpusBinFormat.MinSize {
		return fmt.Errorf("corpus: %s too small (%d bytes) for %s", path, info.Size(), corpusBinFormat.Description)
	}
	for d, off := range offsets {
		end := off + 4*int64(lengths[d])
		if end > info.Size() {
			return fmt.Errorf("corpus: doc %d spans [%d,%d) beyond file size %d", d, off, end, info.Size())
		}
	}
	return nil
}
