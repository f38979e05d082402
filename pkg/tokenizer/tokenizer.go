// Package tokenizer turns raw document bytes into lowercase alphanumeric
// tokens. It has no dependency on the rest of the module and performs no
// I/O; callers hand it bytes, it hands back strings.
package tokenizer

// Tokenize splits raw bytes into a sequence of lowercase ASCII alphanumeric
// tokens. It auto-detects a UTF-16 byte-order mark and falls through to
// byte-wise ASCII scanning otherwise.
func Tokenize(raw []byte) []string {
	if le, be, ok := detectUTF16BOM(raw); ok {
		units := decodeUTF16(raw[2:], le, be)
		return tokenizeUnits(units)
	}
	return tokenizeASCII(raw)
}

func detectUTF16BOM(raw []byte) (le, be, ok bool) {
	if len(raw) < 2 {
		return false, false, false
	}
	if raw[0] == 0xFF && raw[1] == 0xFE {
		return true, false, true
	}
	if raw[0] == 0xFE && raw[1] == 0xFF {
		return false, true, true
	}
	return false, false, false
}

// decodeUTF16 reassembles 16-bit code units from raw bytes per the detected
// byte order. An odd trailing byte is dropped silently rather than treated
// as an error.
func decodeUTF16(raw []byte, le, be bool) []uint16 {
	n := len(raw) / 2
	units := make([]uint16, n)
	for i := 0; i < n; i++ {
		hi, lo := raw[2*i], raw[2*i+1]
		if le {
			units[i] = uint16(lo)<<8 | uint16(hi)
		} else {
			units[i] = uint16(hi)<<8 | uint16(lo)
		}
	}
	return units
}

// tokenizeUnits treats each 16-bit code unit independently: surrogate
// pairs are not reassembled, they are delimiters like any other
// non-ASCII-alphanumeric unit.
func tokenizeUnits(units []uint16) []string {
	var tokens []string
	var cur []byte
	for _, u := range units {
		if u < 0x80 && isAlnumByte(byte(u)) {
			cur = append(cur, lowerByte(byte(u)))
			continue
		}
		if len(cur) > 0 {
			tokens = append(tokens, string(cur))
			cur = nil
		}
	}
	if len(cur) > 0 {
		tokens = append(tokens, string(cur))
	}
	return tokens
}

// tokenizeASCII scans raw bytes directly; only ASCII alphanumeric bytes
// survive into a token, everything else (including non-ASCII UTF-8
// continuation bytes) is a delimiter.
func tokenizeASCII(raw []byte) []string {
	var tokens []string
	var cur []byte
	for _, b := range raw {
		if isAlnumByte(b) {
			cur = append(cur, lowerByte(b))
			continue
		}
		if len(cur) > 0 {
			tokens = append(tokens, string(cur))
			cur = nil
		}
	}
	if len(cur) > 0 {
		tokens = append(tokens, string(cur))
	}
	return tokens
}

func isAlnumByte(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func lowerByte(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b - 'A' + 'a'
	}
	return b
}
