package corpus

// scanCSVRows is a lenient, RFC-4180-ish row scanner: fields are
// concatenated with a single space into one pseudo-document string per
// row rather than kept distinct, quoted fields support "" as an escaped
// quote, and an unterminated quote at EOF flushes whatever was collected
// as the final row instead of erroring. encoding/csv rejects that last
// case, so this is a small hand-rolled state machine instead.
func scanCSVRows(data []byte, delim byte) []string {
	var rows []string
	var row, field []byte
	inQuotes := false

	flushField := func() {
		if len(row) > 0 {
			row = append(row, ' ')
		}
		row = append(row, field...)
		field = field[:0]
	}

	i := 0
	for i < len(data) {
		c := data[i]
		if inQuotes {
			if c == '"' {
				if i+1 < len(data) && data[i+1] == '"' {
					field = append(field, '"')
					i++
				} else {
					inQuotes = false
				}
			} else {
				field = append(field, c)
			}
		} else {
			switch {
			case c == '"':
				inQuotes = true
			case c == delim:
				flushField()
			case c == '\n' || c == '\r':
				if len(row) > 0 || len(field) > 0 {
					flushField()
					rows = append(rows, string(row))
					row = row[:0]
				}
				if c == '\r' && i+1 < len(data) && data[i+1] == '\n' {
					i++
				}
			default:
				field = append(field, c)
			}
		}
		i++
	}

	if len(row) > 0 || len(field) > 0 {
		flushField()
		rows = append(rows, string(row))
	}

	return rows
}
