package tabular

// Label describes one column of a candidate header. Base is the innermost,
// most specific header text; Section is the outermost grouping text. Either
// may be empty. Single-level headers carry an empty Section.
type Label struct {
	Base    string
	Section string
}

// Candidate is a row-major grid parsed from one table element. It is an
// intermediate value: produced by discovery, compared by selection, consumed
// by flattening, never retained across calls.
type Candidate struct {
	// ID is the table element's id attribute, if any.
	ID string

	// Levels is the header depth: 1 for a flat header, 2+ for grouped
	// (section over metric) headers.
	Levels int

	Header []Label
	Rows   [][]string
}

// Size returns the (rows, cols) shape of the candidate.
func (c *Candidate) Size() (rows, cols int) {
	if c == nil {
		return 0, 0
	}
	return len(c.Rows), len(c.Header)
}

// Table is a normalized table: unique lowercase underscore-delimited field
// names paired with the surviving data rows, in original order.
type Table struct {
	Fields []string
	Rows   [][]string
}

// Empty reports whether the table has no schema and no rows.
func (t Table) Empty() bool {
	return len(t.Fields) == 0 && len(t.Rows) == 0
}
