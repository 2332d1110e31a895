package store

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/ovsand/footstat/tabular"
)

// WriteCSV writes a normalized table as CSV: field names first, then the
// rows in order. Short rows are padded so every record has the full width.
func WriteCSV(w io.Writer, t tabular.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Fields); err != nil {
		return fmt.Errorf("store: write csv header: %w", err)
	}
	for _, row := range t.Rows {
		if len(row) < len(t.Fields) {
			padded := make([]string, len(t.Fields))
			copy(padded, row)
			row = padded
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("store: write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("store: flush csv: %w", err)
	}
	return nil
}
