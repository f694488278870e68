package ingest

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/baxromumarov/lead-sieve/internal/store"
)

// WriteCSV writes a subset of a batch's leads back out under the batch's
// original header, preserving each row's stored column values.
func WriteCSV(w io.Writer, columns []string, leads []store.Lead) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, l := range leads {
		if err := cw.Write(l.Fields); err != nil {
			return fmt.Errorf("failed to write row %d: %w", l.RowNum, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
