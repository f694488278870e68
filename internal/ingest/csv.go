package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/baxromumarov/lead-sieve/internal/store"
)

// Required upload columns, matched case-insensitively against the header.
const (
	ColumnHeadline = "headline"
	ColumnPosition = "current_company_position"
)

var ErrMissingColumn = errors.New("missing required column")

// Table is a decoded upload: the original header and rows, with the two
// classified columns resolved to indexes.
type Table struct {
	Columns []string
	Rows    [][]string

	headlineIdx int
	positionIdx int
}

// Decode reads an uploaded CSV file. A UTF-8 BOM is tolerated. The header
// must name both required columns or decoding fails; rows shorter than the
// header are padded with empty cells so missing values never error.
func Decode(r io.Reader) (*Table, error) {
	cr := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty upload: %w", ErrMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	t := &Table{Columns: header, headlineIdx: -1, positionIdx: -1}
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case ColumnHeadline:
			if t.headlineIdx == -1 {
				t.headlineIdx = i
			}
		case ColumnPosition:
			if t.positionIdx == -1 {
				t.positionIdx = i
			}
		}
	}
	if t.headlineIdx == -1 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, ColumnHeadline)
	}
	if t.positionIdx == -1 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, ColumnPosition)
	}

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", len(t.Rows)+2, err)
		}
		for len(rec) < len(header) {
			rec = append(rec, "")
		}
		t.Rows = append(t.Rows, rec)
	}
	return t, nil
}

// Leads converts the table's rows to unclassified leads. The two matched
// fields are cleaned for matching; Fields keeps the raw row for export.
func (t *Table) Leads() []store.Lead {
	leads := make([]store.Lead, 0, len(t.Rows))
	for i, row := range t.Rows {
		leads = append(leads, store.Lead{
			RowNum:   i + 1,
			Headline: CleanField(row[t.headlineIdx]),
			Position: CleanField(row[t.positionIdx]),
			Fields:   row,
		})
	}
	return leads
}
