package ingest

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baxromumarov/lead-sieve/internal/store"
)

func TestWriteCSV(t *testing.T) {
	columns := []string{"headline", "current_company_position", "company"}
	leads := []store.Lead{
		{RowNum: 1, Fields: []string{"Golang Developer", "CTO", "Acme, Inc."}},
		{RowNum: 2, Fields: []string{"Backend Engineer", "VP", "Beta"}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, columns, leads))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "headline,current_company_position,company", lines[0])
	assert.Equal(t, `Golang Developer,CTO,"Acme, Inc."`, lines[1])
	assert.Equal(t, "Backend Engineer,VP,Beta", lines[2])
}

func TestWriteCSVRoundTrip(t *testing.T) {
	data := "headline,current_company_position\nGolang Developer,CTO\n"

	table, err := Decode(strings.NewReader(data))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, table.Columns, table.Leads()))

	assert.Equal(t, data, buf.String())
}
