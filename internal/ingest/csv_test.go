package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	data := "headline,current_company_position,company\n" +
		"Golang Developer,CTO,Acme\n" +
		"Recruiter,HR,Beta\n"

	table, err := Decode(strings.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, []string{"headline", "current_company_position", "company"}, table.Columns)
	require.Len(t, table.Rows, 2)

	leads := table.Leads()
	require.Len(t, leads, 2)
	assert.Equal(t, 1, leads[0].RowNum)
	assert.Equal(t, "Golang Developer", leads[0].Headline)
	assert.Equal(t, "CTO", leads[0].Position)
	assert.Equal(t, []string{"Golang Developer", "CTO", "Acme"}, leads[0].Fields)
}

func TestDecodeHeaderMatchIsCaseInsensitive(t *testing.T) {
	data := "Headline, Current_Company_Position \nGo Dev,VP Engineering\n"

	table, err := Decode(strings.NewReader(data))
	require.NoError(t, err)

	leads := table.Leads()
	require.Len(t, leads, 1)
	assert.Equal(t, "Go Dev", leads[0].Headline)
	assert.Equal(t, "VP Engineering", leads[0].Position)
}

func TestDecodeMissingColumn(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"no position column", "headline,company\nGo Dev,Acme\n"},
		{"no headline column", "current_company_position,company\nCTO,Acme\n"},
		{"empty file", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.data))
			assert.ErrorIs(t, err, ErrMissingColumn)
		})
	}
}

func TestDecodeToleratesBOM(t *testing.T) {
	data := "\uFEFFheadline,current_company_position\nGolang Developer,CTO\n"

	table, err := Decode(strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "headline", table.Columns[0])
}

func TestDecodePadsShortRows(t *testing.T) {
	data := "headline,current_company_position\nGolang Developer\n"

	table, err := Decode(strings.NewReader(data))
	require.NoError(t, err)

	leads := table.Leads()
	require.Len(t, leads, 1)
	assert.Equal(t, "Golang Developer", leads[0].Headline)
	assert.Equal(t, "", leads[0].Position)
}

func TestLeadsCleansMatchedFields(t *testing.T) {
	data := "headline,current_company_position\n" +
		"<b>CTO &amp; Founder</b>,  VP   of  Engineering \n"

	table, err := Decode(strings.NewReader(data))
	require.NoError(t, err)

	leads := table.Leads()
	require.Len(t, leads, 1)
	assert.Equal(t, "CTO & Founder", leads[0].Headline)
	assert.Equal(t, "VP of Engineering", leads[0].Position)
	// raw row is preserved for export
	assert.Equal(t, "<b>CTO &amp; Founder</b>", leads[0].Fields[0])
}

func TestCleanField(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text passthrough", "Golang Developer", "Golang Developer"},
		{"whitespace collapsed", "  Golang \t Developer ", "Golang Developer"},
		{"html stripped", "<p>Senior <em>Engineer</em></p>", "Senior Engineer"},
		{"entities decoded", "R&amp;D Lead", "R&D Lead"},
		{"bare ampersand kept", "Sales & Marketing", "Sales & Marketing"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanField(tt.in))
		})
	}
}
