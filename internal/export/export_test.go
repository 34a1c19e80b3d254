// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/papers-list/pkg/types"
)

func sampleRows() []types.Row {
	return []types.Row{
		{
			Paper: types.Paper{ID: "38012345", Title: "Efficacy, of mRNA-1273", PublicationDate: "2023"},
			Classification: types.Classification{
				NonAcademicAuthors:  []string{"Jane Doe", "Ana Ruiz"},
				CompanyAffiliations: []string{"Moderna Therapeutics, Cambridge, MA"},
				CorrespondingEmail:  "jane.doe@modernatx.com",
			},
		},
		{
			Paper: types.Paper{ID: "5555", Title: "Academic only", PublicationDate: types.UnknownDate},
		},
	}
}

func TestRecord(t *testing.T) {
	rows := sampleRows()

	assert.Equal(t, []string{
		"38012345", "Efficacy, of mRNA-1273", "2023",
		"Jane Doe; Ana Ruiz", "Moderna Therapeutics, Cambridge, MA", "jane.doe@modernatx.com",
	}, Record(rows[0]))
	assert.Equal(t, []string{"5555", "Academic only", "Unknown", "", "", ""}, Record(rows[1]))
}

func TestResolveFormat(t *testing.T) {
	tests := []struct {
		path, format, want string
		wantErr            bool
	}{
		{"", "", FormatCSV, false},
		{"out.csv", "", FormatCSV, false},
		{"out.XLSX", "", FormatXLSX, false},
		{"out.json", "", FormatJSON, false},
		{"out.txt", "", FormatCSV, false},
		{"out.csv", "JSON", FormatJSON, false},
		{"out.csv", "parquet", "", true},
	}
	for _, tt := range tests {
		got, err := ResolveFormat(tt.path, tt.format)
		if tt.wantErr {
			assert.Error(t, err, "%s/%s", tt.path, tt.format)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s/%s", tt.path, tt.format)
	}
}

func TestCSVSink(t *testing.T) {
	var buf bytes.Buffer
	s, err := NewCSVSink(nopCloser{&buf})
	require.NoError(t, err)

	for _, r := range sampleRows() {
		require.NoError(t, s.Write(r))
	}
	require.NoError(t, s.Close())

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, Columns, records[0])
	assert.Equal(t, "Efficacy, of mRNA-1273", records[1][1])
	assert.Equal(t, "Jane Doe; Ana Ruiz", records[1][3])
	assert.Equal(t, []string{"5555", "Academic only", "Unknown", "", "", ""}, records[2])
}

func TestCSVSink_FlushesEachRow(t *testing.T) {
	var buf bytes.Buffer
	s, err := NewCSVSink(nopCloser{&buf})
	require.NoError(t, err)

	require.NoError(t, s.Write(sampleRows()[1]))
	// Visible before Close.
	assert.Contains(t, buf.String(), "5555,Academic only,Unknown,,,")
}

func TestJSONSink(t *testing.T) {
	var buf bytes.Buffer
	s := NewJSONSink(nopCloser{&buf})
	for _, r := range sampleRows() {
		require.NoError(t, s.Write(r))
	}
	require.NoError(t, s.Close())

	var got []jsonRow
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "38012345", got[0].PubmedID)
	assert.Equal(t, []string{"Jane Doe", "Ana Ruiz"}, got[0].NonAcademicAuthors)
	assert.Equal(t, []string{}, got[1].CompanyAffiliations)
	assert.Contains(t, buf.String(), `"non_academic_authors": []`)
}

func TestJSONSink_NoRows(t *testing.T) {
	var buf bytes.Buffer
	s := NewJSONSink(nopCloser{&buf})
	require.NoError(t, s.Close())
	assert.Equal(t, "[]\n", buf.String())
}

func TestXLSXSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "papers.xlsx")
	s := NewXLSXSink(path)
	for _, r := range sampleRows() {
		require.NoError(t, s.Write(r))
	}
	require.NoError(t, s.Close())

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(xlsxSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Columns, rows[0])
	assert.Equal(t, "Jane Doe; Ana Ruiz", rows[1][3])
	assert.Equal(t, "5555", rows[2][0])
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(filepath.Join(dir, "out.json"), "", nil)
	require.NoError(t, err)
	assert.IsType(t, &JSONSink{}, s)
	require.NoError(t, s.Close())

	var stdout bytes.Buffer
	s, err = Open("", "", &stdout)
	require.NoError(t, err)
	assert.IsType(t, &CSVSink{}, s)
	require.NoError(t, s.Close())
	assert.Contains(t, stdout.String(), "PubmedID,Title")

	_, err = Open("", FormatXLSX, &stdout)
	assert.Error(t, err)

	s, err = Open(filepath.Join(dir, "out.csv"), "", nil)
	require.NoError(t, err)
	require.NoError(t, s.Write(sampleRows()[0]))
	require.NoError(t, s.Close())
	data, err := os.ReadFile(filepath.Join(dir, "out.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "38012345")
}
