package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/harrison/ethogram/internal/behavior"
)

func sampleCumulative() *behavior.CumulativeTable {
	return &behavior.CumulativeTable{
		Columns: []string{"Social interaction", "Stationary"},
		Rows: []behavior.CumulativeRow{
			{ObservationID: "001", Treatment: "1", Durations: map[string]float64{"Social interaction": 10, "Stationary": 2.5}},
			{ObservationID: "002", Treatment: "1", Durations: map[string]float64{"Stationary": 4}},
		},
	}
}

func sampleAverage() *behavior.AverageTable {
	return &behavior.AverageTable{Rows: []behavior.AverageRow{
		{Treatment: "1", Category: "Stationary", TotalDuration: 6.5, MeanDuration: 3.25, TotalCount: 2, MeanCount: 1},
		{Treatment: "1", Category: "Trophallaxis"},
	}}
}

func TestCumulativeSheet(t *testing.T) {
	tab := CumulativeSheet(sampleCumulative())

	assert.Equal(t, []string{HeaderObservationID, HeaderTreatment, "Social interaction", "Stationary"}, tab.Header())
	rows := tab.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, []interface{}{"001", "1", 10.0, 2.5}, rows[0])
	assert.Equal(t, []interface{}{"002", "1", 0.0, 4.0}, rows[1], "absent behaviors read 0")
}

func TestAverageSheet(t *testing.T) {
	tab := AverageSheet(sampleAverage())

	assert.Len(t, tab.Header(), 6)
	assert.Equal(t, []interface{}{"1", "Stationary", 6.5, 3.25, 2, 1.0}, tab.Rows()[0])
}

func TestCSVExporter(t *testing.T) {
	data, err := (&CSVExporter{}).Export(CumulativeSheet(sampleCumulative()))
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"001", "1", "10", "2.5"}, records[1])
	assert.Equal(t, []string{"002", "1", "0", "4"}, records[2])
}

func TestJSONExporter(t *testing.T) {
	data, err := (&JSONExporter{Pretty: true}).Export(AverageSheet(sampleAverage()))
	require.NoError(t, err)

	var out struct {
		Title   string                   `json:"title"`
		Columns []string                 `json:"columns"`
		Rows    []map[string]interface{} `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "Treatment averages", out.Title)
	require.Len(t, out.Rows, 2)
	assert.Equal(t, "Stationary", out.Rows[0][HeaderCategory])
	assert.Equal(t, 3.25, out.Rows[0][HeaderMeanDuration])
	assert.Equal(t, 0.0, out.Rows[1][HeaderTotalCount])
}

func TestMarkdownExporter(t *testing.T) {
	table := sampleCumulative()
	table.Rows[0].Treatment = "a|b"

	data, err := (&MarkdownExporter{}).Export(CumulativeSheet(table))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal(t, "# Cumulative durations", lines[0])
	assert.Equal(t, "| Observation id | Treatment Condition | Social interaction | Stationary |", lines[2])
	assert.Equal(t, "|---|---|---|---|", lines[3])
	assert.Equal(t, `| 001 | a\|b | 10 | 2.5 |`, lines[4])
}

func TestHTMLExporter(t *testing.T) {
	data, err := (&HTMLExporter{}).Export(AverageSheet(sampleAverage()))
	require.NoError(t, err)

	html := string(data)
	assert.Contains(t, html, "<title>Treatment averages</title>")
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "<th>Behavior category</th>")
	assert.Contains(t, html, "<td>Trophallaxis</td>")
}

type titledTable struct{ title string }

func (t titledTable) Title() string         { return t.title }
func (t titledTable) Header() []string      { return []string{"A"} }
func (t titledTable) Rows() [][]interface{} { return [][]interface{}{{1}} }

func TestHTMLExporter_EscapesTitle(t *testing.T) {
	data, err := (&HTMLExporter{}).Export(titledTable{title: `Bees <hive "A"> & 'B'`})
	require.NoError(t, err)

	assert.Contains(t, string(data), "<title>Bees &lt;hive &#34;A&#34;&gt; &amp; &#39;B&#39;</title>")
}

func TestXLSXExporter(t *testing.T) {
	data, err := (&XLSXExporter{}).Export(CumulativeSheet(sampleCumulative()))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Cumulative durations"}, f.GetSheetList())
	rows, err := f.GetRows("Cumulative durations", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Observation id", rows[0][0])
	assert.Equal(t, []string{"001", "1", "10", "2.5"}, rows[1])
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "ab", sheetName("a/b"))
	assert.Equal(t, "Sheet1", sheetName("[]"))
	assert.Len(t, []rune(sheetName(strings.Repeat("x", 40))), 31)
}

func TestNewExporter(t *testing.T) {
	for _, format := range []string{"xlsx", "CSV", "json", "md", "markdown", "html"} {
		_, err := NewExporter(format)
		assert.NoError(t, err, format)
	}
	_, err := NewExporter("pdf")
	assert.Error(t, err)
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "mean_data.csv"), OutputPath("out", "mean_data.xlsx", "csv"))
	assert.Equal(t, filepath.Join("out", "mean_data.md"), OutputPath("out", "mean_data.xlsx", "md"))
	assert.Equal(t, filepath.Join("out", "table.xlsx"), OutputPath("out", "table", "xlsx"))
}

func TestExportToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "mean_data.json")

	require.NoError(t, ExportToFile(AverageSheet(sampleAverage()), path, "json"))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))

	assert.Error(t, ExportToFile(AverageSheet(sampleAverage()), path, "pdf"))
	assert.Error(t, ExportToFile(nil, path, "json"))
	assert.Error(t, ExportToFile(AverageSheet(sampleAverage()), "", "json"))
}
