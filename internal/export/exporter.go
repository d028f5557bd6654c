package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/harrison/ethogram/internal/filelock"
)

// Supported export formats
const (
	FormatXLSX     = "xlsx"
	FormatCSV      = "csv"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

// extensions maps each format to the file extension written for it
var extensions = map[string]string{
	FormatXLSX:     ".xlsx",
	FormatCSV:      ".csv",
	FormatJSON:     ".json",
	FormatMarkdown: ".md",
	FormatHTML:     ".html",
}

// Exporter defines the interface for rendering a table
type Exporter interface {
	Export(tab Tabular) ([]byte, error)
}

// XLSXExporter writes a single-sheet workbook with numeric cells
type XLSXExporter struct{}

// Export renders tab as an .xlsx workbook
func (xe *XLSXExporter) Export(tab Tabular) ([]byte, error) {
	if tab == nil {
		return nil, fmt.Errorf("table cannot be nil")
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := sheetName(tab.Title())
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name worksheet: %w", err)
	}

	header := make([]interface{}, 0, len(tab.Header()))
	for _, h := range tab.Header() {
		header = append(header, h)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range tab.Rows() {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// sheetName strips characters Excel rejects and applies the 31 rune limit
func sheetName(title string) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return -1
		}
		return r
	}, title)
	if runes := []rune(name); len(runes) > 31 {
		name = string(runes[:31])
	}
	if name == "" {
		return "Sheet1"
	}
	return name
}

// CSVExporter writes the header followed by one record per row
type CSVExporter struct{}

// Export renders tab as CSV
func (ce *CSVExporter) Export(tab Tabular) ([]byte, error) {
	if tab == nil {
		return nil, fmt.Errorf("table cannot be nil")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(tab.Header()); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range tab.Rows() {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = formatCell(v)
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// JSONExporter writes {"title", "columns", "rows"} with rows keyed by header
type JSONExporter struct {
	Pretty bool // Enable pretty printing with indentation
}

type jsonTable struct {
	Title   string                   `json:"title"`
	Columns []string                 `json:"columns"`
	Rows    []map[string]interface{} `json:"rows"`
}

// Export renders tab as JSON
func (je *JSONExporter) Export(tab Tabular) ([]byte, error) {
	if tab == nil {
		return nil, fmt.Errorf("table cannot be nil")
	}

	header := tab.Header()
	out := jsonTable{Title: tab.Title(), Columns: header, Rows: make([]map[string]interface{}, 0)}
	for _, row := range tab.Rows() {
		obj := make(map[string]interface{}, len(header))
		for i, h := range header {
			if i < len(row) {
				obj[h] = row[i]
			}
		}
		out.Rows = append(out.Rows, obj)
	}

	var data []byte
	var err error
	if je.Pretty {
		data, err = json.MarshalIndent(out, "", "  ")
	} else {
		data, err = json.Marshal(out)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return data, nil
}

// MarkdownExporter writes a heading and a pipe table
type MarkdownExporter struct{}

// Export renders tab as Markdown
func (me *MarkdownExporter) Export(tab Tabular) ([]byte, error) {
	if tab == nil {
		return nil, fmt.Errorf("table cannot be nil")
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", tab.Title()))

	header := tab.Header()
	sb.WriteString("|")
	for _, h := range header {
		sb.WriteString(" " + escapeMarkdown(h) + " |")
	}
	sb.WriteString("\n|")
	for range header {
		sb.WriteString("---|")
	}
	sb.WriteString("\n")

	for _, row := range tab.Rows() {
		sb.WriteString("|")
		for _, v := range row {
			sb.WriteString(" " + escapeMarkdown(formatCell(v)) + " |")
		}
		sb.WriteString("\n")
	}

	return []byte(sb.String()), nil
}

// escapeMarkdown keeps cell text from breaking the table layout
func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

// HTMLExporter renders the Markdown table through goldmark
type HTMLExporter struct{}

// Export renders tab as a standalone HTML document
func (he *HTMLExporter) Export(tab Tabular) ([]byte, error) {
	source, err := (&MarkdownExporter{}).Export(tab)
	if err != nil {
		return nil, err
	}

	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	var body bytes.Buffer
	if err := md.Convert(source, &body); err != nil {
		return nil, fmt.Errorf("failed to render HTML: %w", err)
	}

	var doc bytes.Buffer
	doc.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	doc.WriteString(fmt.Sprintf("<title>%s</title>\n", html.EscapeString(tab.Title())))
	doc.WriteString("</head>\n<body>\n")
	doc.Write(body.Bytes())
	doc.WriteString("</body>\n</html>\n")
	return doc.Bytes(), nil
}

// NormalizeFormat lowercases a format name and resolves the md alias
func NormalizeFormat(format string) string {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "md" {
		return FormatMarkdown
	}
	return format
}

// NewExporter returns the exporter for format
func NewExporter(format string) (Exporter, error) {
	switch NormalizeFormat(format) {
	case FormatXLSX:
		return &XLSXExporter{}, nil
	case FormatCSV:
		return &CSVExporter{}, nil
	case FormatJSON:
		return &JSONExporter{Pretty: true}, nil
	case FormatMarkdown:
		return &MarkdownExporter{}, nil
	case FormatHTML:
		return &HTMLExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: xlsx, csv, json, markdown, html)", format)
	}
}

// OutputPath joins dir and name, replacing the extension of name with the
// one written for format
func OutputPath(dir, name, format string) string {
	ext, ok := extensions[NormalizeFormat(format)]
	if !ok {
		return filepath.Join(dir, name)
	}
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	return filepath.Join(dir, stem+ext)
}

// ExportToFile renders tab and atomically replaces path with the result
func ExportToFile(tab Tabular, path string, format string) error {
	if tab == nil {
		return fmt.Errorf("table cannot be nil")
	}
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	exporter, err := NewExporter(format)
	if err != nil {
		return err
	}

	data, err := exporter.Export(tab)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if err := filelock.LockAndWrite(path, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
