package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Supported formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Table is a titled grid of already formatted cells
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// Report is one command's result: the raw value for JSON and its tables for
// everything else
type Report struct {
	RunID  string
	Data   any
	Tables []Table
}

// ValidateFormat rejects unknown output formats
func ValidateFormat(format string) error {
	switch format {
	case FormatText, FormatJSON, FormatCSV, FormatXLSX:
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s (expected: text, json, csv, or xlsx)", format)
	}
}

// Write renders the report to w in the given format
func Write(w io.Writer, format string, report Report) error {
	switch format {
	case FormatText:
		return writeText(w, report)
	case FormatJSON:
		return writeJSON(w, report)
	case FormatCSV:
		return writeCSV(w, report)
	case FormatXLSX:
		return WriteXLSX(w, report)
	default:
		return ValidateFormat(format)
	}
}

// WriteFile renders the report to path, or to stdout when path is empty
func WriteFile(path, format string, report Report) error {
	if path == "" {
		if format == FormatXLSX {
			return fmt.Errorf("xlsx output requires an output file")
		}
		return Write(os.Stdout, format, report)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", path, err)
	}
	if err := Write(file, format, report); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func writeText(w io.Writer, report Report) error {
	for i, table := range report.Tables {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s\n%s\n\n", table.Title, strings.Repeat("=", len(table.Title)))
		if len(table.Rows) == 0 {
			fmt.Fprintln(w, "(none)")
			continue
		}

		widths := columnWidths(table)
		printRow(w, widths, table.Headers)
		separators := make([]string, len(widths))
		for j, width := range widths {
			separators[j] = strings.Repeat("-", width)
		}
		printRow(w, widths, separators)
		for _, row := range table.Rows {
			printRow(w, widths, row)
		}
	}
	if report.RunID != "" {
		fmt.Fprintf(w, "\nRun: %s\n", report.RunID)
	}
	return nil
}

func columnWidths(table Table) []int {
	widths := make([]int, len(table.Headers))
	for i, h := range table.Headers {
		widths[i] = len(h)
	}
	for _, row := range table.Rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	return widths
}

func printRow(w io.Writer, widths []int, cells []string) {
	parts := make([]string, len(widths))
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		parts[i] = fmt.Sprintf("%-*s", width, cell)
	}
	fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, " "), " "))
}

func writeJSON(w io.Writer, report Report) error {
	payload := struct {
		RunID string `json:"run_id,omitempty"`
		Data  any    `json:"data"`
	}{report.RunID, report.Data}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(payload); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSV writes every table one after another, separated by a blank line
func writeCSV(w io.Writer, report Report) error {
	writer := csv.NewWriter(w)
	for i, table := range report.Tables {
		if i > 0 {
			if err := writer.Write([]string{}); err != nil {
				return fmt.Errorf("failed to write CSV: %w", err)
			}
		}
		if err := writer.Write(table.Headers); err != nil {
			return fmt.Errorf("failed to write CSV header: %w", err)
		}
		if err := writer.WriteAll(table.Rows); err != nil {
			return fmt.Errorf("failed to write CSV rows: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}
