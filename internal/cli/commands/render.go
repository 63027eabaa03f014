package commands

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

// resultSet is a fully scanned query result. Scanning up front decouples
// rendering from the live rows, so a renderer can make multiple passes and
// report row counts.
type resultSet struct {
	cols []string
	rows [][]any
}

// scanRows drains rows into a resultSet. Byte slices are converted to
// strings for readability.
func scanRows(rows *sql.Rows) (*resultSet, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	rs := &resultSet{cols: cols}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		rs.rows = append(rs.rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rs, nil
}

func renderResults(w io.Writer, rows *sql.Rows, format string) error {
	rs, err := scanRows(rows)
	if err != nil {
		return err
	}

	switch format {
	case "json":
		return rs.renderJSON(w)
	case "csv":
		return rs.renderCSV(w)
	case "md", "markdown":
		return rs.renderMarkdown(w)
	default:
		return rs.renderTable(w)
	}
}

// cell formats one value for the text renderers. NULL stays literal.
func (rs *resultSet) cell(row, col int) string {
	v := rs.rows[row][col]
	if v == nil {
		return "NULL"
	}
	return fmt.Sprintf("%v", v)
}

func (rs *resultSet) renderTable(w io.Writer) error {
	if len(rs.rows) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := make(table.Row, len(rs.cols))
	for i, col := range rs.cols {
		header[i] = col
	}
	t.AppendHeader(header)

	for i := range rs.rows {
		row := make(table.Row, len(rs.cols))
		for j := range rs.cols {
			row[j] = rs.cell(i, j)
		}
		t.AppendRow(row)
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "(%d rows)\n", len(rs.rows))
	return nil
}

func (rs *resultSet) renderJSON(w io.Writer) error {
	out := make([]map[string]any, 0, len(rs.rows))
	for _, row := range rs.rows {
		m := make(map[string]any, len(rs.cols))
		for i, col := range rs.cols {
			m[col] = row[i]
		}
		out = append(out, m)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func (rs *resultSet) renderCSV(w io.Writer) error {
	_, _ = fmt.Fprintln(w, strings.Join(rs.cols, ","))

	for i := range rs.rows {
		fields := make([]string, len(rs.cols))
		for j := range rs.cols {
			fields[j] = escapeCSV(rs.cell(i, j))
		}
		_, _ = fmt.Fprintln(w, strings.Join(fields, ","))
	}
	return nil
}

func (rs *resultSet) renderMarkdown(w io.Writer) error {
	if len(rs.rows) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(rs.cols, " | "))

	seps := make([]string, len(rs.cols))
	for i := range seps {
		seps[i] = "---"
	}
	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(seps, " | "))

	for i := range rs.rows {
		fields := make([]string, len(rs.cols))
		for j := range rs.cols {
			fields[j] = rs.cell(i, j)
		}
		_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(fields, " | "))
	}
	return nil
}

func escapeCSV(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
