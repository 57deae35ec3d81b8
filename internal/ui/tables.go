package ui

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Table collects rows and renders them with go-pretty
type Table struct {
	headers  []string
	rows     [][]string
	right    map[int]bool
	maxWidth int
}

// NewTable creates a new table
func NewTable(headers ...string) *Table {
	return &Table{
		headers:  headers,
		right:    map[int]bool{},
		maxWidth: 120,
	}
}

// SetMaxWidth sets the maximum width of any single column
func (t *Table) SetMaxWidth(width int) {
	t.maxWidth = width
}

// AlignRight right-aligns the zero-based column
func (t *Table) AlignRight(col int) {
	t.right[col] = true
}

// AddRow adds a row to the table; missing cells are blank
func (t *Table) AddRow(values ...string) {
	row := make([]string, len(t.headers))
	copy(row, values)
	t.rows = append(t.rows, row)
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.rows)
}

// String renders the table
func (t *Table) String() string {
	columns := len(t.headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	if IsTerminal() {
		tw.SetStyle(table.StyleRounded)
	} else {
		tw.SetStyle(table.StyleLight)
	}

	header := make(table.Row, columns)
	for i, h := range t.headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range t.rows {
		r := make(table.Row, columns)
		for i := range row {
			r[i] = row[i]
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if t.right[i] {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
			WidthMax:    t.maxWidth,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

// Render prints the table to stdout
func (t *Table) Render() {
	if len(t.headers) == 0 {
		return
	}
	fmt.Println(t.String())
}
