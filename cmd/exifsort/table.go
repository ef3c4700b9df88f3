package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// column describes one table column. Numeric columns are right-aligned.
type column struct {
	title   string
	numeric bool
}

// summaryTable renders rounded tables that keep header and footer text as
// written.
type summaryTable struct {
	tw      table.Writer
	columns int
}

func newSummaryTable(cols ...column) *summaryTable {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatDefault
	tw.Style().Format.Footer = text.FormatDefault

	header := make(table.Row, len(cols))
	configs := make([]table.ColumnConfig, len(cols))
	for i, c := range cols {
		header[i] = c.title
		align := text.AlignLeft
		if c.numeric {
			align = text.AlignRight
		}
		configs[i] = table.ColumnConfig{Number: i + 1, Align: align, AlignFooter: align, AlignHeader: text.AlignLeft}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)
	return &summaryTable{tw: tw, columns: len(cols)}
}

// row appends cells, padding short rows with blanks.
func (t *summaryTable) row(cells ...any) {
	t.tw.AppendRow(t.pad(cells))
}

func (t *summaryTable) footer(cells ...any) {
	t.tw.AppendFooter(t.pad(cells))
}

func (t *summaryTable) pad(cells []any) table.Row {
	r := make(table.Row, t.columns)
	for i := range r {
		r[i] = ""
		if i < len(cells) {
			r[i] = cells[i]
		}
	}
	return r
}

func (t *summaryTable) String() string {
	if t.columns == 0 {
		return ""
	}
	return t.tw.Render()
}
