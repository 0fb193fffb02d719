package output

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// RenderTable prints a pretty table to w, with an optional caption line.
func RenderTable(w io.Writer, headers []string, rows [][]interface{}, caption string) {
	t := table.NewWriter()
	t.SetOutputMirror(w)

	headerRow := table.Row{}
	for _, h := range headers {
		headerRow = append(headerRow, h)
	}
	t.AppendHeader(headerRow)

	for _, row := range rows {
		t.AppendRow(table.Row(row))
	}
	if caption != "" {
		t.SetCaption(caption)
	}

	t.Render()
}

// RenderKV prints label/value pairs as a two column table.
func RenderKV(w io.Writer, pairs [][2]string) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	for _, p := range pairs {
		t.AppendRow(table.Row{p[0], p[1]})
	}
	t.Render()
}
