// Package table renders terminal tables sized to the current terminal.
package table

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// New returns a go-pretty writer in the house style, limited to the
// terminal width and writing to out.
func New(out io.Writer, title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.SetAllowedRowLength(TerminalWidth())
	if title != "" {
		t.SetTitle(title)
	}
	return t
}

// FlexWidth returns how many cells remain for one flexible column once the
// fixed columns and table borders are accounted for. It never returns less
// than minWidth.
func FlexWidth(fixed []int, minWidth int) int {
	borders := 3*(len(fixed)+1) + 1
	used := borders
	for _, w := range fixed {
		used += w
	}
	return max(minWidth, TerminalWidth()-used)
}
