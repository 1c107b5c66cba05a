package table

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Ftable writes the given cells (presumed to be in row-major order, with rows
// of equal length, and with a header row first) to the given io.Writer in a
// layout suitable for terminals or plaintext files.
func Ftable(w io.Writer, cells [][]string) {
	if len(cells) == 0 {
		return
	}

	widths := make([]int, len(cells[0]))
	for _, row := range cells {
		for i, cell := range row {
			if n := utf8.RuneCountInString(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}
	delim := "+"
	for _, width := range widths {
		delim += strings.Repeat("-", width+2) + "+"
	}
	delim += "\n"

	fmt.Fprint(w, delim)
	for i, row := range cells {
		line := "|"
		for j, cell := range row {
			line += " " + cell + strings.Repeat(" ", widths[j]-utf8.RuneCountInString(cell)) + " |"
		}
		fmt.Fprintln(w, line)
		if i == 0 {
			fmt.Fprint(w, delim)
		}
	}
	fmt.Fprint(w, delim)
}

// MakeCells allocates a slice of slices that can be filled in and then
// passed to Ftable.
func MakeCells(width, height int) [][]string {
	cells := make([][]string, height)
	for i := 0; i < height; i++ {
		cells[i] = make([]string, width)
	}
	return cells
}
