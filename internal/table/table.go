// Package table aligns delimiter-separated rows into fixed-width columns.
package table

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"codeberg.org/mutker/hwtop/internal/errors"
	"github.com/charmbracelet/x/ansi"
)

// DefaultDelimiter separates cells in a row string.
const DefaultDelimiter = ";"

// Measure reports the width a cell occupies for padding purposes.
type Measure func(cell string) int

// RawWidth counts every rune, escape sequences included. Colored cells
// therefore pad as if their escape bytes were visible characters.
func RawWidth(cell string) int {
	return utf8.RuneCountInString(cell)
}

// VisibleWidth counts terminal cells, ignoring escape sequences.
func VisibleWidth(cell string) int {
	return ansi.StringWidth(cell)
}

// Layout renders rows split on Delimiter, measuring cells with Measure.
type Layout struct {
	Delimiter string
	Measure   Measure
}

// New returns a ";" layout measuring raw width, or visible width when
// visible is set.
func New(visible bool) Layout {
	l := Layout{Delimiter: DefaultDelimiter, Measure: RawWidth}
	if visible {
		l.Measure = VisibleWidth
	}

	return l
}

// Rows renders rows with the default layout.
func Rows(rows []string) string {
	return New(false).Render(rows)
}

// Render pads every column to its widest cell.
func (l Layout) Render(rows []string) string {
	return l.Sized(rows, l.Widths(rows))
}

// Widths returns the widest cell of each column. It panics when rows
// disagree on their cell count.
func (l Layout) Widths(rows []string) []int {
	cells := l.split(rows)
	if len(cells) == 0 {
		return nil
	}

	widths := make([]int, len(cells[0]))
	for i, row := range cells {
		l.checkShape(i, len(row), len(widths))
		for col, cell := range row {
			widths[col] = max(widths[col], l.measure(cell))
		}
	}

	return widths
}

// Sized renders rows against precomputed widths. Cells are left-justified
// and joined by one space; the last cell is not padded. Each row ends in a
// newline. It panics when a row's cell count differs from len(widths).
func (l Layout) Sized(rows []string, widths []int) string {
	cells := l.split(rows)
	if len(cells) == 0 {
		return ""
	}

	var b strings.Builder
	for i, row := range cells {
		l.checkShape(i, len(row), len(widths))
		for col, cell := range row {
			if col > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(cell)
			if col < len(row)-1 {
				b.WriteString(strings.Repeat(" ", max(widths[col]-l.measure(cell), 0)))
			}
		}
		b.WriteByte('\n')
	}

	return b.String()
}

func (l Layout) split(rows []string) [][]string {
	delim := l.Delimiter
	if delim == "" {
		delim = DefaultDelimiter
	}

	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells = append(cells, strings.Split(row, delim))
	}

	return cells
}

func (l Layout) measure(cell string) int {
	if l.Measure == nil {
		return RawWidth(cell)
	}

	return l.Measure(cell)
}

// checkShape panics on a row with the wrong number of cells. Every column
// after a short or long row would be misaligned, so the caller is broken.
func (Layout) checkShape(row, got, want int) {
	if got != want {
		panic(errors.New().WithData(ErrTableShape, fmt.Sprintf("row %d has %d cells, want %d", row, got, want)))
	}
}
