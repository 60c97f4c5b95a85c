// Package visual maps percentages onto glyph and color tiers and renders
// the bars built from them.
package visual

import (
	"math"
	"strings"

	"codeberg.org/mutker/hwtop/internal/units"
)

// Encoder renders graded glyphs with a fixed Palette.
type Encoder struct {
	Palette Palette
}

// NewEncoder returns an Encoder painting with p.
func NewEncoder(p Palette) Encoder {
	return Encoder{Palette: p}
}

// Encode returns the bar glyph and color for p.
func (e Encoder) Encode(p int) (glyph, color string) {
	return BarGlyph(p), e.Palette.Color(p)
}

// Bar returns the colored bar glyph for p.
func (e Encoder) Bar(p int) string {
	glyph, color := e.Encode(p)
	return color + glyph + e.Palette.Reset
}

// Bars renders one colored glyph per percent.
func (e Encoder) Bars(percents []int) string {
	var b strings.Builder
	for _, p := range percents {
		b.WriteString(e.Bar(p))
	}

	return b.String()
}

// Colorize paints text with the color for p.
func (e Encoder) Colorize(p int, text string) string {
	return e.Palette.Color(p) + text + e.Palette.Reset
}

// Paint wraps text in an accent color.
func (e Encoder) Paint(color, text string) string {
	return color + text + e.Palette.Reset
}

// Usage renders "used/total" in human sizes, both halves colored by the
// used percentage.
func (e Encoder) Usage(used, total uint64) string {
	p := units.PercentOf(float64(used), float64(total))

	return e.Colorize(p, units.FormatSize(used)) + "/" + e.Colorize(p, units.FormatSize(total))
}

// CapacityBar renders "[" + width cells + "] " + Usage(used, total). Cells
// hold floor(ratio*width) full blocks, then one slider glyph for a nonzero
// remainder, then spaces.
func (e Encoder) CapacityBar(used, total uint64, width int) string {
	width = max(width, 0)

	ratio := 0.0
	if total > 0 {
		ratio = min(float64(used)/float64(total), 1)
	}

	scaled := ratio * float64(width)
	full := int(math.Floor(scaled))
	color := e.Palette.Color(units.PercentOf(float64(used), float64(total)))

	var b strings.Builder
	b.WriteString("[")
	b.WriteString(color)
	b.WriteString(strings.Repeat(barGlyphs[MaxTier], full))

	cells := full
	if full < width {
		if frac := scaled - float64(full); frac > 0 {
			b.WriteString(SliderGlyph(int(units.Round(frac * 100))))
			cells++
		}
	}

	b.WriteString(e.Palette.Reset)
	b.WriteString(strings.Repeat(" ", width-cells))
	b.WriteString("] ")
	b.WriteString(e.Usage(used, total))

	return b.String()
}
