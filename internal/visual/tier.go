package visual

import "codeberg.org/mutker/hwtop/internal/units"

// Tier is one of eight ordered percent bins, 0 being the lowest.
type Tier int

const (
	MinTier Tier = 0
	MaxTier Tier = 7
)

// Inclusive upper bound of each bin but the last, which runs to 100.
var tierBounds = [...]int{12, 25, 37, 50, 62, 75, 87}

var (
	barGlyphs    = [...]string{"▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"}
	sliderGlyphs = [...]string{"▏", "▎", "▍", "▌", "▋", "▊", "▉", "█"}
)

// TierOf returns the bin for p after clamping it to [0,100].
func TierOf(p int) Tier {
	p = units.ClampPercent(p)
	for i, bound := range tierBounds {
		if p <= bound {
			return Tier(i)
		}
	}

	return MaxTier
}

// Severity collapses adjacent bins pairwise onto four color levels.
func (t Tier) Severity() Severity {
	return Severity(t / 2)
}

// BarGlyph returns the full-height block glyph for p, taller as p grows.
func BarGlyph(p int) string {
	return barGlyphs[TierOf(p)]
}

// SliderGlyph returns the partial-width block glyph for p, wider as p grows.
func SliderGlyph(p int) string {
	return sliderGlyphs[TierOf(p)]
}
