package visual_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"codeberg.org/mutker/hwtop/internal/visual"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTierOfBoundaries(t *testing.T) {
	tests := []struct {
		p    int
		want visual.Tier
	}{
		{-10, 0},
		{0, 0},
		{12, 0},
		{13, 1},
		{25, 1},
		{26, 2},
		{37, 2},
		{38, 3},
		{50, 3},
		{51, 4},
		{62, 4},
		{63, 5},
		{75, 5},
		{76, 6},
		{87, 6},
		{88, 7},
		{100, 7},
		{250, 7},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, visual.TierOf(tt.p), "p=%d", tt.p)
	}
}

func TestTierFunctionsMonotonic(t *testing.T) {
	palette := visual.Default()
	severity := map[string]int{
		palette.Blue:    0,
		palette.Sky:     1,
		palette.Magenta: 2,
		palette.Red:     3,
	}

	prevTier := visual.TierOf(0)
	prevColor := severity[palette.Color(0)]
	for p := 1; p <= 100; p++ {
		tier := visual.TierOf(p)
		assert.GreaterOrEqual(t, tier, prevTier, "p=%d", p)
		assert.LessOrEqual(t, int(tier-prevTier), 1, "p=%d", p)

		color, ok := severity[palette.Color(p)]
		require.True(t, ok, "p=%d has no palette color", p)
		assert.GreaterOrEqual(t, color, prevColor, "p=%d", p)

		assert.NotEmpty(t, visual.BarGlyph(p))
		assert.NotEmpty(t, visual.SliderGlyph(p))

		prevTier, prevColor = tier, color
	}
}

func TestGlyphs(t *testing.T) {
	assert.Equal(t, "▁", visual.BarGlyph(0))
	assert.Equal(t, "▄", visual.BarGlyph(50))
	assert.Equal(t, "█", visual.BarGlyph(100))
	assert.Equal(t, "▏", visual.SliderGlyph(5))
	assert.Equal(t, "▌", visual.SliderGlyph(50))
	assert.Equal(t, "▉", visual.SliderGlyph(80))
}

func TestPaletteColors(t *testing.T) {
	p := visual.Default()

	assert.Equal(t, "\x1b[94m", p.Color(10))
	assert.Equal(t, "\x1b[96m", p.Color(30))
	assert.Equal(t, "\x1b[35m", p.Color(60))
	assert.Equal(t, "\x1b[31m", p.Color(90))
	assert.Equal(t, "\x1b[0m", p.Reset)
	assert.Equal(t, "\x1b[2m", p.Dim)
	assert.False(t, p.IsPlain())
}

func TestForProfile(t *testing.T) {
	assert.True(t, visual.ForProfile(termenv.Ascii).IsPlain())
	assert.Equal(t, visual.Default(), visual.ForProfile(termenv.ANSI))
	assert.Equal(t, visual.Default(), visual.ForProfile(termenv.TrueColor))
}

func TestPlainEncoderEmitsNoEscapes(t *testing.T) {
	enc := visual.NewEncoder(visual.Plain())

	assert.Equal(t, "▁▄█", enc.Bars([]int{0, 50, 100}))
	assert.Equal(t, "42%", enc.Colorize(42, "42%"))
	assert.Equal(t, "1G/2G", enc.Usage(1<<30, 2<<30))
}

func TestEncoderColorsBars(t *testing.T) {
	enc := visual.NewEncoder(visual.Default())

	glyph, color := enc.Encode(90)
	assert.Equal(t, "█", glyph)
	assert.Equal(t, "\x1b[31m", color)
	assert.Equal(t, "\x1b[94m▁\x1b[0m", enc.Bar(0))
}

func TestCapacityBar(t *testing.T) {
	enc := visual.NewEncoder(visual.Plain())

	tests := []struct {
		name        string
		used, total uint64
		width       int
		wantCells   string
	}{
		{"half exact", 5, 10, 10, "█████     "},
		{"empty", 0, 10, 10, "          "},
		{"full", 10, 10, 10, "██████████"},
		{"overfull", 15, 10, 10, "██████████"},
		{"zero total", 5, 0, 10, "          "},
		{"partial cell", 1, 4, 10, "██▌       "},
		{"small remainder", 1, 100, 14, "▎             "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := enc.CapacityBar(tt.used, tt.total, tt.width)

			require.True(t, strings.HasPrefix(got, "["))
			end := strings.Index(got, "] ")
			require.Positive(t, end)

			cells := got[1:end]
			assert.Equal(t, tt.wantCells, cells)
			assert.Equal(t, tt.width, utf8.RuneCountInString(cells))
		})
	}
}

func TestCapacityBarAppendsUsage(t *testing.T) {
	enc := visual.NewEncoder(visual.Plain())

	assert.Equal(t, "[██████████████] 16G/16G", enc.CapacityBar(16<<30, 16<<30, 14))
	assert.Equal(t, "[█████     ] 5B/10B", enc.CapacityBar(5, 10, 10))
}

func TestCapacityBarColored(t *testing.T) {
	enc := visual.NewEncoder(visual.Default())

	got := enc.CapacityBar(5, 10, 4)
	assert.Equal(t, "[\x1b[96m██\x1b[0m  ] \x1b[96m5B\x1b[0m/\x1b[96m10B\x1b[0m", got)
}
