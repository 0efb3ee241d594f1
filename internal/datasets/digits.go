package datasets

import (
	"fmt"
	"io"
	"strings"

	"github.com/born-ml/feedforward/internal/linalg"
	"github.com/born-ml/feedforward/internal/optim"
)

// Glyph dimensions of the digit bitmaps.
const (
	GlyphWidth  = 5
	GlyphHeight = 7
	GlyphSize   = GlyphWidth * GlyphHeight
)

// glyphs are the digits 0-9, '#' on and '.' off.
var glyphs = [10][GlyphHeight]string{
	{".###.", "#...#", "#...#", "#...#", "#...#", "#...#", ".###."},
	{"..#..", ".##..", "..#..", "..#..", "..#..", "..#..", ".###."},
	{".###.", "#...#", "....#", "...#.", ".##..", "#....", "#####"},
	{".###.", "#...#", "....#", "..##.", "....#", "#...#", ".###."},
	{"..##.", ".#.#.", "#..#.", "#..#.", "#####", "...#.", "...#."},
	{"#####", "#....", "####.", "....#", "....#", "#...#", ".###."},
	{".###.", "#...#", "#....", "####.", "#...#", "#...#", ".###."},
	{"#####", "....#", "...#.", "..#..", ".#...", ".#...", ".#..."},
	{".###.", "#...#", "#...#", ".###.", "#...#", "#...#", ".###."},
	{".###.", "#...#", "#...#", ".####", "....#", "#...#", ".###."},
}

// Digits returns one sample per digit: a 35-element bitmap (row-major, 1 for
// a lit pixel) and a 10-element one-hot target.
func Digits() []optim.Sample {
	samples := make([]optim.Sample, len(glyphs))
	for d, g := range glyphs {
		input, err := ParseGlyph(g[:]...)
		if err != nil {
			panic(fmt.Sprintf("datasets: digit %d: %v", d, err))
		}
		target := linalg.NewVector(len(glyphs))
		_ = target.Set(d, 1)
		samples[d] = optim.Sample{Input: input, Target: target}
	}
	return samples
}

// ParseGlyph converts GlyphHeight rows of GlyphWidth characters ('#' on,
// anything else off) into a bitmap vector.
func ParseGlyph(rows ...string) (linalg.Vector, error) {
	if len(rows) != GlyphHeight {
		return linalg.Vector{}, &linalg.DimensionError{Op: "glyph rows", Want: GlyphHeight, Got: len(rows)}
	}
	v := linalg.NewVector(GlyphSize)
	raw := v.Raw()
	for r, row := range rows {
		if len(row) != GlyphWidth {
			return linalg.Vector{}, fmt.Errorf("row %d: %w", r, &linalg.DimensionError{Op: "glyph cols", Want: GlyphWidth, Got: len(row)})
		}
		for c := 0; c < GlyphWidth; c++ {
			if row[c] == '#' {
				raw[r*GlyphWidth+c] = 1
			}
		}
	}
	return v, nil
}

// RenderGlyph draws a bitmap vector with full blocks for positive pixels and
// light shade otherwise.
func RenderGlyph(w io.Writer, v linalg.Vector) error {
	if v.Len() != GlyphSize {
		return &linalg.DimensionError{Op: "render glyph", Want: GlyphSize, Got: v.Len()}
	}
	var sb strings.Builder
	raw := v.Raw()
	for r := 0; r < GlyphHeight; r++ {
		for c := 0; c < GlyphWidth; c++ {
			if raw[r*GlyphWidth+c] > 0 {
				sb.WriteString("██")
			} else {
				sb.WriteString("░░")
			}
		}
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
