package datasets

import (
	"strings"
	"testing"

	"github.com/born-ml/feedforward/internal/linalg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXOR(t *testing.T) {
	samples := XOR()
	require.Len(t, samples, 4)
	for _, s := range samples {
		require.Equal(t, 2, s.Input.Len())
		require.Equal(t, 1, s.Target.Len())
		a, b := s.Input.Raw()[0], s.Input.Raw()[1]
		want := 0.0
		if a != b {
			want = 1
		}
		assert.Equal(t, want, s.Target.Raw()[0], "input %v", s.Input)
	}
}

func TestDigits(t *testing.T) {
	samples := Digits()
	require.Len(t, samples, 10)

	for d, s := range samples {
		assert.Equal(t, GlyphSize, s.Input.Len())
		require.Equal(t, 10, s.Target.Len())
		for i, x := range s.Target.Raw() {
			if i == d {
				assert.Equal(t, 1.0, x)
			} else {
				assert.Equal(t, 0.0, x)
			}
		}
	}

	// All glyphs are distinct.
	for i := range samples {
		for j := i + 1; j < len(samples); j++ {
			assert.False(t, samples[i].Input.Equal(samples[j].Input), "digits %d and %d", i, j)
		}
	}
}

func TestParseGlyph_Errors(t *testing.T) {
	_, err := ParseGlyph("#####")
	assert.ErrorIs(t, err, linalg.ErrDimensionMismatch)

	_, err = ParseGlyph("#####", "#", "#####", "#####", "#####", "#####", "#####")
	assert.ErrorIs(t, err, linalg.ErrDimensionMismatch)
}

func TestRenderGlyph(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, RenderGlyph(&sb, Digits()[1].Input))

	lines := strings.Split(strings.TrimSuffix(sb.String(), "\n"), "\n")
	require.Len(t, lines, GlyphHeight)
	assert.Equal(t, "░░░░██░░░░", lines[0])
	assert.Equal(t, "░░██████░░", lines[6])

	assert.ErrorIs(t, RenderGlyph(&sb, linalg.NewVector(3)), linalg.ErrDimensionMismatch)
}
