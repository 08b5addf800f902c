package pixelit

import (
	"image/color"
	"testing"

	"github.com/bodgit/pixelit/pixel"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderNoSource(t *testing.T) {
	b := NewBuilder()

	for name, f := range map[string]func() (*pixel.Buffer, error){
		"Pixelate":         b.Pixelate,
		"ConvertPalette":   b.Palette(pixel.Retro).ConvertPalette,
		"ConvertGrayscale": b.ConvertGrayscale,
		"Process":          b.Process,
	} {
		t.Run(name, func(t *testing.T) {
			out, err := f()
			assert.Nil(t, out)
			assert.True(t, errors.Is(err, ErrNoSource))
		})
	}
}

func TestBuilderNoPalette(t *testing.T) {
	_, err := NewBuilder().Source(solid(t, 2, 2, red)).ConvertPalette()
	assert.True(t, errors.Is(err, ErrNoPalette))
}

func TestBuilderCopies(t *testing.T) {
	base := NewBuilder().Scale(4).MaxWidth(8)
	gray := base.Grayscale()
	retro := base.Palette(pixel.Retro)

	c, err := base.Config()
	require.NoError(t, err)
	assert.Equal(t, "pixel-size=4 max-width=8 max-height=0", c.String())

	c, err = gray.Config()
	require.NoError(t, err)
	assert.True(t, c.Grayscale())

	c, err = retro.Config()
	require.NoError(t, err)
	_, ok := c.Palette()
	assert.True(t, ok)
	assert.False(t, c.Grayscale())
}

func TestBuilderLastColorWins(t *testing.T) {
	c, err := NewBuilder().Palette(pixel.Retro).Grayscale().Config()
	require.NoError(t, err)
	_, ok := c.Palette()
	assert.False(t, ok)
	assert.True(t, c.Grayscale())

	c, err = NewBuilder().Grayscale().Palette(pixel.GameBoy).Config()
	require.NoError(t, err)
	assert.False(t, c.Grayscale())
}

func TestBuilderScaleClamped(t *testing.T) {
	c, err := NewBuilder().Scale(500).Config()
	require.NoError(t, err)
	assert.Equal(t, 50, c.PixelSize())
}

func TestBuilderProcess(t *testing.T) {
	out, err := NewBuilder().
		Source(solid(t, 60, 30, red)).
		Scale(10).
		MaxWidth(30).
		Palette(pixel.Retro).
		Process()
	require.NoError(t, err)
	assert.Equal(t, 30, out.Width)
	assert.Equal(t, 15, out.Height)
	assertSolid(t, out, color.NRGBA{R: 177, G: 62, B: 83, A: 255})
}

func TestBuilderConvert(t *testing.T) {
	b := NewBuilder().Source(solid(t, 5, 5, red))

	out, err := b.Palette(pixel.GameBoy).ConvertPalette()
	require.NoError(t, err)
	assert.Equal(t, 5, out.Width)

	out, err = b.ConvertGrayscale()
	require.NoError(t, err)
	assertSolid(t, out, color.NRGBA{R: 85, G: 85, B: 85, A: 255})
}
